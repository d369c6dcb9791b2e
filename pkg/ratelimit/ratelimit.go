package ratelimit

import (
	"fmt"
	"sync"
	"time"
)

// Result 单次限流判定结果
type Result struct {
	Allowed   bool
	Remaining int
	// Reset 距离窗口释放一个名额还需等待的时间。
	// 允许时为整个窗口长度，拒绝时为最旧一次请求过期前的剩余时间。
	Reset time.Duration
}

// Clock 抽象时间来源，测试时可注入假时钟
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// Store 保存每个 key 的请求时间戳。默认内存实现仅适用于单进程部署，
// 多实例时可替换为共享存储。
type Store interface {
	Get(key string) []time.Time
	Set(key string, timestamps []time.Time)
	Keys() []string
	Delete(key string)
}

type memoryStore struct {
	mu      sync.Mutex
	buckets map[string][]time.Time
}

func newMemoryStore() *memoryStore {
	return &memoryStore{buckets: make(map[string][]time.Time)}
}

func (s *memoryStore) Get(key string) []time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buckets[key]
}

func (s *memoryStore) Set(key string, timestamps []time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.buckets[key] = timestamps
}

func (s *memoryStore) Keys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	keys := make([]string, 0, len(s.buckets))
	for k := range s.buckets {
		keys = append(keys, k)
	}
	return keys
}

func (s *memoryStore) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.buckets, key)
}

// Limiter 滑动窗口限流器，按 bucket:ip 记录请求时间戳。
// 被拒绝的请求不计入窗口。
type Limiter struct {
	mu    sync.Mutex
	clock Clock
	store Store
}

type Option func(*Limiter)

func WithClock(c Clock) Option {
	return func(l *Limiter) { l.clock = c }
}

func WithStore(s Store) Option {
	return func(l *Limiter) { l.store = s }
}

func New(opts ...Option) *Limiter {
	l := &Limiter{
		clock: systemClock{},
		store: newMemoryStore(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Check 判定一次请求。maxTokens 个以内放行并记录时间戳，满了则拒绝。
func (l *Limiter) Check(ip, bucket string, maxTokens int, window time.Duration) Result {
	key := fmt.Sprintf("%s:%s", bucket, ip)

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.clock.Now()
	kept := l.store.Get(key)[:0:0]
	for _, t := range l.store.Get(key) {
		if now.Sub(t) < window {
			kept = append(kept, t)
		}
	}

	if len(kept) >= maxTokens {
		l.store.Set(key, kept)
		// maxTokens <= 0 时窗口可能是空的,此时按整窗计算 Reset
		reset := window
		if len(kept) > 0 {
			reset = kept[0].Add(window).Sub(now)
		}
		return Result{
			Allowed:   false,
			Remaining: 0,
			Reset:     reset,
		}
	}

	kept = append(kept, now)
	l.store.Set(key, kept)
	return Result{
		Allowed:   true,
		Remaining: maxTokens - len(kept),
		Reset:     window,
	}
}

// Cleanup 移除整窗无请求的 key，调用方自行决定周期
func (l *Limiter) Cleanup(window time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.clock.Now()
	for _, key := range l.store.Keys() {
		timestamps := l.store.Get(key)
		expired := true
		for _, t := range timestamps {
			if now.Sub(t) < window {
				expired = false
				break
			}
		}
		if expired {
			l.store.Delete(key)
		}
	}
}
