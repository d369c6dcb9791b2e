package ratelimit

import (
	"testing"
	"time"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func TestBurstDeniesExactlyOverLimit(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1700000000, 0)}
	l := New(WithClock(clock))

	const max = 10
	for i := 0; i < max; i++ {
		res := l.Check("1.2.3.4", "compare", max, time.Minute)
		if !res.Allowed {
			t.Fatalf("request %d should be allowed", i+1)
		}
		if res.Remaining != max-i-1 {
			t.Errorf("request %d: remaining = %d, want %d", i+1, res.Remaining, max-i-1)
		}
	}

	res := l.Check("1.2.3.4", "compare", max, time.Minute)
	if res.Allowed {
		t.Fatal("request 11 should be denied")
	}
	if res.Remaining != 0 {
		t.Errorf("remaining = %d, want 0", res.Remaining)
	}
	if res.Reset != time.Minute {
		t.Errorf("reset = %v, want %v", res.Reset, time.Minute)
	}
}

func TestDeniedRequestNotRecorded(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1700000000, 0)}
	l := New(WithClock(clock))

	l.Check("1.2.3.4", "compare", 1, time.Minute)
	for i := 0; i < 5; i++ {
		l.Check("1.2.3.4", "compare", 1, time.Minute)
	}

	// 只有第一次放行的请求占用窗口，过期后应立即恢复
	clock.Advance(time.Minute)
	res := l.Check("1.2.3.4", "compare", 1, time.Minute)
	if !res.Allowed {
		t.Fatal("request after window expiry should be allowed")
	}
}

func TestWindowSlides(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1700000000, 0)}
	l := New(WithClock(clock))

	l.Check("1.2.3.4", "compare", 2, time.Minute)
	clock.Advance(30 * time.Second)
	l.Check("1.2.3.4", "compare", 2, time.Minute)

	res := l.Check("1.2.3.4", "compare", 2, time.Minute)
	if res.Allowed {
		t.Fatal("third request within window should be denied")
	}
	if res.Reset != 30*time.Second {
		t.Errorf("reset = %v, want %v", res.Reset, 30*time.Second)
	}

	// 最旧一条过期后放行
	clock.Advance(31 * time.Second)
	res = l.Check("1.2.3.4", "compare", 2, time.Minute)
	if !res.Allowed {
		t.Fatal("request should be allowed after oldest timestamp expired")
	}
}

func TestZeroMaxTokensDeniesWithoutPanic(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1700000000, 0)}
	l := New(WithClock(clock))

	res := l.Check("1.2.3.4", "compare", 0, time.Minute)
	if res.Allowed {
		t.Fatal("maxTokens=0 should deny everything")
	}
	if res.Reset != time.Minute {
		t.Errorf("reset = %v, want %v", res.Reset, time.Minute)
	}
}

func TestBucketsAreIsolated(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1700000000, 0)}
	l := New(WithClock(clock))

	l.Check("1.2.3.4", "compare", 1, time.Minute)
	if res := l.Check("1.2.3.4", "compare", 1, time.Minute); res.Allowed {
		t.Fatal("same bucket+ip should be limited")
	}
	if res := l.Check("5.6.7.8", "compare", 1, time.Minute); !res.Allowed {
		t.Fatal("different ip should not be limited")
	}
	if res := l.Check("1.2.3.4", "posts", 1, time.Minute); !res.Allowed {
		t.Fatal("different bucket should not be limited")
	}
}

func TestCleanupDropsIdleKeys(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1700000000, 0)}
	store := newMemoryStore()
	l := New(WithClock(clock), WithStore(store))

	l.Check("1.2.3.4", "compare", 10, time.Minute)
	l.Check("5.6.7.8", "compare", 10, time.Minute)

	clock.Advance(2 * time.Minute)
	l.Check("5.6.7.8", "compare", 10, time.Minute)
	l.Cleanup(time.Minute)

	if got := len(store.Keys()); got != 1 {
		t.Errorf("keys after cleanup = %d, want 1", got)
	}
}
