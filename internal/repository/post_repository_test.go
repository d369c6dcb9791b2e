package repository

import (
	"testing"
	"time"

	"expertline/internal/model"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("raw db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&model.User{}, &model.Topic{}, &model.Post{}, &model.Comment{}, &model.Vote{}, &model.TopicRequest{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func makePost(t *testing.T, db *gorm.DB, title, code string, categories string, endorse, oppose int, age time.Duration) model.Post {
	t.Helper()
	post := model.Post{
		Title:       title,
		Code:        code,
		Description: "about " + title,
		Categories:  categories,
		AuthorID:    "author-1",
		Username:    "author",
		Endorse:     endorse,
		Oppose:      oppose,
	}
	post.RecalcRatios()
	if err := db.Create(&post).Error; err != nil {
		t.Fatalf("create post: %v", err)
	}
	createdAt := time.Now().Add(-age)
	if err := db.Model(&post).UpdateColumn("created_at", createdAt).Error; err != nil {
		t.Fatalf("backdate post: %v", err)
	}
	return post
}

func TestFindByKeywordsOrdersByRatioThenRecency(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostRepository(db)

	// 三个相关帖子,E/O 比值不同
	low := makePost(t, db, "Fibonacci the slow way", "function fib(n) {}", "recursion", 1, 2, time.Hour)
	high := makePost(t, db, "Fibonacci with memo", "const fib = n => {}", "performance", 8, 1, time.Hour)
	midOld := makePost(t, db, "Fibonacci basics", "fib()", "basics", 4, 2, 48*time.Hour)
	midNew := makePost(t, db, "Fibonacci revisited", "fib()", "basics", 4, 2, time.Minute)
	// 不相关帖子不应出现
	makePost(t, db, "CSS grid tricks", "display: grid;", "css", 9, 1, time.Hour)

	posts, err := repo.FindByKeywords([]string{"fibonacci"}, nil, 10)
	if err != nil {
		t.Fatalf("FindByKeywords: %v", err)
	}

	if len(posts) != 4 {
		t.Fatalf("expected 4 matches, got %d", len(posts))
	}
	if posts[0].ID != high.ID {
		t.Errorf("expected highest ratio first, got %q", posts[0].Title)
	}
	if posts[1].ID != midNew.ID || posts[2].ID != midOld.ID {
		t.Errorf("expected ratio tie broken by recency, got %q then %q", posts[1].Title, posts[2].Title)
	}
	if posts[3].ID != low.ID {
		t.Errorf("expected lowest ratio last, got %q", posts[3].Title)
	}
}

func TestCountByKeywordsCapsTechAtFive(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostRepository(db)

	// 只有第六个技术关键词能命中这条帖子
	makePost(t, db, "Streaming uploads", "pipe()", "streams", 1, 0, time.Hour)

	count, err := repo.CountByKeywords(nil, []string{"aaa", "bbb", "ccc", "ddd", "eee", "streaming"})
	if err != nil {
		t.Fatalf("CountByKeywords: %v", err)
	}
	if count != 0 {
		t.Errorf("expected the sixth tech keyword to be ignored, got count %d", count)
	}

	count, err = repo.CountByKeywords(nil, []string{"streaming"})
	if err != nil {
		t.Fatalf("CountByKeywords: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 match within the cap, got %d", count)
	}
}

func TestAlgorithmKeywordsSearchCode(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostRepository(db)

	// 关键词只出现在代码里
	makePost(t, db, "Untitled snippet", "function fibonacci(n) { return n; }", "misc", 1, 0, time.Hour)

	// 算法关键词查 code 字段,能命中
	count, err := repo.CountByKeywords([]string{"fibonacci"}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Errorf("algorithm keyword should match code column, got %d", count)
	}

	// 技术关键词不查 code 字段,不命中
	count, err = repo.CountByKeywords(nil, []string{"fibonacci"})
	if err != nil {
		t.Fatal(err)
	}
	if count != 0 {
		t.Errorf("tech keyword must not match code column, got %d", count)
	}
}

func TestFindByCodePatterns(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostRepository(db)

	arrow := makePost(t, db, "Arrow functions", "const f = () => 1;", "javascript", 5, 1, time.Hour)
	makePost(t, db, "Plain CSS", ".box { color: red; }", "css", 7, 1, time.Hour)

	posts, err := repo.FindByCodePatterns([]string{"=>"}, 10)
	if err != nil {
		t.Fatalf("FindByCodePatterns: %v", err)
	}
	if len(posts) != 1 || posts[0].ID != arrow.ID {
		t.Errorf("expected only the arrow-function post, got %d results", len(posts))
	}
}
