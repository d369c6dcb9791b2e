package service

import (
	"context"
	"strings"
	"testing"

	"expertline/internal/model"
	"expertline/internal/repository"
	"expertline/internal/util"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newCompareService(db *gorm.DB, ai *AIService) *CompareService {
	return NewCompareService(
		repository.NewPostRepository(db),
		repository.NewTopicRequestRepository(db),
		NewKeywordTagger(),
		ai,
		zap.NewNop(),
	)
}

func TestCompareExpertModeWithoutDataRecordsRequest(t *testing.T) {
	db := newTestDB(t)
	svc := newCompareService(db, newTestAIService("http://unused", ""))

	result, err := svc.Compare(context.Background(), CompareRequest{
		Code: "function quantumSort(qubits) { return collapse(qubits); }",
		Mode: CompareModeExpert,
	})
	if err != nil {
		t.Fatalf("Compare: %v", err)
	}

	if result.Mode != CompareModeExpert {
		t.Errorf("expected expert mode, got %q", result.Mode)
	}
	if len(result.Comparisons) != 0 {
		t.Errorf("expected no comparisons on empty database, got %d", len(result.Comparisons))
	}
	if !strings.Contains(result.Message, "No expert data") {
		t.Errorf("unexpected message %q", result.Message)
	}

	var count int64
	db.Model(&model.TopicRequest{}).Count(&count)
	if count != 1 {
		t.Errorf("expected a topic request to be recorded, got %d", count)
	}
}

func TestCompareAIModeFallsBackWithoutKey(t *testing.T) {
	db := newTestDB(t)
	svc := newCompareService(db, newTestAIService("http://unused", ""))

	code := "function add(a, b) { return a + b; }"
	result, err := svc.Compare(context.Background(), CompareRequest{
		Code:            code,
		Mode:            CompareModeAI,
		MaxAlternatives: 3,
	})
	if err != nil {
		t.Fatalf("Compare: %v", err)
	}

	if result.Mode != CompareModeAI {
		t.Errorf("expected ai mode, got %q", result.Mode)
	}
	if len(result.Comparisons) != 3 {
		t.Fatalf("expected 3 fallback alternatives, got %d", len(result.Comparisons))
	}
	if !result.Comparisons[0].IsBaseline {
		t.Error("first fallback alternative should be the baseline")
	}
	if result.Comparisons[0].CodeBlock != code {
		t.Error("baseline code must be the submitted code")
	}
	if !strings.Contains(result.Message, "fallback") {
		t.Errorf("message should mention the fallback, got %q", result.Message)
	}
}

func TestCompareExpertModeReturnsCommunityPosts(t *testing.T) {
	db := newTestDB(t)
	svc := newCompareService(db, newTestAIService("http://unused", ""))

	// 足够多的相关帖子让专家模式生效
	for i, title := range []string{"Fibonacci iterative", "Fibonacci memoized", "Fibonacci matrix"} {
		post := model.Post{
			Title:       title,
			Code:        "function fibonacci(n) { return n; }",
			Description: "variant " + title,
			Categories:  "performance",
			AuthorID:    "author-1",
			Username:    "author",
			Endorse:     10 - i,
			Oppose:      1,
		}
		post.RecalcRatios()
		if err := db.Create(&post).Error; err != nil {
			t.Fatal(err)
		}
	}

	result, err := svc.Compare(context.Background(), CompareRequest{
		Code:            "function fibonacci(n) { if (n <= 1) return n; return fibonacci(n-1) + fibonacci(n-2); }",
		Mode:            CompareModeExpert,
		MaxAlternatives: 3,
	})
	if err != nil {
		t.Fatalf("Compare: %v", err)
	}

	if result.Mode != CompareModeExpert {
		t.Fatalf("expected expert mode, got %q", result.Mode)
	}
	if len(result.Comparisons) != 3 {
		t.Fatalf("expected 3 community comparisons, got %d", len(result.Comparisons))
	}

	first := result.Comparisons[0]
	if first.Name != "Fibonacci iterative" {
		t.Errorf("expected highest-ratio post first, got %q", first.Name)
	}
	if !strings.HasPrefix(first.ReferenceLink, "/posts/") {
		t.Errorf("expected post reference link, got %q", first.ReferenceLink)
	}
	if first.ReferenceType != "post" {
		t.Errorf("expected reference type post, got %q", first.ReferenceType)
	}
	if !contains(first.Pros, "Optimized for performance") {
		t.Errorf("expected category-derived pros, got %v", first.Pros)
	}
}

func TestCompareBroadFallbackCount(t *testing.T) {
	db := newTestDB(t)
	svc := newCompareService(db, newTestAIService("http://unused", ""))

	// 10 条与查询毫无交集的帖子:关键词和代码模式都不命中,
	// 但库存足够时仍按上限视作有专家数据
	for i := 0; i < util.BroadFallbackMinPosts; i++ {
		post := model.Post{
			Title:       "CSS layout",
			Code:        ".box { display: grid; }",
			Description: "styling",
			Categories:  "css",
			AuthorID:    "author-1",
			Username:    "author",
		}
		post.RecalcRatios()
		if err := db.Create(&post).Error; err != nil {
			t.Fatal(err)
		}
	}

	got := svc.countExpertData("SELECT 1", nil, nil)
	if got != util.BroadFallbackCap {
		t.Errorf("expected broad fallback capped at %d, got %d", util.BroadFallbackCap, got)
	}
}
