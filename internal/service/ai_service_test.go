package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"expertline/internal/config"
)

const sampleAIResponse = "### 1. Iterative Fibonacci\n" +
	"Loop-based version that avoids recursion entirely.\n" +
	"```javascript\nfunction fib(n) {\n  let a = 0, b = 1;\n  for (let i = 0; i < n; i++) [a, b] = [b, a + b];\n  return a;\n}\n```\n" +
	"### 2. Memoized Fibonacci\n" +
	"Caches already computed values.\n" +
	"```javascript\nconst memo = {};\nfunction fib(n) {\n  if (n <= 1) return n;\n  return memo[n] ??= fib(n - 1) + fib(n - 2);\n}\n```\n" +
	"### 3. Matrix Fibonacci\n" +
	"Matrix exponentiation, logarithmic time.\n" +
	"```javascript\nfunction fib(n) {\n  // matrix power implementation\n  return power([[1,1],[1,0]], n)[0][1];\n}\n```\n"

func newTestAIService(baseURL, key string) *AIService {
	return NewAIService(config.AIConfig{
		BaseURL: baseURL,
		APIKey:  key,
		Model:   "test-model",
	})
}

func chatReply(t *testing.T, w http.ResponseWriter, content string) {
	t.Helper()
	resp := map[string]interface{}{
		"choices": []map[string]interface{}{
			{"message": map[string]string{"role": "assistant", "content": content}},
		},
	}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		t.Fatalf("encode reply: %v", err)
	}
}

func TestGenerateAlternativesParsesSections(t *testing.T) {
	// 模拟 chat/completions 服务
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" {
			t.Errorf("expected POST request, got %s", r.Method)
		}
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Errorf("missing bearer token, got %q", r.Header.Get("Authorization"))
		}
		chatReply(t, w, sampleAIResponse)
	}))
	defer server.Close()

	s := newTestAIService(server.URL, "test-key")
	alternatives, err := s.GenerateAlternatives(context.Background(), "function fib(n) {}", 3)
	if err != nil {
		t.Fatalf("GenerateAlternatives failed: %v", err)
	}

	if len(alternatives) != 3 {
		t.Fatalf("expected 3 alternatives, got %d", len(alternatives))
	}
	if alternatives[0].Name != "Iterative Fibonacci" {
		t.Errorf("expected first title 'Iterative Fibonacci', got %q", alternatives[0].Name)
	}
	if !strings.Contains(alternatives[0].Summary, "Loop-based") {
		t.Errorf("unexpected summary %q", alternatives[0].Summary)
	}
	if !strings.Contains(alternatives[1].CodeBlock, "memo[n]") {
		t.Errorf("expected second code block to come from the fence, got %q", alternatives[1].CodeBlock)
	}
}

func TestGenerateAlternativesNoAPIKey(t *testing.T) {
	s := newTestAIService("http://unused", "")
	_, err := s.GenerateAlternatives(context.Background(), "code", 3)
	if !errors.Is(err, ErrNoAPIKey) {
		t.Fatalf("expected ErrNoAPIKey, got %v", err)
	}
}

func TestGenerateAlternativesRetriesOnce(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		chatReply(t, w, sampleAIResponse)
	}))
	defer server.Close()

	s := newTestAIService(server.URL, "test-key")
	alternatives, err := s.GenerateAlternatives(context.Background(), "code", 3)
	if err != nil {
		t.Fatalf("expected retry to succeed, got %v", err)
	}
	if calls != 2 {
		t.Errorf("expected 2 attempts, got %d", calls)
	}
	if len(alternatives) != 3 {
		t.Errorf("expected 3 alternatives after retry, got %d", len(alternatives))
	}
}

func TestGenerateAlternativesGivesUpAfterTwoAttempts(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	s := newTestAIService(server.URL, "test-key")
	if _, err := s.GenerateAlternatives(context.Background(), "code", 3); err == nil {
		t.Fatal("expected error after exhausting attempts")
	}
	if calls != 2 {
		t.Errorf("expected exactly 2 attempts, got %d", calls)
	}
}

func TestParseAlternativesSalvagesBareFences(t *testing.T) {
	response := "Here are some ideas.\n" +
		"```javascript\nconst first = () => 1;\n```\n" +
		"and another\n" +
		"```javascript\nconst second = () => 2;\n```\n"

	alternatives := parseAlternatives(response, "original", 5)
	if len(alternatives) != 2 {
		t.Fatalf("expected 2 salvaged alternatives, got %d", len(alternatives))
	}
	if alternatives[0].Name != "AI Alternative 1" {
		t.Errorf("unexpected salvage name %q", alternatives[0].Name)
	}
	if !strings.Contains(alternatives[1].CodeBlock, "second") {
		t.Errorf("unexpected salvage code %q", alternatives[1].CodeBlock)
	}
}

func TestParseAlternativesFallsBackToOriginalCode(t *testing.T) {
	// 围栏内容太短时用原始代码兜底
	response := "### 1. Tiny\nA very short one.\n```javascript\nx\n```\n"

	alternatives := parseAlternatives(response, "function original() { return 42; }", 3)
	if len(alternatives) != 1 {
		t.Fatalf("expected 1 alternative, got %d", len(alternatives))
	}
	if !strings.Contains(alternatives[0].CodeBlock, "original") {
		t.Errorf("expected original code fallback, got %q", alternatives[0].CodeBlock)
	}
}

func TestAnalyzeComplexityHeuristics(t *testing.T) {
	cases := []struct {
		text string
		want string
	}{
		{"simple basic straightforward", "low"},
		{"matrix exponentiation advanced optimization", "high"},
		{"an ordinary approach", "med"},
	}
	for _, tc := range cases {
		if got := analyzeComplexity(tc.text); got != tc.want {
			t.Errorf("analyzeComplexity(%q) = %q, want %q", tc.text, got, tc.want)
		}
	}
}

func TestAnalyzeCode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		chatReply(t, w, "Sure, here is the analysis:\n{\"language\": \"javascript\", \"topics\": [\"array\", \"sorting\"], \"complexity\": \"simple\", \"concepts\": [\"loops\"]}")
	}))
	defer server.Close()

	s := newTestAIService(server.URL, "test-key")
	analysis, err := s.AnalyzeCode(context.Background(), "for (;;) {}")
	if err != nil {
		t.Fatalf("AnalyzeCode failed: %v", err)
	}
	if analysis.Language != "javascript" {
		t.Errorf("expected language javascript, got %q", analysis.Language)
	}
	if len(analysis.Topics) != 2 || analysis.Topics[1] != "sorting" {
		t.Errorf("unexpected topics %v", analysis.Topics)
	}
}
