package service

import (
	"testing"
)

const fibSnippet = `function fibonacci(n) {
  if (n <= 1) return n;
  return fibonacci(n - 1) + fibonacci(n - 2);
}`

func TestExtractFindsVocabularyAndIdentifiers(t *testing.T) {
	tagger := NewKeywordTagger()
	keywords := tagger.Extract(fibSnippet, "", nil)

	if !contains(keywords, "fibonacci") {
		t.Errorf("expected fibonacci in keywords, got %v", keywords)
	}
	if !contains(keywords, "function") {
		t.Errorf("expected function in keywords, got %v", keywords)
	}
	if !contains(keywords, "recursion") {
		t.Errorf("expected recursion pattern to be detected, got %v", keywords)
	}
}

func TestExtractKeepsDuplicates(t *testing.T) {
	tagger := NewKeywordTagger()
	keywords := tagger.Extract(fibSnippet, "", nil)

	n := 0
	for _, k := range keywords {
		if k == "fibonacci" {
			n++
		}
	}
	if n < 2 {
		t.Errorf("expected repeated fibonacci hits to be preserved, got %d in %v", n, keywords)
	}
}

func TestExtractDropsShortTokens(t *testing.T) {
	tagger := NewKeywordTagger()
	keywords := tagger.Extract("let x = 1;", "do it in go", []string{"db"})

	for _, k := range keywords {
		if len(k) <= 2 {
			t.Errorf("short token %q slipped through: %v", k, keywords)
		}
	}
}

func TestExtractIncludesDetailsAndCategories(t *testing.T) {
	tagger := NewKeywordTagger()
	keywords := tagger.Extract("let total = 1;", "optimize database queries", []string{"performance"})

	for _, want := range []string{"optimize", "database", "queries", "performance"} {
		if !contains(keywords, want) {
			t.Errorf("expected %q in keywords, got %v", want, keywords)
		}
	}
}

func TestSplitKeywords(t *testing.T) {
	algo, tech := SplitKeywords([]string{"fibonacci", "react", "search", "xy", "memoization"})

	if len(algo) != 3 {
		t.Errorf("expected 3 algorithm keywords, got %v", algo)
	}
	if !contains(algo, "fibonacci") || !contains(algo, "search") || !contains(algo, "memoization") {
		t.Errorf("unexpected algorithm split: %v", algo)
	}
	if len(tech) != 1 || tech[0] != "react" {
		t.Errorf("expected tech=[react], got %v", tech)
	}
}

func TestLooksRecursive(t *testing.T) {
	if !LooksRecursive(fibSnippet) {
		t.Error("fibonacci snippet should look recursive")
	}
	if LooksRecursive("let x = 1; x += 2;") {
		t.Error("plain assignment should not look recursive")
	}
}

func contains(list []string, want string) bool {
	for _, s := range list {
		if s == want {
			return true
		}
	}
	return false
}
