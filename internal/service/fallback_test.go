package service

import (
	"strings"
	"testing"
)

func TestFallbackAlternativesBaseline(t *testing.T) {
	code := "function add(a, b) { console.log(a + b); }"
	alternatives := fallbackAlternatives(code, 3)

	if len(alternatives) != 3 {
		t.Fatalf("expected 3 alternatives, got %d", len(alternatives))
	}
	if !alternatives[0].IsBaseline {
		t.Error("first alternative should be the baseline")
	}
	if alternatives[0].CodeBlock != code {
		t.Errorf("baseline code must be the input verbatim, got %q", alternatives[0].CodeBlock)
	}
	if alternatives[0].Name != "Basic Implementation" {
		t.Errorf("unexpected baseline name %q", alternatives[0].Name)
	}
}

func TestFallbackAddsIterativeForRecursiveCode(t *testing.T) {
	code := "function fact(n) { if (n <= 1) return 1; return n * fact(n - 1); }"
	alternatives := fallbackAlternatives(code, 4)

	found := false
	for _, alt := range alternatives {
		if alt.Name == "Iterative Approach" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected Iterative Approach for recursive input, got %v", names(alternatives))
	}
}

func TestFallbackPadsToRequestedCount(t *testing.T) {
	alternatives := fallbackAlternatives("let x = 1; x += 2;", 5)

	if len(alternatives) != 5 {
		t.Fatalf("expected padding to 5, got %d", len(alternatives))
	}
	last := alternatives[4]
	if !strings.HasPrefix(last.Name, "Additional Alternative") {
		t.Errorf("expected padded entry, got %q", last.Name)
	}
	if last.ReferenceLink == "" || last.ReferenceType != "external" {
		t.Errorf("padded entry missing reference: %+v", last)
	}
}

func TestFallbackTruncates(t *testing.T) {
	alternatives := fallbackAlternatives("function f() { return 1; }", 1)
	if len(alternatives) != 1 {
		t.Fatalf("expected truncation to 1, got %d", len(alternatives))
	}
}

func TestExternalReferenceLinkBuckets(t *testing.T) {
	link := externalReferenceLink("Basic Implementation", "const App = () => <div />; // react usestate", 0)
	if !strings.Contains(link, "react") {
		t.Errorf("expected a react link, got %q", link)
	}

	link = externalReferenceLink("Database tuning", "SELECT * FROM users", 1)
	if link != dbLinks[1] {
		t.Errorf("expected dbLinks[1], got %q", link)
	}

	// 超出桶长度按模回绕
	link = externalReferenceLink("Whatever", "plain text", 7)
	if link != generalLinks[7%len(generalLinks)] {
		t.Errorf("expected wrap-around link, got %q", link)
	}
}

func TestMarkBaselinePrefersBasicNames(t *testing.T) {
	alternatives := markBaseline([]Alternative{
		{Name: "Fancy Version"},
		{Name: "Simple Loop"},
	})
	if alternatives[0].IsBaseline {
		t.Error("fancy version should not be baseline")
	}
	if !alternatives[1].IsBaseline {
		t.Error("simple version should be baseline")
	}

	alternatives = markBaseline([]Alternative{
		{Name: "Alpha"},
		{Name: "Beta"},
	})
	if !alternatives[0].IsBaseline {
		t.Error("first entry should be baseline when nothing matches")
	}
}

func TestDecorateAIAlternativesFillsGaps(t *testing.T) {
	alternatives := decorateAIAlternatives([]Alternative{
		{Name: "", Summary: "", CodeBlock: "x"},
	}, "function original() { return 42; }")

	alt := alternatives[0]
	if alt.Name != "Alternative 1" {
		t.Errorf("expected default name, got %q", alt.Name)
	}
	if !strings.Contains(alt.CodeBlock, "original") {
		t.Errorf("expected original code substitution, got %q", alt.CodeBlock)
	}
	if alt.ReferenceLink == "" {
		t.Error("expected a reference link")
	}
	if len(alt.Pros) == 0 || len(alt.Cons) == 0 {
		t.Error("expected default pros and cons")
	}
}

func names(alternatives []Alternative) []string {
	out := make([]string, len(alternatives))
	for i, a := range alternatives {
		out[i] = a.Name
	}
	return out
}
