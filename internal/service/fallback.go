package service

import (
	"fmt"
	"strings"
)

// 外部参考链接按代码关键词分桶，桶内按序号轮转
var (
	reactLinks = []string{
		"https://react.dev/learn/state-a-components-memory",
		"https://react.dev/reference/react/useState",
		"https://react.dev/reference/react/useEffect",
		"https://react.dev/learn/you-might-not-need-an-effect",
		"https://react.dev/learn/keeping-components-pure",
	}
	nodeLinks = []string{
		"https://nodejs.org/en/docs/guides/anatomy-of-an-http-transaction/",
		"https://expressjs.com/en/guide/routing.html",
		"https://nodejs.org/en/docs/guides/event-loop-timers-and-nexttick/",
		"https://nodejs.org/en/docs/guides/blocking-vs-non-blocking/",
		"https://expressjs.com/en/guide/using-middleware.html",
	}
	dbLinks = []string{
		"https://dev.mysql.com/doc/refman/8.0/en/optimization.html",
		"https://www.postgresql.org/docs/current/performance-tips.html",
		"https://www.mongodb.com/docs/manual/core/indexes/",
		"https://dev.mysql.com/doc/refman/8.0/en/innodb-index-types.html",
		"https://www.postgresql.org/docs/current/sql-createindex.html",
	}
	cssLinks = []string{
		"https://developer.mozilla.org/en-US/docs/Web/CSS/CSS_Flexible_Box_Layout",
		"https://developer.mozilla.org/en-US/docs/Web/CSS/CSS_Grid_Layout",
		"https://css-tricks.com/snippets/css/a-guide-to-flexbox/",
		"https://css-tricks.com/snippets/css/complete-guide-grid/",
		"https://web.dev/learn/css/layout/",
	}
	perfLinks = []string{
		"https://web.dev/performance/",
		"https://developer.mozilla.org/en-US/docs/Web/Performance",
		"https://web.dev/vitals/",
		"https://developers.google.com/web/fundamentals/performance",
		"https://web.dev/optimize-long-tasks/",
	}
	jsLinks = []string{
		"https://developer.mozilla.org/en-US/docs/Web/JavaScript/Guide/Functions",
		"https://developer.mozilla.org/en-US/docs/Web/JavaScript/Guide/Working_with_Objects",
		"https://javascript.info/async-await",
		"https://developer.mozilla.org/en-US/docs/Web/JavaScript/Closures",
		"https://javascript.info/promise-basics",
	}
	generalLinks = []string{
		"https://developer.mozilla.org/en-US/docs/Web/JavaScript",
		"https://www.freecodecamp.org/news/",
		"https://stackoverflow.com/questions/tagged/javascript",
		"https://github.com/topics/programming",
		"https://www.w3schools.com/js/",
	}
)

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// externalReferenceLink 根据代码与方案名的关键词选桶，index 轮转选链接
func externalReferenceLink(approachName, code string, index int) string {
	techStack := strings.ToLower(code)
	approach := strings.ToLower(approachName)

	var links []string
	switch {
	case containsAny(techStack, "react", "jsx", "usestate") || strings.Contains(approach, "react"):
		links = reactLinks
	case containsAny(techStack, "node", "express", "server") || strings.Contains(approach, "node"):
		links = nodeLinks
	case containsAny(techStack, "sql", "database", "mysql") || strings.Contains(approach, "database"):
		links = dbLinks
	case containsAny(techStack, "css", "flexbox", "grid") || strings.Contains(approach, "css"):
		links = cssLinks
	case containsAny(techStack, "performance", "optimize", "cache") || strings.Contains(approach, "performance"):
		links = perfLinks
	case containsAny(techStack, "javascript", "function", "async") || strings.Contains(approach, "javascript"):
		links = jsLinks
	default:
		links = generalLinks
	}

	return links[index%len(links)]
}

// fallbackAlternatives 确定性的模板方案：AI 不可用或解析失败时使用。
// 第一条永远是原始代码本身（基线）。
func fallbackAlternatives(code string, maxAlternatives int) []Alternative {
	alternatives := []Alternative{
		{
			Name:          "Basic Implementation",
			Summary:       "Simple, straightforward approach - serves as the baseline reference",
			Pros:          []string{"Easy to understand", "Quick to implement", "Low complexity"},
			Cons:          []string{"May not scale well", "Limited flexibility"},
			Complexity:    "low",
			CodeBlock:     code,
			ReferenceLink: externalReferenceLink("Basic Implementation", code, 0),
			ReferenceType: "external",
			IsBaseline:    true,
		},
		{
			Name:          "Optimized Approach",
			Summary:       "Performance-focused solution with better efficiency",
			Pros:          []string{"Better performance", "More scalable", "Memory efficient"},
			Cons:          []string{"More complex logic", "Harder to debug"},
			Complexity:    "med",
			CodeBlock:     "// Optimized version of your code\n// Focus on performance and efficiency\n" + code + "\n\n// Consider using:\n// - More efficient algorithms\n// - Better data structures\n// - Reduced time complexity",
			ReferenceLink: externalReferenceLink("Optimized Approach", code, 1),
			ReferenceType: "external",
		},
		{
			Name:          "Alternative Implementation",
			Summary:       "Different approach using alternative patterns",
			Pros:          []string{"Different perspective", "Alternative patterns", "Creative solution"},
			Cons:          []string{"May be unfamiliar", "Different paradigm"},
			Complexity:    "med",
			CodeBlock:     "// Alternative implementation approach\n// Using different patterns or libraries\n" + code + "\n\n// Consider:\n// - Different programming paradigms\n// - Alternative libraries or frameworks\n// - Creative problem-solving approaches",
			ReferenceLink: externalReferenceLink("Alternative Implementation", code, 2),
			ReferenceType: "external",
		},
	}

	if LooksRecursive(code) {
		alternatives = append(alternatives, Alternative{
			Name:          "Iterative Approach",
			Summary:       "Loop-based implementation to avoid recursion",
			Pros:          []string{"No stack overflow", "Better performance", "Memory efficient"},
			Cons:          []string{"More complex logic", "Less intuitive"},
			Complexity:    "med",
			CodeBlock:     "// Iterative version to replace recursion\n// Convert recursive calls to loops\n" + code + "\n\n// Implementation strategy:\n// - Use loops instead of recursive calls\n// - Maintain state with variables\n// - Avoid stack overflow issues",
			ReferenceLink: externalReferenceLink("Iterative Approach", code, 3),
			ReferenceType: "external",
		})
	}

	return padAlternatives(alternatives, code, maxAlternatives)
}

// padAlternatives 不足补 "Additional Alternative N"，超出截断
func padAlternatives(alternatives []Alternative, code string, maxAlternatives int) []Alternative {
	for len(alternatives) < maxAlternatives {
		n := len(alternatives) + 1
		alternatives = append(alternatives, Alternative{
			Name:          fmt.Sprintf("Additional Alternative %d", n),
			Summary:       fmt.Sprintf("Additional implementation approach %d", n),
			Pros:          []string{"Unique perspective", "Different methodology"},
			Cons:          []string{"May require learning", "Different approach"},
			Complexity:    "med",
			CodeBlock:     fmt.Sprintf("// Additional Alternative %d\n// Different approach to solve the same problem\n%s\n\n// This approach focuses on:\n// - Alternative problem-solving method\n// - Different trade-offs\n// - Unique implementation strategy", n, code),
			ReferenceLink: externalReferenceLink(fmt.Sprintf("Additional Alternative %d", n), code, n-1),
			ReferenceType: "external",
		})
	}
	if len(alternatives) > maxAlternatives {
		alternatives = alternatives[:maxAlternatives]
	}
	return alternatives
}

// markBaseline 名字或摘要含 basic/simple/standard 的方案标为基线，
// 都没有就标第一条。纯展示用途。
func markBaseline(alternatives []Alternative) []Alternative {
	marked := false
	for i := range alternatives {
		name := strings.ToLower(alternatives[i].Name)
		summary := strings.ToLower(alternatives[i].Summary)
		if containsAny(name, "basic", "simple", "standard") ||
			containsAny(summary, "basic", "simple", "straightforward") {
			alternatives[i].IsBaseline = true
			marked = true
		} else {
			alternatives[i].IsBaseline = false
		}
	}
	if !marked && len(alternatives) > 0 {
		alternatives[0].IsBaseline = true
	}
	return alternatives
}

// decorateAIAlternatives 补齐链接、兜底字段并标基线
func decorateAIAlternatives(alternatives []Alternative, code string) []Alternative {
	for i := range alternatives {
		if alternatives[i].Name == "" {
			alternatives[i].Name = fmt.Sprintf("Alternative %d", i+1)
		}
		if alternatives[i].Summary == "" {
			alternatives[i].Summary = "Alternative implementation approach"
		}
		if len(alternatives[i].Pros) == 0 {
			alternatives[i].Pros = []string{"Well-structured approach"}
		}
		if len(alternatives[i].Cons) == 0 {
			alternatives[i].Cons = []string{"Consider alternatives"}
		}
		if alternatives[i].Complexity == "" {
			alternatives[i].Complexity = "med"
		}
		if len(alternatives[i].CodeBlock) < 10 ||
			strings.Contains(alternatives[i].CodeBlock, "// your code here") ||
			strings.Contains(alternatives[i].CodeBlock, "TODO") {
			alternatives[i].CodeBlock = fmt.Sprintf("// %s approach\n%s", alternatives[i].Name, code)
		}
		alternatives[i].ReferenceLink = externalReferenceLink(alternatives[i].Name, code, i)
		alternatives[i].ReferenceType = "external"
	}
	return markBaseline(alternatives)
}
