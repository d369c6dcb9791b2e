package service

import (
	"regexp"
	"strings"
)

// Tagger 从提交的代码里提取检索标签。当前实现是启发式的关键词匹配，
// 后续可以换成真正的分类模型而不动调用方。
type Tagger interface {
	Extract(code, details string, categories []string) []string
}

// techVocabulary 固定的技术与算法词表
var techVocabulary = []string{
	"react", "node", "javascript", "typescript", "express", "mysql", "database",
	"css", "flexbox", "grid", "usestate", "useeffect", "redux", "context",
	"hook", "component", "api", "fetch", "json", "sql", "query", "index",
	"optimize", "performance", "cache", "stream", "cluster", "middleware",
	"compression", "gzip", "memo", "usememo", "usecallback", "reducer",
	"state", "props", "jsx", "html", "dom", "browser", "server", "client",
	"recursion", "recursive", "iteration", "iterative", "loop", "for", "while",
	"fibonacci", "factorial", "sort", "search", "binary", "linear", "hash",
	"array", "object", "string", "number", "boolean", "promise", "async", "await",
	"function", "arrow", "class", "constructor", "method", "property", "variable",
	"map", "filter", "reduce", "foreach", "find", "includes", "slice", "splice",
	"memoization", "dynamic", "programming", "algorithm", "complexity", "optimization",
}

// algorithmKeywordSet 优先级更高的算法模式关键词（闭集）
var algorithmKeywordSet = map[string]bool{
	"fibonacci":   true,
	"factorial":   true,
	"recursion":   true,
	"iteration":   true,
	"sorting":     true,
	"search":      true,
	"memoization": true,
}

var (
	vocabularyRe = regexp.MustCompile(`\b(` + strings.Join(techVocabulary, "|") + `)\b`)
	// 标识符匹配：function foo / const foo = / foo:
	identifierRe = regexp.MustCompile(`function\s+(\w+)|const\s+(\w+)\s*=|(\w+)\s*:`)
	identCleanRe = regexp.MustCompile(`function\s+|const\s+|=|\s*:`)

	fibRe    = regexp.MustCompile(`(?i)fib|fibo`)
	factRe   = regexp.MustCompile(`(?i)fact`)
	sortRe   = regexp.MustCompile(`(?i)sort|bubble|quick|merge`)
	searchRe = regexp.MustCompile(`(?i)search|binary|linear`)
	recurRe  = regexp.MustCompile(`(?i)recursive|recursion`)
	loopRe   = regexp.MustCompile(`(?i)loop|for|while`)
	memoRe   = regexp.MustCompile(`(?i)memo|cache|dynamic`)
)

// KeywordTagger 基于词表和正则的默认实现。不做归一化和去重，
// 纯粹的尽力而为，"format" 里的 "for" 也会被算法启发式记上一笔。
type KeywordTagger struct{}

func NewKeywordTagger() *KeywordTagger {
	return &KeywordTagger{}
}

func (t *KeywordTagger) Extract(code, details string, categories []string) []string {
	var keywords []string

	// 1. 词表命中
	keywords = append(keywords, vocabularyRe.FindAllString(strings.ToLower(code), -1)...)

	// 2. 标识符名
	for _, match := range identifierRe.FindAllString(code, -1) {
		name := strings.TrimSpace(identCleanRe.ReplaceAllString(match, ""))
		if len(name) > 2 {
			keywords = append(keywords, name)
		}
	}

	// 3. 算法模式
	keywords = append(keywords, detectAlgorithmPatterns(code)...)

	// 4. 描述文本和分类
	if details != "" {
		keywords = append(keywords, strings.Fields(strings.ToLower(details))...)
	}
	keywords = append(keywords, categories...)

	filtered := keywords[:0]
	for _, k := range keywords {
		if len(k) > 2 {
			filtered = append(filtered, k)
		}
	}
	return filtered
}

func detectAlgorithmPatterns(code string) []string {
	var patterns []string
	if strings.Contains(code, "fibonacci") || fibRe.MatchString(code) {
		patterns = append(patterns, "fibonacci")
	}
	if strings.Contains(code, "factorial") || factRe.MatchString(code) {
		patterns = append(patterns, "factorial")
	}
	if sortRe.MatchString(code) {
		patterns = append(patterns, "sorting")
	}
	if searchRe.MatchString(code) {
		patterns = append(patterns, "search")
	}
	if recurRe.MatchString(code) || (strings.Contains(code, "return ") && strings.Contains(code, "(")) {
		patterns = append(patterns, "recursion")
	}
	if loopRe.MatchString(code) {
		patterns = append(patterns, "iteration")
	}
	if memoRe.MatchString(code) {
		patterns = append(patterns, "memoization")
	}
	return patterns
}

// SplitKeywords 把关键词分成高优先级的算法词和其余的技术词
func SplitKeywords(keywords []string) (algo, tech []string) {
	for _, k := range keywords {
		if algorithmKeywordSet[k] {
			algo = append(algo, k)
		} else if len(k) > 2 {
			tech = append(tech, k)
		}
	}
	return algo, tech
}

// LooksRecursive 供 AI 兜底模板判断是否追加迭代版本
func LooksRecursive(code string) bool {
	return recurRe.MatchString(code) || (strings.Contains(code, "return ") && strings.Contains(code, "("))
}
