package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"expertline/internal/config"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"
)

// Alternative 一条对比方案，专家模式和 AI 模式共用同一结构
type Alternative struct {
	Name          string   `json:"name"`
	Summary       string   `json:"summary"`
	Pros          []string `json:"pros"`
	Cons          []string `json:"cons"`
	Complexity    string   `json:"complexity"`
	CodeBlock     string   `json:"codeBlock"`
	ReferenceLink string   `json:"referenceLink"`
	ReferenceType string   `json:"referenceType"`
	IsBaseline    bool     `json:"isBaseline"`
}

// ErrNoAPIKey 未配置生成式 API 凭证
var ErrNoAPIKey = errors.New("AI API key not configured")

const aiRequestTimeout = 30 * time.Second

// AIService 调用兼容 chat/completions 协议的生成式 API，
// 把半结构化的 markdown 回复解析成 Alternative 列表。
// 失败时返回错误，兜底策略由调用方（CompareService）决定。
type AIService struct {
	config config.AIConfig
	client *http.Client
}

func NewAIService(cfg config.AIConfig) *AIService {
	return &AIService{
		config: cfg,
		client: &http.Client{Timeout: aiRequestTimeout},
	}
}

type AIChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionRequest struct {
	Model       string          `json:"model"`
	Messages    []AIChatMessage `json:"messages"`
	Temperature float64         `json:"temperature,omitempty"`
	TopP        float64         `json:"top_p,omitempty"`
	TopK        int             `json:"top_k,omitempty"`
	MaxTokens   int             `json:"max_tokens,omitempty"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message AIChatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

const alternativesPrompt = `You are a senior software engineer. Analyze this code and provide 3 COMPLETELY DIFFERENT alternative implementations.

CODE TO ANALYZE:
%s

REQUIREMENTS:
1. Each alternative must be FUNCTIONAL and COMPLETE
2. Each must use a DIFFERENT programming approach
3. Provide working code that can be run immediately
4. Focus on different algorithms, patterns, or methodologies

RESPONSE FORMAT (EXACTLY):
### 1. [Descriptive Title]
Brief explanation of this approach and its benefits.

` + "```javascript\n// Complete working code here\n```" + `

### 2. [Descriptive Title]
Brief explanation of this approach and its benefits.

` + "```javascript\n// Complete working code here\n```" + `

### 3. [Descriptive Title]
Brief explanation of this approach and its benefits.

` + "```javascript\n// Complete working code here\n```" + `

IMPORTANT:
- Use different approaches: recursive vs iterative vs functional vs object-oriented
- Make sure each code example is complete and runnable
- Focus on different algorithms or design patterns
- Each should solve the same problem but in a fundamentally different way`

// GenerateAlternatives 最多尝试两次；每次失败（网络、超时、配额、解析为空）
// 换下一次重试，全部失败才返回错误。
func (s *AIService) GenerateAlternatives(ctx context.Context, code string, maxAlternatives int) ([]Alternative, error) {
	if s.config.APIKey == "" {
		return nil, ErrNoAPIKey
	}

	prompt := fmt.Sprintf(alternativesPrompt, code)

	var lastErr error
	for attempt := 1; attempt <= 2; attempt++ {
		content, err := s.chat(ctx, prompt)
		if err != nil {
			lastErr = err
			continue
		}

		alternatives := parseAlternatives(content, code, maxAlternatives)
		if len(alternatives) == 0 {
			lastErr = errors.New("AI response contained no usable alternatives")
			continue
		}
		return alternatives, nil
	}

	return nil, lastErr
}

// CodeAnalysis AI 对代码的语言/主题初判，仅用于增强专家检索
type CodeAnalysis struct {
	Language   string   `json:"language"`
	Topics     []string `json:"topics"`
	Complexity string   `json:"complexity"`
	Concepts   []string `json:"concepts"`
}

const analysisPrompt = `Analyze this code and provide:

1. Programming language (javascript, python, css, html, etc.)
2. Main topics/categories (array, function, css-grid, flexbox, etc.)
3. Code complexity (simple, medium, complex)
4. Key concepts used

Code:
%s

Respond in JSON format:
{
  "language": "detected_language",
  "topics": ["topic1", "topic2", "topic3"],
  "complexity": "simple|medium|complex",
  "concepts": ["concept1", "concept2"]
}`

var jsonObjectRe = regexp.MustCompile(`\{[\s\S]*\}`)

// AnalyzeCode 检测代码语言和主题。失败不影响主流程，调用方自行降级。
func (s *AIService) AnalyzeCode(ctx context.Context, code string) (*CodeAnalysis, error) {
	if s.config.APIKey == "" {
		return nil, ErrNoAPIKey
	}

	content, err := s.chat(ctx, fmt.Sprintf(analysisPrompt, code))
	if err != nil {
		return nil, err
	}

	raw := jsonObjectRe.FindString(content)
	if raw == "" {
		return nil, errors.New("AI analysis response contained no JSON object")
	}

	var analysis CodeAnalysis
	if err := json.Unmarshal([]byte(raw), &analysis); err != nil {
		return nil, err
	}
	if analysis.Language == "" {
		analysis.Language = "javascript"
	}
	return &analysis, nil
}

func (s *AIService) chat(ctx context.Context, prompt string) (string, error) {
	reqBody := chatCompletionRequest{
		Model: s.config.Model,
		Messages: []AIChatMessage{
			{Role: "user", Content: prompt},
		},
		Temperature: s.config.Temperature,
		TopP:        s.config.TopP,
		TopK:        s.config.TopK,
		MaxTokens:   s.config.MaxTokens,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", s.config.BaseURL+"/chat/completions", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.config.APIKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("AI API error (status %d): %s", resp.StatusCode, string(body))
	}

	var result chatCompletionResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", err
	}
	if result.Error != nil {
		return "", fmt.Errorf("AI API error: %s", result.Error.Message)
	}
	if len(result.Choices) == 0 {
		return "", errors.New("AI returned no choices")
	}

	return result.Choices[0].Message.Content, nil
}

var (
	sectionRe   = regexp.MustCompile(`### \d+\.`)
	titleTrimRe = regexp.MustCompile(`^[#*\s]+|[#*\s]+$`)
	codeFenceRe = regexp.MustCompile("```(?:javascript|js)?\n([\\s\\S]*?)\n```")
)

// parseAlternatives 按 "### n." 切分回复；每段取第一行做标题、
// 代码围栏前的文本做摘要、第一个围栏做代码。没有任何结构化段落时
// 退而收集散落的代码围栏。
func parseAlternatives(responseText, originalCode string, maxAlternatives int) []Alternative {
	var alternatives []Alternative

	sections := sectionRe.Split(responseText, -1)
	nonEmpty := sections[:0]
	for _, s := range sections {
		if strings.TrimSpace(s) != "" {
			nonEmpty = append(nonEmpty, s)
		}
	}
	sections = nonEmpty

	for i := 0; i < len(sections) && i < maxAlternatives; i++ {
		section := strings.TrimSpace(sections[i])

		title := ""
		for _, line := range strings.Split(section, "\n") {
			if strings.TrimSpace(line) != "" {
				title = titleTrimRe.ReplaceAllString(line, "")
				break
			}
		}
		if len(title) < 3 {
			title = fmt.Sprintf("Alternative %d", i+1)
		}

		beforeFence := strings.SplitN(section, "```", 2)[0]
		summary := strings.TrimSpace(strings.Replace(beforeFence, title, "", 1))
		summary = strings.Join(strings.Fields(summary), " ")
		if summary == "" {
			summary = fmt.Sprintf("Alternative implementation approach %d", i+1)
		}

		codeBlock := ""
		if m := codeFenceRe.FindStringSubmatch(section); m != nil {
			codeBlock = strings.TrimSpace(m[1])
		}
		if len(codeBlock) < 10 {
			codeBlock = originalCode
		}

		contentText := strings.ToLower(title + " " + summary + " " + codeBlock)
		pros, cons := analyzeProsCons(contentText)

		alternatives = append(alternatives, Alternative{
			Name:       title,
			Summary:    summary,
			Pros:       pros,
			Cons:       cons,
			Complexity: analyzeComplexity(contentText),
			CodeBlock:  codeBlock,
		})
	}

	// 没有结构化段落：打捞散落的代码围栏
	if len(alternatives) == 0 {
		blocks := codeFenceRe.FindAllStringSubmatch(responseText, -1)
		for i := 0; i < len(blocks) && i < maxAlternatives; i++ {
			alternatives = append(alternatives, Alternative{
				Name:       fmt.Sprintf("AI Alternative %d", i+1),
				Summary:    fmt.Sprintf("AI-generated implementation %d with working code", i+1),
				Pros:       []string{"AI-generated approach", "Working code example"},
				Cons:       []string{"Consider your specific needs"},
				Complexity: "med",
				CodeBlock:  strings.TrimSpace(blocks[i][1]),
			})
		}
	}

	return alternatives
}

// analyzeProsCons 从文本子串猜优缺点，猜不出给默认值
func analyzeProsCons(contentText string) (pros, cons []string) {
	if strings.Contains(contentText, "recursive") || strings.Contains(contentText, "recursion") {
		pros = append(pros, "Elegant recursive solution")
		cons = append(cons, "May cause stack overflow for large inputs")
	}
	if strings.Contains(contentText, "iterative") || strings.Contains(contentText, "loop") ||
		strings.Contains(contentText, "for") || strings.Contains(contentText, "while") {
		pros = append(pros, "Memory efficient")
		cons = append(cons, "More verbose than recursive")
	}
	if strings.Contains(contentText, "functional") || strings.Contains(contentText, "map") ||
		strings.Contains(contentText, "filter") || strings.Contains(contentText, "reduce") {
		pros = append(pros, "Functional programming style")
		cons = append(cons, "May be less familiar to some developers")
	}
	if strings.Contains(contentText, "optimized") || strings.Contains(contentText, "performance") ||
		strings.Contains(contentText, "efficient") {
		pros = append(pros, "Performance optimized")
	}
	if strings.Contains(contentText, "simple") || strings.Contains(contentText, "basic") ||
		strings.Contains(contentText, "easy") {
		pros = append(pros, "Easy to understand")
	}
	if strings.Contains(contentText, "modern") || strings.Contains(contentText, "es6") ||
		strings.Contains(contentText, "arrow") {
		pros = append(pros, "Modern JavaScript")
	}
	if strings.Contains(contentText, "object") || strings.Contains(contentText, "class") ||
		strings.Contains(contentText, "oop") {
		pros = append(pros, "Object-oriented approach")
		cons = append(cons, "More complex structure")
	}

	if len(pros) == 0 {
		pros = []string{"AI-generated approach", "Well-structured code"}
	}
	if len(cons) == 0 {
		cons = []string{"Consider your specific needs", "Test thoroughly"}
	}
	return pros, cons
}

func analyzeComplexity(contentText string) string {
	switch {
	case strings.Contains(contentText, "simple") || strings.Contains(contentText, "basic") ||
		strings.Contains(contentText, "easy") || strings.Contains(contentText, "straightforward"):
		return "low"
	case strings.Contains(contentText, "complex") || strings.Contains(contentText, "advanced") ||
		strings.Contains(contentText, "optimized") || strings.Contains(contentText, "sophisticated"):
		return "high"
	default:
		return "med"
	}
}
