package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"expertline/internal/model"
	"expertline/internal/repository"
	"expertline/internal/util"

	"go.uber.org/zap"
)

const (
	CompareModeExpert = "expert"
	CompareModeAI     = "ai"
)

// CompareRequest 对比请求
type CompareRequest struct {
	Code            string   `json:"code" binding:"required"`
	Details         string   `json:"details"`
	Categories      []string `json:"categories"`
	MaxAlternatives int      `json:"maxAlternatives"`
	Mode            string   `json:"mode"`
}

// CompareResult 对比结果，Message 面向用户解释降级原因
type CompareResult struct {
	Mode        string        `json:"mode"`
	Comparisons []Alternative `json:"comparisons"`
	Message     string        `json:"message,omitempty"`
}

type CompareService struct {
	PostRepo    *repository.PostRepository
	RequestRepo *repository.TopicRequestRepository
	Tagger      Tagger
	AI          *AIService
	Logger      *zap.Logger
}

func NewCompareService(postRepo *repository.PostRepository, requestRepo *repository.TopicRequestRepository, tagger Tagger, ai *AIService, logger *zap.Logger) *CompareService {
	return &CompareService{
		PostRepo:    postRepo,
		RequestRepo: requestRepo,
		Tagger:      tagger,
		AI:          ai,
		Logger:      logger,
	}
}

// Compare 先数专家数据再分流：专家模式数据足够走社区帖子，
// 否则记录 TopicRequest；AI 模式走生成，失败降级到模板。
func (s *CompareService) Compare(ctx context.Context, req CompareRequest) (*CompareResult, error) {
	maxAlternatives := req.MaxAlternatives
	if maxAlternatives < 1 {
		maxAlternatives = 3
	}
	if maxAlternatives > 5 {
		maxAlternatives = 5
	}
	mode := req.Mode
	if mode == "" {
		mode = CompareModeExpert
	}

	keywords := s.Tagger.Extract(req.Code, req.Details, req.Categories)
	algoKeywords, techKeywords := SplitKeywords(keywords)

	expertCount := s.countExpertData(req.Code, algoKeywords, techKeywords)

	if mode == CompareModeExpert && expertCount >= util.MinExpertMatches {
		return s.compareExpert(ctx, req.Code, keywords, algoKeywords, techKeywords, maxAlternatives)
	}

	// 专家数据不足：记录话题缺口
	topicKey := deriveTopicKey(keywords, req.Code)
	if _, err := s.RequestRepo.Record(topicKey, truncate(req.Code, 500)); err != nil {
		s.Logger.Warn("记录话题请求失败", zap.String("topic_key", topicKey), zap.Error(err))
	}

	if mode == CompareModeExpert {
		return &CompareResult{
			Mode:        CompareModeExpert,
			Comparisons: []Alternative{},
			Message:     "No expert data found for this topic. Try AI Mode or contribute by creating posts on this topic.",
		}, nil
	}

	return s.compareAI(ctx, req.Code, maxAlternatives), nil
}

// countExpertData 关键词计数，不足 3 退化到代码模式计数，
// 仍不足且库存 ≥10 时按上限 5 兜底。
func (s *CompareService) countExpertData(code string, algoKeywords, techKeywords []string) int {
	var count int64
	if len(algoKeywords) > 0 || len(techKeywords) > 0 {
		n, err := s.PostRepo.CountByKeywords(algoKeywords, techKeywords)
		if err != nil {
			s.Logger.Warn("关键词计数失败", zap.Error(err))
		} else {
			count = n
		}
	}

	if count < util.MinExpertMatches {
		patterns := codePatterns(code, true)
		if len(patterns) > 0 {
			n, err := s.PostRepo.CountByCodePatterns(patterns)
			if err != nil {
				s.Logger.Warn("代码模式计数失败", zap.Error(err))
			} else {
				count = n
			}
		}
	}

	if count < util.MinExpertMatches {
		total, err := s.PostRepo.Count()
		if err == nil && total >= util.BroadFallbackMinPosts {
			count = total
			if count > util.BroadFallbackCap {
				count = util.BroadFallbackCap
			}
		}
	}

	return int(count)
}

func (s *CompareService) compareExpert(ctx context.Context, code string, keywords, algoKeywords, techKeywords []string, maxAlternatives int) (*CompareResult, error) {
	enhancedAlgo, enhancedTech := algoKeywords, techKeywords
	var analysis *CodeAnalysis
	if s.AI != nil {
		a, err := s.AI.AnalyzeCode(ctx, code)
		if err != nil {
			if !errors.Is(err, ErrNoAPIKey) {
				s.Logger.Warn("AI 代码分析失败，用原始关键词检索", zap.Error(err))
			}
		} else {
			analysis = a
			enhanced := append(append([]string{}, keywords...), a.Topics...)
			enhanced = append(enhanced, a.Language)
			enhanced = append(enhanced, a.Concepts...)
			enhancedAlgo, enhancedTech = SplitKeywords(enhanced)
		}
	}

	posts, err := s.PostRepo.FindByKeywords(enhancedAlgo, enhancedTech, maxAlternatives)
	if err != nil {
		return nil, err
	}

	if len(posts) == 0 {
		patterns := codePatterns(code, false)
		if len(patterns) > 0 {
			posts, err = s.PostRepo.FindByCodePatterns(patterns, maxAlternatives)
			if err != nil {
				return nil, err
			}
		}
	}

	if len(posts) == 0 {
		topicKey := analysisTopicKey(analysis)
		if topicKey == "" {
			topicKey = deriveTopicKey(keywords, code)
		}
		if _, err := s.RequestRepo.Record(topicKey, truncate(code, 500)); err != nil {
			s.Logger.Warn("记录话题请求失败", zap.String("topic_key", topicKey), zap.Error(err))
		}
		return &CompareResult{
			Mode:        CompareModeExpert,
			Comparisons: []Alternative{},
			Message:     "No expert data found for this topic. Try AI Mode or contribute by creating posts on this topic.",
		}, nil
	}

	comparisons := make([]Alternative, 0, len(posts))
	for _, post := range posts {
		comparisons = append(comparisons, expertAlternative(&post))
	}
	return &CompareResult{Mode: CompareModeExpert, Comparisons: comparisons}, nil
}

func (s *CompareService) compareAI(ctx context.Context, code string, maxAlternatives int) *CompareResult {
	alternatives, err := s.AI.GenerateAlternatives(ctx, code, maxAlternatives)
	if err != nil {
		if errors.Is(err, ErrNoAPIKey) {
			fallback := fallbackAlternatives(code, maxAlternatives)
			return &CompareResult{
				Mode:        CompareModeAI,
				Comparisons: fallback,
				Message:     fmt.Sprintf("AI provider not configured. Showing %d smart fallback options. Set the AI API key to enable AI-powered alternatives.", len(fallback)),
			}
		}
		s.Logger.Warn("AI 生成失败，降级到模板", zap.Error(err))
		fallback := fallbackAlternatives(code, maxAlternatives)
		return &CompareResult{
			Mode:        CompareModeAI,
			Comparisons: fallback,
			Message:     fmt.Sprintf("AI couldn't generate alternatives. Showing %d smart fallback options based on your code analysis.", len(fallback)),
		}
	}

	alternatives = padAlternatives(alternatives, code, maxAlternatives)
	alternatives = decorateAIAlternatives(alternatives, code)
	return &CompareResult{
		Mode:        CompareModeAI,
		Comparisons: alternatives,
		Message:     fmt.Sprintf("AI generated %d code alternatives", len(alternatives)),
	}
}

// codePatterns 粗粒度结构信号。计数阶段带 if，检索阶段不带。
func codePatterns(code string, includeIf bool) []string {
	var patterns []string
	if strings.Contains(code, "function") {
		patterns = append(patterns, "function")
	}
	if strings.Contains(code, "=>") {
		patterns = append(patterns, "=>")
	}
	if strings.Contains(code, "return") {
		patterns = append(patterns, "return")
	}
	if includeIf && strings.Contains(code, "if") {
		patterns = append(patterns, "if")
	}
	return patterns
}

func deriveTopicKey(keywords []string, code string) string {
	if len(keywords) > 0 {
		return strings.ToLower(strings.Join(keywords, " "))
	}
	return strings.ToLower(truncate(code, 100))
}

var topicKeySanitizeRe = regexp.MustCompile(`[^a-z0-9-]`)

func analysisTopicKey(analysis *CodeAnalysis) string {
	if analysis == nil {
		return ""
	}
	key := strings.ToLower(analysis.Language + "-" + strings.Join(analysis.Topics, "-"))
	return topicKeySanitizeRe.ReplaceAllString(key, "-")
}

func truncate(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}

// expertAlternative 把社区帖子包装成对比方案，
// 优缺点和复杂度由分类与 E/O 比值推导。
func expertAlternative(post *model.Post) Alternative {
	categories := strings.ToLower(post.Categories)

	var pros []string
	if strings.Contains(categories, "performance") {
		pros = append(pros, "Optimized for performance")
	}
	if strings.Contains(categories, "scalability") {
		pros = append(pros, "Scalable solution")
	}
	if strings.Contains(categories, "simplicity") {
		pros = append(pros, "Simple and clean")
	}
	if strings.Contains(categories, "security") {
		pros = append(pros, "Security-focused")
	}
	if strings.Contains(categories, "maintainability") {
		pros = append(pros, "Easy to maintain")
	}
	if post.EoRatio > 2 {
		pros = append(pros, "Highly endorsed by community")
	}
	if post.IsBaseline {
		pros = append(pros, "Baseline implementation", "Reference standard")
	}
	if len(pros) == 0 {
		pros = []string{"Community-tested approach", "Real-world implementation"}
	}

	var cons []string
	if post.EoRatio < 1.5 {
		cons = append(cons, "Mixed community feedback")
	}
	if strings.Contains(categories, "complexity") {
		cons = append(cons, "May be complex to implement")
	}
	if strings.Contains(categories, "performance") && post.EoRatio < 2 {
		cons = append(cons, "Performance trade-offs")
	}
	if len(cons) == 0 {
		cons = []string{"Requires careful implementation", "Consider alternatives"}
	}

	complexity := "med"
	if post.EoRatio > 3 && !strings.Contains(categories, "complexity") {
		complexity = "low"
	} else if post.EoRatio < 1.5 || strings.Contains(categories, "complexity") {
		complexity = "high"
	}

	return Alternative{
		Name:          post.Title,
		Summary:       post.Description,
		Pros:          pros,
		Cons:          cons,
		Complexity:    complexity,
		CodeBlock:     post.Code,
		ReferenceLink: "/posts/" + post.ID,
		ReferenceType: "post",
		IsBaseline:    post.IsBaseline,
	}
}
