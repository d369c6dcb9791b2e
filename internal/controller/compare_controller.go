package controller

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"expertline/internal/config"
	"expertline/internal/service"
	"expertline/internal/util"
	"expertline/pkg/monitoring"
	"expertline/pkg/ratelimit"

	"github.com/gin-gonic/gin"
)

type CompareController struct {
	CompareService *service.CompareService
	Limiter        *ratelimit.Limiter
	MaxRequests    int
	Window         time.Duration
}

func NewCompareController(compareService *service.CompareService, limiter *ratelimit.Limiter, cfg *config.Config) *CompareController {
	return &CompareController{
		CompareService: compareService,
		Limiter:        limiter,
		MaxRequests:    cfg.RateLimit.CompareMax,
		Window:         time.Duration(cfg.RateLimit.CompareWindowS) * time.Second,
	}
}

// Compare godoc
// @Summary 代码方案对比
// @Description 专家模式返回社区高票帖子,AI 模式生成替代实现;
// @Description 专家数据不足或 AI 不可用时降级并在 message 说明
// @Tags 对比
// @Accept  json
// @Produce  json
// @Param   body body service.CompareRequest true "对比请求"
// @Success 200 {object} util.Response{data=service.CompareResult}
// @Failure 400 {object} util.Response
// @Failure 429 {object} util.Response "请求过于频繁"
// @Router /api/compare [post]
func (c *CompareController) Compare(ctx *gin.Context) {
	rl := c.Limiter.Check(ctx.ClientIP(), "compare", c.MaxRequests, c.Window)
	ctx.Header("X-RateLimit-Limit", strconv.Itoa(c.MaxRequests))
	ctx.Header("X-RateLimit-Remaining", strconv.Itoa(rl.Remaining))
	if !rl.Allowed {
		retryAfter := int(rl.Reset.Round(time.Second).Seconds())
		if retryAfter < 1 {
			retryAfter = 1
		}
		ctx.Header("Retry-After", strconv.Itoa(retryAfter))
		util.TooManyRequests(ctx, fmt.Sprintf("Too many compare requests, retry in %ds", retryAfter))
		return
	}

	var req service.CompareRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.CompareService.Compare(ctx.Request.Context(), req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	monitoring.CompareMode.WithLabelValues(outcomeLabel(result)).Inc()
	util.Success(ctx, result)
}

// outcomeLabel 区分正常 AI 结果和模板降级,指标用
func outcomeLabel(result *service.CompareResult) string {
	if result.Mode == service.CompareModeAI && strings.Contains(result.Message, "fallback") {
		return "fallback"
	}
	return result.Mode
}
