package controller

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"expertline/internal/model"
	"expertline/internal/service"
	"expertline/internal/util"
	"expertline/pkg/monitoring"

	"github.com/gin-gonic/gin"
)

type PostController struct {
	PostService    *service.PostService
	CommentService *service.CommentService
	VoteService    *service.VoteService
}

func NewPostController(postService *service.PostService, commentService *service.CommentService, voteService *service.VoteService) *PostController {
	return &PostController{
		PostService:    postService,
		CommentService: commentService,
		VoteService:    voteService,
	}
}

// parsePagination page 默认 1,pageSize 默认 10 上限 50
func parsePagination(ctx *gin.Context) (int, int) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(ctx.DefaultQuery("pageSize", "10"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}
	if pageSize > 50 {
		pageSize = 50
	}
	return page, pageSize
}

// List godoc
// @Summary 帖子列表
// @Tags 帖子
// @Produce  json
// @Param   page query int false "页码" default(1)
// @Param   pageSize query int false "每页条数" default(10)
// @Param   topicId query string false "按话题过滤"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/posts [get]
func (c *PostController) List(ctx *gin.Context) {
	page, pageSize := parsePagination(ctx)
	topicID := ctx.Query("topicId")

	posts, total, err := c.PostService.List(page, pageSize, topicID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{Items: posts, Total: total, Page: page, PageSize: pageSize})
}

// Get godoc
// @Summary 帖子详情
// @Tags 帖子
// @Produce  json
// @Param   id path string true "帖子 ID"
// @Success 200 {object} util.Response{data=model.Post}
// @Failure 404 {object} util.Response
// @Router /api/posts/{id} [get]
func (c *PostController) Get(ctx *gin.Context) {
	post, err := c.PostService.Get(ctx.Request.Context(), ctx.Param("id"), ctx.ClientIP())
	if err != nil {
		if errors.Is(err, util.ErrPostNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, post)
}

// Create godoc
// @Summary 发布帖子
// @Tags 帖子
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body service.CreatePostRequest true "帖子内容"
// @Success 201 {object} util.Response{data=model.Post}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response "话题不存在"
// @Router /api/posts [post]
func (c *PostController) Create(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.CreatePostRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	post, err := c.PostService.Create(claims.UserID, claims.Username, req)
	if err != nil {
		if errors.Is(err, util.ErrTopicNotFound) {
			util.Error(ctx, http.StatusNotFound, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, post)
}

// Endorse godoc
// @Summary 赞成帖子
// @Description 已反对会自动改票,重复赞成报 400
// @Tags 投票
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "帖子 ID"
// @Success 200 {object} util.Response{data=service.VoteResult}
// @Failure 400 {object} util.Response "重复投票"
// @Failure 404 {object} util.Response
// @Router /api/posts/{id}/endorse [post]
func (c *PostController) Endorse(ctx *gin.Context) {
	c.vote(ctx, model.VoteEndorse)
}

// Oppose godoc
// @Summary 反对帖子
// @Tags 投票
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "帖子 ID"
// @Success 200 {object} util.Response{data=service.VoteResult}
// @Failure 400 {object} util.Response "重复投票"
// @Failure 404 {object} util.Response
// @Router /api/posts/{id}/oppose [post]
func (c *PostController) Oppose(ctx *gin.Context) {
	c.vote(ctx, model.VoteOppose)
}

func (c *PostController) vote(ctx *gin.Context, voteType model.VoteType) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	result, err := c.VoteService.Vote(ctx.Param("id"), claims.UserID, voteType)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrPostNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrAlreadyEndorsed), errors.Is(err, util.ErrAlreadyOpposed):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	monitoring.VoteCounter.WithLabelValues(strings.ToLower(string(voteType))).Inc()
	util.Success(ctx, result)
}

// Unvote godoc
// @Summary 撤销投票
// @Tags 投票
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "帖子 ID"
// @Success 200 {object} util.Response{data=service.VoteResult}
// @Failure 400 {object} util.Response "尚未投票"
// @Failure 404 {object} util.Response
// @Router /api/posts/{id}/unvote [post]
func (c *PostController) Unvote(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	result, err := c.VoteService.Unvote(ctx.Param("id"), claims.UserID)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrPostNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrNoVote):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	monitoring.VoteCounter.WithLabelValues("unvote").Inc()
	util.Success(ctx, result)
}

// VoteStatus godoc
// @Summary 当前用户的投票状态
// @Description 未登录或未投票时 userVote 为 null
// @Tags 投票
// @Produce  json
// @Param   id path string true "帖子 ID"
// @Success 200 {object} util.Response
// @Router /api/posts/{id}/vote-status [get]
func (c *PostController) VoteStatus(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Success(ctx, gin.H{"userVote": nil})
		return
	}

	vote, err := c.VoteService.Status(ctx.Param("id"), claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"userVote": vote})
}

// ListComments godoc
// @Summary 帖子评论列表
// @Description 只返回顶层评论,回复在 children 字段里
// @Tags 评论
// @Produce  json
// @Param   id path string true "帖子 ID"
// @Success 200 {object} util.Response{data=[]model.Comment}
// @Failure 404 {object} util.Response
// @Router /api/posts/{id}/comments [get]
func (c *PostController) ListComments(ctx *gin.Context) {
	comments, err := c.CommentService.List(ctx.Param("id"))
	if err != nil {
		if errors.Is(err, util.ErrPostNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, comments)
}

// CreateComment godoc
// @Summary 发表评论或回复
// @Tags 评论
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "帖子 ID"
// @Param   body body service.CreateCommentRequest true "评论内容"
// @Success 201 {object} util.Response{data=model.Comment}
// @Failure 404 {object} util.Response "帖子或父评论不存在"
// @Router /api/posts/{id}/comments [post]
func (c *PostController) CreateComment(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.CreateCommentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	comment, err := c.CommentService.Create(ctx.Param("id"), claims.UserID, req)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrPostNotFound), errors.Is(err, util.ErrParentNotFound):
			util.Error(ctx, http.StatusNotFound, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, comment)
}
