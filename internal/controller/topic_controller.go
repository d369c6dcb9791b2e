package controller

import (
	"errors"

	"expertline/internal/service"
	"expertline/internal/util"

	"github.com/gin-gonic/gin"
)

type TopicController struct {
	TopicService *service.TopicService
}

func NewTopicController(topicService *service.TopicService) *TopicController {
	return &TopicController{TopicService: topicService}
}

// List godoc
// @Summary 话题列表
// @Tags 话题
// @Produce  json
// @Param   page query int false "页码" default(1)
// @Param   pageSize query int false "每页条数" default(10)
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/topics [get]
func (c *TopicController) List(ctx *gin.Context) {
	page, pageSize := parsePagination(ctx)

	topics, total, err := c.TopicService.List(page, pageSize)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{Items: topics, Total: total, Page: page, PageSize: pageSize})
}

// Get godoc
// @Summary 话题详情
// @Tags 话题
// @Produce  json
// @Param   id path string true "话题 ID"
// @Success 200 {object} util.Response{data=model.Topic}
// @Failure 404 {object} util.Response
// @Router /api/topics/{id} [get]
func (c *TopicController) Get(ctx *gin.Context) {
	topic, err := c.TopicService.Get(ctx.Param("id"))
	if err != nil {
		if errors.Is(err, util.ErrTopicNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, topic)
}

// Create godoc
// @Summary 创建话题
// @Description 仅管理员
// @Tags 话题
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body service.CreateTopicRequest true "话题信息"
// @Success 201 {object} util.Response{data=model.Topic}
// @Failure 400 {object} util.Response "话题名已存在"
// @Router /api/topics [post]
func (c *TopicController) Create(ctx *gin.Context) {
	var req service.CreateTopicRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	topic, err := c.TopicService.Create(req)
	if err != nil {
		if errors.Is(err, service.ErrTopicExists) {
			util.BadRequest(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, topic)
}
