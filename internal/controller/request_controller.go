package controller

import (
	"expertline/internal/service"
	"expertline/internal/util"

	"github.com/gin-gonic/gin"
)

type RequestController struct {
	RequestService *service.RequestService
}

func NewRequestController(requestService *service.RequestService) *RequestController {
	return &RequestController{RequestService: requestService}
}

// List godoc
// @Summary 话题请求列表
// @Description 社区缺口话题,按热度累计
// @Tags 话题请求
// @Produce  json
// @Param   page query int false "页码" default(1)
// @Param   pageSize query int false "每页条数" default(10)
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/requests [get]
func (c *RequestController) List(ctx *gin.Context) {
	page, pageSize := parsePagination(ctx)

	requests, total, err := c.RequestService.List(page, pageSize)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{Items: requests, Total: total, Page: page, PageSize: pageSize})
}

// Create godoc
// @Summary 提交话题请求
// @Description 同名 PENDING 请求累加计数
// @Tags 话题请求
// @Accept  json
// @Produce  json
// @Param   body body service.CreateRequestRequest true "话题请求"
// @Success 201 {object} util.Response{data=model.TopicRequest}
// @Failure 400 {object} util.Response
// @Router /api/requests [post]
func (c *RequestController) Create(ctx *gin.Context) {
	var req service.CreateRequestRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	request, err := c.RequestService.Record(req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, request)
}
