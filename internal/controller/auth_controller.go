package controller

import (
	"errors"
	"net/http"

	"expertline/internal/service"
	"expertline/internal/util"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	AuthService  *service.AuthService
	OAuthService *service.OAuthService
}

func NewAuthController(authService *service.AuthService, oauthService *service.OAuthService) *AuthController {
	return &AuthController{AuthService: authService, OAuthService: oauthService}
}

// Register godoc
// @Summary 注册新用户
// @Description 邮箱和用户名注册，返回 JWT
// @Tags 认证
// @Accept  json
// @Produce  json
// @Param   body body service.RegisterRequest true "注册信息"
// @Success 201 {object} util.Response{data=service.AuthResponse} "创建成功"
// @Failure 400 {object} util.Response "请求参数错误或邮箱/用户名已被占用"
// @Router /api/auth/register [post]
func (c *AuthController) Register(ctx *gin.Context) {
	var req service.RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	resp, err := c.AuthService.Register(req)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrEmailRegistered), errors.Is(err, util.ErrUsernameTaken):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, resp)
}

// Login godoc
// @Summary 用户登录
// @Tags 认证
// @Accept  json
// @Produce  json
// @Param   body body service.LoginRequest true "登录信息"
// @Success 200 {object} util.Response{data=service.AuthResponse}
// @Failure 401 {object} util.Response "邮箱或密码错误"
// @Router /api/auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req service.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	resp, err := c.AuthService.Login(req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			util.Error(ctx, http.StatusUnauthorized, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, resp)
}

const oauthStateCookie = "oauth_state"

// GoogleLogin godoc
// @Summary 发起 Google OAuth 登录
// @Tags 认证
// @Success 307 "重定向到 Google 授权页"
// @Router /api/auth/google [get]
func (c *AuthController) GoogleLogin(ctx *gin.Context) {
	if !c.OAuthService.Enabled() {
		util.Error(ctx, http.StatusNotImplemented, "Google login is not configured")
		return
	}

	state, err := service.GenerateStateToken()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	// state 放 cookie,回调时校验,10 分钟有效
	ctx.SetCookie(oauthStateCookie, state, 600, "/", "", false, true)
	ctx.Redirect(http.StatusTemporaryRedirect, c.OAuthService.AuthCodeURL(state))
}

// GoogleCallback godoc
// @Summary Google OAuth 回调
// @Tags 认证
// @Produce  json
// @Success 200 {object} util.Response{data=service.AuthResponse}
// @Failure 400 {object} util.Response "state 或授权码无效"
// @Router /api/auth/google/callback [get]
func (c *AuthController) GoogleCallback(ctx *gin.Context) {
	savedState, err := ctx.Cookie(oauthStateCookie)
	if err != nil || savedState == "" || ctx.Query("state") != savedState {
		util.BadRequest(ctx, "invalid oauth state")
		return
	}
	ctx.SetCookie(oauthStateCookie, "", -1, "/", "", false, true)

	code := ctx.Query("code")
	if code == "" {
		util.BadRequest(ctx, "missing authorization code")
		return
	}

	resp, err := c.OAuthService.HandleCallback(ctx.Request.Context(), code)
	if err != nil {
		if errors.Is(err, service.ErrEmailNotVerified) {
			util.BadRequest(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, resp)
}
