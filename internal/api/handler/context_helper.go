package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"nfl-fantasy/backend/pkg/response"
)

// MustGetUserID 从 Gin 上下文中安全提取 user_id。
// 如果 JWT 中间件未正确注入 user_id，返回 false 并写入 401 响应。
// 调用方应在 ok=false 时直接 return。
func MustGetUserID(c *gin.Context) (string, bool) {
	return mustGetString(c, "user_id")
}

// MustGetRole 从 Gin 上下文中安全提取 role。
func MustGetRole(c *gin.Context) (string, bool) {
	return mustGetString(c, "role")
}

// tokenIdentity 当前 Access Token 的 jti 与过期时间，用于登出拉黑
func tokenIdentity(c *gin.Context) (string, time.Time, bool) {
	jti, ok := mustGetString(c, "token_jti")
	if !ok {
		return "", time.Time{}, false
	}
	exp, _ := c.Get("token_exp")
	t, ok := exp.(time.Time)
	if !ok {
		response.Unauthorized(c, 10002, "未认证")
		return "", time.Time{}, false
	}
	return jti, t, true
}

func mustGetString(c *gin.Context, key string) (string, bool) {
	v, exists := c.Get(key)
	if !exists {
		response.Unauthorized(c, 10002, "未认证")
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		response.Unauthorized(c, 10002, "未认证")
		return "", false
	}
	return s, true
}
