package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"nfl-fantasy/backend/pkg/response"
)

// BodyLimit 请求体大小限制
// 声明了 Content-Length 的超限请求直接返回 413；
// 分块传输的请求由 MaxBytesReader 截断，绑定时表现为参数校验失败
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			response.Error(c, http.StatusRequestEntityTooLarge, 10005, "请求体过大")
			return
		}

		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}

		c.Next()
	}
}
