package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"nfl-fantasy/backend/pkg/metrics"
)

// Metrics 请求指标中间件
// 路由标签使用注册的模板路径（如 /api/v1/seasons/:id），未匹配路由记为 unmatched
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		done := metrics.RequestStarted()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		done(c.Request.Method, route, strconv.Itoa(c.Writer.Status()), time.Since(start).Seconds())
	}
}
