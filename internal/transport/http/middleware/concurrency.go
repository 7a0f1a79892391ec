package middleware

import (
	"github.com/gin-gonic/gin"
	"golang.org/x/sync/semaphore"

	resp "youwatch-api/internal/transport/http/response"
)

// ConcurrencyLimit 限制同时在处理的请求数（保护 DB 下游）
// 排队等待受请求 context 约束，放在 Timeout 之后
func ConcurrencyLimit(max int64) gin.HandlerFunc {
	if max <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	sem := semaphore.NewWeighted(max)
	return func(c *gin.Context) {
		if err := sem.Acquire(c.Request.Context(), 1); err != nil {
			resp.Abort(c, resp.CodeUnavailable, "server busy")
			return
		}
		defer sem.Release(1)
		c.Next()
	}
}
