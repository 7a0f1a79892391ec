package middleware

import (
	"context"
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	resp "youwatch-api/internal/transport/http/response"
)

// Timeout 给请求 context 加截止时间；下游（gorm）需使用 c.Request.Context()
func Timeout(d time.Duration) gin.HandlerFunc {
	if d <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), d)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
		if errors.Is(ctx.Err(), context.DeadlineExceeded) && !c.Writer.Written() {
			resp.Abort(c, resp.CodeTimeout, "timeout")
		}
	}
}
