package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// 敏感字段 key（query 中统一按 key）
var sensitiveKeys = map[string]struct{}{
	"senha": {}, "password": {}, "pwd": {}, "token": {}, "authorization": {},
	"secret": {}, "access_token": {},
}

func mask(kv map[string][]string) map[string][]string {
	out := make(map[string][]string, len(kv))
	for k, v := range kv {
		if _, ok := sensitiveKeys[strings.ToLower(k)]; ok {
			out[k] = []string{"****"}
		} else {
			out[k] = v
		}
	}
	return out
}

// AccessLog 打印摘要：method/path/status/latency/ip/ua/query/size；5xx 记 error
func AccessLog(l *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		fields := []zap.Field{
			zap.String("rid", c.GetString(KeyRequestID)),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.String("route", c.FullPath()),
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
			zap.String("ip", c.ClientIP()),
			zap.String("ua", c.Request.UserAgent()),
			zap.Any("query", mask(c.Request.URL.Query())),
			zap.Int("size", c.Writer.Size()),
		}
		if p, ok := PrincipalFrom(c); ok {
			fields = append(fields, zap.String("role", string(p.Role)))
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}

		lvl := zapcore.InfoLevel
		switch {
		case status >= 500:
			lvl = zapcore.ErrorLevel
		case status >= 400:
			lvl = zapcore.WarnLevel
		}
		if ce := l.Check(lvl, "HTTP"); ce != nil {
			ce.Write(fields...)
		}
	}
}
