package middleware

import (
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	resp "youwatch-api/internal/transport/http/response"
)

// RateLimit 全局令牌桶限速
func RateLimit(rps rate.Limit, burst int) gin.HandlerFunc {
	if rps <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	lim := rate.NewLimiter(rps, burst)
	return func(c *gin.Context) {
		if lim.Allow() {
			c.Next()
			return
		}
		resp.Abort(c, resp.CodeTooManyRequests, "too many requests")
	}
}

// RateLimitPerIP 每 IP 一个令牌桶；空闲 10 分钟的桶自动过期
func RateLimitPerIP(rps rate.Limit, burst int) gin.HandlerFunc {
	if rps <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	var mu sync.Mutex
	buckets := gocache.New(10*time.Minute, time.Minute)
	return func(c *gin.Context) {
		ip := c.ClientIP()
		mu.Lock()
		var lim *rate.Limiter
		if v, ok := buckets.Get(ip); ok {
			lim = v.(*rate.Limiter)
		} else {
			lim = rate.NewLimiter(rps, burst)
		}
		buckets.SetDefault(ip, lim) // 续期
		mu.Unlock()

		if lim.Allow() {
			c.Next()
			return
		}
		resp.Abort(c, resp.CodeTooManyRequests, "too many requests")
	}
}
