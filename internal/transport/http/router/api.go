package router

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"

	"youwatch-api/internal/core/server"
	"youwatch-api/internal/transport/http/handler"
	httpez "youwatch-api/internal/transport/http/ez"
	mdw "youwatch-api/internal/transport/http/middleware"
)

func NewAPIEngine(d *Deps) *gin.Engine {
	h := d.HTTP
	r := server.NewRouter(d.Log, server.Options{Name: d.Name, CORSOrigins: h.CORSOrigins})

	// 中间件
	r.Use(
		mdw.RequestID(),
		mdw.Tracing(d.Name),
		mdw.Metrics(),
		mdw.AccessLog(d.Log),
		mdw.RateLimit(rate.Limit(h.RateLimitRPS), h.RateLimitBurst),
		mdw.Timeout(time.Duration(h.RequestTimeoutSec)*time.Second),
		mdw.ConcurrencyLimit(h.MaxConcurrent),
		mdw.MaxBodyBytes(h.MaxBodyBytes),
	)

	// 健康检查
	r.GET("/health", health(d))
	r.GET("/metrics", gin.WrapH(mdw.MetricsHandler()))

	// 前缀
	api := r.Group("/api")

	reg := &Registry{}
	reg.Register(
		handler.NewAuthHandler(d.Auth, d.LoginRPS, d.LoginBurst),
		&handler.Resources{
			Usuarios:  d.Usuarios,
			Criadores: d.Criadores,
			Conteudos: d.Conteudos,
			Playlists: d.Playlists,
		},
		handler.NewItemHandler(d.Itens),
	)
	reg.MountAll(httpez.New(api, d.JWT, d.Policy, d.Log))

	return r
}

func health(d *Deps) gin.HandlerFunc {
	var sf singleflight.Group
	return func(c *gin.Context) {
		// 并发探活合并成一次 ping
		_, err, _ := sf.Do("db", func() (any, error) {
			sqlDB, err := d.DB.DB()
			if err != nil {
				return nil, err
			}
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return nil, sqlDB.PingContext(ctx)
		})
		if err != nil {
			d.Log.Warn("health: db ping failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "down"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
