package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Options struct {
	Name        string
	CORSOrigins []string // 为空时允许所有来源
}

// NewRouter 基础 engine：panic 恢复走 zap，CORS 放行 Authorization 头
func NewRouter(l *zap.Logger, o Options) *gin.Engine {
	r := gin.New()
	r.Use(ginzap.RecoveryWithZap(l, true))

	cc := cors.DefaultConfig()
	if len(o.CORSOrigins) == 0 {
		cc.AllowAllOrigins = true
	} else {
		cc.AllowOrigins = o.CORSOrigins
	}
	cc.AddAllowHeaders("Authorization", "X-Request-ID")
	cc.AddExposeHeaders("Location", "X-Request-ID")
	r.Use(cors.New(cc))
	return r
}

func StartHTTP(srv *http.Server, l *zap.Logger) error {
	l.Info("http starting", zap.String("addr", srv.Addr))
	return srv.ListenAndServe()
}

func BuildServer(addr string, handler http.Handler, rt, wt, it time.Duration) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadTimeout:       rt,
		ReadHeaderTimeout: rt,
		WriteTimeout:      wt,
		IdleTimeout:       it,
		MaxHeaderBytes:    1 << 20, // 1MB
	}
}

func Addr(host string, port int) string { return fmt.Sprintf("%s:%d", host, port) }
