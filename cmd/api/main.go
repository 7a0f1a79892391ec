package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "go.uber.org/automaxprocs"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/gorm"

	"youwatch-api/internal/core/cache"
	"youwatch-api/internal/core/config"
	"youwatch-api/internal/core/database"
	"youwatch-api/internal/core/logger"
	"youwatch-api/internal/core/server"
	"youwatch-api/internal/core/telemetry"
	"youwatch-api/internal/transport/http/router"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load(os.Getenv("CONFIG_PATH"))
	log, cleanup := logger.Build(logger.Options{
		Level:       cfg.Log.Level,
		JSON:        cfg.Log.JSON,
		AddCaller:   true,
		Development: !cfg.Log.JSON,
		Rotate: logger.FileRotate{
			Enable:     cfg.Log.File.Enable,
			Filename:   cfg.Log.File.Filename,
			MaxSizeMB:  cfg.Log.File.MaxSizeMB,
			MaxBackups: cfg.Log.File.MaxBackups,
			MaxAgeDays: cfg.Log.File.MaxAgeDays,
			Compress:   cfg.Log.File.Compress,
		},
	})
	defer cleanup()
	defer logger.RedirectStdLog(log, zapcore.InfoLevel)()

	// 链路追踪（未启用时为 noop）
	shutdownTracing, err := telemetry.Setup(context.Background(), telemetry.Options{
		Enabled:     cfg.Telemetry.Enabled,
		ServiceName: cfg.App.Name,
		Env:         cfg.App.Env,
		Endpoint:    cfg.Telemetry.Endpoint,
		SampleRatio: cfg.Telemetry.SampleRatio,
	}, log)
	if err != nil {
		log.Fatal("telemetry setup", zap.Error(err))
	}

	// 数据库（失败会直接 Fatal）
	db := mustOpenDB(cfg, log)
	log.Info("database connected", zap.String("driver", cfg.DB.Driver))

	if cfg.DB.AutoMigrate {
		if err := database.Migrate(db); err != nil {
			log.Fatal("automigrate failed", zap.Error(err))
		}
		log.Info("automigrate done")
	}

	// 登录失败计数：优先 Redis
	attempts, closeAttempts := loginCounter(cfg, log)
	defer closeAttempts()

	jwter := router.NewJWTer(cfg.JWT)
	deps, err := router.BuildDeps(cfg, db, jwter, attempts, log)
	if err != nil {
		log.Fatal("wire dependencies", zap.Error(err))
	}
	r := router.NewAPIEngine(deps)

	// HTTP Server
	addr := server.Addr(cfg.App.HTTP.Host, cfg.App.HTTP.Port)
	srv := server.BuildServer(
		addr, r,
		time.Duration(cfg.App.HTTP.ReadTimeoutSec)*time.Second,
		time.Duration(cfg.App.HTTP.WriteTimeoutSec)*time.Second,
		time.Duration(cfg.App.HTTP.IdleTimeoutSec)*time.Second,
	)

	// 启动日志
	host4human := cfg.App.HTTP.Host
	if host4human == "" || host4human == "0.0.0.0" {
		host4human = "127.0.0.1"
	}
	baseURL := "http://" + host4human + ":" + fmt.Sprint(cfg.App.HTTP.Port)
	log.Info("youwatch api starting",
		zap.String("addr", addr),
		zap.String("open", baseURL),
		zap.String("health", baseURL+"/health"),
		zap.String("api", baseURL+"/api"),
	)

	// 异步启动
	go func() {
		if err := server.StartHTTP(srv, log); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("youwatch api start FAILED", zap.Error(err))
		}
	}()

	// 优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
	shutdownTracing(ctx)
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	log.Info("youwatch api stopped gracefully")
}

func mustOpenDB(cfg *config.Config, l *zap.Logger) *gorm.DB {
	db, err := database.NewGorm(database.Opts{
		Driver:             cfg.DB.Driver,
		DSN:                cfg.DB.DSN,
		Username:           cfg.DB.Username,
		Password:           cfg.DB.Password,
		MaxOpenConns:       cfg.DB.MaxOpenConns,
		MaxIdleConns:       cfg.DB.MaxIdleConns,
		ConnMaxLifetimeMin: cfg.DB.ConnMaxLifetimeMin,
		LogLevel:           cfg.DB.LogLevel,
	}, l)
	if err != nil {
		l.Fatal("db open", zap.Error(err))
	}
	return db
}

// loginCounter Redis 不可用时退回进程内计数
func loginCounter(cfg *config.Config, l *zap.Logger) (cache.Counter, func()) {
	if cfg.Redis.Addr == "" {
		return cache.NewMemory(time.Minute), func() {}
	}
	rc := cache.NewRedis(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := rc.Ping(ctx); err != nil {
		l.Warn("redis unavailable, using in-process login counter", zap.String("addr", cfg.Redis.Addr), zap.Error(err))
		_ = rc.Close()
		return cache.NewMemory(time.Minute), func() {}
	}
	l.Info("redis connected", zap.String("addr", cfg.Redis.Addr))
	return rc, func() { _ = rc.Close() }
}
