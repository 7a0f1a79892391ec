package cache

import (
	"context"
	"time"
)

// Counter 带过期窗口的计数器（登录失败次数等）
type Counter interface {
	// Incr 自增并返回当前值；窗口从第一次自增开始计算
	Incr(ctx context.Context, key string, window time.Duration) (int64, error)
	Get(ctx context.Context, key string) (int64, error)
	Reset(ctx context.Context, key string) error
}
