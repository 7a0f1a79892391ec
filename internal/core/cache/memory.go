package cache

import (
	"context"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryCounter 单进程计数器，未配置 Redis 时使用
type MemoryCounter struct {
	mu sync.Mutex
	c  *gocache.Cache
}

func NewMemory(cleanup time.Duration) *MemoryCounter {
	return &MemoryCounter{c: gocache.New(gocache.NoExpiration, cleanup)}
}

func (m *MemoryCounter) Incr(_ context.Context, key string, window time.Duration) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.c.Add(key, int64(0), window); err == nil {
		return m.c.IncrementInt64(key, 1)
	}
	n, err := m.c.IncrementInt64(key, 1)
	if err != nil {
		// 刚好过期：重新开窗口
		m.c.Set(key, int64(1), window)
		return 1, nil
	}
	return n, nil
}

func (m *MemoryCounter) Get(_ context.Context, key string) (int64, error) {
	v, ok := m.c.Get(key)
	if !ok {
		return 0, nil
	}
	return v.(int64), nil
}

func (m *MemoryCounter) Reset(_ context.Context, key string) error {
	m.c.Delete(key)
	return nil
}
