package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

type RedisCounter struct {
	RDB    *redis.Client
	Prefix string
}

func NewRedis(addr, pass string, db int) *RedisCounter {
	return &RedisCounter{
		RDB:    redis.NewClient(&redis.Options{Addr: addr, Password: pass, DB: db}),
		Prefix: "youwatch:",
	}
}

func (c *RedisCounter) Ping(ctx context.Context) error { return c.RDB.Ping(ctx).Err() }

func (c *RedisCounter) Incr(ctx context.Context, key string, window time.Duration) (int64, error) {
	k := c.Prefix + key
	// INCR 与首次 EXPIRE 放在同一个 pipeline
	var incr *redis.IntCmd
	_, err := c.RDB.TxPipelined(ctx, func(p redis.Pipeliner) error {
		incr = p.Incr(ctx, k)
		p.ExpireNX(ctx, k, window)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return incr.Val(), nil
}

func (c *RedisCounter) Get(ctx context.Context, key string) (int64, error) {
	n, err := c.RDB.Get(ctx, c.Prefix+key).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return n, err
}

func (c *RedisCounter) Reset(ctx context.Context, key string) error {
	return c.RDB.Del(ctx, c.Prefix+key).Err()
}

func (c *RedisCounter) Close() error { return c.RDB.Close() }
