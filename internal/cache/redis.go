package cache

import (
	"context"
	"time"

	"handwork_backend/internal/logger"

	"github.com/redis/go-redis/v9"
)

var client *redis.Client

// InitRedis подключается к Redis. Кэш опциональный: при недоступном Redis
// приложение продолжает работать без него.
func InitRedis(addr string) {
	if addr == "" {
		return
	}

	c := redis.NewClient(&redis.Options{Addr: addr})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := c.Ping(ctx).Err(); err != nil {
		logger.Warn("Redis недоступен, продолжаем без кэша", "addr", addr, "error", err)
		return
	}

	client = c
	logger.Info("Redis подключен", "addr", addr)
}

func Client() *redis.Client {
	return client
}

// Invalidate удаляет ключи кэша. Best-effort.
func Invalidate(ctx context.Context, keys ...string) {
	if client == nil || len(keys) == 0 {
		return
	}
	if err := client.Del(ctx, keys...).Err(); err != nil {
		logger.CtxWarn(ctx, "Не удалось сбросить кэш", "keys", keys, "error", err)
	}
}
