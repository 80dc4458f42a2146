package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/zwelix28/canna-bomb-sub001/internal/service"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const dashboardKey = "stats:dashboard"

// RedisClient backs the admin dashboard cache. Connection failure at startup
// is surfaced to the caller, which disables the cache rather than the app.
type RedisClient struct {
	client *redis.Client
	ttl    time.Duration
	log    *zap.Logger
}

func NewRedisClient(addr, password string, db int, ttl time.Duration, log *zap.Logger) (*RedisClient, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	log.Info("redis connected", zap.String("addr", addr))
	return &RedisClient{client: rdb, ttl: ttl, log: log}, nil
}

func (r *RedisClient) Close() error { return r.client.Close() }

func (r *RedisClient) Get(ctx context.Context) (*service.Dashboard, bool) {
	raw, err := r.client.Get(ctx, dashboardKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			r.log.Warn("dashboard cache read failed", zap.Error(err))
		}
		return nil, false
	}
	var d service.Dashboard
	if err := json.Unmarshal(raw, &d); err != nil {
		r.log.Warn("dashboard cache decode failed", zap.Error(err))
		return nil, false
	}
	return &d, true
}

func (r *RedisClient) Set(ctx context.Context, d *service.Dashboard) {
	raw, err := json.Marshal(d)
	if err != nil {
		return
	}
	if err := r.client.Set(ctx, dashboardKey, raw, r.ttl).Err(); err != nil {
		r.log.Warn("dashboard cache write failed", zap.Error(err))
	}
}
