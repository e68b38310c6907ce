package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Options is the subset of connection settings the engine configures.
type Options struct {
	Addr     string
	Password string
	DB       int
}

// OpenRedis connects the idempotency store and fails fast when the
// server is unreachable.
func OpenRedis(opt Options) (*redis.Client, error) {
	r := redis.NewClient(&redis.Options{
		Addr:         opt.Addr,
		Password:     opt.Password,
		DB:           opt.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := r.Ping(ctx).Err(); err != nil {
		_ = r.Close()
		return nil, err
	}
	return r, nil
}
