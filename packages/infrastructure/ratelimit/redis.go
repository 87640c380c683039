package ratelimit

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

type RedisConfig struct {
	URI      string
	Password string
	DB       int
	// Timeout of each redis operation
	Timeout time.Duration
}

// Creates redis client and pings it.
func Connect(ctx context.Context, cfg RedisConfig) (*redis.Client, error) {
	limiterLogger.Info("Connecting to redis...", nil)

	client := redis.NewClient(&redis.Options{
		Addr:         cfg.URI,
		Password:     cfg.Password,
		DB:           cfg.DB,
		ReadTimeout:  cfg.Timeout,
		WriteTimeout: cfg.Timeout,
	})

	ctx, cancel := context.WithTimeout(ctx, time.Second*5)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		limiterLogger.Error("Failed to connect to redis", err.Error(), nil)
		client.Close()
		return nil, err
	}

	limiterLogger.Info("Connecting to redis: OK", nil)

	return client, nil
}

// Fixed window counter shared between all instances of the service.
// Satisfies echo middleware.RateLimiterStore interface.
type RedisStore struct {
	client  *redis.Client
	prefix  string
	limit   int64
	window  time.Duration
	timeout time.Duration
	now     func() time.Time
}

func NewRedisStore(client *redis.Client, name string, limit int, window time.Duration, timeout time.Duration) *RedisStore {
	if client == nil {
		limiterLogger.Panic("Failed to create redis rate limiter store", "Redis client can't be nil", nil)
	}
	if limit <= 0 || window <= 0 {
		limiterLogger.Panic("Failed to create redis rate limiter store", "Limit and window must be positive", nil)
	}

	return &RedisStore{
		client:  client,
		prefix:  "ratelimit:" + name + ":",
		limit:   int64(limit),
		window:  window,
		timeout: timeout,
		now:     time.Now,
	}
}

func (s *RedisStore) key(identifier string) string {
	slot := s.now().UnixNano() / int64(s.window)
	return s.prefix + identifier + ":" + strconv.FormatInt(slot, 10)
}

func (s *RedisStore) Allow(identifier string) (bool, error) {
	if identifier == "" {
		return false, errors.New("empty rate limiter identifier")
	}

	ctx := context.Background()
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	key := s.key(identifier)

	var incr *redis.IntCmd
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, key)
		pipe.Expire(ctx, key, s.window)
		return nil
	})
	if err != nil {
		return false, err
	}

	return incr.Val() <= s.limit, nil
}
