// Rate limiter stores for echo RateLimiter middleware.
package ratelimit

import (
	"time"
	"warehouse/packages/common/logger"

	"github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"
)

var limiterLogger = logger.NewSource("RATE LIMITER", logger.Default)

type Config struct {
	// Used as part of redis keys and breaker name
	Name string
	// Max amount of requests per window
	Limit  int
	Window time.Duration
	// Timeout of redis operations
	OperationTimeout time.Duration
	// How long breaker stays open before redis is tried again
	BreakerTimeout time.Duration
}

// Satisfies echo middleware.RateLimiterStore interface.
//
// If redis client is specified, counters are stored in redis.
// When redis fails, circuit breaker opens and requests are
// limited by the in-memory store of this instance until it closes.
type Store struct {
	redis    *RedisStore
	fallback middleware.RateLimiterStore
	breaker  *gobreaker.CircuitBreaker[bool]
}

var _ middleware.RateLimiterStore = (*Store)(nil)

func NewMemoryStore(cfg Config) middleware.RateLimiterStore {
	return middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
		Rate:      rate.Every(cfg.Window / time.Duration(cfg.Limit)),
		Burst:     cfg.Limit,
		ExpiresIn: cfg.Window * 2,
	})
}

// Client may be nil, in that case only the in-memory store is used.
func New(client *redis.Client, cfg Config) *Store {
	s := &Store{
		fallback: NewMemoryStore(cfg),
	}

	if client == nil {
		limiterLogger.Info("Rate limiter \""+cfg.Name+"\" uses in-memory store", nil)
		return s
	}

	s.redis = NewRedisStore(client, cfg.Name, cfg.Limit, cfg.Window, cfg.OperationTimeout)
	s.breaker = gobreaker.NewCircuitBreaker[bool](gobreaker.Settings{
		Name:        "Rate limiter " + cfg.Name,
		Interval:    time.Second * 10,
		Timeout:     cfg.BreakerTimeout,
		MaxRequests: 1,
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			limiterLogger.Warning(name+": circuit breaker state changed: "+from.String()+" -> "+to.String(), nil)
		},
	})

	limiterLogger.Info("Rate limiter \""+cfg.Name+"\" uses redis store", nil)

	return s
}

func (s *Store) Allow(identifier string) (bool, error) {
	if s.redis == nil {
		return s.fallback.Allow(identifier)
	}

	allowed, err := s.breaker.Execute(func() (bool, error) {
		return s.redis.Allow(identifier)
	})
	if err != nil {
		limiterLogger.Trace("Redis store unavailable, using in-memory store: "+err.Error(), nil)
		return s.fallback.Allow(identifier)
	}

	return allowed, nil
}

// Returns current state of the circuit breaker, always closed if redis isn't used.
func (s *Store) State() gobreaker.State {
	if s.breaker == nil {
		return gobreaker.StateClosed
	}
	return s.breaker.State()
}
