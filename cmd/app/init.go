package app

import (
	"context"
	"os"
	"time"
	"warehouse/packages/common/config"
	"warehouse/packages/common/logger"
	"warehouse/packages/core/entity"
	"warehouse/packages/core/inventory"
	"warehouse/packages/core/store"
	"warehouse/packages/infrastructure/DB"
	"warehouse/packages/infrastructure/auth/authn"
	"warehouse/packages/infrastructure/metrics"
	"warehouse/packages/infrastructure/ratelimit"
	"warehouse/packages/infrastructure/token"
	"warehouse/packages/presentation/api/http/router"

	"github.com/getsentry/sentry-go"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
)

const connectTimeout = 10 * time.Second

// Opened connections, closed by Shutdown().
type Connections struct {
	Store store.Store
	// nil if redis isn't used
	Redis *redis.Client
}

func StartInit() {
	// All init logs will be shown anyway
	if err := logger.Default.NewForwarding(logger.Stdout); err != nil {
		panic(err.Error())
	}
}

func EndInit(cfg *config.Config) {
	if !cfg.App.ShowLogs {
		if err := logger.Default.RemoveForwarding(logger.Stdout); err != nil {
			panic(err.Error())
		}
	}
}

// Loads config, applies command line arguments to it and starts the logger.
func InitDefault() *config.Config {
	cfg := config.MustLoad(*Args.Config, *Args.EnvFile)

	Args.Apply(cfg)

	if err := entity.ValidateSchemas(); err != nil {
		appLogger.Fatal("Invalid entity schema", err.Error(), nil)
	}

	InitLogger(cfg)

	return cfg
}

func InitLogger(cfg *config.Config) {
	logger.Debug.Store(cfg.Debug.Enabled)
	logger.Trace.Store(cfg.App.TraceLogsEnabled)

	logger.Default.Init(cfg.App.ServiceID, cfg.App.InstanceID, cfg.App.LogDir)

	if err := logger.Default.Start(); err != nil {
		appLogger.Fatal("Failed to start logger", err.Error(), nil)
	}
}

// Error reporting stays disabled if DSN isn't specified.
func InitSentry(cfg *config.Config) {
	appLogger.Info("Initializing sentry...", nil)

	if cfg.Secret.SentryDSN == "" {
		appLogger.Warning("Sentry DSN isn't specified, errors won't be reported", nil)
	}

	if err := sentry.Init(sentry.ClientOptions{
		Dsn:              cfg.Secret.SentryDSN,
		EnableTracing:    cfg.Sentry.TraceSampleRate > 0,
		TracesSampleRate: cfg.Sentry.TraceSampleRate,
		Debug:            cfg.Debug.Enabled,
		ServerName:       cfg.App.ServiceID,
		AttachStacktrace: true,
	}); err != nil {
		appLogger.Fatal("Failed to initialize sentry", err.Error(), nil)
	}

	appLogger.Info("Initializing sentry: OK", nil)
}

func InitConnections(cfg *config.Config) *Connections {
	appLogger.Info("Initializing connections...", nil)

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	conns := new(Connections)

	s, err := DB.Open(ctx, cfg)
	if err != nil {
		appLogger.Fatal("Failed to open store", err.Error(), nil)
	}
	conns.Store = s

	if cfg.RateLimit.UseRedis {
		client, err := ratelimit.Connect(ctx, ratelimit.RedisConfig{
			URI:      cfg.Secret.RedisURI,
			Password: cfg.Secret.RedisPassword,
			DB:       cfg.Secret.RedisDB,
			Timeout:  cfg.RateLimit.OperationTimeout(),
		})
		if err != nil {
			// Limiter falls back to in-memory store, so it's not critical
			appLogger.Error("Failed to connect to redis, in-memory rate limiting will be used", err.Error(), nil)
		} else {
			conns.Redis = client
		}
	}

	appLogger.Info("Initializing connections: OK", nil)

	return conns
}

func NewService(cfg *config.Config, conns *Connections) *inventory.Service {
	return inventory.New(conns.Store, authn.NewHasher(cfg.Auth.BcryptCost))
}

func InitRouter(cfg *config.Config, conns *Connections) *echo.Echo {
	appLogger.Info("Initializing router...", nil)

	issuer, err := token.NewIssuer(token.Config{
		Secret: cfg.Secret.SecretKey,
		TTL:    cfg.Auth.AccessTokenTTL(),
		Issuer: cfg.Auth.TokenIssuer,
	})
	if err != nil {
		appLogger.Fatal("Failed to initialize token issuer", err.Error(), nil)
	}

	Router := router.Create(&router.Dependencies{
		Config:  cfg,
		Service: NewService(cfg, conns),
		Tokens:  issuer,
		Metrics: metrics.New(),
		LoginLimiter: ratelimit.New(conns.Redis, ratelimit.Config{
			Name:             "login",
			Limit:            cfg.Auth.LoginRatePerMinute,
			Window:           time.Minute,
			OperationTimeout: cfg.RateLimit.OperationTimeout(),
			BreakerTimeout:   cfg.RateLimit.BreakerTimeout(),
		}),
	})

	appLogger.Info("Initializing router: OK", nil)

	return Router
}

// Prints error and exits with code 1.
func exit(msg string, err error) {
	appLogger.Error(msg, err.Error(), nil)
	Shutdown(nil)
	os.Exit(1)
}
