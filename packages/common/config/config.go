package config

import (
	"errors"
	"os"
	"time"
	"warehouse/packages/common/logger"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

var configLogger = logger.NewSource("CONFIG", logger.Default)

const DefaultPath = "warehouse.config.yaml"

// Wrapper for time.ParseDuration. Panics on error.
// All durations are validated on load, so it's safe to use it in accessors.
func parseDuration(raw string) time.Duration {
	v, e := time.ParseDuration(raw)

	if e != nil {
		panic(e)
	}

	return v
}

type DBConfig struct {
	Driver          string `yaml:"db-driver" validate:"required,oneof=postgres memory"`
	RawQueryTimeout string `yaml:"db-query-timeout" validate:"required,duration"`
	MinConns        int32  `yaml:"db-min-conns" validate:"min=0"`
	MaxConns        int32  `yaml:"db-max-conns" validate:"required,min=1,gtefield=MinConns"`
	MigrationsPath  string `yaml:"db-migrations-path" validate:"required"`
}

func (c *DBConfig) QueryTimeout() time.Duration {
	return parseDuration(c.RawQueryTimeout)
}

type HTTPConfig struct {
	Port           string   `yaml:"http-port" validate:"required,numeric"`
	AllowedOrigins []string `yaml:"http-allowed-origins" validate:"required,min=1"`
	BodyLimit      string   `yaml:"http-body-limit" validate:"required"`
}

type AuthConfig struct {
	RawAccessTokenTTL  string `yaml:"access-token-ttl" validate:"required,duration"`
	TokenIssuer        string `yaml:"token-issuer" validate:"required"`
	BcryptCost         int    `yaml:"bcrypt-cost" validate:"required,min=4,max=31"`
	LoginRatePerMinute int    `yaml:"login-rate-per-minute" validate:"required,min=1"`
}

func (c *AuthConfig) AccessTokenTTL() time.Duration {
	return parseDuration(c.RawAccessTokenTTL)
}

type RateLimitConfig struct {
	UseRedis            bool   `yaml:"rate-limit-redis" validate:"exists"`
	RawOperationTimeout string `yaml:"rate-limit-redis-timeout" validate:"required,duration"`
	RawBreakerTimeout   string `yaml:"rate-limit-breaker-timeout" validate:"required,duration"`
}

func (c *RateLimitConfig) OperationTimeout() time.Duration {
	return parseDuration(c.RawOperationTimeout)
}

func (c *RateLimitConfig) BreakerTimeout() time.Duration {
	return parseDuration(c.RawBreakerTimeout)
}

type SentryConfig struct {
	TraceSampleRate float64 `yaml:"sentry-trace-sample-rate" validate:"min=0,max=1"`
}

type DebugConfig struct {
	Enabled      bool `yaml:"debug-mode" validate:"exists"`
	LogDbQueries bool `yaml:"debug-log-db-queries" validate:"exists"`
}

type AppConfig struct {
	ServiceID        string `yaml:"service-id" validate:"required"`
	InstanceID       string `yaml:"instance-id"`
	ShowLogs         bool   `yaml:"show-logs" validate:"exists"`
	TraceLogsEnabled bool   `yaml:"trace-logs" validate:"exists"`
	LogDir           string `yaml:"log-dir"`
}

// Explicitly constructed application configuration.
// Each component receives only the part it needs.
type Config struct {
	DB        DBConfig        `yaml:",inline"`
	HTTP      HTTPConfig      `yaml:",inline"`
	Auth      AuthConfig      `yaml:",inline"`
	RateLimit RateLimitConfig `yaml:",inline"`
	Sentry    SentryConfig    `yaml:",inline"`
	Debug     DebugConfig     `yaml:",inline"`
	App       AppConfig       `yaml:",inline"`

	Secret Secrets `yaml:"-"`
}

func newValidator() *validator.Validate {
	validate := validator.New()

	validate.RegisterValidation("exists", func(fl validator.FieldLevel) bool {
		return true // Always pass (just ensure that the field exists)
	})

	validate.RegisterValidation("duration", func(fl validator.FieldLevel) bool {
		_, err := time.ParseDuration(fl.Field().String())
		return err == nil
	})

	return validate
}

// Parses and validates config from the given YAML document.
// Secrets aren't validated here, see LoadSecrets().
func Parse(rawConfig []byte) (*Config, error) {
	configLogger.Info("Parsing config file...", nil)

	cfg := new(Config)

	if err := yaml.Unmarshal(rawConfig, cfg); err != nil {
		configLogger.Error("Failed to parse config file", err.Error(), nil)
		return nil, err
	}

	configLogger.Info("Parsing config file: OK", nil)

	configLogger.Info("Validating config...", nil)

	if err := newValidator().StructExcept(cfg, "Secret"); err != nil {
		configLogger.Error("Failed to validate config", err.Error(), nil)
		return nil, err
	}

	configLogger.Info("Validating config: OK", nil)

	return cfg, nil
}

// Reads config file at the given path. If path is empty DefaultPath is used.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath
	}

	configLogger.Info("Reading config file "+path+"...", nil)

	rawConfig, err := os.ReadFile(path)
	if err != nil {
		configLogger.Error("Failed to read config file", err.Error(), nil)
		return nil, err
	}

	configLogger.Info("Reading config file "+path+": OK", nil)

	return Parse(rawConfig)
}

var errNilConfig = errors.New("config is nil")

// Loads config and secrets, calls os.Exit(1) on any error.
func MustLoad(path string, envFiles ...string) *Config {
	configLogger.Info("Initializing...", nil)

	cfg, err := Load(path)
	if err != nil {
		configLogger.Fatal("Failed to initialize config", err.Error(), nil)
	}

	if err := LoadSecrets(cfg, envFiles...); err != nil {
		configLogger.Fatal("Failed to initialize config", err.Error(), nil)
	}

	configLogger.Info("Initializing: OK", nil)

	return cfg
}
