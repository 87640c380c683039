package config

import (
	"errors"
	"io/fs"
	"net/url"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Secrets struct {
	DatabaseHost     string `validate:"required_if=RequireDatabase true"`
	DatabasePort     string `validate:"required_if=RequireDatabase true"`
	DatabaseName     string `validate:"required_if=RequireDatabase true"`
	DatabaseUser     string `validate:"required_if=RequireDatabase true"`
	DatabasePassword string

	// Used for signing access tokens (HS256)
	SecretKey []byte `validate:"required,min=32"`

	RedisURI      string `validate:"required_if=RequireRedis true"`
	RedisPassword string
	RedisDB       int `validate:"min=0"`

	// Error reporting is disabled if empty
	SentryDSN string

	RequireDatabase bool
	RequireRedis    bool
}

// Returns connection URL for the postgres database.
func (s *Secrets) DatabaseURL() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(s.DatabaseUser, s.DatabasePassword),
		Host:   s.DatabaseHost + ":" + s.DatabasePort,
		Path:   s.DatabaseName,
	}
	return u.String()
}

func getEnv(key string) string {
	env, _ := os.LookupEnv(key)

	configLogger.Info("Loaded: "+key, nil)

	return env
}

// Loads secrets from the given env files (".env" if none specified) and
// from the process environment into cfg.Secret.
// Missing env file is not an error, variables may be set by the environment.
func LoadSecrets(cfg *Config, envFiles ...string) error {
	if cfg == nil {
		return errNilConfig
	}

	configLogger.Info("Loading environment variables...", nil)

	if err := godotenv.Load(envFiles...); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			configLogger.Error("Failed to load environment variables", err.Error(), nil)
			return err
		}
		configLogger.Warning("Env file not found, using process environment only", nil)
	}

	requiredEnvVars := []string{"SECRET_KEY"}

	if cfg.DB.Driver == "postgres" {
		requiredEnvVars = append(requiredEnvVars,
			"DB_HOST",
			"DB_PORT",
			"DB_NAME",
			"DB_USER",
			"DB_PASSWORD",
		)
	}
	if cfg.RateLimit.UseRedis {
		requiredEnvVars = append(requiredEnvVars, "REDIS_URI")
	}

	// Check is all required env variables exists
	for _, variable := range requiredEnvVars {
		if _, exists := os.LookupEnv(variable); !exists {
			err := errors.New("Missing required env variable: " + variable)
			configLogger.Error("Failed to load environment variables", err.Error(), nil)
			return err
		}
	}

	secret := Secrets{
		DatabaseHost:     getEnv("DB_HOST"),
		DatabasePort:     getEnv("DB_PORT"),
		DatabaseName:     getEnv("DB_NAME"),
		DatabaseUser:     getEnv("DB_USER"),
		DatabasePassword: getEnv("DB_PASSWORD"),
		SecretKey:        []byte(getEnv("SECRET_KEY")),
		RedisURI:         getEnv("REDIS_URI"),
		RedisPassword:    getEnv("REDIS_PASSWORD"),
		SentryDSN:        getEnv("SENTRY_DSN"),
		RequireDatabase:  cfg.DB.Driver == "postgres",
		RequireRedis:     cfg.RateLimit.UseRedis,
	}

	if rawRedisDB := getEnv("REDIS_DB"); rawRedisDB != "" {
		redisDB, err := strconv.Atoi(rawRedisDB)
		if err != nil {
			configLogger.Error("Failed to parse REDIS_DB env variable", err.Error(), nil)
			return err
		}
		secret.RedisDB = redisDB
	}

	configLogger.Info("Loading environment variables: OK", nil)

	configLogger.Info("Validating secrets...", nil)

	if err := newValidator().Struct(secret); err != nil {
		configLogger.Error("Secrets validation failed", err.Error(), nil)
		return err
	}

	configLogger.Info("Validating secrets: OK", nil)

	cfg.Secret = secret

	return nil
}
