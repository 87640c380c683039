package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	"warehouse/packages/common/config"
	"warehouse/packages/common/logger"

	"github.com/getsentry/sentry-go"
	"github.com/labstack/echo/v4"
)

var appLogger = logger.NewSource("APP", logger.Default)

const shutdownTimeout = 5 * time.Second

// Runs the application until SIGINT or SIGTERM is received.
func Run() {
	Args.Parse()

	StartInit()

	cfg := InitDefault()

	if *Args.MigrateDB != "" {
		if err := MigrateDB(cfg, *Args.MigrateDB); err != nil {
			exit("Failed to apply migrations", err)
		}
		Shutdown(nil)
		return
	}

	InitSentry(cfg)

	conns := InitConnections(cfg)

	Router := InitRouter(cfg, conns)

	EndInit(cfg)

	Start(cfg, Router, conns)
}

func Start(cfg *config.Config, Router *echo.Echo, conns *Connections) {
	stop := make(chan os.Signal, 1)

	signal.Notify(stop, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)

	go func() {
		// TLS is terminated by the reverse proxy
		err := Router.Start(":" + cfg.HTTP.Port)
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Error("HTTP server failed", err.Error(), nil)
			stop <- syscall.SIGTERM
			return
		}
		appLogger.Info("HTTP server closed", nil)
	}()

	printAppInfo(cfg)

	sig := <-stop

	println()
	appLogger.Info(sig.String()+" signal received, shutting down...", nil)

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := Router.Shutdown(ctx); err != nil {
		appLogger.Error("Failed to stop HTTP server", err.Error(), nil)
	} else {
		appLogger.Info("HTTP server stopped", nil)
	}

	Shutdown(conns)
}

// Closes connections (if any), flushes sentry events and stops the logger.
func Shutdown(conns *Connections) {
	appLogger.Info("Shutting down...", nil)

	if conns != nil {
		if err := conns.Store.Close(); err != nil {
			appLogger.Error("Failed to close store", err.Error(), nil)
		}
		if conns.Redis != nil {
			if err := conns.Redis.Close(); err != nil {
				appLogger.Error("Failed to disconnect from redis", err.Error(), nil)
			}
		}
	}

	sentry.Flush(2 * time.Second)

	appLogger.Info("Shutted down", nil)

	if err := logger.Default.Stop(); err != nil {
		entry := logger.NewLogEntry(logger.ErrorLogLevel, "APP", "Failed to stop logger", err.Error(), nil)
		logger.Stderr.Log(&entry)
	}
}

func printAppInfo(cfg *config.Config) {
	fmt.Print(`

  ██╗    ██╗  █████╗  ██████╗  ███████╗ ██╗  ██╗  ██████╗  ██╗   ██╗ ███████╗ ███████╗
  ██║    ██║ ██╔══██╗ ██╔══██╗ ██╔════╝ ██║  ██║ ██╔═══██╗ ██║   ██║ ██╔════╝ ██╔════╝
  ██║ █╗ ██║ ███████║ ██████╔╝ █████╗   ███████║ ██║   ██║ ██║   ██║ ███████╗ █████╗
  ██║███╗██║ ██╔══██║ ██╔══██╗ ██╔══╝   ██╔══██║ ██║   ██║ ██║   ██║ ╚════██║ ██╔══╝
  ╚███╔███╔╝ ██║  ██║ ██║  ██║ ███████╗ ██║  ██║ ╚██████╔╝ ╚██████╔╝ ███████║ ███████╗
   ╚══╝╚══╝  ╚═╝  ╚═╝ ╚═╝  ╚═╝ ╚══════╝ ╚═╝  ╚═╝  ╚═════╝   ╚═════╝  ╚══════╝ ╚══════╝

`)

	fmt.Println("  Inventory management API")

	fmt.Printf("  Store: %s\n", cfg.DB.Driver)
	limiter := "in-memory"
	if cfg.RateLimit.UseRedis {
		limiter = "redis"
	}
	fmt.Printf("  Rate limiting: %s\n", limiter)
	fmt.Printf("  Listening on port: %s\n\n", cfg.HTTP.Port)

	if cfg.Debug.Enabled {
		appLogger.Warning("Debug mode enabled.", nil)
		print("\n\n")
	}
}
