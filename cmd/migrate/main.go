package main

import (
	"fmt"
	"os"
	"warehouse/cmd/app"
	"warehouse/packages/common/config"
	"warehouse/packages/common/logger"

	"github.com/akamensky/argparse"
)

var migrateLogger = logger.NewSource("MIGRATE", logger.Default)

var args = new(migrateArgs)

func main() {
	args.Parse()

	app.StartInit()

	cfg := config.MustLoad(*args.Config, *args.EnvFile)

	if *args.TraceLogs {
		cfg.App.TraceLogsEnabled = true
	}

	app.InitLogger(cfg)

	cfg.DB.MigrationsPath = *args.Path

	migrateLogger.Info("Applying migrations ("+*args.Steps+")...", nil)

	if err := app.MigrateDB(cfg, *args.Steps); err != nil {
		migrateLogger.Error("Failed to apply migrations", err.Error(), nil)
		app.Shutdown(nil)
		os.Exit(1)
	}

	migrateLogger.Info("Applying migrations ("+*args.Steps+"): OK", nil)

	app.Shutdown(nil)
}

type migrateArgs struct {
	TraceLogs *bool
	Config    *string
	EnvFile   *string
	Path      *string
	Steps     *string
}

func (a *migrateArgs) Parse() {
	parser := argparse.NewParser("warehouse-migrate", "Application for applying database migrations to warehouse DB")

	args.TraceLogs = parser.Flag("t", "trace-logs", &argparse.Options{
		Help: "Enable trace logs",
	})
	args.Config = parser.String("c", "config", &argparse.Options{
		Default: config.DefaultPath,
		Help:    "Path to the config file",
	})
	args.EnvFile = parser.String("e", "env", &argparse.Options{
		Default: ".env",
		Help:    "Path to the file with secrets",
	})
	args.Path = parser.String("p", "path", &argparse.Options{
		Default: "migrations",
		Help:    "Directory with migration files",
	})
	args.Steps = parser.String("s", "steps", &argparse.Options{
		Required: true,
		Help: "(Required) Amount of database migration steps. Valid values:\n" +
			"\t\t\t- Up: Migrate forward to the latest version\n" +
			"\t\t\t- Down: Migrate back on 1 version\n" +
			"\t\t\t- N: Number, if N > 0 then will migrate forward on N versions, if N < 0 then will migrate back on N versions",
	})

	if err := parser.Parse(os.Args); err != nil {
		fmt.Println(parser.Usage(err))
		os.Exit(1)
	}
}
