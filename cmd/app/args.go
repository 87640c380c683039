package app

import (
	"fmt"
	"os"
	"warehouse/packages/common/config"

	"github.com/akamensky/argparse"
)

type appArgs struct {
	Debug     *bool
	ShowLogs  *bool
	TraceLogs *bool
	Config    *string
	EnvFile   *string
	MigrateDB *string
}

var Args = new(appArgs)

func (a *appArgs) Parse() {
	parser := argparse.NewParser(
		"warehouse",
		"Inventory management API: warehouses, categories, products and their attributes",
	)

	Args.Debug = parser.Flag("d", "debug", &argparse.Options{
		Help: "Enable debug mode",
	})
	Args.ShowLogs = parser.Flag("l", "show-logs", &argparse.Options{
		Help: "Show logs in terminal",
	})
	Args.TraceLogs = parser.Flag("t", "trace-logs", &argparse.Options{
		Help: "Enable trace logs",
	})
	Args.Config = parser.String("c", "config", &argparse.Options{
		Default: config.DefaultPath,
		Help:    "Path to the config file",
	})
	Args.EnvFile = parser.String("e", "env", &argparse.Options{
		Default: ".env",
		Help:    "Path to the file with secrets",
	})
	Args.MigrateDB = parser.String("M", "migrate-db", &argparse.Options{
		Help: "Apply DB migrations and exit, valid values:\n" +
			"\t\t\tUp - Migrate forward to the latest version\n" +
			"\t\t\tDown - Migrate back on 1 version\n" +
			"\t\t\tN - Number, if N > 0 then will migrate forward on N versions, if N < 0 then will migrate back on N versions",
	})

	if err := parser.Parse(os.Args); err != nil {
		fmt.Println(parser.Usage(err))
		os.Exit(1)
	}
}

// Overrides config values with the ones specified by flags.
func (a *appArgs) Apply(cfg *config.Config) {
	if *a.Debug {
		cfg.Debug.Enabled = true
	}
	if *a.ShowLogs {
		cfg.App.ShowLogs = true
	}
	if *a.TraceLogs {
		cfg.App.TraceLogsEnabled = true
	}
}
