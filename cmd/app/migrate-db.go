package app

import (
	"errors"
	"strconv"
	"warehouse/packages/common/config"
	"warehouse/packages/infrastructure/DB"
)

var errInvalidSteps = errors.New("invalid migration steps, expected number or 'Up' or 'Down'")

// Applies migrations to the postgres database.
//
// Valid steps: "Up" (all pending), "Down" (one back)
// or N (N > 0 forward, N < 0 back).
func MigrateDB(cfg *config.Config, steps string) error {
	if cfg.DB.Driver != DB.PostgresDriver {
		return errors.New("migrations can be applied only to postgres, current driver: " + cfg.DB.Driver)
	}

	migrator := DB.NewMigrator(cfg)

	switch steps {
	case "Up", "up":
		return migrator.Up()
	case "Down", "down":
		return migrator.Down()
	}

	n, err := strconv.Atoi(steps)
	if err != nil || n == 0 {
		return errInvalidSteps
	}

	return migrator.Steps(n)
}
