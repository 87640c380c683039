// Log sources of the postgres store and its migrator.
package log

import "warehouse/packages/common/logger"

var DB = logger.NewSource("POSTGRES", logger.Default)

var Migration = logger.NewSource("MIGRATE", logger.Default)
