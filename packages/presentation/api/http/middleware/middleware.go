package middleware

import "warehouse/packages/common/logger"

var log = logger.NewSource("MIDDLEWARE", logger.Default)
