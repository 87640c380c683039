// HTTP transport of the warehouse API.
package transport

import "warehouse/packages/common/logger"

var Logger = logger.NewSource("HTTP", logger.Default)
