package controller

import (
	Error "warehouse/packages/common/errors"

	"github.com/labstack/echo/v4"
)

// Maps status error onto HTTP error with the same code and message.
// Server side failures are logged since their message is generic.
func ConvertErrorStatusToHTTP(err *Error.Status) *echo.HTTPError {
	if err.Status() >= 500 {
		Log.Error("Request failed with internal error", err.Error(), nil)
	}
	return echo.NewHTTPError(err.Status(), err.Error())
}
