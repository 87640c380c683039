// Predefined HTTP errors shared by request handling layers.
package response

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

func badRequest(message string) *echo.HTTPError {
	return echo.NewHTTPError(http.StatusBadRequest, message)
}

var (
	EmptyRequestBody          = badRequest("Request body is empty")
	FailedToReadRequestBody   = badRequest("Failed to read request body")
	FailedToDecodeRequestBody = badRequest("Failed to decode request body, expected JSON object")
)
