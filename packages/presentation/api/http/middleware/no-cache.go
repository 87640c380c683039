package middleware

import "github.com/labstack/echo/v4"

var noCacheHeaders = map[string]string{
	"Cache-Control": "private, no-store, max-age=0",
	"Pragma":        "no-cache",
	"Expires":       "0",
}

// Forbids storing of the response by browsers and proxies.
// Applied to endpoints returning credentials or user data.
func NoCache(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		header := ctx.Response().Header()

		for k, v := range noCacheHeaders {
			header.Set(k, v)
		}
		header.Add(echo.HeaderVary, echo.HeaderAuthorization)

		return next(ctx)
	}
}
