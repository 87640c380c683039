package middleware

import (
	"net/http"
	"slices"
	"warehouse/packages/presentation/api/http/request"

	"github.com/labstack/echo/v4"
)

// Used to prevent request forgery attacks.
// Requests without Origin header are allowed.
func CheckOrigin(allowedOrigins []string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			req := ctx.Request()

			if req.Method == http.MethodGet || req.Method == http.MethodHead || req.Method == http.MethodOptions {
				return next(ctx)
			}

			origin := req.Header.Get(echo.HeaderOrigin)

			if origin != "" && !slices.Contains(allowedOrigins, origin) {
				log.Error("Invalid request origin", "Origin isn't allowed: "+origin, request.GetMetadata(ctx))
				return echo.NewHTTPError(
					http.StatusForbidden,
					"Invalid origin",
				)
			}

			return next(ctx)
		}
	}
}
