package middleware

import (
	"net/http"
	"strconv"
	"time"
	"warehouse/packages/presentation/api/http/request"
	ResponseBody "warehouse/packages/presentation/data/response"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// Called for each rejected request, may be nil.
type RejectionObserver func(path string)

func rateLimiterIdentifierExtractor(ctx echo.Context) (string, error) {
	return ctx.RealIP(), nil
}

func rateLimiterDenyHandler(retryAfter time.Duration, observe RejectionObserver) func(ctx echo.Context, id string, err error) error {
	seconds := max(1, int(retryAfter.Seconds()))

	return func(ctx echo.Context, id string, err error) error {
		ctx.Response().Header().Set("Retry-After", strconv.Itoa(seconds))

		reqMeta := request.GetMetadata(ctx)

		switch GetSensivity(ctx) {
		case InsignificantEndpoint:
			log.Trace("Request blocked by rate limiter", reqMeta)
		case DefaultEndpoint:
			log.Info("Request blocked by rate limiter", reqMeta)
		case SensitiveEndpoint:
			log.Warning("Request blocked by rate limiter", reqMeta)
		}

		if observe != nil {
			observe(ctx.Path())
		}

		return ctx.JSON(
			http.StatusTooManyRequests,
			ResponseBody.Error{
				Error:   http.StatusText(http.StatusTooManyRequests),
				Message: "Too many requests",
			},
		)
	}
}

// Limits requests per client IP using the given store.
// retryAfter is sent to rejected clients in Retry-After header.
func RateLimit(store middleware.RateLimiterStore, retryAfter time.Duration, observe RejectionObserver) echo.MiddlewareFunc {
	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store:               store,
		IdentifierExtractor: rateLimiterIdentifierExtractor,
		DenyHandler:         rateLimiterDenyHandler(retryAfter, observe),
		ErrorHandler: func(ctx echo.Context, err error) error {
			log.Error("Failed to identify client", err.Error(), request.GetMetadata(ctx))
			return echo.NewHTTPError(http.StatusForbidden, "Failed to identify client")
		},
	})
}
