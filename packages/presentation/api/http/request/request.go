package request

import (
	"fmt"
	"net/http"
	"warehouse/packages/common/logger"
	transport "warehouse/packages/presentation/api/http"

	"github.com/labstack/echo/v4"
	"github.com/mileusna/useragent"
)

const metaKey = "req_meta"

func newMeta(req *http.Request, requestID string) logger.Meta {
	meta := logger.Meta{
		"addr":       req.RemoteAddr,
		"method":     req.Method,
		"path":       req.URL.Path,
		"user_agent": req.UserAgent(),
	}

	if requestID != "" {
		meta["request_id"] = requestID
	}

	if ua := req.UserAgent(); ua != "" {
		parsed := useragent.Parse(ua)
		if parsed.Name != "" {
			meta["browser"] = parsed.Name
		}
		if parsed.OS != "" {
			meta["os"] = parsed.OS
		}
		meta["device"] = deviceType(parsed)
	}

	return meta
}

func deviceType(ua useragent.UserAgent) string {
	switch {
	case ua.Bot:
		return "bot"
	case ua.Mobile:
		return "mobile"
	case ua.Tablet:
		return "tablet"
	case ua.Desktop:
		return "desktop"
	}
	return "unknown"
}

// This middleware must be applied to the router
// for the all functions in this package to work correctly.
// Must be applied after RequestID middleware.
func Middleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		requestID := ctx.Response().Header().Get(echo.HeaderXRequestID)

		ctx.Set(metaKey, newMeta(ctx.Request(), requestID))

		return next(ctx)
	}
}

// Retrieves metadata from the context.
// Will panic if request.Middleware wasn't applied to the router.
func GetMetadata(ctx echo.Context) logger.Meta {
	switch m := ctx.Get(metaKey).(type) {
	case logger.Meta:
		return m
	case nil:
		transport.Logger.Panic(
			"Failed to get metadata from context",
			"Request meta wasn't set (check if middleware applied correctly)",
			newMeta(ctx.Request(), ""),
		)
		return nil
	default:
		transport.Logger.Panic(
			"Failed to get metadata from context",
			fmt.Sprintf("Request meta has invalid type. Expected logger.Meta, but got %T", m),
			newMeta(ctx.Request(), ""),
		)
		return nil
	}
}
