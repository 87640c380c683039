package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"
)

const (
	docsCSP = "default-src 'self';" +
		"script-src 'self' 'unsafe-inline' 'unsafe-eval';" + // Required for Swagger
		"style-src 'self' 'unsafe-inline';" +
		"img-src 'self' data:;" +
		"font-src 'self';" +
		"connect-src 'self';" +
		"frame-ancestors 'none';" +
		"form-action 'self';" +
		"base-uri 'self';"

	apiCSP = "default-src 'none'; " +
		"script-src 'none'; " +
		"frame-ancestors 'none'; " +
		"form-action 'none'; " +
		"base-uri 'none'"
)

func SecurityHeaders(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		header := ctx.Response().Header()

		// TLS is terminated by proxy, so HSTS is sent only if it says so
		if ctx.Scheme() == "https" {
			header.Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		}

		header.Set("X-Content-Type-Options", "nosniff")
		header.Set("X-Frame-Options", "DENY")
		header.Set("X-XSS-Protection", "1; mode=block")

		if strings.HasPrefix(ctx.Path(), "/docs") || strings.HasPrefix(ctx.Request().URL.Path, "/docs") {
			header.Set("Content-Security-Policy", docsCSP)
		} else {
			header.Set("Content-Security-Policy", apiCSP)
		}

		header.Set("Permissions-Policy", "accelerometer=(), camera=(), geolocation=(), microphone=(), usb=()")
		header.Set("Referrer-Policy", "no-referrer")

		return next(ctx)
	}
}
