package middleware

import (
	"context"
	"net/http"
	"strings"
	Error "warehouse/packages/common/errors"
	"warehouse/packages/core/entity"
	controller "warehouse/packages/presentation/api/http/controllers"
	"warehouse/packages/presentation/api/http/request"

	"github.com/labstack/echo/v4"
)

var invalidAuthorizationHeaderFormat = Error.NewStatusError(
	"Authorization header has invalid format. Expected token bearer format. ('Bearer <token>')",
	http.StatusUnauthorized,
)

var notAuthenticated = Error.NewStatusError(
	"Not authenticated",
	http.StatusUnauthorized,
)

// Verifies access token and returns its subject (username).
type TokenVerifier interface {
	Verify(token string) (string, *Error.Status)
}

type UserResolver interface {
	CurrentUser(ctx context.Context, username string) (*entity.User, *Error.Status)
}

// Allows access only for authenticated users.
// Authenticated user can be retrieved via controller.GetUser().
func Secure(tokens TokenVerifier, users UserResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			reqMeta := request.GetMetadata(ctx)

			log.Debug("Route "+ctx.Request().Method+" "+ctx.Path()+" is secured", reqMeta)
			log.Trace("Extracting access token from the request...", reqMeta)

			authHeader := ctx.Request().Header.Get(echo.HeaderAuthorization)
			if strings.TrimSpace(authHeader) == "" {
				return controller.HandleAuthError(ctx, notAuthenticated)
			}
			if !strings.HasPrefix(authHeader, "Bearer ") {
				return controller.HandleAuthError(ctx, invalidAuthorizationHeaderFormat)
			}

			accessTokenStr := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
			if accessTokenStr == "" || strings.Contains(accessTokenStr, " ") {
				return controller.HandleAuthError(ctx, invalidAuthorizationHeaderFormat)
			}

			username, err := tokens.Verify(accessTokenStr)
			if err != nil {
				log.Error("Invalid access token", err.Error(), reqMeta)
				return controller.HandleAuthError(ctx, err)
			}

			log.Trace("Extracting access token from the request: OK", reqMeta)
			log.Trace("Resolving current user...", reqMeta)

			user, err := users.CurrentUser(ctx.Request().Context(), username)
			if err != nil {
				log.Error("Failed to resolve current user", err.Error(), reqMeta)
				if err.Status() == http.StatusUnauthorized {
					return controller.HandleAuthError(ctx, err)
				}
				return controller.ConvertErrorStatusToHTTP(err)
			}

			controller.SetUser(ctx, user)

			log.Trace("Resolving current user: OK", reqMeta)

			return next(ctx)
		}
	}
}
