package controller

import (
	"net/http"
	"reflect"
	"strconv"
	"strings"
	Error "warehouse/packages/common/errors"
	"warehouse/packages/common/logger"
	"warehouse/packages/core/directive"
	"warehouse/packages/core/entity"
	"warehouse/packages/infrastructure/token"
	"warehouse/packages/presentation/api/http/request"
	ResponseBody "warehouse/packages/presentation/data/response"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

var Log = logger.NewSource("CONTROLLER", logger.Default)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report json names of invalid fields instead of struct ones
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return v
}

func validationMessage(err error) string {
	errs, ok := err.(validator.ValidationErrors)
	if !ok || len(errs) == 0 {
		return err.Error()
	}

	messages := make([]string, len(errs))
	for i, e := range errs {
		msg := "invalid field '" + e.Field() + "': failed on '" + e.Tag() + "'"
		if e.Param() != "" {
			msg += " (" + e.Param() + ")"
		}
		messages[i] = msg
	}

	return strings.Join(messages, "; ")
}

// Binds request body into dest and validates it.
func BindAndValidate(ctx echo.Context, dest any) error {
	reqMeta := request.GetMetadata(ctx)

	Log.Trace("Binding and validating request...", reqMeta)

	if err := ctx.Bind(dest); err != nil {
		Log.Error("Failed to bind request", err.Error(), reqMeta)
		return err
	}

	if err := validate.Struct(dest); err != nil {
		msg := validationMessage(err)
		Log.Error("Request validation failed", msg, reqMeta)
		return echo.NewHTTPError(http.StatusBadRequest, msg)
	}

	Log.Trace("Binding and validating request: OK", reqMeta)

	return nil
}

// Parses positive int64 path parameter with the given name.
func ParseID(ctx echo.Context, param string) (int64, *echo.HTTPError) {
	raw := ctx.Param(param)

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		Log.Error("Invalid path parameter", param+"="+raw, request.GetMetadata(ctx))
		return 0, echo.NewHTTPError(
			http.StatusBadRequest,
			"Invalid path parameter '"+param+"': expected positive integer",
		)
	}

	return id, nil
}

// Reads filter, sort and range query parameters.
// Malformed parameters are treated as empty.
func ParseQuery(ctx echo.Context) *directive.Query {
	return directive.FromRaw(
		ctx.QueryParam("filter"),
		ctx.QueryParam("sort"),
		ctx.QueryParam("range"),
	)
}

const userKey = "current_user"

func SetUser(ctx echo.Context, user *entity.User) {
	ctx.Set(userKey, user)
}

// Returns user authenticated by the Secure middleware.
// Will panic if route isn't secured.
func GetUser(ctx echo.Context) *entity.User {
	user, ok := ctx.Get(userKey).(*entity.User)
	if !ok || user == nil {
		Log.Panic(
			"Failed to get current user",
			"User wasn't found in request context, check if route is secured",
			request.GetMetadata(ctx),
		)
		return nil
	}
	return user
}

type wwwAuthenticateParams struct {
	Realm            string
	Error            string
	ErrorDescription string
}

func applyWWWAuthenticate(ctx echo.Context, params *wwwAuthenticateParams) {
	value := `Bearer realm="` + params.Realm + `"`
	if params.Error != "" {
		value += `, error="` + params.Error + `", error_description="` + params.ErrorDescription + `"`
	}
	ctx.Response().Header().Set(echo.HeaderWWWAuthenticate, value)
}

// Converts authentication error into HTTP error and sets WWW-Authenticate header.
func HandleAuthError(ctx echo.Context, err *Error.Status) *echo.HTTPError {
	reqMeta := request.GetMetadata(ctx)

	Log.Trace("Handling authentication error...", reqMeta)

	params := &wwwAuthenticateParams{Realm: "api"}

	if token.IsTokenError(err) {
		params.Error = "invalid_token"
		if err == token.TokenExpired {
			params.Error = "expired_token"
		}
		params.ErrorDescription = err.Error()
	}

	applyWWWAuthenticate(ctx, params)

	Log.Trace("Handling authentication error: OK", reqMeta)

	return ConvertErrorStatusToHTTP(err)
}

func Detail(ctx echo.Context, detail string) error {
	return ctx.JSON(http.StatusOK, ResponseBody.Detail{Detail: detail})
}
