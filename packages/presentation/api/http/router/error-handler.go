package router

import (
	"fmt"
	"net/http"
	Error "warehouse/packages/common/errors"
	controller "warehouse/packages/presentation/api/http/controllers"
	"warehouse/packages/presentation/api/http/request"
	ResponseBody "warehouse/packages/presentation/data/response"

	sentryecho "github.com/getsentry/sentry-go/echo"
	"github.com/labstack/echo/v4"
)

func handleHttpError(err error, ctx echo.Context) {
	if ctx.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	message := "Internal Server Error"

	if e, is := err.(*echo.HTTPError); is {
		code = e.Code
		if msg, ok := e.Message.(string); ok {
			message = msg
		} else {
			message = fmt.Sprint(e.Message)
		}
	} else if is, e := Error.IsStatusError(err); is {
		code = e.Status()
		message = e.Error()
	}

	reqMeta := request.GetMetadata(ctx)

	if code >= http.StatusInternalServerError {
		controller.Log.Error(message, err.Error(), reqMeta)

		if hub := sentryecho.GetHubFromContext(ctx); hub != nil {
			hub.CaptureException(err)
		}
	} else {
		controller.Log.Info("Request failed: "+message, reqMeta)
	}

	var e error
	if ctx.Request().Method == http.MethodHead {
		e = ctx.NoContent(code)
	} else {
		e = ctx.JSON(code, ResponseBody.Error{
			Error:   http.StatusText(code),
			Message: message,
		})
	}
	if e != nil {
		controller.Log.Error("Failed to send error response", e.Error(), reqMeta)
	}
}
