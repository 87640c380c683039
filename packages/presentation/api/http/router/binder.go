package router

import (
	"io"
	"warehouse/packages/presentation/api/http/response"

	"github.com/labstack/echo/v4"
)

// Binds JSON request bodies only, path and query params are read by controllers.
type binder struct{}

func (binder) Bind(dest any, ctx echo.Context) error {
	req := ctx.Request()
	if req.Body == nil {
		return response.EmptyRequestBody
	}

	body, err := io.ReadAll(req.Body)
	if err != nil {
		return response.FailedToReadRequestBody
	}
	if len(body) == 0 {
		return response.EmptyRequestBody
	}

	if err := jsonAPI.Unmarshal(body, dest); err != nil {
		return response.FailedToDecodeRequestBody
	}

	return nil
}
