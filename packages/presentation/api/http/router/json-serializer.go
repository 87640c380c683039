package router

import (
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/labstack/echo/v4"
)

var jsonAPI = jsoniter.Config{
	EscapeHTML:             true,
	SortMapKeys:            true,
	ValidateJsonRawMessage: true,
}.Froze()

// echo.JSONSerializer backed by jsoniter.
type serializer struct{}

func (serializer) Serialize(ctx echo.Context, v any, indent string) error {
	if indent != "" {
		b, err := jsonAPI.MarshalIndent(v, "", indent)
		if err != nil {
			return err
		}
		_, err = ctx.Response().Write(append(b, '\n'))
		return err
	}

	stream := jsonAPI.BorrowStream(ctx.Response())
	defer jsonAPI.ReturnStream(stream)

	stream.WriteVal(v)
	stream.WriteRaw("\n")
	if stream.Error != nil {
		return stream.Error
	}

	return stream.Flush()
}

// Malformed body is reported as 400 like echo's default serializer does.
func (serializer) Deserialize(ctx echo.Context, v any) error {
	if err := jsonAPI.NewDecoder(ctx.Request().Body).Decode(v); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Failed to decode JSON body: "+err.Error()).SetInternal(err)
	}
	return nil
}
