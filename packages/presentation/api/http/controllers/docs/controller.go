package docscontroller

import (
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
)

var swaggerUI = echoSwagger.EchoWrapHandler(
	echoSwagger.DocExpansion("none"),
	echoSwagger.DeepLinking(true),
)

// @Summary 		Swagger UI and OpenAPI document
// @Description 	Serves index.html, doc.json and UI assets of the warehouse API docs
// @ID 				api-docs
// @Tags			Docs
func Swagger(ctx echo.Context) error {
	return swaggerUI(ctx)
}
