package healthcontroller

import (
	"net/http"
	ResponseBody "warehouse/packages/presentation/data/response"

	"github.com/labstack/echo/v4"
)

// @Summary 		Health check
// @Tags			Health
// @Produce			json
// @Success			200 {object} responsebody.Health
// @Router			/health [get]
func Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, ResponseBody.Health{Status: "ok"})
}
