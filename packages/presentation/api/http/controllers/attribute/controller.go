package attributecontroller

import (
	"net/http"
	"warehouse/packages/core/entity"
	"warehouse/packages/core/inventory"
	controller "warehouse/packages/presentation/api/http/controllers"
	"warehouse/packages/presentation/api/http/request"

	"github.com/labstack/echo/v4"
)

type Controller struct {
	service *inventory.Service
}

func New(service *inventory.Service) *Controller {
	return &Controller{service: service}
}

// @Summary 		Create attribute
// @Tags			Attributes
// @Accept			json
// @Produce			json
// @Param 			body body entity.AttributeCreate true "New attribute"
// @Success			200 {object} entity.Attribute
// @Failure			400,401,500 {object} responsebody.Error
// @Router			/attributes/ [post]
// @Security		BearerAuth
func (c *Controller) Create(ctx echo.Context) error {
	var body entity.AttributeCreate

	if err := controller.BindAndValidate(ctx, &body); err != nil {
		return err
	}

	record, err := c.service.CreateAttribute(ctx.Request().Context(), &body, request.GetMetadata(ctx))
	if err != nil {
		return controller.ConvertErrorStatusToHTTP(err)
	}

	return ctx.JSON(http.StatusOK, record)
}

// @Summary 		List attributes
// @Tags			Attributes
// @Produce			json
// @Param 			filter query string false "Filter directive, e.g. {\"product_id\":{\"IN\":[1,2]}}"
// @Param 			sort query string false "Sort directive, e.g. [{\"field\":\"name\",\"order\":\"ASC\"}]"
// @Param 			range query string false "Range directive, e.g. {\"limit\":10,\"offset\":0}"
// @Success			200 {array} entity.Attribute
// @Failure			400,401,500 {object} responsebody.Error
// @Router			/attributes/ [get]
// @Security		BearerAuth
func (c *Controller) List(ctx echo.Context) error {
	records, err := c.service.ListAttributes(ctx.Request().Context(), controller.ParseQuery(ctx), request.GetMetadata(ctx))
	if err != nil {
		return controller.ConvertErrorStatusToHTTP(err)
	}

	return ctx.JSON(http.StatusOK, records)
}

// @Summary 		Get attribute
// @Tags			Attributes
// @Produce			json
// @Param 			id path int true "Attribute id"
// @Success			200 {object} entity.Attribute
// @Failure			400,401,404,500 {object} responsebody.Error
// @Router			/attributes/{id} [get]
// @Security		BearerAuth
func (c *Controller) Get(ctx echo.Context) error {
	id, e := controller.ParseID(ctx, "id")
	if e != nil {
		return e
	}

	record, err := c.service.GetAttribute(ctx.Request().Context(), id)
	if err != nil {
		return controller.ConvertErrorStatusToHTTP(err)
	}

	return ctx.JSON(http.StatusOK, record)
}

// @Summary 		Update attribute
// @Tags			Attributes
// @Accept			json
// @Produce			json
// @Param 			id path int true "Attribute id"
// @Param 			body body entity.AttributeUpdate true "Changed fields"
// @Success			200 {object} entity.Attribute
// @Failure			400,401,404,409,500 {object} responsebody.Error
// @Router			/attributes/{id} [patch]
// @Security		BearerAuth
func (c *Controller) Update(ctx echo.Context) error {
	id, e := controller.ParseID(ctx, "id")
	if e != nil {
		return e
	}

	var body entity.AttributeUpdate

	if err := controller.BindAndValidate(ctx, &body); err != nil {
		return err
	}

	record, err := c.service.UpdateAttribute(ctx.Request().Context(), id, &body, request.GetMetadata(ctx))
	if err != nil {
		return controller.ConvertErrorStatusToHTTP(err)
	}

	return ctx.JSON(http.StatusOK, record)
}

// @Summary 		Delete attribute
// @Tags			Attributes
// @Produce			json
// @Param 			id path int true "Attribute id"
// @Success			200 {object} responsebody.Detail
// @Failure			400,401,404,500 {object} responsebody.Error
// @Router			/attributes/{id} [delete]
// @Security		BearerAuth
func (c *Controller) Delete(ctx echo.Context) error {
	id, e := controller.ParseID(ctx, "id")
	if e != nil {
		return e
	}

	if err := c.service.DeleteAttribute(ctx.Request().Context(), id, request.GetMetadata(ctx)); err != nil {
		return controller.ConvertErrorStatusToHTTP(err)
	}

	return controller.Detail(ctx, "Attribute deleted")
}
