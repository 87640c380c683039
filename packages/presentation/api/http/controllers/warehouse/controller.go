package warehousecontroller

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

// @Summary 		Create warehouse
// @Tags			Warehouses
// @Accept			json
// @Produce			json
// @Param 			body body entity.WarehouseCreate true "New warehouse"
// @Success			200 {object} entity.Warehouse
// @Failure			400,401,500 {object} responsebody.Error
// @Router			/warehouses/ [post]
// @Security		BearerAuth
func (c *Controller) Create(ctx echo.Context) error {
	var body entity.WarehouseCreate

	if err := controller.BindAndValidate(ctx, &body); err != nil {
		return err
	}

	w, err := c.service.CreateWarehouse(ctx.Request().Context(), &body, request.GetMetadata(ctx))
	if err != nil {
		return controller.ConvertErrorStatusToHTTP(err)
	}

	return ctx.JSON(http.StatusOK, w)
}

// @Summary 		List warehouses
// @Tags			Warehouses
// @Produce			json
// @Param 			filter query string false "Filter directive, e.g. {\"name\":{\"ILIKE\":\"main\"}}"
// @Param 			sort query string false "Sort directive, e.g. [{\"field\":\"name\",\"order\":\"ASC\"}]"
// @Param 			range query string false "Range directive, e.g. {\"limit\":10,\"offset\":0}"
// @Success			200 {array} entity.Warehouse
// @Failure			400,401,500 {object} responsebody.Error
// @Router			/warehouses/ [get]
// @Security		BearerAuth
func (c *Controller) List(ctx echo.Context) error {
	warehouses, err := c.service.ListWarehouses(ctx.Request().Context(), controller.ParseQuery(ctx), request.GetMetadata(ctx))
	if err != nil {
		return controller.ConvertErrorStatusToHTTP(err)
	}

	return ctx.JSON(http.StatusOK, warehouses)
}

// @Summary 		Get warehouse
// @Tags			Warehouses
// @Produce			json
// @Param 			id path int true "Warehouse id"
// @Success			200 {object} entity.Warehouse
// @Failure			400,401,404,500 {object} responsebody.Error
// @Router			/warehouses/{id} [get]
// @Security		BearerAuth
func (c *Controller) Get(ctx echo.Context) error {
	id, e := controller.ParseID(ctx, "id")
	if e != nil {
		return e
	}

	w, err := c.service.GetWarehouse(ctx.Request().Context(), id)
	if err != nil {
		return controller.ConvertErrorStatusToHTTP(err)
	}

	return ctx.JSON(http.StatusOK, w)
}

// @Summary 		Update warehouse
// @Tags			Warehouses
// @Accept			json
// @Produce			json
// @Param 			id path int true "Warehouse id"
// @Param 			body body entity.WarehouseUpdate true "Changed fields"
// @Success			200 {object} entity.Warehouse
// @Failure			400,401,404,409,500 {object} responsebody.Error
// @Router			/warehouses/{id} [patch]
// @Security		BearerAuth
func (c *Controller) Update(ctx echo.Context) error {
	id, e := controller.ParseID(ctx, "id")
	if e != nil {
		return e
	}

	var body entity.WarehouseUpdate

	if err := controller.BindAndValidate(ctx, &body); err != nil {
		return err
	}

	w, err := c.service.UpdateWarehouse(ctx.Request().Context(), id, &body, request.GetMetadata(ctx))
	if err != nil {
		return controller.ConvertErrorStatusToHTTP(err)
	}

	return ctx.JSON(http.StatusOK, w)
}

// @Summary 		Delete warehouse
// @Description 	Products of the warehouse and their attributes are deleted as well
// @Tags			Warehouses
// @Produce			json
// @Param 			id path int true "Warehouse id"
// @Success			200 {object} responsebody.Detail
// @Failure			400,401,404,500 {object} responsebody.Error
// @Router			/warehouses/{id} [delete]
// @Security		BearerAuth
func (c *Controller) Delete(ctx echo.Context) error {
	id, e := controller.ParseID(ctx, "id")
	if e != nil {
		return e
	}

	if err := c.service.DeleteWarehouse(ctx.Request().Context(), id, request.GetMetadata(ctx)); err != nil {
		return controller.ConvertErrorStatusToHTTP(err)
	}

	return controller.Detail(ctx, "Warehouse deleted")
}
