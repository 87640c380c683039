package productcontroller

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

// @Summary 		Create product
// @Description 	Category and warehouse must exist. Current user becomes product creator
// @Tags			Products
// @Accept			json
// @Produce			json
// @Param 			body body entity.ProductCreate true "New product"
// @Success			200 {object} entity.Product
// @Failure			400,401,500 {object} responsebody.Error
// @Router			/products/ [post]
// @Security		BearerAuth
func (c *Controller) Create(ctx echo.Context) error {
	var body entity.ProductCreate

	if err := controller.BindAndValidate(ctx, &body); err != nil {
		return err
	}

	p, err := c.service.CreateProduct(
		ctx.Request().Context(),
		&body,
		controller.GetUser(ctx),
		request.GetMetadata(ctx),
	)
	if err != nil {
		return controller.ConvertErrorStatusToHTTP(err)
	}

	return ctx.JSON(http.StatusOK, p)
}

// @Summary 		List products
// @Tags			Products
// @Produce			json
// @Param 			filter query string false "Filter directive, e.g. {\"quantity\":{\"GE\":5}}"
// @Param 			sort query string false "Sort directive, e.g. [{\"field\":\"quantity\",\"order\":\"DESC\"}]"
// @Param 			range query string false "Range directive, e.g. {\"limit\":10,\"offset\":0}"
// @Success			200 {array} entity.Product
// @Failure			400,401,500 {object} responsebody.Error
// @Router			/products/ [get]
// @Security		BearerAuth
func (c *Controller) List(ctx echo.Context) error {
	products, err := c.service.ListProducts(ctx.Request().Context(), controller.ParseQuery(ctx), request.GetMetadata(ctx))
	if err != nil {
		return controller.ConvertErrorStatusToHTTP(err)
	}

	return ctx.JSON(http.StatusOK, products)
}

// @Summary 		Get product
// @Tags			Products
// @Produce			json
// @Param 			id path int true "Product id"
// @Success			200 {object} entity.Product
// @Failure			400,401,404,500 {object} responsebody.Error
// @Router			/products/{id} [get]
// @Security		BearerAuth
func (c *Controller) Get(ctx echo.Context) error {
	id, e := controller.ParseID(ctx, "id")
	if e != nil {
		return e
	}

	p, err := c.service.GetProduct(ctx.Request().Context(), id)
	if err != nil {
		return controller.ConvertErrorStatusToHTTP(err)
	}

	return ctx.JSON(http.StatusOK, p)
}

// @Summary 		Update product
// @Description 	Changed category and warehouse must exist. Current user becomes last updater
// @Tags			Products
// @Accept			json
// @Produce			json
// @Param 			id path int true "Product id"
// @Param 			body body entity.ProductUpdate true "Changed fields"
// @Success			200 {object} entity.Product
// @Failure			400,401,404,409,500 {object} responsebody.Error
// @Router			/products/{id} [patch]
// @Security		BearerAuth
func (c *Controller) Update(ctx echo.Context) error {
	id, e := controller.ParseID(ctx, "id")
	if e != nil {
		return e
	}

	var body entity.ProductUpdate

	if err := controller.BindAndValidate(ctx, &body); err != nil {
		return err
	}

	p, err := c.service.UpdateProduct(
		ctx.Request().Context(),
		id,
		&body,
		controller.GetUser(ctx),
		request.GetMetadata(ctx),
	)
	if err != nil {
		return controller.ConvertErrorStatusToHTTP(err)
	}

	return ctx.JSON(http.StatusOK, p)
}

// @Summary 		Move product
// @Description 	Moves product to the destination warehouse.
// @Description 	If source warehouse is specified, product must be located in it
// @Tags			Products
// @Accept			json
// @Produce			json
// @Param 			id path int true "Product id"
// @Param 			body body entity.ProductMove true "Destination and optional source warehouse"
// @Success			200 {object} responsebody.Detail
// @Failure			400,401,404,500 {object} responsebody.Error
// @Router			/products/{id} [put]
// @Security		BearerAuth
func (c *Controller) Move(ctx echo.Context) error {
	id, e := controller.ParseID(ctx, "id")
	if e != nil {
		return e
	}

	var body entity.ProductMove

	if err := controller.BindAndValidate(ctx, &body); err != nil {
		return err
	}

	p, dest, err := c.service.MoveProduct(
		ctx.Request().Context(),
		id,
		&body,
		controller.GetUser(ctx),
		request.GetMetadata(ctx),
	)
	if err != nil {
		return controller.ConvertErrorStatusToHTTP(err)
	}

	return controller.Detail(ctx, "Product "+p.Name+" moved to warehouse "+dest.Name)
}

// @Summary 		Delete product
// @Description 	Attributes of the product are deleted as well
// @Tags			Products
// @Produce			json
// @Param 			id path int true "Product id"
// @Success			200 {object} responsebody.Detail
// @Failure			400,401,404,500 {object} responsebody.Error
// @Router			/products/{id} [delete]
// @Security		BearerAuth
func (c *Controller) Delete(ctx echo.Context) error {
	id, e := controller.ParseID(ctx, "id")
	if e != nil {
		return e
	}

	if err := c.service.DeleteProduct(ctx.Request().Context(), id, request.GetMetadata(ctx)); err != nil {
		return controller.ConvertErrorStatusToHTTP(err)
	}

	return controller.Detail(ctx, "Product deleted")
}
