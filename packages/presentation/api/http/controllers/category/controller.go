package categorycontroller

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

// @Summary 		Create category
// @Tags			Categories
// @Accept			json
// @Produce			json
// @Param 			body body entity.CategoryCreate true "New category"
// @Success			200 {object} entity.Category
// @Failure			400,401,500 {object} responsebody.Error
// @Router			/categories/ [post]
// @Security		BearerAuth
func (c *Controller) Create(ctx echo.Context) error {
	var body entity.CategoryCreate

	if err := controller.BindAndValidate(ctx, &body); err != nil {
		return err
	}

	record, err := c.service.CreateCategory(ctx.Request().Context(), &body, request.GetMetadata(ctx))
	if err != nil {
		return controller.ConvertErrorStatusToHTTP(err)
	}

	return ctx.JSON(http.StatusOK, record)
}

// @Summary 		List categories
// @Tags			Categories
// @Produce			json
// @Param 			filter query string false "Filter directive, e.g. {\"name\":{\"ILIKE\":\"main\"}}"
// @Param 			sort query string false "Sort directive, e.g. [{\"field\":\"name\",\"order\":\"ASC\"}]"
// @Param 			range query string false "Range directive, e.g. {\"limit\":10,\"offset\":0}"
// @Success			200 {array} entity.Category
// @Failure			400,401,500 {object} responsebody.Error
// @Router			/categories/ [get]
// @Security		BearerAuth
func (c *Controller) List(ctx echo.Context) error {
	records, err := c.service.ListCategories(ctx.Request().Context(), controller.ParseQuery(ctx), request.GetMetadata(ctx))
	if err != nil {
		return controller.ConvertErrorStatusToHTTP(err)
	}

	return ctx.JSON(http.StatusOK, records)
}

// @Summary 		Get category
// @Tags			Categories
// @Produce			json
// @Param 			id path int true "Category id"
// @Success			200 {object} entity.Category
// @Failure			400,401,404,500 {object} responsebody.Error
// @Router			/categories/{id} [get]
// @Security		BearerAuth
func (c *Controller) Get(ctx echo.Context) error {
	id, e := controller.ParseID(ctx, "id")
	if e != nil {
		return e
	}

	record, err := c.service.GetCategory(ctx.Request().Context(), id)
	if err != nil {
		return controller.ConvertErrorStatusToHTTP(err)
	}

	return ctx.JSON(http.StatusOK, record)
}

// @Summary 		Update category
// @Tags			Categories
// @Accept			json
// @Produce			json
// @Param 			id path int true "Category id"
// @Param 			body body entity.CategoryUpdate true "Changed fields"
// @Success			200 {object} entity.Category
// @Failure			400,401,404,409,500 {object} responsebody.Error
// @Router			/categories/{id} [patch]
// @Security		BearerAuth
func (c *Controller) Update(ctx echo.Context) error {
	id, e := controller.ParseID(ctx, "id")
	if e != nil {
		return e
	}

	var body entity.CategoryUpdate

	if err := controller.BindAndValidate(ctx, &body); err != nil {
		return err
	}

	record, err := c.service.UpdateCategory(ctx.Request().Context(), id, &body, request.GetMetadata(ctx))
	if err != nil {
		return controller.ConvertErrorStatusToHTTP(err)
	}

	return ctx.JSON(http.StatusOK, record)
}

// @Summary 		Delete category
// @Description 	Products of the category and their attributes are deleted as well
// @Tags			Categories
// @Produce			json
// @Param 			id path int true "Category id"
// @Success			200 {object} responsebody.Detail
// @Failure			400,401,404,500 {object} responsebody.Error
// @Router			/categories/{id} [delete]
// @Security		BearerAuth
func (c *Controller) Delete(ctx echo.Context) error {
	id, e := controller.ParseID(ctx, "id")
	if e != nil {
		return e
	}

	if err := c.service.DeleteCategory(ctx.Request().Context(), id, request.GetMetadata(ctx)); err != nil {
		return controller.ConvertErrorStatusToHTTP(err)
	}

	return controller.Detail(ctx, "Category deleted")
}
