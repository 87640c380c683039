package usercontroller

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

// @Summary 		Current user
// @Tags			Users
// @Produce			json
// @Success			200 {object} entity.User
// @Failure			401,500 {object} responsebody.Error
// @Router			/users/me [get]
// @Security		BearerAuth
func (c *Controller) Me(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, controller.GetUser(ctx))
}

// @Summary 		Update user
// @Description 	Users can update only themselves. Password is re-hashed if changed
// @Tags			Users
// @Accept			json
// @Produce			json
// @Param 			id path int true "User id"
// @Param 			body body entity.UserUpdate true "Changed fields"
// @Success			200 {object} entity.User
// @Failure			400,401,403,404,409,500 {object} responsebody.Error
// @Router			/users/{id} [patch]
// @Security		BearerAuth
func (c *Controller) Update(ctx echo.Context) error {
	id, e := controller.ParseID(ctx, "id")
	if e != nil {
		return e
	}

	var body entity.UserUpdate

	if err := controller.BindAndValidate(ctx, &body); err != nil {
		return err
	}

	user, err := c.service.UpdateUser(
		ctx.Request().Context(),
		id,
		&body,
		controller.GetUser(ctx),
		request.GetMetadata(ctx),
	)
	if err != nil {
		return controller.ConvertErrorStatusToHTTP(err)
	}

	return ctx.JSON(http.StatusOK, user)
}

// @Summary 		Delete user
// @Description 	Users can delete only themselves.
// @Description 	Products created or updated by the user are deleted as well
// @Tags			Users
// @Produce			json
// @Param 			id path int true "User id"
// @Success			200 {object} responsebody.Detail
// @Failure			400,401,403,404,500 {object} responsebody.Error
// @Router			/users/{id} [delete]
// @Security		BearerAuth
func (c *Controller) Delete(ctx echo.Context) error {
	id, e := controller.ParseID(ctx, "id")
	if e != nil {
		return e
	}

	err := c.service.DeleteUser(
		ctx.Request().Context(),
		id,
		controller.GetUser(ctx),
		request.GetMetadata(ctx),
	)
	if err != nil {
		return controller.ConvertErrorStatusToHTTP(err)
	}

	return controller.Detail(ctx, "User deleted")
}
