package authcontroller

import (
	"net/http"
	"strings"
	"warehouse/packages/core/entity"
	"warehouse/packages/core/inventory"
	"warehouse/packages/infrastructure/token"
	controller "warehouse/packages/presentation/api/http/controllers"
	"warehouse/packages/presentation/api/http/request"
	ResponseBody "warehouse/packages/presentation/data/response"

	"github.com/labstack/echo/v4"
)

type Controller struct {
	service *inventory.Service
	issuer  *token.Issuer
}

func New(service *inventory.Service, issuer *token.Issuer) *Controller {
	return &Controller{
		service: service,
		issuer:  issuer,
	}
}

// @Summary 		Login
// @Description 	Exchanges username and password for the bearer access token
// @Tags			Auth
// @Accept			x-www-form-urlencoded
// @Produce			json
// @Param 			username formData string true "Username"
// @Param 			password formData string true "Password"
// @Success			200 {object} responsebody.Token
// @Failure			400,401,429,500 {object} responsebody.Error
// @Router			/token [post]
func (c *Controller) Login(ctx echo.Context) error {
	reqMeta := request.GetMetadata(ctx)

	username := ctx.FormValue("username")
	password := ctx.FormValue("password")

	if strings.TrimSpace(username) == "" || password == "" {
		controller.Log.Error("Failed to login", "Username or password is missing", reqMeta)
		return echo.NewHTTPError(http.StatusBadRequest, "Username and password are required")
	}

	user, err := c.service.Authenticate(ctx.Request().Context(), username, password, reqMeta)
	if err != nil {
		if err == inventory.InvalidCredentials {
			return controller.HandleAuthError(ctx, err)
		}
		return controller.ConvertErrorStatusToHTTP(err)
	}

	accessToken, err := c.issuer.IssueDefault(user.Username)
	if err != nil {
		return controller.ConvertErrorStatusToHTTP(err)
	}

	ctx.Response().Header().Set("Cache-Control", "no-store")

	return ctx.JSON(http.StatusOK, ResponseBody.Token{
		AccessToken: accessToken.String(),
		TokenType:   "bearer",
		ExpiresIn:   int(accessToken.TTL().Seconds()),
	})
}

// @Summary 		Register
// @Tags			Auth
// @Accept			json
// @Produce			json
// @Param 			body body entity.UserCreate true "New user"
// @Success			200 {object} entity.User
// @Failure			400,500 {object} responsebody.Error
// @Router			/register/ [post]
func (c *Controller) Register(ctx echo.Context) error {
	var body entity.UserCreate

	if err := controller.BindAndValidate(ctx, &body); err != nil {
		return err
	}

	user, err := c.service.Register(ctx.Request().Context(), &body, request.GetMetadata(ctx))
	if err != nil {
		return controller.ConvertErrorStatusToHTTP(err)
	}

	return ctx.JSON(http.StatusOK, user)
}
