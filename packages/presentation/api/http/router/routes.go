package router

import (
	"net/http"
	"strconv"
	"time"
	_ "warehouse/docs"
	"warehouse/packages/common/config"
	"warehouse/packages/common/logger"
	"warehouse/packages/core/inventory"
	"warehouse/packages/infrastructure/metrics"
	"warehouse/packages/infrastructure/token"
	Attribute "warehouse/packages/presentation/api/http/controllers/attribute"
	Auth "warehouse/packages/presentation/api/http/controllers/auth"
	Category "warehouse/packages/presentation/api/http/controllers/category"
	Docs "warehouse/packages/presentation/api/http/controllers/docs"
	Health "warehouse/packages/presentation/api/http/controllers/health"
	Product "warehouse/packages/presentation/api/http/controllers/product"
	User "warehouse/packages/presentation/api/http/controllers/user"
	Warehouse "warehouse/packages/presentation/api/http/controllers/warehouse"
	"warehouse/packages/presentation/api/http/middleware"
	"warehouse/packages/presentation/api/http/request"

	sentryecho "github.com/getsentry/sentry-go/echo"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
)

var log = logger.NewSource("ROUTER", logger.Default)

// i could just explicitly pass empty string in routes when i need it
// but it looks really awful and not obvious
const rootPath = ""

type Dependencies struct {
	Config  *config.Config
	Service *inventory.Service
	Tokens  *token.Issuer
	Metrics *metrics.Metrics

	// Store of the login rate limiter
	LoginLimiter echoMiddleware.RateLimiterStore
}

func Create(deps *Dependencies) *echo.Echo {
	cfg := deps.Config

	router := echo.New()

	router.HideBanner = true
	router.HidePort = true

	router.HTTPErrorHandler = handleHttpError
	router.JSONSerializer = serializer{}
	router.Binder = &binder{}

	cors := echoMiddleware.CORSConfig{
		Skipper:      echoMiddleware.DefaultSkipper,
		AllowOrigins: cfg.HTTP.AllowedOrigins,
		AllowMethods: []string{
			http.MethodGet,
			http.MethodHead,
			http.MethodPut,
			http.MethodPatch,
			http.MethodPost,
			http.MethodDelete,
		},
		AllowHeaders: []string{
			echo.HeaderAuthorization,
			echo.HeaderContentType,
		},
	}

	// "/warehouses/" and "/warehouses" are the same route
	router.Pre(echoMiddleware.RemoveTrailingSlash())
	router.Pre(echoMiddleware.RequestIDWithConfig(echoMiddleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	router.Pre(request.Middleware)

	router.Use(echoMiddleware.Recover())
	router.Use(middleware.SecurityHeaders)
	router.Use(echoMiddleware.BodyLimit(cfg.HTTP.BodyLimit))
	router.Use(echoMiddleware.CORSWithConfig(cors))
	router.Use(middleware.CheckOrigin(cfg.HTTP.AllowedOrigins))
	router.Use(deps.Metrics.Middleware())
	router.Use(sentryecho.New(sentryecho.Options{
		Repanic: true,
	}))

	if cfg.Debug.Enabled {
		router.Use(echoMiddleware.Logger())
	}

	secure := middleware.Secure(deps.Tokens, deps.Service)

	router.GET("/health", Health.Health, middleware.Sensivity(middleware.InsignificantEndpoint))
	router.GET("/metrics", echo.WrapHandler(deps.Metrics.Handler()), middleware.Sensivity(middleware.InsignificantEndpoint))

	authController := Auth.New(deps.Service, deps.Tokens)

	loginWindow := time.Minute / time.Duration(cfg.Auth.LoginRatePerMinute)

	router.POST(
		"/token",
		authController.Login,
		middleware.NoCache,
		middleware.Sensivity(middleware.SensitiveEndpoint),
		middleware.RateLimit(deps.LoginLimiter, loginWindow, deps.Metrics.RateLimited),
	)
	router.POST("/register", authController.Register, middleware.NoCache)

	userController := User.New(deps.Service)

	userGroup := router.Group("/users", secure, middleware.NoCache)

	userGroup.GET("/me", userController.Me)
	userGroup.PATCH("/:id", userController.Update)
	userGroup.DELETE("/:id", userController.Delete)

	warehouseController := Warehouse.New(deps.Service)

	warehouseGroup := router.Group("/warehouses", secure)

	warehouseGroup.POST(rootPath, warehouseController.Create)
	warehouseGroup.GET(rootPath, warehouseController.List)
	warehouseGroup.GET("/:id", warehouseController.Get)
	warehouseGroup.PATCH("/:id", warehouseController.Update)
	warehouseGroup.DELETE("/:id", warehouseController.Delete)

	categoryController := Category.New(deps.Service)

	categoryGroup := router.Group("/categories", secure)

	categoryGroup.POST(rootPath, categoryController.Create)
	categoryGroup.GET(rootPath, categoryController.List)
	categoryGroup.GET("/:id", categoryController.Get)
	categoryGroup.PATCH("/:id", categoryController.Update)
	categoryGroup.DELETE("/:id", categoryController.Delete)

	productController := Product.New(deps.Service)

	productGroup := router.Group("/products", secure)

	productGroup.POST(rootPath, productController.Create)
	productGroup.GET(rootPath, productController.List)
	productGroup.GET("/:id", productController.Get)
	productGroup.PATCH("/:id", productController.Update)
	productGroup.PUT("/:id", productController.Move)
	productGroup.DELETE("/:id", productController.Delete)

	attributeController := Attribute.New(deps.Service)

	attributeGroup := router.Group("/attributes", secure)

	attributeGroup.POST(rootPath, attributeController.Create)
	attributeGroup.GET(rootPath, attributeController.List)
	attributeGroup.GET("/:id", attributeController.Get)
	attributeGroup.PATCH("/:id", attributeController.Update)
	attributeGroup.DELETE("/:id", attributeController.Delete)

	docsGroupMiddlewares := []echo.MiddlewareFunc{middleware.Sensivity(middleware.InsignificantEndpoint)}
	if !cfg.Debug.Enabled {
		docsGroupMiddlewares = append(docsGroupMiddlewares, secure)
	}

	docsGroup := router.Group("/docs", docsGroupMiddlewares...)

	docsGroup.GET("/*", Docs.Swagger)

	log.Info("Registered "+strconv.Itoa(len(router.Routes()))+" routes", nil)

	return router
}
