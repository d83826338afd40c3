package http

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "hovertrans/backend/docs"
	"hovertrans/backend/internal/handler"
)

// RouteRegistrar mounts a handler's routes under /api.
type RouteRegistrar interface {
	RegisterRoutes(g *echo.Group)
}

// RouterOptions configures NewRouter.
type RouterOptions struct {
	AllowedOrigins []string
	StaticDir      string
}

func NewRouter(
	tabHandler *handler.TabHandler,
	messageHandler *handler.MessageHandler,
	translationHandler *handler.TranslationHandler,
	settingsHandler *handler.SettingsHandler,
	eventHandler *handler.EventHandler,
	selectionHandler *handler.SelectionHandler,
	opts RouterOptions,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:  opts.AllowedOrigins,
		AllowHeaders:  []string{echo.HeaderContentType, echo.HeaderAccept, handler.HeaderTabID},
		AllowMethods:  []string{echo.GET, echo.POST, echo.PATCH, echo.DELETE, echo.OPTIONS},
		ExposeHeaders: []string{echo.HeaderContentType},
	}))
	e.Use(RequestLoggerMiddleware())

	e.GET("/healthz", healthz)
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")
	for _, r := range []RouteRegistrar{tabHandler, messageHandler, translationHandler, settingsHandler, eventHandler, selectionHandler} {
		r.RegisterRoutes(api)
	}

	registerStatic(e, opts.StaticDir)

	return e
}

func healthz(c echo.Context) error {
	return c.JSON(200, map[string]string{"status": "ok"})
}
