package router

import (
	"log"
	"net/http"

	"github.com/Eursukkul/local-event-finder/internal/handler"
	"github.com/Eursukkul/local-event-finder/internal/middleware"
	"github.com/Eursukkul/local-event-finder/internal/service"
	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"
)

type Deps struct {
	Events       service.EventService
	Reservations service.ReservationService
	Auth         *middleware.Authenticator
	Limiter      *middleware.RateLimiter
}

func New(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = middleware.ErrorHandler
	e.Validator = middleware.NewRequestValidator()
	e.Use(echoMw.RequestLoggerWithConfig(echoMw.RequestLoggerConfig{
		LogStatus: true,
		LogURI:    true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v echoMw.RequestLoggerValues) error {
			log.Printf("%s %s %d", v.Method, v.URI, v.Status)
			return nil
		},
	}))
	e.Use(echoMw.Recover())

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok", "service": "event-finder"})
	})

	api := e.Group("/api/v1")
	admin := api.Group("/admin", d.Auth.RequireUser, middleware.RequireAdmin)

	handler.NewEventHandler(d.Events, d.Reservations).RegisterRoutes(api.Group("/events"), admin)
	handler.NewInterestHandler(d.Reservations).RegisterRoutes(api, d.Auth, d.Limiter.Middleware(middleware.ByUser))

	return e
}
