package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Mind-Measure/mind-measure-mobile-sub000/pkg/config"
)

// Router holds all handlers
type Router struct {
	cfg            *config.Config
	checkInHandler *CheckIn
}

// NewRouter creates a new router with all handlers
func NewRouter(cfg *config.Config, checkInHandler *CheckIn) *Router {
	return &Router{
		cfg:            cfg,
		checkInHandler: checkInHandler,
	}
}

// Setup configures all application routes
func (rt *Router) Setup(e *echo.Echo) {
	e.GET("/health", rt.healthCheck)

	v1 := e.Group("/v1")
	rt.setupCheckInRoutes(v1)
}

// setupCheckInRoutes configures enrichment routes
func (rt *Router) setupCheckInRoutes(g *echo.Group) {
	if rt.checkInHandler == nil {
		g.POST("/checkins", rt.notImplemented)
		g.GET("/checkins/:id", rt.notImplemented)
		g.GET("/users/:user_id/checkins", rt.notImplemented)
		g.GET("/users/:user_id/baseline", rt.notImplemented)
		g.DELETE("/users/:user_id/baseline", rt.notImplemented)
		return
	}

	g.POST("/checkins", rt.checkInHandler.Enrich)
	g.GET("/checkins/:id", rt.checkInHandler.GetRecord)
	g.GET("/users/:user_id/checkins", rt.checkInHandler.ListRecords)
	g.GET("/users/:user_id/baseline", rt.checkInHandler.GetBaseline)
	g.DELETE("/users/:user_id/baseline", rt.checkInHandler.ResetBaseline)
}

// notImplemented returns 501 Not Implemented response
func (rt *Router) notImplemented(c echo.Context) error {
	return c.JSON(http.StatusNotImplemented, map[string]interface{}{
		"error":   "This endpoint is not yet implemented",
		"path":    c.Request().URL.Path,
		"method":  c.Request().Method,
		"message": "Please initialize the required handler in main.go",
	})
}

// healthCheck returns health status
func (rt *Router) healthCheck(c echo.Context) error {
	env := ""
	if rt.cfg != nil {
		env = rt.cfg.Server.Environment
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":      "ok",
		"environment": env,
	})
}
