package http

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/openclaw/a2a-bridge/internal/config"
	"github.com/openclaw/a2a-bridge/internal/gateway"
)

// NewServer creates and configures the bridge HTTP server.
func NewServer(cfg *config.Config, client *gateway.Client) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	// Middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// Handlers
	h := NewHandler(cfg, client)
	h.RegisterRoutes(e)

	return e
}
