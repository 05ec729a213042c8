package api

import (
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"golang.org/x/time/rate"
)

type ServerOptions struct {
	LogLevel  string
	CORS      bool
	RateLimit float64 // requests per second per client, 0 disables
}

// ParseLevel maps a config log level onto echo's logger levels.
func ParseLevel(s string) log.Lvl {
	switch strings.ToLower(s) {
	case "debug":
		return log.DEBUG
	case "warn", "warning":
		return log.WARN
	case "error":
		return log.ERROR
	case "off":
		return log.OFF
	}
	return log.INFO
}

// NewServer builds the echo instance with middleware and routes registered.
func NewServer(h *Handler, opts ServerOptions) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.JSONSerializer = goJSONSerializer{}
	e.Logger.SetLevel(ParseLevel(opts.LogLevel))

	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{Generator: uuid.NewString}))
	if opts.CORS {
		e.Use(middleware.CORS())
	}
	e.Use(middleware.Recover())
	e.Use(middleware.Logger())
	if opts.RateLimit > 0 {
		e.Use(middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(rate.Limit(opts.RateLimit))))
	}

	h.RegisterRoutes(e)
	return e
}
