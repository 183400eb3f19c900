// Package webapi provides the HTTP JSON API of the calculator.
// It is organized into sub-packages:
// - common: response helpers, error mapping and request validation
// - rates: rates, quotation and session history endpoints
package webapi

import (
	"errors"
	"strings"
	"time"

	"github.com/amirasaad/kambialo/pkg/app"
	"github.com/amirasaad/kambialo/pkg/config"
	"github.com/amirasaad/kambialo/pkg/history"
	ratesvc "github.com/amirasaad/kambialo/pkg/service/rates"
	"github.com/amirasaad/kambialo/webapi/common"
	ratesweb "github.com/amirasaad/kambialo/webapi/rates"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/session"
)

const sessionCookie = "kambialo_session"

// SetupApp Initialize Fiber with custom configuration
func SetupApp(a *app.App) *fiber.App {
	return NewApp(a.RatesService, a.Sessions, a.Config)
}

// NewApp builds the Fiber application around the rates service and the
// session histories.
func NewApp(ratesSvc *ratesvc.Service, sessions *history.Sessions, cfg *config.App) *fiber.App {
	fiberApp := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return common.ProblemDetailsJSON(c, "Internal Server Error", err)
		},
	})

	rateLimit := config.RateLimit{MaxRequests: 100, Window: time.Minute}
	if cfg != nil && cfg.RateLimit != nil {
		rateLimit = *cfg.RateLimit
	}

	// Configure rate limiting middleware
	// Uses X-Forwarded-For header when behind a proxy
	// Falls back to X-Real-IP or direct IP if needed
	fiberApp.Use(limiter.New(limiter.Config{
		Max:        rateLimit.MaxRequests,
		Expiration: rateLimit.Window,
		KeyGenerator: func(c *fiber.Ctx) string {
			if forwardedFor := c.Get("X-Forwarded-For"); forwardedFor != "" {
				// Take the first IP in the chain
				if commaIndex := strings.Index(forwardedFor, ","); commaIndex != -1 {
					return strings.TrimSpace(forwardedFor[:commaIndex])
				}
				return strings.TrimSpace(forwardedFor)
			}
			if realIP := c.Get("X-Real-IP"); realIP != "" {
				return realIP
			}
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return common.ProblemDetailsJSON(
				c,
				"Too Many Requests",
				errors.New("rate limit exceeded"),
				fiber.StatusTooManyRequests,
			)
		},
	}))
	fiberApp.Use(recover.New())
	if cfg != nil && cfg.Env != "test" {
		fiberApp.Use(logger.New())
	}

	idle := 30 * time.Minute
	if cfg != nil && cfg.History != nil && cfg.History.SessionIdleTimeout > 0 {
		idle = cfg.History.SessionIdleTimeout
	}
	store := session.New(session.Config{
		Expiration:     idle,
		KeyLookup:      "cookie:" + sessionCookie,
		CookieHTTPOnly: true,
		CookieSameSite: fiber.CookieSameSiteLaxMode,
	})

	// Health check endpoint
	fiberApp.Get(
		"/",
		func(c *fiber.Ctx) error {
			return c.SendString("Kambialo API is running! 🚀")
		},
	)

	ratesweb.Routes(fiberApp, ratesSvc, sessions, store)
	return fiberApp
}
