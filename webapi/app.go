// Package webapi assembles the fiber application.
package webapi

import (
	"time"

	"github.com/arthamitra/arthamitra/infra/initializer"
	"github.com/arthamitra/arthamitra/pkg/config"
	"github.com/arthamitra/arthamitra/webapi/common"
	"github.com/arthamitra/arthamitra/webapi/holding"
	"github.com/arthamitra/arthamitra/webapi/portfolio"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// New builds the fiber app with rate limiting, panic recovery and all
// portfolio routes.
func New(deps *initializer.Deps, cfg *config.App) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			status := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				status = e.Code
			}
			return common.ProblemDetailsJSON(c, status, "Internal Server Error", err.Error())
		},
	})

	app.Use(limiter.New(limiter.Config{
		Max:        20,
		Expiration: 1 * time.Second,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return common.ProblemDetailsJSON(c, fiber.StatusTooManyRequests, "Too Many Requests", "Rate limit exceeded")
		},
	}))
	app.Use(recover.New())

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("ArthaMitra portfolio service is up")
	})

	holding.Routes(app, deps.Ingest, deps.Advisory, cfg)
	portfolio.Routes(app, deps.Advisory, cfg)

	return app
}
