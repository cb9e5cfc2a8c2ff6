// Package portfolio exposes the portfolio-level read endpoints: alignment
// against the persona target and imported statement history.
package portfolio

import (
	"github.com/arthamitra/arthamitra/pkg/config"
	"github.com/arthamitra/arthamitra/pkg/middleware"
	"github.com/arthamitra/arthamitra/pkg/service/advisory"
	"github.com/arthamitra/arthamitra/webapi/common"
	"github.com/gofiber/fiber/v2"
)

// Routes registers the portfolio endpoints.
func Routes(app *fiber.App, advisorySvc *advisory.Service, cfg *config.App) {
	group := app.Group("/api/portfolio", middleware.JwtProtected(cfg.Jwt))

	group.Get("/alignment", GetAlignment(advisorySvc))
	group.Get("/transactions", GetTransactions(advisorySvc))
}

// GetAlignment returns the alignment score of the portfolio against the
// user's persona target allocation. A missing persona degrades to a null
// score rather than failing the read.
// @Summary Portfolio alignment against persona target
// @Tags portfolio
// @Produce json
// @Success 200 {object} common.Response
// @Router /api/portfolio/alignment [get]
// @Security Bearer
func GetAlignment(advisorySvc *advisory.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := middleware.UserID(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, fiber.StatusUnauthorized, "Unauthorized", err.Error())
		}
		alignment, err := advisorySvc.GetPortfolioAlignment(c.Context(), userID)
		if err != nil {
			return common.ProblemDetailsJSON(c, fiber.StatusInternalServerError, "Failed to compute alignment", err.Error())
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Alignment computed", alignment)
	}
}

// GetTransactions lists the statement transactions imported from CAS
// uploads, newest first.
// @Summary List imported statement transactions
// @Tags portfolio
// @Produce json
// @Success 200 {object} common.Response
// @Router /api/portfolio/transactions [get]
// @Security Bearer
func GetTransactions(advisorySvc *advisory.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := middleware.UserID(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, fiber.StatusUnauthorized, "Unauthorized", err.Error())
		}
		transactions, err := advisorySvc.ListTransactions(c.Context(), userID)
		if err != nil {
			return common.ProblemDetailsJSON(c, fiber.StatusInternalServerError, "Failed to list transactions", err.Error())
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Transactions fetched", fiber.Map{
			"transactions": transactions,
		})
	}
}
