// Package holding exposes the holding ingestion and listing endpoints.
package holding

import (
	"bytes"
	"io"
	"mime/multipart"

	"github.com/arthamitra/arthamitra/pkg/config"
	"github.com/arthamitra/arthamitra/pkg/middleware"
	"github.com/arthamitra/arthamitra/pkg/service/advisory"
	"github.com/arthamitra/arthamitra/pkg/service/ingest"
	"github.com/arthamitra/arthamitra/webapi/common"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Routes registers the holding endpoints. All of them require an
// authenticated user.
func Routes(app *fiber.App, ingestSvc *ingest.Service, advisorySvc *advisory.Service, cfg *config.App) {
	group := app.Group("/api/holdings", middleware.JwtProtected(cfg.Jwt))

	group.Post("/", AddManualHolding(ingestSvc))
	group.Post("/import/csv", UploadCSV(ingestSvc))
	group.Post("/import/cas", UploadCAS(ingestSvc))
	group.Get("/", GetHoldings(advisorySvc))
	group.Delete("/:id", DeleteHolding(ingestSvc))
}

// AddManualHolding stores a single user-entered holding.
// @Summary Add a holding manually
// @Tags holdings
// @Accept json
// @Produce json
// @Success 201 {object} common.Response
// @Failure 422 {object} common.ProblemDetails
// @Router /api/holdings [post]
// @Security Bearer
func AddManualHolding(ingestSvc *ingest.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := middleware.UserID(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, fiber.StatusUnauthorized, "Unauthorized", err.Error())
		}
		input, err := common.BindAndValidate[AddHoldingRequest](c)
		if err != nil {
			return nil // response already written
		}
		merge, err := ingestSvc.AddManualHolding(
			c.Context(), userID, input.ISIN, input.AssetType, input.Quantity.String())
		if err != nil {
			return common.ProblemDetailsJSON(c, common.ErrorToStatusCode(err), "Failed to add holding", err.Error())
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Holding added", ImportSummaryResponse{
			Imported: merge.Imported(),
			Inserted: merge.Inserted,
			Updated:  merge.Updated,
			Errors:   merge.Errors,
		})
	}
}

// UploadCSV imports holdings in bulk from a CSV document. The document can
// be posted raw or as a multipart "file" field.
// @Summary Bulk import holdings from CSV
// @Tags holdings
// @Accept text/csv
// @Produce json
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Router /api/holdings/import/csv [post]
// @Security Bearer
func UploadCSV(ingestSvc *ingest.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := middleware.UserID(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, fiber.StatusUnauthorized, "Unauthorized", err.Error())
		}
		csvText, err := csvBody(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, fiber.StatusBadRequest, "Unreadable upload", err.Error())
		}
		merge, err := ingestSvc.ImportCSV(c.Context(), userID, csvText)
		if err != nil {
			return common.ProblemDetailsJSON(c, fiber.StatusBadRequest, "CSV import failed", err.Error())
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "CSV imported", ImportSummaryResponse{
			Imported: merge.Imported(),
			Inserted: merge.Inserted,
			Updated:  merge.Updated,
			Errors:   merge.Errors,
		})
	}
}

// UploadCAS imports holdings and transaction history from a consolidated
// account statement PDF, optionally decrypted with the "password" form
// field.
// @Summary Import a CAS statement PDF
// @Tags holdings
// @Accept multipart/form-data
// @Produce json
// @Success 200 {object} common.Response
// @Failure 401 {object} common.ProblemDetails
// @Failure 415 {object} common.ProblemDetails
// @Failure 422 {object} common.ProblemDetails
// @Router /api/holdings/import/cas [post]
// @Security Bearer
func UploadCAS(ingestSvc *ingest.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := middleware.UserID(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, fiber.StatusUnauthorized, "Unauthorized", err.Error())
		}
		fileHeader, err := c.FormFile("file")
		if err != nil {
			return common.ProblemDetailsJSON(c, fiber.StatusBadRequest, "Missing statement file", err.Error())
		}
		content, err := readUpload(fileHeader)
		if err != nil {
			return common.ProblemDetailsJSON(c, fiber.StatusBadRequest, "Unreadable upload", err.Error())
		}
		password := c.FormValue("password")

		merge, err := ingestSvc.ImportCAS(
			c.Context(), userID, bytes.NewReader(content), int64(len(content)), password)
		if err != nil {
			return common.ProblemDetailsJSON(c, common.ErrorToStatusCode(err), "CAS import failed", err.Error())
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Statement imported", ImportSummaryResponse{
			Imported: merge.Imported(),
			Inserted: merge.Inserted,
			Updated:  merge.Updated,
			Skipped:  merge.Skipped,
			Errors:   merge.Errors,
		})
	}
}

// GetHoldings lists the user's holdings with current valuations and an
// aggregate summary.
// @Summary List holdings with valuations
// @Tags holdings
// @Produce json
// @Success 200 {object} common.Response
// @Router /api/holdings [get]
// @Security Bearer
func GetHoldings(advisorySvc *advisory.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := middleware.UserID(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, fiber.StatusUnauthorized, "Unauthorized", err.Error())
		}
		holdings, summary, err := advisorySvc.GetHoldings(c.Context(), userID)
		if err != nil {
			return common.ProblemDetailsJSON(c, fiber.StatusInternalServerError, "Failed to list holdings", err.Error())
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Holdings fetched", fiber.Map{
			"holdings": holdings,
			"summary":  summary,
		})
	}
}

// DeleteHolding removes one holding owned by the user.
// @Summary Delete a holding
// @Tags holdings
// @Produce json
// @Success 200 {object} common.Response
// @Failure 404 {object} common.ProblemDetails
// @Router /api/holdings/{id} [delete]
// @Security Bearer
func DeleteHolding(ingestSvc *ingest.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := middleware.UserID(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, fiber.StatusUnauthorized, "Unauthorized", err.Error())
		}
		holdingID, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return common.ProblemDetailsJSON(c, fiber.StatusBadRequest, "Invalid holding id", err.Error())
		}
		if err := ingestSvc.DeleteHolding(c.Context(), userID, holdingID); err != nil {
			return common.ProblemDetailsJSON(c, common.ErrorToStatusCode(err), "Failed to delete holding", err.Error())
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Holding deleted", nil)
	}
}

func csvBody(c *fiber.Ctx) (string, error) {
	if fileHeader, err := c.FormFile("file"); err == nil {
		content, err := readUpload(fileHeader)
		if err != nil {
			return "", err
		}
		return string(content), nil
	}
	return string(c.Body()), nil
}

func readUpload(fileHeader *multipart.FileHeader) ([]byte, error) {
	f, err := fileHeader.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close() //nolint:errcheck
	return io.ReadAll(f)
}
