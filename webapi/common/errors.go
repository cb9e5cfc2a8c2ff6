package common

import (
	"errors"

	"github.com/arthamitra/arthamitra/pkg/domain/portfolio"
	"github.com/gofiber/fiber/v2"
)

// ErrorToStatusCode maps domain errors to HTTP status codes.
func ErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, portfolio.ErrInvalidISINFormat),
		errors.Is(err, portfolio.ErrInvalidAssetType),
		errors.Is(err, portfolio.ErrInvalidQuantity):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, portfolio.ErrHoldingNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, portfolio.ErrDecryptionFailed):
		return fiber.StatusUnauthorized
	case errors.Is(err, portfolio.ErrUnsupportedFileType):
		return fiber.StatusUnsupportedMediaType
	case errors.Is(err, portfolio.ErrParseFailed):
		return fiber.StatusUnprocessableEntity
	default:
		return fiber.StatusInternalServerError
	}
}
