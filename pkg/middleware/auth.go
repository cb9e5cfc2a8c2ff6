// Package middleware holds the identity middleware. Tokens are issued by the
// external identity/session provider; this service only verifies them and
// reads the authenticated user id.
package middleware

import (
	"errors"
	"strings"

	"github.com/arthamitra/arthamitra/pkg/config"
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrMissingUserContext is returned when a handler runs without a verified
// token in the request context.
var ErrMissingUserContext = errors.New("missing user context")

// JwtProtected verifies the bearer token and stores it in the request
// context under "user".
func JwtProtected(cfg config.Jwt) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:   jwtware.SigningKey{Key: []byte(cfg.Secret)},
		ErrorHandler: jwtError,
	})
}

func jwtError(c *fiber.Ctx, err error) error {
	if strings.Contains(strings.ToLower(err.Error()), "missing or malformed") {
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"status": "error", "message": "Missing or malformed JWT"})
	}
	return c.Status(fiber.StatusUnauthorized).
		JSON(fiber.Map{"status": "error", "message": "Invalid or expired JWT"})
}

// UserID extracts the authenticated user id from the verified token's
// subject claim.
func UserID(c *fiber.Ctx) (uuid.UUID, error) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		return uuid.Nil, ErrMissingUserContext
	}
	subject, err := token.Claims.GetSubject()
	if err != nil {
		return uuid.Nil, err
	}
	return uuid.Parse(subject)
}
