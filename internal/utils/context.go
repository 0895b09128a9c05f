package utils

import (
	stderrors "errors"

	"github.com/gofiber/fiber/v2"

	"aurum/internal/models"
)

// Locals keys set by the auth middleware.
const (
	LocalsUser   = "user"
	LocalsClaims = "claims"
	LocalsToken  = "token"
)

// GetAuthUser extracts the authenticated user from the Fiber context.
// It returns an error if the auth middleware did not run.
func GetAuthUser(c *fiber.Ctx) (*models.User, error) {
	user, ok := c.Locals(LocalsUser).(*models.User)
	if !ok || user == nil {
		return nil, stderrors.New("authenticated user not found in context")
	}
	return user, nil
}

// GetTokenClaims extracts the bearer token's claims from the Fiber context.
func GetTokenClaims(c *fiber.Ctx) (*models.TokenClaims, error) {
	claims, ok := c.Locals(LocalsClaims).(*models.TokenClaims)
	if !ok || claims == nil {
		return nil, stderrors.New("token claims not found in context")
	}
	return claims, nil
}

// GetBearerToken extracts the raw bearer token from the Fiber context.
func GetBearerToken(c *fiber.Ctx) (string, error) {
	token, ok := c.Locals(LocalsToken).(string)
	if !ok || token == "" {
		return "", stderrors.New("bearer token not found in context")
	}
	return token, nil
}
