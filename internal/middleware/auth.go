package middleware

import (
	stderrors "errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"aurum/internal/errors"
	"aurum/internal/models"
	"aurum/internal/repositories"
	"aurum/internal/repositories/cache"
	"aurum/internal/utils"
)

// AuthMiddleware resolves a bearer token to an authenticated user. The
// token must still exist in the session store (that is what bounds its
// lifetime), must not be revoked, and its subject must resolve to exactly
// one user. Every authenticated request also re-checks is_active and
// is_blocked, so deactivating or blocking a user takes effect immediately
// even for tokens issued earlier.
type AuthMiddleware struct {
	store cache.SessionStore
	users repositories.UserRepository
}

func NewAuthMiddleware(store cache.SessionStore, users repositories.UserRepository) *AuthMiddleware {
	return &AuthMiddleware{store: store, users: users}
}

// Handler authenticates the request and stores the resolved user, claims
// and raw token in the request context.
func (m *AuthMiddleware) Handler(c *fiber.Ctx) error {
	tokenStr, ok := bearerToken(c)
	if !ok {
		return utils.WriteError(c, errors.ErrInvalidCredentials)
	}

	claims, found, err := m.store.Get(c.UserContext(), tokenStr)
	if err != nil {
		return utils.WriteError(c, err)
	}
	// Covers never-issued tokens as well as expired ones, whose cache
	// entries have already evaporated.
	if !found {
		return utils.WriteError(c, errors.ErrInvalidCredentials)
	}

	if claims.TokenRevoked {
		return utils.WriteError(c, errors.ErrRevokedToken)
	}

	if claims.Email() == "" {
		return utils.WriteError(c, errors.ErrInvalidToken)
	}

	user, err := m.users.GetByEmail(c.UserContext(), claims.Email())
	if err != nil {
		if stderrors.Is(err, repositories.ErrNotFound) {
			return utils.WriteError(c, errors.ErrInvalidTokenCredential)
		}
		return utils.WriteError(c, err)
	}

	if !user.IsActive {
		return utils.WriteError(c, errors.ErrNotActive)
	}
	if user.IsBlocked {
		return utils.WriteError(c, errors.ErrBlocked)
	}

	c.Locals(utils.LocalsUser, user)
	c.Locals(utils.LocalsClaims, claims)
	c.Locals(utils.LocalsToken, tokenStr)

	return c.Next()
}

// RequireRefreshToken restricts a route to refresh tokens. It must run
// after Handler.
func RequireRefreshToken(c *fiber.Ctx) error {
	claims, err := utils.GetTokenClaims(c)
	if err != nil {
		return utils.WriteError(c, errors.ErrInvalidCredentials)
	}
	if !claims.IsRefresh() {
		return utils.WriteError(c, errors.ErrInvalidTokenType)
	}
	return c.Next()
}

// AdminRequired gates a route to admin users. Non-admins get the same 404
// an unknown path would, keeping the admin surface undiscoverable.
func AdminRequired(c *fiber.Ctx) error {
	user, err := utils.GetAuthUser(c)
	if err != nil || user.Role != models.RoleAdmin {
		return utils.WriteError(c, errors.ErrNotAdmin)
	}
	return c.Next()
}

func bearerToken(c *fiber.Ctx) (string, bool) {
	header := c.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return "", false
	}
	token := strings.TrimPrefix(header, "Bearer ")
	return token, token != ""
}
