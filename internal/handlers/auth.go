package handlers

import (
	"github.com/gofiber/fiber/v2"

	"aurum/internal/services/auth"
	"aurum/internal/utils"
	"aurum/internal/validation"
)

type AuthHandler struct {
	authService auth.Service
}

func NewAuthHandler(authService auth.Service) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Signup registers a new account, or reactivates an inactive one with the
// same email.
func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var input struct {
		Email     string  `json:"email"`
		Password  string  `json:"password"`
		FirstName *string `json:"first_name"`
		LastName  *string `json:"last_name"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request body")
	}

	v := validation.New()
	v.Required("email", input.Email)
	v.Email("email", input.Email)
	v.Required("password", input.Password)
	if input.FirstName != nil {
		v.MaxLength("first_name", *input.FirstName, 50)
	}
	if input.LastName != nil {
		v.MaxLength("last_name", *input.LastName, 50)
	}
	if !v.Valid() {
		return utils.UnprocessableEntity(c, v.Detail())
	}

	user, err := h.authService.Signup(c.UserContext(), input.Email, input.Password, input.FirstName, input.LastName)
	if err != nil {
		return utils.WriteError(c, err)
	}

	return utils.Created(c, NewUserSummary(user))
}

// Login verifies credentials and returns an access/refresh token pair.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request body")
	}

	if input.Email == "" || input.Password == "" {
		return utils.UnprocessableEntity(c, "Email and password are required")
	}

	tokens, err := h.authService.Login(c.UserContext(), input.Email, input.Password)
	if err != nil {
		return utils.WriteError(c, err)
	}

	return utils.Success(c, tokens)
}

// Logout revokes the presented bearer token and returns its revoked form.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	claims, err := utils.GetTokenClaims(c)
	if err != nil {
		return utils.WriteError(c, err)
	}
	tokenStr, err := utils.GetBearerToken(c)
	if err != nil {
		return utils.WriteError(c, err)
	}

	revoked, err := h.authService.Logout(c.UserContext(), tokenStr, claims)
	if err != nil {
		return utils.WriteError(c, err)
	}

	return utils.Success(c, fiber.Map{"access_token": revoked})
}

// Refresh issues a new access token from a valid refresh token.
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	user, err := utils.GetAuthUser(c)
	if err != nil {
		return utils.WriteError(c, err)
	}

	accessToken, err := h.authService.Refresh(c.UserContext(), user)
	if err != nil {
		return utils.WriteError(c, err)
	}

	return utils.Created(c, fiber.Map{"access_token": accessToken})
}

// ChangePassword replaces the caller's password after verifying the old
// one and the new password's policy.
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	var input struct {
		OldPassword        string `json:"old_password"`
		NewPassword        string `json:"new_password"`
		NewPasswordConfirm string `json:"new_password_confirm"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request body")
	}

	user, err := utils.GetAuthUser(c)
	if err != nil {
		return utils.WriteError(c, err)
	}

	if err := h.authService.ChangePassword(c.UserContext(), user, input.OldPassword, input.NewPassword, input.NewPasswordConfirm); err != nil {
		return utils.WriteError(c, err)
	}

	return utils.Success(c, NewUserSummary(user))
}

// Deactivate turns the caller's account inactive; signup with the same
// email reactivates it.
func (h *AuthHandler) Deactivate(c *fiber.Ctx) error {
	user, err := utils.GetAuthUser(c)
	if err != nil {
		return utils.WriteError(c, err)
	}

	if err := h.authService.Deactivate(c.UserContext(), user); err != nil {
		return utils.WriteError(c, err)
	}

	return utils.Success(c, NewUserSummary(user))
}

// Delete soft-deletes the caller's account and scrubs its PII.
func (h *AuthHandler) Delete(c *fiber.Ctx) error {
	user, err := utils.GetAuthUser(c)
	if err != nil {
		return utils.WriteError(c, err)
	}

	if err := h.authService.SoftDelete(c.UserContext(), user); err != nil {
		return utils.WriteError(c, err)
	}

	return utils.Success(c, NewUserSummary(user))
}

// Me returns the authenticated caller's summary.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user, err := utils.GetAuthUser(c)
	if err != nil {
		return utils.WriteError(c, err)
	}
	return utils.Success(c, NewUserSummary(user))
}
