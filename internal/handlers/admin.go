package handlers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"aurum/internal/repositories"
	"aurum/internal/services/admin"
	"aurum/internal/utils"
)

type AdminHandler struct {
	adminService admin.Service
}

func NewAdminHandler(adminService admin.Service) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

// ListUsers returns users matching the query filters. Filters combine with
// AND; an unrecognized order_by falls back to default ordering instead of
// failing.
func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	p := utils.GetPagination(c, 1, 50)

	filter := repositories.UserFilter{
		UserID:    queryUint(c, "user_id"),
		Email:     queryString(c, "email"),
		FirstName: queryString(c, "first_name"),
		LastName:  queryString(c, "last_name"),
		IsActive:  queryBool(c, "is_active"),
		IsBlocked: queryBool(c, "is_blocked"),
		OrderBy:   c.Query("order_by"),
		Desc:      strings.EqualFold(c.Query("order_type", "asc"), "desc"),
		Limit:     p.Limit,
		Offset:    p.Offset,
	}

	users, err := h.adminService.ListUsers(c.UserContext(), filter)
	if err != nil {
		return utils.WriteError(c, err)
	}

	summaries := make([]UserSummary, 0, len(users))
	for i := range users {
		summaries = append(summaries, NewUserSummary(&users[i]))
	}

	return utils.Success(c, fiber.Map{"users": summaries})
}

// BlockUser sets the administrative lock on the target user.
func (h *AdminHandler) BlockUser(c *fiber.Ctx) error {
	actor, err := utils.GetAuthUser(c)
	if err != nil {
		return utils.WriteError(c, err)
	}

	userID, err := paramUserID(c)
	if err != nil {
		return utils.BadRequest(c, "Invalid user ID")
	}

	user, err := h.adminService.Block(c.UserContext(), actor, userID)
	if err != nil {
		return utils.WriteError(c, err)
	}

	return utils.Success(c, fiber.Map{
		"id":         user.ID,
		"is_blocked": user.IsBlocked,
	})
}

// UnblockUser lifts the administrative lock from the target user.
func (h *AdminHandler) UnblockUser(c *fiber.Ctx) error {
	userID, err := paramUserID(c)
	if err != nil {
		return utils.BadRequest(c, "Invalid user ID")
	}

	user, err := h.adminService.Unblock(c.UserContext(), userID)
	if err != nil {
		return utils.WriteError(c, err)
	}

	return utils.Success(c, fiber.Map{
		"id":         user.ID,
		"is_blocked": user.IsBlocked,
	})
}

func paramUserID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("user_id"), 10, 32)
	return uint(id), err
}

func queryString(c *fiber.Ctx, key string) *string {
	if val := c.Query(key); val != "" {
		return &val
	}
	return nil
}

func queryUint(c *fiber.Ctx, key string) *uint {
	if val := c.Query(key); val != "" {
		if id, err := strconv.ParseUint(val, 10, 32); err == nil {
			u := uint(id)
			return &u
		}
	}
	return nil
}

func queryBool(c *fiber.Ctx, key string) *bool {
	if val := c.Query(key); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			return &b
		}
	}
	return nil
}
