// Package handlers contains the fiber HTTP handlers. Handlers parse and
// validate request bodies, call services, and map errors to responses;
// they hold no business logic of their own.
package handlers

import (
	"time"

	"aurum/internal/models"
)

// UserSummary is the user representation returned by the API. The
// password hash never leaves the service.
type UserSummary struct {
	ID        uint      `json:"id"`
	Email     *string   `json:"email"`
	FirstName *string   `json:"first_name"`
	LastName  *string   `json:"last_name"`
	Role      string    `json:"role"`
	Balance   int64     `json:"balance"`
	IsActive  bool      `json:"is_active"`
	IsBlocked bool      `json:"is_blocked"`
	IsDeleted bool      `json:"is_deleted"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewUserSummary(u *models.User) UserSummary {
	return UserSummary{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Role:      u.Role,
		Balance:   u.Balance,
		IsActive:  u.IsActive,
		IsBlocked: u.IsBlocked,
		IsDeleted: u.IsDeleted,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
