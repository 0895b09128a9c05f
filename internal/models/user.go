package models

import "time"

// Role values stored on a user row.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User is the persisted account entity. Email and the name fields are
// pointers because a soft-deleted row has them scrubbed to NULL.
type User struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	Email     *string `gorm:"uniqueIndex" json:"email"`
	Password  string  `gorm:"not null" json:"-"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`

	Role    string `gorm:"default:'user';not null" json:"role"`
	Balance int64  `gorm:"default:0;not null" json:"balance"`

	IsActive  bool `gorm:"default:true;not null" json:"is_active"`
	IsBlocked bool `gorm:"default:false;not null" json:"is_blocked"`
	IsDeleted bool `gorm:"default:false;not null" json:"is_deleted"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// EmailString returns the user's email or "" for a scrubbed row.
func (u *User) EmailString() string {
	if u.Email == nil {
		return ""
	}
	return *u.Email
}
