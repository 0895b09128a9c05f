// Package repositories provides the data access layer. Every method runs
// against the request-scoped transaction when one is bound to the context,
// falling back to the base pool otherwise.
package repositories

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"aurum/internal/dbsession"
	"aurum/internal/models"
)

// ErrNotFound is returned when a lookup matches no user. Callers decide
// what failure that maps to; a missing user is 401 on login but 403 when
// resolving token credentials.
var ErrNotFound = stderrors.New("user not found")

// UserFilter narrows and orders an admin listing. Nil fields are not
// applied; multiple set fields combine with AND.
type UserFilter struct {
	UserID    *uint
	Email     *string
	FirstName *string
	LastName  *string
	IsActive  *bool
	IsBlocked *bool

	OrderBy string
	Desc    bool
	Limit   int
	Offset  int
}

// Fields an admin listing may order by. Anything else is ignored and the
// query falls back to no explicit ordering.
var orderableFields = map[string]bool{
	"id":         true,
	"balance":    true,
	"updated_at": true,
	"created_at": true,
	"is_active":  true,
}

// UserRepository is the persistence contract for user rows.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Save(ctx context.Context, user *models.User) error
	Deposit(ctx context.Context, userID uint, amount int64) (int64, error)
	Withdraw(ctx context.Context, userID uint, amount int64) (int64, bool, error)
	List(ctx context.Context, filter UserFilter) ([]models.User, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new instance of UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) conn(ctx context.Context) *gorm.DB {
	return dbsession.FromContext(ctx, r.db).WithContext(ctx)
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	if err := r.conn(ctx).Create(user).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.conn(ctx).First(&user, id).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.conn(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

func (r *userRepository) Save(ctx context.Context, user *models.User) error {
	if err := r.conn(ctx).Save(user).Error; err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	return nil
}

// Deposit adds amount atomically and returns the new balance.
func (r *userRepository) Deposit(ctx context.Context, userID uint, amount int64) (int64, error) {
	var balance int64
	result := r.conn(ctx).Raw(
		"UPDATE users SET balance = balance + ?, updated_at = NOW() WHERE id = ? RETURNING balance",
		amount, userID,
	).Scan(&balance)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to deposit: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return 0, ErrNotFound
	}
	return balance, nil
}

// Withdraw subtracts amount as a single conditional update so concurrent
// withdrawals serialize at the row and the balance can never go negative.
// The bool result reports whether the update applied; false means the
// balance was insufficient.
func (r *userRepository) Withdraw(ctx context.Context, userID uint, amount int64) (int64, bool, error) {
	var balance int64
	result := r.conn(ctx).Raw(
		"UPDATE users SET balance = balance - ?, updated_at = NOW() WHERE id = ? AND balance >= ? RETURNING balance",
		amount, userID, amount,
	).Scan(&balance)
	if result.Error != nil {
		return 0, false, fmt.Errorf("failed to withdraw: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return 0, false, nil
	}
	return balance, true, nil
}

func (r *userRepository) List(ctx context.Context, filter UserFilter) ([]models.User, error) {
	query := r.conn(ctx).Model(&models.User{})

	if filter.UserID != nil {
		query = query.Where("id = ?", *filter.UserID)
	}
	if filter.Email != nil {
		query = query.Where("email = ?", *filter.Email)
	}
	if filter.FirstName != nil {
		query = query.Where("first_name ILIKE ?", "%"+*filter.FirstName+"%")
	}
	if filter.LastName != nil {
		query = query.Where("last_name ILIKE ?", "%"+*filter.LastName+"%")
	}
	if filter.IsActive != nil {
		query = query.Where("is_active = ?", *filter.IsActive)
	}
	if filter.IsBlocked != nil {
		query = query.Where("is_blocked = ?", *filter.IsBlocked)
	}

	if orderableFields[strings.ToLower(filter.OrderBy)] {
		direction := "ASC"
		if filter.Desc {
			direction = "DESC"
		}
		query = query.Order(strings.ToLower(filter.OrderBy) + " " + direction)
	}

	if filter.Limit > 0 {
		query = query.Limit(filter.Limit).Offset(filter.Offset)
	}

	var users []models.User
	if err := query.Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}
