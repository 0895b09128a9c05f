// Package balance implements the per-user integer ledger.
package balance

import (
	"context"

	"aurum/internal/errors"
	"aurum/internal/models"
	"aurum/internal/repositories"
)

type Service interface {
	Get(ctx context.Context, user *models.User) int64
	Deposit(ctx context.Context, user *models.User, amount int64) (int64, error)
	Withdraw(ctx context.Context, user *models.User, amount int64) (int64, error)
}

type service struct {
	users repositories.UserRepository
}

func NewService(users repositories.UserRepository) Service {
	return &service{users: users}
}

func (s *service) Get(_ context.Context, user *models.User) int64 {
	return user.Balance
}

// Deposit adds amount to the user's balance. Non-positive amounts are
// rejected.
func (s *service) Deposit(ctx context.Context, user *models.User, amount int64) (int64, error) {
	if amount <= 0 {
		return 0, errors.ErrInvalidAmount
	}

	balance, err := s.users.Deposit(ctx, user.ID, amount)
	if err != nil {
		return 0, err
	}
	user.Balance = balance
	return balance, nil
}

// Withdraw subtracts amount from the user's balance. The update is a
// single conditional statement at the database, so a concurrent withdraw
// cannot take the balance negative.
func (s *service) Withdraw(ctx context.Context, user *models.User, amount int64) (int64, error) {
	if amount <= 0 {
		return 0, errors.ErrInvalidAmount
	}

	balance, ok, err := s.users.Withdraw(ctx, user.ID, amount)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, errors.ErrInsufficientBalance
	}
	user.Balance = balance
	return balance, nil
}
