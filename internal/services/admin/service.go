// Package admin implements the role-gated user management operations.
package admin

import (
	"context"
	stderrors "errors"

	"github.com/sirupsen/logrus"

	"aurum/internal/errors"
	"aurum/internal/models"
	"aurum/internal/repositories"
)

type Service interface {
	ListUsers(ctx context.Context, filter repositories.UserFilter) ([]models.User, error)
	Block(ctx context.Context, actor *models.User, userID uint) (*models.User, error)
	Unblock(ctx context.Context, userID uint) (*models.User, error)
}

type service struct {
	users repositories.UserRepository
}

func NewService(users repositories.UserRepository) Service {
	return &service{users: users}
}

func (s *service) ListUsers(ctx context.Context, filter repositories.UserFilter) ([]models.User, error) {
	return s.users.List(ctx, filter)
}

// Block sets the administrative lock on a user. Admins cannot block
// themselves, and blocking twice is an error.
func (s *service) Block(ctx context.Context, actor *models.User, userID uint) (*models.User, error) {
	if actor.ID == userID {
		return nil, errors.ErrSelfBlock
	}

	user, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if user.IsBlocked {
		return nil, errors.ErrAlreadyBlocked
	}

	user.IsBlocked = true
	if err := s.users.Save(ctx, user); err != nil {
		return nil, err
	}
	logrus.Infof("admin %d blocked user %d", actor.ID, user.ID)
	return user, nil
}

func (s *service) Unblock(ctx context.Context, userID uint) (*models.User, error) {
	user, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if !user.IsBlocked {
		return nil, errors.ErrNotBlocked
	}

	user.IsBlocked = false
	if err := s.users.Save(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *service) getUser(ctx context.Context, userID uint) (*models.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if stderrors.Is(err, repositories.ErrNotFound) {
			return nil, errors.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}
