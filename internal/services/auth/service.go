// Package auth implements account lifecycle and session issuance: signup
// with reactivation, login, logout via token revocation, refresh, password
// change, deactivation and soft deletion.
package auth

import (
	"context"
	stderrors "errors"

	"github.com/sirupsen/logrus"

	"aurum/internal/errors"
	"aurum/internal/models"
	"aurum/internal/repositories"
	"aurum/internal/repositories/cache"
	"aurum/internal/token"
	"aurum/internal/validation"
)

// TokenPair is what a successful login yields.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type Service interface {
	Signup(ctx context.Context, email, password string, firstName, lastName *string) (*models.User, error)
	Login(ctx context.Context, email, password string) (*TokenPair, error)
	Logout(ctx context.Context, tokenStr string, claims *models.TokenClaims) (string, error)
	Refresh(ctx context.Context, user *models.User) (string, error)
	ChangePassword(ctx context.Context, user *models.User, oldPassword, newPassword, confirm string) error
	Deactivate(ctx context.Context, user *models.User) error
	SoftDelete(ctx context.Context, user *models.User) error
}

type service struct {
	users repositories.UserRepository
	store cache.SessionStore
	codec *token.Codec
}

func NewService(users repositories.UserRepository, store cache.SessionStore, codec *token.Codec) Service {
	return &service{
		users: users,
		store: store,
		codec: codec,
	}
}

// Signup creates an account, or reactivates an inactive one with the same
// email. Reactivation keeps the stored password hash; the submitted
// password still has to pass the policy but is otherwise ignored.
func (s *service) Signup(ctx context.Context, email, password string, firstName, lastName *string) (*models.User, error) {
	if err := validation.ValidatePassword(password); err != nil {
		return nil, err
	}

	existing, err := s.users.GetByEmail(ctx, email)
	if err != nil && !stderrors.Is(err, repositories.ErrNotFound) {
		return nil, err
	}

	if existing != nil {
		if existing.IsActive {
			return nil, errors.ErrDuplicateEmail
		}

		existing.IsActive = true
		if err := s.users.Save(ctx, existing); err != nil {
			return nil, err
		}
		logrus.Infof("reactivated user %d", existing.ID)
		return existing, nil
	}

	hashed, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:     &email,
		Password:  hashed,
		FirstName: firstName,
		LastName:  lastName,
		Role:      models.RoleUser,
		IsActive:  true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login verifies credentials and account state, then issues an access and
// a refresh token, registering both in the session store for their full
// lifetime.
func (s *service) Login(ctx context.Context, email, password string) (*TokenPair, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if stderrors.Is(err, repositories.ErrNotFound) {
			return nil, errors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !VerifyPassword(password, user.Password) {
		logrus.Infof("login failed for user %d: bad password", user.ID)
		return nil, errors.ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, errors.ErrNotActive
	}
	if user.IsBlocked {
		return nil, errors.ErrBlocked
	}

	accessToken, accessClaims, err := s.codec.IssueAccess(user)
	if err != nil {
		return nil, err
	}
	refreshToken, refreshClaims, err := s.codec.IssueRefresh(user)
	if err != nil {
		return nil, err
	}

	if err := s.store.Put(ctx, accessToken, accessClaims); err != nil {
		return nil, err
	}
	if err := s.store.Put(ctx, refreshToken, refreshClaims); err != nil {
		return nil, err
	}

	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

// Logout revokes the presented token: its cache record is flipped to
// token_revoked in place, keeping the remaining TTL, and the revoked form
// of the token is returned to the caller.
func (s *service) Logout(ctx context.Context, tokenStr string, claims *models.TokenClaims) (string, error) {
	revoked, err := s.codec.Revoke(claims)
	if err != nil {
		return "", err
	}

	if err := s.store.Update(ctx, tokenStr, claims); err != nil {
		return "", err
	}
	return revoked, nil
}

// Refresh issues a fresh access token for a user already resolved from a
// refresh token.
func (s *service) Refresh(ctx context.Context, user *models.User) (string, error) {
	accessToken, claims, err := s.codec.IssueAccess(user)
	if err != nil {
		return "", err
	}
	if err := s.store.Put(ctx, accessToken, claims); err != nil {
		return "", err
	}
	return accessToken, nil
}

func (s *service) ChangePassword(ctx context.Context, user *models.User, oldPassword, newPassword, confirm string) error {
	if !VerifyPassword(oldPassword, user.Password) {
		return errors.ErrInvalidCredentials
	}

	if newPassword != confirm {
		return errors.ErrPasswordMismatch
	}

	if err := validation.ValidatePassword(newPassword); err != nil {
		return err
	}

	hashed, err := HashPassword(newPassword)
	if err != nil {
		return err
	}

	user.Password = hashed
	return s.users.Save(ctx, user)
}

func (s *service) Deactivate(ctx context.Context, user *models.User) error {
	user.IsActive = false
	return s.users.Save(ctx, user)
}

// SoftDelete deactivates the account and scrubs its PII. The email column
// goes NULL, so a later signup with the same address starts fresh.
func (s *service) SoftDelete(ctx context.Context, user *models.User) error {
	user.IsActive = false
	user.IsDeleted = true
	user.Email = nil
	user.FirstName = nil
	user.LastName = nil
	return s.users.Save(ctx, user)
}
