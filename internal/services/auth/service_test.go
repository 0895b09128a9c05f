package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"aurum/internal/errors"
	"aurum/internal/models"
	"aurum/internal/repositories"
	"aurum/internal/token"
)

type MockUserRepository struct {
	mock.Mock
}

type MockSessionStore struct {
	mock.Mock
}

const (
	testPassword = "Sup3r.Secret"
	testEmail    = "user@example.com"
)

func newTestService(t *testing.T) (Service, *MockUserRepository, *MockSessionStore) {
	t.Helper()

	codec, err := token.NewCodec("unit-test-secret", "HS256", 15*time.Minute, 30*24*time.Hour)
	require.NoError(t, err)

	users := new(MockUserRepository)
	store := new(MockSessionStore)
	return NewService(users, store, codec), users, store
}

func activeUser(t *testing.T) *models.User {
	t.Helper()

	hashed, err := HashPassword(testPassword)
	require.NoError(t, err)

	email := testEmail
	return &models.User{
		ID:       1,
		Email:    &email,
		Password: hashed,
		Role:     models.RoleUser,
		IsActive: true,
	}
}

func TestSignup(t *testing.T) {
	t.Run("creates a new user", func(t *testing.T) {
		svc, users, _ := newTestService(t)
		users.On("GetByEmail", mock.Anything, testEmail).Return(nil, repositories.ErrNotFound)
		users.On("Create", mock.Anything, mock.AnythingOfType("*models.User")).Return(nil)

		user, err := svc.Signup(context.Background(), testEmail, testPassword, nil, nil)
		require.NoError(t, err)
		assert.Equal(t, testEmail, user.EmailString())
		assert.Equal(t, models.RoleUser, user.Role)
		assert.True(t, user.IsActive)
		assert.NotEqual(t, testPassword, user.Password)
		assert.True(t, VerifyPassword(testPassword, user.Password))

		users.AssertExpectations(t)
	})

	t.Run("rejects a policy-violating password before touching storage", func(t *testing.T) {
		svc, users, _ := newTestService(t)

		_, err := svc.Signup(context.Background(), testEmail, "weak", nil, nil)
		var domainErr *errors.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, 422, domainErr.Status)

		users.AssertNotCalled(t, "GetByEmail")
	})

	t.Run("rejects a duplicate active email", func(t *testing.T) {
		svc, users, _ := newTestService(t)
		users.On("GetByEmail", mock.Anything, testEmail).Return(activeUser(t), nil)

		_, err := svc.Signup(context.Background(), testEmail, testPassword, nil, nil)
		assert.ErrorIs(t, err, errors.ErrDuplicateEmail)

		users.AssertNotCalled(t, "Create")
	})

	t.Run("reactivates an inactive account keeping its password", func(t *testing.T) {
		svc, users, _ := newTestService(t)
		existing := activeUser(t)
		existing.IsActive = false
		storedHash := existing.Password

		users.On("GetByEmail", mock.Anything, testEmail).Return(existing, nil)
		users.On("Save", mock.Anything, existing).Return(nil)

		user, err := svc.Signup(context.Background(), testEmail, "Other.Passw0rd", nil, nil)
		require.NoError(t, err)
		assert.True(t, user.IsActive)
		assert.Equal(t, storedHash, user.Password)

		users.AssertNotCalled(t, "Create")
		users.AssertExpectations(t)
	})
}

func TestLogin(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(*testing.T, *MockUserRepository, *MockSessionStore)
		wantErr *errors.DomainError
	}{
		{
			name: "unknown email",
			setup: func(t *testing.T, users *MockUserRepository, store *MockSessionStore) {
				users.On("GetByEmail", mock.Anything, testEmail).Return(nil, repositories.ErrNotFound)
			},
			wantErr: errors.ErrInvalidCredentials,
		},
		{
			name: "wrong password",
			setup: func(t *testing.T, users *MockUserRepository, store *MockSessionStore) {
				user := activeUser(t)
				user.Password = "$2a$10$invalidinvalidinvalidinvalidinvalidinvalidinvalid"
				users.On("GetByEmail", mock.Anything, testEmail).Return(user, nil)
			},
			wantErr: errors.ErrInvalidCredentials,
		},
		{
			name: "inactive account",
			setup: func(t *testing.T, users *MockUserRepository, store *MockSessionStore) {
				user := activeUser(t)
				user.IsActive = false
				users.On("GetByEmail", mock.Anything, testEmail).Return(user, nil)
			},
			wantErr: errors.ErrNotActive,
		},
		{
			name: "blocked account",
			setup: func(t *testing.T, users *MockUserRepository, store *MockSessionStore) {
				user := activeUser(t)
				user.IsBlocked = true
				users.On("GetByEmail", mock.Anything, testEmail).Return(user, nil)
			},
			wantErr: errors.ErrBlocked,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, users, store := newTestService(t)
			tt.setup(t, users, store)

			pair, err := svc.Login(context.Background(), testEmail, testPassword)
			assert.Nil(t, pair)
			assert.ErrorIs(t, err, tt.wantErr)

			store.AssertNotCalled(t, "Put")
			users.AssertExpectations(t)
		})
	}

	t.Run("issues and registers both tokens", func(t *testing.T) {
		svc, users, store := newTestService(t)
		users.On("GetByEmail", mock.Anything, testEmail).Return(activeUser(t), nil)
		store.On("Put", mock.Anything, mock.AnythingOfType("string"), mock.AnythingOfType("*models.TokenClaims")).Return(nil).Twice()

		pair, err := svc.Login(context.Background(), testEmail, testPassword)
		require.NoError(t, err)
		assert.NotEmpty(t, pair.AccessToken)
		assert.NotEmpty(t, pair.RefreshToken)
		assert.NotEqual(t, pair.AccessToken, pair.RefreshToken)

		store.AssertExpectations(t)
	})
}

func TestLogout(t *testing.T) {
	svc, _, store := newTestService(t)
	codec, err := token.NewCodec("unit-test-secret", "HS256", 15*time.Minute, 30*24*time.Hour)
	require.NoError(t, err)

	original, claims, err := codec.IssueAccess(activeUser(t))
	require.NoError(t, err)

	// The cache record under the original token flips to revoked while
	// keeping its TTL.
	store.On("Update", mock.Anything, original, claims).Return(nil)

	revoked, err := svc.Logout(context.Background(), original, claims)
	require.NoError(t, err)
	assert.NotEqual(t, original, revoked)
	assert.True(t, claims.TokenRevoked)

	store.AssertExpectations(t)
}

func TestRefresh(t *testing.T) {
	svc, _, store := newTestService(t)
	store.On("Put", mock.Anything, mock.AnythingOfType("string"), mock.AnythingOfType("*models.TokenClaims")).Return(nil)

	accessToken, err := svc.Refresh(context.Background(), activeUser(t))
	require.NoError(t, err)
	assert.NotEmpty(t, accessToken)

	store.AssertExpectations(t)
}

func TestChangePassword(t *testing.T) {
	t.Run("rejects a wrong current password", func(t *testing.T) {
		svc, users, _ := newTestService(t)

		err := svc.ChangePassword(context.Background(), activeUser(t), "Wrong.Passw0rd", "New.Passw0rd", "New.Passw0rd")
		assert.ErrorIs(t, err, errors.ErrInvalidCredentials)

		users.AssertNotCalled(t, "Save")
	})

	t.Run("rejects a mismatched confirmation", func(t *testing.T) {
		svc, users, _ := newTestService(t)

		err := svc.ChangePassword(context.Background(), activeUser(t), testPassword, "New.Passw0rd", "Other.Passw0rd")
		assert.ErrorIs(t, err, errors.ErrPasswordMismatch)

		users.AssertNotCalled(t, "Save")
	})

	t.Run("rejects a weak new password", func(t *testing.T) {
		svc, users, _ := newTestService(t)

		err := svc.ChangePassword(context.Background(), activeUser(t), testPassword, "weak", "weak")
		var domainErr *errors.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, 422, domainErr.Status)

		users.AssertNotCalled(t, "Save")
	})

	t.Run("stores the new hash", func(t *testing.T) {
		svc, users, _ := newTestService(t)
		user := activeUser(t)
		users.On("Save", mock.Anything, user).Return(nil)

		err := svc.ChangePassword(context.Background(), user, testPassword, "New.Passw0rd", "New.Passw0rd")
		require.NoError(t, err)
		assert.True(t, VerifyPassword("New.Passw0rd", user.Password))

		users.AssertExpectations(t)
	})
}

func TestDeactivate(t *testing.T) {
	svc, users, _ := newTestService(t)
	user := activeUser(t)
	users.On("Save", mock.Anything, user).Return(nil)

	require.NoError(t, svc.Deactivate(context.Background(), user))
	assert.False(t, user.IsActive)
	assert.False(t, user.IsDeleted)

	users.AssertExpectations(t)
}

func TestSoftDelete(t *testing.T) {
	svc, users, _ := newTestService(t)
	first := "Ada"
	user := activeUser(t)
	user.FirstName = &first
	users.On("Save", mock.Anything, user).Return(nil)

	require.NoError(t, svc.SoftDelete(context.Background(), user))
	assert.False(t, user.IsActive)
	assert.True(t, user.IsDeleted)
	assert.Nil(t, user.Email)
	assert.Nil(t, user.FirstName)
	assert.Nil(t, user.LastName)

	users.AssertExpectations(t)
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Save(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Deposit(ctx context.Context, userID uint, amount int64) (int64, error) {
	args := m.Called(ctx, userID, amount)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepository) Withdraw(ctx context.Context, userID uint, amount int64) (int64, bool, error) {
	args := m.Called(ctx, userID, amount)
	return args.Get(0).(int64), args.Bool(1), args.Error(2)
}

func (m *MockUserRepository) List(ctx context.Context, filter repositories.UserFilter) ([]models.User, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockSessionStore) Put(ctx context.Context, token string, claims *models.TokenClaims) error {
	args := m.Called(ctx, token, claims)
	return args.Error(0)
}

func (m *MockSessionStore) Get(ctx context.Context, token string) (*models.TokenClaims, bool, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*models.TokenClaims), args.Bool(1), args.Error(2)
}

func (m *MockSessionStore) Update(ctx context.Context, token string, claims *models.TokenClaims) error {
	args := m.Called(ctx, token, claims)
	return args.Error(0)
}

func (m *MockSessionStore) Close() error {
	args := m.Called()
	return args.Error(0)
}
