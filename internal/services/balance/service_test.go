package balance

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"aurum/internal/errors"
	"aurum/internal/models"
	"aurum/internal/repositories"
)

type MockUserRepository struct {
	mock.Mock
}

func testUser(balance int64) *models.User {
	email := "user@example.com"
	return &models.User{ID: 1, Email: &email, Balance: balance, IsActive: true}
}

func TestGet(t *testing.T) {
	users := new(MockUserRepository)
	svc := NewService(users)

	assert.Equal(t, int64(250), svc.Get(context.Background(), testUser(250)))
}

func TestDeposit(t *testing.T) {
	t.Run("adds the amount and reports the new balance", func(t *testing.T) {
		users := new(MockUserRepository)
		users.On("Deposit", mock.Anything, uint(1), int64(100)).Return(int64(350), nil)
		svc := NewService(users)

		user := testUser(250)
		balance, err := svc.Deposit(context.Background(), user, 100)
		require.NoError(t, err)
		assert.Equal(t, int64(350), balance)
		assert.Equal(t, int64(350), user.Balance)

		users.AssertExpectations(t)
	})

	t.Run("rejects non-positive amounts", func(t *testing.T) {
		users := new(MockUserRepository)
		svc := NewService(users)

		for _, amount := range []int64{0, -1, -100} {
			_, err := svc.Deposit(context.Background(), testUser(250), amount)
			assert.ErrorIs(t, err, errors.ErrInvalidAmount)
		}

		users.AssertNotCalled(t, "Deposit")
	})
}

func TestWithdraw(t *testing.T) {
	t.Run("subtracts the amount and reports the new balance", func(t *testing.T) {
		users := new(MockUserRepository)
		users.On("Withdraw", mock.Anything, uint(1), int64(100)).Return(int64(150), true, nil)
		svc := NewService(users)

		user := testUser(250)
		balance, err := svc.Withdraw(context.Background(), user, 100)
		require.NoError(t, err)
		assert.Equal(t, int64(150), balance)
		assert.Equal(t, int64(150), user.Balance)

		users.AssertExpectations(t)
	})

	t.Run("reports insufficient funds when the update does not apply", func(t *testing.T) {
		users := new(MockUserRepository)
		users.On("Withdraw", mock.Anything, uint(1), int64(500)).Return(int64(0), false, nil)
		svc := NewService(users)

		user := testUser(250)
		_, err := svc.Withdraw(context.Background(), user, 500)
		assert.ErrorIs(t, err, errors.ErrInsufficientBalance)
		assert.Equal(t, int64(250), user.Balance)
	})

	t.Run("rejects non-positive amounts", func(t *testing.T) {
		users := new(MockUserRepository)
		svc := NewService(users)

		for _, amount := range []int64{0, -5} {
			_, err := svc.Withdraw(context.Background(), testUser(250), amount)
			assert.ErrorIs(t, err, errors.ErrInvalidAmount)
		}

		users.AssertNotCalled(t, "Withdraw")
	})
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
