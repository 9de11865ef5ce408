package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	errorvalues "github.com/limbo/habitflow/internal/error_values"
	"github.com/limbo/habitflow/internal/repository"
	"github.com/limbo/habitflow/internal/service"
	"github.com/limbo/habitflow/pkg/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestMain(m *testing.M) {
	service.InitValidator()
	m.Run()
}

type mockState int

const (
	stateSuccess mockState = iota
	stateDBError
	stateUserExists
	stateUserNotFound
)

type usersRepoMock struct {
	state    mockState
	password string
}

var (
	uid      = uuid.New()
	username = "test_user"
	email    = "test@example.com"
)

func (urmock *usersRepoMock) user() *entity.User {
	hash, _ := bcrypt.GenerateFromPassword([]byte(urmock.password), bcrypt.MinCost)
	return &entity.User{
		ID:           uid,
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
	}
}

func (urmock *usersRepoMock) Create(ctx context.Context, user *entity.User) (*entity.User, error) {
	switch urmock.state {
	case stateUserExists:
		return nil, errorvalues.ErrUserExists
	case stateDBError:
		return nil, errors.New("db error")
	default:
		stored := *user
		stored.ID = uid
		return &stored, nil
	}
}

func (urmock *usersRepoMock) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	switch urmock.state {
	case stateUserNotFound:
		return nil, errorvalues.ErrUserNotFound
	case stateDBError:
		return nil, errors.New("db error")
	default:
		return urmock.user(), nil
	}
}

func (urmock *usersRepoMock) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	switch urmock.state {
	case stateUserNotFound:
		return nil, errorvalues.ErrUserNotFound
	case stateDBError:
		return nil, errors.New("db error")
	default:
		return urmock.user(), nil
	}
}

var _ repository.UsersRepositoryI = (*usersRepoMock)(nil)

func TestRegister(t *testing.T) {
	ctx := context.Background()
	valid := service.RegisterRequest{
		Username: username,
		Email:    email,
		Password: "password123",
	}
	t.Run("success", func(t *testing.T) {
		serv := service.NewUserService(&usersRepoMock{})
		user, err := serv.Register(ctx, &valid)
		require.NoError(t, err)
		assert.Equal(t, uid, user.ID)
		assert.Equal(t, username, user.Username)
		// Password is hashed at rest, never stored verbatim
		assert.NotEqual(t, valid.Password, user.PasswordHash)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(valid.Password)))
	})
	t.Run("duplicate email", func(t *testing.T) {
		serv := service.NewUserService(&usersRepoMock{state: stateUserExists})
		_, err := serv.Register(ctx, &valid)
		assert.ErrorIs(t, err, errorvalues.ErrUserExists)
	})
	t.Run("invalid fields", func(t *testing.T) {
		serv := service.NewUserService(&usersRepoMock{})
		cases := []service.RegisterRequest{
			{Username: "", Email: email, Password: "password123"},
			{Username: "1bad", Email: email, Password: "password123"},
			{Username: username, Email: "not-an-email", Password: "password123"},
			{Username: username, Email: email, Password: "short"},
		}
		for _, req := range cases {
			_, err := serv.Register(ctx, &req)
			assert.ErrorIs(t, err, errorvalues.ErrValidation)
		}
	})
}

func TestRegisterNormalizesEmailCase(t *testing.T) {
	ctx := context.Background()
	serv := service.NewUserService(repository.NewMemoryUsersRepo())
	user, err := serv.Register(ctx, &service.RegisterRequest{
		Username: username,
		Email:    "Mixed.Case@Example.COM",
		Password: "password123",
	})
	require.NoError(t, err)
	assert.Equal(t, "mixed.case@example.com", user.Email)

	// Uniqueness and login lookups ignore casing
	_, err = serv.Register(ctx, &service.RegisterRequest{
		Username: "other_user",
		Email:    "mixed.case@example.com",
		Password: "password123",
	})
	assert.ErrorIs(t, err, errorvalues.ErrUserExists)
	logged, err := serv.Login(ctx, "MIXED.CASE@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, user.ID, logged.ID)
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	t.Run("success", func(t *testing.T) {
		serv := service.NewUserService(&usersRepoMock{password: "password123"})
		user, err := serv.Login(ctx, email, "password123")
		require.NoError(t, err)
		assert.Equal(t, uid, user.ID)
	})
	t.Run("wrong password", func(t *testing.T) {
		serv := service.NewUserService(&usersRepoMock{password: "password123"})
		_, err := serv.Login(ctx, email, "who knows")
		assert.ErrorIs(t, err, errorvalues.ErrWrongCredentials)
	})
	t.Run("unknown email answers like wrong password", func(t *testing.T) {
		serv := service.NewUserService(&usersRepoMock{state: stateUserNotFound})
		_, err := serv.Login(ctx, "ghost@example.com", "password123")
		assert.ErrorIs(t, err, errorvalues.ErrWrongCredentials)
	})
}

func TestGetByID(t *testing.T) {
	ctx := context.Background()
	t.Run("found", func(t *testing.T) {
		serv := service.NewUserService(&usersRepoMock{})
		user, err := serv.GetByID(ctx, uid)
		require.NoError(t, err)
		assert.Equal(t, username, user.Username)
	})
	t.Run("missing", func(t *testing.T) {
		serv := service.NewUserService(&usersRepoMock{state: stateUserNotFound})
		_, err := serv.GetByID(ctx, uid)
		assert.ErrorIs(t, err, errorvalues.ErrUserNotFound)
	})
}
