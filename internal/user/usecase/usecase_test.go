package usecase

import (
	"context"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lockchat/config"
	"lockchat/internal/user"
	"lockchat/internal/user/mocks"
	models "lockchat/internal/user/model"
	"lockchat/pkg/errors"
	"lockchat/pkg/logger"
	"lockchat/pkg/utils"
)

func testConfig() *config.Config {
	return &config.Config{
		JWT: config.JWT{Secret: "test-secret", ExpiredIn: 1},
	}
}

func newTestUsecase(t *testing.T) (*UserUsecase, *mocks.MockUserRepository) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	repo := mocks.NewMockUserRepository(ctrl)
	return NewUserUsecase(repo, logger.Logger{}, testConfig()), repo
}

func TestUserUsecase_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("happy path - creates user and issues token", func(t *testing.T) {
		uc, repo := newTestUsecase(t)

		repo.EXPECT().EmailExists(ctx, "alice@example.com").Return(false, nil)
		repo.EXPECT().CreateUser(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, u *models.User) error {
				u.ID = uuid.New()

				assert.Equal(t, "alice@example.com", u.Email)
				assert.Equal(t, models.RoleUser, u.Role)
				assert.Equal(t, models.StatusActive, u.Status)
				assert.NotEqual(t, "secret", u.PasswordHash)
				assert.True(t, utils.VerifyPassword("secret", u.PasswordHash))
				return nil
			})

		res, err := uc.Register(ctx, user.RegisterCommand{
			Email:    "  Alice@Example.com ",
			Username: "alice",
			Password: "secret",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, res.Token)
		assert.Equal(t, "alice", res.User.Username)
	})

	t.Run("happy path - admin role is preserved", func(t *testing.T) {
		uc, repo := newTestUsecase(t)

		repo.EXPECT().EmailExists(ctx, gomock.Any()).Return(false, nil)
		repo.EXPECT().CreateUser(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, u *models.User) error {
				assert.Equal(t, models.RoleAdmin, u.Role)
				return nil
			})

		_, err := uc.Register(ctx, user.RegisterCommand{
			Email:    "admin@example.com",
			Username: "admin",
			Password: "secret",
			Role:     models.RoleAdmin,
		})
		require.NoError(t, err)
	})

	t.Run("unknown role collapses to user", func(t *testing.T) {
		uc, repo := newTestUsecase(t)

		repo.EXPECT().EmailExists(ctx, gomock.Any()).Return(false, nil)
		repo.EXPECT().CreateUser(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, u *models.User) error {
				assert.Equal(t, models.RoleUser, u.Role)
				return nil
			})

		_, err := uc.Register(ctx, user.RegisterCommand{
			Email:    "bob@example.com",
			Username: "bob",
			Password: "secret",
			Role:     "superuser",
		})
		require.NoError(t, err)
	})

	t.Run("sad path - invalid email", func(t *testing.T) {
		uc, _ := newTestUsecase(t)

		_, err := uc.Register(ctx, user.RegisterCommand{Email: "not-an-email", Username: "x", Password: "p"})
		require.Error(t, err)
		assert.Equal(t, errors.CodeInvalidArgument, errors.CodeOf(err))
	})

	t.Run("sad path - email already taken", func(t *testing.T) {
		uc, repo := newTestUsecase(t)

		repo.EXPECT().EmailExists(ctx, "alice@example.com").Return(true, nil)

		_, err := uc.Register(ctx, user.RegisterCommand{
			Email:    "alice@example.com",
			Username: "alice",
			Password: "secret",
		})
		assert.ErrorIs(t, err, errors.ErrEmailTaken)
	})
}

func TestUserUsecase_Login(t *testing.T) {
	ctx := context.Background()

	hash, err := utils.HashPassword("secret")
	require.NoError(t, err)

	activeUser := func() *models.User {
		return &models.User{
			ID:           uuid.New(),
			Email:        "alice@example.com",
			Username:     "alice",
			PasswordHash: hash,
			Role:         models.RoleUser,
			Status:       models.StatusActive,
		}
	}

	t.Run("happy path - by email", func(t *testing.T) {
		uc, repo := newTestUsecase(t)

		repo.EXPECT().GetUserByEmail(ctx, "alice@example.com").Return(activeUser(), nil)

		res, err := uc.Login(ctx, user.LoginCommand{Email: "alice@example.com", Password: "secret"})
		require.NoError(t, err)
		assert.NotEmpty(t, res.Token)
	})

	t.Run("happy path - by username", func(t *testing.T) {
		uc, repo := newTestUsecase(t)

		repo.EXPECT().GetUserByUsername(ctx, "alice").Return(activeUser(), nil)

		res, err := uc.Login(ctx, user.LoginCommand{Username: "alice", Password: "secret"})
		require.NoError(t, err)
		assert.NotEmpty(t, res.Token)
	})

	t.Run("sad path - wrong password", func(t *testing.T) {
		uc, repo := newTestUsecase(t)

		repo.EXPECT().GetUserByEmail(ctx, "alice@example.com").Return(activeUser(), nil)

		_, err := uc.Login(ctx, user.LoginCommand{Email: "alice@example.com", Password: "wrong"})
		assert.ErrorIs(t, err, errors.ErrInvalidCredentials)
	})

	t.Run("sad path - unknown user looks like bad credentials", func(t *testing.T) {
		uc, repo := newTestUsecase(t)

		repo.EXPECT().GetUserByEmail(ctx, "ghost@example.com").Return(nil, errors.ErrUserNotFound)

		_, err := uc.Login(ctx, user.LoginCommand{Email: "ghost@example.com", Password: "secret"})
		assert.ErrorIs(t, err, errors.ErrInvalidCredentials)
	})

	t.Run("sad path - disabled account", func(t *testing.T) {
		uc, repo := newTestUsecase(t)

		disabled := activeUser()
		disabled.Status = models.StatusDisabled
		repo.EXPECT().GetUserByEmail(ctx, "alice@example.com").Return(disabled, nil)

		_, err := uc.Login(ctx, user.LoginCommand{Email: "alice@example.com", Password: "secret"})
		assert.ErrorIs(t, err, errors.ErrAccountDisabled)
	})

	t.Run("sad path - missing credentials", func(t *testing.T) {
		uc, _ := newTestUsecase(t)

		_, err := uc.Login(ctx, user.LoginCommand{})
		require.Error(t, err)
		assert.Equal(t, errors.CodeInvalidArgument, errors.CodeOf(err))
	})
}

func TestUserUsecase_GetProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("happy path", func(t *testing.T) {
		uc, repo := newTestUsecase(t)
		id := uuid.New()

		repo.EXPECT().GetUserByID(ctx, id).Return(&models.User{ID: id, Username: "alice", Balance: 500}, nil)

		dto, err := uc.GetProfile(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "alice", dto.Username)
		assert.Equal(t, int64(500), dto.Balance)
	})

	t.Run("sad path - not found", func(t *testing.T) {
		uc, repo := newTestUsecase(t)
		id := uuid.New()

		repo.EXPECT().GetUserByID(ctx, id).Return(nil, errors.ErrUserNotFound)

		_, err := uc.GetProfile(ctx, id)
		assert.ErrorIs(t, err, errors.ErrUserNotFound)
	})
}
