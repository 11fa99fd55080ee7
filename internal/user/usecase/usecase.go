package usecase

import (
	"context"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"lockchat/config"
	"lockchat/internal/user"
	models "lockchat/internal/user/model"
	"lockchat/pkg/errors"
	"lockchat/pkg/logger"
	"lockchat/pkg/utils"
)

type UserUsecase struct {
	repo   user.UserRepository
	logger logger.Logger
	config *config.Config
}

func NewUserUsecase(repo user.UserRepository, logger logger.Logger, config *config.Config) *UserUsecase {
	return &UserUsecase{repo: repo, logger: logger, config: config}
}

var emailRegex = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

func (uc *UserUsecase) Register(ctx context.Context, cmd user.RegisterCommand) (*user.AuthResult, error) {
	email := strings.ToLower(strings.TrimSpace(cmd.Email))
	if !emailRegex.MatchString(email) {
		return nil, errors.InvalidArg("a valid email is required")
	}
	if strings.TrimSpace(cmd.Username) == "" {
		return nil, errors.InvalidArg("username is required")
	}
	if cmd.Password == "" {
		return nil, errors.InvalidArg("password is required")
	}

	if exists, err := uc.repo.EmailExists(ctx, email); err != nil {
		uc.logger.Error("database error checking email", "err", err)
		return nil, errors.Internal("internal server error")
	} else if exists {
		return nil, errors.ErrEmailTaken
	}

	hash, err := utils.HashPassword(cmd.Password)
	if err != nil {
		uc.logger.Error("failed to hash password", "err", err)
		return nil, errors.Internal("internal server error")
	}

	role := models.RoleUser
	if cmd.Role == models.RoleAdmin {
		role = models.RoleAdmin
	}

	u := &models.User{
		Email:        email,
		Username:     strings.TrimSpace(cmd.Username),
		PasswordHash: hash,
		Role:         role,
		Status:       models.StatusActive,
	}
	if err := uc.repo.CreateUser(ctx, u); err != nil {
		uc.logger.Errorf("error while saving user in db: %v", err)
		return nil, errors.Internal("registration failed")
	}

	token, err := utils.GenerateJWTToken(u, uc.config)
	if err != nil {
		uc.logger.Error("failed to issue token", "err", err)
		return nil, errors.Internal("registration failed")
	}

	return &user.AuthResult{User: user.ToUserDTO(u), Token: token}, nil
}

func (uc *UserUsecase) Login(ctx context.Context, cmd user.LoginCommand) (*user.AuthResult, error) {
	if (cmd.Email == "" && cmd.Username == "") || cmd.Password == "" {
		return nil, errors.InvalidArg("missing credentials")
	}

	var (
		u   *models.User
		err error
	)
	if cmd.Email != "" {
		u, err = uc.repo.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(cmd.Email)))
	} else {
		u, err = uc.repo.GetUserByUsername(ctx, cmd.Username)
	}
	if err != nil || u == nil {
		return nil, errors.ErrInvalidCredentials
	}

	if u.Status == models.StatusDisabled {
		return nil, errors.ErrAccountDisabled
	}

	if !utils.VerifyPassword(cmd.Password, u.PasswordHash) {
		uc.logger.Warn("login failed, password mismatch", "user_id", u.ID)
		return nil, errors.ErrInvalidCredentials
	}

	token, err := utils.GenerateJWTToken(u, uc.config)
	if err != nil {
		uc.logger.Error("failed to issue token", "err", err)
		return nil, errors.Internal("login failed")
	}

	return &user.AuthResult{User: user.ToUserDTO(u), Token: token}, nil
}

func (uc *UserUsecase) GetProfile(ctx context.Context, userID uuid.UUID) (*user.UserDTO, error) {
	u, err := uc.repo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, errors.ErrUserNotFound
	}
	return user.ToUserDTO(u), nil
}
