package user

import (
	"context"

	"github.com/google/uuid"
)

type UserUsecase interface {
	// Register creates an account with a hashed password and issues a token.
	Register(ctx context.Context, cmd RegisterCommand) (*AuthResult, error)

	// Login accepts email or username plus password.
	Login(ctx context.Context, cmd LoginCommand) (*AuthResult, error)

	GetProfile(ctx context.Context, userID uuid.UUID) (*UserDTO, error)
}
