package user

import (
	"context"

	"github.com/google/uuid"

	models "lockchat/internal/user/model"
)

type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)

	// ListUsers returns every user; used to resolve unlock rosters
	// for admin views.
	ListUsers(ctx context.Context) ([]*models.User, error)
}
