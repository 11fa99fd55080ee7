package user

import (
	"github.com/google/uuid"

	models "lockchat/internal/user/model"
)

// NOTE: commands travel from handler to usecase
// Note: DTO travels from usecase to handler
// Input commands
type RegisterCommand struct {
	Email    string
	Username string
	Password string
	Role     string // anything but "admin" collapses to "user"
}

type LoginCommand struct {
	Email    string
	Username string
	Password string
}

// Output DTOs
type UserDTO struct {
	ID       uuid.UUID `json:"id"`
	Email    string    `json:"email"`
	Username string    `json:"username"`
	Role     string    `json:"role"`
	Balance  int64     `json:"balance"`
	Status   string    `json:"status"`
}

type AuthResult struct {
	User  *UserDTO
	Token string
}

// Viewer is the authenticated caller identity attached to each request
// by the auth middleware. The core trusts it as already-authenticated.
type Viewer struct {
	ID       uuid.UUID
	Username string
	Role     string
}

func (v Viewer) IsAdmin() bool {
	return v.Role == models.RoleAdmin
}

func ToUserDTO(u *models.User) *UserDTO {
	return &UserDTO{
		ID:       u.ID,
		Email:    u.Email,
		Username: u.Username,
		Role:     u.Role,
		Balance:  u.Balance,
		Status:   u.Status,
	}
}
