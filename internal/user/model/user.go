package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleAdmin = "admin"
	RoleUser  = "user"

	StatusActive   = "active"
	StatusDisabled = "disabled"
)

type User struct {
	ID uuid.UUID `bun:",pk,type:uuid,default:gen_random_uuid()"`

	Email string `bun:",unique,notnull"`

	// Username = display handle shown next to messages
	Username string `bun:",notnull"`

	PasswordHash string `bun:",notnull"`

	Role   string `bun:",notnull,default:'user'"`
	Status string `bun:",notnull,default:'active'"`

	// Balance in the smallest currency unit. Mutated only through
	// wallet operations; never negative.
	Balance int64 `bun:",notnull,default:0"`

	CreatedAt time.Time `bun:",nullzero,notnull,default:current_timestamp"`
	UpdatedAt time.Time `bun:",nullzero,notnull,default:current_timestamp"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

func (u *User) IsActive() bool {
	return u.Status == StatusActive
}
