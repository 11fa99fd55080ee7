package model

import (
	"time"

	"github.com/google/uuid"

	user "lockchat/internal/user/model"
)

type Channel struct {
	ID uuid.UUID `bun:",pk,type:uuid,default:gen_random_uuid()"`

	Name        string `bun:",unique,notnull"`
	Description string `bun:",null"`

	CreatedBy uuid.UUID  `bun:",nullzero,type:uuid"`
	Creator   *user.User `bun:"rel:belongs-to,join:created_by=id"`

	CreatedAt time.Time `bun:",nullzero,notnull,default:current_timestamp"`
	UpdatedAt time.Time `bun:",nullzero,notnull,default:current_timestamp"`
}
