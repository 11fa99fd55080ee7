package model

import (
	"time"

	"github.com/google/uuid"

	user "lockchat/internal/user/model"
)

const (
	TypeCredit = "credit"
	TypeDebit  = "debit"
)

// Transaction is an append-only ledger entry. Rows are never updated
// or deleted; a user's balance must always equal
// sum(credits) - sum(debits) over their entries.
type Transaction struct {
	ID uuid.UUID `bun:",pk,type:uuid,default:gen_random_uuid()"`

	UserID uuid.UUID  `bun:",notnull,type:uuid"`
	User   *user.User `bun:"rel:belongs-to,join:user_id=id"`

	// Amount is a positive magnitude; Type differentiates direction.
	Amount int64  `bun:",notnull"`
	Type   string `bun:",notnull"`

	Description string `bun:",null"`

	CreatedAt time.Time `bun:",nullzero,notnull,default:current_timestamp"`
}
