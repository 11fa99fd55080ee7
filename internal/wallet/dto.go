package wallet

import (
	"time"

	"github.com/google/uuid"

	"lockchat/internal/wallet/model"
)

type TransactionDTO struct {
	ID          uuid.UUID `json:"id"`
	Amount      int64     `json:"amount"`
	Type        string    `json:"type"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
}

type BalanceDTO struct {
	Balance      int64             `json:"balance"`
	Transactions []*TransactionDTO `json:"transactions"`
}

func ToTransactionDTO(t *model.Transaction) *TransactionDTO {
	return &TransactionDTO{
		ID:          t.ID,
		Amount:      t.Amount,
		Type:        t.Type,
		Description: t.Description,
		CreatedAt:   t.CreatedAt,
	}
}
