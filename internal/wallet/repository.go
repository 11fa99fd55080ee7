package wallet

import (
	"context"

	"github.com/google/uuid"

	"lockchat/internal/wallet/model"
)

type WalletRepository interface {
	// Credit atomically increases the balance and appends a credit
	// ledger entry, returning the new balance.
	Credit(ctx context.Context, userID uuid.UUID, amount int64, description string) (int64, error)

	// Debit atomically decreases the balance and appends a debit
	// ledger entry. Fails with ErrInsufficientFunds, leaving the
	// balance unchanged, when balance < amount.
	Debit(ctx context.Context, userID uuid.UUID, amount int64, description string) (int64, error)

	GetBalance(ctx context.Context, userID uuid.UUID) (int64, error)
	ListTransactions(ctx context.Context, userID uuid.UUID, limit int) ([]*model.Transaction, error)
}
