package wallet

import (
	"context"

	"github.com/google/uuid"
)

type WalletUsecase interface {
	// AddFunds credits the caller's balance. Amount must be positive.
	AddFunds(ctx context.Context, userID uuid.UUID, amount int64) (int64, error)

	// GetBalance returns the current balance with recent ledger history.
	GetBalance(ctx context.Context, userID uuid.UUID) (*BalanceDTO, error)
}
