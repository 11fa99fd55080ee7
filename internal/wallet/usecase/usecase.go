package usecase

import (
	"context"

	"github.com/google/uuid"

	"lockchat/internal/wallet"
	walletrepo "lockchat/internal/wallet/repository"
	"lockchat/pkg/errors"
	"lockchat/pkg/logger"
)

// transactionHistoryLimit caps the ledger slice returned with a
// balance; the full ledger is append-only and unbounded.
const transactionHistoryLimit = 50

type WalletUsecase struct {
	repo   wallet.WalletRepository
	logger logger.Logger
}

func NewWalletUsecase(repo wallet.WalletRepository, logger logger.Logger) *WalletUsecase {
	return &WalletUsecase{repo: repo, logger: logger}
}

func (uc *WalletUsecase) AddFunds(ctx context.Context, userID uuid.UUID, amount int64) (int64, error) {
	if amount <= 0 {
		return 0, errors.ErrInvalidAmount
	}

	newBalance, err := uc.repo.Credit(ctx, userID, amount, "Add funds")
	if err != nil {
		if errors.Is(err, walletrepo.ErrUserNotFound) {
			return 0, errors.ErrUserNotFound
		}
		uc.logger.Error("failed to credit balance", "user_id", userID, "err", err)
		return 0, errors.ErrStorageUnavailable(err)
	}
	return newBalance, nil
}

func (uc *WalletUsecase) GetBalance(ctx context.Context, userID uuid.UUID) (*wallet.BalanceDTO, error) {
	balance, err := uc.repo.GetBalance(ctx, userID)
	if err != nil {
		if errors.Is(err, walletrepo.ErrUserNotFound) {
			return nil, errors.ErrUserNotFound
		}
		uc.logger.Error("failed to read balance", "user_id", userID, "err", err)
		return nil, errors.ErrStorageUnavailable(err)
	}

	txs, err := uc.repo.ListTransactions(ctx, userID, transactionHistoryLimit)
	if err != nil {
		uc.logger.Error("failed to list transactions", "user_id", userID, "err", err)
		return nil, errors.ErrStorageUnavailable(err)
	}

	dto := &wallet.BalanceDTO{
		Balance:      balance,
		Transactions: make([]*wallet.TransactionDTO, 0, len(txs)),
	}
	for _, t := range txs {
		dto.Transactions = append(dto.Transactions, wallet.ToTransactionDTO(t))
	}
	return dto, nil
}
