package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/uptrace/bun"

	"lockchat/internal/wallet/model"
	"lockchat/pkg/logger"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrInsufficientFunds = errors.New("insufficient balance")
)

type WalletRepository struct {
	db     *bun.DB
	logger *logger.Logger
}

func NewWalletRepository(db *bun.DB, logger logger.Logger) *WalletRepository {
	return &WalletRepository{
		db:     db,
		logger: &logger,
	}
}

func (r *WalletRepository) Credit(ctx context.Context, userID uuid.UUID, amount int64, description string) (int64, error) {
	var newBalance int64
	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		var err error
		newBalance, err = ApplyCredit(ctx, tx, userID, amount, description)
		return err
	})
	if err != nil {
		return 0, err
	}
	return newBalance, nil
}

func (r *WalletRepository) Debit(ctx context.Context, userID uuid.UUID, amount int64, description string) (int64, error) {
	var newBalance int64
	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		var err error
		newBalance, err = ApplyDebit(ctx, tx, userID, amount, description)
		return err
	})
	if err != nil {
		return 0, err
	}
	return newBalance, nil
}

func (r *WalletRepository) GetBalance(ctx context.Context, userID uuid.UUID) (int64, error) {
	var balance int64
	err := r.db.NewSelect().
		Table("users").
		Column("balance").
		Where("id = ?", userID).
		Scan(ctx, &balance)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrUserNotFound
		}
		return 0, errors.Wrap(err, "walletRepo.GetBalance.Scan: ")
	}
	return balance, nil
}

func (r *WalletRepository) ListTransactions(ctx context.Context, userID uuid.UUID, limit int) ([]*model.Transaction, error) {
	var txs []*model.Transaction
	q := r.db.NewSelect().
		Model(&txs).
		Where("user_id = ?", userID).
		Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Scan(ctx); err != nil {
		return nil, errors.Wrap(err, "walletRepo.ListTransactions.Scan: ")
	}
	return txs, nil
}

// ApplyCredit and ApplyDebit run inside a caller-owned transaction so
// other repositories (the message unlock flow) can move balance and
// append the ledger entry atomically with their own writes.
//
// Both lock the user row: the read-modify-write on balance is
// serialized per user, so concurrent operations never lose an update.

func ApplyCredit(ctx context.Context, tx bun.IDB, userID uuid.UUID, amount int64, description string) (int64, error) {
	balance, err := lockBalance(ctx, tx, userID)
	if err != nil {
		return 0, err
	}

	newBalance := balance + amount
	if err := writeBalance(ctx, tx, userID, newBalance); err != nil {
		return 0, err
	}

	entry := &model.Transaction{
		UserID:      userID,
		Amount:      amount,
		Type:        model.TypeCredit,
		Description: description,
	}
	if _, err := tx.NewInsert().Model(entry).Exec(ctx); err != nil {
		return 0, errors.Wrap(err, "walletRepo.ApplyCredit.InsertEntry: ")
	}
	return newBalance, nil
}

func ApplyDebit(ctx context.Context, tx bun.IDB, userID uuid.UUID, amount int64, description string) (int64, error) {
	balance, err := lockBalance(ctx, tx, userID)
	if err != nil {
		return 0, err
	}

	if balance < amount {
		return 0, ErrInsufficientFunds
	}

	newBalance := balance - amount
	if err := writeBalance(ctx, tx, userID, newBalance); err != nil {
		return 0, err
	}

	entry := &model.Transaction{
		UserID:      userID,
		Amount:      amount,
		Type:        model.TypeDebit,
		Description: description,
	}
	if _, err := tx.NewInsert().Model(entry).Exec(ctx); err != nil {
		return 0, errors.Wrap(err, "walletRepo.ApplyDebit.InsertEntry: ")
	}
	return newBalance, nil
}

func lockBalance(ctx context.Context, tx bun.IDB, userID uuid.UUID) (int64, error) {
	var balance int64
	err := tx.NewSelect().
		Table("users").
		Column("balance").
		Where("id = ?", userID).
		For("UPDATE").
		Scan(ctx, &balance)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrUserNotFound
		}
		return 0, errors.Wrap(err, "walletRepo.lockBalance.Scan: ")
	}
	return balance, nil
}

func writeBalance(ctx context.Context, tx bun.IDB, userID uuid.UUID, balance int64) error {
	_, err := tx.NewUpdate().
		Table("users").
		Set("balance = ?", balance).
		Set("updated_at = current_timestamp").
		Where("id = ?", userID).
		Exec(ctx)
	if err != nil {
		return errors.Wrap(err, "walletRepo.writeBalance.Exec: ")
	}
	return nil
}
