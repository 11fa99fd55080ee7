package usecase

import (
	"context"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lockchat/internal/wallet/mocks"
	"lockchat/internal/wallet/model"
	walletrepo "lockchat/internal/wallet/repository"
	"lockchat/pkg/errors"
	"lockchat/pkg/logger"
)

func newTestUsecase(t *testing.T) (*WalletUsecase, *mocks.MockWalletRepository) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	repo := mocks.NewMockWalletRepository(ctrl)
	return NewWalletUsecase(repo, logger.Logger{}), repo
}

func TestWalletUsecase_AddFunds(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("happy path - credits and returns new balance", func(t *testing.T) {
		uc, repo := newTestUsecase(t)

		repo.EXPECT().Credit(ctx, userID, int64(100), "Add funds").Return(int64(150), nil)

		balance, err := uc.AddFunds(ctx, userID, 100)
		require.NoError(t, err)
		assert.Equal(t, int64(150), balance)
	})

	t.Run("sad path - zero amount", func(t *testing.T) {
		uc, _ := newTestUsecase(t)

		_, err := uc.AddFunds(ctx, userID, 0)
		assert.ErrorIs(t, err, errors.ErrInvalidAmount)
	})

	t.Run("sad path - negative amount", func(t *testing.T) {
		uc, _ := newTestUsecase(t)

		_, err := uc.AddFunds(ctx, userID, -25)
		assert.ErrorIs(t, err, errors.ErrInvalidAmount)
	})

	t.Run("sad path - unknown user", func(t *testing.T) {
		uc, repo := newTestUsecase(t)

		repo.EXPECT().Credit(ctx, userID, int64(100), "Add funds").Return(int64(0), walletrepo.ErrUserNotFound)

		_, err := uc.AddFunds(ctx, userID, 100)
		assert.ErrorIs(t, err, errors.ErrUserNotFound)
	})
}

func TestWalletUsecase_GetBalance(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("happy path - balance with recent transactions", func(t *testing.T) {
		uc, repo := newTestUsecase(t)

		repo.EXPECT().GetBalance(ctx, userID).Return(int64(75), nil)
		repo.EXPECT().ListTransactions(ctx, userID, transactionHistoryLimit).Return([]*model.Transaction{
			{ID: uuid.New(), UserID: userID, Amount: 100, Type: model.TypeCredit, Description: "Add funds"},
			{ID: uuid.New(), UserID: userID, Amount: 25, Type: model.TypeDebit, Description: "Unlock message"},
		}, nil)

		dto, err := uc.GetBalance(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, int64(75), dto.Balance)
		require.Len(t, dto.Transactions, 2)
		assert.Equal(t, model.TypeCredit, dto.Transactions[0].Type)
		assert.Equal(t, model.TypeDebit, dto.Transactions[1].Type)
	})

	t.Run("happy path - empty ledger gives empty slice, not nil", func(t *testing.T) {
		uc, repo := newTestUsecase(t)

		repo.EXPECT().GetBalance(ctx, userID).Return(int64(0), nil)
		repo.EXPECT().ListTransactions(ctx, userID, transactionHistoryLimit).Return(nil, nil)

		dto, err := uc.GetBalance(ctx, userID)
		require.NoError(t, err)
		assert.NotNil(t, dto.Transactions)
		assert.Empty(t, dto.Transactions)
	})

	t.Run("sad path - unknown user", func(t *testing.T) {
		uc, repo := newTestUsecase(t)

		repo.EXPECT().GetBalance(ctx, userID).Return(int64(0), walletrepo.ErrUserNotFound)

		_, err := uc.GetBalance(ctx, userID)
		assert.ErrorIs(t, err, errors.ErrUserNotFound)
	})
}
