package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"lockchat/internal/wallet"
	"lockchat/pkg/logger"
)

type WalletHandler struct {
	usecase wallet.WalletUsecase
	logger  logger.Logger
}

func NewWalletHandler(usecase wallet.WalletUsecase, logger logger.Logger) *WalletHandler {
	return &WalletHandler{usecase: usecase, logger: logger}
}

type addFundsRequest struct {
	Amount int64 `json:"amount"`
}

func (h *WalletHandler) Balance(c *gin.Context) {
	viewer := viewerFrom(c)

	dto, err := h.usecase.GetBalance(c.Request.Context(), viewer.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"balance":      dto.Balance,
		"transactions": dto.Transactions,
	})
}

func (h *WalletHandler) AddFunds(c *gin.Context) {
	var req addFundsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid amount"})
		return
	}

	balance, err := h.usecase.AddFunds(c.Request.Context(), viewerFrom(c).ID, req.Amount)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"balance": balance})
}
