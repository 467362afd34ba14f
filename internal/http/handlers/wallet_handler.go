package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/saradorri/fairplay/internal/domain"
	"github.com/shopspring/decimal"
)

// WalletHandler handles player deposits and ledger queries
type WalletHandler struct {
	walletUseCase domain.WalletUseCase
}

// NewWalletHandler creates a new wallet handler
func NewWalletHandler(walletUseCase domain.WalletUseCase) *WalletHandler {
	return &WalletHandler{walletUseCase: walletUseCase}
}

// DepositRequest represents the deposit request body
type DepositRequest struct {
	Currency string `json:"currency" binding:"required" example:"ETH"`
	Amount   string `json:"amount" binding:"required" example:"0.25"`
	TxHash   string `json:"txHash" binding:"required" example:"0x9fc76417374aa880d4449a1f7f31ec597f00b1f6f3dd2d66f4c9c6c445836d8b"`
}

// RequestDeposit records a deposit for admin review
// @Summary Request deposit
// @Description Record an on-chain deposit; the balance changes once an admin approves it
// @Tags wallet
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body DepositRequest true "Deposit"
// @Success 201 {object} domain.Transaction
// @Failure 400 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Router /wallet/deposits [post]
func (h *WalletHandler) RequestDeposit(c *gin.Context) {
	userID, ok := authenticatedUserID(c)
	if !ok {
		return
	}

	var req DepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		respondError(c, domain.NewValidationError("amount", "must be a decimal number"))
		return
	}

	deposit, err := h.walletUseCase.RequestDeposit(c.Request.Context(), userID, strings.ToUpper(req.Currency), amount, req.TxHash)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, deposit)
}

// Transactions lists the caller's ledger
// @Summary Transactions
// @Description Ledger entries of the authenticated user, newest first
// @Tags wallet
// @Produce json
// @Security BearerAuth
// @Param currency query string false "Currency filter"
// @Param limit query int false "Maximum number of entries"
// @Success 200 {array} domain.Transaction
// @Failure 400 {object} domain.ErrorResponse
// @Router /wallet/transactions [get]
func (h *WalletHandler) Transactions(c *gin.Context) {
	userID, ok := authenticatedUserID(c)
	if !ok {
		return
	}
	limit, ok := queryLimit(c)
	if !ok {
		return
	}

	txs, err := h.walletUseCase.Transactions(c.Request.Context(), userID, strings.ToUpper(c.Query("currency")), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, txs)
}
