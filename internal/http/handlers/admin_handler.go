package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/saradorri/fairplay/internal/domain"
)

// AdminHandler serves the back-office operations
type AdminHandler struct {
	seedUseCase   domain.SeedUseCase
	walletUseCase domain.WalletUseCase
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(seedUseCase domain.SeedUseCase, walletUseCase domain.WalletUseCase) *AdminHandler {
	return &AdminHandler{seedUseCase: seedUseCase, walletUseCase: walletUseCase}
}

// DeclineRequest represents the decline request body
type DeclineRequest struct {
	Reason string `json:"reason" example:"transaction not found on chain"`
}

// RotateSeed reveals the active seed and activates the committed next one
// @Summary Rotate server seed
// @Tags admin
// @Produce json
// @Security AdminKey
// @Success 200 {object} domain.RotationResult
// @Failure 404 {object} domain.ErrorResponse
// @Failure 500 {object} domain.ErrorResponse
// @Router /admin/seeds/rotate [post]
func (h *AdminHandler) RotateSeed(c *gin.Context) {
	result, err := h.seedUseCase.Rotate(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// PendingDeposits lists deposits awaiting review, oldest first
// @Summary Pending deposits
// @Tags admin
// @Produce json
// @Security AdminKey
// @Param limit query int false "Maximum number of deposits"
// @Success 200 {array} domain.Transaction
// @Router /admin/deposits/pending [get]
func (h *AdminHandler) PendingDeposits(c *gin.Context) {
	limit, ok := queryLimit(c)
	if !ok {
		return
	}

	deposits, err := h.walletUseCase.ListPendingDeposits(c.Request.Context(), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, deposits)
}

// ApproveDeposit credits a pending deposit
// @Summary Approve deposit
// @Tags admin
// @Produce json
// @Security AdminKey
// @Param id path string true "Transaction ID"
// @Success 200 {object} domain.Transaction
// @Failure 400 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Router /admin/deposits/{id}/approve [post]
func (h *AdminHandler) ApproveDeposit(c *gin.Context) {
	deposit, err := h.walletUseCase.ApproveDeposit(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, deposit)
}

// DeclineDeposit rejects a pending deposit
// @Summary Decline deposit
// @Tags admin
// @Accept json
// @Produce json
// @Security AdminKey
// @Param id path string true "Transaction ID"
// @Param request body DeclineRequest false "Reason"
// @Success 200 {object} domain.Transaction
// @Failure 400 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Router /admin/deposits/{id}/decline [post]
func (h *AdminHandler) DeclineDeposit(c *gin.Context) {
	var req DeclineRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}
	}

	deposit, err := h.walletUseCase.DeclineDeposit(c.Request.Context(), c.Param("id"), req.Reason)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, deposit)
}

// Audit compares a wallet with its ledger
// @Summary Ledger audit
// @Tags admin
// @Produce json
// @Security AdminKey
// @Param userId path string true "User ID"
// @Param currency path string true "Currency"
// @Success 200 {object} domain.AuditReport
// @Failure 404 {object} domain.ErrorResponse
// @Router /admin/audit/{userId}/{currency} [get]
func (h *AdminHandler) Audit(c *gin.Context) {
	report, err := h.walletUseCase.Audit(c.Request.Context(), c.Param("userId"), strings.ToUpper(c.Param("currency")))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}
