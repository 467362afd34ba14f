package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/saradorri/fairplay/internal/domain"
	"github.com/saradorri/fairplay/internal/fairness"
)

// FairnessHandler serves the public verification surface
type FairnessHandler struct {
	seedUseCase domain.SeedUseCase
}

// NewFairnessHandler creates a new fairness handler
func NewFairnessHandler(seedUseCase domain.SeedUseCase) *FairnessHandler {
	return &FairnessHandler{seedUseCase: seedUseCase}
}

// VerifyRequest represents the verify request body
type VerifyRequest struct {
	ServerSeed string   `json:"serverSeed" binding:"required" example:"abc123"`
	ClientSeed string   `json:"clientSeed" binding:"required" example:"player1"`
	Nonce      *int64   `json:"nonce" binding:"required" example:"0"`
	Outcome    *float64 `json:"outcome" binding:"required" example:"49.45"`
}

// VerifyResponse represents the verify response body
type VerifyResponse struct {
	Valid      bool    `json:"valid" example:"true"`
	Outcome    float64 `json:"outcome" example:"49.45"`
	Hex        string  `json:"hex" example:"4b7a95d1"`
	HMAC       string  `json:"hmac"`
	ServerHash string  `json:"server_seed_hash"`
}

// ActiveSeed returns the commitment of the active server seed
// @Summary Active server seed
// @Description Hash of the seed currently used for bets and of the seed that will replace it
// @Tags fairness
// @Produce json
// @Success 200 {object} domain.PublicServerSeed
// @Failure 500 {object} domain.ErrorResponse
// @Router /fairness/seed [get]
func (h *FairnessHandler) ActiveSeed(c *gin.Context) {
	seed, err := h.seedUseCase.GetActive(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, seed.Public())
}

// Verify recomputes an outcome from its inputs
// @Summary Verify outcome
// @Description Recompute HMAC-SHA256(serverSeed, clientSeed:nonce) and compare with the claimed outcome
// @Tags fairness
// @Accept json
// @Produce json
// @Param request body VerifyRequest true "Outcome inputs"
// @Success 200 {object} VerifyResponse
// @Failure 400 {object} domain.ErrorResponse
// @Router /fairness/verify [post]
func (h *FairnessHandler) Verify(c *gin.Context) {
	var req VerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	result, err := fairness.CalculateOutcome(req.ServerSeed, req.ClientSeed, *req.Nonce)
	if err != nil {
		respondError(c, domain.NewInvalidArgumentError(err.Error(), err))
		return
	}

	c.JSON(http.StatusOK, VerifyResponse{
		Valid:      fairness.VerifyOutcome(req.ServerSeed, req.ClientSeed, *req.Nonce, *req.Outcome),
		Outcome:    result.Outcome,
		Hex:        result.Hex,
		HMAC:       result.HMAC,
		ServerHash: fairness.HashSeed(req.ServerSeed),
	})
}

// Seeds lists rotated seeds with their revealed values
// @Summary Rotated seeds
// @Description Seeds that have been rotated out, with plaintext disclosed
// @Tags fairness
// @Produce json
// @Param limit query int false "Maximum number of seeds"
// @Success 200 {array} domain.PublicServerSeed
// @Failure 400 {object} domain.ErrorResponse
// @Router /fairness/seeds [get]
func (h *FairnessHandler) Seeds(c *gin.Context) {
	limit, ok := queryLimit(c)
	if !ok {
		return
	}

	seeds, err := h.seedUseCase.History(c.Request.Context(), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, seeds)
}
