package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/saradorri/fairplay/internal/domain"
	"github.com/saradorri/fairplay/internal/games"
	"github.com/shopspring/decimal"
)

// BetHandler handles bet placement and history
type BetHandler struct {
	betUseCase domain.BetUseCase
}

// NewBetHandler creates a new bet handler
func NewBetHandler(betUseCase domain.BetUseCase) *BetHandler {
	return &BetHandler{betUseCase: betUseCase}
}

// PlaceBetRequest represents the bet request body. Target applies to dice,
// betType to roulette and risk to plinko (low|medium|high) and balloon (a number).
type PlaceBetRequest struct {
	Game       string  `json:"game" binding:"required" example:"dice"`
	Amount     string  `json:"amount" binding:"required" example:"1.5"`
	Currency   string  `json:"currency" binding:"required" example:"ETH"`
	ClientSeed string  `json:"clientSeed" binding:"required" example:"player1"`
	Target     float64 `json:"target" example:"50"`
	BetType    string  `json:"betType" example:"red"`
	Risk       string  `json:"risk" example:"medium"`
}

// PlaceBet settles a bet
// @Summary Place bet
// @Description Settle a bet against the active server seed
// @Tags bets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body PlaceBetRequest true "Bet"
// @Success 200 {object} domain.BetResult
// @Failure 400 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Failure 422 {object} domain.ErrorResponse
// @Failure 429 {object} domain.ErrorResponse
// @Failure 503 {object} domain.ErrorResponse
// @Router /bets [post]
func (h *BetHandler) PlaceBet(c *gin.Context) {
	userID, ok := authenticatedUserID(c)
	if !ok {
		return
	}

	var req PlaceBetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		respondError(c, domain.NewValidationError("amount", "must be a decimal number"))
		return
	}

	spec, err := games.Parse(req.Game, games.Params{Target: req.Target, BetType: req.BetType, Risk: req.Risk})
	if err != nil {
		respondError(c, domain.NewInvalidArgumentError(err.Error(), err))
		return
	}

	result, err := h.betUseCase.PlaceBet(c.Request.Context(), domain.PlaceBetRequest{
		UserID:     userID,
		Amount:     amount,
		Currency:   strings.ToUpper(req.Currency),
		ClientSeed: req.ClientSeed,
		Spec:       spec,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// History lists the caller's bets
// @Summary Bet history
// @Description Most recent bets of the authenticated user
// @Tags bets
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Maximum number of bets"
// @Success 200 {array} domain.GameSession
// @Failure 401 {object} domain.ErrorResponse
// @Router /bets [get]
func (h *BetHandler) History(c *gin.Context) {
	userID, ok := authenticatedUserID(c)
	if !ok {
		return
	}
	limit, ok := queryLimit(c)
	if !ok {
		return
	}

	sessions, err := h.betUseCase.History(c.Request.Context(), userID, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sessions)
}

// Verification returns what is needed to recompute a bet
// @Summary Bet verification
// @Description Seed hash, client seed, nonce and outcome of a bet; the server seed is included once rotated
// @Tags bets
// @Produce json
// @Security BearerAuth
// @Param id path string true "Game session ID"
// @Success 200 {object} domain.SessionVerification
// @Failure 404 {object} domain.ErrorResponse
// @Router /bets/{id}/verification [get]
func (h *BetHandler) Verification(c *gin.Context) {
	userID, ok := authenticatedUserID(c)
	if !ok {
		return
	}

	verification, err := h.betUseCase.Verification(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, verification)
}
