package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/saradorri/fairplay/internal/domain"
)

// AuthHandler handles wallet sign-in and profile requests
type AuthHandler struct {
	userUseCase domain.UserUseCase
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(userUseCase domain.UserUseCase) *AuthHandler {
	return &AuthHandler{userUseCase: userUseCase}
}

// ConnectRequest represents the connect request body
type ConnectRequest struct {
	Address string `json:"address" binding:"required" example:"0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed"`
}

// ConnectResponse represents the connect response body
type ConnectResponse struct {
	Token   string           `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	User    *domain.User     `json:"user"`
	Wallets []*domain.Wallet `json:"wallets"`
	Created bool             `json:"created"`
}

// Connect signs a wallet address in
// @Summary Connect wallet
// @Description Sign in with a wallet address, registering it on first use
// @Tags auth
// @Accept json
// @Produce json
// @Param request body ConnectRequest true "Wallet address"
// @Success 200 {object} ConnectResponse
// @Failure 400 {object} domain.ErrorResponse
// @Router /auth/connect [post]
func (h *AuthHandler) Connect(c *gin.Context) {
	var req ConnectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	result, err := h.userUseCase.Connect(c.Request.Context(), req.Address)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, ConnectResponse{
		Token:   result.Token,
		User:    result.Profile.User,
		Wallets: result.Profile.Wallets,
		Created: result.Created,
	})
}

// Me returns the authenticated user
// @Summary Get current user
// @Description Get the authenticated user and its wallets
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} domain.Profile
// @Failure 401 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Router /users/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := authenticatedUserID(c)
	if !ok {
		return
	}

	profile, err := h.userUseCase.GetProfile(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}
