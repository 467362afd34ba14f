package domain

import (
	"context"

	"github.com/saradorri/fairplay/internal/games"
	"github.com/shopspring/decimal"
)

// PlaceBetRequest describes a wager on one game
type PlaceBetRequest struct {
	UserID     string
	Amount     decimal.Decimal
	Currency   string
	ClientSeed string
	Spec       games.BetSpec
}

// BetResult is a settled bet
type BetResult struct {
	Session      *GameSession      `json:"session"`
	Outcome      float64           `json:"outcome"`
	Won          bool              `json:"won"`
	WinAmount    decimal.Decimal   `json:"win_amount"`
	Transactions []*Transaction    `json:"transactions"`
	Balance      decimal.Decimal   `json:"balance"`
	ServerSeed   *PublicServerSeed `json:"server_seed"`
	Detail       JSONB             `json:"detail,omitempty"`
}

// SessionVerification is everything a player needs to recompute a bet
type SessionVerification struct {
	SessionID    string  `json:"session_id"`
	Game         string  `json:"game"`
	ServerSeedID string  `json:"server_seed_id"`
	SeedHash     string  `json:"seed_hash"`
	ClientSeed   string  `json:"client_seed"`
	Nonce        int64   `json:"nonce"`
	Outcome      float64 `json:"outcome"`
	Revealed     bool    `json:"revealed"`
	// ServerSeed is empty until the seed has been rotated out
	ServerSeed string `json:"server_seed,omitempty"`
	HMAC       string `json:"hmac,omitempty"`
	Verified   *bool  `json:"verified,omitempty"`
}

// BetUseCase settles bets and exposes bet history
type BetUseCase interface {
	PlaceBet(ctx context.Context, req PlaceBetRequest) (*BetResult, error)
	History(ctx context.Context, userID string, limit int) ([]*GameSession, error)
	Verification(ctx context.Context, userID, sessionID string) (*SessionVerification, error)
}
