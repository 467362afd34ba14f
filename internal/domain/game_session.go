package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// GameSessionStatus represents the lifecycle of a bet
type GameSessionStatus string

const (
	GameSessionPending GameSessionStatus = "PENDING"
	GameSessionWon     GameSessionStatus = "WON"
	GameSessionLost    GameSessionStatus = "LOST"
)

// GameSession is one settled bet. Nonce is unique per (UserID, ServerSeedID)
// and counts up from zero without gaps.
type GameSession struct {
	ID           string            `json:"id" gorm:"primaryKey;column:id;type:uuid"`
	UserID       string            `json:"user_id" gorm:"not null;type:uuid;uniqueIndex:idx_game_sessions_nonce,priority:1"`
	ServerSeedID string            `json:"server_seed_id" gorm:"not null;type:uuid;uniqueIndex:idx_game_sessions_nonce,priority:2"`
	ClientSeed   string            `json:"client_seed" gorm:"not null;type:varchar(64)"`
	Nonce        int64             `json:"nonce" gorm:"not null;uniqueIndex:idx_game_sessions_nonce,priority:3"`
	Game         string            `json:"game" gorm:"not null;type:varchar(16)"`
	BetAmount    decimal.Decimal   `json:"bet_amount" gorm:"type:numeric(30,8);not null"`
	Currency     string            `json:"currency" gorm:"type:varchar(8);not null"`
	Outcome      float64           `json:"outcome" gorm:"type:numeric(5,2);not null"`
	Multiplier   decimal.Decimal   `json:"multiplier" gorm:"type:numeric(20,8);not null"`
	WinAmount    decimal.Decimal   `json:"win_amount" gorm:"type:numeric(30,8);not null"`
	Status       GameSessionStatus `json:"status" gorm:"type:varchar(16);not null"`
	GameData     JSONB             `json:"game_data" gorm:"type:jsonb"`
	CreatedAt    time.Time         `json:"created_at" gorm:"not null"`
	CompletedAt  *time.Time        `json:"completed_at,omitempty"`
}

// TableName specifies the table name for GameSession
func (g GameSession) TableName() string {
	return "game_sessions"
}

// GameSessionRepository defines the interface for bet sessions
type GameSessionRepository interface {
	Create(ctx context.Context, session *GameSession) error
	UpdateStatus(ctx context.Context, id string, status GameSessionStatus, completedAt time.Time) error
	GetByID(ctx context.Context, id string) (*GameSession, error)
	ListByUser(ctx context.Context, userID string, limit int) ([]*GameSession, error)
	// NextNonce returns max(nonce)+1 for the pair, or 0 when it has no sessions.
	NextNonce(ctx context.Context, userID, serverSeedID string) (int64, error)
}
