package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType represents the type of transaction
type TransactionType string

const (
	TransactionTypeDeposit TransactionType = "DEPOSIT"
	TransactionTypeWager   TransactionType = "WAGER"
	TransactionTypeWin     TransactionType = "WIN"
	TransactionTypeLoss    TransactionType = "LOSS"
)

// TransactionStatus represents the status of a transaction
type TransactionStatus string

const (
	// TransactionStatusPending deposit waiting for admin review; no balance effect
	TransactionStatusPending TransactionStatus = "PENDING"

	// TransactionStatusCompleted applied to the wallet balance
	TransactionStatusCompleted TransactionStatus = "COMPLETED"

	// TransactionStatusFailed declined deposit; no balance effect
	TransactionStatusFailed TransactionStatus = "FAILED"
)

// Transaction is one entry of the append-only ledger. Seq is the ledger
// position: assigned on insert and reassigned when a pending entry completes.
// For completed entries of a user and currency, BalanceAfter of one entry
// equals BalanceBefore of the next in Seq order.
type Transaction struct {
	ID            string            `json:"id" gorm:"primaryKey;column:id;type:uuid"`
	Seq           int64             `json:"-" gorm:"column:seq;->"`
	UserID        string            `json:"user_id" gorm:"index;not null;type:uuid"`
	Type          TransactionType   `json:"type" gorm:"type:varchar(16);not null"`
	Currency      string            `json:"currency" gorm:"type:varchar(8);not null"`
	Amount        decimal.Decimal   `json:"amount" gorm:"type:numeric(30,8);not null"`
	BalanceBefore decimal.Decimal   `json:"balance_before" gorm:"type:numeric(30,8);not null"`
	BalanceAfter  decimal.Decimal   `json:"balance_after" gorm:"type:numeric(30,8);not null"`
	Status        TransactionStatus `json:"status" gorm:"type:varchar(16);not null"`
	GameSessionID *string           `json:"game_session_id,omitempty" gorm:"type:uuid;index"`
	Metadata      JSONB             `json:"metadata,omitempty" gorm:"type:jsonb"`
	CreatedAt     time.Time         `json:"created_at" gorm:"not null"`
	CompletedAt   *time.Time        `json:"completed_at,omitempty"`
}

// TableName specifies the table name for Transaction
func (t Transaction) TableName() string {
	return "transactions"
}

// TransactionRepository defines the interface for ledger data
type TransactionRepository interface {
	Create(ctx context.Context, transaction *Transaction) error
	Update(ctx context.Context, transaction *Transaction) error
	GetByID(ctx context.Context, id string) (*Transaction, error)
	GetByIDForUpdate(ctx context.Context, id string) (*Transaction, error)
	// ListByUser returns newest first; limit <= 0 means no limit.
	ListByUser(ctx context.Context, userID, currency string, limit int) ([]*Transaction, error)
	// ListLedger returns completed entries in chronological order.
	ListLedger(ctx context.Context, userID, currency string) ([]*Transaction, error)
	ListByGameSession(ctx context.Context, sessionID string) ([]*Transaction, error)
	ListPendingDeposits(ctx context.Context, limit int) ([]*Transaction, error)
}
