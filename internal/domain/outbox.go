package domain

//go:generate mockgen -source=outbox.go -destination=mocks/outbox_mock.go -package=mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// OutboxEvent is a notification written in the same store transaction as the
// state change it describes, and delivered later by the outbox processor.
type OutboxEvent struct {
	ID          string     `json:"id" gorm:"primaryKey;column:id;type:varchar(64)"`
	Type        string     `json:"type" gorm:"type:varchar(64);not null"`
	Data        JSONB      `json:"data" gorm:"type:jsonb"`
	Status      string     `json:"status" gorm:"type:varchar(16);not null;default:'PENDING'"`
	CreatedAt   time.Time  `json:"created_at" gorm:"not null"`
	ProcessedAt *time.Time `json:"processed_at,omitempty"`
	Error       *string    `json:"error,omitempty"`
	RetryCount  int        `json:"retry_count" gorm:"default:0"`
}

// TableName specifies the table name for OutboxEvent
func (o OutboxEvent) TableName() string {
	return "outbox_events"
}

// NewOutboxEvent creates a pending event
func NewOutboxEvent(eventType string, data JSONB) *OutboxEvent {
	return &OutboxEvent{
		ID:        uuid.NewString(),
		Type:      eventType,
		Data:      data,
		Status:    EventStatusPending,
		CreatedAt: time.Now().UTC(),
	}
}

// OutboxRepository defines the interface for outbox persistence
type OutboxRepository interface {
	Save(ctx context.Context, event *OutboxEvent) error
	GetPendingEvents(ctx context.Context, limit int) ([]*OutboxEvent, error)
	MarkAsProcessed(ctx context.Context, eventID string) error
	MarkAsFailed(ctx context.Context, eventID string, errMsg string) error
	IncrementRetryCount(ctx context.Context, eventID string) error
}

// OutboxProcessor defines the interface for processing outbox events
type OutboxProcessor interface {
	ProcessEvents(ctx context.Context) error
	ProcessEvent(ctx context.Context, event *OutboxEvent) error
	StartBackgroundProcessing()
	StopBackgroundProcessing()
}

// EventPublisher delivers outbox events to an external consumer
type EventPublisher interface {
	Publish(ctx context.Context, event *OutboxEvent) error
}

// Event types
const (
	EventTypeBetSettled      = "BET_SETTLED"
	EventTypeDepositApproved = "DEPOSIT_APPROVED"
	EventTypeDepositDeclined = "DEPOSIT_DECLINED"
	EventTypeSeedRotated     = "SEED_ROTATED"
)

// Event statuses
const (
	EventStatusPending   = "PENDING"
	EventStatusProcessed = "PROCESSED"
	EventStatusFailed    = "FAILED"
)
