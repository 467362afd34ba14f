package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/saradorri/fairplay/internal/domain"
	"gorm.io/gorm"
)

// OutboxRepository implements domain.OutboxRepository
type OutboxRepository struct {
	db *gorm.DB
}

// NewOutboxRepository creates a new outbox repository
func NewOutboxRepository(db *gorm.DB) *OutboxRepository {
	return &OutboxRepository{db: db}
}

// Save saves an outbox event
func (r *OutboxRepository) Save(ctx context.Context, event *domain.OutboxEvent) error {
	return translateError("save outbox event", r.db.WithContext(ctx).Create(event).Error)
}

// GetPendingEvents retrieves pending events, oldest first
func (r *OutboxRepository) GetPendingEvents(ctx context.Context, limit int) ([]*domain.OutboxEvent, error) {
	var events []*domain.OutboxEvent
	err := r.db.WithContext(ctx).
		Where("status = ?", domain.EventStatusPending).
		Order("created_at ASC").
		Limit(limit).
		Find(&events).Error
	return events, err
}

// MarkAsProcessed marks an event as processed
func (r *OutboxRepository) MarkAsProcessed(ctx context.Context, eventID string) error {
	return r.update(ctx, eventID, map[string]interface{}{
		"status":       domain.EventStatusProcessed,
		"processed_at": time.Now().UTC(),
	})
}

// MarkAsFailed marks an event as failed
func (r *OutboxRepository) MarkAsFailed(ctx context.Context, eventID string, errMsg string) error {
	return r.update(ctx, eventID, map[string]interface{}{
		"status": domain.EventStatusFailed,
		"error":  errMsg,
	})
}

// IncrementRetryCount increments the retry count of an event
func (r *OutboxRepository) IncrementRetryCount(ctx context.Context, eventID string) error {
	return r.update(ctx, eventID, map[string]interface{}{
		"retry_count": gorm.Expr("retry_count + 1"),
	})
}

func (r *OutboxRepository) update(ctx context.Context, eventID string, values map[string]interface{}) error {
	result := r.db.WithContext(ctx).
		Model(&domain.OutboxEvent{}).
		Where("id = ?", eventID).
		Updates(values)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("outbox event %s not found", eventID)
	}
	return nil
}
