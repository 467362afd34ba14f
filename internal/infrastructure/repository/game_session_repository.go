package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/saradorri/fairplay/internal/domain"
	"gorm.io/gorm"
)

// GameSessionRepository implements domain.GameSessionRepository
type GameSessionRepository struct {
	db *gorm.DB
}

// NewGameSessionRepository creates a new game session repository
func NewGameSessionRepository(db *gorm.DB) *GameSessionRepository {
	return &GameSessionRepository{db: db}
}

// Create stores a session; a reused nonce surfaces as domain.ErrDuplicate
func (r *GameSessionRepository) Create(ctx context.Context, session *domain.GameSession) error {
	if session.ID == "" {
		session.ID = uuid.NewString()
	}
	if session.CreatedAt.IsZero() {
		session.CreatedAt = time.Now().UTC()
	}
	return translateError("create game session", r.db.WithContext(ctx).Create(session).Error)
}

// UpdateStatus settles a session
func (r *GameSessionRepository) UpdateStatus(ctx context.Context, id string, status domain.GameSessionStatus, completedAt time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&domain.GameSession{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":       status,
			"completed_at": completedAt,
		})
	if result.Error != nil {
		return translateError("update game session", result.Error)
	}
	if result.RowsAffected == 0 {
		return translateError("update game session", gorm.ErrRecordNotFound)
	}
	return nil
}

// GetByID retrieves a session by ID
func (r *GameSessionRepository) GetByID(ctx context.Context, id string) (*domain.GameSession, error) {
	var session domain.GameSession
	found, err := first(r.db.WithContext(ctx).Where("id = ?", id), &session)
	if err != nil || !found {
		return nil, err
	}
	return &session, nil
}

// ListByUser retrieves the sessions of a user, newest first
func (r *GameSessionRepository) ListByUser(ctx context.Context, userID string, limit int) ([]*domain.GameSession, error) {
	var sessions []*domain.GameSession
	q := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at DESC, nonce DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&sessions).Error
	return sessions, err
}

// NextNonce returns the next unused nonce for the user and seed
func (r *GameSessionRepository) NextNonce(ctx context.Context, userID, serverSeedID string) (int64, error) {
	var next int64
	err := r.db.WithContext(ctx).
		Model(&domain.GameSession{}).
		Where("user_id = ? AND server_seed_id = ?", userID, serverSeedID).
		Select("COALESCE(MAX(nonce) + 1, 0)").
		Scan(&next).Error
	return next, err
}
