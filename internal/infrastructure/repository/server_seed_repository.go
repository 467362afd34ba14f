package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/saradorri/fairplay/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ServerSeedRepository implements domain.ServerSeedRepository
type ServerSeedRepository struct {
	db *gorm.DB
}

// NewServerSeedRepository creates a new server seed repository
func NewServerSeedRepository(db *gorm.DB) *ServerSeedRepository {
	return &ServerSeedRepository{db: db}
}

// GetActive retrieves the active seed
func (r *ServerSeedRepository) GetActive(ctx context.Context) (*domain.ServerSeed, error) {
	return r.active(r.db.WithContext(ctx))
}

// GetActiveForShare retrieves the active seed and blocks a concurrent rotation
// until the transaction ends
func (r *ServerSeedRepository) GetActiveForShare(ctx context.Context) (*domain.ServerSeed, error) {
	return r.active(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "SHARE"}))
}

// GetActiveForUpdate retrieves the active seed with an exclusive row lock
func (r *ServerSeedRepository) GetActiveForUpdate(ctx context.Context) (*domain.ServerSeed, error) {
	return r.active(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}))
}

func (r *ServerSeedRepository) active(q *gorm.DB) (*domain.ServerSeed, error) {
	var seed domain.ServerSeed
	found, err := first(q.Where("is_active = ?", true), &seed)
	if err != nil || !found {
		return nil, err
	}
	return &seed, nil
}

// GetByID retrieves a seed by ID
func (r *ServerSeedRepository) GetByID(ctx context.Context, id string) (*domain.ServerSeed, error) {
	var seed domain.ServerSeed
	found, err := first(r.db.WithContext(ctx).Where("id = ?", id), &seed)
	if err != nil || !found {
		return nil, err
	}
	return &seed, nil
}

// Create stores a seed; a second active seed violates idx_server_seeds_active
func (r *ServerSeedRepository) Create(ctx context.Context, seed *domain.ServerSeed) error {
	if seed.ID == "" {
		seed.ID = uuid.NewString()
	}
	if seed.CreatedAt.IsZero() {
		seed.CreatedAt = time.Now().UTC()
	}
	return translateError("create server seed", r.db.WithContext(ctx).Create(seed).Error)
}

// Update writes the rotation state of a seed
func (r *ServerSeedRepository) Update(ctx context.Context, seed *domain.ServerSeed) error {
	result := r.db.WithContext(ctx).
		Model(&domain.ServerSeed{}).
		Where("id = ?", seed.ID).
		Updates(map[string]interface{}{
			"is_active":  seed.IsActive,
			"rotated_at": seed.RotatedAt,
		})
	if result.Error != nil {
		return translateError("update server seed", result.Error)
	}
	if result.RowsAffected == 0 {
		return translateError("update server seed", gorm.ErrRecordNotFound)
	}
	return nil
}

// ListRotated retrieves revealed seeds, most recent first
func (r *ServerSeedRepository) ListRotated(ctx context.Context, limit int) ([]*domain.ServerSeed, error) {
	var seeds []*domain.ServerSeed
	q := r.db.WithContext(ctx).
		Where("is_active = ? AND rotated_at IS NOT NULL", false).
		Order("rotated_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&seeds).Error
	return seeds, err
}
