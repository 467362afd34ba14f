package domain

import (
	"context"
	"time"
)

// ServerSeed is a house seed under commit-reveal. SeedHash is published while
// the seed is active; SeedValue is disclosed once RotatedAt is set.
// NextSeedValue is the plaintext behind NextSeedHash, kept secret until it
// becomes the active seed.
type ServerSeed struct {
	ID            string     `json:"id" gorm:"primaryKey;column:id;type:uuid"`
	SeedValue     string     `json:"-" gorm:"not null;type:varchar(128)"`
	SeedHash      string     `json:"seed_hash" gorm:"not null;type:char(64)"`
	NextSeedValue string     `json:"-" gorm:"not null;type:varchar(128)"`
	NextSeedHash  string     `json:"next_seed_hash" gorm:"not null;type:char(64)"`
	IsActive      bool       `json:"is_active" gorm:"not null"`
	CreatedAt     time.Time  `json:"created_at" gorm:"not null"`
	RotatedAt     *time.Time `json:"rotated_at,omitempty"`
}

// TableName specifies the table name for ServerSeed
func (s ServerSeed) TableName() string {
	return "server_seeds"
}

// Revealed reports whether the plaintext may be disclosed
func (s *ServerSeed) Revealed() bool {
	return !s.IsActive && s.RotatedAt != nil
}

// PublicServerSeed is the player-facing view of a seed
type PublicServerSeed struct {
	ID           string     `json:"id"`
	SeedHash     string     `json:"seed_hash"`
	NextSeedHash string     `json:"next_seed_hash"`
	IsActive     bool       `json:"is_active"`
	CreatedAt    time.Time  `json:"created_at"`
	RotatedAt    *time.Time `json:"rotated_at,omitempty"`
	// ServerSeed is set only for rotated seeds
	ServerSeed string `json:"server_seed,omitempty"`
}

// Public returns the view of s that is safe to show untrusted callers
func (s *ServerSeed) Public() *PublicServerSeed {
	view := &PublicServerSeed{
		ID:           s.ID,
		SeedHash:     s.SeedHash,
		NextSeedHash: s.NextSeedHash,
		IsActive:     s.IsActive,
		CreatedAt:    s.CreatedAt,
		RotatedAt:    s.RotatedAt,
	}
	if s.Revealed() {
		view.ServerSeed = s.SeedValue
	}
	return view
}

// ServerSeedRepository defines the interface for seed persistence
type ServerSeedRepository interface {
	GetActive(ctx context.Context) (*ServerSeed, error)
	GetActiveForShare(ctx context.Context) (*ServerSeed, error)
	GetActiveForUpdate(ctx context.Context) (*ServerSeed, error)
	GetByID(ctx context.Context, id string) (*ServerSeed, error)
	Create(ctx context.Context, seed *ServerSeed) error
	Update(ctx context.Context, seed *ServerSeed) error
	// ListRotated returns rotated seeds, most recent first
	ListRotated(ctx context.Context, limit int) ([]*ServerSeed, error)
}

// RotationResult carries both ends of a rotation
type RotationResult struct {
	Revealed *PublicServerSeed `json:"revealed"`
	Active   *PublicServerSeed `json:"active"`
}

// SeedUseCase manages the commit-reveal lifecycle of server seeds
type SeedUseCase interface {
	Initialize(ctx context.Context) (*ServerSeed, error)
	GetActive(ctx context.Context) (*ServerSeed, error)
	Rotate(ctx context.Context) (*RotationResult, error)
	NextNonce(ctx context.Context, repos Repositories, userID, serverSeedID string) (int64, error)
	History(ctx context.Context, limit int) ([]*PublicServerSeed, error)
}
