package seed

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/saradorri/fairplay/internal/domain"
	"github.com/saradorri/fairplay/internal/fairness"
	"github.com/saradorri/fairplay/internal/infrastructure/logger"
	"go.uber.org/zap"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
)

// SeedUseCase implements domain.SeedUseCase
type SeedUseCase struct {
	store      domain.Store
	logger     *logger.Logger
	seedLength int
}

// NewSeedUseCase creates a new seed use case. seedLength is the number of
// random bytes per seed; values <= 0 use fairness.DefaultSeedLength.
func NewSeedUseCase(store domain.Store, seedLength int, logger *logger.Logger) domain.SeedUseCase {
	if seedLength <= 0 {
		seedLength = fairness.DefaultSeedLength
	}
	return &SeedUseCase{
		store:      store,
		logger:     logger.Named("seed"),
		seedLength: seedLength,
	}
}

// Initialize creates the first active seed when none exists
func (uc *SeedUseCase) Initialize(ctx context.Context) (*domain.ServerSeed, error) {
	var active *domain.ServerSeed

	err := uc.store.Atomic(ctx, func(repos domain.Repositories) error {
		existing, err := repos.ServerSeeds().GetActiveForUpdate(ctx)
		if err != nil {
			return err
		}
		if existing != nil {
			active = existing
			return nil
		}

		value, err := fairness.GenerateSecureRandomSeed(uc.seedLength)
		if err != nil {
			return err
		}
		seed, err := uc.commit(value, fairness.HashSeed(value))
		if err != nil {
			return err
		}
		if err := repos.ServerSeeds().Create(ctx, seed); err != nil {
			return err
		}
		active = seed
		return nil
	})

	if errors.Is(err, domain.ErrDuplicate) {
		// another initializer won the single-active index
		uc.logger.Info("Concurrent seed initialization detected, reading winner")
		active, err = uc.store.ServerSeeds().GetActive(ctx)
		if err == nil && active == nil {
			err = fmt.Errorf("active seed vanished after concurrent initialization")
		}
	}
	if err != nil {
		uc.logger.Error("Failed to initialize server seed", zap.Error(err))
		return nil, domain.NewDatabaseError("initialize server seed", err)
	}

	uc.logger.Info("Server seed ready",
		zap.String("seed_id", active.ID),
		zap.String("seed_hash", active.SeedHash))
	return active, nil
}

// GetActive returns the active seed, creating one if the table is empty
func (uc *SeedUseCase) GetActive(ctx context.Context) (*domain.ServerSeed, error) {
	active, err := uc.store.ServerSeeds().GetActive(ctx)
	if err != nil {
		uc.logger.Error("Failed to get active server seed", zap.Error(err))
		return nil, domain.NewDatabaseError("get active server seed", err)
	}
	if active != nil {
		return active, nil
	}

	uc.logger.Warn("No active server seed, initializing one")
	return uc.Initialize(ctx)
}

// Rotate reveals the active seed and promotes its committed successor
func (uc *SeedUseCase) Rotate(ctx context.Context) (*domain.RotationResult, error) {
	var result *domain.RotationResult

	err := uc.store.Atomic(ctx, func(repos domain.Repositories) error {
		current, err := repos.ServerSeeds().GetActiveForUpdate(ctx)
		if err != nil {
			return err
		}
		if current == nil {
			return domain.NewNotFoundError("Active server seed")
		}
		if fairness.HashSeed(current.NextSeedValue) != current.NextSeedHash {
			return domain.NewAppError(domain.ErrCodeSeedIntegrity,
				"Committed next seed does not match its hash", http.StatusInternalServerError, nil)
		}

		now := time.Now().UTC()
		current.IsActive = false
		current.RotatedAt = &now
		if err := repos.ServerSeeds().Update(ctx, current); err != nil {
			return err
		}

		next, err := uc.commit(current.NextSeedValue, current.NextSeedHash)
		if err != nil {
			return err
		}
		next.CreatedAt = now
		if err := repos.ServerSeeds().Create(ctx, next); err != nil {
			return err
		}

		event := domain.NewOutboxEvent(domain.EventTypeSeedRotated, domain.JSONB{
			"revealed_seed_id": current.ID,
			"server_seed":      current.SeedValue,
			"seed_hash":        current.SeedHash,
			"active_seed_id":   next.ID,
			"active_seed_hash": next.SeedHash,
			"next_seed_hash":   next.NextSeedHash,
			"rotated_at":       now.Format(time.RFC3339Nano),
		})
		if err := repos.Outbox().Save(ctx, event); err != nil {
			return err
		}

		result = &domain.RotationResult{Revealed: current.Public(), Active: next.Public()}
		return nil
	})
	if err != nil {
		if appErr, ok := domain.IsAppError(err); ok {
			uc.logger.Warn("Seed rotation rejected", zap.String("code", appErr.Code), zap.Error(err))
			return nil, appErr
		}
		uc.logger.Error("Failed to rotate server seed", zap.Error(err))
		return nil, domain.NewDatabaseError("rotate server seed", err)
	}

	uc.logger.Info("Server seed rotated",
		zap.String("revealed_seed_id", result.Revealed.ID),
		zap.String("active_seed_id", result.Active.ID))
	return result, nil
}

// NextNonce returns the next nonce for the pair using the caller's transaction
func (uc *SeedUseCase) NextNonce(ctx context.Context, repos domain.Repositories, userID, serverSeedID string) (int64, error) {
	nonce, err := repos.GameSessions().NextNonce(ctx, userID, serverSeedID)
	if err != nil {
		return 0, fmt.Errorf("next nonce: %w", err)
	}
	uc.logger.Debug("Allocated nonce",
		zap.String("user_id", userID),
		zap.String("seed_id", serverSeedID),
		zap.Int64("nonce", nonce))
	return nonce, nil
}

// History lists rotated seeds with their plaintext
func (uc *SeedUseCase) History(ctx context.Context, limit int) ([]*domain.PublicServerSeed, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}

	seeds, err := uc.store.ServerSeeds().ListRotated(ctx, limit)
	if err != nil {
		uc.logger.Error("Failed to list rotated seeds", zap.Error(err))
		return nil, domain.NewDatabaseError("list rotated seeds", err)
	}

	out := make([]*domain.PublicServerSeed, 0, len(seeds))
	for _, s := range seeds {
		out = append(out, s.Public())
	}
	return out, nil
}

// commit builds an active seed for value and pre-commits a fresh successor
func (uc *SeedUseCase) commit(value, hash string) (*domain.ServerSeed, error) {
	next, err := fairness.GenerateSecureRandomSeed(uc.seedLength)
	if err != nil {
		return nil, err
	}
	return &domain.ServerSeed{
		SeedValue:     value,
		SeedHash:      hash,
		NextSeedValue: next,
		NextSeedHash:  fairness.HashSeed(next),
		IsActive:      true,
	}, nil
}
