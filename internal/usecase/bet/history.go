package bet

import (
	"context"

	"github.com/saradorri/fairplay/internal/domain"
	"github.com/saradorri/fairplay/internal/fairness"
	"go.uber.org/zap"
)

const (
	defaultHistoryLimit = 50
	maxHistoryLimit     = 200
)

// History lists a user's bets, newest first
func (uc *BetUseCase) History(ctx context.Context, userID string, limit int) ([]*domain.GameSession, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}

	sessions, err := uc.store.GameSessions().ListByUser(ctx, userID, limit)
	if err != nil {
		uc.logger.Error("Failed to list game sessions", zap.String("user_id", userID), zap.Error(err))
		return nil, domain.NewDatabaseError("list game sessions", err)
	}
	return sessions, nil
}

// Verification returns the inputs of a bet. The server seed and the
// recomputed check are included only once the seed has been rotated out.
func (uc *BetUseCase) Verification(ctx context.Context, userID, sessionID string) (*domain.SessionVerification, error) {
	session, err := uc.store.GameSessions().GetByID(ctx, sessionID)
	if err != nil {
		uc.logger.Error("Failed to get game session", zap.String("session_id", sessionID), zap.Error(err))
		return nil, domain.NewDatabaseError("get game session", err)
	}
	if session == nil || session.UserID != userID {
		return nil, domain.NewNotFoundError("Game session")
	}

	seed, err := uc.store.ServerSeeds().GetByID(ctx, session.ServerSeedID)
	if err != nil {
		uc.logger.Error("Failed to get server seed", zap.String("seed_id", session.ServerSeedID), zap.Error(err))
		return nil, domain.NewDatabaseError("get server seed", err)
	}
	if seed == nil {
		return nil, domain.NewNotFoundError("Server seed")
	}

	view := &domain.SessionVerification{
		SessionID:    session.ID,
		Game:         session.Game,
		ServerSeedID: seed.ID,
		SeedHash:     seed.SeedHash,
		ClientSeed:   session.ClientSeed,
		Nonce:        session.Nonce,
		Outcome:      session.Outcome,
		Revealed:     seed.Revealed(),
	}
	if !view.Revealed {
		return view, nil
	}

	view.ServerSeed = seed.SeedValue
	roll, err := fairness.CalculateOutcome(seed.SeedValue, session.ClientSeed, session.Nonce)
	if err != nil {
		return nil, toAppError(err)
	}
	view.HMAC = roll.HMAC
	verified := fairness.VerifyOutcome(seed.SeedValue, session.ClientSeed, session.Nonce, session.Outcome)
	view.Verified = &verified

	if !verified {
		uc.logger.Error("Stored outcome does not match recomputation",
			zap.String("session_id", session.ID),
			zap.Float64("stored", session.Outcome),
			zap.Float64("recomputed", roll.Outcome))
	}
	return view, nil
}
