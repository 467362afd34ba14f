package bet

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/saradorri/fairplay/internal/domain"
	"github.com/saradorri/fairplay/internal/infrastructure/lock"
	"github.com/saradorri/fairplay/internal/infrastructure/logger"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Config holds bet limits and the settlement retry policy
type Config struct {
	MinAmount       decimal.Decimal
	MaxAmount       decimal.Decimal
	MaxRetries      uint64
	InitialInterval time.Duration
	MaxInterval     time.Duration
	MaxElapsed      time.Duration
}

// DefaultConfig returns the limits used when nothing is configured
func DefaultConfig() Config {
	return Config{
		MinAmount:       decimal.New(1, -8),
		MaxRetries:      3,
		InitialInterval: 50 * time.Millisecond,
		MaxInterval:     time.Second,
		MaxElapsed:      5 * time.Second,
	}
}

// errNoActiveSeed aborts a settlement attempt so the seed can be created outside the transaction
var errNoActiveSeed = errors.New("no active server seed")

// BetUseCase implements domain.BetUseCase
type BetUseCase struct {
	store  domain.Store
	seeds  domain.SeedUseCase
	locks  *lock.UserLockManager
	config Config
	logger *logger.Logger
}

// NewBetUseCase creates a new bet use case
func NewBetUseCase(
	store domain.Store,
	seeds domain.SeedUseCase,
	locks *lock.UserLockManager,
	config Config,
	logger *logger.Logger,
) domain.BetUseCase {
	if config.MaxInterval <= 0 {
		config.MaxInterval = DefaultConfig().MaxInterval
	}
	if config.InitialInterval <= 0 {
		config.InitialInterval = DefaultConfig().InitialInterval
	}
	logger.Info("BetUseCase initialized",
		zap.String("min_amount", config.MinAmount.String()),
		zap.String("max_amount", config.MaxAmount.String()),
		zap.Uint64("max_retries", config.MaxRetries))
	return &BetUseCase{
		store:  store,
		seeds:  seeds,
		locks:  locks,
		config: config,
		logger: logger.Named("bet"),
	}
}

// PlaceBet validates, settles and records a bet
func (uc *BetUseCase) PlaceBet(ctx context.Context, req domain.PlaceBetRequest) (*domain.BetResult, error) {
	log := uc.logger.WithContext(ctx)
	if err := uc.validate(&req); err != nil {
		log.Warn("Bet rejected", zap.String("user_id", req.UserID), zap.Error(err))
		return nil, err
	}

	log.Info("Placing bet",
		zap.String("user_id", req.UserID),
		zap.String("game", string(req.Spec.Game())),
		zap.String("amount", req.Amount.String()),
		zap.String("currency", req.Currency))

	if err := uc.locks.Lock(ctx, req.UserID); err != nil {
		log.Warn("Failed to acquire user lock", zap.String("user_id", req.UserID), zap.Error(err))
		return nil, domain.NewSettlementError(err)
	}
	defer uc.locks.Unlock(req.UserID)

	var (
		result  *domain.BetResult
		attempt int
	)
	operation := func() error {
		attempt++
		settled, err := uc.settle(ctx, req)
		if err == nil {
			result = settled
			return nil
		}
		if permanent(err) {
			return backoff.Permanent(err)
		}
		if errors.Is(err, errNoActiveSeed) {
			log.Warn("No active seed during settlement, initializing")
			if _, seedErr := uc.seeds.Initialize(ctx); seedErr != nil {
				return seedErr
			}
		}
		log.Warn("Settlement attempt failed",
			zap.String("user_id", req.UserID),
			zap.Int("attempt", attempt),
			zap.Error(err))
		return err
	}

	if err := backoff.Retry(operation, uc.newBackOff(ctx)); err != nil {
		if permanent(err) {
			log.Info("Bet rejected during settlement", zap.String("user_id", req.UserID), zap.Error(err))
			return nil, err
		}
		log.Error("Settlement failed",
			zap.String("user_id", req.UserID),
			zap.Int("attempts", attempt),
			zap.Error(err))
		return nil, domain.NewSettlementError(err)
	}

	log.Info("Bet settled",
		zap.String("user_id", req.UserID),
		zap.String("session_id", result.Session.ID),
		zap.Int64("nonce", result.Session.Nonce),
		zap.Float64("outcome", result.Outcome),
		zap.Bool("won", result.Won),
		zap.String("win_amount", result.WinAmount.String()))
	return result, nil
}

func (uc *BetUseCase) newBackOff(ctx context.Context) backoff.BackOff {
	expo := backoff.NewExponentialBackOff()
	expo.InitialInterval = uc.config.InitialInterval
	expo.MaxInterval = uc.config.MaxInterval
	expo.MaxElapsedTime = uc.config.MaxElapsed
	return backoff.WithContext(backoff.WithMaxRetries(expo, uc.config.MaxRetries), ctx)
}

// permanent reports errors that a retry cannot fix
func permanent(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	appErr, ok := domain.IsAppError(err)
	if !ok {
		return false
	}
	switch appErr.Code {
	case domain.ErrCodeInvalidArgument, domain.ErrCodeNotFound, domain.ErrCodeInsufficientFunds:
		return true
	}
	return false
}
