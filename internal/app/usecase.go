package app

import (
	"fmt"

	"github.com/saradorri/fairplay/internal/config"
	"github.com/saradorri/fairplay/internal/domain"
	"github.com/saradorri/fairplay/internal/infrastructure/auth"
	"github.com/saradorri/fairplay/internal/infrastructure/lock"
	"github.com/saradorri/fairplay/internal/infrastructure/logger"
	"github.com/saradorri/fairplay/internal/usecase/bet"
	"github.com/saradorri/fairplay/internal/usecase/seed"
	"github.com/saradorri/fairplay/internal/usecase/user"
	"github.com/saradorri/fairplay/internal/usecase/wallet"
	"github.com/shopspring/decimal"
)

func (a *application) InitSeedUseCase(store domain.Store, log *logger.Logger) domain.SeedUseCase {
	return seed.NewSeedUseCase(store, a.config.Bet.SeedLength, log)
}

func (a *application) InitBetUseCase(
	store domain.Store,
	seeds domain.SeedUseCase,
	locks *lock.UserLockManager,
	log *logger.Logger,
) (domain.BetUseCase, error) {
	cfg, err := BetConfig(a.config)
	if err != nil {
		return nil, err
	}
	return bet.NewBetUseCase(store, seeds, locks, cfg, log), nil
}

func (a *application) InitWalletUseCase(store domain.Store, log *logger.Logger) domain.WalletUseCase {
	return wallet.NewWalletUseCase(store, log)
}

func (a *application) InitUserUseCase(store domain.Store, jwt auth.JWTService, log *logger.Logger) domain.UserUseCase {
	return user.NewUserUseCase(store, jwt, log)
}

// BetConfig turns the bet and settlement sections into use case limits
func BetConfig(cfg *config.Config) (bet.Config, error) {
	out := bet.DefaultConfig()

	if cfg.Bet.MinAmount != "" {
		minAmount, err := decimal.NewFromString(cfg.Bet.MinAmount)
		if err != nil {
			return out, fmt.Errorf("bet.minAmount: %w", err)
		}
		out.MinAmount = minAmount
	}
	if cfg.Bet.MaxAmount != "" {
		maxAmount, err := decimal.NewFromString(cfg.Bet.MaxAmount)
		if err != nil {
			return out, fmt.Errorf("bet.maxAmount: %w", err)
		}
		out.MaxAmount = maxAmount
	}
	if !out.MaxAmount.IsZero() && out.MaxAmount.LessThan(out.MinAmount) {
		return out, fmt.Errorf("bet.maxAmount %s is below bet.minAmount %s", out.MaxAmount, out.MinAmount)
	}

	s := cfg.Settlement
	if s.MaxRetries > 0 {
		out.MaxRetries = uint64(s.MaxRetries)
	}
	if s.InitialInterval > 0 {
		out.InitialInterval = s.InitialInterval
	}
	if s.MaxInterval > 0 {
		out.MaxInterval = s.MaxInterval
	}
	if s.MaxElapsed > 0 {
		out.MaxElapsed = s.MaxElapsed
	}
	return out, nil
}
