package seeder

import (
	"context"
	"fmt"

	"github.com/saradorri/fairplay/internal/domain"
	"github.com/saradorri/fairplay/internal/infrastructure/logger"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// DemoPlayer is a wallet address funded by the seeder
type DemoPlayer struct {
	Address  string
	Deposits map[string]string
}

// DefaultPlayers are the demo accounts created by cmd/seed
var DefaultPlayers = []DemoPlayer{
	{Address: "0x1111111111111111111111111111111111111111", Deposits: map[string]string{domain.CurrencyETH: "10", domain.CurrencyUSDT: "1000"}},
	{Address: "0x2222222222222222222222222222222222222222", Deposits: map[string]string{domain.CurrencyBTC: "0.5"}},
	{Address: "0x3333333333333333333333333333333333333333", Deposits: map[string]string{domain.CurrencyETH: "2.5"}},
}

// Seeder handles database seeding operations
type Seeder struct {
	users   domain.UserUseCase
	wallets domain.WalletUseCase
	seeds   domain.SeedUseCase
	logger  *logger.Logger
}

// NewSeeder creates a new seeder instance
func NewSeeder(users domain.UserUseCase, wallets domain.WalletUseCase, seeds domain.SeedUseCase, logger *logger.Logger) *Seeder {
	return &Seeder{
		users:   users,
		wallets: wallets,
		seeds:   seeds,
		logger:  logger.Named("seeder"),
	}
}

// Seed commits the first server seed and funds players through approved
// deposits, so every balance is backed by ledger entries. Players that
// already exist are left untouched.
func (s *Seeder) Seed(ctx context.Context, players []DemoPlayer) error {
	active, err := s.seeds.Initialize(ctx)
	if err != nil {
		return fmt.Errorf("initialize server seed: %w", err)
	}
	s.logger.Info("Server seed ready", zap.String("seed_hash", active.SeedHash))

	for _, p := range players {
		res, err := s.users.Connect(ctx, p.Address)
		if err != nil {
			return fmt.Errorf("connect %s: %w", p.Address, err)
		}
		if !res.Created {
			s.logger.Info("Player already exists, skipping", zap.String("wallet_address", p.Address))
			continue
		}

		userID := res.Profile.User.ID
		for currency, raw := range p.Deposits {
			amount, err := decimal.NewFromString(raw)
			if err != nil {
				return fmt.Errorf("deposit amount %q: %w", raw, err)
			}
			deposit, err := s.wallets.RequestDeposit(ctx, userID, currency, amount, "seed-"+currency)
			if err != nil {
				return fmt.Errorf("request deposit for %s: %w", p.Address, err)
			}
			if _, err := s.wallets.ApproveDeposit(ctx, deposit.ID); err != nil {
				return fmt.Errorf("approve deposit for %s: %w", p.Address, err)
			}
		}
		s.logger.Info("Player seeded",
			zap.String("user_id", userID),
			zap.String("wallet_address", res.Profile.User.WalletAddress))
	}
	return nil
}
