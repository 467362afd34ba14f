package user

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/saradorri/fairplay/internal/domain"
	"github.com/saradorri/fairplay/internal/infrastructure/auth"
	"github.com/saradorri/fairplay/internal/infrastructure/logger"
	"go.uber.org/zap"
)

var walletAddressPattern = regexp.MustCompile(`^0x[0-9a-fA-F]{40}$`)

// UserUseCase implements domain.UserUseCase
type UserUseCase struct {
	store  domain.Store
	jwtSvc auth.JWTService
	logger *logger.Logger
}

// NewUserUseCase creates a new user use case
func NewUserUseCase(store domain.Store, jwtSvc auth.JWTService, logger *logger.Logger) domain.UserUseCase {
	return &UserUseCase{
		store:  store,
		jwtSvc: jwtSvc,
		logger: logger.Named("user"),
	}
}

// Connect signs a wallet address in, registering it on first sight with one
// empty wallet per supported currency.
func (uc *UserUseCase) Connect(ctx context.Context, walletAddress string) (*domain.ConnectResult, error) {
	log := uc.logger.WithContext(ctx)

	address := strings.ToLower(strings.TrimSpace(walletAddress))
	if !walletAddressPattern.MatchString(address) {
		log.Warn("Connect attempt with malformed wallet address", zap.String("wallet_address", walletAddress))
		return nil, domain.NewValidationError("wallet_address", "must be a 0x-prefixed 40 character hex address")
	}

	user, created, err := uc.findOrCreate(ctx, address)
	if errors.Is(err, domain.ErrDuplicate) {
		// a concurrent connect registered the same address first
		log.Debug("Concurrent registration detected, retrying", zap.String("wallet_address", address))
		user, created, err = uc.findOrCreate(ctx, address)
	}
	if err != nil {
		log.Error("Failed to register user", zap.String("wallet_address", address), zap.Error(err))
		return nil, domain.NewDatabaseError("connect", err)
	}

	token, err := uc.jwtSvc.GenerateToken(user.ID, user.WalletAddress)
	if err != nil {
		log.Error("Failed to generate JWT token", zap.String("user_id", user.ID), zap.Error(err))
		return nil, domain.NewInternalError("Token generation failed", err)
	}

	profile, err := uc.GetProfile(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	log.Info("User connected",
		zap.String("user_id", user.ID),
		zap.String("wallet_address", user.WalletAddress),
		zap.Bool("created", created))

	return &domain.ConnectResult{Token: token, Profile: profile, Created: created}, nil
}

func (uc *UserUseCase) findOrCreate(ctx context.Context, address string) (*domain.User, bool, error) {
	var (
		user    *domain.User
		created bool
	)
	err := uc.store.Atomic(ctx, func(repos domain.Repositories) error {
		existing, err := repos.Users().GetByWalletAddress(ctx, address)
		if err != nil {
			return err
		}
		if existing == nil {
			existing = &domain.User{WalletAddress: address}
			if err := repos.Users().Create(ctx, existing); err != nil {
				return err
			}
			created = true
		}
		user = existing
		return ensureWallets(ctx, repos, user.ID)
	})
	return user, created, err
}

func ensureWallets(ctx context.Context, repos domain.Repositories, userID string) error {
	wallets, err := repos.Wallets().ListByUser(ctx, userID)
	if err != nil {
		return err
	}
	have := make(map[string]bool, len(wallets))
	for _, w := range wallets {
		have[w.Currency] = true
	}
	for _, currency := range domain.SupportedCurrencies {
		if have[currency] {
			continue
		}
		if err := repos.Wallets().Create(ctx, &domain.Wallet{UserID: userID, Currency: currency}); err != nil {
			return err
		}
	}
	return nil
}

// GetProfile returns the user with its wallets
func (uc *UserUseCase) GetProfile(ctx context.Context, userID string) (*domain.Profile, error) {
	log := uc.logger.WithContext(ctx)

	user, err := uc.store.Users().GetByID(ctx, userID)
	if err != nil {
		log.Error("Failed to get user from database", zap.String("user_id", userID), zap.Error(err))
		return nil, domain.NewDatabaseError("get user", err)
	}
	if user == nil {
		log.Warn("User not found", zap.String("user_id", userID))
		return nil, domain.NewNotFoundError("User")
	}

	wallets, err := uc.store.Wallets().ListByUser(ctx, userID)
	if err != nil {
		log.Error("Failed to list wallets", zap.String("user_id", userID), zap.Error(err))
		return nil, domain.NewDatabaseError("list wallets", err)
	}

	return &domain.Profile{User: user, Wallets: wallets}, nil
}
