package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/saradorri/fairplay/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UserRepository implements domain.UserRepository
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	var user domain.User
	found, err := first(r.db.WithContext(ctx).Where("id = ?", id), &user)
	if err != nil || !found {
		return nil, err
	}
	return &user, nil
}

// GetByWalletAddress retrieves a user by wallet address
func (r *UserRepository) GetByWalletAddress(ctx context.Context, address string) (*domain.User, error) {
	var user domain.User
	found, err := first(r.db.WithContext(ctx).Where("wallet_address = ?", address), &user)
	if err != nil || !found {
		return nil, err
	}
	return &user, nil
}

// Create creates a new user
func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	user.CreatedAt, user.UpdatedAt = now, now
	return translateError("create user", r.db.WithContext(ctx).Create(user).Error)
}

// WalletRepository implements domain.WalletRepository
type WalletRepository struct {
	db *gorm.DB
}

// NewWalletRepository creates a new wallet repository
func NewWalletRepository(db *gorm.DB) *WalletRepository {
	return &WalletRepository{db: db}
}

// Get retrieves the wallet for a user and currency
func (r *WalletRepository) Get(ctx context.Context, userID, currency string) (*domain.Wallet, error) {
	return r.get(r.db.WithContext(ctx), userID, currency)
}

// GetForUpdate retrieves the wallet and locks its row until the transaction ends
func (r *WalletRepository) GetForUpdate(ctx context.Context, userID, currency string) (*domain.Wallet, error) {
	return r.get(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), userID, currency)
}

func (r *WalletRepository) get(q *gorm.DB, userID, currency string) (*domain.Wallet, error) {
	var wallet domain.Wallet
	found, err := first(q.Where("user_id = ? AND currency = ?", userID, currency), &wallet)
	if err != nil || !found {
		return nil, err
	}
	return &wallet, nil
}

// ListByUser retrieves all wallets of a user
func (r *WalletRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Wallet, error) {
	var wallets []*domain.Wallet
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("currency ASC").
		Find(&wallets).Error
	return wallets, err
}

// Create creates a new wallet
func (r *WalletRepository) Create(ctx context.Context, wallet *domain.Wallet) error {
	if wallet.ID == "" {
		wallet.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	wallet.CreatedAt, wallet.UpdatedAt = now, now
	return translateError("create wallet", r.db.WithContext(ctx).Create(wallet).Error)
}

// Update writes the wallet balances
func (r *WalletRepository) Update(ctx context.Context, wallet *domain.Wallet) error {
	wallet.UpdatedAt = time.Now().UTC()
	result := r.db.WithContext(ctx).
		Model(&domain.Wallet{}).
		Where("id = ?", wallet.ID).
		Updates(map[string]interface{}{
			"available_balance": wallet.AvailableBalance,
			"locked_balance":    wallet.LockedBalance,
			"updated_at":        wallet.UpdatedAt,
		})
	if result.Error != nil {
		return translateError("update wallet", result.Error)
	}
	if result.RowsAffected == 0 {
		return translateError("update wallet", gorm.ErrRecordNotFound)
	}
	return nil
}
