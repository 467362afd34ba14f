package domain

import (
	"context"
	"time"
)

// User represents a player identified by an external wallet address
type User struct {
	ID            string    `json:"id" gorm:"primaryKey;column:id;type:uuid"`
	WalletAddress string    `json:"wallet_address" gorm:"uniqueIndex;not null;type:varchar(42)"`
	Username      string    `json:"username" gorm:"type:varchar(64)"`
	CreatedAt     time.Time `json:"created_at" gorm:"not null"`
	UpdatedAt     time.Time `json:"updated_at" gorm:"not null"`
}

// TableName specifies the table name for User
func (u User) TableName() string {
	return "users"
}

// UserRepository defines the interface for user data
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*User, error)
	GetByWalletAddress(ctx context.Context, address string) (*User, error)
	Create(ctx context.Context, user *User) error
}

// Profile is a user with all of its wallets
type Profile struct {
	User    *User     `json:"user"`
	Wallets []*Wallet `json:"wallets"`
}

// ConnectResult is returned after a wallet address signs in
type ConnectResult struct {
	Token   string   `json:"token"`
	Profile *Profile `json:"profile"`
	Created bool     `json:"created"`
}

// UserUseCase defines the interface for user business logic
type UserUseCase interface {
	Connect(ctx context.Context, walletAddress string) (*ConnectResult, error)
	GetProfile(ctx context.Context, userID string) (*Profile, error)
}
