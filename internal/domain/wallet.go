package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Supported currencies. Every user receives one wallet per currency.
const (
	CurrencyETH  = "ETH"
	CurrencyBTC  = "BTC"
	CurrencyUSDT = "USDT"
)

// SupportedCurrencies lists the wallet currencies created on connect
var SupportedCurrencies = []string{CurrencyETH, CurrencyBTC, CurrencyUSDT}

// IsSupportedCurrency reports whether currency is one of SupportedCurrencies
func IsSupportedCurrency(currency string) bool {
	for _, c := range SupportedCurrencies {
		if c == currency {
			return true
		}
	}
	return false
}

// Wallet holds a user's balance in one currency. AvailableBalance is never
// negative and equals the sum of the user's completed transactions.
type Wallet struct {
	ID               string          `json:"id" gorm:"primaryKey;column:id;type:uuid"`
	UserID           string          `json:"user_id" gorm:"not null;type:uuid;uniqueIndex:idx_wallets_user_currency"`
	Currency         string          `json:"currency" gorm:"not null;type:varchar(8);uniqueIndex:idx_wallets_user_currency"`
	AvailableBalance decimal.Decimal `json:"available_balance" gorm:"type:numeric(30,8);not null;default:0"`
	LockedBalance    decimal.Decimal `json:"locked_balance" gorm:"type:numeric(30,8);not null;default:0"`
	CreatedAt        time.Time       `json:"created_at" gorm:"not null"`
	UpdatedAt        time.Time       `json:"updated_at" gorm:"not null"`
}

// TableName specifies the table name for Wallet
func (w Wallet) TableName() string {
	return "wallets"
}

// WalletRepository defines the interface for wallet data
type WalletRepository interface {
	Get(ctx context.Context, userID, currency string) (*Wallet, error)
	GetForUpdate(ctx context.Context, userID, currency string) (*Wallet, error)
	ListByUser(ctx context.Context, userID string) ([]*Wallet, error)
	Create(ctx context.Context, wallet *Wallet) error
	Update(ctx context.Context, wallet *Wallet) error
}

// AuditIssue describes one ledger inconsistency
type AuditIssue struct {
	TransactionID string `json:"transaction_id,omitempty"`
	Problem       string `json:"problem"`
}

// AuditReport compares a wallet balance with its ledger
type AuditReport struct {
	UserID           string          `json:"user_id"`
	Currency         string          `json:"currency"`
	AvailableBalance decimal.Decimal `json:"available_balance"`
	LedgerSum        decimal.Decimal `json:"ledger_sum"`
	Transactions     int             `json:"transactions"`
	Consistent       bool            `json:"consistent"`
	Issues           []AuditIssue    `json:"issues"`
}

// WalletUseCase defines deposits, admin approval and ledger inspection
type WalletUseCase interface {
	RequestDeposit(ctx context.Context, userID, currency string, amount decimal.Decimal, txHash string) (*Transaction, error)
	ApproveDeposit(ctx context.Context, transactionID string) (*Transaction, error)
	DeclineDeposit(ctx context.Context, transactionID, reason string) (*Transaction, error)
	ListPendingDeposits(ctx context.Context, limit int) ([]*Transaction, error)
	Transactions(ctx context.Context, userID, currency string, limit int) ([]*Transaction, error)
	Audit(ctx context.Context, userID, currency string) (*AuditReport, error)
}
