package wallet

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/saradorri/fairplay/internal/domain"
	"github.com/saradorri/fairplay/internal/infrastructure/logger"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	defaultListLimit = 50
	maxListLimit     = 200
	maxTxHashLength  = 128
)

// WalletUseCase implements domain.WalletUseCase
type WalletUseCase struct {
	store  domain.Store
	logger *logger.Logger
}

// NewWalletUseCase creates a new wallet use case
func NewWalletUseCase(store domain.Store, logger *logger.Logger) domain.WalletUseCase {
	return &WalletUseCase{
		store:  store,
		logger: logger.Named("wallet"),
	}
}

// RequestDeposit records a deposit awaiting admin review. The balance is untouched.
func (uc *WalletUseCase) RequestDeposit(ctx context.Context, userID, currency string, amount decimal.Decimal, txHash string) (*domain.Transaction, error) {
	log := uc.logger.WithContext(ctx)
	if err := validateDeposit(currency, amount, txHash); err != nil {
		log.Warn("Deposit request rejected", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	var deposit *domain.Transaction
	err := uc.store.Atomic(ctx, func(repos domain.Repositories) error {
		wallet, err := repos.Wallets().Get(ctx, userID, currency)
		if err != nil {
			return err
		}
		if wallet == nil {
			return domain.NewNotFoundError("Wallet")
		}

		deposit = &domain.Transaction{
			UserID:        userID,
			Type:          domain.TransactionTypeDeposit,
			Currency:      currency,
			Amount:        amount,
			BalanceBefore: wallet.AvailableBalance,
			BalanceAfter:  wallet.AvailableBalance,
			Status:        domain.TransactionStatusPending,
			Metadata:      domain.JSONB{"tx_hash": strings.TrimSpace(txHash)},
		}
		return repos.Transactions().Create(ctx, deposit)
	})
	if err != nil {
		return nil, uc.fail(log, "request deposit", err)
	}

	log.Info("Deposit requested",
		zap.String("user_id", userID),
		zap.String("transaction_id", deposit.ID),
		zap.String("currency", currency),
		zap.String("amount", amount.String()))
	return deposit, nil
}

// ApproveDeposit completes a pending deposit and credits the wallet
func (uc *WalletUseCase) ApproveDeposit(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	log := uc.logger.WithContext(ctx)

	var deposit *domain.Transaction
	err := uc.store.Atomic(ctx, func(repos domain.Repositories) error {
		var err error
		deposit, err = pendingDeposit(ctx, repos, transactionID)
		if err != nil {
			return err
		}

		wallet, err := repos.Wallets().GetForUpdate(ctx, deposit.UserID, deposit.Currency)
		if err != nil {
			return err
		}
		if wallet == nil {
			return domain.NewNotFoundError("Wallet")
		}

		now := time.Now().UTC()
		deposit.Status = domain.TransactionStatusCompleted
		deposit.BalanceBefore = wallet.AvailableBalance
		deposit.BalanceAfter = wallet.AvailableBalance.Add(deposit.Amount)
		deposit.CompletedAt = &now
		if err := repos.Transactions().Update(ctx, deposit); err != nil {
			return err
		}

		wallet.AvailableBalance = deposit.BalanceAfter
		if err := repos.Wallets().Update(ctx, wallet); err != nil {
			return err
		}

		return repos.Outbox().Save(ctx, domain.NewOutboxEvent(domain.EventTypeDepositApproved, domain.JSONB{
			"transaction_id": deposit.ID,
			"user_id":        deposit.UserID,
			"currency":       deposit.Currency,
			"amount":         deposit.Amount.String(),
			"balance":        wallet.AvailableBalance.String(),
		}))
	})
	if err != nil {
		return nil, uc.fail(log, "approve deposit", err)
	}

	log.Info("Deposit approved",
		zap.String("transaction_id", deposit.ID),
		zap.String("user_id", deposit.UserID),
		zap.String("balance_after", deposit.BalanceAfter.String()))
	return deposit, nil
}

// DeclineDeposit marks a pending deposit as failed
func (uc *WalletUseCase) DeclineDeposit(ctx context.Context, transactionID, reason string) (*domain.Transaction, error) {
	log := uc.logger.WithContext(ctx)

	var deposit *domain.Transaction
	err := uc.store.Atomic(ctx, func(repos domain.Repositories) error {
		var err error
		deposit, err = pendingDeposit(ctx, repos, transactionID)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		deposit.Status = domain.TransactionStatusFailed
		deposit.CompletedAt = &now
		if deposit.Metadata == nil {
			deposit.Metadata = domain.JSONB{}
		}
		if reason = strings.TrimSpace(reason); reason != "" {
			deposit.Metadata["decline_reason"] = reason
		}
		if err := repos.Transactions().Update(ctx, deposit); err != nil {
			return err
		}

		return repos.Outbox().Save(ctx, domain.NewOutboxEvent(domain.EventTypeDepositDeclined, domain.JSONB{
			"transaction_id": deposit.ID,
			"user_id":        deposit.UserID,
			"currency":       deposit.Currency,
			"amount":         deposit.Amount.String(),
			"reason":         reason,
		}))
	})
	if err != nil {
		return nil, uc.fail(log, "decline deposit", err)
	}

	log.Info("Deposit declined",
		zap.String("transaction_id", deposit.ID),
		zap.String("user_id", deposit.UserID),
		zap.String("reason", reason))
	return deposit, nil
}

// ListPendingDeposits lists deposits awaiting review, oldest first
func (uc *WalletUseCase) ListPendingDeposits(ctx context.Context, limit int) ([]*domain.Transaction, error) {
	deposits, err := uc.store.Transactions().ListPendingDeposits(ctx, clampLimit(limit))
	if err != nil {
		return nil, uc.fail(uc.logger, "list pending deposits", err)
	}
	return deposits, nil
}

// Transactions lists a user's ledger entries, newest first. An empty currency lists all of them.
func (uc *WalletUseCase) Transactions(ctx context.Context, userID, currency string, limit int) ([]*domain.Transaction, error) {
	if currency != "" && !domain.IsSupportedCurrency(currency) {
		return nil, domain.NewValidationError("currency", fmt.Sprintf("unsupported currency %q", currency))
	}
	items, err := uc.store.Transactions().ListByUser(ctx, userID, currency, clampLimit(limit))
	if err != nil {
		return nil, uc.fail(uc.logger, "list transactions", err)
	}
	return items, nil
}

func pendingDeposit(ctx context.Context, repos domain.Repositories, transactionID string) (*domain.Transaction, error) {
	deposit, err := repos.Transactions().GetByIDForUpdate(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if deposit == nil || deposit.Type != domain.TransactionTypeDeposit {
		return nil, domain.NewNotFoundError("Deposit")
	}
	if deposit.Status != domain.TransactionStatusPending {
		return nil, domain.NewInvalidArgumentError(
			fmt.Sprintf("Deposit is %s, only PENDING deposits can be reviewed", deposit.Status), nil)
	}
	return deposit, nil
}

func validateDeposit(currency string, amount decimal.Decimal, txHash string) error {
	if !domain.IsSupportedCurrency(currency) {
		return domain.NewValidationError("currency", fmt.Sprintf("unsupported currency %q", currency))
	}
	if !amount.IsPositive() {
		return domain.NewValidationError("amount", "must be greater than 0")
	}
	if !amount.Equal(amount.Truncate(8)) {
		return domain.NewValidationError("amount", "cannot have more than 8 decimal places")
	}
	if len(strings.TrimSpace(txHash)) > maxTxHashLength {
		return domain.NewValidationError("tx_hash", fmt.Sprintf("must be at most %d characters", maxTxHashLength))
	}
	return nil
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return defaultListLimit
	}
	if limit > maxListLimit {
		return maxListLimit
	}
	return limit
}

// fail passes domain errors through and wraps everything else as a database error
func (uc *WalletUseCase) fail(log *logger.Logger, operation string, err error) error {
	if appErr, ok := domain.IsAppError(err); ok {
		log.Warn("Wallet operation rejected", zap.String("operation", operation), zap.String("code", appErr.Code))
		return appErr
	}
	log.Error("Wallet operation failed", zap.String("operation", operation), zap.Error(err))
	return domain.NewDatabaseError(operation, err)
}
