package wallet

import (
	"context"
	"testing"
	"time"

	"github.com/saradorri/fairplay/internal/domain"
	"github.com/saradorri/fairplay/internal/fairness"
	"github.com/saradorri/fairplay/internal/games"
	"github.com/saradorri/fairplay/internal/infrastructure/lock"
	"github.com/saradorri/fairplay/internal/infrastructure/logger"
	"github.com/saradorri/fairplay/internal/infrastructure/repository/memory"
	"github.com/saradorri/fairplay/internal/usecase/bet"
	"github.com/saradorri/fairplay/internal/usecase/seed"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const userID = "user-1"

func setup(t *testing.T) (domain.WalletUseCase, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	for _, c := range domain.SupportedCurrencies {
		require.NoError(t, store.Wallets().Create(context.Background(), &domain.Wallet{UserID: userID, Currency: c}))
	}
	return NewWalletUseCase(store, logger.NewNop()), store
}

func balance(t *testing.T, store *memory.Store, currency string) string {
	t.Helper()
	w, err := store.Wallets().Get(context.Background(), userID, currency)
	require.NoError(t, err)
	return w.AvailableBalance.String()
}

func TestDepositApproval(t *testing.T) {
	ctx := context.Background()
	uc, store := setup(t)

	deposit, err := uc.RequestDeposit(ctx, userID, domain.CurrencyBTC, decimal.RequireFromString("0.5"), "0xfeed")
	require.NoError(t, err)
	assert.Equal(t, domain.TransactionStatusPending, deposit.Status)
	assert.Equal(t, "0xfeed", deposit.Metadata["tx_hash"])
	assert.Equal(t, "0", balance(t, store, domain.CurrencyBTC))

	pending, err := uc.ListPendingDeposits(ctx, 0)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, deposit.ID, pending[0].ID)

	approved, err := uc.ApproveDeposit(ctx, deposit.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TransactionStatusCompleted, approved.Status)
	assert.Equal(t, "0", approved.BalanceBefore.String())
	assert.Equal(t, "0.5", approved.BalanceAfter.String())
	assert.NotNil(t, approved.CompletedAt)
	assert.Equal(t, "0.5", balance(t, store, domain.CurrencyBTC))

	_, err = uc.ApproveDeposit(ctx, deposit.ID)
	assert.True(t, domain.HasCode(err, domain.ErrCodeInvalidArgument))
	assert.Equal(t, "0.5", balance(t, store, domain.CurrencyBTC))

	pending, err = uc.ListPendingDeposits(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, pending)

	events, err := store.Outbox().GetPendingEvents(ctx, 10)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, domain.EventTypeDepositApproved, events[0].Type)

	report, err := uc.Audit(ctx, userID, domain.CurrencyBTC)
	require.NoError(t, err)
	assert.True(t, report.Consistent, "%+v", report.Issues)
	assert.Equal(t, 1, report.Transactions)
}

func TestDepositDecline(t *testing.T) {
	ctx := context.Background()
	uc, store := setup(t)

	deposit, err := uc.RequestDeposit(ctx, userID, domain.CurrencyUSDT, decimal.NewFromInt(25), "")
	require.NoError(t, err)

	declined, err := uc.DeclineDeposit(ctx, deposit.ID, "hash not found on chain")
	require.NoError(t, err)
	assert.Equal(t, domain.TransactionStatusFailed, declined.Status)
	assert.Equal(t, "hash not found on chain", declined.Metadata["decline_reason"])
	assert.Equal(t, "0", balance(t, store, domain.CurrencyUSDT))

	_, err = uc.ApproveDeposit(ctx, deposit.ID)
	assert.True(t, domain.HasCode(err, domain.ErrCodeInvalidArgument))

	_, err = uc.DeclineDeposit(ctx, "missing", "")
	assert.True(t, domain.HasCode(err, domain.ErrCodeNotFound))

	events, err := store.Outbox().GetPendingEvents(ctx, 10)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, domain.EventTypeDepositDeclined, events[0].Type)
}

func TestRequestDepositValidation(t *testing.T) {
	uc, _ := setup(t)

	tests := []struct {
		name     string
		user     string
		currency string
		amount   string
		code     string
	}{
		{"unsupported currency", userID, "DOGE", "1", domain.ErrCodeInvalidArgument},
		{"zero amount", userID, domain.CurrencyETH, "0", domain.ErrCodeInvalidArgument},
		{"negative amount", userID, domain.CurrencyETH, "-3", domain.ErrCodeInvalidArgument},
		{"nine decimals", userID, domain.CurrencyETH, "0.123456789", domain.ErrCodeInvalidArgument},
		{"unknown user", "nobody", domain.CurrencyETH, "1", domain.ErrCodeNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.RequestDeposit(context.Background(), tt.user, tt.currency, decimal.RequireFromString(tt.amount), "")
			assert.True(t, domain.HasCode(err, tt.code), "got %v", err)
		})
	}
}

func TestLateApprovalKeepsLedgerChain(t *testing.T) {
	ctx := context.Background()
	uc, store := setup(t)

	first, err := uc.RequestDeposit(ctx, userID, domain.CurrencyETH, decimal.NewFromInt(10), "")
	require.NoError(t, err)
	_, err = uc.ApproveDeposit(ctx, first.ID)
	require.NoError(t, err)

	late, err := uc.RequestDeposit(ctx, userID, domain.CurrencyETH, decimal.NewFromInt(5), "")
	require.NoError(t, err)

	require.NoError(t, store.ServerSeeds().Create(ctx, &domain.ServerSeed{
		SeedValue:     "abc123",
		SeedHash:      fairness.HashSeed("abc123"),
		NextSeedValue: "n",
		NextSeedHash:  fairness.HashSeed("n"),
		IsActive:      true,
	}))
	bets := bet.NewBetUseCase(store,
		seed.NewSeedUseCase(store, 0, logger.NewNop()),
		lock.NewUserLockManager(time.Second, logger.NewNop()),
		bet.DefaultConfig(),
		logger.NewNop())
	for i := 0; i < 3; i++ {
		_, err := bets.PlaceBet(ctx, domain.PlaceBetRequest{
			UserID:     userID,
			Amount:     decimal.NewFromInt(1),
			Currency:   domain.CurrencyETH,
			ClientSeed: "player1",
			Spec:       games.Dice{Target: 50},
		})
		require.NoError(t, err)
	}

	_, err = uc.ApproveDeposit(ctx, late.ID)
	require.NoError(t, err)

	report, err := uc.Audit(ctx, userID, domain.CurrencyETH)
	require.NoError(t, err)
	assert.True(t, report.Consistent, "%+v", report.Issues)
	assert.Equal(t, 8, report.Transactions)
	assert.True(t, report.LedgerSum.Equal(report.AvailableBalance))

	history, err := uc.Transactions(ctx, userID, domain.CurrencyETH, 1)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, late.ID, history[0].ID)
}

func TestAuditDetectsTampering(t *testing.T) {
	ctx := context.Background()
	uc, store := setup(t)

	deposit, err := uc.RequestDeposit(ctx, userID, domain.CurrencyETH, decimal.NewFromInt(3), "")
	require.NoError(t, err)
	_, err = uc.ApproveDeposit(ctx, deposit.ID)
	require.NoError(t, err)

	wallet, err := store.Wallets().Get(ctx, userID, domain.CurrencyETH)
	require.NoError(t, err)
	wallet.AvailableBalance = decimal.NewFromInt(30)
	require.NoError(t, store.Wallets().Update(ctx, wallet))

	report, err := uc.Audit(ctx, userID, domain.CurrencyETH)
	require.NoError(t, err)
	assert.False(t, report.Consistent)
	require.Len(t, report.Issues, 1)
	assert.Empty(t, report.Issues[0].TransactionID)

	_, err = uc.Audit(ctx, "nobody", domain.CurrencyETH)
	assert.True(t, domain.HasCode(err, domain.ErrCodeNotFound))
}

func TestTransactionsRejectsUnknownCurrency(t *testing.T) {
	uc, _ := setup(t)
	_, err := uc.Transactions(context.Background(), userID, "XRP", 0)
	assert.True(t, domain.HasCode(err, domain.ErrCodeInvalidArgument))
}
