//go:build integration

package repository

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/saradorri/fairplay/internal/domain"
	"github.com/saradorri/fairplay/internal/infrastructure/database"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

func setupStore(t *testing.T) *Store {
	t.Helper()
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("fairplay_test"),
		postgres.WithUsername("test_user"),
		postgres.WithPassword("test_password"),
		postgres.BasicWaitStrategies(),
		testcontainers.WithLabels(map[string]string{"test": "fairplay-repository"}),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	url, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)
	require.NoError(t, database.RunMigrationsWithURL(url))

	db, err := database.Open(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return NewStore(db.GetDB())
}

func createUser(t *testing.T, store *Store, address string) (*domain.User, *domain.Wallet) {
	t.Helper()
	ctx := context.Background()
	user := &domain.User{WalletAddress: address}
	require.NoError(t, store.Users().Create(ctx, user))
	wallet := &domain.Wallet{UserID: user.ID, Currency: domain.CurrencyETH, AvailableBalance: decimal.NewFromInt(10)}
	require.NoError(t, store.Wallets().Create(ctx, wallet))
	return user, wallet
}

func createSeed(t *testing.T, store *Store) *domain.ServerSeed {
	t.Helper()
	seed := &domain.ServerSeed{
		SeedValue:     "seed",
		SeedHash:      "6ca13d52ca70c883e0f0bb101e425a89e8624de51db2d2392593af6a84118090",
		NextSeedValue: "next",
		NextSeedHash:  "6ca13d52ca70c883e0f0bb101e425a89e8624de51db2d2392593af6a84118090",
		IsActive:      true,
	}
	require.NoError(t, store.ServerSeeds().Create(context.Background(), seed))
	return seed
}

func TestStoreIntegration(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	t.Run("duplicate wallet address", func(t *testing.T) {
		createUser(t, store, "0x00000000000000000000000000000000000000a1")
		err := store.Users().Create(ctx, &domain.User{WalletAddress: "0x00000000000000000000000000000000000000a1"})
		assert.ErrorIs(t, err, domain.ErrDuplicate)
	})

	t.Run("atomic rolls back", func(t *testing.T) {
		user, wallet := createUser(t, store, "0x00000000000000000000000000000000000000a2")
		boom := errors.New("boom")

		err := store.Atomic(ctx, func(repos domain.Repositories) error {
			locked, err := repos.Wallets().GetForUpdate(ctx, user.ID, domain.CurrencyETH)
			if err != nil {
				return err
			}
			locked.AvailableBalance = decimal.Zero
			if err := repos.Wallets().Update(ctx, locked); err != nil {
				return err
			}
			return boom
		})
		assert.ErrorIs(t, err, boom)

		reloaded, err := store.Wallets().Get(ctx, user.ID, domain.CurrencyETH)
		require.NoError(t, err)
		assert.True(t, reloaded.AvailableBalance.Equal(wallet.AvailableBalance))
	})

	t.Run("negative balance rejected by check constraint", func(t *testing.T) {
		user, _ := createUser(t, store, "0x00000000000000000000000000000000000000a3")
		wallet, err := store.Wallets().Get(ctx, user.ID, domain.CurrencyETH)
		require.NoError(t, err)
		wallet.AvailableBalance = decimal.NewFromInt(-1)
		assert.Error(t, store.Wallets().Update(ctx, wallet))
	})

	t.Run("single active seed and nonces", func(t *testing.T) {
		seed := createSeed(t, store)
		err := store.ServerSeeds().Create(ctx, &domain.ServerSeed{SeedValue: "x", SeedHash: seed.SeedHash, NextSeedValue: "y", NextSeedHash: seed.SeedHash, IsActive: true})
		assert.ErrorIs(t, err, domain.ErrDuplicate)

		user, _ := createUser(t, store, "0x00000000000000000000000000000000000000a4")
		next, err := store.GameSessions().NextNonce(ctx, user.ID, seed.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(0), next)

		session := func(nonce int64) *domain.GameSession {
			return &domain.GameSession{
				UserID: user.ID, ServerSeedID: seed.ID, ClientSeed: "c", Nonce: nonce, Game: "dice",
				BetAmount: decimal.NewFromInt(1), Currency: domain.CurrencyETH, Outcome: 49.45,
				Multiplier: decimal.RequireFromString("1.98"), WinAmount: decimal.Zero,
				Status: domain.GameSessionPending, GameData: domain.JSONB{"target": 50.0},
			}
		}
		require.NoError(t, store.GameSessions().Create(ctx, session(0)))
		assert.ErrorIs(t, store.GameSessions().Create(ctx, session(0)), domain.ErrDuplicate)

		next, err = store.GameSessions().NextNonce(ctx, user.ID, seed.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), next)

		sessions, err := store.GameSessions().ListByUser(ctx, user.ID, 10)
		require.NoError(t, err)
		require.Len(t, sessions, 1)
		assert.Equal(t, 49.45, sessions[0].Outcome)
		assert.Equal(t, 50.0, sessions[0].GameData["target"])

		now := time.Now().UTC()
		seed.IsActive = false
		seed.RotatedAt = &now
		require.NoError(t, store.ServerSeeds().Update(ctx, seed))
		rotated, err := store.ServerSeeds().ListRotated(ctx, 5)
		require.NoError(t, err)
		require.NotEmpty(t, rotated)
		assert.Equal(t, seed.ID, rotated[0].ID)
	})

	t.Run("ledger order follows seq", func(t *testing.T) {
		user, _ := createUser(t, store, "0x00000000000000000000000000000000000000a5")
		for i := 1; i <= 3; i++ {
			tx := &domain.Transaction{
				UserID: user.ID, Type: domain.TransactionTypeDeposit, Currency: domain.CurrencyETH,
				Amount: decimal.NewFromInt(int64(i)), Status: domain.TransactionStatusCompleted,
			}
			require.NoError(t, store.Transactions().Create(ctx, tx))
			assert.NotZero(t, tx.Seq)
		}

		ledger, err := store.Transactions().ListLedger(ctx, user.ID, domain.CurrencyETH)
		require.NoError(t, err)
		require.Len(t, ledger, 3)
		assert.Less(t, ledger[0].Seq, ledger[2].Seq)

		newest, err := store.Transactions().ListByUser(ctx, user.ID, "", 1)
		require.NoError(t, err)
		require.Len(t, newest, 1)
		assert.Equal(t, "3", newest[0].Amount.String())
	})

	t.Run("row lock serializes writers", func(t *testing.T) {
		user, _ := createUser(t, store, "0x00000000000000000000000000000000000000a6")
		const writers = 5

		var wg sync.WaitGroup
		for i := 0; i < writers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				err := store.Atomic(ctx, func(repos domain.Repositories) error {
					wallet, err := repos.Wallets().GetForUpdate(ctx, user.ID, domain.CurrencyETH)
					if err != nil {
						return err
					}
					wallet.AvailableBalance = wallet.AvailableBalance.Sub(decimal.NewFromInt(1))
					return repos.Wallets().Update(ctx, wallet)
				})
				assert.NoError(t, err)
			}()
		}
		wg.Wait()

		wallet, err := store.Wallets().Get(ctx, user.ID, domain.CurrencyETH)
		require.NoError(t, err)
		assert.Equal(t, "5", wallet.AvailableBalance.String())
	})

	t.Run("outbox lifecycle", func(t *testing.T) {
		event := domain.NewOutboxEvent(domain.EventTypeBetSettled, domain.JSONB{"amount": "1"})
		require.NoError(t, store.Outbox().Save(ctx, event))
		require.NoError(t, store.Outbox().IncrementRetryCount(ctx, event.ID))

		pending, err := store.Outbox().GetPendingEvents(ctx, 10)
		require.NoError(t, err)
		require.Len(t, pending, 1)
		assert.Equal(t, 1, pending[0].RetryCount)

		require.NoError(t, store.Outbox().MarkAsProcessed(ctx, event.ID))
		assert.Error(t, store.Outbox().MarkAsProcessed(ctx, "missing"))
	})
}
