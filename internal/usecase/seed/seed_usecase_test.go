package seed

import (
	"context"
	"sync"
	"testing"

	"github.com/saradorri/fairplay/internal/domain"
	"github.com/saradorri/fairplay/internal/fairness"
	"github.com/saradorri/fairplay/internal/infrastructure/logger"
	"github.com/saradorri/fairplay/internal/infrastructure/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUseCase(t *testing.T) (domain.SeedUseCase, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	return NewSeedUseCase(store, 0, logger.NewNop()), store
}

func TestInitialize(t *testing.T) {
	ctx := context.Background()
	uc, _ := newUseCase(t)

	first, err := uc.Initialize(ctx)
	require.NoError(t, err)
	assert.True(t, first.IsActive)
	assert.Len(t, first.SeedValue, fairness.DefaultSeedLength*2)
	assert.Equal(t, fairness.HashSeed(first.SeedValue), first.SeedHash)
	assert.Equal(t, fairness.HashSeed(first.NextSeedValue), first.NextSeedHash)
	assert.NotEqual(t, first.SeedValue, first.NextSeedValue)

	again, err := uc.Initialize(ctx)
	require.NoError(t, err)
	assert.Equal(t, first.ID, again.ID)
}

func TestInitializeConcurrently(t *testing.T) {
	ctx := context.Background()
	uc, _ := newUseCase(t)

	const workers = 8
	ids := make([]string, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			seed, err := uc.Initialize(ctx)
			if assert.NoError(t, err) {
				ids[i] = seed.ID
			}
		}(i)
	}
	wg.Wait()

	for _, id := range ids {
		assert.Equal(t, ids[0], id)
	}
}

func TestGetActiveSelfHeals(t *testing.T) {
	ctx := context.Background()
	uc, store := newUseCase(t)

	active, err := uc.GetActive(ctx)
	require.NoError(t, err)
	require.NotNil(t, active)

	stored, err := store.ServerSeeds().GetActive(ctx)
	require.NoError(t, err)
	assert.Equal(t, active.ID, stored.ID)
}

func TestRotate(t *testing.T) {
	ctx := context.Background()
	uc, store := newUseCase(t)

	original, err := uc.Initialize(ctx)
	require.NoError(t, err)

	result, err := uc.Rotate(ctx)
	require.NoError(t, err)

	assert.Equal(t, original.ID, result.Revealed.ID)
	assert.Equal(t, original.SeedValue, result.Revealed.ServerSeed)
	assert.False(t, result.Revealed.IsActive)
	assert.NotNil(t, result.Revealed.RotatedAt)

	assert.True(t, result.Active.IsActive)
	assert.Equal(t, original.NextSeedHash, result.Active.SeedHash)
	assert.Empty(t, result.Active.ServerSeed)

	active, err := store.ServerSeeds().GetActive(ctx)
	require.NoError(t, err)
	assert.Equal(t, original.NextSeedValue, active.SeedValue)
	assert.Equal(t, fairness.HashSeed(active.NextSeedValue), active.NextSeedHash)

	events, err := store.Outbox().GetPendingEvents(ctx, 10)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, domain.EventTypeSeedRotated, events[0].Type)
	assert.Equal(t, original.SeedValue, events[0].Data["server_seed"])

	history, err := uc.History(ctx, 0)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, original.SeedValue, history[0].ServerSeed)
}

func TestRotateRejectsTamperedCommitment(t *testing.T) {
	ctx := context.Background()
	uc, store := newUseCase(t)

	original, err := uc.Initialize(ctx)
	require.NoError(t, err)

	tampered := *original
	tampered.NextSeedValue = "not-what-was-committed"
	require.NoError(t, store.ServerSeeds().Update(ctx, &tampered))

	_, err = uc.Rotate(ctx)
	require.Error(t, err)
	assert.True(t, domain.HasCode(err, domain.ErrCodeSeedIntegrity))

	active, err := store.ServerSeeds().GetActive(ctx)
	require.NoError(t, err)
	assert.Equal(t, original.ID, active.ID)

	events, err := store.Outbox().GetPendingEvents(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestRotateWithoutActiveSeed(t *testing.T) {
	uc, _ := newUseCase(t)

	_, err := uc.Rotate(context.Background())
	assert.True(t, domain.HasCode(err, domain.ErrCodeNotFound))
}

func TestRotationChainKeepsCommitments(t *testing.T) {
	ctx := context.Background()
	uc, _ := newUseCase(t)

	_, err := uc.Initialize(ctx)
	require.NoError(t, err)

	var previous *domain.RotationResult
	for i := 0; i < 3; i++ {
		result, err := uc.Rotate(ctx)
		require.NoError(t, err)
		assert.Equal(t, fairness.HashSeed(result.Revealed.ServerSeed), result.Revealed.SeedHash)
		if previous != nil {
			assert.Equal(t, previous.Active.ID, result.Revealed.ID)
			assert.Equal(t, previous.Active.NextSeedHash, result.Active.SeedHash)
		}
		previous = result
	}

	history, err := uc.History(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, history, 2)
}
