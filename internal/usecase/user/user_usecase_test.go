package user

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/saradorri/fairplay/internal/config"
	"github.com/saradorri/fairplay/internal/domain"
	"github.com/saradorri/fairplay/internal/domain/mocks"
	"github.com/saradorri/fairplay/internal/infrastructure/auth"
	"github.com/saradorri/fairplay/internal/infrastructure/logger"
	"github.com/saradorri/fairplay/internal/infrastructure/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const address = "0xAbCdEf0123456789abcdef0123456789ABCDEF01"

func setup() (domain.UserUseCase, *memory.Store, auth.JWTService) {
	store := memory.NewStore()
	jwtSvc := auth.NewJWTService(&config.JWTConfig{Secret: "test", Expiry: time.Hour})
	return NewUserUseCase(store, jwtSvc, logger.NewNop()), store, jwtSvc
}

func TestConnectRegistersOnce(t *testing.T) {
	ctx := context.Background()
	uc, _, jwtSvc := setup()

	first, err := uc.Connect(ctx, address)
	require.NoError(t, err)
	assert.True(t, first.Created)
	assert.Equal(t, "0xabcdef0123456789abcdef0123456789abcdef01", first.Profile.User.WalletAddress)
	require.Len(t, first.Profile.Wallets, len(domain.SupportedCurrencies))
	for _, w := range first.Profile.Wallets {
		assert.True(t, w.AvailableBalance.IsZero())
	}

	claims, err := jwtSvc.ValidateToken(first.Token)
	require.NoError(t, err)
	assert.Equal(t, first.Profile.User.ID, claims.UserID)

	second, err := uc.Connect(ctx, "  "+address+" ")
	require.NoError(t, err)
	assert.False(t, second.Created)
	assert.Equal(t, first.Profile.User.ID, second.Profile.User.ID)
	assert.Len(t, second.Profile.Wallets, len(domain.SupportedCurrencies))
}

func TestConnectConcurrent(t *testing.T) {
	ctx := context.Background()
	uc, _, _ := setup()

	const n = 10
	ids := make([]string, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			res, err := uc.Connect(ctx, address)
			if assert.NoError(t, err) {
				ids[i] = res.Profile.User.ID
			}
		}(i)
	}
	wg.Wait()

	for _, id := range ids {
		assert.Equal(t, ids[0], id)
	}
}

func TestConnectRejectsMalformedAddress(t *testing.T) {
	uc, _, _ := setup()
	for _, addr := range []string{"", "0x123", "abcdef0123456789abcdef0123456789abcdef0123", "0xZZcdef0123456789abcdef0123456789abcdef01"} {
		_, err := uc.Connect(context.Background(), addr)
		assert.True(t, domain.HasCode(err, domain.ErrCodeInvalidArgument), addr)
	}
}

func TestConnectRetriesDuplicate(t *testing.T) {
	ctrl := gomock.NewController(t)
	ctx := context.Background()
	mem := memory.NewStore()
	store := mocks.NewMockStore(ctrl)
	jwtSvc := auth.NewJWTService(&config.JWTConfig{Secret: "test", Expiry: time.Hour})
	uc := NewUserUseCase(store, jwtSvc, logger.NewNop())

	gomock.InOrder(
		store.EXPECT().Atomic(gomock.Any(), gomock.Any()).Return(domain.ErrDuplicate),
		store.EXPECT().Atomic(gomock.Any(), gomock.Any()).DoAndReturn(mem.Atomic),
	)
	store.EXPECT().Users().Return(mem.Users()).AnyTimes()
	store.EXPECT().Wallets().Return(mem.Wallets()).AnyTimes()

	res, err := uc.Connect(ctx, address)
	require.NoError(t, err)
	assert.True(t, res.Created)
}

func TestGetProfileNotFound(t *testing.T) {
	uc, _, _ := setup()
	_, err := uc.GetProfile(context.Background(), "missing")
	assert.True(t, domain.HasCode(err, domain.ErrCodeNotFound))
}
