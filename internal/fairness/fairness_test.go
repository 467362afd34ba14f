package fairness

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateOutcomeGoldenVectors(t *testing.T) {
	tests := []struct {
		name       string
		serverSeed string
		clientSeed string
		nonce      int64
		hmac       string
		hex        string
		outcome    float64
	}{
		{
			name:       "abc123_player1_0",
			serverSeed: "abc123",
			clientSeed: "player1",
			nonce:      0,
			hmac:       "4b7a95d1999ec49d625472247e26cd5d181f04b674d8f98ce663ea26f5deb9cd",
			hex:        "4b7a95d1",
			outcome:    49.45,
		},
		{
			name:       "abc123_player1_1",
			serverSeed: "abc123",
			clientSeed: "player1",
			nonce:      1,
			hmac:       "0462ac2a28c10c840bc5dac72330253fc1db64a62ad90a10b96080c020b0f05b",
			hex:        "0462ac2a",
			outcome:    54.66,
		},
		{
			name:       "server-seed_client-seed_42",
			serverSeed: "server-seed",
			clientSeed: "client-seed",
			nonce:      42,
			hmac:       "1517f290c19f948b320afa5bb7121d342f15dac89ad8e43e72d5a108bfce3ce8",
			hex:        "1517f290",
			outcome:    9.6,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := CalculateOutcome(tt.serverSeed, tt.clientSeed, tt.nonce)
			require.NoError(t, err)
			assert.Equal(t, tt.hmac, result.HMAC)
			assert.Equal(t, tt.hex, result.Hex)
			assert.Equal(t, FormatOutcome(tt.outcome), FormatOutcome(result.Outcome))
		})
	}
}

func TestCalculateOutcomeDeterministic(t *testing.T) {
	for nonce := int64(0); nonce < 200; nonce++ {
		first, err := CalculateOutcome("seed", "client", nonce)
		require.NoError(t, err)
		second, err := CalculateOutcome("seed", "client", nonce)
		require.NoError(t, err)

		assert.Equal(t, first, second)
		assert.GreaterOrEqual(t, first.Outcome, 0.0)
		assert.Less(t, first.Outcome, 100.0)
		assert.Len(t, first.HMAC, 64)
		assert.Equal(t, first.HMAC[:8], first.Hex)
	}
}

func TestCalculateOutcomeRejectsNegativeNonce(t *testing.T) {
	_, err := CalculateOutcome("seed", "client", -1)
	assert.True(t, errors.Is(err, ErrInvalidArgument))
}

func TestVerifyOutcome(t *testing.T) {
	assert.True(t, VerifyOutcome("abc123", "player1", 0, 49.45))
	assert.True(t, VerifyOutcome("abc123", "player1", 0, 49.449999999))
	assert.False(t, VerifyOutcome("abc123", "player1", 0, 49.46))
	assert.False(t, VerifyOutcome("abc123", "player1", 1, 49.45))
	assert.False(t, VerifyOutcome("other", "player1", 0, 49.45))
	assert.False(t, VerifyOutcome("abc123", "player1", -5, 49.45))
}

func TestVerifyOutcomeRoundTrip(t *testing.T) {
	for nonce := int64(0); nonce < 100; nonce++ {
		clientSeed := fmt.Sprintf("client-%d", nonce%7)
		result, err := CalculateOutcome("round-trip", clientSeed, nonce)
		require.NoError(t, err)
		assert.True(t, VerifyOutcome("round-trip", clientSeed, nonce, result.Outcome))
	}
}

func TestGenerateSecureRandomSeed(t *testing.T) {
	seed, err := GenerateSecureRandomSeed(32)
	require.NoError(t, err)
	assert.Len(t, seed, 64)

	other, err := GenerateSecureRandomSeed(0)
	require.NoError(t, err)
	assert.Len(t, other, 64)
	assert.NotEqual(t, seed, other)

	short, err := GenerateSecureRandomSeed(4)
	require.NoError(t, err)
	assert.Len(t, short, 8)
}

func TestHashSeed(t *testing.T) {
	assert.Equal(t, "6ca13d52ca70c883e0f0bb101e425a89e8624de51db2d2392593af6a84118090", HashSeed("abc123"))
}

func TestCalculateMultiplier(t *testing.T) {
	multiplier, err := CalculateMultiplier(50)
	require.NoError(t, err)
	assert.InDelta(t, 1.98, multiplier, 1e-12)

	for _, target := range []float64{0.01, 1, 2.5, 10, 33, 49.5, 50, 75, 98, 99, 99.99} {
		t.Run(fmt.Sprintf("target_%v", target), func(t *testing.T) {
			m, err := CalculateMultiplier(target)
			require.NoError(t, err)
			assert.InDelta(t, 0.99, m*target/100, 1e-9)
		})
	}

	for _, target := range []float64{0, -1, 100, 100.5, math.NaN(), math.Inf(1)} {
		t.Run(fmt.Sprintf("invalid_%v", target), func(t *testing.T) {
			_, err := CalculateMultiplier(target)
			assert.True(t, errors.Is(err, ErrInvalidArgument))
		})
	}
}

func TestCheckWin(t *testing.T) {
	assert.True(t, CheckWin(49.99, 50))
	assert.False(t, CheckWin(50, 50))
	assert.False(t, CheckWin(50.01, 50))
	assert.True(t, CheckWin(0, 0.01))
}

func TestCalculateWinAmount(t *testing.T) {
	one := decimal.NewFromInt(1)

	win, err := CalculateWinAmount(one, 49.99, 50)
	require.NoError(t, err)
	assert.Equal(t, "1.98000000", win)

	loss, err := CalculateWinAmount(one, 50.00, 50)
	require.NoError(t, err)
	assert.Equal(t, "0", loss)

	small, err := CalculateWinAmount(decimal.RequireFromString("0.00000001"), 1, 50)
	require.NoError(t, err)
	assert.Equal(t, "0.00000002", small)

	_, err = CalculateWinAmount(one, 10, 100)
	assert.True(t, errors.Is(err, ErrInvalidArgument))
}

// Every outcome in [0, 100) is equally likely, so exact expected return for a
// roll-under bet is the fraction of hundredths below the target times the payout.
func TestDiceExpectedReturn(t *testing.T) {
	for _, target := range []float64{2, 25, 50, 90} {
		multiplier, err := CalculateMultiplier(target)
		require.NoError(t, err)

		wins := 0
		for u := 0; u < outcomeBuckets; u++ {
			if CheckWin(float64(u)/100, target) {
				wins++
			}
		}
		rtp := float64(wins) / outcomeBuckets * multiplier
		assert.InDelta(t, 0.99, rtp, 1e-9, "target %v", target)
	}
}
