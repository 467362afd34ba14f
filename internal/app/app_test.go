package app

import (
	"testing"
	"time"

	"github.com/saradorri/fairplay/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Setenv("FAIRPLAY_ENV", "development")
	t.Setenv("FAIRPLAY_ADMIN_APIKEY", "from-env")
	t.Setenv("FAIRPLAY_DATABASE_DRIVER", "memory")

	cfg, err := LoadConfig("../../config")
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Admin.APIKey)
	assert.Equal(t, config.DriverMemory, cfg.Database.Driver)
	assert.Equal(t, 24*time.Hour, cfg.JWT.Expiry)
	assert.Equal(t, 50*time.Millisecond, cfg.Settlement.InitialInterval)
	assert.Equal(t, "0.00000001", cfg.Bet.MinAmount)
}

func TestLoadConfigMissingFile(t *testing.T) {
	t.Setenv("FAIRPLAY_ENV", "nowhere")
	_, err := LoadConfig("../../config")
	assert.Error(t, err)
}

func TestBetConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg, err := BetConfig(&config.Config{})
		require.NoError(t, err)
		assert.Equal(t, "0.00000001", cfg.MinAmount.String())
		assert.True(t, cfg.MaxAmount.IsZero())
		assert.Equal(t, uint64(3), cfg.MaxRetries)
	})

	t.Run("overrides", func(t *testing.T) {
		cfg, err := BetConfig(&config.Config{
			Bet:        config.BetConfig{MinAmount: "0.1", MaxAmount: "500"},
			Settlement: config.SettlementConfig{MaxRetries: 7, MaxElapsed: time.Minute},
		})
		require.NoError(t, err)
		assert.Equal(t, "0.1", cfg.MinAmount.String())
		assert.Equal(t, "500", cfg.MaxAmount.String())
		assert.Equal(t, uint64(7), cfg.MaxRetries)
		assert.Equal(t, time.Minute, cfg.MaxElapsed)
	})

	t.Run("invalid", func(t *testing.T) {
		_, err := BetConfig(&config.Config{Bet: config.BetConfig{MinAmount: "lots"}})
		assert.Error(t, err)
		_, err = BetConfig(&config.Config{Bet: config.BetConfig{MinAmount: "10", MaxAmount: "1"}})
		assert.Error(t, err)
	})
}
