package app

import (
	"context"
	"time"

	"github.com/saradorri/fairplay/internal/domain"
	"github.com/saradorri/fairplay/internal/infrastructure/logger"
	"github.com/saradorri/fairplay/internal/infrastructure/ratelimit"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// InitRateLimiter returns a redis limiter when enabled and reachable, otherwise a no-op
func (a *application) InitRateLimiter(lc fx.Lifecycle, log *logger.Logger) domain.RateLimiter {
	cfg := a.config.Redis
	if !cfg.Enabled {
		return ratelimit.Noop{}
	}

	ctx, cancel := context.WithTimeout(a.ctx, 3*time.Second)
	defer cancel()
	client, err := ratelimit.NewRedisClient(ctx, &cfg)
	if err != nil {
		log.Warn("Rate limiting disabled", zap.Error(err))
		return ratelimit.Noop{}
	}
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return client.Close()
		},
	})

	window := cfg.Window
	if window <= 0 {
		window = time.Minute
	}
	limit := cfg.RateLimit
	if limit <= 0 {
		limit = 30
	}
	log.Info("Rate limiting enabled", zap.String("addr", cfg.Addr), zap.Int("limit", limit), zap.Duration("window", window))
	return ratelimit.NewRedisLimiter(client, cfg.KeyPrefix, limit, window)
}
