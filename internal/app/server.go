package app

import (
	"context"

	"github.com/saradorri/fairplay/internal/domain"
	"github.com/saradorri/fairplay/internal/http"
	"github.com/saradorri/fairplay/internal/http/middleware"
	"github.com/saradorri/fairplay/internal/infrastructure/auth"
	"github.com/saradorri/fairplay/internal/infrastructure/logger"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// InitHTTPServer initializes the HTTP server with all dependencies
func (a *application) InitHTTPServer(
	jwtService auth.JWTService,
	limiter domain.RateLimiter,
	h http.Handlers,
	errorHandler *middleware.ErrorHandler,
	log *logger.Logger,
) *http.Server {
	return http.NewServer(a.config, jwtService, limiter, h, errorHandler, log)
}

// RegisterLifecycle commits the first server seed, then starts the outbox
// processor and the HTTP server. Stop runs in reverse.
func (a *application) RegisterLifecycle(
	lc fx.Lifecycle,
	shutdowner fx.Shutdowner,
	seeds domain.SeedUseCase,
	processor domain.OutboxProcessor,
	server *http.Server,
	log *logger.Logger,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			active, err := seeds.Initialize(ctx)
			if err != nil {
				return err
			}
			log.Info("Active server seed ready", zap.String("seed_hash", active.SeedHash))

			processor.StartBackgroundProcessing()

			go func() {
				if err := server.Start(); err != nil {
					log.Error("HTTP server stopped", zap.Error(err))
					_ = shutdowner.Shutdown(fx.ExitCode(1))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			err := server.Shutdown(ctx)
			processor.StopBackgroundProcessing()
			_ = log.Sync()
			return err
		},
	})
}
