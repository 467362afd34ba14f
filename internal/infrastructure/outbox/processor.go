package outbox

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/saradorri/fairplay/internal/config"
	"github.com/saradorri/fairplay/internal/domain"
	"github.com/saradorri/fairplay/internal/infrastructure/logger"
	"go.uber.org/zap"
)

var knownEvents = map[string]bool{
	domain.EventTypeBetSettled:      true,
	domain.EventTypeDepositApproved: true,
	domain.EventTypeDepositDeclined: true,
	domain.EventTypeSeedRotated:     true,
}

// Processor implements domain.OutboxProcessor
type Processor struct {
	outboxRepo domain.OutboxRepository
	publisher  domain.EventPublisher
	logger     *logger.Logger
	interval   time.Duration
	batchSize  int
	maxRetries int

	ctx       context.Context
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	mu        sync.Mutex
	isRunning bool
}

// NewProcessor creates a new outbox processor
func NewProcessor(
	outboxRepo domain.OutboxRepository,
	publisher domain.EventPublisher,
	cfg *config.OutboxConfig,
	logger *logger.Logger,
) *Processor {
	p := &Processor{
		outboxRepo: outboxRepo,
		publisher:  publisher,
		logger:     logger.Named("outbox"),
		interval:   cfg.Interval,
		batchSize:  cfg.BatchSize,
		maxRetries: cfg.MaxRetries,
	}
	if p.interval <= 0 {
		p.interval = 5 * time.Second
	}
	if p.batchSize <= 0 {
		p.batchSize = 100
	}
	if p.maxRetries <= 0 {
		p.maxRetries = 5
	}
	return p
}

// ProcessEvents delivers one batch of pending events in creation order
func (p *Processor) ProcessEvents(ctx context.Context) error {
	events, err := p.outboxRepo.GetPendingEvents(ctx, p.batchSize)
	if err != nil {
		p.logger.Error("Failed to get pending events", zap.Error(err))
		return err
	}

	for _, event := range events {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("processor cancelled: %w", err)
		}

		if err := p.ProcessEvent(ctx, event); err != nil {
			p.logger.Error("Failed to process event",
				zap.String("eventID", event.ID),
				zap.String("eventType", event.Type),
				zap.Int("retryCount", event.RetryCount),
				zap.Error(err))

			if event.RetryCount < p.maxRetries {
				if retryErr := p.outboxRepo.IncrementRetryCount(ctx, event.ID); retryErr != nil {
					p.logger.Error("Failed to increment retry count", zap.Error(retryErr))
				}
			} else {
				if failErr := p.outboxRepo.MarkAsFailed(ctx, event.ID, err.Error()); failErr != nil {
					p.logger.Error("Failed to mark event as failed", zap.Error(failErr))
				}
			}
		}
	}

	return nil
}

// ProcessEvent publishes a single event and marks it processed
func (p *Processor) ProcessEvent(ctx context.Context, event *domain.OutboxEvent) error {
	p.logger.Debug("Processing outbox event",
		zap.String("eventID", event.ID),
		zap.String("eventType", event.Type))

	if !knownEvents[event.Type] {
		return fmt.Errorf("unknown event type: %s", event.Type)
	}
	if err := p.publisher.Publish(ctx, event); err != nil {
		return fmt.Errorf("publish %s: %w", event.Type, err)
	}
	return p.outboxRepo.MarkAsProcessed(ctx, event.ID)
}

// StartBackgroundProcessing starts the background processing loop
func (p *Processor) StartBackgroundProcessing() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.isRunning {
		p.logger.Warn("Outbox processor is already running")
		return
	}

	p.ctx, p.cancel = context.WithCancel(context.Background())
	p.isRunning = true
	p.wg.Add(1)

	go func(ctx context.Context) {
		defer p.wg.Done()
		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()

		p.logger.Info("Outbox background processing started", zap.Duration("interval", p.interval))

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := p.ProcessEvents(ctx); err != nil && ctx.Err() == nil {
					p.logger.Error("Background processing failed", zap.Error(err))
				}
			}
		}
	}(p.ctx)
}

// StopBackgroundProcessing stops the loop and waits for the current batch
func (p *Processor) StopBackgroundProcessing() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.isRunning {
		p.logger.Warn("Outbox processor is not running")
		return
	}

	p.cancel()
	p.wg.Wait()
	p.isRunning = false
	p.logger.Info("Outbox background processing stopped")
}

var _ domain.OutboxProcessor = (*Processor)(nil)
