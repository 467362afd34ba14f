package app

import (
	"github.com/saradorri/fairplay/internal/domain"
	"github.com/saradorri/fairplay/internal/infrastructure/external/webhook"
	"github.com/saradorri/fairplay/internal/infrastructure/logger"
	"github.com/saradorri/fairplay/internal/infrastructure/outbox"
)

func (a *application) InitEventPublisher(log *logger.Logger) domain.EventPublisher {
	return webhook.NewPublisher(&a.config.Webhook, log)
}

func (a *application) InitOutboxProcessor(
	store domain.Store,
	publisher domain.EventPublisher,
	logger *logger.Logger,
) domain.OutboxProcessor {
	return outbox.NewProcessor(store.Outbox(), publisher, &a.config.Outbox, logger)
}
