package outbox

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/saradorri/fairplay/internal/config"
	"github.com/saradorri/fairplay/internal/domain"
	"github.com/saradorri/fairplay/internal/domain/mocks"
	"github.com/saradorri/fairplay/internal/infrastructure/logger"
	"github.com/saradorri/fairplay/internal/infrastructure/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcessEvents(t *testing.T) {
	ctx := context.Background()
	cfg := &config.OutboxConfig{BatchSize: 10, MaxRetries: 2}

	tests := []struct {
		name  string
		event *domain.OutboxEvent
		setup func(repo *mocks.MockOutboxRepository, pub *mocks.MockEventPublisher, e *domain.OutboxEvent)
	}{
		{
			name:  "published and marked processed",
			event: domain.NewOutboxEvent(domain.EventTypeBetSettled, domain.JSONB{"nonce": 0}),
			setup: func(repo *mocks.MockOutboxRepository, pub *mocks.MockEventPublisher, e *domain.OutboxEvent) {
				pub.EXPECT().Publish(gomock.Any(), e).Return(nil)
				repo.EXPECT().MarkAsProcessed(gomock.Any(), e.ID).Return(nil)
			},
		},
		{
			name:  "publish failure increments retry count",
			event: domain.NewOutboxEvent(domain.EventTypeDepositApproved, nil),
			setup: func(repo *mocks.MockOutboxRepository, pub *mocks.MockEventPublisher, e *domain.OutboxEvent) {
				pub.EXPECT().Publish(gomock.Any(), e).Return(errors.New("down"))
				repo.EXPECT().IncrementRetryCount(gomock.Any(), e.ID).Return(nil)
			},
		},
		{
			name: "retries exhausted marks failed",
			event: func() *domain.OutboxEvent {
				e := domain.NewOutboxEvent(domain.EventTypeSeedRotated, nil)
				e.RetryCount = 2
				return e
			}(),
			setup: func(repo *mocks.MockOutboxRepository, pub *mocks.MockEventPublisher, e *domain.OutboxEvent) {
				pub.EXPECT().Publish(gomock.Any(), e).Return(errors.New("down"))
				repo.EXPECT().MarkAsFailed(gomock.Any(), e.ID, gomock.Any()).Return(nil)
			},
		},
		{
			name:  "unknown type is never published",
			event: domain.NewOutboxEvent("SOMETHING_ELSE", nil),
			setup: func(repo *mocks.MockOutboxRepository, pub *mocks.MockEventPublisher, e *domain.OutboxEvent) {
				repo.EXPECT().IncrementRetryCount(gomock.Any(), e.ID).Return(nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := mocks.NewMockOutboxRepository(ctrl)
			pub := mocks.NewMockEventPublisher(ctrl)

			repo.EXPECT().GetPendingEvents(gomock.Any(), 10).Return([]*domain.OutboxEvent{tt.event}, nil)
			tt.setup(repo, pub, tt.event)

			p := NewProcessor(repo, pub, cfg, logger.NewNop())
			assert.NoError(t, p.ProcessEvents(ctx))
		})
	}
}

func TestProcessEventsRepositoryError(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockOutboxRepository(ctrl)
	repo.EXPECT().GetPendingEvents(gomock.Any(), gomock.Any()).Return(nil, errors.New("db down"))

	p := NewProcessor(repo, mocks.NewMockEventPublisher(ctrl), &config.OutboxConfig{}, logger.NewNop())
	assert.Error(t, p.ProcessEvents(context.Background()))
}

func TestBackgroundProcessingDrainsStore(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	require.NoError(t, store.Outbox().Save(ctx, domain.NewOutboxEvent(domain.EventTypeBetSettled, nil)))
	require.NoError(t, store.Outbox().Save(ctx, domain.NewOutboxEvent(domain.EventTypeSeedRotated, nil)))

	ctrl := gomock.NewController(t)
	pub := mocks.NewMockEventPublisher(ctrl)
	pub.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil).Times(2)

	p := NewProcessor(store.Outbox(), pub, &config.OutboxConfig{Interval: 10 * time.Millisecond}, logger.NewNop())
	p.StartBackgroundProcessing()
	p.StartBackgroundProcessing()

	require.Eventually(t, func() bool {
		pending, err := store.Outbox().GetPendingEvents(ctx, 10)
		return err == nil && len(pending) == 0
	}, 2*time.Second, 10*time.Millisecond)

	p.StopBackgroundProcessing()
	p.StopBackgroundProcessing()
}
