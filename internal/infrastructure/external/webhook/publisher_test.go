package webhook

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/saradorri/fairplay/internal/config"
	"github.com/saradorri/fairplay/internal/domain"
	"github.com/saradorri/fairplay/internal/infrastructure/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishSignsPayload(t *testing.T) {
	var got Payload
	var signature, eventType string
	var valid bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		signature = r.Header.Get(HeaderSignature)
		eventType = r.Header.Get(HeaderEventType)
		valid = signature == Sign([]byte("shh"), body)
		_ = json.Unmarshal(body, &got)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	pub := NewPublisher(&config.WebhookConfig{URL: server.URL, Secret: "shh", Timeout: time.Second}, logger.NewNop())
	event := domain.NewOutboxEvent(domain.EventTypeBetSettled, domain.JSONB{"nonce": float64(3)})

	require.NoError(t, pub.Publish(context.Background(), event))
	assert.True(t, valid)
	assert.NotEmpty(t, signature)
	assert.Equal(t, domain.EventTypeBetSettled, eventType)
	assert.Equal(t, event.ID, got.ID)
	assert.Equal(t, float64(3), got.Data["nonce"])
}

func TestPublishRetriesThenFails(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	pub := NewPublisher(&config.WebhookConfig{URL: server.URL, RetryMax: 1, Timeout: time.Second}, logger.NewNop())
	err := pub.Publish(context.Background(), domain.NewOutboxEvent(domain.EventTypeSeedRotated, nil))

	assert.Error(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&hits))
}

func TestPublishClientError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadRequest)
	}))
	defer server.Close()

	pub := NewPublisher(&config.WebhookConfig{URL: server.URL}, logger.NewNop())
	err := pub.Publish(context.Background(), domain.NewOutboxEvent(domain.EventTypeSeedRotated, nil))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "400")
}

func TestNoopPublisher(t *testing.T) {
	pub := NewPublisher(&config.WebhookConfig{}, logger.NewNop())
	assert.NoError(t, pub.Publish(context.Background(), domain.NewOutboxEvent(domain.EventTypeSeedRotated, nil)))
}
