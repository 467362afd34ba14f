package webhook

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/saradorri/fairplay/internal/config"
	"github.com/saradorri/fairplay/internal/domain"
	"github.com/saradorri/fairplay/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// Header names sent with every delivery
const (
	HeaderSignature = "X-Fairplay-Signature"
	HeaderEventType = "X-Fairplay-Event"
	HeaderEventID   = "X-Fairplay-Event-Id"
)

// Payload is the JSON body posted to the consumer
type Payload struct {
	ID        string       `json:"id"`
	Type      string       `json:"type"`
	CreatedAt time.Time    `json:"created_at"`
	Data      domain.JSONB `json:"data"`
}

type publisher struct {
	url    string
	secret []byte
	client *retryablehttp.Client
	logger *logger.Logger
}

// NewPublisher returns an EventPublisher posting events to cfg.URL. Without a
// URL events are only logged.
func NewPublisher(cfg *config.WebhookConfig, log *logger.Logger) domain.EventPublisher {
	if cfg.URL == "" {
		return &noop{logger: log.Named("webhook")}
	}

	client := retryablehttp.NewClient()
	client.RetryMax = cfg.RetryMax
	client.RetryWaitMin = 100 * time.Millisecond
	client.RetryWaitMax = 2 * time.Second
	client.Logger = nil
	if cfg.Timeout > 0 {
		client.HTTPClient.Timeout = cfg.Timeout
	}

	return &publisher{
		url:    cfg.URL,
		secret: []byte(cfg.Secret),
		client: client,
		logger: log.Named("webhook"),
	}
}

// Publish posts the event and fails on any non-2xx answer
func (p *publisher) Publish(ctx context.Context, event *domain.OutboxEvent) error {
	body, err := json.Marshal(Payload{ID: event.ID, Type: event.Type, CreatedAt: event.CreatedAt, Data: event.Data})
	if err != nil {
		return fmt.Errorf("failed to marshal event %s: %w", event.ID, err)
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, p.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(HeaderEventType, event.Type)
	req.Header.Set(HeaderEventID, event.ID)
	if len(p.secret) > 0 {
		req.Header.Set(HeaderSignature, Sign(p.secret, body))
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("webhook request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("webhook error: unexpected status %d - %s", resp.StatusCode, string(msg))
	}

	p.logger.Debug("Event delivered",
		zap.String("eventID", event.ID),
		zap.String("eventType", event.Type),
		zap.Int("status", resp.StatusCode))
	return nil
}

// Sign returns the hex HMAC-SHA256 of body under secret
func Sign(secret, body []byte) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

type noop struct {
	logger *logger.Logger
}

func (n *noop) Publish(_ context.Context, event *domain.OutboxEvent) error {
	n.logger.Info("Event published",
		zap.String("eventID", event.ID),
		zap.String("eventType", event.Type))
	return nil
}
