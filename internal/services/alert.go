package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/dperera/payconfirm/internal/config"
	"github.com/dperera/payconfirm/internal/models"
)

// AlertService delivers push alerts for accepted transactions with a
// single outbound POST. Fire and forget: the status and response body are
// logged, there is no retry.
type AlertService struct {
	endpoint   string
	httpClient *http.Client
}

// NewAlertService creates a new AlertService. An empty endpoint is allowed
// and makes Send a logged no-op, so the rest of the pipeline works without
// a push backend configured.
func NewAlertService(cfg *config.Config) *AlertService {
	if cfg.AlertEndpoint == "" {
		slog.Warn("ALERT_ENDPOINT is not set; alert dispatch disabled")
	}
	return &AlertService{
		endpoint:   cfg.AlertEndpoint,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Send posts the alert message as JSON to the configured endpoint.
func (s *AlertService) Send(ctx context.Context, msg models.AlertMessage) error {
	if s.endpoint == "" {
		slog.Info("alert dispatch disabled, dropping alert", "account", msg.AccountID)
		return nil
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal alert payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create alert request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		slog.Error("alert request failed", "endpoint", s.endpoint, "error", err)
		return fmt.Errorf("failed to send alert: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	slog.Info("alert dispatched",
		"endpoint", s.endpoint,
		"account", msg.AccountID,
		"status", resp.StatusCode,
		"response_body", string(body),
	)

	if resp.StatusCode >= 400 {
		return fmt.Errorf("alert endpoint returned status %d", resp.StatusCode)
	}
	return nil
}
