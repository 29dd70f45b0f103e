// internal/app/system/sms/sms.go

// Package sms sends the post-visit feedback invitation messages. The
// dispatcher is configured per call from the settings document, passed in
// as a value, so config changes take effect without restarts and nothing
// reads mutable global state.
package sms

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/showroomhq/showroomhub/internal/app/system/metrics"
	"github.com/showroomhq/showroomhub/internal/domain/models"
	"go.uber.org/zap"
)

// Provider delivers one message to one phone number.
type Provider interface {
	Send(ctx context.Context, apiURL, apiKey, sender, phone, message string) error
}

// Dispatcher sends feedback-invitation SMS after a visit is recorded.
// Send failures are logged and counted but never propagate to the
// request that triggered them.
type Dispatcher struct {
	provider Provider
	metrics  *metrics.Metrics
	log      *zap.Logger
}

// NewDispatcher creates a Dispatcher. metrics may be nil in tests.
func NewDispatcher(provider Provider, m *metrics.Metrics, logger *zap.Logger) *Dispatcher {
	return &Dispatcher{provider: provider, metrics: m, log: logger}
}

// VisitMessage formats the invitation sent after a showroom visit.
func VisitMessage(name, feedbackURL string) string {
	if feedbackURL == "" {
		feedbackURL = models.DefaultFeedbackURL
	}
	if name == "" {
		return fmt.Sprintf("Thank you for visiting us. We would love your feedback: %s", feedbackURL)
	}
	return fmt.Sprintf("Dear %s, thank you for visiting us. We would love your feedback: %s", name, feedbackURL)
}

// DispatchVisit sends the feedback invitation for a recorded visit using
// the supplied settings snapshot. It returns immediately when SMS is
// disabled or the visit has no phone number.
func (d *Dispatcher) DispatchVisit(ctx context.Context, cfg models.Settings, name, phone string) {
	if !cfg.SMSEnabled || phone == "" {
		return
	}

	msg := VisitMessage(name, cfg.FeedbackURL)
	err := d.provider.Send(ctx, cfg.SMSApiURL, cfg.SMSApiKey, cfg.SMSSender, phone, msg)
	if err != nil {
		if d.metrics != nil {
			d.metrics.RecordSMS("error")
		}
		d.log.Warn("sms dispatch failed",
			zap.String("phone", phone),
			zap.Error(err))
		return
	}
	if d.metrics != nil {
		d.metrics.RecordSMS("sent")
	}
	d.log.Info("sms dispatched", zap.String("phone", phone))
}

// HTTPProvider calls a GET-style SMS gateway. Most local gateways accept
// the key, sender ID, recipient, and message as query parameters.
type HTTPProvider struct {
	Client *http.Client
}

// NewHTTPProvider returns an HTTPProvider with a bounded-timeout client.
func NewHTTPProvider() *HTTPProvider {
	return &HTTPProvider{
		Client: &http.Client{Timeout: 10 * time.Second},
	}
}

// Send performs the gateway request. Non-2xx responses are errors.
func (p *HTTPProvider) Send(ctx context.Context, apiURL, apiKey, sender, phone, message string) error {
	if apiURL == "" {
		return fmt.Errorf("sms gateway URL is not configured")
	}

	u, err := url.Parse(apiURL)
	if err != nil {
		return fmt.Errorf("invalid sms gateway URL: %w", err)
	}
	q := u.Query()
	q.Set("api_key", apiKey)
	q.Set("senderid", sender)
	q.Set("number", phone)
	q.Set("message", message)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return err
	}

	resp, err := p.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("sms gateway returned %d: %s", resp.StatusCode, body)
	}
	return nil
}
