// Package notify delivers rendered payloads to a Slack incoming webhook.
// When no webhook URL is configured it logs the payload instead, so dry runs
// still show what would have been sent.
package notify

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/slack-go/slack"

	merrors "github.com/htan-dcc/synapse-monitor/internal/errors"
	"github.com/htan-dcc/synapse-monitor/internal/render"
	"github.com/htan-dcc/synapse-monitor/internal/retry"
)

// Notifier posts notification payloads over a Slack webhook.
type Notifier struct {
	webhookURL string
	client     *http.Client
	retryCfg   retry.Config
	logger     zerolog.Logger
}

// Option customizes a Notifier.
type Option func(*Notifier)

// WithHTTPClient overrides the HTTP client (used by tests).
func WithHTTPClient(c *http.Client) Option {
	return func(n *Notifier) { n.client = c }
}

// WithRetryConfig overrides the delivery retry policy.
func WithRetryConfig(cfg retry.Config) Option {
	return func(n *Notifier) { n.retryCfg = cfg }
}

// New creates a Notifier. An empty webhookURL enables log-only mode.
func New(webhookURL string, logger zerolog.Logger, opts ...Option) *Notifier {
	n := &Notifier{
		webhookURL: webhookURL,
		client:     &http.Client{Timeout: 15 * time.Second},
		retryCfg:   retry.DefaultConfig(),
		logger:     logger.With().Str("component", "notify").Logger(),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Send delivers one payload. Transient webhook failures are retried with
// backoff; non-retryable failures and exhausted retries propagate.
func (n *Notifier) Send(ctx context.Context, p *render.Payload) error {
	msg := &slack.WebhookMessage{
		Username:  render.BotUsername,
		IconEmoji: render.BotIconEmoji,
		Text:      p.Header,
		Blocks:    &slack.Blocks{BlockSet: p.Blocks},
	}

	if n.webhookURL == "" {
		raw, err := json.Marshal(msg)
		if err != nil {
			return err
		}
		n.logger.Warn().RawJSON("payload", raw).Msg("no webhook URL configured, logging payload instead")
		return nil
	}

	err := retry.Do(ctx, n.retryCfg, func(ctx context.Context) error {
		if err := slack.PostWebhookCustomHTTPContext(ctx, n.webhookURL, n.client, msg); err != nil {
			return classify(err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	n.logger.Info().Str("mode", p.Mode.String()).Int("blocks", len(p.Blocks)).Msg("notification delivered")
	return nil
}

// classify maps slack-go errors onto the shared taxonomy so retry can tell
// transient failures from permanent ones.
func classify(err error) error {
	var rle *slack.RateLimitedError
	if errors.As(err, &rle) {
		return &merrors.APIError{Service: "slack", StatusCode: http.StatusTooManyRequests, Message: "rate limited", Err: err}
	}
	var sce slack.StatusCodeError
	if errors.As(err, &sce) {
		return &merrors.APIError{Service: "slack", StatusCode: sce.Code, Message: sce.Status, Err: err}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return merrors.ErrTimeout
	}
	// Network-level failures (DNS, connect reset) are worth another attempt.
	return &merrors.APIError{Service: "slack", StatusCode: http.StatusServiceUnavailable, Message: "webhook unreachable", Err: err}
}
