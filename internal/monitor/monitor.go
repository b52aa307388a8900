// Package monitor orchestrates one monitoring invocation: fetch warehouse
// rows, normalize and aggregate them, pick a rendering mode, render, and hand
// the payload to delivery. Each invocation is independent; nothing persists
// between runs.
package monitor

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/htan-dcc/synapse-monitor/internal/activity"
	"github.com/htan-dcc/synapse-monitor/internal/metrics"
	"github.com/htan-dcc/synapse-monitor/internal/render"
)

// Fetcher returns raw activity rows for a lookback window.
type Fetcher interface {
	FetchActivity(ctx context.Context, daysBack int) ([]activity.Row, error)
}

// Sender delivers a rendered payload.
type Sender interface {
	Send(ctx context.Context, p *render.Payload) error
}

// Config tunes one Pipeline.
type Config struct {
	DaysBack int
	Limits   render.Limits
	Links    render.LinkBuilder
}

// Pipeline runs the fetch → aggregate → render → deliver sequence.
type Pipeline struct {
	fetcher Fetcher
	sender  Sender
	cfg     Config
	metrics *metrics.Metrics
	logger  zerolog.Logger
}

// New creates a Pipeline. metrics may be nil (e.g. in one-shot CLI runs).
func New(fetcher Fetcher, sender Sender, cfg Config, m *metrics.Metrics, logger zerolog.Logger) *Pipeline {
	if cfg.DaysBack < 1 {
		cfg.DaysBack = 1
	}
	return &Pipeline{
		fetcher: fetcher,
		sender:  sender,
		cfg:     cfg,
		metrics: m,
		logger:  logger.With().Str("component", "monitor").Logger(),
	}
}

// Run executes one invocation. A row that fails normalization aborts the run:
// a bad row means the query contract is broken, and a partial report would be
// worse than none.
func (p *Pipeline) Run(ctx context.Context) error {
	runID := uuid.NewString()
	logger := p.logger.With().Str("run_id", runID).Logger()
	start := time.Now()

	err := p.run(ctx, logger)

	if p.metrics != nil {
		p.metrics.RunDuration.Observe(time.Since(start).Seconds())
		if err != nil {
			p.metrics.RecordRun("error")
		} else {
			p.metrics.RecordRun("ok")
		}
	}
	if err != nil {
		logger.Error().Err(err).Dur("duration", time.Since(start)).Msg("monitor run failed")
		return err
	}
	return nil
}

func (p *Pipeline) run(ctx context.Context, logger zerolog.Logger) error {
	rows, err := p.fetcher.FetchActivity(ctx, p.cfg.DaysBack)
	if err != nil {
		return fmt.Errorf("fetching activity: %w", err)
	}
	if p.metrics != nil {
		p.metrics.RowsFetched.Add(float64(len(rows)))
	}

	records := make([]activity.Record, 0, len(rows))
	for i, row := range rows {
		rec, err := activity.Normalize(row)
		if err != nil {
			if p.metrics != nil {
				p.metrics.RowsRejected.Inc()
			}
			return fmt.Errorf("row %d: %w", i, err)
		}
		records = append(records, rec)
	}

	summary := activity.Summarize(records)
	mode := render.Classify(summary, p.cfg.Limits.CondensedThreshold)
	if p.metrics != nil {
		p.metrics.RecordMode(mode.String())
		p.metrics.GroupCount.Set(float64(len(summary.Groups)))
	}

	payload, err := render.Render(summary, mode, p.cfg.Limits, p.cfg.Links)
	if err != nil {
		return fmt.Errorf("rendering notification: %w", err)
	}

	if err := p.sender.Send(ctx, payload); err != nil {
		if p.metrics != nil {
			p.metrics.RecordNotification("error")
		}
		return fmt.Errorf("delivering notification: %w", err)
	}
	if p.metrics != nil {
		p.metrics.RecordNotification("delivered")
	}

	logger.Info().
		Int("rows", len(rows)).
		Int("total_files", summary.TotalFiles).
		Int("groups", len(summary.Groups)).
		Str("mode", mode.String()).
		Msg("monitor run complete")
	return nil
}
