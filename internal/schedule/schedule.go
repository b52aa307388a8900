// Package schedule drives periodic monitor runs in daemon mode.
package schedule

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// Runner is one schedulable unit of work.
type Runner interface {
	Run(ctx context.Context) error
}

// runTimeout bounds a single scheduled run; a wedged warehouse query must not
// block the next tick.
const runTimeout = 10 * time.Minute

// Scheduler fires a Runner on a cron cadence.
type Scheduler struct {
	cron   *cron.Cron
	logger zerolog.Logger
}

// New creates a Scheduler for the given cron spec (standard 5-field syntax).
func New(spec string, job Runner, logger zerolog.Logger) (*Scheduler, error) {
	logger = logger.With().Str("component", "schedule").Logger()

	c := cron.New()
	_, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
		defer cancel()
		if err := job.Run(ctx); err != nil {
			logger.Error().Err(err).Msg("scheduled run failed")
		}
	})
	if err != nil {
		return nil, err
	}

	logger.Info().Str("spec", spec).Msg("schedule registered")
	return &Scheduler{cron: c, logger: logger}, nil
}

// Start begins firing on schedule. Non-blocking.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop halts scheduling and returns once any in-flight run has finished.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.logger.Info().Msg("schedule stopped")
}
