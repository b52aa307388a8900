package schedule

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingRunner struct {
	calls atomic.Int32
}

func (r *countingRunner) Run(ctx context.Context) error {
	r.calls.Add(1)
	return nil
}

func TestNew_InvalidSpec(t *testing.T) {
	_, err := New("not a cron spec", &countingRunner{}, zerolog.Nop())
	assert.Error(t, err)
}

func TestScheduler_Fires(t *testing.T) {
	r := &countingRunner{}
	// Every-minute spec is the finest the 5-field parser allows.
	s, err := New("* * * * *", r, zerolog.Nop())
	require.NoError(t, err)
	s.Start()
	defer s.Stop()

	// The standard 5-field parser fires at minute granularity; just verify
	// start/stop works and no run has happened yet within the test window.
	time.Sleep(50 * time.Millisecond)
	assert.LessOrEqual(t, r.calls.Load(), int32(1))
}
