package monitor

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/htan-dcc/synapse-monitor/internal/activity"
	"github.com/htan-dcc/synapse-monitor/internal/metrics"
	"github.com/htan-dcc/synapse-monitor/internal/render"
)

type stubFetcher struct {
	rows []activity.Row
	err  error
	days int
}

func (f *stubFetcher) FetchActivity(ctx context.Context, daysBack int) ([]activity.Row, error) {
	f.days = daysBack
	return f.rows, f.err
}

type captureSender struct {
	payload *render.Payload
	err     error
}

func (s *captureSender) Send(ctx context.Context, p *render.Payload) error {
	s.payload = p
	return s.err
}

func row(fileID, user, folder string) activity.Row {
	return activity.Row{
		"file_id":            fileID,
		"file_name":          fileID + ".csv",
		"change_type":        "CREATE",
		"user_id":            "uid-" + user,
		"user_name":          user,
		"project_id":         "p1",
		"project_name":       "Atlas",
		"parent_folder_id":   "fid-" + folder,
		"parent_folder_name": folder,
		"annotation_count":   int64(0),
	}
}

func TestRun_EndToEnd(t *testing.T) {
	fetcher := &stubFetcher{rows: []activity.Row{
		row("1", "alice", "raw"),
		row("2", "alice", "raw"),
		row("3", "bob", "processed"),
	}}
	sender := &captureSender{}
	p := New(fetcher, sender, Config{DaysBack: 3, Limits: render.DefaultLimits()}, metrics.New(), zerolog.Nop())

	require.NoError(t, p.Run(context.Background()))
	assert.Equal(t, 3, fetcher.days)
	require.NotNil(t, sender.payload)
	assert.Equal(t, render.ModeStandard, sender.payload.Mode)
	assert.Contains(t, sender.payload.Header, "3 files by 2 users across 1 project")
}

func TestRun_CondensedModeSelected(t *testing.T) {
	fetcher := &stubFetcher{}
	for i := 0; i < 25; i++ {
		fetcher.rows = append(fetcher.rows, row(fmt.Sprint(i), fmt.Sprintf("user%02d", i), fmt.Sprintf("folder%02d", i)))
	}
	sender := &captureSender{}
	p := New(fetcher, sender, Config{DaysBack: 1, Limits: render.DefaultLimits()}, nil, zerolog.Nop())

	require.NoError(t, p.Run(context.Background()))
	require.NotNil(t, sender.payload)
	assert.Equal(t, render.ModeCondensed, sender.payload.Mode)
}

func TestRun_EmptyWindowStillNotifies(t *testing.T) {
	sender := &captureSender{}
	p := New(&stubFetcher{}, sender, Config{Limits: render.DefaultLimits()}, nil, zerolog.Nop())

	require.NoError(t, p.Run(context.Background()))
	require.NotNil(t, sender.payload)
	assert.Contains(t, sender.payload.Header, "0 files by 0 users")
}

func TestRun_InvalidRowAborts(t *testing.T) {
	bad := row("1", "alice", "raw")
	bad["change_type"] = "DELETE"
	fetcher := &stubFetcher{rows: []activity.Row{row("0", "alice", "raw"), bad}}
	sender := &captureSender{}
	p := New(fetcher, sender, Config{Limits: render.DefaultLimits()}, nil, zerolog.Nop())

	err := p.Run(context.Background())
	require.Error(t, err)
	var verr *activity.ValidationError
	assert.True(t, errors.As(err, &verr))
	assert.Nil(t, sender.payload) // nothing delivered on a broken window
}

func TestRun_FetchFailurePropagates(t *testing.T) {
	fetcher := &stubFetcher{err: errors.New("warehouse offline")}
	p := New(fetcher, &captureSender{}, Config{Limits: render.DefaultLimits()}, nil, zerolog.Nop())
	assert.ErrorContains(t, p.Run(context.Background()), "warehouse offline")
}

func TestRun_SendFailurePropagates(t *testing.T) {
	fetcher := &stubFetcher{rows: []activity.Row{row("1", "alice", "raw")}}
	sender := &captureSender{err: errors.New("webhook down")}
	p := New(fetcher, sender, Config{Limits: render.DefaultLimits()}, nil, zerolog.Nop())
	assert.ErrorContains(t, p.Run(context.Background()), "webhook down")
}

func TestNew_DefaultsLookback(t *testing.T) {
	p := New(&stubFetcher{}, &captureSender{}, Config{}, nil, zerolog.Nop())
	assert.Equal(t, 1, p.cfg.DaysBack)
}
