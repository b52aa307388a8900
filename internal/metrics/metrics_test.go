package metrics

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_RegisterAndServe(t *testing.T) {
	m := New()
	m.RowsFetched.Add(12)
	m.RowsRejected.Inc()
	m.RecordRun("ok")
	m.RecordNotification("delivered")
	m.RecordMode("condensed")
	m.GroupCount.Set(21)
	m.RunDuration.Observe(0.42)

	srv := httptest.NewServer(m.Handler())
	defer srv.Close()

	resp, err := srv.Client().Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	body := string(raw)

	assert.Contains(t, body, "monitor_rows_fetched_total 12")
	assert.Contains(t, body, `monitor_runs_total{status="ok"} 1`)
	assert.Contains(t, body, `monitor_render_mode_total{mode="condensed"} 1`)
	assert.Contains(t, body, "monitor_last_run_groups 21")
}

func TestMetrics_IndependentRegistries(t *testing.T) {
	// Two instances must not collide (private registries).
	assert.NotPanics(t, func() {
		_ = New()
		_ = New()
	})
}
