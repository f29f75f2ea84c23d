package metrics

import (
	"io/ioutil"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics(t *testing.T) {
	m := New()
	m.Commits.Inc()
	m.Commits.Inc()
	m.Checkpoints.Inc()
	m.Rollback("rolled back")
	m.Rollback("locked")
	m.Rollback("locked")
	m.History(3, 1024)

	assert.Equal(t, float64(2), testutil.ToFloat64(m.Commits))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.Checkpoints))
	assert.Equal(t, float64(2), testutil.ToFloat64(m.Rollbacks.WithLabelValues("locked")))
	assert.Equal(t, float64(3), testutil.ToFloat64(m.Versions))
	assert.Equal(t, float64(1024), testutil.ToFloat64(m.HistoryBytes))

	// independent registries
	other := New()
	assert.Equal(t, float64(0), testutil.ToFloat64(other.Commits))
}

func TestWriteTextfile(t *testing.T) {
	m := New()
	m.Commits.Inc()
	m.History(2, 10)

	target := filepath.Join(t.TempDir(), "datadesk.prom")
	require.NoError(t, m.WriteTextfile(target))

	content, err := ioutil.ReadFile(target)
	require.NoError(t, err)
	assert.Contains(t, string(content), "datadesk_commits_total 1")
	assert.Contains(t, string(content), "datadesk_history_versions 2")
}
