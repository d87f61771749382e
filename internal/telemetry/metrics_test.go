package telemetry

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_ObserveSuccess(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	m.ObserveSuccess(ModeSequential, 2*time.Millisecond, 8, 1)
	m.ObserveSuccess(ModeParallel, 3*time.Millisecond, 4096, 4)
	m.ObserveSuccess(ModeParallel, time.Millisecond, 4096, 4)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.evaluations.WithLabelValues(ModeSequential, "ok")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.evaluations.WithLabelValues(ModeParallel, "ok")))
	assert.Equal(t, 0, testutil.CollectAndCount(m.errors))

	count, err := testutil.GatherAndCount(reg, "einsum_joint_points", "einsum_workers")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestMetrics_ObserveFailure(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	m.ObserveFailure(ModeSequential, "rank_mismatch")
	m.ObserveFailure(ModeSequential, "rank_mismatch")
	m.ObserveFailure(ModeParallel, "unknown_output_label")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.errors.WithLabelValues("rank_mismatch")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.errors.WithLabelValues("unknown_output_label")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.evaluations.WithLabelValues(ModeSequential, "error")))
}

func TestMetrics_Nil(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveSuccess(ModeSequential, time.Second, 1, 1)
		m.ObserveFailure(ModeSequential, "other")
	})
}

func TestNewMetrics_DuplicateRegistrationPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewMetrics(reg)
	assert.Panics(t, func() { NewMetrics(reg) })
}
