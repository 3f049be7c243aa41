package prometheus

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)
	require.NotNil(t, m)

	m.Matched("Numbers")
	m.Matched("Numbers")
	m.Matched("Beans")
	m.Unmatched()
	m.Fault()
	timer := m.MapDuration()
	assert.NotNil(t, timer)
	timer.ObserveDuration()

	impl := m.(*conversionMetrics)
	assert.Equal(t, 2.0, testutil.ToFloat64(impl.matchedTotal.WithLabelValues("Numbers")))
	assert.Equal(t, 1.0, testutil.ToFloat64(impl.matchedTotal.WithLabelValues("Beans")))
	assert.Equal(t, 1.0, testutil.ToFloat64(impl.unmatchedTotal))
	assert.Equal(t, 1.0, testutil.ToFloat64(impl.faultsTotal))

	mfs, err := reg.Gather()
	require.NoError(t, err)
	names := make(map[string]bool)
	for _, mf := range mfs {
		names[mf.GetName()] = true
	}
	assert.True(t, names["transcoder_conversions_matched_total"])
	assert.True(t, names["transcoder_map_duration_seconds"])
}
