// SPDX-License-Identifier: EPL-2.0

package audtempo_test

import (
	"testing"

	"github.com/ik5/audtempo"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMetricsRegisters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := audtempo.NewMetrics(reg)

	m.Runs.WithLabelValues("success").Inc()
	m.Opened.WithLabelValues(audtempo.ResourceSink).Inc()
	m.FlowDuration.Observe(0.01)

	assert.Equal(t, 1, testutil.CollectAndCount(m.Runs))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Runs.WithLabelValues("success")))

	families, err := reg.Gather()
	require.NoError(t, err)
	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.ElementsMatch(t, []string{
		"audtempo_runs_total",
		"audtempo_resources_opened_total",
		"audtempo_flow_soft_failures_total",
		"audtempo_flow_duration_seconds",
	}, names)

	// a second set on the same registry collides
	assert.Panics(t, func() { audtempo.NewMetrics(reg) })
}
