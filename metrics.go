// SPDX-License-Identifier: EPL-2.0

package audtempo

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Resource labels used by Metrics.
const (
	ResourceRuntime = "runtime"
	ResourceSource  = "source"
	ResourceSink    = "sink"
	ResourceChain   = "chain"
)

// Metrics counts tempo runs. Every resource a run opens is released
// exactly once, so opened and released agree per resource between runs.
type Metrics struct {
	Runs             *prometheus.CounterVec
	StageFailures    *prometheus.CounterVec
	FlowSoftFailures prometheus.Counter
	FlowDuration     prometheus.Histogram
	Opened           *prometheus.CounterVec
	Released         *prometheus.CounterVec
}

// NewMetrics registers the run metrics on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)

	return &Metrics{
		Runs: f.NewCounterVec(prometheus.CounterOpts{
			Name: "audtempo_runs_total",
			Help: "Total tempo runs by result",
		}, []string{"result"}),
		StageFailures: f.NewCounterVec(prometheus.CounterOpts{
			Name: "audtempo_stage_failures_total",
			Help: "Fatal run failures by the state they happened in",
		}, []string{"state"}),
		FlowSoftFailures: f.NewCounter(prometheus.CounterOpts{
			Name: "audtempo_flow_soft_failures_total",
			Help: "Flows that stopped on an error and were still reported as success",
		}),
		FlowDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "audtempo_flow_duration_seconds",
			Help:    "Duration of the sample flow of a run",
			Buckets: prometheus.ExponentialBuckets(0.001, 2.0, 15), // 1ms to ~16s
		}),
		Opened: f.NewCounterVec(prometheus.CounterOpts{
			Name: "audtempo_resources_opened_total",
			Help: "Resources acquired by runs",
		}, []string{"resource"}),
		Released: f.NewCounterVec(prometheus.CounterOpts{
			Name: "audtempo_resources_released_total",
			Help: "Resources released by runs",
		}, []string{"resource"}),
	}
}
