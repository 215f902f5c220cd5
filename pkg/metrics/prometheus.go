package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	runsTotal     *prometheus.CounterVec
	stageFailures *prometheus.CounterVec
	stageDuration *prometheus.HistogramVec
	discardedObs  *prometheus.CounterVec
	grossExposure prometheus.Gauge
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		runsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "alphaplan_runs_total",
				Help: "Total number of optimization runs by outcome",
			},
			[]string{"outcome"},
		),
		stageFailures: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "alphaplan_stage_failures_total",
				Help: "Total number of pipeline stage failures",
			},
			[]string{"stage"},
		),
		stageDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "alphaplan_stage_duration_seconds",
				Help:    "Duration of pipeline stages in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"stage"},
		),
		discardedObs: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "alphaplan_observations_discarded_total",
				Help: "Signal observations dropped during normalization",
			},
			[]string{"reason"},
		),
		grossExposure: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "alphaplan_plan_gross_exposure",
				Help: "Aggregate absolute exposure of the latest serialized plan",
			},
		),
	}
}

// RecordRun records a completed run by outcome ("ok" or "failed").
func (r *Recorder) RecordRun(outcome string) {
	r.runsTotal.WithLabelValues(outcome).Inc()
}

// RecordStageFailure records the stage a run died in.
func (r *Recorder) RecordStageFailure(stage string) {
	r.stageFailures.WithLabelValues(stage).Inc()
}

// RecordStageLatency records stage duration in seconds.
func (r *Recorder) RecordStageLatency(stage string, seconds float64) {
	r.stageDuration.WithLabelValues(stage).Observe(seconds)
}

// RecordDiscardedObservation records a dropped observation by reason.
func (r *Recorder) RecordDiscardedObservation(reason string) {
	r.discardedObs.WithLabelValues(reason).Inc()
}

// RecordGrossExposure records the gross exposure of the latest plan.
func (r *Recorder) RecordGrossExposure(v float64) {
	r.grossExposure.Set(v)
}
