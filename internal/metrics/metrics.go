// Package metrics records generation counts and stage durations in a
// private Prometheus registry. The registry can be written to a
// node-exporter textfile after a run.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "statnl"

// Recorder implements nl.Recorder.
type Recorder struct {
	registry *prometheus.Registry

	sentences     prometheus.Counter
	topics        prometheus.Counter
	skipped       *prometheus.CounterVec
	runs          *prometheus.CounterVec
	stageDuration *prometheus.HistogramVec
	lastSuccess   prometheus.Gauge
}

func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		sentences: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sentences_written_total",
			Help:      "Number of sentence rows written.",
		}),
		topics: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "topics_written_total",
			Help:      "Number of topic cache entries written.",
		}),
		skipped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "entities_skipped_total",
			Help:      "Number of malformed entities skipped, by reason.",
		}, []string{"reason"}),
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stage_runs_total",
			Help:      "Number of stage runs, by stage and status.",
		}, []string{"stage", "status"}),
		stageDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "stage_duration_seconds",
			Help:      "Duration of pipeline stages.",
			Buckets:   prometheus.ExponentialBuckets(0.01, 4, 8),
		}, []string{"stage"}),
		lastSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_success_timestamp_seconds",
			Help:      "Unix time of the last run in which every stage succeeded.",
		}),
	}

	r.registry.MustRegister(r.sentences, r.topics, r.skipped, r.runs, r.stageDuration, r.lastSuccess)
	return r
}

func (r *Recorder) SentencesWritten(n int) {
	r.sentences.Add(float64(n))
}

func (r *Recorder) EntitySkipped(reason string) {
	r.skipped.WithLabelValues(reason).Inc()
}

func (r *Recorder) TopicsWritten(n int) {
	r.topics.Add(float64(n))
}

// ObserveStage records the outcome and duration of one stage run.
func (r *Recorder) ObserveStage(stage string, d time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	r.runs.WithLabelValues(stage, status).Inc()
	r.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

// MarkSuccess sets the last success gauge to now.
func (r *Recorder) MarkSuccess(now time.Time) {
	r.lastSuccess.Set(float64(now.Unix()))
}

func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// WriteTextfile writes all metrics to path in the text exposition format.
// The file is replaced atomically.
func (r *Recorder) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.registry)
}
