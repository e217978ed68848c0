// Package metrics exports transfer engine counters to Prometheus.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/LeJamon/goHederad/internal/core/tx"
)

const namespace = "hederad"

// Recorder implements tx.MetricsRecorder on top of Prometheus collectors.
type Recorder struct {
	transfers *prometheus.CounterVec
	levels    prometheus.Histogram
	latency   prometheus.Histogram
	created   *prometheus.CounterVec
}

var _ tx.MetricsRecorder = (*Recorder)(nil)

// NewRecorder creates the collectors and registers them with reg. A nil reg
// leaves them unregistered.
func NewRecorder(reg prometheus.Registerer) (*Recorder, error) {
	r := &Recorder{
		transfers: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "transfer",
			Name:      "results_total",
			Help:      "Crypto transfers processed, by result status.",
		}, []string{"status"}),
		levels: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "transfer",
			Name:      "levels",
			Help:      "Number of custom fee levels assessed per transfer.",
			Buckets:   []float64{1, 2, 3, 4, 6, 8},
		}),
		latency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "transfer",
			Name:      "apply_seconds",
			Help:      "Time spent applying a transfer, including rejected ones.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		}),
		created: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "accounts",
			Name:      "created_total",
			Help:      "Accounts created from aliases during transfers, by kind.",
		}, []string{"kind"}),
	}
	if reg != nil {
		for _, c := range []prometheus.Collector{r.transfers, r.levels, r.latency, r.created} {
			if err := reg.Register(c); err != nil {
				return nil, err
			}
		}
	}
	return r, nil
}

// TransferApplied records the outcome of one transfer.
func (r *Recorder) TransferApplied(result tx.Result, levels int, elapsed time.Duration) {
	r.transfers.WithLabelValues(result.String()).Inc()
	if levels > 0 {
		r.levels.Observe(float64(levels))
	}
	r.latency.Observe(elapsed.Seconds())
}

// AccountsCreated adds the auto and lazy creations of a committed transfer.
func (r *Recorder) AccountsCreated(auto, lazy int) {
	if auto > 0 {
		r.created.WithLabelValues("auto").Add(float64(auto))
	}
	if lazy > 0 {
		r.created.WithLabelValues("lazy").Add(float64(lazy))
	}
}
