package benchmark

import (
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

// Metrics holds kernel run counters
type Metrics struct {
	Runs    prometheus.Counter
	Ops     prometheus.Counter
	Seconds prometheus.Histogram
}

// NewMetrics creates the kernel collectors and registers them with reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Runs: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "webbench",
			Subsystem: "kernel",
			Name:      "runs_total",
			Help:      "Number of completed kernel runs.",
		}),
		Ops: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "webbench",
			Subsystem: "kernel",
			Name:      "ops_total",
			Help:      "Kernel iterations executed across all runs.",
		}),
		Seconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "webbench",
			Subsystem: "kernel",
			Name:      "run_seconds",
			Help:      "Wall time of a single kernel run.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10),
		}),
	}
	if reg != nil {
		reg.MustRegister(m.Runs, m.Ops, m.Seconds)
	}
	return m
}

// Observe records a finished run. Safe on a nil receiver.
func (m *Metrics) Observe(res Result) {
	if m == nil {
		return
	}
	m.Runs.Inc()
	m.Ops.Add(float64(res.Ops))
	m.Seconds.Observe(res.Seconds)
}

// Totals is a point-in-time read of the kernel collectors
type Totals struct {
	Runs    uint64
	Ops     uint64
	Seconds float64
}

// Totals reads the current collector values. Safe on a nil receiver.
func (m *Metrics) Totals() Totals {
	if m == nil {
		return Totals{}
	}

	var runs, ops, seconds dto.Metric
	// Write only fails for malformed label sets, which these collectors do not have.
	_ = m.Runs.Write(&runs)
	_ = m.Ops.Write(&ops)
	_ = m.Seconds.Write(&seconds)

	return Totals{
		Runs:    uint64(runs.GetCounter().GetValue()),
		Ops:     uint64(ops.GetCounter().GetValue()),
		Seconds: seconds.GetHistogram().GetSampleSum(),
	}
}
