package benchmark

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRunBenchmark(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewMetrics(reg)

	summary, err := RunBenchmark(Config{
		Ops:         10_000,
		Runs:        6,
		Concurrency: 3,
		BenchmarkID: "test",
		Metrics:     metrics,
	})
	if err != nil {
		t.Fatal(err)
	}
	if summary.Runs != 6 || summary.Ops != 10_000 {
		t.Errorf("summary = %+v", summary)
	}
	if summary.Acc != referenceAcc(10_000) {
		t.Errorf("acc = %d, want %d", summary.Acc, referenceAcc(10_000))
	}
	if summary.BestMOps <= 0 {
		t.Errorf("best_mops_per_sec = %v, want > 0", summary.BestMOps)
	}

	if got := testutil.ToFloat64(metrics.Runs); got != 6 {
		t.Errorf("runs_total = %v, want 6", got)
	}
	if got := testutil.ToFloat64(metrics.Ops); got != 60_000 {
		t.Errorf("ops_total = %v, want 60000", got)
	}

	totals := metrics.Totals()
	if totals.Runs != 6 || totals.Ops != 60_000 {
		t.Errorf("totals = %+v", totals)
	}
	if totals.Seconds < 0 {
		t.Errorf("run_seconds_sum = %v", totals.Seconds)
	}
}

func TestRunBenchmarkDefaults(t *testing.T) {
	summary, err := RunBenchmark(Config{Ops: 1})
	if err != nil {
		t.Fatal(err)
	}
	if summary.Runs != 1 || summary.Acc != 1013904223 {
		t.Errorf("summary = %+v", summary)
	}
}

func TestMetricsNilSafe(t *testing.T) {
	var m *Metrics
	m.Observe(Result{Ops: 1})
	if totals := m.Totals(); totals != (Totals{}) {
		t.Errorf("nil totals = %+v", totals)
	}
}
