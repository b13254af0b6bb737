package benchmark

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
)

// Config defines the local benchmark parameters passed from CLI
type Config struct {
	Ops         uint64   // kernel iterations per run
	Runs        int      // number of kernel runs
	Concurrency int      // number of concurrent workers
	BenchmarkID string   // optional label for this benchmark run
	Metrics     *Metrics // optional, nil disables
}

// Summary aggregates the runs of a local benchmark
type Summary struct {
	Runs         int
	Ops          uint64        // per run
	Acc          uint64        // identical across runs
	Wall         time.Duration // from first dispatch to last completion
	TotalSeconds float64       // sum of per-run kernel time
	MeanMOps     float64       // mean of per-run mops_per_sec
	BestMOps     float64
}

// ErrAccMismatch is returned when two runs of the same op count disagree
var ErrAccMismatch = errors.New("kernel accumulator differs between runs")

// RunBenchmark runs the kernel cfg.Runs times across cfg.Concurrency workers
// and logs per-run and aggregate throughput.
func RunBenchmark(cfg Config) (Summary, error) {
	if cfg.Runs <= 0 {
		cfg.Runs = 1
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 1
	}
	initialLog(cfg)

	jobs := make(chan int, cfg.Runs)
	results := make(chan Result, cfg.Runs)
	var wg sync.WaitGroup
	var completed uint64

	for run := 0; run < cfg.Runs; run++ {
		jobs <- run
	}
	close(jobs)

	start := time.Now()
	for w := 0; w < cfg.Concurrency; w++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			for run := range jobs {
				res := Measure(cfg.Ops)
				cfg.Metrics.Observe(res)
				atomic.AddUint64(&completed, 1)

				log.Debug().
					Int("worker", workerID).
					Int("run", run).
					Float64("seconds", res.Seconds).
					Float64("mops_per_sec", res.MOpsPerSec).
					Uint64("acc", res.Acc).
					Msg("Run complete")
				results <- res
			}
		}(w)
	}

	// print progress every second while workers are running
	chDone := make(chan struct{})
	go func() {
		ticker := time.NewTicker(time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-chDone:
				return
			case <-ticker.C:
				log.Info().Uint64("completed_runs", atomic.LoadUint64(&completed)).Msg("Runs in progress")
			}
		}
	}()

	wg.Wait()
	close(chDone)
	close(results)

	summary := Summary{Runs: cfg.Runs, Ops: cfg.Ops, Wall: time.Since(start)}
	first := true
	for res := range results {
		if first {
			summary.Acc = res.Acc
			first = false
		} else if res.Acc != summary.Acc {
			return summary, fmt.Errorf("%w: %d != %d", ErrAccMismatch, res.Acc, summary.Acc)
		}
		summary.TotalSeconds += res.Seconds
		summary.MeanMOps += res.MOpsPerSec
		if res.MOpsPerSec > summary.BestMOps {
			summary.BestMOps = res.MOpsPerSec
		}
	}
	summary.MeanMOps /= float64(summary.Runs)

	log.Info().
		Str("benchmark_id", cfg.BenchmarkID).
		Int("runs", summary.Runs).
		Uint64("ops", summary.Ops).
		Uint64("acc", summary.Acc).
		Dur("wall", summary.Wall).
		Float64("total_kernel_seconds", summary.TotalSeconds).
		Float64("mean_mops_per_sec", summary.MeanMOps).
		Float64("best_mops_per_sec", summary.BestMOps).
		Msg("Benchmark complete")

	if cfg.Metrics != nil {
		totals := cfg.Metrics.Totals()
		log.Info().
			Uint64("runs_total", totals.Runs).
			Uint64("ops_total", totals.Ops).
			Float64("run_seconds_sum", totals.Seconds).
			Msg("Kernel metrics")
	}

	return summary, nil
}

func initialLog(cfg Config) {
	log.Info().
		Str("benchmark_id", cfg.BenchmarkID).
		Uint64("ops", cfg.Ops).
		Int("runs", cfg.Runs).
		Int("concurrency", cfg.Concurrency).
		Msg("Starting benchmark")
}
