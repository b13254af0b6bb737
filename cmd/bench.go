package cmd

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/tclemos/webbench/benchmark"
)

var (
	benchOps         uint64
	benchRuns        int
	benchConcurrency int
	benchmarkID      string
)

// benchCmd runs the kernel locally without the HTTP server
var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Run the CPU micro-benchmark kernel locally",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := benchmark.Config{
			Ops:         benchOps,
			Runs:        benchRuns,
			Concurrency: benchConcurrency,
			BenchmarkID: benchmarkID,
			Metrics:     benchmark.NewMetrics(prometheus.NewRegistry()),
		}
		if _, err := benchmark.RunBenchmark(cfg); err != nil {
			log.Fatal().Err(err).Msg("Benchmark failed")
		}
	},
}

func init() {
	rootCmd.AddCommand(benchCmd)

	benchCmd.Flags().Uint64Var(&benchOps, "ops", benchmark.DefaultOps, "Kernel iterations per run")
	benchCmd.Flags().IntVar(&benchRuns, "runs", 1, "Number of kernel runs")
	benchCmd.Flags().IntVar(&benchConcurrency, "concurrency", 1, "Number of concurrent workers")
	benchCmd.Flags().StringVar(&benchmarkID, "benchmark-id", "default", "Optional benchmark ID tag for logs")
}
