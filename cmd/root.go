package cmd

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/tclemos/webbench/server"
)

var (
	logFormat string

	addr          string
	templatesDir  string
	assetsDir     string
	maxOps        uint64
	enableMetrics bool
)

// rootCmd serves the site when called without a subcommand
var rootCmd = &cobra.Command{
	Use:   "webbench",
	Short: "Serve the landing page and the CPU micro-benchmark API",
	Args:  cobra.NoArgs,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupLog(logFormat)
	},
	Run: func(cmd *cobra.Command, args []string) {
		cfg := server.Config{
			Addr:          addr,
			TemplatesDir:  templatesDir,
			AssetsDir:     assetsDir,
			MaxOps:        maxOps,
			EnableMetrics: enableMetrics,
		}
		if err := serve(cfg); err != nil {
			log.Fatal().Err(err).Msg("Server failed")
		}
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serve(cfg server.Config) error {
	if _, err := os.Stat(cfg.AssetsDir); err != nil {
		log.Warn().Err(err).Str("assets_dir", cfg.AssetsDir).Msg("Assets directory unavailable")
	}

	srv, err := server.New(cfg, os.DirFS(cfg.TemplatesDir), os.DirFS(cfg.AssetsDir))
	if err != nil {
		return err
	}
	log.Info().Str("templates_dir", cfg.TemplatesDir).Msg("Templates loaded")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return srv.Run(ctx)
}

func setupLog(format string) {
	if strings.ToLower(format) == "json" {
		zerolog.TimeFieldFormat = time.RFC3339Nano
		log.Logger = log.Output(os.Stdout)
	} else {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"})
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "console", "Log format: 'json' or 'console'")

	rootCmd.Flags().StringVar(&addr, "addr", server.DefaultAddr, "Listen address")
	rootCmd.Flags().StringVar(&templatesDir, "templates-dir", server.DefaultTemplatesDir, "Directory holding the page templates")
	rootCmd.Flags().StringVar(&assetsDir, "assets-dir", server.DefaultAssetsDir, "Directory served under /assets/")
	rootCmd.Flags().Uint64Var(&maxOps, "max-ops", 0, "Reject bench requests above this op count (0 for unlimited)")
	rootCmd.Flags().BoolVar(&enableMetrics, "metrics", true, "Expose Prometheus metrics on /metrics")
}
