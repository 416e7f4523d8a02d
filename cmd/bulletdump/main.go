// bulletdump converts a quantised bullet network (bin/quantised.bin) into
// plain text parameter files under output/.
//
// Usage:
//
//	bulletdump [--input bin/quantised.bin] [--output output] [--strict] [--arrow]
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/23skdu/longbow-bullet/internal/config"
	"github.com/23skdu/longbow-bullet/internal/convert"
	"github.com/23skdu/longbow-bullet/internal/logger"
)

var (
	configPath  string
	inputPath   string
	outputDir   string
	strict      bool
	arrowExport bool
	metricsFile string
	logLevel    string
	logFormat   string
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "bulletdump",
		Short:         "Dump quantised perspective network weights as plain text",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runDump,
	}

	f := cmd.Flags()
	f.StringVar(&configPath, "config", "", "YAML config file")
	f.StringVar(&inputPath, "input", config.DefaultInputPath, "Quantised weight file")
	f.StringVar(&outputDir, "output", config.DefaultOutputDir, "Output directory")
	f.BoolVar(&strict, "strict", false, "Fail when the weight count does not match the topology")
	f.BoolVar(&arrowExport, "arrow", false, "Also write segments to an Arrow IPC file")
	f.StringVar(&metricsFile, "metrics-file", "", "Write Prometheus metrics to this textfile")
	f.StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	f.StringVar(&logFormat, "log-format", "console", "Log format (console, json)")
	return cmd
}

// loadConfig applies explicitly set flags over the config file or defaults.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg := config.Default()
	if configPath != "" {
		var err error
		if cfg, err = config.Load(configPath); err != nil {
			return cfg, err
		}
	}

	f := cmd.Flags()
	if f.Changed("input") {
		cfg.InputPath = inputPath
	}
	if f.Changed("output") {
		cfg.OutputDir = outputDir
	}
	if f.Changed("strict") {
		cfg.Strict = strict
	}
	if f.Changed("arrow") {
		cfg.ArrowExport = arrowExport
	}
	if f.Changed("metrics-file") {
		cfg.MetricsFile = metricsFile
	}
	if f.Changed("log-level") {
		cfg.LogLevel = logLevel
	}
	if f.Changed("log-format") {
		cfg.LogFormat = logFormat
	}
	return cfg, nil
}

func runDump(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger.Setup(cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	_, err = convert.Run(ctx, cfg)
	return err
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		logger.Log.Error("bulletdump failed", "error", err)
		os.Exit(1)
	}
}
