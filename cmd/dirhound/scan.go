package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/IvanShishkin/dirhound/internal/config"
	"github.com/IvanShishkin/dirhound/internal/core"
	"github.com/IvanShishkin/dirhound/internal/report"
	"github.com/IvanShishkin/dirhound/pkg/models"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type scanOptions struct {
	threshold    int
	workers      int
	minSize      string
	exclude      []string
	detectors    []string
	disable      []string
	reportFormat string
	outputFile   string
	noColor      bool
	noProgress   bool
}

// scanCmd creates the scan command
func scanCmd() *cobra.Command {
	opts := &scanOptions{}

	cmd := &cobra.Command{
		Use:   "scan [path]",
		Short: "Analyze a directory for stale files, duplicates and empty directories",
		Long: `Walk a directory once and report:
  - files not modified for more than --threshold days
  - groups of files with byte-identical content
  - directories with no entries`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(verbose)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
				return err
			}
			defer logger.Sync()

			cfg, err := config.LoadConfig(configPath)
			if err != nil {
				logger.Error("Failed to load config", zap.Error(err))
				return err
			}
			if err := applyFlags(cmd, cfg, opts); err != nil {
				return err
			}

			format, err := report.ParseFormat(cfg.ReportFormat)
			if err != nil {
				return err
			}
			if cfg.NoColor {
				color.NoColor = true
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return runScan(ctx, cmd, args[0], cfg, format, opts, logger)
		},
	}

	// Scan flags
	cmd.Flags().IntVarP(&opts.threshold, "threshold", "t", config.DefaultThresholdDays, "Days without modification before a file counts as unused")
	cmd.Flags().IntVar(&opts.workers, "workers", 0, "Number of fingerprinting goroutines (default: CPU cores * 2)")
	cmd.Flags().StringVar(&opts.minSize, "min-size", "", "Smallest file size considered for duplicates, e.g. 4K, 1M")
	cmd.Flags().StringSliceVar(&opts.exclude, "exclude", nil, "Directory names to skip (comma-separated)")
	cmd.Flags().StringSliceVar(&opts.detectors, "detectors", nil, "Run only these detectors: stale, duplicate, empty (comma-separated)")
	cmd.Flags().StringSliceVar(&opts.disable, "disable", nil, "Disable specific detectors (comma-separated)")

	// Report flags
	cmd.Flags().StringVarP(&opts.reportFormat, "report", "r", "", "Report format: text, json, yaml, md, html (default: console output)")
	cmd.Flags().StringVarP(&opts.outputFile, "output", "o", "", "Output file path")
	cmd.Flags().BoolVar(&opts.noColor, "no-color", false, "Disable colored output")
	cmd.Flags().BoolVar(&opts.noProgress, "no-progress", false, "Disable the progress display")

	return cmd
}

// applyFlags overrides config values with flags given on the command line
func applyFlags(cmd *cobra.Command, cfg *config.Config, opts *scanOptions) error {
	flags := cmd.Flags()
	if flags.Changed("threshold") {
		cfg.ThresholdDays = opts.threshold
	}
	if opts.workers > 0 {
		cfg.Workers = opts.workers
	}
	if opts.minSize != "" {
		cfg.MinDuplicateSize = opts.minSize
	}
	if flags.Changed("exclude") {
		cfg.Exclude = opts.exclude
	}
	if len(opts.detectors) > 0 {
		cfg.Detectors = opts.detectors
	}
	if len(opts.disable) > 0 {
		cfg.Disable = opts.disable
	}
	if opts.reportFormat != "" {
		cfg.ReportFormat = opts.reportFormat
	}
	if opts.outputFile != "" {
		cfg.OutputFile = opts.outputFile
	}
	if opts.noColor {
		cfg.NoColor = true
	}
	return cfg.Validate()
}

func runScan(ctx context.Context, cmd *cobra.Command, path string, cfg *config.Config, format report.Format, opts *scanOptions, logger *zap.Logger) error {
	stdout := cmd.OutOrStdout()
	stderr := cmd.ErrOrStderr()

	var scanOpts []core.Option
	if !opts.noProgress && isTerminal(os.Stderr) {
		scanOpts = append(scanOpts, core.WithProgressCallback(newProgressPrinter(stderr).Update))
	}

	scanner := core.NewScanner(cfg, logger, scanOpts...)
	result, err := scanner.AnalyzeDirectory(ctx, path, cfg.ThresholdDays)
	if err != nil {
		logger.Error("Scan failed", zap.Error(err))
		return err
	}

	generator := report.NewGenerator(cfg, logger)

	outputFile := cfg.OutputFile
	if outputFile == "" && format != report.FormatConsole {
		outputFile = report.DefaultFileName(format, time.Now())
	}
	if outputFile == "" {
		return generator.Generate(stdout, result, format)
	}

	if err := writeReportFile(generator, outputFile, result, format); err != nil {
		logger.Error("Failed to write report", zap.Error(err))
		return err
	}

	absPath, _ := filepath.Abs(outputFile)
	fmt.Fprintf(stdout, "  %s %s\n", color.New(color.FgHiBlack).Sprint("Report:"), color.New(color.FgYellow).Sprint(absPath))
	if result.Cancelled {
		fmt.Fprintln(stderr, "  Scan cancelled, report is partial")
	}
	return nil
}

func writeReportFile(generator *report.Generator, path string, result *models.AnalysisReport, format report.Format) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	if err := generator.Generate(f, result, format); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
