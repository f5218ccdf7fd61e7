package main

import (
	"fmt"
	"os"

	"github.com/IvanShishkin/dirhound/internal/core"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	version    = core.Version
	verbose    bool
	configPath string
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "dirhound",
		Short: "Dirhound - find stale files, duplicates and empty directories",
		Long: `Scans a directory tree once and reports files unused beyond an age threshold,
groups of files with identical content, and directories with no entries.
Nothing on disk is modified.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Run: func(cmd *cobra.Command, args []string) {
			printMainBanner()
			cmd.Help()
		},
	}

	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: ./dirhound.yaml or ~/.config/dirhound/dirhound.yaml)")

	rootCmd.AddCommand(scanCmd())
	rootCmd.AddCommand(detectorsCmd())

	return rootCmd
}

// newLogger returns a development logger under --verbose and an error-only
// JSON logger on stderr otherwise
func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.Config{
		Level:            zap.NewAtomicLevelAt(zapcore.ErrorLevel),
		Encoding:         "json",
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
		EncoderConfig:    zap.NewProductionEncoderConfig(),
	}
	return cfg.Build()
}

// printMainBanner prints the main banner
func printMainBanner() {
	accent := color.New(color.FgYellow)
	gray := color.New(color.FgHiBlack)

	fmt.Println()
	accent.Println("█▀▄ █ █▀█ █ █ █▀█ █ █ █▄ █ █▀▄")
	accent.Println("█▄▀ █ █▀▄ █▀█ █▄█ █▄█ █ ▀█ █▄▀")
	fmt.Println()
	gray.Printf("Directory Analyzer v%s\n", version)
	fmt.Println()
}
