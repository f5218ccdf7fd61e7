package main

import (
	"fmt"

	"github.com/IvanShishkin/dirhound/internal/config"
	"github.com/IvanShishkin/dirhound/internal/detectors"
	"github.com/IvanShishkin/dirhound/internal/detectors/duplicate"
	"github.com/IvanShishkin/dirhound/internal/detectors/empty"
	"github.com/IvanShishkin/dirhound/internal/detectors/stale"
	"github.com/spf13/cobra"
)

// detectorsCmd creates the detectors command
func detectorsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "detectors",
		Short: "List available detectors",
		Long:  `Display the analyses dirhound runs and whether the current configuration enables them.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(configPath)
			if err != nil {
				return err
			}

			all := []detectors.Detector{
				stale.NewDetector(cfg.ThresholdDays),
				duplicate.NewGrouper(nil, nil, cfg.Workers, cfg.MinDuplicateBytes(), nil),
				empty.NewDetector(),
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "DETECTORS:")
			for _, d := range all {
				mark := "✓"
				if !cfg.IsDetectorEnabled(d.Name()) {
					mark = "○"
				}
				fmt.Fprintf(out, "  %s %-12s %s\n", mark, d.Name(), d.Description())
			}
			fmt.Fprintln(out)
			fmt.Fprintln(out, "EXAMPLES:")
			fmt.Fprintln(out, "  dirhound scan ~/Downloads                       # All detectors, 30 day threshold")
			fmt.Fprintln(out, "  dirhound scan -t 90 /srv/share                  # Unused for more than 90 days")
			fmt.Fprintln(out, "  dirhound scan --detectors=duplicate --min-size=1M ~/Pictures")
			fmt.Fprintln(out, "  dirhound scan --disable=duplicate /data         # Never read file contents")
			fmt.Fprintln(out, "  dirhound scan -r json -o report.json .")
			return nil
		},
	}
}
