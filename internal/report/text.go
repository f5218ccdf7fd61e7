package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/IvanShishkin/dirhound/pkg/models"
)

const timeLayout = "2006-01-02 15:04:05"

// generateText generates a plain text report
func (g *Generator) generateText(w io.Writer, report *models.AnalysisReport) error {
	var sb strings.Builder
	stats := report.Stats

	// Header
	sb.WriteString(strings.Repeat("=", 79) + "\n")
	sb.WriteString(fmt.Sprintf("  DIRHOUND DIRECTORY REPORT v%s\n", report.Version))
	sb.WriteString(strings.Repeat("=", 79) + "\n\n")

	// Summary
	sb.WriteString("SUMMARY\n")
	sb.WriteString(strings.Repeat("-", 79) + "\n")
	sb.WriteString(fmt.Sprintf("Scan ID:          %s\n", report.ScanID))
	sb.WriteString(fmt.Sprintf("Scan Path:        %s\n", report.Root))
	sb.WriteString(fmt.Sprintf("Threshold:        %d days\n", report.ThresholdDays))
	sb.WriteString(fmt.Sprintf("Start Time:       %s\n", report.StartTime.Format(timeLayout)))
	sb.WriteString(fmt.Sprintf("End Time:         %s\n", report.EndTime.Format(timeLayout)))
	sb.WriteString(fmt.Sprintf("Duration:         %s\n", FormatDuration(report.Duration)))
	sb.WriteString(fmt.Sprintf("Detectors:        %s\n", strings.Join(report.Detectors, ", ")))
	sb.WriteString(fmt.Sprintf("Total Files:      %d\n", stats.TotalFiles))
	sb.WriteString(fmt.Sprintf("Total Dirs:       %d\n", stats.TotalDirs))
	sb.WriteString(fmt.Sprintf("Total Size:       %s\n", FormatSize(stats.TotalSize)))
	sb.WriteString(fmt.Sprintf("Skipped Entries:  %d\n", stats.SkippedEntries))
	if report.Cancelled {
		sb.WriteString("Status:           CANCELLED (partial results)\n")
	}
	sb.WriteString("\n")

	if !report.HasFindings() {
		sb.WriteString("Nothing to clean up.\n\n")
	}

	if len(report.UnusedFiles) > 0 {
		sb.WriteString(fmt.Sprintf("UNUSED FILES (%d, %s)\n", len(report.UnusedFiles), FormatSize(stats.UnusedSize)))
		sb.WriteString(strings.Repeat("-", 79) + "\n")
		for _, f := range report.UnusedFiles {
			sb.WriteString(fmt.Sprintf("%-50s %5d days  %10s\n", f.Path, age(report, f), FormatSize(f.Size)))
		}
		sb.WriteString("\n")
	}

	if len(report.DuplicateGroups) > 0 {
		sb.WriteString(fmt.Sprintf("DUPLICATE GROUPS (%d, %s reclaimable)\n",
			len(report.DuplicateGroups), FormatSize(stats.ReclaimableBytes)))
		sb.WriteString(strings.Repeat("=", 79) + "\n\n")
		for i, group := range report.DuplicateGroups {
			sb.WriteString(fmt.Sprintf("[%d] %d files, %s each\n", i+1, len(group.Files), FormatSize(group.Size)))
			sb.WriteString(strings.Repeat("-", 79) + "\n")
			sb.WriteString(fmt.Sprintf("Fingerprint: %s\n", group.Fingerprint))
			for _, f := range group.Files {
				sb.WriteString(fmt.Sprintf("  %s\n", f.Path))
			}
			sb.WriteString("\n")
		}
	}

	if len(report.EmptyDirectories) > 0 {
		sb.WriteString(fmt.Sprintf("EMPTY DIRECTORIES (%d)\n", len(report.EmptyDirectories)))
		sb.WriteString(strings.Repeat("-", 79) + "\n")
		for _, d := range report.EmptyDirectories {
			sb.WriteString(d.Path + "\n")
		}
		sb.WriteString("\n")
	}

	if len(report.Symlinks) > 0 {
		sb.WriteString(fmt.Sprintf("SYMLINKS (%d, not followed)\n", len(report.Symlinks)))
		sb.WriteString(strings.Repeat("-", 79) + "\n")
		for _, l := range report.Symlinks {
			sb.WriteString(fmt.Sprintf("%s -> %s\n", l.Path, l.Target))
		}
		sb.WriteString("\n")
	}

	if len(report.Warnings) > 0 {
		sb.WriteString(fmt.Sprintf("WARNINGS (%d)\n", len(report.Warnings)))
		sb.WriteString(strings.Repeat("-", 79) + "\n")
		for _, warn := range report.Warnings {
			sb.WriteString(fmt.Sprintf("[%s] %s %s\n", warn.Kind, warn.Path, warn.Message))
		}
		sb.WriteString("\n")
	}

	// Performance stats
	sb.WriteString("PERFORMANCE\n")
	sb.WriteString(strings.Repeat("-", 79) + "\n")
	sb.WriteString(fmt.Sprintf("Fingerprinted:    %d files\n", stats.FingerprintedFiles))
	sb.WriteString(fmt.Sprintf("Read Errors:      %d\n", stats.ReadErrors))
	sb.WriteString(fmt.Sprintf("Workers Used:     %d\n", stats.WorkersUsed))
	sb.WriteString("\n")

	// Footer
	sb.WriteString(strings.Repeat("=", 79) + "\n")
	sb.WriteString("End of Report\n")
	sb.WriteString(strings.Repeat("=", 79) + "\n")

	_, err := io.WriteString(w, sb.String())
	return err
}
