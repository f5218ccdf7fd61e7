package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/IvanShishkin/dirhound/pkg/models"
)

// generateMarkdown generates a Markdown report
func (g *Generator) generateMarkdown(w io.Writer, report *models.AnalysisReport) error {
	var sb strings.Builder
	stats := report.Stats

	// Header
	sb.WriteString(fmt.Sprintf("# Dirhound Directory Report v%s\n\n", report.Version))

	// Summary
	sb.WriteString("## Summary\n\n")
	sb.WriteString("| Parameter | Value |\n")
	sb.WriteString("|-----------|-------|\n")
	sb.WriteString(fmt.Sprintf("| Scan Path | `%s` |\n", report.Root))
	sb.WriteString(fmt.Sprintf("| Threshold | %d days |\n", report.ThresholdDays))
	sb.WriteString(fmt.Sprintf("| Start Time | %s |\n", report.StartTime.Format(timeLayout)))
	sb.WriteString(fmt.Sprintf("| Duration | %s |\n", FormatDuration(report.Duration)))
	sb.WriteString(fmt.Sprintf("| Total Files | %d |\n", stats.TotalFiles))
	sb.WriteString(fmt.Sprintf("| Total Size | %s |\n", FormatSize(stats.TotalSize)))
	sb.WriteString(fmt.Sprintf("| **Unused Files** | **%d** |\n", len(report.UnusedFiles)))
	sb.WriteString(fmt.Sprintf("| **Duplicate Groups** | **%d** |\n", len(report.DuplicateGroups)))
	sb.WriteString(fmt.Sprintf("| **Empty Directories** | **%d** |\n", len(report.EmptyDirectories)))
	sb.WriteString(fmt.Sprintf("| Reclaimable | %s |\n", FormatSize(stats.ReclaimableBytes)))
	sb.WriteString("\n")

	if report.Cancelled {
		sb.WriteString("> ⚠️ **Scan cancelled, results are partial**\n\n")
	}

	if !report.HasFindings() {
		sb.WriteString("> ✅ **Nothing to clean up**\n\n")
	}

	if len(report.UnusedFiles) > 0 {
		sb.WriteString("## Unused Files\n\n")
		sb.WriteString("| File | Age | Size |\n")
		sb.WriteString("|------|-----|------|\n")
		for _, f := range report.UnusedFiles {
			sb.WriteString(fmt.Sprintf("| `%s` | %d days | %s |\n", escapeMarkdown(f.Path), age(report, f), FormatSize(f.Size)))
		}
		sb.WriteString("\n")
	}

	if len(report.DuplicateGroups) > 0 {
		sb.WriteString("## Duplicate Groups\n\n")
		for i, group := range report.DuplicateGroups {
			sb.WriteString(fmt.Sprintf("### Group %d: %d files, %s each\n\n", i+1, len(group.Files), FormatSize(group.Size)))
			for _, f := range group.Files {
				sb.WriteString(fmt.Sprintf("- `%s`\n", escapeMarkdown(f.Path)))
			}
			sb.WriteString("\n")
		}
	}

	if len(report.EmptyDirectories) > 0 {
		sb.WriteString("## Empty Directories\n\n")
		for _, d := range report.EmptyDirectories {
			sb.WriteString(fmt.Sprintf("- `%s`\n", escapeMarkdown(d.Path)))
		}
		sb.WriteString("\n")
	}

	if len(report.Warnings) > 0 {
		sb.WriteString("## Warnings\n\n")
		sb.WriteString("| Kind | Path | Message |\n")
		sb.WriteString("|------|------|---------|\n")
		for _, warn := range report.Warnings {
			sb.WriteString(fmt.Sprintf("| %s | `%s` | %s |\n", warn.Kind, escapeMarkdown(warn.Path), escapeMarkdown(warn.Message)))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("---\n\n")
	sb.WriteString(fmt.Sprintf("*Generated by dirhound v%s*\n", report.Version))

	_, err := io.WriteString(w, sb.String())
	return err
}

// escapeMarkdown keeps paths from breaking table cells and code spans
func escapeMarkdown(s string) string {
	s = strings.ReplaceAll(s, "|", "\\|")
	s = strings.ReplaceAll(s, "`", "'")
	return s
}
