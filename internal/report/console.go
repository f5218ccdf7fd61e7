package report

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/IvanShishkin/dirhound/pkg/models"
	"github.com/fatih/color"
)

const rule = "───────────────────────────────────────────────────────────────"

type palette struct {
	title *color.Color
	label *color.Color
	good  *color.Color
	warn  *color.Color
	bad   *color.Color
	dim   *color.Color
	path  *color.Color
}

func newPalette(noColor bool) palette {
	p := palette{
		title: color.New(color.Bold, color.FgYellow),
		label: color.New(color.FgHiBlack),
		good:  color.New(color.Bold, color.FgGreen),
		warn:  color.New(color.FgYellow),
		bad:   color.New(color.Bold, color.FgRed),
		dim:   color.New(color.Faint),
		path:  color.New(color.FgCyan),
	}
	if noColor {
		for _, c := range []*color.Color{p.title, p.label, p.good, p.warn, p.bad, p.dim, p.path} {
			c.DisableColor()
		}
	}
	return p
}

// generateConsole prints a colored summary meant for a terminal
func (g *Generator) generateConsole(w io.Writer, report *models.AnalysisReport) error {
	bw := bufio.NewWriter(w)
	p := newPalette(g.config.NoColor)

	fmt.Fprintln(bw)
	if report.Cancelled {
		p.bad.Fprintln(bw, "SCAN CANCELLED (partial results)")
	} else {
		p.title.Fprintln(bw, "SCAN COMPLETE")
	}
	fmt.Fprintln(bw)

	stats := report.Stats
	fmt.Fprintf(bw, "  %s      %s\n", p.label.Sprint("Path:"), report.Root)
	fmt.Fprintf(bw, "  %s     %d files, %d directories, %s\n", p.label.Sprint("Files:"),
		stats.TotalFiles, stats.TotalDirs, FormatSize(stats.TotalSize))
	fmt.Fprintf(bw, "  %s %d days\n", p.label.Sprint("Threshold:"), report.ThresholdDays)
	fmt.Fprintf(bw, "  %s  %s\n", p.label.Sprint("Duration:"), FormatDuration(report.Duration))
	fmt.Fprintln(bw)

	if !report.HasFindings() {
		p.good.Fprintln(bw, "  ✓ Nothing to clean up")
	} else {
		fmt.Fprintln(bw, p.dim.Sprint(rule))
		g.consoleUnused(bw, p, report)
		g.consoleDuplicates(bw, p, report)
		g.consoleEmpty(bw, p, report)
		fmt.Fprintln(bw, p.dim.Sprint(rule))
	}

	if len(report.Warnings) > 0 {
		fmt.Fprintln(bw)
		p.warn.Fprintf(bw, "  ⚠ %d entries could not be analyzed\n", len(report.Warnings))
		for _, warn := range report.Warnings {
			if warn.Path != "" {
				fmt.Fprintf(bw, "      %s %s\n", p.path.Sprint(warn.Path), p.dim.Sprint(warn.Message))
			} else {
				fmt.Fprintf(bw, "      %s\n", p.dim.Sprint(warn.Message))
			}
		}
	}
	fmt.Fprintln(bw)

	return bw.Flush()
}

func (g *Generator) consoleUnused(w io.Writer, p palette, report *models.AnalysisReport) {
	if len(report.UnusedFiles) == 0 {
		return
	}
	fmt.Fprintln(w)
	p.warn.Fprintf(w, "  UNUSED FILES: %d (%s)\n", len(report.UnusedFiles), FormatSize(report.Stats.UnusedSize))
	for _, f := range report.UnusedFiles {
		fmt.Fprintf(w, "      %s  %s\n", p.path.Sprint(f.Path),
			p.dim.Sprintf("%d days, %s", age(report, f), FormatSize(f.Size)))
	}
}

func (g *Generator) consoleDuplicates(w io.Writer, p palette, report *models.AnalysisReport) {
	if len(report.DuplicateGroups) == 0 {
		return
	}
	fmt.Fprintln(w)
	p.bad.Fprintf(w, "  DUPLICATE GROUPS: %d (%s reclaimable)\n",
		len(report.DuplicateGroups), FormatSize(report.Stats.ReclaimableBytes))
	for i, group := range report.DuplicateGroups {
		fmt.Fprintf(w, "\n      %s %s\n", p.title.Sprintf("[%d]", i+1),
			p.dim.Sprintf("%d files × %s", len(group.Files), FormatSize(group.Size)))
		paths := make([]string, 0, len(group.Files))
		for _, f := range group.Files {
			paths = append(paths, p.path.Sprint(f.Path))
		}
		fmt.Fprintf(w, "          %s\n", strings.Join(paths, "\n          "))
	}
}

func (g *Generator) consoleEmpty(w io.Writer, p palette, report *models.AnalysisReport) {
	if len(report.EmptyDirectories) == 0 {
		return
	}
	fmt.Fprintln(w)
	p.warn.Fprintf(w, "  EMPTY DIRECTORIES: %d\n", len(report.EmptyDirectories))
	for _, d := range report.EmptyDirectories {
		fmt.Fprintf(w, "      %s\n", p.path.Sprint(d.Path))
	}
}
