package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/IvanShishkin/dirhound/internal/config"
	"github.com/IvanShishkin/dirhound/pkg/models"
	"go.uber.org/zap"
)

// Format is a report output format
type Format string

const (
	FormatConsole  Format = "console"
	FormatText     Format = "text"
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
	FormatMarkdown Format = "md"
	FormatHTML     Format = "html"
)

// ParseFormat normalizes a user supplied format name. An empty name means console.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "console":
		return FormatConsole, nil
	case "txt", "text":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "md", "markdown":
		return FormatMarkdown, nil
	case "html":
		return FormatHTML, nil
	default:
		return "", fmt.Errorf("unknown report format: %s", name)
	}
}

// Extension returns the file extension used for reports of this format
func (f Format) Extension() string {
	switch f {
	case FormatText, FormatConsole:
		return "txt"
	default:
		return string(f)
	}
}

// DefaultFileName returns the file name used when no output file is configured
func DefaultFileName(format Format, t time.Time) string {
	return fmt.Sprintf("DIRHOUND-REPORT-%s.%s", t.Format("20060102-150405"), format.Extension())
}

// FormatDuration formats duration to a human-readable string with max 2 decimal places
func FormatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%.2fms", float64(d.Nanoseconds())/1e6)
	} else if d < time.Minute {
		return fmt.Sprintf("%.2fs", d.Seconds())
	} else if d < time.Hour {
		mins := int(d.Minutes())
		secs := d.Seconds() - float64(mins*60)
		return fmt.Sprintf("%dm%.2fs", mins, secs)
	}
	hours := int(d.Hours())
	mins := int(d.Minutes()) - hours*60
	secs := d.Seconds() - float64(hours*3600) - float64(mins*60)
	return fmt.Sprintf("%dh%dm%.2fs", hours, mins, secs)
}

// FormatSize formats a byte count using binary units
func FormatSize(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}

// age returns how long before the scan a file was last modified, in whole days
func age(report *models.AnalysisReport, f models.FileRecord) int {
	return int(report.ScannedAt.Sub(f.LastModified) / (24 * time.Hour))
}

// Generator renders analysis reports
type Generator struct {
	config *config.Config
	logger *zap.Logger
}

// NewGenerator creates a new report generator
func NewGenerator(cfg *config.Config, logger *zap.Logger) *Generator {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Generator{
		config: cfg,
		logger: logger,
	}
}

// Generate writes report to w in the given format
func (g *Generator) Generate(w io.Writer, report *models.AnalysisReport, format Format) error {
	g.logger.Debug("Generating report", zap.String("format", string(format)))

	var err error
	switch format {
	case FormatConsole, "":
		err = g.generateConsole(w, report)
	case FormatText:
		err = g.generateText(w, report)
	case FormatJSON:
		err = g.generateJSON(w, report)
	case FormatYAML:
		err = g.generateYAML(w, report)
	case FormatMarkdown:
		err = g.generateMarkdown(w, report)
	case FormatHTML:
		err = g.generateHTML(w, report)
	default:
		return fmt.Errorf("unknown report format: %s", format)
	}

	if err != nil {
		return fmt.Errorf("failed to generate %s report: %w", format, err)
	}
	return nil
}
