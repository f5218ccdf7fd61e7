package report

import (
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/IvanShishkin/dirhound/pkg/models"
)

const htmlHead = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Dirhound Directory Report</title>
    <style>
        :root {
            --bg-primary: #0C0C0C;
            --bg-secondary: #161616;
            --bg-tertiary: #1C1C1C;
            --text-primary: #ECECEC;
            --text-secondary: #A0A0A0;
            --text-muted: #6B6B6B;
            --accent: #D97706;
            --border-color: #2A2A2A;
            --bad-color: #EF4444;
            --warn-color: #EAB308;
            --good-color: #22C55E;
        }
        * { margin: 0; padding: 0; box-sizing: border-box; }
        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', sans-serif;
            background: var(--bg-primary);
            color: var(--text-primary);
            padding: 32px 24px;
            line-height: 1.5;
        }
        .container { max-width: 1100px; margin: 0 auto; }
        h1 { font-size: 24px; margin-bottom: 4px; }
        h1 span { color: var(--accent); }
        h2 { font-size: 16px; margin: 32px 0 12px; color: var(--text-secondary); text-transform: uppercase; letter-spacing: 0.05em; }
        .subtitle { color: var(--text-muted); font-size: 13px; margin-bottom: 24px; }
        .stats { display: grid; grid-template-columns: repeat(auto-fit, minmax(180px, 1fr)); gap: 12px; }
        .stat { background: var(--bg-secondary); border: 1px solid var(--border-color); border-radius: 8px; padding: 16px; }
        .stat .value { font-size: 22px; font-weight: 600; }
        .stat .label { font-size: 12px; color: var(--text-muted); }
        .stat.bad .value { color: var(--bad-color); }
        .stat.warn .value { color: var(--warn-color); }
        .notice { padding: 12px 16px; border-radius: 8px; margin-top: 16px; background: var(--bg-tertiary); }
        .notice.good { color: var(--good-color); }
        .notice.bad { color: var(--bad-color); }
        table { width: 100%; border-collapse: collapse; background: var(--bg-secondary); border-radius: 8px; overflow: hidden; }
        th, td { text-align: left; padding: 8px 12px; border-bottom: 1px solid var(--border-color); font-size: 13px; }
        th { color: var(--text-muted); font-weight: 500; }
        code { font-family: 'JetBrains Mono', ui-monospace, monospace; font-size: 12px; }
        .group { background: var(--bg-secondary); border: 1px solid var(--border-color); border-radius: 8px; padding: 12px 16px; margin-bottom: 12px; }
        .group-header { color: var(--text-secondary); font-size: 13px; margin-bottom: 6px; }
        .group li { list-style: none; padding: 2px 0; }
        footer { margin-top: 40px; color: var(--text-muted); font-size: 12px; text-align: center; }
    </style>
</head>
<body>
<div class="container">
`

// generateHTML generates a standalone HTML report
func (g *Generator) generateHTML(w io.Writer, report *models.AnalysisReport) error {
	var sb strings.Builder
	stats := report.Stats
	esc := html.EscapeString

	sb.WriteString(htmlHead)
	sb.WriteString("<h1><span>dirhound</span> directory report</h1>\n")
	sb.WriteString(fmt.Sprintf("<div class=\"subtitle\"><code>%s</code> · %s · threshold %d days · %s</div>\n",
		esc(report.Root), report.StartTime.Format(timeLayout), report.ThresholdDays, FormatDuration(report.Duration)))

	// Summary cards
	sb.WriteString("<div class=\"stats\">\n")
	writeStat(&sb, "", fmt.Sprintf("%d", stats.TotalFiles), "Files")
	writeStat(&sb, "", FormatSize(stats.TotalSize), "Total size")
	writeStat(&sb, "warn", fmt.Sprintf("%d", len(report.UnusedFiles)), "Unused files")
	writeStat(&sb, "bad", fmt.Sprintf("%d", len(report.DuplicateGroups)), "Duplicate groups")
	writeStat(&sb, "bad", FormatSize(stats.ReclaimableBytes), "Reclaimable")
	writeStat(&sb, "warn", fmt.Sprintf("%d", len(report.EmptyDirectories)), "Empty directories")
	sb.WriteString("</div>\n")

	if report.Cancelled {
		sb.WriteString("<div class=\"notice bad\">Scan cancelled, results are partial</div>\n")
	}
	if !report.HasFindings() {
		sb.WriteString("<div class=\"notice good\">Nothing to clean up</div>\n")
	}

	if len(report.UnusedFiles) > 0 {
		sb.WriteString("<h2>Unused files</h2>\n<table>\n<tr><th>File</th><th>Age</th><th>Size</th></tr>\n")
		for _, f := range report.UnusedFiles {
			sb.WriteString(fmt.Sprintf("<tr><td><code>%s</code></td><td>%d days</td><td>%s</td></tr>\n",
				esc(f.Path), age(report, f), FormatSize(f.Size)))
		}
		sb.WriteString("</table>\n")
	}

	if len(report.DuplicateGroups) > 0 {
		sb.WriteString("<h2>Duplicate groups</h2>\n")
		for i, group := range report.DuplicateGroups {
			sb.WriteString("<div class=\"group\">\n")
			sb.WriteString(fmt.Sprintf("<div class=\"group-header\">#%d · %d files · %s each · <code>%s</code></div>\n<ul>\n",
				i+1, len(group.Files), FormatSize(group.Size), group.Fingerprint))
			for _, f := range group.Files {
				sb.WriteString(fmt.Sprintf("<li><code>%s</code></li>\n", esc(f.Path)))
			}
			sb.WriteString("</ul>\n</div>\n")
		}
	}

	if len(report.EmptyDirectories) > 0 {
		sb.WriteString("<h2>Empty directories</h2>\n<table>\n")
		for _, d := range report.EmptyDirectories {
			sb.WriteString(fmt.Sprintf("<tr><td><code>%s</code></td></tr>\n", esc(d.Path)))
		}
		sb.WriteString("</table>\n")
	}

	if len(report.Warnings) > 0 {
		sb.WriteString("<h2>Warnings</h2>\n<table>\n<tr><th>Kind</th><th>Path</th><th>Message</th></tr>\n")
		for _, warn := range report.Warnings {
			sb.WriteString(fmt.Sprintf("<tr><td>%s</td><td><code>%s</code></td><td>%s</td></tr>\n",
				esc(string(warn.Kind)), esc(warn.Path), esc(warn.Message)))
		}
		sb.WriteString("</table>\n")
	}

	sb.WriteString(fmt.Sprintf("<footer>Generated by dirhound v%s · scan %s</footer>\n", esc(report.Version), esc(report.ScanID)))
	sb.WriteString("</div>\n</body>\n</html>\n")

	_, err := io.WriteString(w, sb.String())
	return err
}

func writeStat(sb *strings.Builder, class, value, label string) {
	sb.WriteString(fmt.Sprintf("<div class=\"stat %s\"><div class=\"value\">%s</div><div class=\"label\">%s</div></div>\n",
		class, html.EscapeString(value), label))
}
