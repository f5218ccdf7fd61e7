package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/IvanShishkin/dirhound/internal/config"
	"github.com/IvanShishkin/dirhound/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

var testNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func sampleReport() *models.AnalysisReport {
	return &models.AnalysisReport{
		ScanID:        "0b8f5c1e-1111-2222-3333-444455556666",
		Root:          "/root",
		ThresholdDays: 30,
		ScannedAt:     testNow,
		StartTime:     testNow,
		EndTime:       testNow.Add(250 * time.Millisecond),
		Duration:      250 * time.Millisecond,
		Detectors:     []string{"stale", "duplicate", "empty"},
		Version:       "0.1.0",
		UnusedFiles: []models.FileRecord{
			{Path: "/root/c.txt", Name: "c.txt", Size: 5, LastModified: testNow.Add(-40 * 24 * time.Hour)},
		},
		DuplicateGroups: []models.DuplicateGroup{{
			Fingerprint:      models.Fingerprint{0xab, 0xcd},
			Size:             5,
			ReclaimableBytes: 5,
			Files: []models.FileRecord{
				{Path: "/root/a.txt", Size: 5},
				{Path: "/root/b.txt", Size: 5},
			},
		}},
		EmptyDirectories: []models.DirectoryRecord{{Path: "/root/empty1"}},
		Warnings: []models.Warning{
			{Kind: models.WarningAccess, Path: "/root/locked", Message: "permission denied"},
		},
		Stats: &models.ScanStatistics{
			TotalFiles:       3,
			TotalDirs:        2,
			TotalSize:        15,
			UnusedSize:       5,
			DuplicateFiles:   2,
			ReclaimableBytes: 5,
			WorkersUsed:      4,
		},
	}
}

func newTestGenerator() *Generator {
	cfg := config.Default()
	cfg.NoColor = true
	return NewGenerator(cfg, zap.NewNop())
}

func render(t *testing.T, report *models.AnalysisReport, format Format) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, newTestGenerator().Generate(&buf, report, format))
	return buf.String()
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input    string
		expected Format
		wantErr  bool
	}{
		{"", FormatConsole, false},
		{"console", FormatConsole, false},
		{"txt", FormatText, false},
		{"TEXT", FormatText, false},
		{"json", FormatJSON, false},
		{"yml", FormatYAML, false},
		{"markdown", FormatMarkdown, false},
		{"html", FormatHTML, false},
		{"xml", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFormat(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestDefaultFileName(t *testing.T) {
	assert.Equal(t, "DIRHOUND-REPORT-20240601-120000.json", DefaultFileName(FormatJSON, testNow))
	assert.Equal(t, "DIRHOUND-REPORT-20240601-120000.txt", DefaultFileName(FormatText, testNow))
	assert.Equal(t, "DIRHOUND-REPORT-20240601-120000.md", DefaultFileName(FormatMarkdown, testNow))
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		input    time.Duration
		expected string
	}{
		{250 * time.Millisecond, "250.00ms"},
		{1500 * time.Millisecond, "1.50s"},
		{90 * time.Second, "1m30.00s"},
		{time.Hour + 2*time.Minute + 3*time.Second, "1h2m3.00s"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, FormatDuration(tt.input))
	}
}

func TestFormatSize(t *testing.T) {
	tests := []struct {
		input    int64
		expected string
	}{
		{0, "0 B"},
		{1023, "1023 B"},
		{1024, "1.0 KB"},
		{1536, "1.5 KB"},
		{10 * 1024 * 1024, "10.0 MB"},
		{3 * 1024 * 1024 * 1024, "3.0 GB"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, FormatSize(tt.input))
	}
}

func TestGenerate_Console(t *testing.T) {
	out := render(t, sampleReport(), FormatConsole)

	assert.Contains(t, out, "SCAN COMPLETE")
	assert.Contains(t, out, "UNUSED FILES: 1")
	assert.Contains(t, out, "/root/c.txt")
	assert.Contains(t, out, "40 days")
	assert.Contains(t, out, "DUPLICATE GROUPS: 1")
	assert.Contains(t, out, "/root/a.txt")
	assert.Contains(t, out, "EMPTY DIRECTORIES: 1")
	assert.Contains(t, out, "/root/locked")
	assert.NotContains(t, out, "\x1b[")
}

func TestGenerate_ConsoleNoFindings(t *testing.T) {
	report := sampleReport()
	report.UnusedFiles = nil
	report.DuplicateGroups = nil
	report.EmptyDirectories = nil
	report.Cancelled = true

	out := render(t, report, FormatConsole)
	assert.Contains(t, out, "Nothing to clean up")
	assert.Contains(t, out, "SCAN CANCELLED")
}

func TestGenerate_Text(t *testing.T) {
	out := render(t, sampleReport(), FormatText)

	assert.True(t, strings.HasPrefix(out, strings.Repeat("=", 79)))
	assert.Contains(t, out, "DIRHOUND DIRECTORY REPORT v0.1.0")
	assert.Contains(t, out, "Scan Path:        /root")
	assert.Contains(t, out, "UNUSED FILES (1, 5 B)")
	assert.Contains(t, out, "DUPLICATE GROUPS (1, 5 B reclaimable)")
	assert.Contains(t, out, "Fingerprint: abcd")
	assert.Contains(t, out, "EMPTY DIRECTORIES (1)")
	assert.Contains(t, out, "[access] /root/locked permission denied")
	assert.Contains(t, out, "End of Report")
}

func TestGenerate_JSON(t *testing.T) {
	out := render(t, sampleReport(), FormatJSON)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, "/root", decoded["root"])
	assert.Equal(t, float64(30), decoded["threshold_days"])

	groups := decoded["duplicate_groups"].([]any)
	require.Len(t, groups, 1)
	group := groups[0].(map[string]any)
	assert.Equal(t, models.Fingerprint{0xab, 0xcd}.String(), group["fingerprint"])
	assert.Len(t, group["files"], 2)

	stats := decoded["statistics"].(map[string]any)
	assert.Equal(t, float64(5), stats["reclaimable_bytes"])
}

func TestGenerate_YAML(t *testing.T) {
	out := render(t, sampleReport(), FormatYAML)

	var decoded struct {
		Root             string `yaml:"root"`
		EmptyDirectories []struct {
			Path string `yaml:"path"`
		} `yaml:"empty_directories"`
		DuplicateGroups []struct {
			Fingerprint string `yaml:"fingerprint"`
		} `yaml:"duplicate_groups"`
	}
	require.NoError(t, yaml.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, "/root", decoded.Root)
	require.Len(t, decoded.EmptyDirectories, 1)
	assert.Equal(t, "/root/empty1", decoded.EmptyDirectories[0].Path)
	require.Len(t, decoded.DuplicateGroups, 1)
	assert.Equal(t, models.Fingerprint{0xab, 0xcd}.String(), decoded.DuplicateGroups[0].Fingerprint)
}

func TestGenerate_Markdown(t *testing.T) {
	report := sampleReport()
	report.UnusedFiles[0].Path = "/root/a|b.txt"

	out := render(t, report, FormatMarkdown)

	assert.Contains(t, out, "# Dirhound Directory Report v0.1.0")
	assert.Contains(t, out, "| **Duplicate Groups** | **1** |")
	assert.Contains(t, out, "### Group 1: 2 files, 5 B each")
	assert.Contains(t, out, "`/root/a\\|b.txt`")
	assert.Contains(t, out, "- `/root/empty1`")
}

func TestGenerate_HTML(t *testing.T) {
	report := sampleReport()
	report.EmptyDirectories[0].Path = "/root/<script>"

	out := render(t, report, FormatHTML)

	assert.True(t, strings.HasPrefix(out, "<!DOCTYPE html>"))
	assert.Contains(t, out, "/root/a.txt")
	assert.Contains(t, out, "/root/&lt;script&gt;")
	assert.NotContains(t, out, "/root/<script>")
	assert.True(t, strings.HasSuffix(out, "</html>\n"))
}

func TestGenerate_UnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	err := newTestGenerator().Generate(&buf, sampleReport(), Format("xml"))
	assert.Error(t, err)
}
