package integration

import (
	"bytes"
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeFile(t *testing.T, path, content string, age time.Duration) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	mtime := time.Now().Add(-age)
	if err := os.Chtimes(path, mtime, mtime); err != nil {
		t.Fatalf("Failed to set file times: %v", err)
	}
}

func TestScanCommand_RootNotFound(t *testing.T) {
	cmd := exec.Command("go", "run", "../../cmd/dirhound", "scan", "/nonexistent/dir")
	output, err := cmd.CombinedOutput()

	if err == nil {
		t.Error("Expected error for nonexistent root, got nil")
	}

	if !strings.Contains(string(output), "invalid scan root") {
		t.Errorf("Expected 'invalid scan root' error, got: %s", output)
	}
}

func TestScanCommand_JSONToStdout(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, "a.txt"), "hello", time.Hour)
	writeFile(t, filepath.Join(tmpDir, "b.txt"), "hello", time.Hour)
	writeFile(t, filepath.Join(tmpDir, "c.txt"), "world", 40*24*time.Hour)
	if err := os.MkdirAll(filepath.Join(tmpDir, "empty1"), 0755); err != nil {
		t.Fatal(err)
	}

	reportPath := filepath.Join(t.TempDir(), "report.json")
	cmd := exec.Command("go", "run", "../../cmd/dirhound", "scan", tmpDir, "--report", "json", "--output", reportPath, "--no-progress")
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		t.Fatalf("Command failed: %v, stderr: %s", err, stderr.String())
	}

	data, err := os.ReadFile(reportPath)
	if err != nil {
		t.Fatalf("Report not written: %v", err)
	}

	var report struct {
		UnusedFiles []struct {
			Path string `json:"path"`
		} `json:"unused_files"`
		DuplicateGroups []struct {
			Files []struct {
				Path string `json:"path"`
			} `json:"files"`
		} `json:"duplicate_groups"`
		EmptyDirectories []struct {
			Path string `json:"path"`
		} `json:"empty_directories"`
	}
	if err := json.Unmarshal(data, &report); err != nil {
		t.Fatalf("Invalid JSON report: %v", err)
	}

	if len(report.UnusedFiles) != 1 || report.UnusedFiles[0].Path != filepath.Join(tmpDir, "c.txt") {
		t.Errorf("Unexpected unused files: %+v", report.UnusedFiles)
	}
	if len(report.DuplicateGroups) != 1 || len(report.DuplicateGroups[0].Files) != 2 {
		t.Errorf("Unexpected duplicate groups: %+v", report.DuplicateGroups)
	}
	if len(report.EmptyDirectories) != 1 || report.EmptyDirectories[0].Path != filepath.Join(tmpDir, "empty1") {
		t.Errorf("Unexpected empty directories: %+v", report.EmptyDirectories)
	}
}

func TestScanCommand_DisableDuplicate(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, "a.txt"), "same", time.Hour)
	writeFile(t, filepath.Join(tmpDir, "b.txt"), "same", time.Hour)

	cmd := exec.Command("go", "run", "../../cmd/dirhound", "scan", tmpDir, "--disable", "duplicate", "--no-color", "--no-progress")
	output, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("Command failed: %v, output: %s", err, output)
	}

	if strings.Contains(string(output), "DUPLICATE GROUPS") {
		t.Errorf("Duplicate detector should be disabled, got: %s", output)
	}
	if !strings.Contains(string(output), "Nothing to clean up") {
		t.Errorf("Expected clean result, got: %s", output)
	}
}
