package models

import "time"

// DuplicateGroup is a set of two or more files with byte-identical content
type DuplicateGroup struct {
	Fingerprint      Fingerprint  `json:"fingerprint" yaml:"fingerprint"`
	Size             int64        `json:"size" yaml:"size"`                           // size of each member
	ReclaimableBytes int64        `json:"reclaimable_bytes" yaml:"reclaimable_bytes"` // size * (members - 1)
	Files            []FileRecord `json:"files" yaml:"files"`
}

// AnalysisReport is the output of one scan. It is built once by the assembler
// and must be treated as read-only by consumers.
type AnalysisReport struct {
	// Summary
	ScanID        string        `json:"scan_id" yaml:"scan_id"`
	Root          string        `json:"root" yaml:"root"`
	ThresholdDays int           `json:"threshold_days" yaml:"threshold_days"`
	ScannedAt     time.Time     `json:"scanned_at" yaml:"scanned_at"` // the single "now" used for staleness
	StartTime     time.Time     `json:"start_time" yaml:"start_time"`
	EndTime       time.Time     `json:"end_time" yaml:"end_time"`
	Duration      time.Duration `json:"duration" yaml:"duration"`
	Cancelled     bool          `json:"cancelled" yaml:"cancelled"`
	Detectors     []string      `json:"detectors" yaml:"detectors"`
	Version       string        `json:"version" yaml:"version"`

	// Findings
	UnusedFiles      []FileRecord      `json:"unused_files" yaml:"unused_files"`
	DuplicateGroups  []DuplicateGroup  `json:"duplicate_groups" yaml:"duplicate_groups"`
	EmptyDirectories []DirectoryRecord `json:"empty_directories" yaml:"empty_directories"`
	Symlinks         []SymlinkRecord   `json:"symlinks,omitempty" yaml:"symlinks,omitempty"`

	// Skipped entries and other non-fatal problems
	Warnings []Warning `json:"warnings,omitempty" yaml:"warnings,omitempty"`

	// Statistics
	Stats *ScanStatistics `json:"statistics" yaml:"statistics"`
}

// ScanStatistics contains scan counters
type ScanStatistics struct {
	TotalFiles         int   `json:"total_files" yaml:"total_files"`
	TotalDirs          int   `json:"total_dirs" yaml:"total_dirs"`
	TotalSymlinks      int   `json:"total_symlinks" yaml:"total_symlinks"`
	SkippedEntries     int   `json:"skipped_entries" yaml:"skipped_entries"`
	TotalSize          int64 `json:"total_size" yaml:"total_size"`
	UnusedSize         int64 `json:"unused_size" yaml:"unused_size"`
	DuplicateFiles     int   `json:"duplicate_files" yaml:"duplicate_files"`
	ReclaimableBytes   int64 `json:"reclaimable_bytes" yaml:"reclaimable_bytes"`
	FingerprintedFiles int   `json:"fingerprinted_files" yaml:"fingerprinted_files"`
	ReadErrors         int   `json:"read_errors" yaml:"read_errors"`
	WorkersUsed        int   `json:"workers_used" yaml:"workers_used"`
}

// HasFindings reports whether any of the three analyses found something
func (r *AnalysisReport) HasFindings() bool {
	return len(r.UnusedFiles) > 0 || len(r.DuplicateGroups) > 0 || len(r.EmptyDirectories) > 0
}
