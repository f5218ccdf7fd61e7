package core

import (
	"errors"
	"time"

	"github.com/IvanShishkin/dirhound/pkg/models"
	"github.com/google/uuid"
)

// Version is reported in every AnalysisReport
const Version = "0.1.0"

// AssembleInput carries everything one scan produced
type AssembleInput struct {
	Root          string
	ThresholdDays int
	ScannedAt     time.Time
	StartTime     time.Time
	EndTime       time.Time
	Cancelled     bool
	Detectors     []string

	UnusedFiles      []models.FileRecord
	DuplicateGroups  []models.DuplicateGroup
	EmptyDirectories []models.DirectoryRecord
	Symlinks         []models.SymlinkRecord
	Errors           []error

	TotalFiles         int
	TotalDirs          int
	TotalSize          int64
	FingerprintedFiles int
	WorkersUsed        int
}

// Assemble packages the results of one scan into a report. It never fails:
// whatever the analyses produced, including partial results, is reported.
func Assemble(in AssembleInput) *models.AnalysisReport {
	report := &models.AnalysisReport{
		ScanID:           uuid.NewString(),
		Root:             in.Root,
		ThresholdDays:    in.ThresholdDays,
		ScannedAt:        in.ScannedAt,
		StartTime:        in.StartTime,
		EndTime:          in.EndTime,
		Duration:         in.EndTime.Sub(in.StartTime),
		Cancelled:        in.Cancelled,
		Detectors:        nonNil(in.Detectors),
		Version:          Version,
		UnusedFiles:      nonNil(in.UnusedFiles),
		DuplicateGroups:  nonNil(in.DuplicateGroups),
		EmptyDirectories: nonNil(in.EmptyDirectories),
		Symlinks:         in.Symlinks,
		Stats: &models.ScanStatistics{
			TotalFiles:         in.TotalFiles,
			TotalDirs:          in.TotalDirs,
			TotalSymlinks:      len(in.Symlinks),
			TotalSize:          in.TotalSize,
			FingerprintedFiles: in.FingerprintedFiles,
			WorkersUsed:        in.WorkersUsed,
		},
	}

	for _, err := range in.Errors {
		w := models.NewWarning(err)
		report.Warnings = append(report.Warnings, w)

		switch w.Kind {
		case models.WarningAccess:
			report.Stats.SkippedEntries++
		case models.WarningRead:
			report.Stats.ReadErrors++
		}
		var cancelErr *models.CancelledError
		if errors.As(err, &cancelErr) {
			report.Cancelled = true
		}
	}

	for _, f := range report.UnusedFiles {
		report.Stats.UnusedSize += f.Size
	}
	for _, g := range report.DuplicateGroups {
		report.Stats.DuplicateFiles += len(g.Files)
		report.Stats.ReclaimableBytes += g.ReclaimableBytes
	}

	return report
}

// nonNil keeps empty lists as [] rather than null in JSON output
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
