package stale

import (
	"math"
	"time"

	"github.com/IvanShishkin/dirhound/internal/config"
	"github.com/IvanShishkin/dirhound/internal/detectors"
	"github.com/IvanShishkin/dirhound/pkg/models"
)

const day = 24 * time.Hour

// Detector flags files that were not modified within the threshold
type Detector struct {
	*detectors.BaseDetector
	thresholdDays int
}

// NewDetector creates a staleness detector. thresholdDays must not be negative.
func NewDetector(thresholdDays int) *Detector {
	return &Detector{
		BaseDetector:  detectors.NewBaseDetector(config.DetectorStale, "Files not modified within the threshold"),
		thresholdDays: thresholdDays,
	}
}

// ThresholdDays returns the configured threshold
func (d *Detector) ThresholdDays() int {
	return d.thresholdDays
}

// Detect returns the stale files in input order. now must be captured once per scan.
func (d *Detector) Detect(files []models.FileRecord, now time.Time) []models.FileRecord {
	var stale []models.FileRecord
	seen := make(map[string]bool, len(files))
	for _, f := range files {
		if seen[f.Path] {
			continue
		}
		seen[f.Path] = true
		if IsStale(f, now, d.thresholdDays) {
			stale = append(stale, f)
		}
	}
	return stale
}

// IsStale reports whether the file's age strictly exceeds thresholdDays*86400 seconds.
// A file exactly at the threshold is not stale. Thresholds beyond the range of
// time.Duration mark nothing stale.
func IsStale(record models.FileRecord, now time.Time, thresholdDays int) bool {
	if int64(thresholdDays) > maxThresholdDays {
		return false
	}
	return now.Sub(record.LastModified) > time.Duration(thresholdDays)*day
}

// maxThresholdDays is the largest threshold whose duration fits in time.Duration
const maxThresholdDays = math.MaxInt64 / int64(day)
