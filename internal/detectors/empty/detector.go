package empty

import (
	"github.com/IvanShishkin/dirhound/internal/config"
	"github.com/IvanShishkin/dirhound/internal/detectors"
	"github.com/IvanShishkin/dirhound/pkg/models"
)

// Detector flags directories with no direct children. A directory that only
// holds empty subdirectories is not itself empty.
type Detector struct {
	*detectors.BaseDetector
}

// NewDetector creates an empty-directory detector
func NewDetector() *Detector {
	return &Detector{
		BaseDetector: detectors.NewBaseDetector(config.DetectorEmpty, "Directories with no entries"),
	}
}

// Detect returns the empty directories in input order
func (d *Detector) Detect(dirs []models.DirectoryRecord) []models.DirectoryRecord {
	return FindEmpty(dirs)
}

// FindEmpty returns directories whose EntryCount is zero, without duplicate paths
func FindEmpty(dirs []models.DirectoryRecord) []models.DirectoryRecord {
	var empty []models.DirectoryRecord
	seen := make(map[string]bool)
	for _, dir := range dirs {
		if dir.EntryCount != 0 || seen[dir.Path] {
			continue
		}
		seen[dir.Path] = true
		empty = append(empty, dir)
	}
	return empty
}
