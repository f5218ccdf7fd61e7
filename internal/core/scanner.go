package core

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"

	"github.com/IvanShishkin/dirhound/internal/config"
	"github.com/IvanShishkin/dirhound/internal/detectors"
	"github.com/IvanShishkin/dirhound/internal/detectors/duplicate"
	"github.com/IvanShishkin/dirhound/internal/detectors/empty"
	"github.com/IvanShishkin/dirhound/internal/detectors/stale"
	"github.com/IvanShishkin/dirhound/internal/filesystem"
	"github.com/IvanShishkin/dirhound/pkg/models"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// Progress phases
const (
	PhaseWalking = "walking"
	PhaseHashing = "hashing"
	PhaseDone    = "done"
)

// ProgressCallback is called to report scan progress. total is 0 while it is unknown.
type ProgressCallback func(phase string, current, total int, message string)

// Option customizes a Scanner
type Option func(*Scanner)

// WithFs makes the scanner read through fsys instead of the OS filesystem
func WithFs(fsys afero.Fs) Option {
	return func(s *Scanner) {
		s.fs = fsys
	}
}

// WithClock replaces the wall clock
func WithClock(c Clock) Option {
	return func(s *Scanner) {
		s.clock = c
	}
}

// WithFingerprinter replaces the XXH3 content fingerprinter. Byte-for-byte
// confirmation still reads through the scanner's filesystem.
func WithFingerprinter(fp filesystem.Fingerprinter) Option {
	return func(s *Scanner) {
		s.fingerprinter = fp
	}
}

// WithProgressCallback sets the progress callback
func WithProgressCallback(cb ProgressCallback) Option {
	return func(s *Scanner) {
		s.progressCallback = cb
	}
}

// Scanner runs the stale, duplicate and empty-directory analyses over a tree.
// A Scanner holds no per-scan state and may be reused.
type Scanner struct {
	config           *config.Config
	logger           *zap.Logger
	fs               afero.Fs
	clock            Clock
	fingerprinter    filesystem.Fingerprinter
	comparer         filesystem.ContentComparer
	progressCallback ProgressCallback
	progressMu       sync.Mutex
}

// NewScanner creates a new scanner instance
func NewScanner(cfg *config.Config, logger *zap.Logger, opts ...Option) *Scanner {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Scanner{
		config: cfg,
		logger: logger,
		fs:     afero.NewOsFs(),
		clock:  SystemClock(),
	}
	for _, opt := range opts {
		opt(s)
	}

	hasher := filesystem.NewContentHasher(s.fs)
	if s.fingerprinter == nil {
		s.fingerprinter = hasher
	}
	s.comparer = hasher
	return s
}

// AnalyzeDirectory scans the default OS filesystem with default settings and
// no exclusions. It is the library entry point for one-shot use.
func AnalyzeDirectory(ctx context.Context, root string, stalenessThresholdDays int) (*models.AnalysisReport, error) {
	cfg := config.Default()
	cfg.Exclude = nil
	return NewScanner(cfg, zap.NewNop()).AnalyzeDirectory(ctx, root, stalenessThresholdDays)
}

// reportProgress calls the progress callback if set
func (s *Scanner) reportProgress(phase string, current, total int, message string) {
	if s.progressCallback == nil {
		return
	}
	s.progressMu.Lock()
	defer s.progressMu.Unlock()
	s.progressCallback(phase, current, total, message)
}

// scanState holds everything collected during one AnalyzeDirectory call
type scanState struct {
	files    []models.FileRecord
	dirs     []models.DirectoryRecord
	symlinks []models.SymlinkRecord
	errors   []error

	totalSize int64
	entries   int
}

// AnalyzeDirectory walks root once and reports stale files, duplicate groups
// and empty directories. Only an invalid root or a negative threshold is
// fatal; unreadable entries become warnings. On cancellation the partial
// report is returned with Cancelled set and no duplicate groups.
func (s *Scanner) AnalyzeDirectory(ctx context.Context, root string, stalenessThresholdDays int) (*models.AnalysisReport, error) {
	if stalenessThresholdDays < 0 {
		return nil, fmt.Errorf("%w (got: %d)", models.ErrInvalidThreshold, stalenessThresholdDays)
	}

	walker := filesystem.NewWalker(s.fs, s.config.Exclude, s.logger)
	if err := walker.ValidateRoot(root); err != nil {
		return nil, err
	}

	startTime := s.clock.Now()
	now := startTime.UTC()

	workers := s.config.Workers
	if workers <= 0 {
		workers = runtime.NumCPU() * 2
	}

	staleDetector := stale.NewDetector(stalenessThresholdDays)
	staleDetector.SetEnabled(s.config.IsDetectorEnabled(config.DetectorStale))
	grouper := duplicate.NewGrouper(s.fingerprinter, s.comparer, workers, s.config.MinDuplicateBytes(), s.logger)
	grouper.SetEnabled(s.config.IsDetectorEnabled(config.DetectorDuplicate))
	grouper.SetProgressCallback(func(done, total int) {
		s.reportProgress(PhaseHashing, done, total, "")
	})
	emptyDetector := empty.NewDetector()
	emptyDetector.SetEnabled(s.config.IsDetectorEnabled(config.DetectorEmpty))

	s.logger.Info("Starting scan",
		zap.String("path", root),
		zap.Int("threshold_days", stalenessThresholdDays),
		zap.Int("workers", workers),
		zap.Strings("detectors", detectors.Enabled(staleDetector, grouper, emptyDetector)))

	state := &scanState{}
	cancelled := false

	s.reportProgress(PhaseWalking, 0, 0, "Walking directory tree...")
	if err := walker.Walk(ctx, root, func(entry models.Entry) error {
		state.collect(entry)
		if state.entries%100 == 0 {
			s.reportProgress(PhaseWalking, state.entries, 0, entry.Path())
		}
		return nil
	}); err != nil {
		var rootErr *models.InvalidRootError
		switch {
		case errors.As(err, &rootErr):
			return nil, err
		case ctx.Err() != nil:
			cancelled = true
		default:
			return nil, fmt.Errorf("walk failed: %w", err)
		}
	}
	s.reportProgress(PhaseWalking, state.entries, state.entries,
		fmt.Sprintf("Found %d files in %d directories", len(state.files), len(state.dirs)))

	var (
		groups        []models.DuplicateGroup
		unreadable    map[string]bool
		fingerprinted int
	)
	if grouper.IsEnabled() && !cancelled {
		res := grouper.Group(ctx, state.files)
		if res.Cancelled {
			cancelled = true
		} else {
			groups = res.Groups
		}
		unreadable = res.Unreadable
		fingerprinted = res.Fingerprinted
		state.errors = append(state.errors, res.Errors...)
	}

	var unused []models.FileRecord
	if staleDetector.IsEnabled() {
		readable := state.files
		if len(unreadable) > 0 {
			readable = make([]models.FileRecord, 0, len(state.files))
			for _, f := range state.files {
				if !unreadable[f.Path] {
					readable = append(readable, f)
				}
			}
		}
		unused = staleDetector.Detect(readable, now)
	}

	var emptyDirs []models.DirectoryRecord
	if emptyDetector.IsEnabled() {
		emptyDirs = emptyDetector.Detect(state.dirs)
	}

	if cancelled {
		s.logger.Warn("Scan cancelled, reporting partial results", zap.Error(ctx.Err()))
		state.errors = append(state.errors, &models.CancelledError{Err: ctx.Err()})
	}

	report := Assemble(AssembleInput{
		Root:               root,
		ThresholdDays:      stalenessThresholdDays,
		ScannedAt:          now,
		StartTime:          startTime,
		EndTime:            s.clock.Now(),
		Cancelled:          cancelled,
		Detectors:          detectors.Enabled(staleDetector, grouper, emptyDetector),
		UnusedFiles:        unused,
		DuplicateGroups:    groups,
		EmptyDirectories:   emptyDirs,
		Symlinks:           state.symlinks,
		Errors:             state.errors,
		TotalFiles:         len(state.files),
		TotalDirs:          len(state.dirs),
		TotalSize:          state.totalSize,
		FingerprintedFiles: fingerprinted,
		WorkersUsed:        workers,
	})

	s.reportProgress(PhaseDone, state.entries, state.entries, "Scan complete")
	s.logger.Info("Scan completed",
		zap.Duration("duration", report.Duration),
		zap.Int("files", report.Stats.TotalFiles),
		zap.Int("unused", len(report.UnusedFiles)),
		zap.Int("duplicate_groups", len(report.DuplicateGroups)),
		zap.Int("empty_dirs", len(report.EmptyDirectories)),
		zap.Int("warnings", len(report.Warnings)))

	return report, nil
}

func (st *scanState) collect(entry models.Entry) {
	st.entries++
	switch entry.Kind {
	case models.EntryFile:
		st.files = append(st.files, *entry.File)
		st.totalSize += entry.File.Size
	case models.EntryDirectory:
		st.dirs = append(st.dirs, *entry.Directory)
	case models.EntrySymlink:
		st.symlinks = append(st.symlinks, *entry.Symlink)
	case models.EntrySkipped:
		st.errors = append(st.errors, entry.Err)
	}
}
