// Package testutil holds filesystem fixtures shared by package tests.
package testutil

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/spf13/afero"
)

// FaultFs wraps an afero.Fs and fails Open for selected paths. It lets tests
// simulate permission problems regardless of the user running them.
type FaultFs struct {
	afero.Fs

	mu     sync.Mutex
	faults map[string]*fault
}

type fault struct {
	allowed int // opens that still succeed before failing
	err     error
}

// NewFaultFs wraps base
func NewFaultFs(base afero.Fs) *FaultFs {
	return &FaultFs{Fs: base, faults: make(map[string]*fault)}
}

// FailOpen makes every Open of path fail with err
func (f *FaultFs) FailOpen(path string, err error) {
	f.FailOpenAfter(path, 0, err)
}

// FailOpenAfter lets the first n opens of path succeed, then fails with err
func (f *FaultFs) FailOpenAfter(path string, n int, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.faults[filepath.Clean(path)] = &fault{allowed: n, err: err}
}

// Open implements afero.Fs
func (f *FaultFs) Open(name string) (afero.File, error) {
	f.mu.Lock()
	flt, ok := f.faults[filepath.Clean(name)]
	if ok {
		if flt.allowed > 0 {
			flt.allowed--
		} else {
			f.mu.Unlock()
			return nil, &os.PathError{Op: "open", Path: name, Err: flt.err}
		}
	}
	f.mu.Unlock()
	return f.Fs.Open(name)
}

// WriteFile creates path with content and sets its modification time to
// age before now. Parent directories are created as needed.
func WriteFile(t *testing.T, fsys afero.Fs, path, content string, now time.Time, age time.Duration) {
	t.Helper()
	if err := fsys.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create dir for %s: %v", path, err)
	}
	if err := afero.WriteFile(fsys, path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to create test file %s: %v", path, err)
	}
	mtime := now.Add(-age)
	if err := fsys.Chtimes(path, mtime, mtime); err != nil {
		t.Fatalf("Failed to set times on %s: %v", path, err)
	}
}

// Mkdir creates a directory and its parents
func Mkdir(t *testing.T, fsys afero.Fs, path string) {
	t.Helper()
	if err := fsys.MkdirAll(path, 0755); err != nil {
		t.Fatalf("Failed to create dir %s: %v", path, err)
	}
}
