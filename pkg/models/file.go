package models

import (
	"encoding/hex"
	"time"
)

// Fingerprint is a 128-bit content digest used as a candidate key for content equality.
// Two files with the same fingerprint are only duplicates once their bytes are compared.
type Fingerprint [16]byte

// String returns the hex form of the fingerprint
func (f Fingerprint) String() string {
	return hex.EncodeToString(f[:])
}

// IsZero reports whether the fingerprint was never computed
func (f Fingerprint) IsZero() bool {
	return f == Fingerprint{}
}

// MarshalText implements encoding.TextMarshaler
func (f Fingerprint) MarshalText() ([]byte, error) {
	if f.IsZero() {
		return []byte{}, nil
	}
	return []byte(f.String()), nil
}

// FileRecord describes one regular file observed during a scan
type FileRecord struct {
	Path         string      `json:"path" yaml:"path"`                                       // Full file path
	RelativePath string      `json:"relative_path" yaml:"relative_path"`                     // Path relative to scan root
	Name         string      `json:"name" yaml:"name"`                                       // File name
	Size         int64       `json:"size" yaml:"size"`                                       // File size in bytes
	LastModified time.Time   `json:"last_modified" yaml:"last_modified"`                     // Modification time (UTC)
	LastAccessed time.Time   `json:"last_accessed,omitempty" yaml:"last_accessed,omitempty"` // Access time (UTC), zero if unknown
	Fingerprint  Fingerprint `json:"fingerprint,omitempty" yaml:"-"`                         // Set only for files compared by content
}

// DirectoryRecord describes one directory observed during a scan
type DirectoryRecord struct {
	Path         string `json:"path" yaml:"path"`
	RelativePath string `json:"relative_path" yaml:"relative_path"`
	EntryCount   int    `json:"entry_count" yaml:"entry_count"` // immediate children only
}

// SymlinkRecord describes a symbolic link. Links are reported, never followed.
type SymlinkRecord struct {
	Path         string `json:"path" yaml:"path"`
	RelativePath string `json:"relative_path" yaml:"relative_path"`
	Target       string `json:"target,omitempty" yaml:"target,omitempty"`
}

// EntryKind classifies a walked entry
type EntryKind int

const (
	EntryFile EntryKind = iota
	EntryDirectory
	EntrySymlink
	EntrySkipped
)

// String returns the entry kind name
func (k EntryKind) String() string {
	switch k {
	case EntryFile:
		return "file"
	case EntryDirectory:
		return "directory"
	case EntrySymlink:
		return "symlink"
	default:
		return "skipped"
	}
}

// Entry is a single item produced by the tree walker. Exactly one of
// File, Directory, Symlink or Err is set, matching Kind.
type Entry struct {
	Kind      EntryKind
	File      *FileRecord
	Directory *DirectoryRecord
	Symlink   *SymlinkRecord
	Err       error
}

// Path returns the path of whatever the entry describes
func (e Entry) Path() string {
	switch e.Kind {
	case EntryFile:
		return e.File.Path
	case EntryDirectory:
		return e.Directory.Path
	case EntrySymlink:
		return e.Symlink.Path
	}
	if ae, ok := e.Err.(*AccessError); ok {
		return ae.Path
	}
	return ""
}
