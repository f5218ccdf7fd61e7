package filesystem

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/IvanShishkin/dirhound/internal/testutil"
	"github.com/IvanShishkin/dirhound/pkg/models"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var testNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func collect(t *testing.T, w *Walker, root string) []models.Entry {
	t.Helper()
	var entries []models.Entry
	err := w.Walk(context.Background(), root, func(e models.Entry) error {
		entries = append(entries, e)
		return nil
	})
	require.NoError(t, err)
	return entries
}

func paths(entries []models.Entry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Kind.String()+":"+e.Path())
	}
	return out
}

func TestWalker_OrderAndCounts(t *testing.T) {
	fsys := afero.NewMemMapFs()
	testutil.WriteFile(t, fsys, "/root/b.txt", "b", testNow, time.Hour)
	testutil.WriteFile(t, fsys, "/root/a.txt", "a", testNow, time.Hour)
	testutil.WriteFile(t, fsys, "/root/sub/c.txt", "c", testNow, time.Hour)
	testutil.Mkdir(t, fsys, "/root/sub/empty")

	w := NewWalker(fsys, nil, zap.NewNop())
	entries := collect(t, w, "/root")

	assert.Equal(t, []string{
		"directory:/root",
		"file:/root/a.txt",
		"file:/root/b.txt",
		"directory:/root/sub",
		"file:/root/sub/c.txt",
		"directory:/root/sub/empty",
	}, paths(entries))

	assert.Equal(t, 3, entries[0].Directory.EntryCount)
	assert.Equal(t, ".", entries[0].Directory.RelativePath)
	assert.Equal(t, 2, entries[3].Directory.EntryCount)
	assert.Equal(t, 0, entries[5].Directory.EntryCount)
	assert.Equal(t, filepath.Join("sub", "c.txt"), entries[4].File.RelativePath)
}

func TestWalker_FileRecord(t *testing.T) {
	fsys := afero.NewMemMapFs()
	testutil.WriteFile(t, fsys, "/root/data.bin", "12345", testNow, 48*time.Hour)

	w := NewWalker(fsys, nil, zap.NewNop())
	entries := collect(t, w, "/root")
	require.Len(t, entries, 2)

	rec := entries[1].File
	require.NotNil(t, rec)
	assert.Equal(t, "data.bin", rec.Name)
	assert.Equal(t, int64(5), rec.Size)
	assert.True(t, rec.LastModified.Equal(testNow.Add(-48*time.Hour)))
	assert.Equal(t, time.UTC, rec.LastModified.Location())
	assert.True(t, rec.Fingerprint.IsZero())
}

func TestWalker_ExcludeDirectories(t *testing.T) {
	fsys := afero.NewMemMapFs()
	testutil.WriteFile(t, fsys, "/root/main.go", "package main", testNow, 0)
	testutil.WriteFile(t, fsys, "/root/node_modules/lib.js", "x", testNow, 0)

	w := NewWalker(fsys, []string{"node_modules"}, zap.NewNop())
	entries := collect(t, w, "/root")

	assert.Equal(t, []string{"directory:/root", "file:/root/main.go"}, paths(entries))
	// Excluded directories still count as entries of their parent
	assert.Equal(t, 2, entries[0].Directory.EntryCount)
}

func TestWalker_AccessErrorsAreSkipped(t *testing.T) {
	base := afero.NewMemMapFs()
	testutil.WriteFile(t, base, "/root/ok.txt", "ok", testNow, 0)
	testutil.WriteFile(t, base, "/root/secret.txt", "no", testNow, 0)
	testutil.WriteFile(t, base, "/root/locked/inner.txt", "x", testNow, 0)

	fsys := testutil.NewFaultFs(base)
	fsys.FailOpen("/root/secret.txt", fs.ErrPermission)
	fsys.FailOpen("/root/locked", fs.ErrPermission)

	w := NewWalker(fsys, nil, zap.NewNop())
	entries := collect(t, w, "/root")

	assert.Equal(t, []string{
		"directory:/root",
		"skipped:/root/locked",
		"file:/root/ok.txt",
		"skipped:/root/secret.txt",
	}, paths(entries))

	var accessErr *models.AccessError
	require.True(t, errors.As(entries[1].Err, &accessErr))
	assert.Equal(t, "/root/locked", accessErr.Path)
	assert.ErrorIs(t, entries[3].Err, fs.ErrPermission)
}

func TestWalker_InvalidRoot(t *testing.T) {
	fsys := afero.NewMemMapFs()
	testutil.WriteFile(t, fsys, "/file.txt", "x", testNow, 0)
	w := NewWalker(fsys, nil, zap.NewNop())

	tests := []struct {
		name string
		root string
		want error
	}{
		{"Missing root", "/missing", fs.ErrNotExist},
		{"File as root", "/file.txt", models.ErrNotDirectory},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := w.Walk(context.Background(), tt.root, func(models.Entry) error { return nil })
			var rootErr *models.InvalidRootError
			require.True(t, errors.As(err, &rootErr))
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestWalker_Cancellation(t *testing.T) {
	fsys := afero.NewMemMapFs()
	for _, name := range []string{"a", "b", "c", "d"} {
		testutil.WriteFile(t, fsys, "/root/"+name, name, testNow, 0)
	}

	ctx, cancel := context.WithCancel(context.Background())
	w := NewWalker(fsys, nil, zap.NewNop())

	visited := 0
	err := w.Walk(ctx, "/root", func(e models.Entry) error {
		visited++
		if e.Kind == models.EntryFile {
			cancel()
		}
		return nil
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 2, visited)
}

func TestWalker_StopOnCallbackError(t *testing.T) {
	fsys := afero.NewMemMapFs()
	testutil.WriteFile(t, fsys, "/root/a", "a", testNow, 0)
	stop := errors.New("stop")

	w := NewWalker(fsys, nil, zap.NewNop())
	err := w.Walk(context.Background(), "/root", func(models.Entry) error { return stop })
	assert.ErrorIs(t, err, stop)
}

func TestWalker_SymlinksNotFollowed(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, "dir"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "dir", "file.txt"), []byte("x"), 0644))
	// Cycle back to the root
	if err := os.Symlink(root, filepath.Join(root, "dir", "loop")); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	w := NewWalker(afero.NewOsFs(), nil, zap.NewNop())
	entries := collect(t, w, root)

	assert.Equal(t, []string{
		"directory:" + root,
		"directory:" + filepath.Join(root, "dir"),
		"file:" + filepath.Join(root, "dir", "file.txt"),
		"symlink:" + filepath.Join(root, "dir", "loop"),
	}, paths(entries))

	link := entries[3].Symlink
	assert.Equal(t, root, link.Target)
	assert.Equal(t, 2, entries[1].Directory.EntryCount)
}
