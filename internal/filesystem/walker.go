package filesystem

import (
	"context"
	"os"
	"path/filepath"

	"github.com/IvanShishkin/dirhound/pkg/models"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// WalkFunc is called once per entry in walk order. Returning an error stops the walk.
type WalkFunc func(entry models.Entry) error

// Walker walks the filesystem and reports files, directories and symlinks
type Walker struct {
	fs      afero.Fs
	logger  *zap.Logger
	exclude map[string]bool
}

// NewWalker creates a new filesystem walker
func NewWalker(fsys afero.Fs, exclude []string, logger *zap.Logger) *Walker {
	// Build exclude map for fast lookup
	excludeMap := make(map[string]bool, len(exclude))
	for _, dir := range exclude {
		excludeMap[dir] = true
	}

	return &Walker{
		fs:      fsys,
		logger:  logger,
		exclude: excludeMap,
	}
}

// ValidateRoot checks that root exists and is a directory
func (w *Walker) ValidateRoot(root string) error {
	info, err := w.fs.Stat(root)
	if err != nil {
		return &models.InvalidRootError{Root: root, Err: err}
	}
	if !info.IsDir() {
		return &models.InvalidRootError{Root: root, Err: models.ErrNotDirectory}
	}
	return nil
}

// Walk recursively walks the directory tree in lexical order. Each directory is
// reported before its children. Symlinks are reported and never followed.
// Unreadable entries are reported as EntrySkipped with an *models.AccessError
// and the walk continues. Only context cancellation or an error returned by fn
// stops the walk.
func (w *Walker) Walk(ctx context.Context, root string, fn WalkFunc) error {
	root = filepath.Clean(root)
	if err := w.ValidateRoot(root); err != nil {
		return err
	}
	return w.walkDir(ctx, root, root, fn)
}

func (w *Walker) walkDir(ctx context.Context, root, dir string, fn WalkFunc) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	infos, err := afero.ReadDir(w.fs, dir)
	if err != nil {
		return w.skip(dir, err, fn)
	}

	dirRecord := &models.DirectoryRecord{
		Path:         dir,
		RelativePath: relativePath(root, dir),
		EntryCount:   len(infos),
	}
	if err := fn(models.Entry{Kind: models.EntryDirectory, Directory: dirRecord}); err != nil {
		return err
	}

	for _, info := range infos {
		if err := ctx.Err(); err != nil {
			return err
		}

		path := filepath.Join(dir, info.Name())
		mode := info.Mode()

		switch {
		case mode&os.ModeSymlink != 0:
			err = fn(models.Entry{Kind: models.EntrySymlink, Symlink: w.symlinkRecord(root, path)})

		case info.IsDir():
			if w.exclude[info.Name()] {
				w.logger.Debug("Skipping excluded directory", zap.String("path", path))
				continue
			}
			err = w.walkDir(ctx, root, path, fn)

		case mode.IsRegular():
			err = w.visitFile(root, path, info, fn)

		default:
			// Devices, sockets and pipes are neither files nor directories
			w.logger.Debug("Skipping special file",
				zap.String("path", path),
				zap.String("mode", mode.String()))
		}

		if err != nil {
			return err
		}
	}

	return nil
}

// visitFile confirms the file can be opened and reports its record
func (w *Walker) visitFile(root, path string, info os.FileInfo, fn WalkFunc) error {
	f, err := w.fs.Open(path)
	if err != nil {
		return w.skip(path, err, fn)
	}
	f.Close()

	record := &models.FileRecord{
		Path:         path,
		RelativePath: relativePath(root, path),
		Name:         info.Name(),
		Size:         info.Size(),
		LastModified: info.ModTime().UTC(),
		LastAccessed: getAccessTime(info),
	}

	return fn(models.Entry{Kind: models.EntryFile, File: record})
}

func (w *Walker) symlinkRecord(root, path string) *models.SymlinkRecord {
	record := &models.SymlinkRecord{
		Path:         path,
		RelativePath: relativePath(root, path),
	}

	if reader, ok := w.fs.(afero.LinkReader); ok {
		target, err := reader.ReadlinkIfPossible(path)
		if err == nil {
			record.Target = target
		}
	}

	return record
}

func (w *Walker) skip(path string, err error, fn WalkFunc) error {
	w.logger.Warn("Error accessing path", zap.String("path", path), zap.Error(err))
	return fn(models.Entry{
		Kind: models.EntrySkipped,
		Err:  &models.AccessError{Path: path, Err: err},
	})
}

func relativePath(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return path
	}
	return rel
}
