package duplicate

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/IvanShishkin/dirhound/internal/config"
	"github.com/IvanShishkin/dirhound/internal/detectors"
	"github.com/IvanShishkin/dirhound/internal/filesystem"
	"github.com/IvanShishkin/dirhound/pkg/models"
	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"
)

// Result is the outcome of one grouping pass
type Result struct {
	Groups        []models.DuplicateGroup
	Errors        []error         // *models.ReadError, in walk order
	Unreadable    map[string]bool // paths excluded because their content could not be read
	Fingerprinted int
	Cancelled     bool
}

func (r *Result) fail(path string, err error) {
	if r.Unreadable[path] {
		return
	}
	r.Unreadable[path] = true

	var readErr *models.ReadError
	if !errors.As(err, &readErr) {
		err = &models.ReadError{Path: path, Err: err}
	}
	r.Errors = append(r.Errors, err)
}

// Grouper partitions files into groups of byte-identical content. Fingerprints
// only nominate candidates; every group is confirmed byte for byte before it
// is reported.
type Grouper struct {
	*detectors.BaseDetector
	fingerprinter filesystem.Fingerprinter
	comparer      filesystem.ContentComparer
	workers       int
	minSize       int64
	logger        *zap.Logger
	progress      func(done, total int)
}

// NewGrouper creates a duplicate grouper. workers bounds concurrent fingerprinting.
func NewGrouper(fp filesystem.Fingerprinter, cmp filesystem.ContentComparer, workers int, minSize int64, logger *zap.Logger) *Grouper {
	if workers <= 0 {
		workers = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Grouper{
		BaseDetector:  detectors.NewBaseDetector(config.DetectorDuplicate, "Groups of files with identical content"),
		fingerprinter: fp,
		comparer:      cmp,
		workers:       workers,
		minSize:       minSize,
		logger:        logger,
	}
}

// SetProgressCallback registers fn to be called after each fingerprint.
// fn may be called from several goroutines at once.
func (g *Grouper) SetProgressCallback(fn func(done, total int)) {
	g.progress = fn
}

type bucketKey struct {
	size        int64
	fingerprint models.Fingerprint
}

type bucket struct {
	key     bucketKey
	members []int
}

// Group fingerprints candidate files and returns confirmed duplicate groups.
// Output order follows the order of files, never hashing completion order.
func (g *Grouper) Group(ctx context.Context, files []models.FileRecord) Result {
	res := Result{Unreadable: make(map[string]bool)}

	candidates := g.candidates(files)
	if len(candidates) == 0 {
		return res
	}

	g.logger.Debug("Fingerprinting duplicate candidates",
		zap.Int("candidates", len(candidates)),
		zap.Int("workers", g.workers))

	// Each task writes only its own slot
	fingerprints := make([]models.Fingerprint, len(files))
	errs := make([]error, len(files))

	var done atomic.Int64
	p := pool.New().WithMaxGoroutines(g.workers)
	for _, idx := range candidates {
		if ctx.Err() != nil {
			break
		}
		p.Go(func() {
			if err := ctx.Err(); err != nil {
				errs[idx] = err
				return
			}
			fingerprints[idx], errs[idx] = g.fingerprinter.Fingerprint(ctx, files[idx].Path)
			if g.progress != nil {
				g.progress(int(done.Add(1)), len(candidates))
			}
		})
	}
	p.Wait()

	if ctx.Err() != nil {
		res.Cancelled = true
		return res
	}

	// Bucket by size and fingerprint, in first-insertion order
	var buckets []*bucket
	index := make(map[bucketKey]*bucket)
	for _, idx := range candidates {
		if errs[idx] != nil {
			g.logger.Warn("Failed to fingerprint file",
				zap.String("path", files[idx].Path),
				zap.Error(errs[idx]))
			res.fail(files[idx].Path, errs[idx])
			continue
		}
		res.Fingerprinted++

		key := bucketKey{size: files[idx].Size, fingerprint: fingerprints[idx]}
		b, ok := index[key]
		if !ok {
			b = &bucket{key: key}
			index[key] = b
			buckets = append(buckets, b)
		}
		b.members = append(b.members, idx)
	}

	for _, b := range buckets {
		if len(b.members) < 2 {
			continue
		}

		classes, err := g.confirm(ctx, files, b.members, &res)
		if err != nil {
			res.Cancelled = true
			res.Groups = nil
			return res
		}

		for _, class := range classes {
			if len(class) < 2 {
				continue
			}
			group := models.DuplicateGroup{
				Fingerprint:      b.key.fingerprint,
				Size:             b.key.size,
				ReclaimableBytes: b.key.size * int64(len(class)-1),
				Files:            make([]models.FileRecord, 0, len(class)),
			}
			for _, idx := range class {
				rec := files[idx]
				rec.Fingerprint = fingerprints[idx]
				group.Files = append(group.Files, rec)
			}
			res.Groups = append(res.Groups, group)
		}
	}

	return res
}

// candidates returns indexes of files that share their size with at least one
// other file. A file with a unique size cannot have a duplicate, so its bytes
// are never read.
func (g *Grouper) candidates(files []models.FileRecord) []int {
	seen := make(map[string]bool, len(files))
	bySize := make(map[int64]int)
	var eligible []int
	for i, f := range files {
		if seen[f.Path] || f.Size < g.minSize {
			continue
		}
		seen[f.Path] = true
		bySize[f.Size]++
		eligible = append(eligible, i)
	}

	var out []int
	for _, i := range eligible {
		if bySize[files[i].Size] > 1 {
			out = append(out, i)
		}
	}
	return out
}

// confirm splits a fingerprint bucket into classes of byte-identical files.
// Each member is compared against the first member of each class. A member
// that cannot be read is dropped; an unreadable class head is replaced by the
// next member of its class. The returned error is non-nil only on cancellation.
func (g *Grouper) confirm(ctx context.Context, files []models.FileRecord, members []int, res *Result) ([][]int, error) {
	var classes [][]int

	for _, m := range members {
		placed, dropped := false, false

		for c := 0; c < len(classes) && !placed && !dropped; {
			head := classes[c][0]
			same, err := g.comparer.SameContent(ctx, files[head].Path, files[m].Path)
			if err != nil {
				if ctx.Err() != nil {
					return nil, ctx.Err()
				}
				bad := failedPath(err, files[m].Path)
				g.logger.Warn("Failed to compare files",
					zap.String("path", bad),
					zap.Error(err))
				res.fail(bad, err)

				if bad == files[head].Path {
					classes[c] = classes[c][1:]
					if len(classes[c]) == 0 {
						classes = append(classes[:c], classes[c+1:]...)
					}
					continue
				}
				dropped = true
				break
			}

			if same {
				classes[c] = append(classes[c], m)
				placed = true
				break
			}
			c++
		}

		if !placed && !dropped {
			classes = append(classes, []int{m})
		}
	}

	return classes, nil
}

// failedPath returns the path a comparison error refers to
func failedPath(err error, fallback string) string {
	var readErr *models.ReadError
	if errors.As(err, &readErr) {
		return readErr.Path
	}
	return fallback
}
