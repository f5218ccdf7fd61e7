package filesystem

import (
	"bytes"
	"context"
	"errors"
	"io"

	"github.com/IvanShishkin/dirhound/pkg/models"
	"github.com/spf13/afero"
	"github.com/zeebo/xxh3"
)

const compareBufferSize = 64 * 1024

// Fingerprinter computes a content fingerprint for a file
type Fingerprinter interface {
	Fingerprint(ctx context.Context, path string) (models.Fingerprint, error)
}

// ContentComparer decides whether two files hold identical bytes
type ContentComparer interface {
	SameContent(ctx context.Context, a, b string) (bool, error)
}

// ContentHasher fingerprints files with XXH3-128 and confirms equality byte by byte.
// Errors it returns are *models.ReadError.
type ContentHasher struct {
	fs afero.Fs
}

// NewContentHasher creates a hasher reading through fsys
func NewContentHasher(fsys afero.Fs) *ContentHasher {
	return &ContentHasher{fs: fsys}
}

// Fingerprint streams the whole file through XXH3-128
func (h *ContentHasher) Fingerprint(ctx context.Context, path string) (models.Fingerprint, error) {
	f, err := h.fs.Open(path)
	if err != nil {
		return models.Fingerprint{}, &models.ReadError{Path: path, Err: err}
	}
	defer f.Close()

	hasher := xxh3.New()
	if _, err := io.Copy(hasher, &contextReader{ctx: ctx, r: f}); err != nil {
		return models.Fingerprint{}, &models.ReadError{Path: path, Err: err}
	}

	return models.Fingerprint(hasher.Sum128().Bytes()), nil
}

// SameContent compares two files byte for byte
func (h *ContentHasher) SameContent(ctx context.Context, a, b string) (bool, error) {
	fa, err := h.fs.Open(a)
	if err != nil {
		return false, &models.ReadError{Path: a, Err: err}
	}
	defer fa.Close()

	fb, err := h.fs.Open(b)
	if err != nil {
		return false, &models.ReadError{Path: b, Err: err}
	}
	defer fb.Close()

	bufA := make([]byte, compareBufferSize)
	bufB := make([]byte, compareBufferSize)

	for {
		if err := ctx.Err(); err != nil {
			return false, err
		}

		na, errA := io.ReadFull(fa, bufA)
		if errA != nil && !isEOF(errA) {
			return false, &models.ReadError{Path: a, Err: errA}
		}
		nb, errB := io.ReadFull(fb, bufB)
		if errB != nil && !isEOF(errB) {
			return false, &models.ReadError{Path: b, Err: errB}
		}

		if na != nb || !bytes.Equal(bufA[:na], bufB[:nb]) {
			return false, nil
		}
		// A short read means both files ended at the same offset
		if errA != nil || errB != nil {
			return errA != nil && errB != nil, nil
		}
	}
}

func isEOF(err error) bool {
	return errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF)
}

// contextReader aborts a long read once the context is cancelled
type contextReader struct {
	ctx context.Context
	r   io.Reader
}

func (cr *contextReader) Read(p []byte) (int, error) {
	if err := cr.ctx.Err(); err != nil {
		return 0, err
	}
	return cr.r.Read(p)
}
