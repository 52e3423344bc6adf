// Package source provides the file-access primitives concat.Concatenate
// builds on: memory-mapped byte regions behind a small Opener interface, and
// a PathNormalizer implementing the directory-join rule for relative
// INCLUDE paths. Both are interfaces with a default, production
// implementation — file I/O and path normalisation are named external
// collaborators, kept behind seams so the preprocessor itself stays
// table-driven and host-independent.
package source

import (
	"os"
	"path"
	"strings"

	"github.com/edsrzf/mmap-go"

	"github.com/opm-go/deckparser/deckerr"
)

// Region is a read-only view of a file's bytes, held open for as long as
// some entry on the preprocessor's work stack still references it.
type Region interface {
	// Bytes returns the region's full contents. The slice is only valid
	// until Close is called.
	Bytes() []byte
	// Close releases the underlying resources (unmap, close).
	Close() error
}

// Opener opens a path into a Region.
type Opener interface {
	Open(path string) (Region, error)
}

// MappedOpener is the default Opener, backed by github.com/edsrzf/mmap-go.
// It is the production Opener used by concat.Concatenate.
type MappedOpener struct{}

// Open memory-maps path read-only. A zero-length file is mapped as an empty
// region without invoking mmap, which rejects zero-length mappings.
func (MappedOpener) Open(p string) (Region, error) {
	f, err := os.Open(p)
	if err != nil {
		return nil, deckerr.Wrap(deckerr.IOError, err, "open %s", p).WithPath(p)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, deckerr.Wrap(deckerr.IOError, err, "stat %s", p).WithPath(p)
	}
	if info.Size() == 0 {
		return &emptyRegion{f: f}, nil
	}

	m, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		f.Close()
		return nil, deckerr.Wrap(deckerr.IOError, err, "mmap %s", p).WithPath(p)
	}
	return &mappedRegion{f: f, m: m}, nil
}

type mappedRegion struct {
	f *os.File
	m mmap.MMap
}

func (r *mappedRegion) Bytes() []byte { return []byte(r.m) }

func (r *mappedRegion) Close() error {
	uerr := r.m.Unmap()
	cerr := r.f.Close()
	if uerr != nil {
		return uerr
	}
	return cerr
}

type emptyRegion struct{ f *os.File }

func (r *emptyRegion) Bytes() []byte { return nil }
func (r *emptyRegion) Close() error  { return r.f.Close() }

// PathNormalizer resolves an INCLUDE path (already alias-expanded) relative
// to baseDir. concat.Concatenate passes the root deck's directory as baseDir
// for every INCLUDE, nested ones included; the directory of the file that
// issued the INCLUDE is not used.
type PathNormalizer interface {
	Normalize(baseDir, raw string) string
}

// UnixNormalizer is the default PathNormalizer: backslashes are rewritten
// to forward slashes, and a
// relative path is joined against baseDir and cleaned. baseDir is always
// the root deck's directory — concatenate() computes it once, before its
// work-stack loop starts, and reuses it unchanged for every nested
// INCLUDE regardless of how deep the include tree goes.
type UnixNormalizer struct{}

func (UnixNormalizer) Normalize(baseDir, raw string) string {
	p := strings.ReplaceAll(raw, `\`, "/")
	if path.IsAbs(p) {
		return path.Clean(p)
	}
	return path.Clean(path.Join(baseDir, p))
}
