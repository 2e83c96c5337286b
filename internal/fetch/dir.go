package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// ErrForbidden is returned for references outside the include/exclude globs.
var ErrForbidden = errors.New("reference not allowed")

// FSFetcher reads references from a filesystem, typically the site directory.
type FSFetcher struct {
	fsys    fs.FS
	include []string
	exclude []string
	maxSize int64
}

// NewDirFetcher creates an FSFetcher rooted at dir on disk.
func NewDirFetcher(dir string, opts Options) *FSFetcher {
	return NewFSFetcher(os.DirFS(dir), opts)
}

// NewFSFetcher creates an FSFetcher over fsys.
func NewFSFetcher(fsys fs.FS, opts Options) *FSFetcher {
	return &FSFetcher{
		fsys:    fsys,
		include: opts.Include,
		exclude: opts.Exclude,
		maxSize: opts.maxSize(),
	}
}

// Fetch reads ref from the filesystem. Leading "./" and "/" are ignored;
// references escaping the root are rejected by fs.ValidPath.
func (f *FSFetcher) Fetch(ctx context.Context, ref string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	name := path.Clean(strings.TrimPrefix(ref, "/"))
	if !fs.ValidPath(name) || name == "." {
		return nil, fmt.Errorf("fetching %s: %w", ref, fs.ErrInvalid)
	}
	if !f.Allowed(name) {
		return nil, fmt.Errorf("fetching %s: %w", ref, ErrForbidden)
	}

	file, err := f.fsys.Open(name)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", ref, err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", ref, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("fetching %s: is a directory", ref)
	}
	if info.Size() > f.maxSize {
		return nil, fmt.Errorf("fetching %s: file exceeds %d bytes", ref, f.maxSize)
	}

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", ref, err)
	}
	return data, nil
}

// Allowed reports whether a cleaned relative name passes the include and
// exclude globs.
func (f *FSFetcher) Allowed(name string) bool {
	if len(f.include) > 0 && !matchesAny(name, f.include) {
		return false
	}
	return !matchesAny(name, f.exclude)
}

// matchesAny checks name and its base name against doublestar patterns.
func matchesAny(name string, patterns []string) bool {
	base := path.Base(name)
	for _, pattern := range patterns {
		if matched, err := doublestar.Match(pattern, name); err == nil && matched {
			return true
		}
		if matched, err := doublestar.Match(pattern, base); err == nil && matched {
			return true
		}
	}
	return false
}

// FS exposes the fetcher's filesystem with the same globs applied, for
// serving the site directory over HTTP. Excluded paths and files outside
// the include globs behave as missing; directories are only subject to the
// exclude globs.
func (f *FSFetcher) FS() fs.FS {
	return allowedFS{f}
}

type allowedFS struct {
	f *FSFetcher
}

func (a allowedFS) Open(name string) (fs.File, error) {
	if name != "." && matchesAny(name, a.f.exclude) {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
	}
	file, err := a.f.fsys.Open(name)
	if err != nil {
		return nil, err
	}
	if len(a.f.include) == 0 {
		return file, nil
	}
	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, err
	}
	if !info.IsDir() && !matchesAny(name, a.f.include) {
		file.Close()
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
	}
	return file, nil
}
