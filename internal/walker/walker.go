// Package walker finds the source files that sit next to a portfolio
// catalog, so they can be compared with what the catalog references.
package walker

import (
	"fmt"
	"io/fs"
	"path"
	"sort"

	"github.com/ctt011/folio/internal/catalog"
)

// DefaultMaxFileSize is the largest file reported (1 MB).
const DefaultMaxFileSize int64 = 1 << 20

// FileInfo holds metadata about a single file discovered during traversal.
type FileInfo struct {
	RelPath  string // slash-separated, relative to the walked root
	Size     int64
	Language string // catalog language id
	IsImage  bool
}

// Config controls the behaviour of the Walk function.
type Config struct {
	Include     []string // Glob patterns: only matching files are included.
	Exclude     []string // Glob patterns: matching files are excluded.
	MaxFileSize int64    // Files larger than this are skipped (0 = use default).
}

// Walk traverses fsys and returns every file with a recognised source or
// image language that passes filtering, sorted by path.
func Walk(fsys fs.FS, cfg Config) ([]FileInfo, error) {
	maxSize := cfg.MaxFileSize
	if maxSize <= 0 {
		maxSize = DefaultMaxFileSize
	}

	var files []FileInfo
	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if p == "." {
				return walkErr
			}
			// Skip entries we cannot read instead of aborting.
			return nil
		}

		if d.IsDir() {
			if p != "." && shouldExcludeDir(d.Name()) {
				return fs.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		lang := DetectLanguage(p)
		if lang == "" {
			return nil
		}
		if !MatchesInclude(p, cfg.Include) || MatchesExclude(p, cfg.Exclude) {
			return nil
		}

		info, err := d.Info()
		if err != nil || info.Size() > maxSize {
			return nil
		}

		files = append(files, FileInfo{
			RelPath:  p,
			Size:     info.Size(),
			Language: lang,
			IsImage:  lang == catalog.LanguageImage,
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walker: traversal: %w", err)
	}

	sort.Slice(files, func(i, j int) bool { return files[i].RelPath < files[j].RelPath })
	return files, nil
}

// Unreferenced returns the non-image files that no project in c lists as a
// source file. Files are relative to the catalog directory, the same base
// source paths are resolved against.
func Unreferenced(files []FileInfo, c *catalog.Catalog) []FileInfo {
	referenced := make(map[string]bool)
	for _, p := range c.Projects() {
		for _, sf := range p.SourceFiles {
			if sf.Path != "" {
				referenced[path.Clean(sf.Path)] = true
			}
		}
	}

	var out []FileInfo
	for _, f := range files {
		if !f.IsImage && !referenced[f.RelPath] {
			out = append(out, f)
		}
	}
	return out
}
