package gallery

import (
	"context"
	"errors"
	"fmt"
	"log"

	"golang.org/x/sync/errgroup"

	"github.com/ctt011/folio/internal/catalog"
	"github.com/ctt011/folio/internal/fetch"
)

// DefaultConcurrency bounds parallel source fetches per detail view.
const DefaultConcurrency = 4

// Artifact is a source file ready to display.
type Artifact struct {
	Filename string
	Language string
	Code     string
	Path     string
	IsImage  bool

	// Err is set when the file could not be fetched; Code then holds a
	// placeholder describing the failure.
	Err error
}

// ImageSrc is the reference an image artifact displays.
func (a Artifact) ImageSrc() string {
	if a.Path != "" {
		return a.Path
	}
	return a.Code
}

// SourceLoader resolves source-file descriptors into artifacts.
type SourceLoader struct {
	Fetcher     fetch.Fetcher
	Concurrency int
}

// NewSourceLoader creates a loader that fetches through f.
func NewSourceLoader(f fetch.Fetcher, concurrency int) *SourceLoader {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	return &SourceLoader{Fetcher: f, Concurrency: concurrency}
}

// NeedsFetch reports whether files are resolved over the network. The first
// descriptor's shape decides for the whole list.
func NeedsFetch(files []catalog.SourceFile) bool {
	return len(files) > 0 && files[0].Path != ""
}

// Load resolves files into artifacts in input order. Image descriptors are
// passed through as references and inline code is used as-is. A file that
// fails to fetch becomes a placeholder whose code is an error comment; it
// never affects its siblings, so Load has no error return.
func (l *SourceLoader) Load(ctx context.Context, files []catalog.SourceFile) []Artifact {
	artifacts := make([]Artifact, len(files))
	if !NeedsFetch(files) {
		for i, f := range files {
			artifacts[i] = passThrough(f)
		}
		return artifacts
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(l.Concurrency)
	for i, f := range files {
		if f.IsImage() || f.Path == "" {
			artifacts[i] = passThrough(f)
			continue
		}
		i, f := i, f // per-iteration copies for pre-Go 1.22 loop semantics
		g.Go(func() error {
			artifacts[i] = l.loadOne(gctx, f)
			return nil
		})
	}
	_ = g.Wait()
	return artifacts
}

func (l *SourceLoader) loadOne(ctx context.Context, f catalog.SourceFile) Artifact {
	a := Artifact{Filename: f.Filename, Language: f.Language, Path: f.Path}
	code, err := fetch.Text(ctx, l.Fetcher, f.Path)
	if err != nil {
		log.Printf("gallery: loading %s: %v", f.Filename, err)
		a.Code = "// Error loading file: " + describeFailure(f.Filename, err)
		a.Err = err
		return a
	}
	a.Code = code
	return a
}

func passThrough(f catalog.SourceFile) Artifact {
	return Artifact{
		Filename: f.Filename,
		Language: f.Language,
		Code:     f.Code,
		Path:     f.Path,
		IsImage:  f.IsImage(),
	}
}

func describeFailure(filename string, err error) string {
	var statusErr *fetch.StatusError
	if errors.As(err, &statusErr) {
		return fmt.Sprintf("Failed to load %s: %d", filename, statusErr.StatusCode)
	}
	return err.Error()
}
