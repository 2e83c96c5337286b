package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"path"
	"strings"
)

// Fetcher retrieves the raw bytes behind a reference. References are
// slash-separated paths relative to the fetcher's root, or absolute URLs
// when the backend supports them.
type Fetcher interface {
	Fetch(ctx context.Context, ref string) ([]byte, error)
}

// StatusError reports a non-success HTTP status.
type StatusError struct {
	URL        string
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("fetching %s: %s", e.URL, e.Status)
}

// JSON fetches ref and decodes it into v.
func JSON(ctx context.Context, f Fetcher, ref string, v any) error {
	data, err := f.Fetch(ctx, ref)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decoding %s: %w", ref, err)
	}
	return nil
}

// Text fetches ref as a string.
func Text(ctx context.Context, f Fetcher, ref string) (string, error) {
	data, err := f.Fetch(ctx, ref)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// New picks a backend for root: http(s) URLs get an HTTPFetcher, anything
// else is treated as a directory on disk.
func New(root string, opts Options) (Fetcher, error) {
	if isURL(root) {
		return NewHTTPFetcher(root, opts)
	}
	return NewDirFetcher(root, opts), nil
}

// Relative returns a Fetcher that resolves relative references against dir
// before delegating to f. Absolute URLs pass through untouched.
func Relative(f Fetcher, dir string) Fetcher {
	dir = strings.Trim(dir, "/")
	if dir == "" || dir == "." {
		return f
	}
	return &relativeFetcher{inner: f, dir: dir}
}

type relativeFetcher struct {
	inner Fetcher
	dir   string
}

func (r *relativeFetcher) Fetch(ctx context.Context, ref string) ([]byte, error) {
	if isURL(ref) || strings.HasPrefix(ref, "/") {
		return r.inner.Fetch(ctx, ref)
	}
	return r.inner.Fetch(ctx, path.Join(r.dir, ref))
}

func isURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
