package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// HTTPFetcher fetches references relative to a base URL.
type HTTPFetcher struct {
	base    *url.URL
	client  *http.Client
	maxSize int64
}

// NewHTTPFetcher creates an HTTPFetcher rooted at baseURL. A trailing slash
// is added so relative references resolve inside the base path.
func NewHTTPFetcher(baseURL string, opts Options) (*HTTPFetcher, error) {
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing base url %q: %w", baseURL, err)
	}

	client := opts.Client
	if client == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		client = &http.Client{Timeout: timeout}
	}

	return &HTTPFetcher{base: u, client: client, maxSize: opts.maxSize()}, nil
}

// Fetch issues a GET for ref and returns the body of a 2xx response.
func (f *HTTPFetcher) Fetch(ctx context.Context, ref string) ([]byte, error) {
	rel, err := url.Parse(ref)
	if err != nil {
		return nil, fmt.Errorf("parsing reference %q: %w", ref, err)
	}
	target := f.base.ResolveReference(rel).String()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("building request for %s: %w", target, err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", target, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{URL: target, StatusCode: resp.StatusCode, Status: resp.Status}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, f.maxSize+1))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", target, err)
	}
	if int64(len(data)) > f.maxSize {
		return nil, fmt.Errorf("fetching %s: body exceeds %d bytes", target, f.maxSize)
	}
	return data, nil
}
