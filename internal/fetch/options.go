package fetch

import (
	"net/http"
	"time"
)

// DefaultTimeout bounds a single HTTP fetch.
const DefaultTimeout = 15 * time.Second

// DefaultMaxSize is the largest body a fetcher will return (8 MB).
const DefaultMaxSize int64 = 8 << 20

// Options configures a Fetcher backend.
type Options struct {
	Timeout time.Duration // HTTP only; 0 = DefaultTimeout
	MaxSize int64         // 0 = DefaultMaxSize
	Include []string      // dir only; doublestar globs, empty = everything
	Exclude []string      // dir only; doublestar globs
	Client  *http.Client  // HTTP only; overrides Timeout when set
}

func (o Options) maxSize() int64 {
	if o.MaxSize <= 0 {
		return DefaultMaxSize
	}
	return o.MaxSize
}
