package prefs

import (
	"context"
	"testing"
)

// testContext backports testing.T.Context (Go 1.24) for older toolchains:
// it returns a context that is canceled when the test finishes.
func testContext(tb testing.TB) context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	tb.Cleanup(cancel)
	return ctx
}
