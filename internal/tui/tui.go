// Package tui is a terminal front end for the project gallery. It drives
// the same gallery session as the browser and renders its views with
// lipgloss.
package tui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"

	"github.com/ctt011/folio/internal/catalog"
	"github.com/ctt011/folio/internal/gallery"
)

// Options configures the terminal browser.
type Options struct {
	Title    string
	Fragment string // project to open first; empty shows the grid
}

// Run shows the gallery of c in the terminal until the user quits or ctx
// is cancelled.
func Run(ctx context.Context, c *catalog.Catalog, loader gallery.Loader, opts Options) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)

	q := newQueue()
	p := tea.NewProgram(NewModel(q, opts.Title), tea.WithAltScreen(), tea.WithContext(gctx))
	sess := gallery.NewSession(c, loader, gallery.SinkFunc(func(ctx context.Context, v gallery.View) error {
		p.Send(ViewMsg{View: v})
		return nil
	}))

	q.Dispatch(gallery.Navigate{Fragment: opts.Fragment})

	g.Go(func() error { return sess.Run(gctx) })
	g.Go(func() error { return q.pump(gctx, sess) })
	g.Go(func() error {
		defer cancel()
		_, err := p.Run()
		if errors.Is(err, tea.ErrProgramKilled) {
			return nil
		}
		return err
	})

	err := g.Wait()
	if errors.Is(err, context.Canceled) || errors.Is(err, gallery.ErrSessionClosed) {
		return nil
	}
	return err
}
