package gallery

import (
	"context"
	"errors"
	"log"
	"sync"

	"github.com/google/uuid"

	"github.com/ctt011/folio/internal/catalog"
)

// ErrSessionClosed is returned by Dispatch after Run has returned.
var ErrSessionClosed = errors.New("gallery session closed")

// Event is an input to a gallery session.
type Event interface{ isEvent() }

// Navigate reports the current URL fragment, on page load and on every
// fragment change.
type Navigate struct{ Fragment string }

// SetQuery replaces the search text.
type SetQuery struct{ Query string }

// TogglePill flips one year or tag pill.
type TogglePill struct {
	Kind  PillKind
	Value string
}

// ClearFilters deselects every pill.
type ClearFilters struct{}

// SelectTab activates a code viewer tab.
type SelectTab struct{ Index int }

func (Navigate) isEvent()     {}
func (SetQuery) isEvent()     {}
func (TogglePill) isEvent()   {}
func (ClearFilters) isEvent() {}
func (SelectTab) isEvent()    {}

// View is an immutable snapshot of what the gallery shows.
type View struct {
	Mode      Mode
	Filter    FilterSnapshot
	YearPills []Pill
	TagPills  []Pill

	// Grid mode.
	Projects []catalog.Project

	// Detail mode. Viewer is nil when the project has no sources.
	Project catalog.Project
	Viewer  *CodeViewer
}

// Sink receives every view a session publishes.
type Sink interface {
	Publish(ctx context.Context, v View) error
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(ctx context.Context, v View) error

// Publish calls f.
func (f SinkFunc) Publish(ctx context.Context, v View) error { return f(ctx, v) }

// Loader resolves source files; *SourceLoader is the production loader.
type Loader interface {
	Load(ctx context.Context, files []catalog.SourceFile) []Artifact
}

type loadResult struct {
	gen       uint64
	slug      string
	artifacts []Artifact
}

// Session owns the filter and route state of one gallery page. Events are
// handled one at a time, in arrival order, on the goroutine running Run;
// source loads run elsewhere and report back through the same loop.
type Session struct {
	ID string

	catalog *catalog.Catalog
	loader  Loader
	sink    Sink

	filter     *FilterState
	route      Route
	viewer     *CodeViewer
	gen        uint64
	cancelLoad context.CancelFunc

	events chan Event
	loaded chan loadResult
	done   chan struct{}

	mu      sync.Mutex
	current Route
	snap    FilterSnapshot
	view    View
}

// NewSession creates a session over c. The catalog must not change for
// the life of the session.
func NewSession(c *catalog.Catalog, loader Loader, sink Sink) *Session {
	return &Session{
		ID:      uuid.NewString(),
		catalog: c,
		loader:  loader,
		sink:    sink,
		filter:  NewFilterState(),
		route:   GridRoute,
		current: GridRoute,
		events:  make(chan Event, 32),
		loaded:  make(chan loadResult),
		done:    make(chan struct{}),
	}
}

// Dispatch queues ev for the session loop.
func (s *Session) Dispatch(ctx context.Context, ev Event) error {
	select {
	case <-s.done:
		return ErrSessionClosed
	default:
	}
	select {
	case s.events <- ev:
		return nil
	case <-s.done:
		return ErrSessionClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Route returns the active route.
func (s *Session) Route() Route {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Filter returns the filter selection as of the last handled event.
func (s *Session) Filter() FilterSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap
}

// LastView returns the most recently published view.
func (s *Session) LastView() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view
}

// Run processes events until ctx is cancelled or the sink fails.
func (s *Session) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	defer close(s.done)
	defer s.abandonLoad()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-s.events:
			if err := s.handle(ctx, ev); err != nil {
				return err
			}
		case res := <-s.loaded:
			if err := s.finishLoad(ctx, res); err != nil {
				return err
			}
		}
	}
}

func (s *Session) handle(ctx context.Context, ev Event) error {
	switch e := ev.(type) {
	case Navigate:
		return s.navigate(ctx, e.Fragment)
	case SetQuery:
		s.filter.SetQuery(e.Query)
		return s.refreshGrid(ctx)
	case TogglePill:
		if !s.filter.Toggle(e.Kind, e.Value) {
			return nil
		}
		return s.refreshGrid(ctx)
	case ClearFilters:
		s.filter.Clear()
		return s.refreshGrid(ctx)
	case SelectTab:
		if s.route.Mode != ModeDetail || s.viewer == nil || !s.viewer.Select(e.Index) {
			return nil
		}
		return s.publish(ctx, s.detailView())
	default:
		return nil
	}
}

func (s *Session) navigate(ctx context.Context, fragment string) error {
	route := Resolve(fragment, s.catalog)
	s.abandonLoad()
	s.setRoute(route)
	s.viewer = nil

	if route.Mode == ModeGrid {
		return s.publish(ctx, s.gridView())
	}

	files := route.Project.SourceFiles
	if !NeedsFetch(files) {
		s.viewer = NewCodeViewer(s.loader.Load(ctx, files))
		return s.publish(ctx, s.detailView())
	}

	gen := s.gen
	loadCtx, cancel := context.WithCancel(ctx)
	s.cancelLoad = cancel
	go func() {
		artifacts := s.loader.Load(loadCtx, files)
		select {
		case s.loaded <- loadResult{gen: gen, slug: route.Project.Slug, artifacts: artifacts}:
		case <-ctx.Done():
		}
	}()
	return nil
}

// finishLoad applies a completed source load unless the route has moved
// on since it started.
func (s *Session) finishLoad(ctx context.Context, res loadResult) error {
	if res.gen != s.gen || s.route.Slug() != res.slug {
		log.Printf("gallery: session %s: discarding stale sources for %q", s.ID, res.slug)
		return nil
	}
	s.cancelLoad = nil
	s.viewer = NewCodeViewer(res.artifacts)
	return s.publish(ctx, s.detailView())
}

// abandonLoad invalidates any in-flight source load. Its result will be
// dropped when it arrives.
func (s *Session) abandonLoad() {
	s.gen++
	if s.cancelLoad != nil {
		s.cancelLoad()
		s.cancelLoad = nil
	}
}

// refreshGrid re-renders after a filter change. Filters only affect what is
// shown while the grid is active.
func (s *Session) refreshGrid(ctx context.Context) error {
	snap := s.filter.Snapshot()
	s.mu.Lock()
	s.snap = snap
	s.mu.Unlock()

	if s.route.Mode != ModeGrid {
		return nil
	}
	return s.publish(ctx, s.gridView())
}

func (s *Session) setRoute(r Route) {
	s.route = r
	s.mu.Lock()
	s.current = r
	s.mu.Unlock()
}

func baseView(mode Mode, c *catalog.Catalog, f *FilterState) View {
	snap := f.Snapshot()
	years, tags := snap.Pills(c)
	return View{Mode: mode, Filter: snap, YearPills: years, TagPills: tags}
}

// GridView builds the grid view of c under filter f.
func GridView(c *catalog.Catalog, f *FilterState) View {
	v := baseView(ModeGrid, c, f)
	v.Projects = f.Apply(c.Projects())
	return v
}

func (s *Session) gridView() View {
	return GridView(s.catalog, s.filter)
}

func (s *Session) detailView() View {
	v := baseView(ModeDetail, s.catalog, s.filter)
	v.Project = s.route.Project
	v.Viewer = s.viewer.Clone()
	return v
}

func (s *Session) publish(ctx context.Context, v View) error {
	s.mu.Lock()
	s.view = v
	s.mu.Unlock()
	return s.sink.Publish(ctx, v)
}
