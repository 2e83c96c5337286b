package tui

import (
	"context"
	"strings"
	"sync"
	"testing"
	"testing/fstest"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ctt011/folio/internal/catalog"
	"github.com/ctt011/folio/internal/fetch"
	"github.com/ctt011/folio/internal/gallery"
)

type recorder struct {
	mu     sync.Mutex
	events []gallery.Event
}

func (r *recorder) Dispatch(ev gallery.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

func (r *recorder) last(t *testing.T) gallery.Event {
	t.Helper()
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.events) == 0 {
		t.Fatal("no events dispatched")
	}
	return r.events[len(r.events)-1]
}

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.New([]catalog.Project{
		{Slug: "alu", Title: "Pipelined ALU", Description: "32-bit ALU", Year: "2024", Tags: []string{"hardware"},
			SourceFiles: []catalog.SourceFile{{Filename: "alu.sv", Language: "systemverilog", Path: "src/alu.sv"}}},
		{Slug: "blog", Title: "Static Blog", Description: "A web log", Year: "2023", Tags: []string{"web"}},
	})
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func gridModel(t *testing.T, r *recorder) Model {
	t.Helper()
	c := testCatalog(t)
	m := NewModel(r, "Portfolio")
	return update(t, m,
		tea.WindowSizeMsg{Width: 100, Height: 30},
		ViewMsg{View: gallery.GridView(c, gallery.NewFilterState())},
	)
}

func TestModelWaitsForFirstView(t *testing.T) {
	m := NewModel(&recorder{}, "Portfolio")
	if !strings.Contains(m.View(), "Loading gallery") {
		t.Errorf("expected loading screen, got %q", m.View())
	}
}

func TestModelGridRendersCards(t *testing.T) {
	m := gridModel(t, &recorder{})
	out := m.View()
	for _, want := range []string{"Portfolio", "2 projects", "Pipelined ALU", "Static Blog", "hardware", "2023"} {
		if !strings.Contains(out, want) {
			t.Errorf("grid view missing %q", want)
		}
	}
}

func TestModelOpenProject(t *testing.T) {
	r := &recorder{}
	m := gridModel(t, r)
	m = update(t, m, key("down"), key("enter"))

	nav, ok := r.last(t).(gallery.Navigate)
	if !ok || nav.Fragment != "blog" {
		t.Fatalf("expected Navigate to blog, got %#v", r.last(t))
	}
	if !strings.Contains(m.View(), "loading...") {
		t.Error("expected a loading marker on the opened card")
	}
}

func TestModelSearchDispatchesQuery(t *testing.T) {
	r := &recorder{}
	m := gridModel(t, r)
	m = update(t, m, key("/"), key("w"), key("e"))

	q, ok := r.last(t).(gallery.SetQuery)
	if !ok || q.Query != "we" {
		t.Fatalf("expected SetQuery \"we\", got %#v", r.last(t))
	}

	m = update(t, m, key("enter"), key("q"))
	if m.searching {
		t.Error("enter should leave search")
	}
}

func TestModelPillKeys(t *testing.T) {
	r := &recorder{}
	m := gridModel(t, r)

	// Pills are years newest first, then tags: 2024 2023 hardware web.
	m = update(t, m, key("l"), key("l"), key(" "))
	toggle, ok := r.last(t).(gallery.TogglePill)
	if !ok || toggle.Kind != gallery.PillTag || toggle.Value != "hardware" {
		t.Fatalf("expected hardware tag toggle, got %#v", r.last(t))
	}

	update(t, m, key("c"))
	if _, ok := r.last(t).(gallery.ClearFilters); !ok {
		t.Fatalf("expected ClearFilters, got %#v", r.last(t))
	}
}

func TestModelDetailTabsAndBack(t *testing.T) {
	r := &recorder{}
	c := testCatalog(t)
	alu, _ := c.BySlug("alu")
	detail := gallery.View{
		Mode:    gallery.ModeDetail,
		Project: alu,
		Viewer: gallery.NewCodeViewer([]gallery.Artifact{
			{Filename: "alu.sv", Language: "systemverilog", Code: "module alu;\n  // add\nendmodule"},
			{Filename: "wave.png", Path: "src/wave.png", IsImage: true},
		}),
	}

	m := update(t, gridModel(t, r), ViewMsg{View: detail})
	out := m.View()
	for _, want := range []string{"#alu", "Pipelined ALU", "About", "32-bit ALU", "alu.sv", "wave.png", "module", "// add", "endmodule"} {
		if !strings.Contains(out, want) {
			t.Errorf("detail view missing %q", want)
		}
	}

	m = update(t, m, key("tab"))
	tab, ok := r.last(t).(gallery.SelectTab)
	if !ok || tab.Index != 1 {
		t.Fatalf("expected SelectTab 1, got %#v", r.last(t))
	}

	m = update(t, m, key("esc"))
	nav, ok := r.last(t).(gallery.Navigate)
	if !ok || nav.Fragment != "" {
		t.Fatalf("expected Navigate to grid, got %#v", r.last(t))
	}
}

func TestSourceBodyImage(t *testing.T) {
	out := sourceBody(gallery.Artifact{Filename: "wave.png", Path: "src/wave.png", IsImage: true})
	if !strings.Contains(out, "[image]") || !strings.Contains(out, "src/wave.png") {
		t.Errorf("image body = %q", out)
	}
}

func TestCodeLineKeepsText(t *testing.T) {
	line := `assign y = 8'hFF; // "done"`
	for _, lang := range []string{"systemverilog", "python"} {
		got := codeLine(line, lang)
		// Styles only add escape sequences around tokens.
		if !strings.Contains(got, "assign") || !strings.Contains(got, "8'hFF") || !strings.Contains(got, `"done"`) {
			t.Errorf("codeLine(%s) = %q", lang, got)
		}
	}
}

func TestQueuePumpsInOrder(t *testing.T) {
	c := testCatalog(t)
	loader := gallery.NewSourceLoader(fetch.NewFSFetcher(fstest.MapFS{
		"src/alu.sv": {Data: []byte("module alu;\nendmodule")},
	}, fetch.Options{}), 2)

	views := make(chan gallery.View, 16)
	sess := gallery.NewSession(c, loader, gallery.SinkFunc(func(ctx context.Context, v gallery.View) error {
		views <- v
		return nil
	}))

	ctx, cancel := context.WithCancel(testContext(t))
	defer cancel()
	go sess.Run(ctx)

	q := newQueue()
	go q.pump(ctx, sess)

	q.Dispatch(gallery.Navigate{})
	q.Dispatch(gallery.SetQuery{Query: "we"})
	q.Dispatch(gallery.SetQuery{Query: "web"})
	q.Dispatch(gallery.Navigate{Fragment: "alu"})

	want := []struct {
		mode  gallery.Mode
		count int
	}{
		{gallery.ModeGrid, 2},
		{gallery.ModeGrid, 1},
		{gallery.ModeGrid, 1},
		{gallery.ModeDetail, 0},
	}
	for i, w := range want {
		select {
		case v := <-views:
			if v.Mode != w.mode || len(v.Projects) != w.count {
				t.Fatalf("view %d: mode %s with %d projects, want %s with %d", i, v.Mode, len(v.Projects), w.mode, w.count)
			}
			if w.mode == gallery.ModeDetail && (v.Viewer == nil || v.Viewer.Artifacts[0].Code != "module alu;\nendmodule") {
				t.Fatalf("detail view sources not loaded: %#v", v.Viewer)
			}
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for view %d", i)
		}
	}
	if got := sess.Filter().Query; got != "web" {
		t.Errorf("final query = %q, want %q", got, "web")
	}
}
