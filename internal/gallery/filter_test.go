package gallery

import (
	"testing"

	"github.com/ctt011/folio/internal/catalog"
)

func sampleProjects() []catalog.Project {
	return []catalog.Project{
		{Slug: "alu", Title: "Pipelined ALU", Description: "32-bit ALU in SystemVerilog", Year: "2023", Tags: []string{"hardware", "verilog"}},
		{Slug: "cache", Title: "Cache Simulator", Description: "Set-associative cache", Year: "2023", Tags: []string{"c", "systems"}},
		{Slug: "blog", Title: "Static Blog", Description: "A web log generator", Year: "2024", Tags: []string{"web", "go"}},
		{Slug: "riscv", Title: "RISC-V Core", Description: "Five stage core", Year: "2024", Tags: []string{"hardware"}, Challenges: "hazards on the web of forwarding paths"},
		{Slug: "site", Title: "Portfolio", Description: "This WEBSITE", Year: "2025", Tags: []string{"web"}},
	}
}

func slugs(ps []catalog.Project) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.Slug
	}
	return out
}

func equalSlugs(t *testing.T, got []catalog.Project, want ...string) {
	t.Helper()
	g := slugs(got)
	if len(g) != len(want) {
		t.Fatalf("got %v, want %v", g, want)
	}
	for i := range want {
		if g[i] != want[i] {
			t.Fatalf("got %v, want %v", g, want)
		}
	}
}

func set(values ...string) map[string]bool {
	m := make(map[string]bool)
	for _, v := range values {
		m[v] = true
	}
	return m
}

func TestVisibleProjectsNoFilters(t *testing.T) {
	all := sampleProjects()
	equalSlugs(t, VisibleProjects(all, "", nil, nil), "alu", "cache", "blog", "riscv", "site")
	equalSlugs(t, VisibleProjects(all, "", set(), set()), "alu", "cache", "blog", "riscv", "site")
}

func TestVisibleProjectsQueryCaseInsensitive(t *testing.T) {
	all := sampleProjects()
	upper := VisibleProjects(all, "ALU", nil, nil)
	lower := VisibleProjects(all, "alu", nil, nil)
	equalSlugs(t, upper, slugs(lower)...)
	equalSlugs(t, lower, "alu")
}

func TestVisibleProjectsQueryMatchesHiddenFields(t *testing.T) {
	equalSlugs(t, VisibleProjects(sampleProjects(), "forwarding", nil, nil), "riscv")
}

func TestVisibleProjectsYearFilter(t *testing.T) {
	equalSlugs(t, VisibleProjects(sampleProjects(), "", set("2024"), nil), "blog", "riscv")
	equalSlugs(t, VisibleProjects(sampleProjects(), "", set("2023", "2025"), nil), "alu", "cache", "site")
}

func TestVisibleProjectsTagFilterIsOr(t *testing.T) {
	all := []catalog.Project{{Slug: "ab", Tags: []string{"A", "B"}}, {Slug: "d", Tags: []string{"D"}}, {Slug: "none"}}
	equalSlugs(t, VisibleProjects(all, "", nil, set("B", "C")), "ab")
}

func TestVisibleProjectsDimensionsAreAnded(t *testing.T) {
	// "web" matches blog, riscv and site, but riscv lacks the web tag.
	equalSlugs(t, VisibleProjects(sampleProjects(), "web", nil, set("web")), "blog", "site")
	equalSlugs(t, VisibleProjects(sampleProjects(), "alu", nil, set("web")))
}

func TestVisibleProjectsEndToEndScenario(t *testing.T) {
	f := NewFilterState()
	all := sampleProjects()

	f.Toggle(PillYear, "2024")
	f.SetQuery("web")
	equalSlugs(t, f.Apply(all), "blog", "riscv")

	// Idempotent and side-effect free.
	equalSlugs(t, f.Apply(all), "blog", "riscv")
	equalSlugs(t, all, "alu", "cache", "blog", "riscv", "site")
}

func TestVisibleProjectsPreservesOrder(t *testing.T) {
	all := sampleProjects()
	got := VisibleProjects(all, "e", nil, set("hardware", "web", "c"))
	last := -1
	for _, p := range got {
		idx := -1
		for i, q := range all {
			if q.Slug == p.Slug {
				idx = i
			}
		}
		if idx <= last {
			t.Fatalf("order not preserved: %v", slugs(got))
		}
		last = idx
	}
}

func TestFilterStateToggleAndClear(t *testing.T) {
	f := NewFilterState()
	f.SetQuery("x")
	if !f.Toggle(PillYear, "2024") || !f.Toggle(PillTag, "web") {
		t.Fatal("toggle of known kinds should succeed")
	}
	if f.Toggle("colour", "red") {
		t.Error("unknown kind should be ignored")
	}

	snap := f.Snapshot()
	if !snap.HasYear("2024") || !snap.HasTag("web") || snap.Query != "x" {
		t.Errorf("unexpected snapshot %+v", snap)
	}

	f.Toggle(PillYear, "2024")
	if f.Snapshot().HasYear("2024") {
		t.Error("second toggle should deselect")
	}

	f.Toggle(PillYear, "2023")
	f.Clear()
	snap = f.Snapshot()
	if len(snap.Years) != 0 || len(snap.Tags) != 0 {
		t.Errorf("Clear left pills selected: %+v", snap)
	}
	if snap.Query != "x" {
		t.Errorf("Clear should keep the query, got %q", snap.Query)
	}
}

func TestSnapshotPills(t *testing.T) {
	c, err := catalog.New(sampleProjects())
	if err != nil {
		t.Fatal(err)
	}
	f := NewFilterState()
	f.Toggle(PillTag, "web")

	years, tags := f.Snapshot().Pills(c)
	if len(years) != 3 || years[0].Value != "2025" || years[2].Value != "2023" {
		t.Errorf("year pills: %+v", years)
	}
	for _, p := range tags {
		if p.Active != (p.Value == "web") {
			t.Errorf("pill %s active=%v", p.Value, p.Active)
		}
	}
}
