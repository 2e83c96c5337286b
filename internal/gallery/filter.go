package gallery

import (
	"sort"
	"strings"

	"github.com/ctt011/folio/internal/catalog"
)

// PillKind identifies a filter dimension.
type PillKind string

const (
	PillYear PillKind = "year"
	PillTag  PillKind = "tag"
)

// VisibleProjects returns the projects matching query, years and tags, in
// their original order. Empty years or tags mean "no restriction"; a
// project passes the tag filter when it has any selected tag. The query is
// a case-insensitive substring test against every field of the project.
func VisibleProjects(all []catalog.Project, query string, years, tags map[string]bool) []catalog.Project {
	q := strings.ToLower(query)
	visible := make([]catalog.Project, 0, len(all))
	for _, p := range all {
		if q != "" && !strings.Contains(strings.ToLower(p.SearchText()), q) {
			continue
		}
		if len(years) > 0 && !years[string(p.Year)] {
			continue
		}
		if len(tags) > 0 && !anyTag(p, tags) {
			continue
		}
		visible = append(visible, p)
	}
	return visible
}

func anyTag(p catalog.Project, tags map[string]bool) bool {
	for _, t := range p.Tags {
		if tags[t] {
			return true
		}
	}
	return false
}

// FilterState is the mutable search and pill selection of one gallery
// session. It is not safe for concurrent use; the owning session serializes
// access.
type FilterState struct {
	query string
	years map[string]bool
	tags  map[string]bool
}

// NewFilterState returns an empty, unrestricted filter.
func NewFilterState() *FilterState {
	return &FilterState{
		years: make(map[string]bool),
		tags:  make(map[string]bool),
	}
}

// SetQuery replaces the search text.
func (f *FilterState) SetQuery(q string) { f.query = q }

// Toggle flips a year or tag pill. Unknown kinds are ignored and reported
// as false.
func (f *FilterState) Toggle(kind PillKind, value string) bool {
	var set map[string]bool
	switch kind {
	case PillYear:
		set = f.years
	case PillTag:
		set = f.tags
	default:
		return false
	}
	if set[value] {
		delete(set, value)
	} else {
		set[value] = true
	}
	return true
}

// Clear deselects every pill. The search text is kept.
func (f *FilterState) Clear() {
	clear(f.years)
	clear(f.tags)
}

// Apply runs the filter over projects.
func (f *FilterState) Apply(projects []catalog.Project) []catalog.Project {
	return VisibleProjects(projects, f.query, f.years, f.tags)
}

// Snapshot returns an immutable copy of the state.
func (f *FilterState) Snapshot() FilterSnapshot {
	return FilterSnapshot{
		Query: f.query,
		Years: sortedKeys(f.years),
		Tags:  sortedKeys(f.tags),
	}
}

// FilterSnapshot is a read-only view of a FilterState.
type FilterSnapshot struct {
	Query string
	Years []string
	Tags  []string
}

// HasYear reports whether year is selected.
func (s FilterSnapshot) HasYear(year string) bool { return contains(s.Years, year) }

// HasTag reports whether tag is selected.
func (s FilterSnapshot) HasTag(tag string) bool { return contains(s.Tags, tag) }

// Pill is one toggle button in the filter bar.
type Pill struct {
	Kind   PillKind
	Value  string
	Active bool
}

// Pills lays out the filter bar for a catalog: years newest first, then
// tags alphabetically, each marked active when selected.
func (s FilterSnapshot) Pills(c *catalog.Catalog) (years, tags []Pill) {
	for _, y := range c.Years() {
		years = append(years, Pill{Kind: PillYear, Value: y, Active: s.HasYear(y)})
	}
	for _, t := range c.Tags() {
		tags = append(tags, Pill{Kind: PillTag, Value: t, Active: s.HasTag(t)})
	}
	return years, tags
}

func sortedKeys(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
