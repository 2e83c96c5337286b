package catalog

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/ctt011/folio/internal/fetch"
)

var (
	// ErrDuplicateSlug is returned when two projects share a slug.
	ErrDuplicateSlug = errors.New("duplicate slug")
	// ErrInvalidSlug is returned for empty or non URL-safe slugs.
	ErrInvalidSlug = errors.New("invalid slug")
)

var slugPattern = regexp.MustCompile(`^[A-Za-z0-9._~-]+$`)

// DefaultImagePrefix accounts for the gallery page living one directory
// below the site root.
const DefaultImagePrefix = "../"

// LoadOptions controls catalog normalization.
type LoadOptions struct {
	// ImagePrefix is prepended to every relative project image path.
	ImagePrefix string
	// Format overrides extension-based format detection.
	Format Format
}

// Catalog is an immutable, validated project collection.
type Catalog struct {
	projects []Project
	bySlug   map[string]int
}

// Load fetches ref, decodes it and returns a validated Catalog with image
// paths rewritten.
func Load(ctx context.Context, f fetch.Fetcher, ref string, opts LoadOptions) (*Catalog, error) {
	data, err := f.Fetch(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}

	format := opts.Format
	if format == "" {
		format = FormatFor(ref)
	}
	projects, err := Decode(data, format)
	if err != nil {
		return nil, fmt.Errorf("loading catalog %s: %w", ref, err)
	}

	for i := range projects {
		projects[i].Image = RewriteImage(projects[i].Image, opts.ImagePrefix)
	}

	return New(projects)
}

// New validates projects and wraps them in a Catalog. Slugs must be unique
// and URL-safe.
func New(projects []Project) (*Catalog, error) {
	bySlug := make(map[string]int, len(projects))
	for i, p := range projects {
		if !slugPattern.MatchString(p.Slug) {
			return nil, fmt.Errorf("project %d (%q): %w: %q", i, p.Title, ErrInvalidSlug, p.Slug)
		}
		if prev, ok := bySlug[p.Slug]; ok {
			return nil, fmt.Errorf("projects %d and %d: %w: %q", prev, i, ErrDuplicateSlug, p.Slug)
		}
		bySlug[p.Slug] = i
	}
	return &Catalog{projects: projects, bySlug: bySlug}, nil
}

// RewriteImage prepends prefix to a relative image path. Empty images,
// absolute paths, data URIs and absolute URLs are returned unchanged.
func RewriteImage(image, prefix string) string {
	if image == "" || prefix == "" {
		return image
	}
	if strings.HasPrefix(image, "/") || strings.Contains(image, "://") || strings.HasPrefix(image, "data:") {
		return image
	}
	return prefix + image
}

// Projects returns the projects in catalog order. Callers must not modify
// the returned slice.
func (c *Catalog) Projects() []Project { return c.projects }

// Len returns the number of projects.
func (c *Catalog) Len() int { return len(c.projects) }

// BySlug looks up a project by its slug.
func (c *Catalog) BySlug(slug string) (Project, bool) {
	i, ok := c.bySlug[slug]
	if !ok {
		return Project{}, false
	}
	return c.projects[i], true
}

// Latest returns the first n projects in catalog order.
func (c *Catalog) Latest(n int) []Project {
	if n < 0 || n > len(c.projects) {
		n = len(c.projects)
	}
	return c.projects[:n]
}

// Years returns the distinct project years, newest first.
func (c *Catalog) Years() []string {
	seen := make(map[string]bool)
	var years []string
	for _, p := range c.projects {
		y := string(p.Year)
		if y == "" || seen[y] {
			continue
		}
		seen[y] = true
		years = append(years, y)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(years)))
	return years
}

// Tags returns the distinct tags across all projects, sorted.
func (c *Catalog) Tags() []string {
	seen := make(map[string]bool)
	var tags []string
	for _, p := range c.projects {
		for _, t := range p.Tags {
			if seen[t] {
				continue
			}
			seen[t] = true
			tags = append(tags, t)
		}
	}
	sort.Strings(tags)
	return tags
}
