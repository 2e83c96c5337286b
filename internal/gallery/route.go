package gallery

import (
	"strings"

	"github.com/ctt011/folio/internal/catalog"
)

// Mode is the gallery view state.
type Mode string

const (
	ModeGrid   Mode = "grid"
	ModeDetail Mode = "detail"
)

// Route is the view selected by a URL fragment.
type Route struct {
	Mode    Mode
	Project catalog.Project // set in ModeDetail
}

// Slug returns the routed project's slug, or "" on the grid.
func (r Route) Slug() string {
	if r.Mode != ModeDetail {
		return ""
	}
	return r.Project.Slug
}

// GridRoute is the default route.
var GridRoute = Route{Mode: ModeGrid}

// Resolve maps a URL fragment to a route. An empty fragment, or one naming
// no project, selects the grid; a leading '#' is ignored.
func Resolve(fragment string, c *catalog.Catalog) Route {
	slug := strings.TrimPrefix(fragment, "#")
	if slug == "" || c == nil {
		return GridRoute
	}
	p, ok := c.BySlug(slug)
	if !ok {
		return GridRoute
	}
	return Route{Mode: ModeDetail, Project: p}
}
