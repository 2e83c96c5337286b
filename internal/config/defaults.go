package config

import (
	"github.com/ctt011/folio/internal/catalog"
	"github.com/ctt011/folio/internal/fetch"
	"github.com/ctt011/folio/internal/gallery"
	"github.com/ctt011/folio/internal/render"
	"github.com/ctt011/folio/internal/site"
)

// DefaultCatalog is the catalog location relative to the site directory.
const DefaultCatalog = "projects/projects.json"

// DefaultExcludes are glob patterns never served or fetched from a local
// site directory.
var DefaultExcludes = []string{
	".git/**",
	".folio/**",
	"**/.DS_Store",
	".folio.yml",
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		SiteDir:             ".",
		Catalog:             DefaultCatalog,
		SiteTitle:           "Portfolio",
		BasePath:            "/",
		ImagePrefix:         catalog.DefaultImagePrefix,
		Port:                8080,
		LatestCount:         site.DefaultLatestCount,
		GalleryHeadingLevel: render.DefaultHeadingLevel,
		HomeHeadingLevel:    render.DefaultHeadingLevel,
		CodeStyle:           "github",
		MaxConcurrency:      gallery.DefaultConcurrency,
		FetchTimeoutSeconds: int(fetch.DefaultTimeout.Seconds()),
		DataDir:             ".folio",
		Nav:                 render.DefaultNav(),
		Exclude:             append([]string(nil), DefaultExcludes...),
	}
}
