package config

import (
	"path"
	"path/filepath"
	"time"

	"github.com/ctt011/folio/internal/render"
)

// Config is the top-level folio configuration, corresponding to .folio.yml.
type Config struct {
	SiteDir             string            `yaml:"site_dir" koanf:"site_dir"`
	Catalog             string            `yaml:"catalog" koanf:"catalog"`
	SiteTitle           string            `yaml:"site_title" koanf:"site_title"`
	BasePath            string            `yaml:"base_path" koanf:"base_path"`
	ImagePrefix         string            `yaml:"image_prefix" koanf:"image_prefix"`
	Port                int               `yaml:"port" koanf:"port"`
	LatestCount         int               `yaml:"latest_count" koanf:"latest_count"`
	GalleryHeadingLevel int               `yaml:"gallery_heading_level" koanf:"gallery_heading_level"`
	HomeHeadingLevel    int               `yaml:"home_heading_level" koanf:"home_heading_level"`
	CodeStyle           string            `yaml:"code_style" koanf:"code_style"`
	MaxConcurrency      int               `yaml:"max_concurrency" koanf:"max_concurrency"`
	FetchTimeoutSeconds int               `yaml:"fetch_timeout_seconds" koanf:"fetch_timeout_seconds"`
	DataDir             string            `yaml:"data_dir" koanf:"data_dir"`
	Nav                 []render.NavEntry `yaml:"nav" koanf:"nav"`
	Include             []string          `yaml:"include" koanf:"include"`
	Exclude             []string          `yaml:"exclude" koanf:"exclude"`
	Watch               bool              `yaml:"watch" koanf:"watch"`
	AllowAllOrigins     bool              `yaml:"allow_all_origins" koanf:"allow_all_origins"`
}

// FetchTimeout returns the per-request timeout for remote sites.
func (c *Config) FetchTimeout() time.Duration {
	return time.Duration(c.FetchTimeoutSeconds) * time.Second
}

// CatalogDir is the directory source file paths are resolved against.
func (c *Config) CatalogDir() string {
	return path.Dir(c.Catalog)
}

// DatabasePath returns the preference database file, or "" when
// preferences are disabled.
func (c *Config) DatabasePath() string {
	if c.DataDir == "" {
		return ""
	}
	return filepath.Join(c.DataDir, "folio.db")
}
