package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (FOLIO_*).
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	// Start from defaults.
	cfg := DefaultConfig()

	// Load YAML file if it exists.
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	// Overlay environment variables: FOLIO_SITE_DIR -> site_dir, etc.
	if err := k.Load(env.Provider("FOLIO_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "FOLIO_"))
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	// Lists from the file replace the defaults rather than merging into them.
	for key, list := range map[string]func(){
		"nav":     func() { cfg.Nav = nil },
		"include": func() { cfg.Include = nil },
		"exclude": func() { cfg.Exclude = nil },
	} {
		if k.Exists(key) {
			list()
		}
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if c.SiteDir == "" {
		return errors.New("site_dir is required")
	}

	if c.Catalog == "" {
		return errors.New("catalog is required")
	}
	if strings.HasPrefix(c.Catalog, "/") || strings.Contains(c.Catalog, "://") {
		return fmt.Errorf("catalog %q must be relative to site_dir", c.Catalog)
	}

	if !strings.HasPrefix(c.BasePath, "/") {
		return fmt.Errorf("base_path %q must start with /", c.BasePath)
	}

	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("port %d out of range", c.Port)
	}

	if c.LatestCount < 0 {
		return errors.New("latest_count must be non-negative")
	}

	if c.GalleryHeadingLevel < 0 || c.GalleryHeadingLevel > 6 {
		return fmt.Errorf("gallery_heading_level must be between 1 and 6")
	}
	if c.HomeHeadingLevel < 0 || c.HomeHeadingLevel > 6 {
		return fmt.Errorf("home_heading_level must be between 1 and 6")
	}

	if c.MaxConcurrency < 0 {
		return errors.New("max_concurrency must be non-negative")
	}

	if c.FetchTimeoutSeconds < 0 {
		return errors.New("fetch_timeout_seconds must be non-negative")
	}

	for i, n := range c.Nav {
		if n.Title == "" {
			return fmt.Errorf("nav[%d]: title is required", i)
		}
	}

	return nil
}

// IsRemote reports whether the site is served from an http(s) origin
// rather than a local directory.
func (c *Config) IsRemote() bool {
	return strings.HasPrefix(c.SiteDir, "http://") || strings.HasPrefix(c.SiteDir, "https://")
}
