package cmd

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/ctt011/folio/internal/catalog"
	"github.com/ctt011/folio/internal/config"
	"github.com/ctt011/folio/internal/fetch"
	"github.com/ctt011/folio/internal/render"
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `folio init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", cfgFile, err)
	}
	return cfg, nil
}

// backend is where a portfolio's catalog, images and source files live:
// a local directory or a remote site.
type backend struct {
	cfg     *config.Config
	root    fetch.Fetcher
	sources fetch.Fetcher // resolves source paths against the catalog directory
	files   fs.FS         // nil for remote sites
}

func newBackend(cfg *config.Config) (*backend, error) {
	if !cfg.IsRemote() {
		info, err := os.Stat(cfg.SiteDir)
		if err != nil {
			return nil, fmt.Errorf("site directory: %w", err)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("site directory %s is not a directory", cfg.SiteDir)
		}
	}

	root, err := fetch.New(cfg.SiteDir, fetch.Options{
		Timeout: cfg.FetchTimeout(),
		Include: cfg.Include,
		Exclude: cfg.Exclude,
	})
	if err != nil {
		return nil, fmt.Errorf("site %s: %w", cfg.SiteDir, err)
	}

	b := &backend{
		cfg:     cfg,
		root:    root,
		sources: fetch.Relative(root, cfg.CatalogDir()),
	}
	if dir, ok := root.(*fetch.FSFetcher); ok {
		b.files = dir.FS()
	}
	return b, nil
}

func (b *backend) loadCatalog(ctx context.Context) (*catalog.Catalog, error) {
	return catalog.Load(ctx, b.root, b.cfg.Catalog, catalog.LoadOptions{ImagePrefix: b.cfg.ImagePrefix})
}

// catalogFile is the catalog's path on disk, or "" for remote sites.
func (b *backend) catalogFile() string {
	if b.files == nil {
		return ""
	}
	return filepath.Join(b.cfg.SiteDir, filepath.FromSlash(b.cfg.Catalog))
}

func newRenderer(cfg *config.Config) (*render.Renderer, error) {
	return render.New(render.Options{
		SiteTitle:    cfg.SiteTitle,
		BasePath:     cfg.BasePath,
		Nav:          cfg.Nav,
		GalleryLevel: cfg.GalleryHeadingLevel,
		HomeLevel:    cfg.HomeHeadingLevel,
		CodeStyle:    cfg.CodeStyle,
	})
}
