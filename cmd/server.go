package cmd

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/ctt011/folio/internal/catalog"
	"github.com/ctt011/folio/internal/config"
	"github.com/ctt011/folio/internal/db"
	"github.com/ctt011/folio/internal/prefs"
	"github.com/ctt011/folio/internal/server"
	"github.com/ctt011/folio/internal/site"
)

// buildServer assembles the HTTP server around the site. database may be
// nil, in which case theme preferences are not stored.
func buildServer(cfg *config.Config, b *backend, source *catalog.Source, database *db.DB) (*server.Server, error) {
	rend, err := newRenderer(cfg)
	if err != nil {
		return nil, fmt.Errorf("creating renderer: %w", err)
	}

	srv := server.New(server.Config{
		Port:     cfg.Port,
		AllowAll: cfg.AllowAllOrigins,
	}, database)

	var store *prefs.Store
	if database != nil {
		store = prefs.NewStore(database)
	}

	s := site.New(source, rend, b.sources, store, site.Options{
		Files:           b.files,
		LatestCount:     cfg.LatestCount,
		Concurrency:     cfg.MaxConcurrency,
		AllowAllOrigins: cfg.AllowAllOrigins,
	})
	registerSite(srv.Router(), rend.BasePath(), s)
	return srv, nil
}

// registerSite mounts the site at basePath. A site below the root gets a
// redirect from "/" so the bare host still lands on it.
func registerSite(r chi.Router, basePath string, s *site.Site) {
	if basePath == "/" {
		s.RegisterRoutes(r)
		return
	}
	r.Route(strings.TrimSuffix(basePath, "/"), s.RegisterRoutes)
	r.Get("/", http.RedirectHandler(basePath, http.StatusFound).ServeHTTP)
}
