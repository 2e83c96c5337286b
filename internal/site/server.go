package site

import (
	"io/fs"
	"log"
	"net/http"
	"os/exec"
	"runtime"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/ctt011/folio/internal/catalog"
	"github.com/ctt011/folio/internal/fetch"
	"github.com/ctt011/folio/internal/gallery"
	"github.com/ctt011/folio/internal/prefs"
	"github.com/ctt011/folio/internal/render"
)

// DefaultLatestCount is how many projects the home page previews.
const DefaultLatestCount = 3

// Options configures a Site.
type Options struct {
	Files           fs.FS // site directory: images, source files, catalog
	LatestCount     int
	Concurrency     int
	AllowAllOrigins bool
}

// Site serves the portfolio pages, the live gallery and its JSON API.
type Site struct {
	source   *catalog.Source
	renderer *render.Renderer
	loader   *gallery.SourceLoader
	prefs    *prefs.Store
	opts     Options
	upgrader websocket.Upgrader
}

// New creates a Site. Sources are fetched through f; store may be nil, in
// which case every visitor gets the automatic theme.
func New(source *catalog.Source, r *render.Renderer, f fetch.Fetcher, store *prefs.Store, opts Options) *Site {
	if opts.LatestCount <= 0 {
		opts.LatestCount = DefaultLatestCount
	}
	s := &Site{
		source:   source,
		renderer: r,
		loader:   gallery.NewSourceLoader(f, opts.Concurrency),
		prefs:    store,
		opts:     opts,
	}
	if opts.AllowAllOrigins {
		s.upgrader.CheckOrigin = func(r *http.Request) bool { return true }
	}
	return s
}

// RegisterRoutes mounts the site onto the given router.
func (s *Site) RegisterRoutes(r chi.Router) {
	r.Get("/", s.handleHome)
	r.Get("/projects", http.RedirectHandler("projects/", http.StatusMovedPermanently).ServeHTTP)
	r.Get("/projects/", s.handleGallery)
	r.Get("/ws/gallery", s.handleLive)
	r.Get("/api/projects", s.handleProjects)
	r.Get("/api/projects/visible", s.handleVisible)
	r.Handle("/assets/*", http.StripPrefix(s.renderer.BasePath()+"assets/", http.FileServer(http.FS(render.Assets()))))
	if s.opts.Files != nil {
		r.Handle("/*", http.StripPrefix(trimSlash(s.renderer.BasePath()), http.FileServer(http.FS(s.opts.Files))))
	}
	if s.prefs != nil {
		prefs.RegisterRoutes(r, s.prefs)
	}
}

func (s *Site) handleHome(w http.ResponseWriter, r *http.Request) {
	c := s.source.Current()
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.renderer.Home(w, s.page(r), c.Latest(s.opts.LatestCount)); err != nil {
		log.Printf("site: rendering home: %v", err)
	}
}

func (s *Site) handleGallery(w http.ResponseWriter, r *http.Request) {
	c := s.source.Current()
	view := gallery.GridView(c, gallery.NewFilterState())
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.renderer.Gallery(w, s.page(r), view); err != nil {
		log.Printf("site: rendering gallery: %v", err)
	}
}

func (s *Site) page(r *http.Request) render.Page {
	p := render.Page{Path: r.URL.Path}
	if s.prefs == nil {
		return p
	}
	theme, err := s.prefs.Theme(r.Context(), prefs.VisitorID(r.Context()))
	if err != nil {
		log.Printf("site: loading theme: %v", err)
		return p
	}
	p.Theme = theme
	return p
}

func trimSlash(basePath string) string {
	if len(basePath) > 0 && basePath[len(basePath)-1] == '/' {
		return basePath[:len(basePath)-1]
	}
	return basePath
}

// OpenBrowser opens the given URL in the default browser.
func OpenBrowser(url string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", url)
	case "darwin":
		cmd = exec.Command("open", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	_ = cmd.Start()
}
