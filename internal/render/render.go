// Package render turns gallery views and catalog data into HTML.
package render

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"net/url"
	"strings"

	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"

	"github.com/ctt011/folio/internal/catalog"
	"github.com/ctt011/folio/internal/gallery"
	"github.com/ctt011/folio/internal/highlight"
)

// DefaultHeadingLevel is the card heading level used in the gallery and on
// the home page.
const DefaultHeadingLevel = 2

// Options configures a Renderer.
type Options struct {
	SiteTitle    string
	BasePath     string
	Nav          []NavEntry
	GalleryLevel int    // card heading level in the gallery, 1-6
	HomeLevel    int    // card heading level on the home page, 1-6
	CodeStyle    string // chroma style for fenced code in descriptions
}

// Renderer renders pages and gallery views. It is safe for concurrent use.
type Renderer struct {
	opts    Options
	md      goldmark.Markdown
	views   *template.Template
	home    *template.Template
	gallery *template.Template
}

// Page carries the per-request parts of a full page.
type Page struct {
	Path  string // request path, used to mark the current nav entry
	Theme string // stored colour scheme, empty for automatic
}

type pageData struct {
	Title    string
	Heading  string
	BasePath string
	Theme    string
	Themes   []ThemeOption
	Nav      []NavLink
	Content  template.HTML

	Query     string
	YearPills []gallery.Pill
	TagPills  []gallery.Pill
}

type card struct {
	Project catalog.Project
	Level   int
	Href    string
}

type gridData struct {
	Cards []card
}

type codeLine struct {
	Number int
	HTML   template.HTML
}

// New parses the templates and configures Markdown rendering.
func New(opts Options) (*Renderer, error) {
	if opts.BasePath == "" {
		opts.BasePath = "/"
	}
	if !strings.HasSuffix(opts.BasePath, "/") {
		opts.BasePath += "/"
	}
	if opts.SiteTitle == "" {
		opts.SiteTitle = "Portfolio"
	}
	if opts.CodeStyle == "" {
		opts.CodeStyle = "github"
	}
	opts.GalleryLevel = clampLevel(opts.GalleryLevel)
	opts.HomeLevel = clampLevel(opts.HomeLevel)

	r := &Renderer{opts: opts}

	// Raw HTML in project text is dropped: goldmark only passes it through
	// with html.WithUnsafe.
	r.md = goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithStyle(opts.CodeStyle),
			),
		),
	)

	funcs := template.FuncMap{
		"heading":   heading,
		"markdown":  r.Markdown,
		"codeLines": codeLines,
	}

	base, err := template.New("base").Funcs(funcs).Parse(gridTemplate + detailTemplate + viewerTemplate + layoutTemplate)
	if err != nil {
		return nil, fmt.Errorf("parsing view templates: %w", err)
	}
	r.views = base

	if r.home, err = extend(base, homeTemplate); err != nil {
		return nil, fmt.Errorf("parsing home template: %w", err)
	}
	if r.gallery, err = extend(base, galleryTemplate); err != nil {
		return nil, fmt.Errorf("parsing gallery template: %w", err)
	}
	return r, nil
}

func extend(base *template.Template, text string) (*template.Template, error) {
	t, err := base.Clone()
	if err != nil {
		return nil, err
	}
	return t.Parse(text)
}

// BasePath returns the normalized site base path.
func (r *Renderer) BasePath() string { return r.opts.BasePath }

// View renders the contents of the gallery's projects container.
func (r *Renderer) View(v gallery.View) (string, error) {
	if v.Mode == gallery.ModeDetail {
		return r.Detail(v)
	}
	return r.Grid(v.Projects)
}

// Grid renders gallery cards. Clicking a card routes by its slug.
func (r *Renderer) Grid(projects []catalog.Project) (string, error) {
	return r.cards(projects, r.opts.GalleryLevel, "")
}

// Detail renders the detail view of v.Project.
func (r *Renderer) Detail(v gallery.View) (string, error) {
	var buf bytes.Buffer
	if err := r.views.ExecuteTemplate(&buf, "detail", v); err != nil {
		return "", fmt.Errorf("rendering detail for %q: %w", v.Project.Slug, err)
	}
	return buf.String(), nil
}

func (r *Renderer) cards(projects []catalog.Project, level int, hrefPrefix string) (string, error) {
	data := gridData{Cards: make([]card, len(projects))}
	for i, p := range projects {
		data.Cards[i] = card{Project: p, Level: level}
		if hrefPrefix != "" {
			data.Cards[i].Href = hrefPrefix + p.Slug
		}
	}
	var buf bytes.Buffer
	if err := r.views.ExecuteTemplate(&buf, "grid", data); err != nil {
		return "", fmt.Errorf("rendering grid: %w", err)
	}
	return buf.String(), nil
}

// Home writes the landing page with the given projects as cards linking
// into the gallery.
func (r *Renderer) Home(w io.Writer, p Page, latest []catalog.Project) error {
	// Catalog image paths are relative to the gallery page.
	galleryURL := &url.URL{Path: r.opts.BasePath + "projects/"}
	cards := make([]catalog.Project, len(latest))
	for i, proj := range latest {
		if ref, err := url.Parse(proj.Image); err == nil && proj.Image != "" {
			proj.Image = galleryURL.ResolveReference(ref).String()
		}
		cards[i] = proj
	}

	content, err := r.cards(cards, r.opts.HomeLevel, r.opts.BasePath+"projects/#")
	if err != nil {
		return err
	}
	data := r.page(p, r.opts.SiteTitle)
	data.Heading = r.opts.SiteTitle
	data.Content = template.HTML(content)
	return r.home.ExecuteTemplate(w, "layout", data)
}

// Gallery writes the gallery shell with v as its initial content.
func (r *Renderer) Gallery(w io.Writer, p Page, v gallery.View) error {
	content, err := r.View(v)
	if err != nil {
		return err
	}
	data := r.page(p, "Projects | "+r.opts.SiteTitle)
	data.Content = template.HTML(content)
	data.Query = v.Filter.Query
	data.YearPills = v.YearPills
	data.TagPills = v.TagPills
	return r.gallery.ExecuteTemplate(w, "layout", data)
}

func (r *Renderer) page(p Page, title string) pageData {
	theme := p.Theme
	if theme == "" {
		theme = ThemeAuto
	}
	return pageData{
		Title:    title,
		BasePath: r.opts.BasePath,
		Theme:    theme,
		Themes:   ThemeOptions(theme),
		Nav:      Nav(r.opts.Nav, r.opts.BasePath, p.Path),
	}
}

// Markdown renders long-form project text. Raw HTML is omitted.
func (r *Renderer) Markdown(s string) template.HTML {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(s), &buf); err != nil {
		return template.HTML("<p>" + template.HTMLEscapeString(s) + "</p>")
	}
	return template.HTML(buf.String())
}

func heading(level int, text string) template.HTML {
	level = clampLevel(level)
	return template.HTML(fmt.Sprintf("<h%d>%s</h%d>", level, template.HTMLEscapeString(text), level))
}

func clampLevel(level int) int {
	if level < 1 || level > 6 {
		return DefaultHeadingLevel
	}
	return level
}

// codeLines splits an artifact into numbered, highlighted lines.
func codeLines(a gallery.Artifact) []codeLine {
	lines := highlight.Lines(a.Code)
	out := make([]codeLine, len(lines))
	for i, l := range lines {
		out[i] = codeLine{Number: i + 1, HTML: template.HTML(highlight.Line(l, a.Language))}
	}
	return out
}
