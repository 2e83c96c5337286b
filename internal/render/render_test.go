package render

import (
	"bytes"
	"io/fs"
	"strings"
	"testing"

	"github.com/ctt011/folio/internal/catalog"
	"github.com/ctt011/folio/internal/gallery"
)

func newRenderer(t *testing.T) *Renderer {
	t.Helper()
	r, err := New(Options{
		SiteTitle: "Camille Tran",
		BasePath:  "/",
		Nav: []NavEntry{
			{URL: "", Title: "Home"},
			{URL: "projects/", Title: "Projects"},
			{URL: "https://github.com/example", Title: "GitHub"},
		},
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return r
}

func testProjects() []catalog.Project {
	return []catalog.Project{
		{Slug: "alu", Title: "Pipelined ALU", Description: "32-bit ALU", Year: "2024", Image: "../images/alu.png"},
		{Slug: "xss", Title: "<b>Bold</b> & co", Description: "<script>alert(1)</script>", Year: "2023"},
	}
}

func TestGridCards(t *testing.T) {
	r := newRenderer(t)
	out, err := r.Grid(testProjects())
	if err != nil {
		t.Fatal(err)
	}

	alu := strings.Index(out, `data-slug="alu"`)
	xss := strings.Index(out, `data-slug="xss"`)
	if alu < 0 || xss < 0 || alu > xss {
		t.Fatalf("cards missing or out of order:\n%s", out)
	}
	if !strings.Contains(out, "<h2>Pipelined ALU</h2>") {
		t.Errorf("expected h2 heading:\n%s", out)
	}
	if !strings.Contains(out, `<img src="../images/alu.png" alt="Pipelined ALU">`) {
		t.Errorf("expected card image:\n%s", out)
	}
	if strings.Contains(out, "<script>") || strings.Contains(out, "<b>") {
		t.Errorf("project strings must be escaped:\n%s", out)
	}
	if !strings.Contains(out, "&lt;b&gt;Bold&lt;/b&gt; &amp; co") {
		t.Errorf("escaped title missing:\n%s", out)
	}
	if strings.Contains(out, "data-href") {
		t.Error("gallery cards route by slug, not href")
	}
}

func TestGridEmpty(t *testing.T) {
	out, err := newRenderer(t).Grid(nil)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(out, "<article") {
		t.Errorf("expected no cards, got %s", out)
	}
}

func TestHeadingLevels(t *testing.T) {
	tests := []struct {
		level int
		want  string
	}{
		{1, "<h1>T</h1>"},
		{3, "<h3>T</h3>"},
		{6, "<h6>T</h6>"},
		{0, "<h2>T</h2>"},
		{7, "<h2>T</h2>"},
	}
	for _, tt := range tests {
		if got := string(heading(tt.level, "T")); got != tt.want {
			t.Errorf("heading(%d) = %q, want %q", tt.level, got, tt.want)
		}
	}
}

func TestDetailSections(t *testing.T) {
	r := newRenderer(t)
	v := gallery.View{
		Mode: gallery.ModeDetail,
		Project: catalog.Project{
			Slug:            "alu",
			Title:           "Pipelined ALU",
			Year:            "2024",
			FullDescription: "A **five stage** design.",
			TechStack:       []string{"SystemVerilog", "Verilator"},
			Learnings:       "Timing closure.",
			LiveURL:         "https://example.com/alu",
		},
	}

	out, err := r.Detail(v)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{
		`class="back-button"`,
		"<h1>Pipelined ALU</h1>",
		`<span class="year">2024</span>`,
		`href="https://example.com/alu"`,
		"Live Demo",
		"<h2>About</h2>",
		"<strong>five stage</strong>",
		"<li>SystemVerilog</li><li>Verilator</li>",
		"<h2>What I Learned</h2>",
	} {
		if !strings.Contains(strings.ReplaceAll(out, "\n      ", ""), want) {
			t.Errorf("detail missing %q:\n%s", want, out)
		}
	}
	for _, absent := range []string{"View on GitHub", "<h2>Challenges</h2>", "<h2>Source Code</h2>", "detail-image"} {
		if strings.Contains(out, absent) {
			t.Errorf("detail should not contain %q", absent)
		}
	}
}

func TestDetailCodeViewer(t *testing.T) {
	r := newRenderer(t)
	viewer := gallery.NewCodeViewer([]gallery.Artifact{
		{Filename: "alu.sv", Language: "systemverilog", Code: "module alu;\r\n  // <todo>"},
		{Filename: "notes.txt", Language: "text", Code: "a < b"},
		{Filename: "wave.png", Language: "image", Path: "img/wave.png", IsImage: true},
		{Filename: "tb.sv", Language: "systemverilog", Code: "endmodule"},
	})
	viewer.Select(2)

	out, err := r.Detail(gallery.View{
		Mode:    gallery.ModeDetail,
		Project: catalog.Project{Slug: "alu", Title: "ALU"},
		Viewer:  viewer,
	})
	if err != nil {
		t.Fatal(err)
	}

	if n := strings.Count(out, `class="code-tab-button active"`); n != 1 {
		t.Errorf("expected exactly one active tab button, got %d", n)
	}
	if n := strings.Count(out, `class="code-tab-content active"`); n != 1 {
		t.Errorf("expected exactly one active tab panel, got %d", n)
	}
	if !strings.Contains(out, `class="code-tab-button active" data-tab-index="2">wave.png`) {
		t.Errorf("tab 2 should be active:\n%s", out)
	}
	if !strings.Contains(out, `<img src="img/wave.png" alt="wave.png">`) {
		t.Error("image artifact should render as an image")
	}
	for _, want := range []string{
		`<span class="line-number">1</span><span class="line-content"><span class="syntax-keyword">module</span> alu;</span>`,
		`<span class="line-number">2</span><span class="line-content">  <span class="syntax-comment">// </span>&lt;todo&gt;</span>`,
		`<span class="line-content">a &lt; b</span>`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("viewer missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "\r") {
		t.Error("carriage returns should be dropped")
	}
}

func TestMarkdownDropsRawHTML(t *testing.T) {
	r := newRenderer(t)
	out := string(r.Markdown("Hello <script>alert(1)</script> *world*"))
	if strings.Contains(out, "<script>") {
		t.Errorf("raw HTML should be omitted: %s", out)
	}
	if !strings.Contains(out, "<em>world</em>") {
		t.Errorf("markdown not rendered: %s", out)
	}
}

func TestHomePage(t *testing.T) {
	r := newRenderer(t)
	var buf bytes.Buffer
	if err := r.Home(&buf, Page{Path: "/", Theme: ThemeDark}, testProjects()[:1]); err != nil {
		t.Fatal(err)
	}
	out := buf.String()

	for _, want := range []string{
		`data-href="/projects/#alu"`,
		`<img src="/images/alu.png" alt="Pipelined ALU">`,
		`<a href="/" class="current">Home</a>`,
		`<a href="/projects/">Projects</a>`,
		`<a href="https://github.com/example" target="_blank">GitHub</a>`,
		`<option value="dark" selected>Dark</option>`,
		`style="color-scheme: dark"`,
		`/assets/site.js`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("home page missing %q", want)
		}
	}
	if strings.Contains(out, "gallery.js") {
		t.Error("home page should not load the gallery client")
	}
}

func TestGalleryShell(t *testing.T) {
	r := newRenderer(t)
	c, err := catalog.New(testProjects())
	if err != nil {
		t.Fatal(err)
	}
	f := gallery.NewFilterState()
	f.Toggle(gallery.PillYear, "2024")

	var buf bytes.Buffer
	if err := r.Gallery(&buf, Page{Path: "/projects/"}, gallery.GridView(c, f)); err != nil {
		t.Fatal(err)
	}
	out := buf.String()

	for _, want := range []string{
		`class="searchBar"`,
		`id="year-filters"`,
		`class="filter-pill active" data-type="year" data-value="2024"`,
		`class="filter-pill" data-type="year" data-value="2023"`,
		`<a href="/projects/" class="current">Projects</a>`,
		`<option value="light dark" selected>Automatic</option>`,
		`/assets/gallery.js`,
		`data-slug="alu"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("gallery shell missing %q", want)
		}
	}
	if strings.Contains(out, `data-slug="xss"`) {
		t.Error("filtered project should not be rendered")
	}
}

func TestNav(t *testing.T) {
	entries := []NavEntry{
		{URL: "", Title: "Home"},
		{URL: "projects/", Title: "Projects"},
		{URL: "https://github.com/x", Title: "GitHub"},
	}
	links := Nav(entries, "/site/", "/site/projects/")

	if links[0].Href != "/site/" || links[0].Current {
		t.Errorf("home link: %+v", links[0])
	}
	if links[1].Href != "/site/projects/" || !links[1].Current {
		t.Errorf("projects link: %+v", links[1])
	}
	if links[2].Href != "https://github.com/x" || !links[2].External || links[2].Current {
		t.Errorf("external link: %+v", links[2])
	}
}

func TestThemeOptions(t *testing.T) {
	opts := ThemeOptions("bogus")
	if !opts[0].Selected || opts[0].Value != ThemeAuto {
		t.Errorf("unknown theme should select automatic: %+v", opts)
	}
	if !ValidTheme("light dark") || ValidTheme("sepia") {
		t.Error("ValidTheme mismatch")
	}
}

func TestAssets(t *testing.T) {
	for _, name := range []string{"style.css", "gallery.js", "site.js"} {
		data, err := fs.ReadFile(Assets(), name)
		if err != nil || len(data) == 0 {
			t.Errorf("asset %s: %v", name, err)
		}
	}
}
