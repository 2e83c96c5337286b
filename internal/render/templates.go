package render

// layoutTemplate wraps every full page. Pages define "main" and "scripts".
const layoutTemplate = `{{define "layout"}}<!DOCTYPE html>
<html lang="en" style="color-scheme: {{.Theme}}">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>{{.Title}}</title>
  <link rel="stylesheet" href="{{.BasePath}}assets/style.css">
</head>
<body data-base="{{.BasePath}}">
  <label class="color-scheme">
    Theme:
    <select>
      {{- range .Themes}}
      <option value="{{.Value}}"{{if .Selected}} selected{{end}}>{{.Label}}</option>
      {{- end}}
    </select>
  </label>
  <nav>
    {{- range .Nav}}
    <a href="{{.Href}}"{{if .Current}} class="current"{{end}}{{if .External}} target="_blank"{{end}}>{{.Title}}</a>
    {{- end}}
  </nav>
  <main>
    {{template "main" .}}
  </main>
  <script src="{{.BasePath}}assets/site.js"></script>
  {{template "scripts" .}}
</body>
</html>{{end}}`

// homeTemplate is the landing page with the latest projects.
const homeTemplate = `{{define "main"}}
    <h1>{{.Heading}}</h1>
    <h2>Latest Projects</h2>
    <div class="projects">
      {{.Content}}
    </div>
{{end}}
{{define "scripts"}}{{end}}`

// galleryTemplate is the project gallery shell. The session fills the
// projects container over the websocket.
const galleryTemplate = `{{define "main"}}
    <h1>Projects</h1>
    <input type="search" class="searchBar" placeholder="Search projects..." autocomplete="off" value="{{.Query}}">
    <div class="filter-container">
      <div class="filter-group">
        <span class="filter-label">Year</span>
        <div id="year-filters">{{range .YearPills}}{{template "pill" .}}{{end}}</div>
      </div>
      <div class="filter-group">
        <span class="filter-label">Tags</span>
        <div id="tag-filters">{{range .TagPills}}{{template "pill" .}}{{end}}</div>
      </div>
      <button class="clear-filters" type="button">Clear Filters</button>
    </div>
    <div class="projects">
      {{.Content}}
    </div>
{{end}}
{{define "pill"}}<button type="button" class="filter-pill{{if .Active}} active{{end}}" data-type="{{.Kind}}" data-value="{{.Value}}">{{.Value}}</button>{{end}}
{{define "scripts"}}<script src="{{.BasePath}}assets/gallery.js"></script>{{end}}`

// gridTemplate renders project cards. Href is set on home page cards,
// gallery cards route by slug.
const gridTemplate = `{{define "grid"}}{{range .Cards}}{{$p := .Project}}
<article data-slug="{{$p.Slug}}"{{with .Href}} data-href="{{.}}"{{end}}>
  {{heading .Level $p.Title}}
  {{with $p.Image}}<img src="{{.}}" alt="{{$p.Title}}">{{end}}
  <div>
    <p>{{$p.Description}}</p>
    <p class="year">{{$p.Year}}</p>
  </div>
</article>{{end}}{{end}}`

// detailTemplate renders one project and its code viewer.
const detailTemplate = `{{define "detail"}}{{with .Project}}
<button class="back-button" type="button">&larr; Back to Projects</button>
<article class="detail-content">
  <h1>{{.Title}}</h1>
  <div class="detail-meta">
    <span class="year">{{.Year}}</span>
    {{- with .GithubURL}}
    <a href="{{.}}" target="_blank" class="detail-link">View on GitHub</a>
    {{- end}}
    {{- with .LiveURL}}
    <a href="{{.}}" target="_blank" class="detail-link">Live Demo</a>
    {{- end}}
  </div>
  {{with .Image}}<img src="{{.}}" alt="{{$.Project.Title}}" class="detail-image">{{end}}
  <section class="detail-section">
    <h2>About</h2>
    {{markdown .FullDescription}}
  </section>
  {{- if $.Viewer}}
  {{template "viewer" $.Viewer}}
  {{- end}}
  {{- if .TechStack}}
  <section class="detail-section">
    <h2>Tech Stack</h2>
    <ul class="tech-stack">
      {{- range .TechStack}}
      <li>{{.}}</li>
      {{- end}}
    </ul>
  </section>
  {{- end}}
  {{- with .Challenges}}
  <section class="detail-section">
    <h2>Challenges</h2>
    {{markdown .}}
  </section>
  {{- end}}
  {{- with .Learnings}}
  <section class="detail-section">
    <h2>What I Learned</h2>
    {{markdown .}}
  </section>
  {{- end}}
</article>{{end}}{{end}}`

// viewerTemplate renders the tabbed source code section.
const viewerTemplate = `{{define "viewer"}}
  <section class="detail-section">
    <h2>Source Code</h2>
    <div class="code-viewer-container">
      <div class="code-tabs">
        {{- range $i, $a := .Artifacts}}
        <button type="button" class="code-tab-button{{if $.IsActive $i}} active{{end}}" data-tab-index="{{$i}}">{{$a.Filename}}</button>
        {{- end}}
      </div>
      {{- range $i, $a := .Artifacts}}
      <div class="code-tab-content{{if $.IsActive $i}} active{{end}}" data-tab-index="{{$i}}">
        {{- if $a.IsImage}}
        <div class="code-display image-display">
          <img src="{{$a.ImageSrc}}" alt="{{$a.Filename}}">
        </div>
        {{- else}}
        <div class="code-display">
          <pre>{{range $n, $l := codeLines $a}}{{if $n}}
{{end}}<span class="code-line"><span class="line-number">{{$l.Number}}</span><span class="line-content">{{$l.HTML}}</span></span>{{end}}</pre>
        </div>
        {{- end}}
      </div>
      {{- end}}
    </div>
  </section>
{{end}}`
