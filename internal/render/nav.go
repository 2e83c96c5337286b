package render

import "strings"

// NavEntry is one configured navigation link. Relative URLs are resolved
// against the site base path.
type NavEntry struct {
	URL   string `koanf:"url" yaml:"url" json:"url"`
	Title string `koanf:"title" yaml:"title" json:"title"`
}

// NavLink is a navigation entry resolved for one request.
type NavLink struct {
	Href     string
	Title    string
	Current  bool
	External bool
}

// DefaultNav mirrors a typical portfolio site layout.
func DefaultNav() []NavEntry {
	return []NavEntry{
		{URL: "", Title: "Home"},
		{URL: "projects/", Title: "Projects"},
		{URL: "contact/", Title: "Contact"},
		{URL: "resume/", Title: "Resume"},
	}
}

// Nav resolves entries for a request to path. The entry whose href equals
// path is marked current; absolute http(s) entries open in a new tab.
func Nav(entries []NavEntry, basePath, path string) []NavLink {
	links := make([]NavLink, 0, len(entries))
	for _, e := range entries {
		link := NavLink{Href: e.URL, Title: e.Title}
		if isExternal(e.URL) {
			link.External = true
		} else {
			link.Href = basePath + strings.TrimPrefix(e.URL, "/")
			link.Current = link.Href == path
		}
		links = append(links, link)
	}
	return links
}

func isExternal(url string) bool {
	return strings.HasPrefix(url, "http://") || strings.HasPrefix(url, "https://")
}
