package site

import (
	"encoding/json"
	"net/http"

	"github.com/ctt011/folio/internal/catalog"
	"github.com/ctt011/folio/internal/gallery"
)

func (s *Site) handleProjects(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, nonNil(s.source.Current().Projects()))
}

// handleVisible runs the filter engine over HTTP. year and tag may repeat.
func (s *Site) handleVisible(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	visible := gallery.VisibleProjects(
		s.source.Current().Projects(),
		q.Get("q"),
		toSet(q["year"]),
		toSet(q["tag"]),
	)
	writeJSON(w, http.StatusOK, nonNil(visible))
}

func toSet(values []string) map[string]bool {
	m := make(map[string]bool, len(values))
	for _, v := range values {
		if v != "" {
			m[v] = true
		}
	}
	return m
}

func nonNil(ps []catalog.Project) []catalog.Project {
	if ps == nil {
		return []catalog.Project{}
	}
	return ps
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
