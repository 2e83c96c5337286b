package prefs

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
)

type themeBody struct {
	Theme string `json:"theme"`
}

// RegisterRoutes mounts the theme endpoints on the given router. Requests
// must pass through the Visitor middleware.
func RegisterRoutes(r chi.Router, store *Store) {
	r.Route("/api/theme", func(r chi.Router) {
		r.Get("/", handleGetTheme(store))
		r.Put("/", handleSetTheme(store))
	})
}

func handleGetTheme(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		theme, err := store.Theme(r.Context(), VisitorID(r.Context()))
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, themeBody{Theme: theme})
	}
}

func handleSetTheme(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		visitor := VisitorID(r.Context())
		if visitor == "" {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "no visitor id"})
			return
		}

		var body themeBody
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
			return
		}

		if err := store.SetTheme(r.Context(), visitor, body.Theme); err != nil {
			status := http.StatusInternalServerError
			if errors.Is(err, ErrInvalidTheme) {
				status = http.StatusBadRequest
			}
			writeJSON(w, status, map[string]string{"error": err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, body)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
