package prefs

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/ctt011/folio/internal/db"
	"github.com/ctt011/folio/internal/render"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	database, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("opening test db: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return NewStore(database)
}

func TestThemeRoundTrip(t *testing.T) {
	store := setupTestStore(t)
	ctx := testContext(t)

	theme, err := store.Theme(ctx, "v1")
	if err != nil {
		t.Fatal(err)
	}
	if theme != render.ThemeAuto {
		t.Errorf("unset theme = %q, want automatic", theme)
	}

	if err := store.SetTheme(ctx, "v1", render.ThemeDark); err != nil {
		t.Fatal(err)
	}
	if err := store.SetTheme(ctx, "v1", render.ThemeLight); err != nil {
		t.Fatal(err)
	}
	if theme, _ := store.Theme(ctx, "v1"); theme != render.ThemeLight {
		t.Errorf("theme = %q, want light", theme)
	}
	if theme, _ := store.Theme(ctx, "v2"); theme != render.ThemeAuto {
		t.Errorf("other visitor theme = %q", theme)
	}
}

func TestSetThemeRejectsUnknown(t *testing.T) {
	store := setupTestStore(t)
	err := store.SetTheme(testContext(t), "v1", "sepia")
	if !errors.Is(err, ErrInvalidTheme) {
		t.Fatalf("expected ErrInvalidTheme, got %v", err)
	}
	if _, ok, _ := store.Get(testContext(t), "v1", KeyTheme); ok {
		t.Error("invalid theme should not be stored")
	}
}

func TestVisitorMiddleware(t *testing.T) {
	var seen string
	h := Visitor(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = VisitorID(r.Context())
	}))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	cookies := w.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != CookieName || cookies[0].Value != seen || seen == "" {
		t.Fatalf("expected a new visitor cookie, got %v (seen %q)", cookies, seen)
	}

	first := seen
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookies[0])
	w = httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if seen != first {
		t.Errorf("returning visitor got new id %q", seen)
	}
	if len(w.Result().Cookies()) != 0 {
		t.Error("existing cookie should not be reissued")
	}

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: "not-a-uuid"})
	h.ServeHTTP(httptest.NewRecorder(), req)
	if seen == "not-a-uuid" {
		t.Error("malformed visitor id should be replaced")
	}
}

func TestHTTPHandlers(t *testing.T) {
	store := setupTestStore(t)
	r := chi.NewRouter()
	r.Use(Visitor)
	RegisterRoutes(r, store)

	cookie := &http.Cookie{Name: CookieName, Value: "6f1c1f8e-2a7b-4c36-9d2e-5a1b7c9d0e11"}

	t.Run("PUT /api/theme", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPut, "/api/theme", strings.NewReader(`{"theme":"dark"}`))
		req.Header.Set("Content-Type", "application/json")
		req.AddCookie(cookie)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want %d; body: %s", w.Code, http.StatusOK, w.Body.String())
		}
	})

	t.Run("GET /api/theme", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/theme", nil)
		req.AddCookie(cookie)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		var got themeBody
		if err := json.NewDecoder(w.Body).Decode(&got); err != nil {
			t.Fatalf("decoding response: %v", err)
		}
		if got.Theme != render.ThemeDark {
			t.Errorf("theme = %q, want dark", got.Theme)
		}
	})

	t.Run("PUT /api/theme invalid", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPut, "/api/theme", strings.NewReader(`{"theme":"neon"}`))
		req.AddCookie(cookie)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
		}
	})

	t.Run("PUT /api/theme malformed", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPut, "/api/theme", strings.NewReader(`{`))
		req.AddCookie(cookie)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
		}
	})
}
