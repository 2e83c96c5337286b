package prefs

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// CookieName holds the anonymous visitor id.
const CookieName = "folio_visitor"

type visitorKey struct{}

// Visitor is middleware that assigns every client an anonymous id cookie
// and exposes it through VisitorID.
func Visitor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := ""
		if c, err := r.Cookie(CookieName); err == nil {
			if _, err := uuid.Parse(c.Value); err == nil {
				id = c.Value
			}
		}
		if id == "" {
			id = uuid.NewString()
			http.SetCookie(w, &http.Cookie{
				Name:     CookieName,
				Value:    id,
				Path:     "/",
				MaxAge:   365 * 24 * 60 * 60,
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}
		next.ServeHTTP(w, r.WithContext(WithVisitor(r.Context(), id)))
	})
}

// WithVisitor returns a context carrying the visitor id.
func WithVisitor(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, visitorKey{}, id)
}

// VisitorID returns the visitor id stored by Visitor, or "".
func VisitorID(ctx context.Context) string {
	id, _ := ctx.Value(visitorKey{}).(string)
	return id
}
