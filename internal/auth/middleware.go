package auth

import (
	"encoding/json"
	"net/http"
)

const (
	// IdentityHeader is set by the access proxy after it has
	// authenticated the caller. Header lookup is case-insensitive.
	IdentityHeader = "Cf-Access-Authenticated-User-Email"
	// DevHeader is accepted as a fallback when the proxy header is
	// missing, so local development works without the proxy in front.
	DevHeader = "X-Dev-Email"
)

// Skipper allows callers to bypass authentication for specific requests.
type Skipper func(r *http.Request) bool

// Middleware rejects requests that carry no identity.
type Middleware struct {
	skipper Skipper
}

// NewMiddleware constructs a Middleware with an optional skipper.
func NewMiddleware(skipper Skipper) Middleware {
	return Middleware{skipper: skipper}
}

// Wrap attaches identity extraction to an http.Handler. Requests without
// either header are answered 401 before any handler runs.
func (m Middleware) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.skipper != nil && m.skipper(r) {
			next.ServeHTTP(w, r)
			return
		}

		email := r.Header.Get(IdentityHeader)
		if email == "" {
			email = r.Header.Get(DevHeader)
		}
		if email == "" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "Unauthorized"})
			return
		}

		next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), email)))
	})
}
