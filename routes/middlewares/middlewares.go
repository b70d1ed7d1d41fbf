package middlewares

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/oauth"
	"github.com/mbolis/quick-form/httpx"
)

// Admin middleware to check for the 'admin' role and a tenant claim in an
// OAuth token.
func Admin(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return chi.Chain(oauth.Authorize(secret, nil), admin).Handler(next)
	}
}

func admin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !HasRole(r, "admin") || Claims(r)[httpx.TenantClaim] == "" {
			http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// Claims returns the token claims set by oauth.Authorize, or nil.
func Claims(r *http.Request) map[string]string {
	claims, _ := r.Context().Value(oauth.ClaimsContext).(map[string]string)
	return claims
}

func HasRole(r *http.Request, role string) bool {
	rolesClaim, ok := Claims(r)["roles"]
	if !ok {
		return false
	}
	for _, rl := range strings.Split(rolesClaim, ",") {
		if strings.TrimSpace(rl) == role {
			return true
		}
	}
	return false
}
