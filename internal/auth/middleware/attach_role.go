package auth

import (
	"net/http"

	"github.com/openassess/openassess/internal/rbac"
)

// AttachRole copies the verified JWT role into the rbac context so route
// guards can check it. Mount after JWTMiddleware.
func AttachRole() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if c, ok := ClaimsFrom(r.Context()); ok {
				r = r.WithContext(rbac.WithRole(r.Context(), c.Role))
			}
			next.ServeHTTP(w, r)
		})
	}
}
