package server

import (
	"crypto/subtle"
	"net/http"
	"strings"
)

const tokenCookie = "stock_token"

// requireToken rejects requests that do not present token. It is accepted
// from an Authorization header, a ?token= query parameter or the cookie set
// after a successful query-parameter login, so a browser only needs the
// link once.
func requireToken(token string) func(http.Handler) http.Handler {
	want := []byte(stripBearer(strings.TrimSpace(token)))
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if got := r.URL.Query().Get("token"); got != "" && equal(want, got) {
				http.SetCookie(w, &http.Cookie{
					Name:     tokenCookie,
					Value:    got,
					Path:     "/",
					HttpOnly: true,
					SameSite: http.SameSiteStrictMode,
				})
				next.ServeHTTP(w, r)
				return
			}
			if h := r.Header.Get("Authorization"); h != "" && equal(want, stripBearer(h)) {
				next.ServeHTTP(w, r)
				return
			}
			if c, err := r.Cookie(tokenCookie); err == nil && equal(want, c.Value) {
				next.ServeHTTP(w, r)
				return
			}
			w.Header().Set("WWW-Authenticate", `Bearer realm="stock"`)
			writeError(w, http.StatusUnauthorized, "missing or invalid token")
		})
	}
}

func equal(want []byte, got string) bool {
	return subtle.ConstantTimeCompare(want, []byte(got)) == 1
}

func stripBearer(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(strings.ToLower(s), "bearer ") {
		return strings.TrimSpace(s[7:])
	}
	return s
}
