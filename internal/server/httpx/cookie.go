package httpx

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/parksujin/lifeshare/internal/common"
)

// SessionStore abstracts where the refresh credential is carried between
// requests. The only implementation rides an HTTP-only, path-scoped cookie;
// there is no server-side session table.
type SessionStore interface {
	// Create attaches the refresh token to the response.
	Create(w http.ResponseWriter, token string)

	// Read returns the refresh token carried by the request, if any.
	Read(r *http.Request) (string, bool)

	// Invalidate overwrites the cookie with an empty value and a zero
	// lifetime.
	Invalidate(w http.ResponseWriter)
}

// CookieStore implements SessionStore over the refreshToken cookie.
// Secure and SameSite attributes are not set here; the response-wide
// CookieAttributeFilter appends them to every Set-Cookie header.
type CookieStore struct {
	maxAge int
}

// NewCookieStore builds a store issuing cookies with the given lifetime in
// seconds (the refresh-token TTL).
func NewCookieStore(maxAgeSeconds int) *CookieStore {
	return &CookieStore{maxAge: maxAgeSeconds}
}

func (s *CookieStore) Create(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     common.RefreshTokenCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   s.maxAge,
		HttpOnly: true,
	})
}

func (s *CookieStore) Read(r *http.Request) (string, bool) {
	cookie, err := r.Cookie(common.RefreshTokenCookieName)
	if err != nil || cookie.Value == "" {
		return "", false
	}
	return cookie.Value, true
}

func (s *CookieStore) Invalidate(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     common.RefreshTokenCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1, // rendered as Max-Age=0
		HttpOnly: true,
	})
}

// CookieAttributeFilter appends "; Secure; SameSite=None" to every
// Set-Cookie header pair of the response, not just the refresh cookie. It
// post-processes headers right before they are flushed.
func CookieAttributeFilter() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer = &cookieAttributeWriter{ResponseWriter: c.Writer}
		c.Next()
	}
}

type cookieAttributeWriter struct {
	gin.ResponseWriter
	applied bool
}

func (w *cookieAttributeWriter) apply() {
	if w.applied {
		return
	}
	w.applied = true

	h := w.Header()
	cookies := h["Set-Cookie"]
	if len(cookies) == 0 {
		return
	}
	rewritten := make([]string, len(cookies))
	for i, v := range cookies {
		rewritten[i] = v + "; Secure; SameSite=None"
	}
	h["Set-Cookie"] = rewritten
}

func (w *cookieAttributeWriter) WriteHeader(code int) {
	w.apply()
	w.ResponseWriter.WriteHeader(code)
}

func (w *cookieAttributeWriter) WriteHeaderNow() {
	w.apply()
	w.ResponseWriter.WriteHeaderNow()
}

func (w *cookieAttributeWriter) Write(b []byte) (int, error) {
	w.apply()
	return w.ResponseWriter.Write(b)
}

func (w *cookieAttributeWriter) WriteString(s string) (int, error) {
	w.apply()
	return w.ResponseWriter.WriteString(s)
}
