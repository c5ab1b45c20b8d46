package session

import (
	"net/http"
	"strings"
	"time"
)

// CookieName is the cookie carrying the provider access token.
const CookieName = "sb-access-token"

// MaxAge caps the cookie lifetime regardless of the token's own expiry.
const MaxAge = time.Hour

// CookieManager issues, reads and clears the session cookie. Issue and Clear
// share one attribute set so a cleared cookie always matches the issued one.
type CookieManager struct {
	Domain   string
	Secure   bool
	SameSite http.SameSite
}

// NewCookieManager maps a deployment profile ("same-origin" or
// "cross-origin") to cookie attributes. Cross-origin always sets Secure,
// which browsers require for SameSite=None.
func NewCookieManager(profile, domain string, secure bool) *CookieManager {
	m := &CookieManager{Domain: domain, Secure: secure, SameSite: http.SameSiteLaxMode}
	if strings.EqualFold(profile, "cross-origin") {
		m.SameSite = http.SameSiteNoneMode
		m.Secure = true
	}
	return m
}

func (m *CookieManager) attributes(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		Domain:   m.Domain,
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   m.Secure,
		SameSite: m.SameSite,
	}
}

// Issue sets the session cookie. ttl is the token's remaining validity; the
// cookie lives for the shorter of ttl and MaxAge. A zero ttl means unknown and
// yields MaxAge. A negative ttl marks an expired token and yields one second.
func (m *CookieManager) Issue(w http.ResponseWriter, token string, ttl time.Duration) {
	lifetime := MaxAge
	switch {
	case ttl < 0:
		lifetime = 0
	case ttl > 0 && ttl < lifetime:
		lifetime = ttl
	}
	seconds := int(lifetime / time.Second)
	if seconds < 1 {
		seconds = 1
	}
	http.SetCookie(w, m.attributes(token, seconds))
}

// Clear expires the session cookie.
func (m *CookieManager) Clear(w http.ResponseWriter) {
	http.SetCookie(w, m.attributes("", -1))
}

// Read returns the token from the cookie, falling back to an
// "Authorization: Bearer" header. It returns "" when neither is present.
func (m *CookieManager) Read(r *http.Request) string {
	if c, err := r.Cookie(CookieName); err == nil && c.Value != "" {
		return c.Value
	}
	return BearerToken(r)
}

// BearerToken extracts the token of an "Authorization: Bearer" header.
func BearerToken(r *http.Request) string {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
