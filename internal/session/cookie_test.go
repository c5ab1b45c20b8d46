package session

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCookieManagerProfiles(t *testing.T) {
	same := NewCookieManager("same-origin", "", false)
	assert.Equal(t, http.SameSiteLaxMode, same.SameSite)
	assert.False(t, same.Secure)

	sameProd := NewCookieManager("same-origin", "", true)
	assert.True(t, sameProd.Secure)

	cross := NewCookieManager("cross-origin", "", false)
	assert.Equal(t, http.SameSiteNoneMode, cross.SameSite)
	assert.True(t, cross.Secure)
}

func TestIssueSetsSingleCookie(t *testing.T) {
	mgr := NewCookieManager("cross-origin", "example.com", true)
	rr := httptest.NewRecorder()

	mgr.Issue(rr, "tok123", 0)

	cookies := rr.Result().Cookies()
	require.Len(t, cookies, 1)
	c := cookies[0]
	assert.Equal(t, CookieName, c.Name)
	assert.Equal(t, "tok123", c.Value)
	assert.Equal(t, "/", c.Path)
	assert.Equal(t, "example.com", c.Domain)
	assert.Equal(t, 3600, c.MaxAge)
	assert.True(t, c.HttpOnly)
	assert.True(t, c.Secure)
	assert.Equal(t, http.SameSiteNoneMode, c.SameSite)
}

func TestIssueClampsToTokenExpiry(t *testing.T) {
	mgr := NewCookieManager("same-origin", "", false)

	rr := httptest.NewRecorder()
	mgr.Issue(rr, "tok", 20*time.Minute)
	assert.Equal(t, 1200, rr.Result().Cookies()[0].MaxAge)

	rr = httptest.NewRecorder()
	mgr.Issue(rr, "tok", 3*time.Hour)
	assert.Equal(t, 3600, rr.Result().Cookies()[0].MaxAge)

	rr = httptest.NewRecorder()
	mgr.Issue(rr, "tok", -time.Second)
	assert.Equal(t, 1, rr.Result().Cookies()[0].MaxAge)
}

func TestClearMirrorsIssuedAttributes(t *testing.T) {
	for _, profile := range []string{"same-origin", "cross-origin"} {
		t.Run(profile, func(t *testing.T) {
			mgr := NewCookieManager(profile, "example.com", true)

			issued := httptest.NewRecorder()
			mgr.Issue(issued, "tok", 0)
			cleared := httptest.NewRecorder()
			mgr.Clear(cleared)

			set := issued.Result().Cookies()[0]
			gone := cleared.Result().Cookies()[0]
			assert.Equal(t, set.Name, gone.Name)
			assert.Equal(t, set.Path, gone.Path)
			assert.Equal(t, set.Domain, gone.Domain)
			assert.Equal(t, set.SameSite, gone.SameSite)
			assert.Equal(t, set.Secure, gone.Secure)
			assert.Equal(t, set.HttpOnly, gone.HttpOnly)
			assert.Equal(t, -1, gone.MaxAge)
			assert.Empty(t, gone.Value)
		})
	}
}

func TestReadPrefersCookie(t *testing.T) {
	mgr := NewCookieManager("same-origin", "", false)

	req := httptest.NewRequest(http.MethodGet, "/profile", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: "from-cookie"})
	req.Header.Set("Authorization", "Bearer from-header")
	assert.Equal(t, "from-cookie", mgr.Read(req))

	req = httptest.NewRequest(http.MethodGet, "/profile", nil)
	req.Header.Set("Authorization", "bearer from-header")
	assert.Equal(t, "from-header", mgr.Read(req))

	req = httptest.NewRequest(http.MethodGet, "/profile", nil)
	req.Header.Set("Authorization", "Basic abc")
	assert.Empty(t, mgr.Read(req))

	assert.Empty(t, mgr.Read(httptest.NewRequest(http.MethodGet, "/profile", nil)))
}
