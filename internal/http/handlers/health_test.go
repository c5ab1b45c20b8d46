package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
)

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestHealth(t *testing.T) {
	for name, tc := range map[string]struct {
		pinger Pinger
		code   int
		status string
	}{
		"no pinger":    {nil, http.StatusOK, "ok"},
		"ping ok":      {pingFunc(func(context.Context) error { return nil }), http.StatusOK, "ok"},
		"ping failing": {pingFunc(func(context.Context) error { return errors.New("conn refused") }), http.StatusServiceUnavailable, "degraded"},
	} {
		t.Run(name, func(t *testing.T) {
			r := chi.NewRouter()
			NewHealthHandler(time.Now().Add(-time.Minute), tc.pinger).Register(r)

			rr := httptest.NewRecorder()
			r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

			assert.Equal(t, tc.code, rr.Code)
			assert.Contains(t, rr.Body.String(), `"status":"`+tc.status+`"`)
			assert.Contains(t, rr.Body.String(), `"uptime":"1m0s"`)
		})
	}
}
