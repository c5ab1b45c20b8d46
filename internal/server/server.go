package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/hongminglow/eventos-be/internal/auth"
	"github.com/hongminglow/eventos-be/internal/config"
	"github.com/hongminglow/eventos-be/internal/http/handlers"
	"github.com/hongminglow/eventos-be/internal/imagehost"
	"github.com/hongminglow/eventos-be/internal/metrics"
	"github.com/hongminglow/eventos-be/internal/middleware"
	"github.com/hongminglow/eventos-be/internal/service"
	"github.com/hongminglow/eventos-be/internal/session"
	"github.com/hongminglow/eventos-be/internal/storage"
)

// Deps are the external collaborators built in main.
type Deps struct {
	// Identity is the anon-key provider client.
	Identity service.IdentityProvider
	// Admin is the service-role provider client.
	Admin    service.IdentityAdmin
	Store    storage.Store
	Uploader imagehost.Uploader
	// Pinger backs the health check; nil reports ok unconditionally.
	Pinger   handlers.Pinger
	Registry *prometheus.Registry
}

// Server wraps an http.Server with configured routes.
type Server struct {
	inner *http.Server
}

// New wires up middleware, routes, and returns a ready server.
func New(cfg config.Config, deps Deps) *Server {
	httpServer := &http.Server{
		Addr:              cfg.HTTPAddress(),
		Handler:           NewRouter(cfg, deps),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      cfg.ProviderTimeout + 15*time.Second,
		IdleTimeout:       120 * time.Second,
	}

	return &Server{inner: httpServer}
}

// NewRouter builds the HTTP handler tree.
func NewRouter(cfg config.Config, deps Deps) http.Handler {
	registry := deps.Registry
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	collector := metrics.NewCollector(registry)

	cookies := session.NewCookieManager(cfg.CookieProfile, cfg.CookieDomain, cfg.CookieSecure)
	tokens := auth.NewTokenInspector(cfg.SupabaseJWTSecret)
	gateway := service.NewCredentialGateway(deps.Identity, deps.Store, collector, cfg.PasswordResetRedirect)
	composer := service.NewProfileComposer(gateway, deps.Store, cfg.ProfileProjection)

	r := chi.NewRouter()
	r.Use(chimw.RealIP)
	r.Use(chimw.RequestID)
	r.Use(middleware.Logging)
	r.Use(chimw.Recoverer)
	r.Use(middleware.Metrics(collector))
	r.Use(middleware.CORS(cfg.CORSOrigins))

	handlers.NewHealthHandler(time.Now(), deps.Pinger).Register(r)
	r.Method(http.MethodGet, "/metrics", metrics.Handler(registry))

	handlers.NewAuthHandler(gateway, composer, cookies, tokens, cfg.LoginEchoToken).
		Register(r, httprate.LimitByIP(cfg.AuthRateLimit, time.Minute))
	handlers.NewUsersHandler(service.NewUserAdmin(deps.Store, deps.Admin, collector), cookies, tokens).Register(r)
	handlers.NewEventsHandler(service.NewEventService(deps.Store)).Register(r)
	handlers.NewUploadHandler(service.NewUploadRelay(deps.Uploader, collector), cfg.UploadMaxBytes).Register(r)

	return r
}

// Start begins serving HTTP traffic.
func (s *Server) Start() error {
	return s.inner.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.inner.Shutdown(ctx)
}
