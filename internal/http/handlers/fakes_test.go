package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/hongminglow/eventos-be/internal/auth"
	"github.com/hongminglow/eventos-be/internal/imagehost"
	"github.com/hongminglow/eventos-be/internal/models"
	"github.com/hongminglow/eventos-be/internal/service"
	"github.com/hongminglow/eventos-be/internal/session"
	"github.com/hongminglow/eventos-be/internal/storage"
	"github.com/hongminglow/eventos-be/internal/supabase"
)

// fakeIdentity implements service.IdentityProvider and service.IdentityAdmin.
type fakeIdentity struct {
	signUpFunc      func(ctx context.Context, params supabase.SignUpParams) (models.Identity, error)
	signInFunc      func(ctx context.Context, email, password string) (models.Session, error)
	getUserFunc     func(ctx context.Context, token string) (models.Identity, error)
	resetFunc       func(ctx context.Context, email, redirectTo string) error
	adminDeleteFunc func(ctx context.Context, id string) error

	calls int
}

func (f *fakeIdentity) SignUp(ctx context.Context, params supabase.SignUpParams) (models.Identity, error) {
	f.calls++
	return f.signUpFunc(ctx, params)
}

func (f *fakeIdentity) SignInWithPassword(ctx context.Context, email, password string) (models.Session, error) {
	f.calls++
	return f.signInFunc(ctx, email, password)
}

func (f *fakeIdentity) GetUser(ctx context.Context, token string) (models.Identity, error) {
	f.calls++
	return f.getUserFunc(ctx, token)
}

func (f *fakeIdentity) ResetPasswordForEmail(ctx context.Context, email, redirectTo string) error {
	f.calls++
	return f.resetFunc(ctx, email, redirectTo)
}

func (f *fakeIdentity) AdminDeleteUser(ctx context.Context, id string) error {
	f.calls++
	if f.adminDeleteFunc == nil {
		return errors.New("unexpected identity delete")
	}
	return f.adminDeleteFunc(ctx, id)
}

// memStore is an in-memory storage.Store.
type memStore struct {
	profiles  map[string]models.UserProfile
	events    []models.Event
	insertErr error
	calls     int
}

func newMemStore() *memStore {
	return &memStore{profiles: map[string]models.UserProfile{}}
}

func (s *memStore) Close() {}

func (s *memStore) InsertProfile(ctx context.Context, p models.UserProfile) error {
	s.calls++
	if s.insertErr != nil {
		return s.insertErr
	}
	s.profiles[p.ID] = p
	return nil
}

func (s *memStore) GetProfile(ctx context.Context, id string) (models.UserProfile, error) {
	s.calls++
	p, ok := s.profiles[id]
	if !ok {
		return models.UserProfile{}, storage.ErrNotFound
	}
	return p, nil
}

func (s *memStore) UpdateProfile(ctx context.Context, id string, c models.ProfileChanges) error {
	s.calls++
	p := s.profiles[id]
	if c.Name != nil {
		p.Name = *c.Name
	}
	if c.Phone != nil {
		p.Phone = *c.Phone
	}
	if c.Role != nil {
		p.Role = *c.Role
	}
	s.profiles[id] = p
	return nil
}

func (s *memStore) DeleteProfile(ctx context.Context, id string) error {
	s.calls++
	delete(s.profiles, id)
	return nil
}

// ListEvents expects events to be stored newest first.
func (s *memStore) ListEvents(ctx context.Context, f models.EventFilter) ([]models.Event, int, error) {
	s.calls++
	var matched []models.Event
	for _, e := range s.events {
		if f.Status == "" || e["status"] == f.Status {
			matched = append(matched, e)
		}
	}
	end := f.Offset + f.Limit
	if f.Offset > len(matched) {
		return nil, len(matched), nil
	}
	if end > len(matched) {
		end = len(matched)
	}
	return matched[f.Offset:end], len(matched), nil
}

func (s *memStore) GetEvent(ctx context.Context, id string) (models.Event, error) {
	s.calls++
	for _, e := range s.events {
		if e["id"] == id {
			return e, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (s *memStore) DeleteEvent(ctx context.Context, id string) error {
	s.calls++
	for i, e := range s.events {
		if e["id"] == id {
			s.events = append(s.events[:i], s.events[i+1:]...)
			break
		}
	}
	return nil
}

type fakeUploader struct {
	uploadFunc func(ctx context.Context, file imagehost.File) (string, error)
	calls      int
}

func (f *fakeUploader) Upload(ctx context.Context, file imagehost.File) (string, error) {
	f.calls++
	return f.uploadFunc(ctx, file)
}

type fixture struct {
	identity *fakeIdentity
	store    *memStore
	uploader *fakeUploader
	cookies  *session.CookieManager
	router   http.Handler
}

func newFixture(t *testing.T, cookieProfile string, echoToken bool) *fixture {
	t.Helper()
	f := &fixture{
		identity: &fakeIdentity{},
		store:    newMemStore(),
		uploader: &fakeUploader{},
		cookies:  session.NewCookieManager(cookieProfile, "", false),
	}
	tokens := auth.NewTokenInspector("")
	gateway := service.NewCredentialGateway(f.identity, f.store, nil, "http://localhost/reset")
	composer := service.NewProfileComposer(gateway, f.store, service.ProjectionFull)

	r := chi.NewRouter()
	NewAuthHandler(gateway, composer, f.cookies, tokens, echoToken).Register(r, nil)
	NewUsersHandler(service.NewUserAdmin(f.store, f.identity, nil), f.cookies, tokens).Register(r)
	NewEventsHandler(service.NewEventService(f.store)).Register(r)
	NewUploadHandler(service.NewUploadRelay(f.uploader, nil), 1<<20).Register(r)
	f.router = r
	return f
}

func (f *fixture) do(req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	f.router.ServeHTTP(rr, req)
	return rr
}

// signedToken returns an HS256 token for sub expiring after ttl.
func signedToken(t *testing.T, sub string, ttl time.Duration) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": sub,
		"exp": time.Now().Add(ttl).Unix(),
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return tok
}
