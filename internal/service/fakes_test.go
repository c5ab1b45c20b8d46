package service

import (
	"context"
	"sync"

	"github.com/hongminglow/eventos-be/internal/imagehost"
	"github.com/hongminglow/eventos-be/internal/models"
	"github.com/hongminglow/eventos-be/internal/supabase"
)

// mockIdentity implements IdentityProvider and IdentityAdmin.
type mockIdentity struct {
	signUpFunc      func(ctx context.Context, params supabase.SignUpParams) (models.Identity, error)
	signInFunc      func(ctx context.Context, email, password string) (models.Session, error)
	getUserFunc     func(ctx context.Context, token string) (models.Identity, error)
	resetFunc       func(ctx context.Context, email, redirectTo string) error
	adminDeleteFunc func(ctx context.Context, id string) error

	calls int
}

func (m *mockIdentity) SignUp(ctx context.Context, params supabase.SignUpParams) (models.Identity, error) {
	m.calls++
	return m.signUpFunc(ctx, params)
}

func (m *mockIdentity) SignInWithPassword(ctx context.Context, email, password string) (models.Session, error) {
	m.calls++
	return m.signInFunc(ctx, email, password)
}

func (m *mockIdentity) GetUser(ctx context.Context, token string) (models.Identity, error) {
	m.calls++
	return m.getUserFunc(ctx, token)
}

func (m *mockIdentity) ResetPasswordForEmail(ctx context.Context, email, redirectTo string) error {
	m.calls++
	return m.resetFunc(ctx, email, redirectTo)
}

func (m *mockIdentity) AdminDeleteUser(ctx context.Context, id string) error {
	m.calls++
	return m.adminDeleteFunc(ctx, id)
}

// mockProfiles implements storage.ProfileStore.
type mockProfiles struct {
	insertFunc func(ctx context.Context, profile models.UserProfile) error
	getFunc    func(ctx context.Context, id string) (models.UserProfile, error)
	updateFunc func(ctx context.Context, id string, changes models.ProfileChanges) error
	deleteFunc func(ctx context.Context, id string) error

	calls int
}

func (m *mockProfiles) InsertProfile(ctx context.Context, profile models.UserProfile) error {
	m.calls++
	return m.insertFunc(ctx, profile)
}

func (m *mockProfiles) GetProfile(ctx context.Context, id string) (models.UserProfile, error) {
	m.calls++
	return m.getFunc(ctx, id)
}

func (m *mockProfiles) UpdateProfile(ctx context.Context, id string, changes models.ProfileChanges) error {
	m.calls++
	return m.updateFunc(ctx, id, changes)
}

func (m *mockProfiles) DeleteProfile(ctx context.Context, id string) error {
	m.calls++
	return m.deleteFunc(ctx, id)
}

// mockEvents implements storage.EventStore.
type mockEvents struct {
	listFunc   func(ctx context.Context, filter models.EventFilter) ([]models.Event, int, error)
	getFunc    func(ctx context.Context, id string) (models.Event, error)
	deleteFunc func(ctx context.Context, id string) error
}

func (m *mockEvents) ListEvents(ctx context.Context, filter models.EventFilter) ([]models.Event, int, error) {
	return m.listFunc(ctx, filter)
}

func (m *mockEvents) GetEvent(ctx context.Context, id string) (models.Event, error) {
	return m.getFunc(ctx, id)
}

func (m *mockEvents) DeleteEvent(ctx context.Context, id string) error {
	return m.deleteFunc(ctx, id)
}

// mockUploader implements imagehost.Uploader.
type mockUploader struct {
	uploadFunc func(ctx context.Context, file imagehost.File) (string, error)
	calls      int
}

func (m *mockUploader) Upload(ctx context.Context, file imagehost.File) (string, error) {
	m.calls++
	return m.uploadFunc(ctx, file)
}

// recorder captures metrics.Recorder calls.
type recorder struct {
	mu       sync.Mutex
	partials []string
	calls    map[string]int
}

func (r *recorder) RecordProviderCall(operation string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.calls == nil {
		r.calls = map[string]int{}
	}
	r.calls[operation]++
}

func (r *recorder) RecordPartialFailure(operation string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.partials = append(r.partials, operation)
}
