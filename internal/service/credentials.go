package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/hongminglow/eventos-be/internal/apperr"
	"github.com/hongminglow/eventos-be/internal/metrics"
	"github.com/hongminglow/eventos-be/internal/models"
	"github.com/hongminglow/eventos-be/internal/storage"
	"github.com/hongminglow/eventos-be/internal/supabase"
)

// RegisterInput is the signup payload.
type RegisterInput struct {
	Email    string
	Password string
	Name     string
	Phone    string
	Role     string
}

// CredentialGateway runs signup, login and password recovery against the
// identity provider.
type CredentialGateway struct {
	identity      IdentityProvider
	profiles      storage.ProfileStore
	metrics       metrics.Recorder
	resetRedirect string
}

// NewCredentialGateway creates a gateway. resetRedirect is the page the
// recovery email links to.
func NewCredentialGateway(identity IdentityProvider, profiles storage.ProfileStore, rec metrics.Recorder, resetRedirect string) *CredentialGateway {
	if rec == nil {
		rec = metrics.Nop{}
	}
	return &CredentialGateway{identity: identity, profiles: profiles, metrics: rec, resetRedirect: resetRedirect}
}

// Register creates the identity and then its profile row. The two steps are
// not atomic: an identity whose profile insert failed is left in place.
func (g *CredentialGateway) Register(ctx context.Context, in RegisterInput) (models.Identity, error) {
	email := strings.TrimSpace(in.Email)
	if email == "" || in.Password == "" {
		return models.Identity{}, apperr.Validation("email and password are required")
	}

	user, err := g.identity.SignUp(ctx, supabase.SignUpParams{
		Email:    email,
		Password: in.Password,
		Data:     map[string]any{"name": in.Name, "role": in.Role},
	})
	g.metrics.RecordProviderCall("signup", err)
	if err != nil {
		return models.Identity{}, apperr.Auth(providerMessage(err), err)
	}
	if user.ID == "" {
		return models.Identity{}, apperr.Auth("signup returned no user", nil)
	}

	err = g.profiles.InsertProfile(ctx, models.UserProfile{
		ID:    user.ID,
		Email: email,
		Name:  in.Name,
		Phone: in.Phone,
		Role:  in.Role,
	})
	g.metrics.RecordProviderCall("profile_insert", err)
	if err != nil {
		g.metrics.RecordPartialFailure("signup")
		zerolog.Ctx(ctx).Error().Err(err).
			Str("identity_id", user.ID).
			Msg("profile insert failed; identity left without profile")
		return models.Identity{}, apperr.ProfileInsert(providerMessage(err), err)
	}
	return user, nil
}

// Login runs the password grant. A session without an access token is an error.
func (g *CredentialGateway) Login(ctx context.Context, email, password string) (models.Session, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return models.Session{}, apperr.Validation("email and password are required")
	}

	session, err := g.identity.SignInWithPassword(ctx, email, password)
	g.metrics.RecordProviderCall("login", err)
	if err != nil {
		return models.Session{}, apperr.Auth(providerMessage(err), err)
	}
	if session.AccessToken == "" {
		return models.Session{}, apperr.TokenMissing()
	}
	return session, nil
}

// ResetPassword asks the provider to send a recovery email.
func (g *CredentialGateway) ResetPassword(ctx context.Context, email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return apperr.Validation("email is required")
	}

	err := g.identity.ResetPasswordForEmail(ctx, email, g.resetRedirect)
	g.metrics.RecordProviderCall("password_reset", err)
	if err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Msg("password reset dispatch failed")
		return apperr.ResetDispatch(providerMessage(err), err)
	}
	return nil
}

// VerifyToken resolves token to its identity. Any provider rejection is
// reported as an invalid token.
func (g *CredentialGateway) VerifyToken(ctx context.Context, token string) (models.Identity, error) {
	if token == "" {
		return models.Identity{}, apperr.Unauthorized("not authenticated", nil)
	}
	user, err := g.identity.GetUser(ctx, token)
	g.metrics.RecordProviderCall("get_user", err)
	if err != nil {
		return models.Identity{}, apperr.Unauthorized("invalid token", err)
	}
	return user, nil
}
