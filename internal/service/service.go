// Package service holds the request-independent business operations. Every
// operation returns *apperr.Error on failure.
package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/hongminglow/eventos-be/internal/models"
	"github.com/hongminglow/eventos-be/internal/supabase"
)

// IdentityProvider is the public (anon key) surface of the auth provider.
type IdentityProvider interface {
	SignUp(ctx context.Context, params supabase.SignUpParams) (models.Identity, error)
	SignInWithPassword(ctx context.Context, email, password string) (models.Session, error)
	GetUser(ctx context.Context, accessToken string) (models.Identity, error)
	ResetPasswordForEmail(ctx context.Context, email, redirectTo string) error
}

// IdentityAdmin is the elevated (service role) surface of the auth provider.
type IdentityAdmin interface {
	AdminDeleteUser(ctx context.Context, id string) error
}

// TokenVerifier resolves the identity behind an access token.
type TokenVerifier interface {
	VerifyToken(ctx context.Context, token string) (models.Identity, error)
}

// providerMessage returns the downstream message of err without transport
// or wrapping noise.
func providerMessage(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Message
	}
	return supabase.Message(err)
}
