package supabase

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/hongminglow/eventos-be/internal/models"
)

// SignUpParams are the fields sent to GoTrue on signup. Data lands in the
// identity's user_metadata.
type SignUpParams struct {
	Email    string         `json:"email"`
	Password string         `json:"password"`
	Data     map[string]any `json:"data,omitempty"`
}

// SignUp creates an identity. Depending on the project's email confirmation
// setting GoTrue answers with a bare user or with a session wrapping one.
func (c *Client) SignUp(ctx context.Context, params SignUpParams) (models.Identity, error) {
	var raw json.RawMessage
	err := c.call(ctx, request{method: http.MethodPost, path: "/auth/v1/signup", body: params}, &raw)
	if err != nil {
		return models.Identity{}, err
	}

	var withSession struct {
		User *models.Identity `json:"user"`
	}
	if err := json.Unmarshal(raw, &withSession); err == nil && withSession.User != nil {
		return *withSession.User, nil
	}

	var user models.Identity
	if err := json.Unmarshal(raw, &user); err != nil {
		return models.Identity{}, fmt.Errorf("decode signup response: %w", err)
	}
	return user, nil
}

// SignInWithPassword runs the password grant.
func (c *Client) SignInWithPassword(ctx context.Context, email, password string) (models.Session, error) {
	var session models.Session
	err := c.call(ctx, request{
		method: http.MethodPost,
		path:   "/auth/v1/token",
		query:  url.Values{"grant_type": {"password"}},
		body:   map[string]string{"email": email, "password": password},
	}, &session)
	return session, err
}

// GetUser resolves the identity behind an access token. GoTrue validates the token.
func (c *Client) GetUser(ctx context.Context, accessToken string) (models.Identity, error) {
	var user models.Identity
	err := c.call(ctx, request{method: http.MethodGet, path: "/auth/v1/user", bearer: accessToken}, &user)
	return user, err
}

// ResetPasswordForEmail asks GoTrue to send a recovery email linking to redirectTo.
func (c *Client) ResetPasswordForEmail(ctx context.Context, email, redirectTo string) error {
	var query url.Values
	if redirectTo != "" {
		query = url.Values{"redirect_to": {redirectTo}}
	}
	return c.call(ctx, request{
		method: http.MethodPost,
		path:   "/auth/v1/recover",
		query:  query,
		body:   map[string]string{"email": email},
	}, nil)
}

// AdminDeleteUser removes an identity. It needs a client built with the
// service-role key.
func (c *Client) AdminDeleteUser(ctx context.Context, id string) error {
	return c.call(ctx, request{
		method: http.MethodDelete,
		path:   "/auth/v1/admin/users/" + url.PathEscape(id),
	}, nil)
}
