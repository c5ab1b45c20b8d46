package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrNoExpiry is returned for tokens without an exp claim.
	ErrNoExpiry = errors.New("token has no expiry")
	// ErrExpired is returned by Remaining for tokens past their exp claim.
	ErrExpired = errors.New("token expired")
)

// Claims is the subset of a provider access token this service reads.
type Claims struct {
	Subject   string
	Email     string
	ExpiresAt time.Time
}

// TokenInspector reads claims from provider-issued JWTs. The provider remains
// the authority on token validity; the inspector only bounds cookie lifetimes.
// With a secret configured it also checks the HS256 signature.
type TokenInspector struct {
	secret []byte
	now    func() time.Time
}

// NewTokenInspector creates an inspector. An empty secret skips signature checks.
func NewTokenInspector(secret string) *TokenInspector {
	t := &TokenInspector{now: time.Now}
	if secret != "" {
		t.secret = []byte(secret)
	}
	return t
}

// Inspect parses token and returns its claims.
func (t *TokenInspector) Inspect(token string) (Claims, error) {
	mapClaims := jwt.MapClaims{}
	var err error
	if t.secret == nil {
		_, _, err = jwt.NewParser().ParseUnverified(token, mapClaims)
	} else {
		_, err = jwt.ParseWithClaims(token, mapClaims, func(tok *jwt.Token) (any, error) {
			return t.secret, nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(t.now))
	}
	if err != nil {
		return Claims{}, fmt.Errorf("parse access token: %w", err)
	}

	claims := Claims{}
	claims.Subject, _ = mapClaims.GetSubject()
	if email, ok := mapClaims["email"].(string); ok {
		claims.Email = email
	}
	exp, err := mapClaims.GetExpirationTime()
	if err != nil {
		return Claims{}, fmt.Errorf("read exp claim: %w", err)
	}
	if exp != nil {
		claims.ExpiresAt = exp.Time
	}
	return claims, nil
}

// Remaining returns how long token stays valid. It fails with ErrExpired once
// exp has passed, and with other errors for tokens that cannot be parsed or
// carry no exp claim.
func (t *TokenInspector) Remaining(token string) (time.Duration, error) {
	claims, err := t.Inspect(token)
	if errors.Is(err, jwt.ErrTokenExpired) {
		return 0, ErrExpired
	}
	if err != nil {
		return 0, err
	}
	if claims.ExpiresAt.IsZero() {
		return 0, ErrNoExpiry
	}
	ttl := claims.ExpiresAt.Sub(t.now())
	if ttl <= 0 {
		return 0, ErrExpired
	}
	return ttl, nil
}
