package service

import (
	"context"
	"errors"

	"github.com/hongminglow/eventos-be/internal/apperr"
	"github.com/hongminglow/eventos-be/internal/models"
	"github.com/hongminglow/eventos-be/internal/storage"
)

// ProfileComposer merges the provider identity with its profile row.
type ProfileComposer struct {
	verifier   TokenVerifier
	profiles   storage.ProfileStore
	projection string
}

// Profile response projections.
const (
	ProjectionFull  = "full"
	ProjectionBasic = "basic"
)

// NewProfileComposer creates a composer. projection is ProjectionFull or
// ProjectionBasic.
func NewProfileComposer(verifier TokenVerifier, profiles storage.ProfileStore, projection string) *ProfileComposer {
	return &ProfileComposer{verifier: verifier, profiles: profiles, projection: projection}
}

// GetProfile returns the merged profile of the token's owner. An empty token
// fails before any downstream call.
func (c *ProfileComposer) GetProfile(ctx context.Context, token string) (models.Profile, error) {
	if token == "" {
		return models.Profile{}, apperr.Unauthorized("not authenticated", nil)
	}

	user, err := c.verifier.VerifyToken(ctx, token)
	if err != nil {
		if _, ok := apperr.As(err); ok {
			return models.Profile{}, err
		}
		return models.Profile{}, apperr.Unauthorized("invalid token", err)
	}

	row, err := c.profiles.GetProfile(ctx, user.ID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.Profile{}, apperr.NotFound("profile not found")
		}
		return models.Profile{}, apperr.Query(providerMessage(err), err)
	}

	return compose(user, row, c.projection), nil
}

func compose(user models.Identity, row models.UserProfile, projection string) models.Profile {
	profile := models.Profile{
		ID:    user.ID,
		Email: user.Email,
		Name:  row.Name,
		Phone: row.Phone,
		Role:  row.Role,
	}
	if profile.Email == "" {
		profile.Email = row.Email
	}
	if projection == ProjectionBasic {
		return profile
	}

	profile.Aud = user.Aud
	profile.CreatedAt = user.CreatedAt
	profile.UpdatedAt = user.UpdatedAt
	profile.LastSignInAt = user.LastSignInAt
	profile.EmailConfirmedAt = user.EmailConfirmedAt
	profile.AppMetadata = user.AppMetadata
	profile.UserMetadata = user.UserMetadata
	profile.Identities = user.Identities
	return profile
}
