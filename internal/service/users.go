package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/hongminglow/eventos-be/internal/apperr"
	"github.com/hongminglow/eventos-be/internal/metrics"
	"github.com/hongminglow/eventos-be/internal/models"
	"github.com/hongminglow/eventos-be/internal/storage"
)

// UserAdmin updates and deletes users by id.
type UserAdmin struct {
	profiles storage.ProfileStore
	admin    IdentityAdmin
	metrics  metrics.Recorder
}

// NewUserAdmin creates the admin operations. admin must be backed by the
// service-role credential.
func NewUserAdmin(profiles storage.ProfileStore, admin IdentityAdmin, rec metrics.Recorder) *UserAdmin {
	if rec == nil {
		rec = metrics.Nop{}
	}
	return &UserAdmin{profiles: profiles, admin: admin, metrics: rec}
}

// UpdateProfile patches the columns set in changes. An empty patch is a no-op.
// requester is the caller's token subject, empty when unknown; it is only logged.
func (a *UserAdmin) UpdateProfile(ctx context.Context, id, requester string, changes models.ProfileChanges) error {
	if id == "" {
		return apperr.Validation("id is required")
	}
	if requester != id {
		zerolog.Ctx(ctx).Warn().
			Str("target_id", id).
			Str("requester", requester).
			Msg("profile update without ownership check")
	}

	if changes.Empty() {
		return nil
	}

	err := a.profiles.UpdateProfile(ctx, id, changes)
	a.metrics.RecordProviderCall("profile_update", err)
	if err != nil {
		return apperr.Update(providerMessage(err), err)
	}
	return nil
}

// DeleteUser removes the profile row, then the identity. A failed first step
// skips the second. A failed second step leaves the identity without a row.
func (a *UserAdmin) DeleteUser(ctx context.Context, id string) error {
	if id == "" {
		return apperr.Validation("id is required")
	}

	err := a.profiles.DeleteProfile(ctx, id)
	a.metrics.RecordProviderCall("profile_delete", err)
	if err != nil {
		return apperr.ProfileDelete(providerMessage(err), err)
	}

	err = a.admin.AdminDeleteUser(ctx, id)
	a.metrics.RecordProviderCall("identity_delete", err)
	if err != nil {
		a.metrics.RecordPartialFailure("delete_user")
		zerolog.Ctx(ctx).Error().Err(err).
			Str("identity_id", id).
			Msg("identity delete failed after profile row was removed")
		return apperr.IdentityDelete(providerMessage(err), err)
	}
	return nil
}
