package data

import (
	"context"
	"errors"
	"fmt"

	domainauth "github.com/nftheater/admin-api/internal/domain/auth"
	"github.com/nftheater/admin-api/internal/ports"
)

// AdminDirectory adapts AdminRepo to the profile directory port. Inactive
// administrators resolve as not found so deactivation locks them out on the
// next sign-in.
type AdminDirectory struct {
	repo *AdminRepo
}

var _ ports.ProfileDirectory = (*AdminDirectory)(nil)

// NewAdminDirectory wraps the repository.
func NewAdminDirectory(repo *AdminRepo) *AdminDirectory {
	return &AdminDirectory{repo: repo}
}

// ProfileByUID resolves the administrative profile for a provider UID.
func (d *AdminDirectory) ProfileByUID(ctx context.Context, uid string) (domainauth.Profile, error) {
	user, err := d.repo.GetByUID(ctx, uid)
	if err != nil {
		if errors.Is(err, ErrAdminUserNotFound) {
			return domainauth.Profile{}, ErrAdminUserNotFound
		}
		return domainauth.Profile{}, fmt.Errorf("resolve admin profile: %w", err)
	}
	if !user.IsActive {
		return domainauth.Profile{}, ErrAdminUserNotFound
	}
	return user.Profile(), nil
}
