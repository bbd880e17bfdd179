package service

import (
	"context"

	"github.com/nftheater/admin-api/internal/core"
	"github.com/nftheater/admin-api/internal/domain/model"
)

// AdminUserServiceOptions groups dependencies for AdminUserService.
type AdminUserServiceOptions struct {
	Repo core.AdminUserRepository
}

// AdminUserService orchestrates administrator account management.
type AdminUserService struct {
	repo core.AdminUserRepository
}

// NewAdminUserService constructs a new AdminUserService.
func NewAdminUserService(opts AdminUserServiceOptions) *AdminUserService {
	return &AdminUserService{repo: opts.Repo}
}

// Create registers a new administrator account.
func (s *AdminUserService) Create(ctx context.Context, req *model.CreateAdminUserRequest) (*model.AdminUser, error) {
	return s.repo.Create(ctx, req)
}

// GetByUID retrieves an administrator by provider UID.
func (s *AdminUserService) GetByUID(ctx context.Context, uid string) (*model.AdminUser, error) {
	return s.repo.GetByUID(ctx, uid)
}

// GetByEmail retrieves an administrator by email.
func (s *AdminUserService) GetByEmail(ctx context.Context, email string) (*model.AdminUser, error) {
	return s.repo.GetByEmail(ctx, email)
}

// List returns a page of administrators.
func (s *AdminUserService) List(ctx context.Context, limit, offset int) ([]*model.AdminUser, error) {
	return s.repo.List(ctx, limit, offset)
}

// ListWithOptions returns administrators using optional filters when the
// repository supports it; otherwise falls back to unfiltered list.
func (s *AdminUserService) ListWithOptions(
	ctx context.Context,
	opts model.AdminUsersListOptions,
) ([]*model.AdminUser, error) {
	repo, ok := any(s.repo).(core.AdminUserRepositoryListWithOptions)
	if !ok {
		return s.repo.List(ctx, opts.Limit, opts.Offset)
	}

	return repo.ListWithOptions(ctx, normalizeAdminListOptions(opts))
}

// Update applies a partial update to an administrator account.
func (s *AdminUserService) Update(
	ctx context.Context,
	uid string,
	req model.UpdateAdminUserRequest,
) (*model.AdminUser, error) {
	return s.repo.Update(ctx, uid, req)
}

// Deactivate disables an administrator account without removing the row.
func (s *AdminUserService) Deactivate(ctx context.Context, uid string) (bool, error) {
	return s.repo.Deactivate(ctx, uid)
}

// Delete removes an administrator account.
func (s *AdminUserService) Delete(ctx context.Context, uid string) (bool, error) {
	return s.repo.Delete(ctx, uid)
}

func normalizeAdminListOptions(opts model.AdminUsersListOptions) model.AdminUsersListOptions {
	if opts.Limit <= 0 {
		opts.Limit = 50
	}
	if opts.Offset < 0 {
		opts.Offset = 0
	}
	if opts.Sort == "" {
		opts.Sort = "created_at"
	}
	if opts.Dir == "" {
		opts.Dir = "desc"
	}

	return opts
}
