package core

import (
	"context"

	"github.com/nftheater/admin-api/internal/domain/model"
)

// AdminUserRepository defines the interface for administrator account data
// operations.
type AdminUserRepository interface {
	Create(ctx context.Context, req *model.CreateAdminUserRequest) (*model.AdminUser, error)
	GetByUID(ctx context.Context, uid string) (*model.AdminUser, error)
	GetByEmail(ctx context.Context, email string) (*model.AdminUser, error)
	List(ctx context.Context, limit, offset int) ([]*model.AdminUser, error)
	Update(ctx context.Context, uid string, req model.UpdateAdminUserRequest) (*model.AdminUser, error)
	Deactivate(ctx context.Context, uid string) (bool, error)
	Delete(ctx context.Context, uid string) (bool, error)
}

// AdminUserRepositoryListWithOptions is an optional extension for filtered,
// sorted listing.
type AdminUserRepositoryListWithOptions interface {
	ListWithOptions(ctx context.Context, opts model.AdminUsersListOptions) ([]*model.AdminUser, error)
}
