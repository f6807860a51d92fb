package admin

import "context"

type AdminRepository interface {
	// GetByUsername matches the username exactly
	GetByUsername(ctx context.Context, username string) (AdminUser, error)
	Create(ctx context.Context, newAdmin AdminUser) (AdminUser, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
}
