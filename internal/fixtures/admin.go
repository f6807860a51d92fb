package fixtures

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Rimhamzeh/Attendance-Management-System/internal/domain/admin"
	"github.com/Rimhamzeh/Attendance-Management-System/internal/service/auth"
)

// SeedAdmin creates the first dashboard administrator when the username is
// not taken yet. An empty username disables seeding.
func SeedAdmin(ctx context.Context, adminRepo admin.AdminRepository, username, password string) (bool, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return false, nil
	}

	exists, err := adminRepo.ExistsByUsername(ctx, username)
	if err != nil {
		return false, fmt.Errorf("failed to check seeded admin: %w", err)
	}
	if exists {
		slog.Debug("Admin already seeded", "username", username)
		return false, nil
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return false, fmt.Errorf("failed to hash admin password: %w", err)
	}

	if _, err := adminRepo.Create(ctx, admin.AdminUser{Username: username, PasswordHash: hash}); err != nil {
		return false, fmt.Errorf("failed to seed admin: %w", err)
	}

	slog.Info("Seeded admin user", "username", username)
	return true, nil
}
