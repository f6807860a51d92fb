package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/Rimhamzeh/Attendance-Management-System/internal/domain/admin"
	"github.com/Rimhamzeh/Attendance-Management-System/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type adminRepository struct {
	db *database.DB
}

func NewAdminRepository(db *database.DB) admin.AdminRepository {
	return &adminRepository{db: db}
}

// GetByUsername implements admin.AdminRepository.
func (r *adminRepository) GetByUsername(ctx context.Context, username string) (admin.AdminUser, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, username, password_hash, created_at, updated_at
		FROM admin_user
		WHERE username = $1
	`

	var a admin.AdminUser
	err := q.QueryRow(ctx, query, username).Scan(&a.ID, &a.Username, &a.PasswordHash, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return admin.AdminUser{}, admin.ErrAdminNotFound
		}
		return admin.AdminUser{}, fmt.Errorf("failed to get admin by username: %w", err)
	}
	return a, nil
}

// Create implements admin.AdminRepository.
func (r *adminRepository) Create(ctx context.Context, newAdmin admin.AdminUser) (admin.AdminUser, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO admin_user (username, password_hash)
		VALUES ($1, $2)
		RETURNING id, username, password_hash, created_at, updated_at
	`

	var created admin.AdminUser
	err := q.QueryRow(ctx, query, newAdmin.Username, newAdmin.PasswordHash).Scan(
		&created.ID, &created.Username, &created.PasswordHash, &created.CreatedAt, &created.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return admin.AdminUser{}, admin.ErrAdminUsernameExists
		}
		return admin.AdminUser{}, fmt.Errorf("failed to create admin: %w", err)
	}
	return created, nil
}

// ExistsByUsername implements admin.AdminRepository.
func (r *adminRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var exists bool
	err := q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM admin_user WHERE username = $1)`, username).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check admin username: %w", err)
	}
	return exists, nil
}
