package postgresql

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/Rimhamzeh/Attendance-Management-System/internal/pkg/database"
)

//go:embed schema.sql
var schemaSQL string

// EnsureSchema creates the employee, attendance, breaks and admin_user
// tables when they are missing. Existing tables are left untouched.
func EnsureSchema(ctx context.Context, db *database.DB) error {
	if _, err := db.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}
