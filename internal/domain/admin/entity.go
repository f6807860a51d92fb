package admin

import "time"

// AdminUser is a dashboard operator stored in the admin_user table.
type AdminUser struct {
	ID           string
	Username     string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
