package admin

import "errors"

var (
	ErrAdminNotFound          = errors.New("admin user not found")
	ErrAdminUsernameExists    = errors.New("admin username already registered")
	ErrAdminPrivilegeRequired = errors.New("admin privilege required")
)
