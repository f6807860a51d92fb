package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/Rimhamzeh/Attendance-Management-System/internal/domain/admin"
	"github.com/Rimhamzeh/Attendance-Management-System/internal/domain/attendance"
	"github.com/Rimhamzeh/Attendance-Management-System/internal/domain/auth"
	"github.com/Rimhamzeh/Attendance-Management-System/internal/domain/employee"
	"github.com/Rimhamzeh/Attendance-Management-System/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// Time and break checks carry a message meant for the operator
	if attendance.IsValidationError(err) {
		BadRequest(w, err.Error(), nil)
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrTokenRevoked):
		Unauthorized(w, "Token revoked")
	case errors.Is(err, admin.ErrAdminPrivilegeRequired):
		Forbidden(w, "Admin privilege required")
	case errors.Is(err, admin.ErrAdminUsernameExists):
		Conflict(w, "Admin username already registered")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmployeeExists):
		Conflict(w, err.Error())

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrBreakNotFound):
		NotFound(w, "Break not found")

	// Default
	default:
		slog.Error("Unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
