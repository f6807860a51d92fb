package attendance

import (
	"context"
	"time"
)

// AttendanceService defines business logic for attendance operations
type AttendanceService interface {
	// CreateAttendance records a day's clock times and breaks for an employee
	CreateAttendance(ctx context.Context, req CreateAttendanceRequest) (AttendanceResponse, error)

	// GetAttendance retrieves a single attendance record by ID with its breaks
	GetAttendance(ctx context.Context, id string) (AttendanceResponse, error)

	// ListAttendance retrieves attendance records with breaks and employee names
	ListAttendance(ctx context.Context, filter AttendanceFilter) ([]AttendanceResponse, error)

	// UpdateAttendance edits times or status of an attendance record
	UpdateAttendance(ctx context.Context, req UpdateAttendanceRequest) (AttendanceResponse, error)

	// MarkAbsent flags an employee absent on a date, creating the row if needed
	MarkAbsent(ctx context.Context, req MarkAbsentRequest) (AttendanceResponse, error)

	// DeleteAttendance deletes the record's breaks, then the record
	DeleteAttendance(ctx context.Context, id string) error

	ListBreaks(ctx context.Context, attendanceID string) ([]BreakResponse, error)
	AddBreak(ctx context.Context, req AddBreakRequest) (BreakResponse, error)
	UpdateBreak(ctx context.Context, req UpdateBreakRequest) (BreakResponse, error)
	DeleteBreak(ctx context.Context, attendanceID string, breakID string) error

	// EnsureDailyRows seeds absence-pending rows for employees with no
	// attendance on date
	EnsureDailyRows(ctx context.Context, date time.Time) (int64, error)
}
