package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access methods for attendance records.
type AttendanceRepository interface {
	// Create inserts a new attendance record; the store assigns the ID
	Create(ctx context.Context, attendance Attendance) (Attendance, error)

	// GetByID retrieves attendance by ID joined with the employee name
	GetByID(ctx context.Context, id string) (Attendance, error)

	// ListByEmployeeAndDate returns every row of one employee on one date
	ListByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) ([]Attendance, error)

	// List retrieves attendance records ordered by date ascending
	List(ctx context.Context, filter AttendanceFilter) ([]Attendance, error)

	// ListDates returns the distinct dates in [from, to] that carry attendance
	ListDates(ctx context.Context, from, to time.Time) ([]time.Time, error)

	// Update overwrites times and status of an existing attendance record
	Update(ctx context.Context, attendance Attendance) error

	Delete(ctx context.Context, id string) error

	// CreateMissingForDate inserts an absence-pending row for every employee
	// without attendance on date and returns how many rows were added
	CreateMissingForDate(ctx context.Context, date time.Time) (int64, error)
}

// BreakRepository defines data access methods for break intervals.
type BreakRepository interface {
	Create(ctx context.Context, brk Break) (Break, error)
	GetByID(ctx context.Context, id string) (Break, error)
	ListByAttendanceID(ctx context.Context, attendanceID string) ([]Break, error)

	// ListByAttendanceIDs groups breaks by owning attendance ID
	ListByAttendanceIDs(ctx context.Context, attendanceIDs []string) (map[string][]Break, error)

	Update(ctx context.Context, brk Break) error
	Delete(ctx context.Context, id string) error
	DeleteByAttendanceID(ctx context.Context, attendanceID string) error
}
