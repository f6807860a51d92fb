package attendance

import (
	"time"
)

type Status string

const (
	StatusPresent Status = "present"
	StatusAbsent  Status = "absent"
)

// ParseStatus maps a stored status onto the enum. Rows written before the
// status column existed carry NULL or an empty string and count as present.
func ParseStatus(s string) Status {
	if Status(s) == StatusAbsent {
		return StatusAbsent
	}
	return StatusPresent
}

func (s Status) IsValid() bool {
	return s == StatusPresent || s == StatusAbsent
}

type Attendance struct {
	ID         string
	EmployeeID string
	Date       time.Time
	TimeIn     *string // HH:MM:SS
	TimeOut    *string // HH:MM:SS
	OverTime   *string // HH:MM:SS, end of the overtime period that starts at TimeOut
	Status     Status
	CreatedAt  time.Time
	UpdatedAt  time.Time

	// DTO / Join
	EmployeeName *string
	Breaks       []Break
}

// HasWindow reports whether both clock-in and clock-out are recorded.
func (a *Attendance) HasWindow() bool {
	return a.TimeIn != nil && *a.TimeIn != "" && a.TimeOut != nil && *a.TimeOut != ""
}

// IsPending reports an absence-pending row: no times recorded and not yet
// marked absent.
func (a *Attendance) IsPending() bool {
	return a.Status != StatusAbsent && isBlank(a.TimeIn) && isBlank(a.TimeOut) && isBlank(a.OverTime)
}

type Break struct {
	ID           string
	AttendanceID string
	StartTime    string // HH:MM:SS
	EndTime      string // HH:MM:SS
	CreatedAt    time.Time
}

// Hours is the derived worked-time breakdown of one attendance day.
type Hours struct {
	RegularHours     float64 `json:"regular_hours"`
	OvertimeHours    float64 `json:"overtime_hours"`
	TotalHoursWorked float64 `json:"total_hours_worked"`
}

func isBlank(s *string) bool {
	return s == nil || *s == ""
}
