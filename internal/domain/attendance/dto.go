package attendance

import (
	"github.com/Rimhamzeh/Attendance-Management-System/internal/pkg/validator"
)

// ========================================
// ATTENDANCE DTOs
// ========================================

type BreakInput struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

type CreateAttendanceRequest struct {
	EmployeeID string       `json:"employee_id"`
	Date       string       `json:"date"` // YYYY-MM-DD
	TimeIn     string       `json:"time_in"`
	TimeOut    string       `json:"time_out"`
	OverTime   *string      `json:"over_time,omitempty"`
	Breaks     []BreakInput `json:"breaks,omitempty"`
}

func (r *CreateAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "please select an employee",
		})
	} else if !validator.IsValidUUID(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id must be a valid UUID",
		})
	}

	errs = append(errs, validateDate("date", r.Date)...)
	errs = append(errs, validateClock("time_in", r.TimeIn)...)
	errs = append(errs, validateClock("time_out", r.TimeOut)...)
	if r.OverTime != nil {
		errs = append(errs, validateClock("over_time", *r.OverTime)...)
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateAttendanceRequest struct {
	ID       string  `json:"-"`
	TimeIn   *string `json:"time_in"`
	TimeOut  *string `json:"time_out"`
	OverTime *string `json:"over_time"`
	Status   *string `json:"status,omitempty"`
}

func (r *UpdateAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	errs = append(errs, validateID("id", r.ID)...)

	if r.TimeIn != nil {
		errs = append(errs, validateClock("time_in", *r.TimeIn)...)
	}
	if r.TimeOut != nil {
		errs = append(errs, validateClock("time_out", *r.TimeOut)...)
	}
	if r.OverTime != nil {
		errs = append(errs, validateClock("over_time", *r.OverTime)...)
	}
	if r.Status != nil && !Status(*r.Status).IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of: present, absent",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type MarkAbsentRequest struct {
	EmployeeID string `json:"employee_id"`
	Date       string `json:"date"`
}

func (r *MarkAbsentRequest) Validate() error {
	var errs validator.ValidationErrors

	errs = append(errs, validateID("employee_id", r.EmployeeID)...)
	if validator.IsEmpty(r.Date) {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date is required",
		})
	} else {
		errs = append(errs, validateDate("date", r.Date)...)
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type AttendanceFilter struct {
	EmployeeID *string `json:"employee_id,omitempty"`
	Date       *string `json:"date,omitempty"`       // YYYY-MM-DD
	StartDate  *string `json:"start_date,omitempty"` // YYYY-MM-DD
	EndDate    *string `json:"end_date,omitempty"`   // YYYY-MM-DD
	Status     *string `json:"status,omitempty"`
}

func (f *AttendanceFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.EmployeeID != nil {
		errs = append(errs, validateID("employee_id", *f.EmployeeID)...)
	}
	if f.Date != nil {
		errs = append(errs, validateDate("date", *f.Date)...)
	}
	if f.StartDate != nil {
		errs = append(errs, validateDate("start_date", *f.StartDate)...)
	}
	if f.EndDate != nil {
		errs = append(errs, validateDate("end_date", *f.EndDate)...)
	}
	if f.Status != nil && !Status(*f.Status).IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of: present, absent",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type AttendanceResponse struct {
	ID           string          `json:"id"`
	EmployeeID   string          `json:"employee_id"`
	EmployeeName string          `json:"employee_name"`
	Date         string          `json:"date"`
	TimeIn       *string         `json:"time_in"`
	TimeOut      *string         `json:"time_out"`
	OverTime     *string         `json:"over_time"`
	Status       string          `json:"status"`
	Breaks       []BreakResponse `json:"breaks"`
	BreakMinutes int             `json:"break_minutes"`
	Hours        Hours           `json:"hours"`
	CreatedAt    string          `json:"created_at"`
	UpdatedAt    string          `json:"updated_at"`
}

// ========================================
// BREAK DTOs
// ========================================

type AddBreakRequest struct {
	AttendanceID string `json:"-"`
	StartTime    string `json:"start_time"`
	EndTime      string `json:"end_time"`
}

func (r *AddBreakRequest) Validate() error {
	var errs validator.ValidationErrors

	errs = append(errs, validateID("attendance_id", r.AttendanceID)...)
	errs = append(errs, validateClock("start_time", r.StartTime)...)
	errs = append(errs, validateClock("end_time", r.EndTime)...)

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateBreakRequest struct {
	AttendanceID string `json:"-"`
	BreakID      string `json:"-"`
	StartTime    string `json:"start_time"`
	EndTime      string `json:"end_time"`
}

func (r *UpdateBreakRequest) Validate() error {
	var errs validator.ValidationErrors

	errs = append(errs, validateID("attendance_id", r.AttendanceID)...)
	errs = append(errs, validateID("break_id", r.BreakID)...)
	errs = append(errs, validateClock("start_time", r.StartTime)...)
	errs = append(errs, validateClock("end_time", r.EndTime)...)

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type BreakResponse struct {
	ID           string `json:"id"`
	AttendanceID string `json:"attendance_id"`
	StartTime    string `json:"start_time"`
	EndTime      string `json:"end_time"`
}

// validateClock only rejects malformed values; missing values are left to
// the ordered time checks so each gets its own message.
func validateClock(field, value string) validator.ValidationErrors {
	if validator.IsEmpty(value) || validator.IsValidClock(value) {
		return nil
	}
	return validator.ValidationErrors{{
		Field:   field,
		Message: field + " must be in HH:MM or HH:MM:SS format",
	}}
}

func validateDate(field, value string) validator.ValidationErrors {
	if validator.IsEmpty(value) {
		return nil
	}
	if _, ok := validator.IsValidDate(value); !ok {
		return validator.ValidationErrors{{
			Field:   field,
			Message: field + " must be in YYYY-MM-DD format",
		}}
	}
	return nil
}

func validateID(field, value string) validator.ValidationErrors {
	if validator.IsEmpty(value) {
		return validator.ValidationErrors{{Field: field, Message: field + " is required"}}
	}
	if !validator.IsValidUUID(value) {
		return validator.ValidationErrors{{Field: field, Message: field + " must be a valid UUID"}}
	}
	return nil
}
