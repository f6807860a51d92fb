package report

import (
	"github.com/Rimhamzeh/Attendance-Management-System/internal/domain/attendance"
	"github.com/Rimhamzeh/Attendance-Management-System/internal/pkg/validator"
)

// PlaceholderDate marks a monthly row for an employee with no attendance.
const PlaceholderDate = "—"

// ========================================
// DAILY ATTENDANCE REPORT
// ========================================

type DailyReportRequest struct {
	Date   string `json:"date"` // YYYY-MM-DD
	Search string `json:"search,omitempty"`
}

func (r *DailyReportRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Date) {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date is required",
		})
	} else if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type DailyReport struct {
	Date        string        `json:"date"`
	GeneratedAt string        `json:"generated_at"`
	Records     []DailyRecord `json:"records"`
}

type DailyRecord struct {
	EmployeeID   string                     `json:"employee_id,omitempty"`
	EmployeeName string                     `json:"employee_name"`
	TimeIn       *string                    `json:"time_in"`
	TimeOut      *string                    `json:"time_out"`
	OverTime     *string                    `json:"over_time"`
	Breaks       []attendance.BreakResponse `json:"breaks"`
	BreakMinutes int                        `json:"break_minutes"`

	// Status is nil when the employee has no row for the date or only
	// absence-pending ones
	Status *string `json:"status"`

	RegularHours     float64 `json:"regular_hours"`
	OvertimeHours    float64 `json:"overtime_hours"`
	TotalHours       float64 `json:"total_hours"`
	TotalHoursWorked float64 `json:"total_hours_worked"`

	RegularDisplay     string `json:"regular_display"`
	OvertimeDisplay    string `json:"overtime_display"`
	TotalWorkedDisplay string `json:"total_worked_display"`
}

// ========================================
// MONTHLY ATTENDANCE REPORT
// ========================================

type MonthlyReportRequest struct {
	Month  string `json:"month"` // YYYY-MM
	Search string `json:"search,omitempty"`
}

func (r *MonthlyReportRequest) Validate() error {
	return validateMonth(r.Month)
}

type MonthlyReport struct {
	Month       string       `json:"month"`
	PeriodStart string       `json:"period_start"`
	PeriodEnd   string       `json:"period_end"`
	GeneratedAt string       `json:"generated_at"`
	Rows        []MonthlyRow `json:"rows"`
}

type MonthlyRow struct {
	EmployeeID   string  `json:"employee_id"`
	EmployeeName string  `json:"employee_name"`
	Date         string  `json:"date"`
	TimeIn       *string `json:"time_in"`
	TimeOut      *string `json:"time_out"`
	OverTime     *string `json:"over_time"`
	Status       string  `json:"status,omitempty"`
	Placeholder  bool    `json:"placeholder"`
	BreakMinutes int     `json:"break_minutes"`

	RegularHours     float64 `json:"regular_hours"`
	OvertimeHours    float64 `json:"overtime_hours"`
	TotalHours       float64 `json:"total_hours"`
	TotalHoursWorked float64 `json:"total_hours_worked"`
}

// ========================================
// REPORT CALENDAR
// ========================================

type ReportDatesRequest struct {
	Month string `json:"month"` // YYYY-MM
}

func (r *ReportDatesRequest) Validate() error {
	return validateMonth(r.Month)
}

type ReportDates struct {
	Month string   `json:"month"`
	Dates []string `json:"dates"`
}

func validateMonth(month string) error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(month) {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month is required",
		})
	} else if _, ok := validator.IsValidMonth(month); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month must be in YYYY-MM format",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
