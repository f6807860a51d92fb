package attendance

import (
	"math"
	"time"

	"github.com/Rimhamzeh/Attendance-Management-System/internal/domain/attendance"
	"github.com/Rimhamzeh/Attendance-Management-System/internal/pkg/timeutil"
)

const (
	DefaultStandardWorkHours = 9
	DefaultFreeBreakMinutes  = 30
)

// HoursCalculator derives regular, overtime and total worked hours from a
// day's clock-in, clock-out and break time.
type HoursCalculator struct {
	standardWorkHours float64
	freeBreakMinutes  int
}

// NewHoursCalculator falls back to the 9-hour workday and 30-minute break
// allowance for non-positive (respectively negative) arguments.
func NewHoursCalculator(standardWorkHours float64, freeBreakMinutes int) *HoursCalculator {
	if standardWorkHours <= 0 {
		standardWorkHours = DefaultStandardWorkHours
	}
	if freeBreakMinutes < 0 {
		freeBreakMinutes = DefaultFreeBreakMinutes
	}
	return &HoursCalculator{
		standardWorkHours: standardWorkHours,
		freeBreakMinutes:  freeBreakMinutes,
	}
}

// ComputeHours never fails: missing or unparsable times yield all zeros, and
// a clock-out earlier than clock-in is read as an overnight shift.
func (c *HoursCalculator) ComputeHours(date time.Time, timeIn, timeOut *string, totalBreakMinutes int) attendance.Hours {
	if timeIn == nil || timeOut == nil || *timeIn == "" || *timeOut == "" {
		return attendance.Hours{}
	}

	in, err := timeutil.ClockOn(date, *timeIn)
	if err != nil {
		return attendance.Hours{}
	}
	out, err := timeutil.ClockOn(date, *timeOut)
	if err != nil {
		return attendance.Hours{}
	}
	if out.Before(in) {
		out = out.AddDate(0, 0, 1)
	}

	totalMinutesWorked := int(out.Sub(in) / time.Minute)
	workedHours := float64(totalMinutesWorked) / 60

	overtimeHours := math.Max(0, workedHours-c.standardWorkHours)
	regularHours := workedHours - overtimeHours

	effectiveBreakHours := float64(max(0, totalBreakMinutes-c.freeBreakMinutes)) / 60
	totalHoursWorked := math.Max(0, regularHours+overtimeHours-effectiveBreakHours)

	return attendance.Hours{
		RegularHours:     timeutil.RoundHours(regularHours),
		OvertimeHours:    timeutil.RoundHours(overtimeHours),
		TotalHoursWorked: timeutil.RoundHours(totalHoursWorked),
	}
}

// ComputeForRecord applies ComputeHours to a stored row. Absent rows count
// zero hours whatever times they carry.
func (c *HoursCalculator) ComputeForRecord(a attendance.Attendance) attendance.Hours {
	if a.Status == attendance.StatusAbsent {
		return attendance.Hours{}
	}
	return c.ComputeHours(a.Date, a.TimeIn, a.TimeOut, TotalBreakMinutes(a.Breaks))
}

