package attendance

import (
	"testing"
	"time"

	"github.com/Rimhamzeh/Attendance-Management-System/internal/domain/attendance"
	"github.com/stretchr/testify/assert"
)

var testDay = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func strPtr(s string) *string {
	return &s
}

func TestComputeHours(t *testing.T) {
	calc := NewHoursCalculator(DefaultStandardWorkHours, DefaultFreeBreakMinutes)

	cases := []struct {
		name         string
		timeIn       *string
		timeOut      *string
		breakMinutes int
		want         attendance.Hours
	}{
		{
			name:    "standard day",
			timeIn:  strPtr("09:00:00"),
			timeOut: strPtr("18:00:00"),
			want:    attendance.Hours{RegularHours: 9, OvertimeHours: 0, TotalHoursWorked: 9},
		},
		{
			name:    "two hours overtime",
			timeIn:  strPtr("09:00:00"),
			timeOut: strPtr("20:00:00"),
			want:    attendance.Hours{RegularHours: 9, OvertimeHours: 2, TotalHoursWorked: 11},
		},
		{
			name:         "break beyond allowance is deducted from total only",
			timeIn:       strPtr("09:00:00"),
			timeOut:      strPtr("18:00:00"),
			breakMinutes: 45,
			want:         attendance.Hours{RegularHours: 9, OvertimeHours: 0, TotalHoursWorked: 8.75},
		},
		{
			name:         "break within allowance is free",
			timeIn:       strPtr("09:00:00"),
			timeOut:      strPtr("17:00:00"),
			breakMinutes: 30,
			want:         attendance.Hours{RegularHours: 8, OvertimeHours: 0, TotalHoursWorked: 8},
		},
		{
			name:    "overnight shift",
			timeIn:  strPtr("22:00:00"),
			timeOut: strPtr("06:00:00"),
			want:    attendance.Hours{RegularHours: 8, OvertimeHours: 0, TotalHoursWorked: 8},
		},
		{
			name:    "zero length shift",
			timeIn:  strPtr("09:00:00"),
			timeOut: strPtr("09:00:00"),
			want:    attendance.Hours{},
		},
		{
			name:         "breaks longer than the shift clamp to zero",
			timeIn:       strPtr("09:00:00"),
			timeOut:      strPtr("10:00:00"),
			breakMinutes: 200,
			want:         attendance.Hours{RegularHours: 1, OvertimeHours: 0, TotalHoursWorked: 0},
		},
		{
			name:    "missing time out",
			timeIn:  strPtr("09:00:00"),
			timeOut: nil,
			want:    attendance.Hours{},
		},
		{
			name:    "empty time in",
			timeIn:  strPtr(""),
			timeOut: strPtr("18:00:00"),
			want:    attendance.Hours{},
		},
		{
			name:    "unparsable time",
			timeIn:  strPtr("nine"),
			timeOut: strPtr("18:00:00"),
			want:    attendance.Hours{},
		},
		{
			name:    "HH:MM input and rounding",
			timeIn:  strPtr("09:00"),
			timeOut: strPtr("17:20"),
			want:    attendance.Hours{RegularHours: 8.33, OvertimeHours: 0, TotalHoursWorked: 8.33},
		},
		{
			name:    "seconds are truncated to whole minutes",
			timeIn:  strPtr("09:00:00"),
			timeOut: strPtr("09:30:59"),
			want:    attendance.Hours{RegularHours: 0.5, OvertimeHours: 0, TotalHoursWorked: 0.5},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := calc.ComputeHours(testDay, tc.timeIn, tc.timeOut, tc.breakMinutes)
			assert.InDelta(t, tc.want.RegularHours, got.RegularHours, 1e-9)
			assert.InDelta(t, tc.want.OvertimeHours, got.OvertimeHours, 1e-9)
			assert.InDelta(t, tc.want.TotalHoursWorked, got.TotalHoursWorked, 1e-9)
		})
	}
}

func TestComputeHours_TotalNeverExceedsRegularPlusOvertime(t *testing.T) {
	calc := NewHoursCalculator(DefaultStandardWorkHours, DefaultFreeBreakMinutes)
	clocks := []string{"00:00:00", "06:15:00", "09:00:00", "12:30:00", "18:00:00", "21:45:00", "23:59:00"}

	for _, in := range clocks {
		for _, out := range clocks {
			for _, brk := range []int{0, 15, 30, 31, 90, 2000} {
				got := calc.ComputeHours(testDay, strPtr(in), strPtr(out), brk)
				assert.GreaterOrEqual(t, got.RegularHours, 0.0)
				assert.GreaterOrEqual(t, got.OvertimeHours, 0.0)
				assert.GreaterOrEqual(t, got.TotalHoursWorked, 0.0)
				assert.LessOrEqual(t, got.TotalHoursWorked, got.RegularHours+got.OvertimeHours+1e-9,
					"in=%s out=%s break=%d", in, out, brk)
				assert.LessOrEqual(t, got.RegularHours, float64(DefaultStandardWorkHours))
				if brk <= DefaultFreeBreakMinutes {
					assert.InDelta(t, got.RegularHours+got.OvertimeHours, got.TotalHoursWorked, 0.011)
				}
			}
		}
	}
}

func TestComputeHours_CustomWorkday(t *testing.T) {
	calc := NewHoursCalculator(8, 0)
	got := calc.ComputeHours(testDay, strPtr("08:00:00"), strPtr("17:00:00"), 30)
	assert.Equal(t, attendance.Hours{RegularHours: 8, OvertimeHours: 1, TotalHoursWorked: 8.5}, got)
}

func TestNewHoursCalculator_Defaults(t *testing.T) {
	calc := NewHoursCalculator(0, -1)
	got := calc.ComputeHours(testDay, strPtr("09:00:00"), strPtr("18:00:00"), 30)
	assert.Equal(t, attendance.Hours{RegularHours: 9, OvertimeHours: 0, TotalHoursWorked: 9}, got)
}

func TestComputeForRecord(t *testing.T) {
	calc := NewHoursCalculator(DefaultStandardWorkHours, DefaultFreeBreakMinutes)
	record := attendance.Attendance{
		Date:    testDay,
		TimeIn:  strPtr("09:00:00"),
		TimeOut: strPtr("18:00:00"),
		Status:  attendance.StatusPresent,
		Breaks: []attendance.Break{
			{StartTime: "12:00:00", EndTime: "12:45:00"},
		},
	}

	got := calc.ComputeForRecord(record)
	assert.Equal(t, attendance.Hours{RegularHours: 9, OvertimeHours: 0, TotalHoursWorked: 8.75}, got)

	record.Status = attendance.StatusAbsent
	assert.Equal(t, attendance.Hours{}, calc.ComputeForRecord(record))
}
