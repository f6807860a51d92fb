package attendance

import (
	"github.com/Rimhamzeh/Attendance-Management-System/internal/domain/attendance"
	"github.com/Rimhamzeh/Attendance-Management-System/internal/pkg/timeutil"
)

// Overlaps reports whether [start, end) intersects any break other than the
// one identified by excludeID. Touching endpoints do not overlap.
func Overlaps(start, end string, existing []attendance.Break, excludeID string) bool {
	startM := timeutil.ToMinutes(start)
	endM := timeutil.ToMinutes(end)

	for _, br := range existing {
		if excludeID != "" && br.ID == excludeID {
			continue
		}
		brStartM := timeutil.ToMinutes(br.StartTime)
		brEndM := timeutil.ToMinutes(br.EndTime)
		if brStartM < 0 || brEndM < 0 {
			continue
		}
		if startM < brEndM && endM > brStartM {
			return true
		}
	}
	return false
}

// WithinWindow reports whether [start, end] lies inside [windowStart, windowEnd].
func WithinWindow(start, end, windowStart, windowEnd string) bool {
	return timeutil.ToMinutes(start) >= timeutil.ToMinutes(windowStart) &&
		timeutil.ToMinutes(end) <= timeutil.ToMinutes(windowEnd)
}

// TotalBreakMinutes sums break durations. Breaks whose end is not after
// their start, or that do not parse, contribute nothing.
func TotalBreakMinutes(breaks []attendance.Break) int {
	total := 0
	for _, br := range breaks {
		start := timeutil.ToMinutes(br.StartTime)
		end := timeutil.ToMinutes(br.EndTime)
		if start < 0 || end < 0 {
			continue
		}
		if end > start {
			total += end - start
		}
	}
	return total
}

// ValidateBreak runs the checks a break must pass before it is written:
// both times present, attendance window recorded, positive duration,
// inside the window, no overlap with the other breaks of the record.
func ValidateBreak(start, end string, timeIn, timeOut *string, existing []attendance.Break, excludeID string) error {
	start = timeutil.NormalizeTime(start)
	end = timeutil.NormalizeTime(end)

	if start == "" || end == "" {
		return attendance.ErrBreakTimeRequired
	}
	if timeIn == nil || timeOut == nil || *timeIn == "" || *timeOut == "" {
		return attendance.ErrAttendanceWindowMissing
	}

	startM := timeutil.ToMinutes(start)
	endM := timeutil.ToMinutes(end)
	if startM < 0 || endM < 0 || timeutil.ToMinutes(*timeIn) < 0 || timeutil.ToMinutes(*timeOut) < 0 {
		return attendance.ErrInvalidTimeFormat
	}

	if endM <= startM {
		return attendance.ErrBreakInvalidRange
	}
	if !WithinWindow(start, end, *timeIn, *timeOut) {
		return attendance.ErrBreakOutsideWindow
	}
	if Overlaps(start, end, existing, excludeID) {
		return attendance.ErrBreakOverlap
	}
	return nil
}

// ValidateAttendanceTimes checks an attendance window before it is written:
// both times present, clock-out after clock-in, overtime (when set) after
// clock-out, and every existing break still inside the window.
func ValidateAttendanceTimes(timeIn, timeOut, overTime string, breaks []attendance.Break) error {
	timeIn = timeutil.NormalizeTime(timeIn)
	timeOut = timeutil.NormalizeTime(timeOut)
	overTime = timeutil.NormalizeTime(overTime)

	if timeIn == "" || timeOut == "" {
		return attendance.ErrTimeRequired
	}

	inM := timeutil.ToMinutes(timeIn)
	outM := timeutil.ToMinutes(timeOut)
	if inM < 0 || outM < 0 {
		return attendance.ErrInvalidTimeFormat
	}
	if outM <= inM {
		return attendance.ErrTimeOutBeforeTimeIn
	}

	if overTime != "" {
		otM := timeutil.ToMinutes(overTime)
		if otM < 0 {
			return attendance.ErrInvalidTimeFormat
		}
		if otM <= outM {
			return attendance.ErrOvertimeBeforeTimeOut
		}
	}

	for _, br := range breaks {
		if !WithinWindow(br.StartTime, br.EndTime, timeIn, timeOut) {
			return attendance.ErrBreaksOutsideWindow
		}
	}
	return nil
}
