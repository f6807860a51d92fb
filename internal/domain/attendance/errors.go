package attendance

import "errors"

// Attendance domain errors
var (
	// Attendance time validation
	ErrTimeRequired          = errors.New("please enter both time in and time out")
	ErrInvalidTimeFormat     = errors.New("invalid time format")
	ErrTimeOutBeforeTimeIn   = errors.New("time out must be later than time in")
	ErrOvertimeBeforeTimeOut = errors.New("overtime must be after time out")
	ErrBreaksOutsideWindow   = errors.New("one or more breaks are outside the attendance time range")

	// Break validation, in the order the checks run
	ErrBreakTimeRequired       = errors.New("please enter both start and end times for the break")
	ErrAttendanceWindowMissing = errors.New("time in and time out must be set before adding breaks")
	ErrBreakInvalidRange       = errors.New("break end time must be after break start time")
	ErrBreakOutsideWindow      = errors.New("break time must be between time in and time out")
	ErrBreakOverlap            = errors.New("this break overlaps with an existing break")

	// General errors
	ErrAttendanceNotFound = errors.New("attendance record not found")
	ErrBreakNotFound      = errors.New("break not found")
)

// IsValidationError reports whether err is one of the local time checks
// that reject a mutation before the store is touched.
func IsValidationError(err error) bool {
	for _, target := range []error{
		ErrTimeRequired, ErrInvalidTimeFormat, ErrTimeOutBeforeTimeIn,
		ErrOvertimeBeforeTimeOut, ErrBreaksOutsideWindow,
		ErrBreakTimeRequired, ErrAttendanceWindowMissing, ErrBreakInvalidRange,
		ErrBreakOutsideWindow, ErrBreakOverlap,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
