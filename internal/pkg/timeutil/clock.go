// Package timeutil holds naive wall-clock helpers shared by the attendance
// core, the DTO layer and the report builder. No time zones are involved:
// a clock string is a time of day and a date is a calendar day.
package timeutil

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	DateLayout  = "2006-01-02"
	MonthLayout = "2006-01"
	ClockLayout = "15:04:05"
)

var ErrInvalidClock = errors.New("invalid time of day")

// NormalizeTime zero-pads the hour and minute components and drops seconds:
// "9:5" -> "09:05", "18:00:00" -> "18:00". Empty input yields empty output;
// input without a colon is returned as is.
func NormalizeTime(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if !strings.Contains(raw, ":") {
		return raw
	}
	parts := strings.Split(raw, ":")
	return pad2(parts[0]) + ":" + pad2(parts[1])
}

// ToMinutes converts a clock string to minutes since midnight
// (hours*60 + minutes). Seconds are ignored. Returns -1 when the input is
// not a valid time of day.
func ToMinutes(t string) int {
	h, m, _, err := parseClock(t)
	if err != nil {
		return -1
	}
	return h*60 + m
}

// ToStoreClock converts UI input (H:M, HH:MM or HH:MM:SS) to the
// zero-padded HH:MM:SS form used at the store boundary.
func ToStoreClock(raw string) (string, error) {
	h, m, s, err := parseClock(raw)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s), nil
}

// ClockOn anchors a clock string to a calendar date.
func ClockOn(date time.Time, clock string) (time.Time, error) {
	h, m, s, err := parseClock(clock)
	if err != nil {
		return time.Time{}, err
	}
	y, mo, d := date.Date()
	return time.Date(y, mo, d, h, m, s, 0, time.UTC), nil
}

func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, strings.TrimSpace(s))
}

func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// MonthBounds returns the first and last calendar day of the month that
// contains t.
func MonthBounds(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, -1)
}

// RoundHours rounds to two decimal places, half away from zero.
func RoundHours(hours float64) float64 {
	return decimal.NewFromFloat(hours).Round(2).InexactFloat64()
}

// FormatHours renders fractional hours as "8h45m". NaN renders as "—".
func FormatHours(hours float64) string {
	if math.IsNaN(hours) {
		return "—"
	}
	whole := math.Floor(hours)
	minutes := int(math.Round((hours - whole) * 60))
	if minutes == 60 {
		whole++
		minutes = 0
	}
	return fmt.Sprintf("%dh%02dm", int(whole), minutes)
}

// FormatMinutes renders a minute count as "1h05m".
func FormatMinutes(minutes int) string {
	return fmt.Sprintf("%dh%02dm", minutes/60, minutes%60)
}

func parseClock(raw string) (h, m, s int, err error) {
	parts := strings.Split(strings.TrimSpace(raw), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, 0, 0, ErrInvalidClock
	}
	values := make([]int, 3)
	limits := []int{23, 59, 59}
	for i, p := range parts {
		if p == "" || len(p) > 2 {
			return 0, 0, 0, ErrInvalidClock
		}
		v, convErr := strconv.Atoi(p)
		if convErr != nil || v < 0 || v > limits[i] {
			return 0, 0, 0, ErrInvalidClock
		}
		values[i] = v
	}
	return values[0], values[1], values[2], nil
}

func pad2(s string) string {
	if len(s) >= 2 {
		return s
	}
	return strings.Repeat("0", 2-len(s)) + s
}
