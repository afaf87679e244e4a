package timeutil

import (
	"strings"
	"time"
)

// Location is the zone used for load timestamps and DC monthly folders.
// Extract timestamps carry no zone and are kept as wall-clock values.
var Location = time.Local

// Now returns the current time in Location
func Now() time.Time {
	return time.Now().In(Location)
}

// DateOnly drops the time-of-day, keeping the calendar date as midnight UTC
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// SameDate reports whether both times fall on the same calendar date
func SameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// FormatDate renders a nullable date as YYYY-MM-DD, or "" when nil
func FormatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(DateLayout)
}

// FormatDateTime renders a nullable timestamp as YYYY-MM-DD HH:MM:SS, or "" when nil
func FormatDateTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(DateTimeLayout)
}

// MonthFolder returns the "YYYY" and "MON YYYY" folder names used by DCs
// that file their forecasts by month, e.g. ("2026", "JAN 2026").
func MonthFolder(t time.Time) (string, string) {
	t = t.In(Location)
	year := t.Format("2006")
	month := t.Format("Jan 2006")
	return year, strings.ToUpper(month)
}

// Common layouts
const (
	DateLayout      = "2006-01-02"
	TimeLayout      = "15:04:05"
	DateTimeLayout  = "2006-01-02 15:04:05"
	FileStampLayout = "20060102_1504"
)
