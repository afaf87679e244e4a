package parsers

import (
	"strconv"
	"strings"
	"time"

	"shipvoid-backend/internal/timeutil"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// Text layouts accepted for dates and timestamps. Fractional seconds are
// accepted after any layout with a seconds field.
var timeLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02 15:04",
	"2006-01-02",
	"2006/01/02 15:04:05",
	"2006/01/02",
	"1/2/2006 15:04:05",
	"1/2/2006 15:04",
	"1/2/2006 3:04:05 PM",
	"1/2/2006 3:04 PM",
	"1/2/2006",
	"01-02-2006",
	"02-Jan-2006",
	"Jan 2, 2006",
}

// Excel serial numbers outside this range are not treated as dates
const (
	minExcelSerial = 1
	maxExcelSerial = 2958465 // 9999-12-31
)

// ParseTimestamp parses a text timestamp. An empty value is a valid null;
// ok is false only when a non-empty value matched no layout.
func ParseTimestamp(value string) (t *time.Time, ok bool) {
	value = strings.TrimSpace(value)
	if value == "" || isNullToken(value) {
		return nil, true
	}
	for _, layout := range timeLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return &parsed, true
		}
	}
	return nil, false
}

// ParseDate parses a date cell, accepting Excel serial numbers as well as
// the text layouts. The time-of-day is discarded.
func ParseDate(value string) (*time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" || isNullToken(value) {
		return nil, true
	}
	if serial, err := strconv.ParseFloat(value, 64); err == nil {
		if serial < minExcelSerial || serial > maxExcelSerial {
			return nil, false
		}
		parsed, err := excelize.ExcelDateToTime(serial, false)
		if err != nil {
			return nil, false
		}
		d := timeutil.DateOnly(parsed)
		return &d, true
	}

	parsed, ok := ParseTimestamp(value)
	if parsed == nil {
		return nil, ok
	}
	d := timeutil.DateOnly(*parsed)
	return &d, true
}

// ParseDecimal parses a money or quantity cell. Thousands separators and a
// leading currency sign are tolerated.
func ParseDecimal(value string) (decimal.NullDecimal, bool) {
	value = strings.TrimSpace(value)
	if value == "" || isNullToken(value) {
		return decimal.NullDecimal{}, true
	}
	value = strings.TrimPrefix(value, "$")
	value = strings.ReplaceAll(value, ",", "")
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.NullDecimal{}, false
	}
	return decimal.NewNullDecimal(d), true
}

// isNullToken matches the placeholders exporters write for missing values
func isNullToken(value string) bool {
	switch strings.ToLower(value) {
	case "nan", "nat", "null", "none", "n/a":
		return true
	}
	return false
}
