package normalize

import (
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// Common date formats found in remittance exports. Slash dates are month-first.
var dateFormats = []string{
	"2006-01-02",
	"01/02/2006",
	"1/2/2006",
	"01-02-2006",
	"2006/01/02",
	"January 2, 2006",
	"Jan 2, 2006",
	"02-Jan-2006",
	"2-Jan-06",
	"2006-01-02 15:04:05",
	"01/02/2006 15:04",
	"1/2/2006 15:04",
	"2006-01-02T15:04:05Z",
	"2006-01-02T15:04:05",
	time.RFC3339,
}

// ParseDate attempts to parse a date string in multiple common formats.
// Returns nil if the input is empty or unparseable. The result is truncated
// to a calendar date in UTC.
func ParseDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, fmt := range dateFormats {
		if t, err := time.Parse(fmt, s); err == nil {
			d := calendarDate(t)
			return &d
		}
	}
	return nil
}

// ParseSpreadsheetDate behaves like ParseDate and additionally accepts an
// Excel serial day number, which is how xlsx stores raw date cells.
func ParseSpreadsheetDate(s string) *time.Time {
	if t := ParseDate(s); t != nil {
		return t
	}
	serial, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || serial <= 0 {
		return nil
	}
	t, err := excelize.ExcelDateToTime(serial, false)
	if err != nil {
		return nil
	}
	d := calendarDate(t)
	return &d
}

// Quarter returns the calendar quarter (1-4) of t.
func Quarter(t time.Time) int {
	return (int(t.Month())-1)/3 + 1
}

func calendarDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
