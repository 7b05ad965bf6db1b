package importer

// convert.go provides cell cleanup and type coercion for manifest data.
//
// Broker files arrive in whatever shape the partner's export tool produces:
//   - Multiple date formats (US, EU, ISO, 2-digit years)
//   - 12- and 24-hour clock times with and without seconds
//   - Mileage with unit suffixes and thousands separators
//   - Excel formula prefixes (="value") and stray quotes
//
// All ToPg* functions return pgtype values with Valid=false for empty/invalid
// input, letting the database handle NULLs.

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

// numericRegex validates that a string is a valid numeric format after cleanup.
var numericRegex = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?$`)

// TwoDigitYearPivot defines how 2-digit years are interpreted. Years that
// would land more than this many years in the future are assumed to be in the
// previous century.
var TwoDigitYearPivot = 20

var (
	twoDigitYearLayouts = []string{
		"1/2/06", "01/02/06", "1-2-06", "1.2.06", "01.02.06",
	}
	fourDigitYearLayouts = []string{
		"1/2/2006", "01/02/2006", "1-2-2006", "01-02-2006", "1.2.2006", "01.02.2006",
		"2006-01-02", "2006/01/02", "2006.01.02",
		"Jan 2, 2006", "2 Jan 2006",
		"20060102",
	}
	clockLayouts = []string{
		"15:04", "15:04:05", "3:04 PM", "3:04PM", "3:04 pm", "3:04pm",
		"3 PM", "3PM", "1504",
	}
)

// CleanCell removes common manifest artifacts from a cell value:
// trims whitespace, strips the Excel formula prefix (="..."), and removes
// surrounding quotes.
func CleanCell(s string) string {
	s = strings.TrimSpace(s)

	if strings.HasPrefix(s, "=\"") && strings.HasSuffix(s, "\"") {
		s = s[2 : len(s)-1]
	} else if strings.HasPrefix(s, "=") {
		s = s[1:]
	}

	s = strings.Trim(s, `"'`)

	return strings.TrimSpace(s)
}

// ToPgText converts a string to pgtype.Text.
// Returns invalid if the string is empty or only whitespace.
func ToPgText(s string) pgtype.Text {
	s = strings.TrimSpace(s)
	if s == "" {
		return pgtype.Text{Valid: false}
	}
	return pgtype.Text{String: s, Valid: true}
}

// ToPgDate converts a string to pgtype.Date.
// Supports multiple date formats and handles 2-digit years with pivot.
func ToPgDate(s string) pgtype.Date {
	s = strings.TrimSpace(s)
	if s == "" {
		return pgtype.Date{Valid: false}
	}

	// 4-digit year layouts first, they are unambiguous
	for _, layout := range fourDigitYearLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return pgtype.Date{Time: t, Valid: true}
		}
	}

	currentYear := time.Now().Year()
	pivotYear := currentYear + TwoDigitYearPivot

	for _, layout := range twoDigitYearLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			if t.Year() > pivotYear {
				t = t.AddDate(-100, 0, 0)
			}
			return pgtype.Date{Time: t, Valid: true}
		}
	}

	return pgtype.Date{Valid: false}
}

// ParseClock parses a time-of-day string in common broker formats.
// Returns the hour and minute, or ok=false if the value is not a clock time.
func ParseClock(s string) (hour, minute int, ok bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, 0, false
	}

	for _, layout := range clockLayouts {
		t, err := time.Parse(layout, strings.ToUpper(s))
		if err == nil {
			return t.Hour(), t.Minute(), true
		}
	}
	return 0, 0, false
}

// ToPgTimestamp builds a scheduled timestamp from a trip date and an optional
// time-of-day string. When the time is absent or unparseable the timestamp
// falls back to the date at midnight. Invalid if the date is invalid.
func ToPgTimestamp(dateStr, timeStr string) pgtype.Timestamp {
	d := ToPgDate(dateStr)
	if !d.Valid {
		return pgtype.Timestamp{Valid: false}
	}

	ts := d.Time
	if h, m, ok := ParseClock(timeStr); ok {
		ts = time.Date(ts.Year(), ts.Month(), ts.Day(), h, m, 0, 0, time.UTC)
	}
	return pgtype.Timestamp{Time: ts, Valid: true}
}

// ToPgNumeric converts a string to pgtype.Numeric.
// Handles thousands separators, unit suffixes ("12.4 mi", "35 min"), and
// accounting format (parentheses for negative).
func ToPgNumeric(s string) pgtype.Numeric {
	s = strings.TrimSpace(s)
	if s == "" {
		return pgtype.Numeric{Valid: false}
	}

	isNegative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		isNegative = true
		s = strings.TrimSpace(s[1 : len(s)-1])
	}

	s = strings.ReplaceAll(s, ",", "")
	lower := strings.ToLower(s)
	for _, suffix := range []string{"miles", "mile", "mins", "min", "mi", "m"} {
		if strings.HasSuffix(lower, suffix) {
			s = strings.TrimSpace(s[:len(s)-len(suffix)])
			break
		}
	}

	if isNegative {
		s = "-" + s
	}

	if !numericRegex.MatchString(s) {
		return pgtype.Numeric{Valid: false}
	}

	var n pgtype.Numeric
	if err := n.Scan(s); err != nil {
		return pgtype.Numeric{Valid: false}
	}

	return n
}

// ToPgUUID converts a string to pgtype.UUID.
// Returns invalid if the string is empty or not a valid UUID.
func ToPgUUID(s string) pgtype.UUID {
	if s == "" {
		return pgtype.UUID{Valid: false}
	}
	parsed, err := uuid.Parse(s)
	if err != nil {
		return pgtype.UUID{Valid: false}
	}
	return pgtype.UUID{Bytes: parsed, Valid: true}
}

// PgUUIDToString converts a pgtype.UUID to its string representation.
// Returns empty string if the UUID is invalid.
func PgUUIDToString(u pgtype.UUID) string {
	if !u.Valid {
		return ""
	}
	return uuid.UUID(u.Bytes).String()
}
