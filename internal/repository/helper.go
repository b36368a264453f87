package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// ParseTime parses a date string in "2006-01-02" or RFC3339 format.
func ParseTime(str string) (time.Time, error) {
	returnTime, err := time.Parse("2006-01-02", str)
	if err != nil {
		returnTime, err = time.Parse(time.RFC3339, str)
		if err != nil {
			return time.Time{}, fmt.Errorf("failed to parse date: %w", err)
		}
	}
	return returnTime.UTC(), nil
}

// parseDecimal converts a TEXT money column back into a decimal.
// Monetary values are stored as strings so no precision is lost.
func parseDecimal(column, raw string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("failed to parse %s value %q: %w", column, raw, err)
	}
	return d, nil
}

// scanTime converts a DATETIME column, stored as RFC3339 text, back into a time.
func scanTime(column, raw string) (time.Time, error) {
	t, err := ParseTime(raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse %s: %w", column, err)
	}
	return t, nil
}

// scanNullTime converts a nullable DATETIME column into *time.Time.
func scanNullTime(column string, raw sql.NullString) (*time.Time, error) {
	if !raw.Valid || raw.String == "" {
		return nil, nil
	}
	t, err := scanTime(column, raw.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// formatTime renders a time for a DATETIME column.
func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

// formatNullTime renders an optional time for a nullable DATETIME column.
func formatNullTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return formatTime(*t)
}
