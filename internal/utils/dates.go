package utils

import (
	"fmt"
	"time"

	"github.com/cajadiaria/caja_diaria_app/internal/apperrors"
)

// BusinessDateLayout is the wire format for ledger dates.
const BusinessDateLayout = "2006-01-02"

// ParseBusinessDate parses a yyyy-mm-dd date string. Malformed input maps to
// a validation error so handlers surface a 400, not a 500.
func ParseBusinessDate(value string) (time.Time, error) {
	t, err := time.Parse(BusinessDateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid date %q, expected yyyy-mm-dd", apperrors.ErrValidation, value)
	}
	return t, nil
}

// TruncateToDate drops the time-of-day component in the given location.
func TruncateToDate(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)
}

// FormatBusinessDate renders a date in the wire format.
func FormatBusinessDate(t time.Time) string {
	return t.Format(BusinessDateLayout)
}
