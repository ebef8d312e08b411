package shared

import (
	"strings"
	"time"
)

// DateLayout is the calendar-day format accepted on input and rendered on output
const DateLayout = "2006-01-02"

// ParseDate parses a calendar day in UTC. An empty value yields the zero time.
func ParseDate(field, value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, NewValidationError(field, "date must use the YYYY-MM-DD format")
	}
	return t, nil
}
