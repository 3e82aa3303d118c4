package chat

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ParseDateExpr accepts a full date (YYYY-MM-DD or YYYY/MM/DD) or a short
// month-day pair (M-D or M/D, assumed current year) and returns the
// canonical "YYYY-MM-DD" form. Dates before today are rejected.
func ParseDateExpr(expr string, now time.Time) (string, error) {
	expr = strings.TrimSpace(expr)
	normalized := strings.ReplaceAll(expr, "/", "-")
	parts := strings.Split(normalized, "-")

	var year, month, day int
	var err error
	switch len(parts) {
	case 3:
		if year, err = strconv.Atoi(parts[0]); err != nil {
			return "", fmt.Errorf("invalid year in %q", expr)
		}
		if month, err = strconv.Atoi(parts[1]); err != nil {
			return "", fmt.Errorf("invalid month in %q", expr)
		}
		if day, err = strconv.Atoi(parts[2]); err != nil {
			return "", fmt.Errorf("invalid day in %q", expr)
		}
	case 2:
		year = now.Year()
		if month, err = strconv.Atoi(parts[0]); err != nil {
			return "", fmt.Errorf("invalid month in %q", expr)
		}
		if day, err = strconv.Atoi(parts[1]); err != nil {
			return "", fmt.Errorf("invalid day in %q", expr)
		}
	default:
		return "", fmt.Errorf("unrecognized date %q", expr)
	}

	date := time.Date(year, time.Month(month), day, 0, 0, 0, 0, now.Location())
	// time.Date normalizes out-of-range components; reject anything that moved.
	if date.Year() != year || int(date.Month()) != month || date.Day() != day {
		return "", fmt.Errorf("no such date %q", expr)
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if date.Before(today) {
		return "", fmt.Errorf("date %q is in the past", expr)
	}
	return date.Format("2006-01-02"), nil
}
