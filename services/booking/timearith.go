package booking

import (
	"fmt"
	"strconv"
	"strings"
)

// ToMinutes parses a zero-padded 24-hour "HH:MM" string into minutes from
// midnight. Malformed input yields a FormatError.
func ToMinutes(hhmm string) (int, error) {
	parts := strings.Split(hhmm, ":")
	if len(parts) != 2 {
		return 0, NewFormatError("time", fmt.Sprintf("invalid time %q, expected HH:MM", hhmm))
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, NewFormatError("time", fmt.Sprintf("invalid hour in %q", hhmm))
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, NewFormatError("time", fmt.Sprintf("invalid minute in %q", hhmm))
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, NewFormatError("time", fmt.Sprintf("time %q out of range", hhmm))
	}
	return h*60 + m, nil
}

// Clock renders minutes from midnight back into "HH:MM".
func Clock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// Overlaps reports whether two half-open intervals intersect. Touching
// endpoints do not overlap, so back-to-back bookings are legal.
func Overlaps(aStart, aEnd, bStart, bEnd int) bool {
	return !(aEnd <= bStart || aStart >= bEnd)
}

// DurationHours computes the length of a start/end pair in fractional hours.
func DurationHours(start, end string) (float64, error) {
	s, err := ToMinutes(start)
	if err != nil {
		return 0, err
	}
	e, err := ToMinutes(end)
	if err != nil {
		return 0, err
	}
	return float64(e-s) / 60, nil
}
