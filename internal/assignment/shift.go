package assignment

import (
	"regexp"
	"strconv"
	"strings"

	assignmenterrors "github.com/Studio-Butterfly-HQ/butter-chat-restapi/internal/assignment/errors"
)

var shiftTimeRe = regexp.MustCompile(`^([01]\d|2[0-3]):([0-5]\d):([0-5]\d)$`)

// ValidateShiftWindow checks a HH:MM:SS shift pair: either both boundaries
// are present or neither, and the end must be strictly after the start.
// Comparison is at minute granularity, same-day.
func ValidateShiftWindow(shiftStart, shiftEnd *string) error {
	start := deref(shiftStart)
	end := deref(shiftEnd)

	if (start == "") != (end == "") {
		return assignmenterrors.ErrShiftWindowIncomplete
	}
	if start == "" {
		return nil
	}

	if !shiftTimeRe.MatchString(start) || !shiftTimeRe.MatchString(end) {
		return assignmenterrors.ErrShiftTimeFormat
	}

	if minutesOfDay(end) <= minutesOfDay(start) {
		return assignmenterrors.ErrShiftWindowInverted
	}

	return nil
}

func minutesOfDay(t string) int {
	parts := strings.Split(t, ":")
	hour, _ := strconv.Atoi(parts[0])
	min, _ := strconv.Atoi(parts[1])
	return hour*60 + min
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
