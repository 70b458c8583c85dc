package debate

import (
	"fmt"
	"strconv"
	"strings"
)

// MalformedCredenceError reports a credence response that could not be
// parsed as a bare numeric percentage.
type MalformedCredenceError struct {
	Raw string
}

func (e *MalformedCredenceError) Error() string {
	return fmt.Sprintf("malformed credence response %q: expected a bare number between 0 and 100", e.Raw)
}

// ParseCredence parses a credence answer. The model is told to answer
// with a single number, but in practice responses carry whitespace, a
// trailing percent sign, or a trailing period; those decorations are
// stripped before parsing. Anything else is malformed, not a data
// variant.
func ParseCredence(raw string) (float64, error) {
	s := strings.TrimSpace(raw)
	s = strings.TrimRight(s, "%.")
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, &MalformedCredenceError{Raw: raw}
	}
	value, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, &MalformedCredenceError{Raw: raw}
	}
	if value < 0 || value > 100 {
		return 0, &MalformedCredenceError{Raw: raw}
	}
	return value, nil
}
