package almanac

import (
	"fmt"
	"strings"
)

// Mode selects how the seed list is read.
type Mode string

// Mode values.
const (
	// ModePoint treats every seed number as an individual value.
	ModePoint Mode = "point"
	// ModeRange treats the seed numbers as (start, count) pairs.
	ModeRange Mode = "range"
)

// ParseMode parses a mode name. The empty string selects ModePoint.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "point", "part1":
		return ModePoint, nil
	case "range", "part2":
		return ModeRange, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
	}
}

// String returns the mode name.
func (m Mode) String() string { return string(m) }
