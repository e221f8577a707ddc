package models

import (
	"fmt"
	"strconv"
)

// TimeOfDay is a wall-clock time expressed as minutes since midnight (0-1439).
// "HH:MM" strings are converted to and from this representation at the HTTP
// boundary only; everything below the handlers works in minutes.
type TimeOfDay int

const MinutesPerDay = 1440

// ParseTimeOfDay parses a zero-padded "HH:MM" string into minutes since
// midnight. The shape is enforced strictly: exactly five characters, no
// trailing text, no unpadded hours or minutes.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	if len(s) != 5 || s[2] != ':' {
		return 0, fmt.Errorf("invalid time %q: expected HH:MM", s)
	}
	for _, i := range [4]int{0, 1, 3, 4} {
		if s[i] < '0' || s[i] > '9' {
			return 0, fmt.Errorf("invalid time %q: expected HH:MM", s)
		}
	}
	h, _ := strconv.Atoi(s[:2])
	m, _ := strconv.Atoi(s[3:])
	if h > 23 || m > 59 {
		return 0, fmt.Errorf("invalid time %q: out of range", s)
	}
	return TimeOfDay(h*60 + m), nil
}

// Valid reports whether t falls inside a single calendar day.
func (t TimeOfDay) Valid() bool {
	return t >= 0 && t < MinutesPerDay
}

// String renders t as "HH:MM".
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", int(t)/60, int(t)%60)
}

// Interval is a half-open [Start, End) window within one day.
type Interval struct {
	Start TimeOfDay `bson:"start" json:"start"`
	End   TimeOfDay `bson:"end" json:"end"`
}

// Valid reports whether the interval is well-formed: both endpoints within
// the day and Start strictly before End.
func (iv Interval) Valid() bool {
	return iv.Start.Valid() && iv.End > iv.Start && iv.End <= MinutesPerDay
}

// Duration returns the interval length in minutes.
func (iv Interval) Duration() int {
	return int(iv.End - iv.Start)
}

// Overlaps reports whether two half-open intervals intersect. Touching
// endpoints do not overlap: a booking ending at 10:00 is compatible with one
// starting at 10:00.
func (iv Interval) Overlaps(other Interval) bool {
	return iv.Start < other.End && other.Start < iv.End
}
