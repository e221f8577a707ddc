package models

import (
	"fmt"
	"time"
)

// DayAvailability holds one weekday's open-hours template.
type DayAvailability struct {
	IsAvailable bool       `bson:"isAvailable" json:"isAvailable"`
	Slots       []Interval `bson:"slots,omitempty" json:"slots,omitempty"`
}

// WeeklyAvailability maps lowercase English weekday names ("monday" ..
// "sunday") to that day's template. A missing entry means the day is closed.
type WeeklyAvailability map[string]DayAvailability

// WeekdayKey converts a time.Weekday to the fixed map key. The mapping is
// explicit so availability lookups never depend on the runtime locale.
func WeekdayKey(wd time.Weekday) string {
	switch wd {
	case time.Monday:
		return "monday"
	case time.Tuesday:
		return "tuesday"
	case time.Wednesday:
		return "wednesday"
	case time.Thursday:
		return "thursday"
	case time.Friday:
		return "friday"
	case time.Saturday:
		return "saturday"
	default:
		return "sunday"
	}
}

var weekdayKeys = map[string]bool{
	"monday": true, "tuesday": true, "wednesday": true, "thursday": true,
	"friday": true, "saturday": true, "sunday": true,
}

// Validate checks every day template: unknown weekday keys are rejected,
// closed days must carry no slots, and each day's slots must be well-formed,
// sorted ascending by start and pairwise non-overlapping.
func (w WeeklyAvailability) Validate() error {
	for day, avail := range w {
		if !weekdayKeys[day] {
			return fmt.Errorf("unknown weekday %q", day)
		}
		if !avail.IsAvailable {
			if len(avail.Slots) > 0 {
				return fmt.Errorf("%s: unavailable day must have no slots", day)
			}
			continue
		}
		for i, iv := range avail.Slots {
			if !iv.Valid() {
				return fmt.Errorf("%s: invalid interval %s-%s", day, iv.Start, iv.End)
			}
			if i > 0 && avail.Slots[i-1].End > iv.Start {
				return fmt.Errorf("%s: intervals must be sorted and non-overlapping", day)
			}
		}
	}
	return nil
}
