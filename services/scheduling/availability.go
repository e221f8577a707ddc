package scheduling

import (
	"time"

	"github.com/mbendary2019/Shoporia-sub001/models"
)

// DayAvailabilityFor resolves the weekly template entry for a concrete date.
// The weekday is computed from the date itself, never from locale-aware
// formatting, so results are identical across runtimes. Days missing from the
// template are closed.
func DayAvailabilityFor(weekly models.WeeklyAvailability, date time.Time) models.DayAvailability {
	day, ok := weekly[models.WeekdayKey(date.Weekday())]
	if !ok || !day.IsAvailable {
		return models.DayAvailability{IsAvailable: false}
	}
	return day
}
