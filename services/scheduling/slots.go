package scheduling

import "github.com/mbendary2019/Shoporia-sub001/models"

// GenerateSlots derives the bookable slots for one day from its open-hours
// template. Each open interval is packed greedily left to right: a slot of
// exactly `duration` minutes is emitted, then the cursor advances past the
// slot plus `buffer` minutes, until the next slot would overrun the interval.
// A trailing gap shorter than the duration is discarded rather than offered
// as a shorter slot, and slots never span two open intervals even when they
// touch. Both rules are deliberate so regenerating a day is reproducible.
func GenerateSlots(day models.DayAvailability, duration, buffer int) []models.Interval {
	if !day.IsAvailable || duration <= 0 {
		return nil
	}
	if buffer < 0 {
		buffer = 0
	}

	var slots []models.Interval
	for _, open := range day.Slots {
		for cursor := open.Start; cursor+models.TimeOfDay(duration) <= open.End; {
			end := cursor + models.TimeOfDay(duration)
			slots = append(slots, models.Interval{Start: cursor, End: end})
			cursor = end + models.TimeOfDay(buffer)
		}
	}
	return slots
}
