package scheduling

import "github.com/mbendary2019/Shoporia-sub001/models"

// countOverlapping returns how many of the given bookings still block time
// that intersects the window. Cancelled and no-show bookings never block.
func countOverlapping(window models.Interval, bookings []models.Booking) int {
	n := 0
	for i := range bookings {
		if !bookings[i].Status.Active() {
			continue
		}
		if window.Overlaps(bookings[i].Window()) {
			n++
		}
	}
	return n
}

// FilterAvailable removes every candidate slot whose overlapping active
// bookings have already consumed the service's per-slot capacity. With the
// default capacity of 1 a single active booking blocks the slot.
func FilterAvailable(candidates []models.Interval, bookings []models.Booking, capacity int) []models.Interval {
	if capacity < 1 {
		capacity = 1
	}
	free := make([]models.Interval, 0, len(candidates))
	for _, slot := range candidates {
		if countOverlapping(slot, bookings) < capacity {
			free = append(free, slot)
		}
	}
	return free
}

// WindowFree validates one explicitly requested window against the active
// booking set. This is the check run immediately before booking creation and
// again inside the creation transaction.
func WindowFree(window models.Interval, bookings []models.Booking, capacity int) bool {
	if capacity < 1 {
		capacity = 1
	}
	return countOverlapping(window, bookings) < capacity
}
