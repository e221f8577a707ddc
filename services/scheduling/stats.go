package scheduling

import "github.com/mbendary2019/Shoporia-sub001/models"

// Aggregate folds a snapshot of bookings into dashboard counters in one pass.
// Revenue sums the total of bookings that are both completed and paid;
// pending or cancelled bookings never contribute.
func Aggregate(bookings []models.Booking) models.StoreStats {
	var stats models.StoreStats
	for i := range bookings {
		b := &bookings[i]
		stats.Total++
		switch b.Status {
		case models.StatusPending:
			stats.Pending++
		case models.StatusConfirmed:
			stats.Confirmed++
		case models.StatusCompleted:
			stats.Completed++
			if b.PaymentStatus == models.PaymentPaid {
				stats.Revenue += b.Total
			}
		case models.StatusCancelled:
			stats.Cancelled++
		}
	}
	return stats
}
