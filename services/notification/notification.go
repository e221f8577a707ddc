package notification

import (
	"context"
	"fmt"

	"firebase.google.com/go/v4/messaging"

	"github.com/mbendary2019/Shoporia-sub001/models"
)

// NotificationService delivers booking status pushes. Message rendering and
// localization live here, not in the scheduler.
type NotificationService interface {
	NotifyBookingStatus(ctx context.Context, event models.BookingStatusEvent) error
	NotifyReminder(ctx context.Context, payload models.ReminderPayload) error
}

// DeviceTokenSource resolves a customer id to their registered FCM tokens.
// The auth/profile subsystem owns device registration.
type DeviceTokenSource interface {
	DeviceTokens(ctx context.Context, customerID string) ([]string, error)
}

// FCMNotificationService sends pushes through Firebase Cloud Messaging.
type FCMNotificationService struct {
	Client *messaging.Client
	Tokens DeviceTokenSource
}

var statusTitles = map[models.BookingStatus]string{
	models.StatusPending:    "Booking received",
	models.StatusConfirmed:  "Booking confirmed!",
	models.StatusInProgress: "Your appointment has started",
	models.StatusCompleted:  "Service completed",
	models.StatusCancelled:  "Booking cancelled",
	models.StatusNoShow:     "Missed appointment",
}

// NotifyBookingStatus pushes a status-change message to the customer's
// devices.
func (s *FCMNotificationService) NotifyBookingStatus(ctx context.Context, event models.BookingStatusEvent) error {
	title, ok := statusTitles[event.NewStatus]
	if !ok {
		title = "Booking update"
	}
	body := fmt.Sprintf("%s (%s) is now %s.", event.ServiceName, event.BookingNumber, event.NewStatus)
	data := map[string]string{
		"type":          "booking_status",
		"bookingId":     event.BookingID,
		"bookingNumber": event.BookingNumber,
		"serviceName":   event.ServiceName,
		"newStatus":     string(event.NewStatus),
	}
	return s.push(ctx, event.CustomerID, title, body, data)
}

// NotifyReminder pushes the upcoming-appointment reminder.
func (s *FCMNotificationService) NotifyReminder(ctx context.Context, payload models.ReminderPayload) error {
	title := "Upcoming appointment"
	body := fmt.Sprintf("Your %s appointment (%s) is coming up at %s.",
		payload.ServiceName, payload.BookingNumber, models.TimeOfDay(payload.Start))
	data := map[string]string{
		"type":      "booking_reminder",
		"bookingId": payload.BookingID,
		"date":      payload.Date,
	}
	return s.push(ctx, payload.CustomerID, title, body, data)
}

func (s *FCMNotificationService) push(ctx context.Context, customerID, title, body string, data map[string]string) error {
	tokens, err := s.Tokens.DeviceTokens(ctx, customerID)
	if err != nil {
		return fmt.Errorf("could not resolve device tokens for %s: %w", customerID, err)
	}
	if len(tokens) == 0 {
		return nil
	}

	msg := &messaging.MulticastMessage{
		Tokens: tokens,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
	}
	if _, err := s.Client.SendEachForMulticast(ctx, msg); err != nil {
		return fmt.Errorf("fcm send failed: %w", err)
	}
	return nil
}
