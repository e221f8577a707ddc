package cron

import (
	"context"
	"encoding/json"
	"log"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"github.com/mbendary2019/Shoporia-sub001/config"
	"github.com/mbendary2019/Shoporia-sub001/models"
	"github.com/mbendary2019/Shoporia-sub001/services/notification"
	"github.com/mbendary2019/Shoporia-sub001/services/scheduling"
	"github.com/mbendary2019/Shoporia-sub001/services/tasks"
	"github.com/mbendary2019/Shoporia-sub001/utils"
)

// InitReminderWorker runs the async reminder worker in the background.
func InitReminderWorker(scheduler scheduling.Service, notifSvc notification.NotificationService) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeSendReminder, handleReminderTask(scheduler, notifSvc))

	go func() {
		if err := srv.Run(mux); err != nil {
			log.Fatalf("reminder worker failed: %v", err)
		}
	}()
}

// handleReminderTask sends the reminder push unless the booking was cancelled
// or marked no-show after the reminder was queued. Cancellations never
// dequeue; the status re-check here makes that safe.
func handleReminderTask(scheduler scheduling.Service, notifSvc notification.NotificationService) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		logger := utils.GetLogger()

		var payload models.ReminderPayload
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			logger.Error("malformed reminder payload", zap.Error(err))
			return nil // not retryable
		}

		booking, err := scheduler.GetBooking(ctx, payload.BookingID)
		if err != nil {
			logger.Warn("reminder for unknown booking",
				zap.String("bookingId", payload.BookingID), zap.Error(err))
			return nil
		}
		if !booking.Status.Active() || booking.Status == models.StatusCompleted {
			return nil
		}

		if err := notifSvc.NotifyReminder(ctx, payload); err != nil {
			logger.Warn("reminder push failed",
				zap.String("bookingId", payload.BookingID), zap.Error(err))
			return err // retry with backoff
		}
		return nil
	}
}
