package tasks

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"

	"github.com/mbendary2019/Shoporia-sub001/config"
	"github.com/mbendary2019/Shoporia-sub001/models"
)

const TypeSendReminder = "reminder:send"

// NewReminderTask packs a reminder payload into an asynq task scheduled for
// fireAt.
func NewReminderTask(payload models.ReminderPayload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeSendReminder, b)
	opts := []asynq.Option{asynq.ProcessAt(fireAt)}

	return task, opts, nil
}

// ReminderQueue enqueues booking reminders on the shared Redis queue.
type ReminderQueue struct {
	client *asynq.Client
}

// NewReminderQueue builds a queue client from the application config.
func NewReminderQueue() *ReminderQueue {
	return &ReminderQueue{
		client: asynq.NewClient(asynq.RedisClientOpt{
			Addr:     config.AppConfig.RedisAddr,
			Password: config.AppConfig.RedisPassword,
			DB:       config.AppConfig.RedisReminderQueueDB,
		}),
	}
}

// ScheduleReminder queues the push ReminderLeadMinutes before the appointment
// start. Appointments closer than the lead time fire immediately.
func (q *ReminderQueue) ScheduleReminder(payload models.ReminderPayload, startAt time.Time) error {
	fireAt := startAt.Add(-time.Duration(config.AppConfig.ReminderLeadMinutes) * time.Minute)
	if fireAt.Before(time.Now()) {
		fireAt = time.Now()
	}
	task, opts, err := NewReminderTask(payload, fireAt)
	if err != nil {
		return err
	}
	_, err = q.client.Enqueue(task, opts...)
	return err
}
