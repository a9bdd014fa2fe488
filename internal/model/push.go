package model

import "time"

// Reminder source tags recorded in the sent-reminder log.
const (
	ReminderSourceSchedule = "schedule"
	ReminderSourceEvent    = "event"
)

// PushSubscription is a browser push endpoint registered for reminder
// delivery.
type PushSubscription struct {
	ID         int64     `json:"id"`
	Endpoint   string    `json:"endpoint"`
	P256dhKey  string    `json:"p256dh_key"`
	AuthKey    string    `json:"auth_key"`
	DeviceName string    `json:"device_name"`
	CreatedAt  time.Time `json:"created_at"`
}
