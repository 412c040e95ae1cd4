package amqp

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

type NotificationAction string

const (
	ActionSchedule NotificationAction = "schedule"
	ActionCancel   NotificationAction = "cancel"
)

// ReminderNotificationMessage asks the delivery worker to arm or disarm the
// notification for one reminder. Title, Body and TriggerAt are empty on cancel.
type ReminderNotificationMessage struct {
	Action     NotificationAction `json:"action"`
	ReminderID string             `json:"reminder_id"`
	Title      string             `json:"title,omitempty"`
	Body       string             `json:"body,omitempty"`
	TriggerAt  time.Time          `json:"trigger_at,omitzero"`
	Timestamp  time.Time          `json:"timestamp"`
}

func NewScheduleMessage(reminderID, title, body string, triggerAt time.Time) *ReminderNotificationMessage {
	return &ReminderNotificationMessage{
		Action:     ActionSchedule,
		ReminderID: reminderID,
		Title:      title,
		Body:       body,
		TriggerAt:  triggerAt,
		Timestamp:  time.Now(),
	}
}

func NewCancelMessage(reminderID string) *ReminderNotificationMessage {
	return &ReminderNotificationMessage{
		Action:     ActionCancel,
		ReminderID: reminderID,
		Timestamp:  time.Now(),
	}
}

func (m *ReminderNotificationMessage) Validate() error {
	if m.ReminderID == "" {
		return errors.New("reminder_id is required")
	}
	switch m.Action {
	case ActionCancel:
		return nil
	case ActionSchedule:
		if m.TriggerAt.IsZero() {
			return errors.New("trigger_at is required for schedule")
		}
		return nil
	default:
		return fmt.Errorf("unknown action %q", m.Action)
	}
}

func (m *ReminderNotificationMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// ReminderNotificationMessageFromJSON decodes and validates a message body.
func ReminderNotificationMessageFromJSON(data []byte) (*ReminderNotificationMessage, error) {
	var msg ReminderNotificationMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	if err := msg.Validate(); err != nil {
		return nil, err
	}
	return &msg, nil
}
