// Package notify schedules and cancels reminder notifications by identifier.
package notify

import (
	"context"
	"sync"
	"time"

	"fintrack/internal/amqp"
	"fintrack/internal/log"
)

type Notification struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	TriggerAt time.Time `json:"trigger_at"`
}

// Notifier arms or disarms the notification for one reminder id. Scheduling an id
// that is already armed replaces it.
type Notifier interface {
	Schedule(ctx context.Context, n Notification) error
	Cancel(ctx context.Context, id string) error
}

// LogNotifier only records what would have been scheduled.
type LogNotifier struct {
	logger *log.Logger
}

func NewLogNotifier(logger *log.Logger) *LogNotifier {
	return &LogNotifier{logger: logger.WithComponent(log.ComponentNotify)}
}

func (n *LogNotifier) Schedule(ctx context.Context, note Notification) error {
	n.logger.InfoContext(ctx, "Notification scheduled",
		log.FieldReminderID, note.ID,
		log.FieldTriggerAt, note.TriggerAt)
	return nil
}

func (n *LogNotifier) Cancel(ctx context.Context, id string) error {
	n.logger.InfoContext(ctx, "Notification cancelled", log.FieldReminderID, id)
	return nil
}

// Publisher is the part of amqp.Client the AMQP notifier needs.
type Publisher interface {
	PublishNotification(ctx context.Context, msg *amqp.ReminderNotificationMessage) error
}

// AMQPNotifier hands schedule and cancel requests to the reminder worker over AMQP.
type AMQPNotifier struct {
	pub Publisher
}

func NewAMQPNotifier(pub Publisher) *AMQPNotifier {
	return &AMQPNotifier{pub: pub}
}

func (n *AMQPNotifier) Schedule(ctx context.Context, note Notification) error {
	return n.pub.PublishNotification(ctx, amqp.NewScheduleMessage(note.ID, note.Title, note.Body, note.TriggerAt))
}

func (n *AMQPNotifier) Cancel(ctx context.Context, id string) error {
	return n.pub.PublishNotification(ctx, amqp.NewCancelMessage(id))
}

// Recorder keeps scheduled notifications in memory. Used by tests and the CLI dry run.
type Recorder struct {
	mu        sync.Mutex
	scheduled map[string]Notification
	calls     []string
}

func NewRecorder() *Recorder {
	return &Recorder{scheduled: make(map[string]Notification)}
}

func (r *Recorder) Schedule(_ context.Context, n Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.scheduled[n.ID] = n
	r.calls = append(r.calls, "schedule:"+n.ID)
	return nil
}

func (r *Recorder) Cancel(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.scheduled, id)
	r.calls = append(r.calls, "cancel:"+id)
	return nil
}

// Scheduled returns the armed notification for id.
func (r *Recorder) Scheduled(id string) (Notification, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n, ok := r.scheduled[id]
	return n, ok
}

// History returns a copy of every call made, as "schedule:<id>" or "cancel:<id>".
func (r *Recorder) History() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.calls...)
}
