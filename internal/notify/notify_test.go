package notify

import (
	"context"
	"testing"
	"time"

	"fintrack/internal/amqp"
	"fintrack/internal/log"
)

type fakePublisher struct {
	msgs []*amqp.ReminderNotificationMessage
}

func (f *fakePublisher) PublishNotification(_ context.Context, msg *amqp.ReminderNotificationMessage) error {
	f.msgs = append(f.msgs, msg)
	return nil
}

func TestAMQPNotifier(t *testing.T) {
	pub := &fakePublisher{}
	n := NewAMQPNotifier(pub)
	trigger := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)

	if err := n.Schedule(context.Background(), Notification{ID: "r1", Title: "Dentist", Body: "10:00", TriggerAt: trigger}); err != nil {
		t.Fatal(err)
	}
	if err := n.Cancel(context.Background(), "r1"); err != nil {
		t.Fatal(err)
	}

	if len(pub.msgs) != 2 {
		t.Fatalf("published %d messages, want 2", len(pub.msgs))
	}
	if m := pub.msgs[0]; m.Action != amqp.ActionSchedule || m.ReminderID != "r1" || m.Title != "Dentist" || !m.TriggerAt.Equal(trigger) {
		t.Errorf("unexpected schedule message: %+v", m)
	}
	if m := pub.msgs[1]; m.Action != amqp.ActionCancel || m.ReminderID != "r1" {
		t.Errorf("unexpected cancel message: %+v", m)
	}
}

func TestRecorder(t *testing.T) {
	r := NewRecorder()
	ctx := context.Background()
	_ = r.Schedule(ctx, Notification{ID: "a"})
	_ = r.Schedule(ctx, Notification{ID: "a", Title: "again"})
	if n, ok := r.Scheduled("a"); !ok || n.Title != "again" {
		t.Fatalf("reschedule should replace: %+v", n)
	}
	_ = r.Cancel(ctx, "a")
	if _, ok := r.Scheduled("a"); ok {
		t.Fatalf("cancel should disarm")
	}
	if h := r.History(); len(h) != 3 || h[2] != "cancel:a" {
		t.Errorf("history = %v", h)
	}
}

func TestLogNotifierNeverFails(t *testing.T) {
	n := NewLogNotifier(log.Discard())
	if err := n.Schedule(context.Background(), Notification{ID: "x"}); err != nil {
		t.Error(err)
	}
	if err := n.Cancel(context.Background(), "x"); err != nil {
		t.Error(err)
	}
}
