package worker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"fintrack/internal/amqp"
	"fintrack/internal/log"
	"fintrack/internal/notify"
)

type recordingDeliverer struct {
	mu        sync.Mutex
	delivered []notify.Notification
	ch        chan notify.Notification
}

func newRecordingDeliverer() *recordingDeliverer {
	return &recordingDeliverer{ch: make(chan notify.Notification, 10)}
}

func (r *recordingDeliverer) Deliver(_ context.Context, n notify.Notification) error {
	r.mu.Lock()
	r.delivered = append(r.delivered, n)
	r.mu.Unlock()
	r.ch <- n
	return nil
}

func (r *recordingDeliverer) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.delivered)
}

func waitDelivery(t *testing.T, r *recordingDeliverer) notify.Notification {
	t.Helper()
	select {
	case n := <-r.ch:
		return n
	case <-time.After(2 * time.Second):
		t.Fatal("notification was not delivered")
	}
	return notify.Notification{}
}

func TestPastTriggerFiresImmediately(t *testing.T) {
	rec := newRecordingDeliverer()
	d := NewDispatcher(rec, log.Discard())
	defer d.Stop()

	n := notify.Notification{ID: "r1", Title: "Missed", TriggerAt: time.Now().Add(-time.Hour)}
	if err := d.Schedule(context.Background(), n); err != nil {
		t.Fatal(err)
	}
	if got := waitDelivery(t, rec); got.ID != "r1" {
		t.Errorf("delivered %+v", got)
	}
	if len(d.Pending()) != 0 {
		t.Errorf("fired notification should no longer be pending")
	}
}

func TestRescheduleReplacesTimer(t *testing.T) {
	rec := newRecordingDeliverer()
	d := NewDispatcher(rec, log.Discard())
	defer d.Stop()
	ctx := context.Background()

	_ = d.Schedule(ctx, notify.Notification{ID: "r1", Title: "old", TriggerAt: time.Now().Add(time.Hour)})
	_ = d.Schedule(ctx, notify.Notification{ID: "r1", Title: "new", TriggerAt: time.Now().Add(20 * time.Millisecond)})

	if p := d.Pending(); len(p) != 1 || p[0].Title != "new" {
		t.Fatalf("pending = %+v", p)
	}
	if got := waitDelivery(t, rec); got.Title != "new" {
		t.Errorf("delivered %+v", got)
	}
	time.Sleep(50 * time.Millisecond)
	if rec.count() != 1 {
		t.Errorf("delivered %d times, want 1", rec.count())
	}
}

func TestCancelDisarms(t *testing.T) {
	rec := newRecordingDeliverer()
	d := NewDispatcher(rec, log.Discard())
	defer d.Stop()
	ctx := context.Background()

	_ = d.Schedule(ctx, notify.Notification{ID: "r1", TriggerAt: time.Now().Add(30 * time.Millisecond)})
	if err := d.Cancel(ctx, "r1"); err != nil {
		t.Fatal(err)
	}
	if err := d.Cancel(ctx, "unknown"); err != nil {
		t.Fatal(err)
	}
	time.Sleep(80 * time.Millisecond)
	if rec.count() != 0 {
		t.Errorf("cancelled notification was delivered")
	}
}

func TestPendingSortedAndStop(t *testing.T) {
	d := NewDispatcher(newRecordingDeliverer(), log.Discard())
	ctx := context.Background()
	base := time.Now().Add(time.Hour)

	_ = d.Schedule(ctx, notify.Notification{ID: "b", TriggerAt: base.Add(time.Minute)})
	_ = d.Schedule(ctx, notify.Notification{ID: "a", TriggerAt: base})

	p := d.Pending()
	if len(p) != 2 || p[0].ID != "a" || p[1].ID != "b" {
		t.Fatalf("pending = %+v", p)
	}

	d.Stop()
	if len(d.Pending()) != 0 {
		t.Errorf("stop should disarm everything")
	}
	if err := d.Schedule(ctx, notify.Notification{ID: "c", TriggerAt: base}); !errors.Is(err, ErrStopped) {
		t.Errorf("schedule after stop = %v, want ErrStopped", err)
	}
}

func TestHandleMessages(t *testing.T) {
	d := NewDispatcher(newRecordingDeliverer(), log.Discard())
	defer d.Stop()
	ctx := context.Background()

	trigger := time.Now().Add(time.Hour)
	if err := d.Handle(ctx, amqp.NewScheduleMessage("r1", "Title", "Body", trigger)); err != nil {
		t.Fatal(err)
	}
	if p := d.Pending(); len(p) != 1 || p[0].Body != "Body" || !p[0].TriggerAt.Equal(trigger) {
		t.Fatalf("pending = %+v", p)
	}
	if err := d.Handle(ctx, amqp.NewCancelMessage("r1")); err != nil {
		t.Fatal(err)
	}
	if len(d.Pending()) != 0 {
		t.Errorf("cancel message should disarm")
	}
	if err := d.Handle(ctx, &amqp.ReminderNotificationMessage{Action: "snooze", ReminderID: "r1"}); err == nil {
		t.Errorf("unknown action should fail")
	}
}

type fakeSender struct {
	sent []tgbotapi.Chattable
	err  error
}

func (f *fakeSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.sent = append(f.sent, c)
	return tgbotapi.Message{}, f.err
}

func TestTelegramDeliverer(t *testing.T) {
	sender := &fakeSender{}
	d := &TelegramDeliverer{bot: sender, chatID: 42}
	n := notify.Notification{ID: "r1", Title: "Dentist", Body: "Bring card", TriggerAt: time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)}

	if err := d.Deliver(context.Background(), n); err != nil {
		t.Fatal(err)
	}
	msg, ok := sender.sent[0].(tgbotapi.MessageConfig)
	if !ok {
		t.Fatalf("sent %T", sender.sent[0])
	}
	if msg.ChatID != 42 {
		t.Errorf("chat id = %d", msg.ChatID)
	}
	if want := "⏰ Dentist\nBring card\nDue: 2024-05-01 09:30"; msg.Text != want {
		t.Errorf("text = %q, want %q", msg.Text, want)
	}

	sender.err = errors.New("forbidden")
	if err := d.Deliver(context.Background(), n); err == nil {
		t.Error("send failure should be returned")
	}
}

func TestFormatMessageMinimal(t *testing.T) {
	if got := FormatMessage(notify.Notification{Title: "Ping"}); got != "⏰ Ping" {
		t.Errorf("got %q", got)
	}
}
