// Package worker arms reminder notifications and delivers them when they fall due.
package worker

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"fintrack/internal/amqp"
	"fintrack/internal/log"
	"fintrack/internal/notify"
)

const deliverTimeout = 15 * time.Second

var ErrStopped = errors.New("dispatcher stopped")

// Deliverer pushes a due notification to the user.
type Deliverer interface {
	Deliver(ctx context.Context, n notify.Notification) error
}

type armed struct {
	n     notify.Notification
	timer *time.Timer
	gen   uint64
}

// Dispatcher keeps one timer per reminder id. Scheduling an armed id replaces its
// timer; trigger times already in the past fire right away.
type Dispatcher struct {
	deliverer Deliverer
	logger    *log.Logger
	now       func() time.Time

	mu      sync.Mutex
	armed   map[string]*armed
	gen     uint64
	stopped bool
	inAir   sync.WaitGroup
}

func NewDispatcher(deliverer Deliverer, logger *log.Logger) *Dispatcher {
	return &Dispatcher{
		deliverer: deliverer,
		logger:    logger.WithComponent(log.ComponentWorker),
		now:       time.Now,
		armed:     make(map[string]*armed),
	}
}

// Handle applies one AMQP notification message. It is the consumer callback.
func (d *Dispatcher) Handle(ctx context.Context, msg *amqp.ReminderNotificationMessage) error {
	switch msg.Action {
	case amqp.ActionSchedule:
		return d.Schedule(ctx, notify.Notification{
			ID:        msg.ReminderID,
			Title:     msg.Title,
			Body:      msg.Body,
			TriggerAt: msg.TriggerAt,
		})
	case amqp.ActionCancel:
		return d.Cancel(ctx, msg.ReminderID)
	default:
		return fmt.Errorf("unknown action %q", msg.Action)
	}
}

// Schedule arms n, replacing any timer already armed for n.ID.
func (d *Dispatcher) Schedule(ctx context.Context, n notify.Notification) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return ErrStopped
	}

	if prev, ok := d.armed[n.ID]; ok {
		prev.timer.Stop()
	}

	wait := n.TriggerAt.Sub(d.now())
	if wait < 0 {
		wait = 0
	}
	d.gen++
	gen := d.gen
	entry := &armed{n: n, gen: gen}
	entry.timer = time.AfterFunc(wait, func() { d.fire(n.ID, gen) })
	d.armed[n.ID] = entry

	d.logger.InfoContext(ctx, "Notification armed",
		log.FieldReminderID, n.ID,
		log.FieldTriggerAt, n.TriggerAt,
		"in", wait.Round(time.Second))
	return nil
}

// Cancel disarms the timer for id. Unknown ids are ignored.
func (d *Dispatcher) Cancel(ctx context.Context, id string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if entry, ok := d.armed[id]; ok {
		entry.timer.Stop()
		delete(d.armed, id)
		d.logger.InfoContext(ctx, "Notification disarmed", log.FieldReminderID, id)
	}
	return nil
}

func (d *Dispatcher) fire(id string, gen uint64) {
	d.mu.Lock()
	entry, ok := d.armed[id]
	if !ok || entry.gen != gen || d.stopped {
		// replaced or cancelled after the timer had already started
		d.mu.Unlock()
		return
	}
	delete(d.armed, id)
	d.inAir.Add(1)
	d.mu.Unlock()
	defer d.inAir.Done()

	ctx, cancel := context.WithTimeout(context.Background(), deliverTimeout)
	defer cancel()

	if err := d.deliverer.Deliver(ctx, entry.n); err != nil {
		d.logger.ErrorContext(ctx, "Failed to deliver notification",
			log.NewFields().WithOperation(log.OpDeliver).WithError(err).With(log.FieldReminderID, id).ToSlice()...)
		return
	}
	d.logger.InfoContext(ctx, "Notification delivered", log.FieldReminderID, id)
}

// Pending returns the armed notifications, soonest first.
func (d *Dispatcher) Pending() []notify.Notification {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]notify.Notification, 0, len(d.armed))
	for _, entry := range d.armed {
		out = append(out, entry.n)
	}
	slices.SortFunc(out, func(a, b notify.Notification) int {
		if c := a.TriggerAt.Compare(b.TriggerAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return out
}

// Stop disarms every timer and waits for deliveries already under way.
func (d *Dispatcher) Stop() {
	d.mu.Lock()
	d.stopped = true
	for id, entry := range d.armed {
		entry.timer.Stop()
		delete(d.armed, id)
	}
	d.mu.Unlock()
	d.inAir.Wait()
}
