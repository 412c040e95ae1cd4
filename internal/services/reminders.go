package services

import (
	"context"
	"slices"

	"fintrack/internal/core"
	"fintrack/internal/log"
	"fintrack/internal/notify"
)

func reminderID(id string) func(core.Reminder) bool {
	return func(r core.Reminder) bool { return r.ID == id }
}

// AddReminder stores r. It does not schedule a notification; callers that want one
// follow up with ScheduleReminderNotification.
func (m *DataManager) AddReminder(ctx context.Context, r core.Reminder) (core.Reminder, bool) {
	now := m.now()
	if r.ID == "" {
		r.ID = m.newID()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = now
	}
	if r.UpdatedAt.IsZero() {
		r.UpdatedAt = now
	}

	m.mu.Lock()
	next := withAppended(m.reminders, r)
	ok := persist(ctx, m, KeyReminders, next)
	if ok {
		m.reminders = next
	}
	m.mu.Unlock()

	if ok {
		m.logger.InfoContext(ctx, "Reminder added", log.FieldReminderID, r.ID)
		m.changed(KeyReminders, OpCreated, r.ID)
	}
	return r, ok
}

// UpdateReminder replaces the reminder with the same id and keeps its notification
// in step: completing it cancels the notification, while moving the due date or
// reopening it schedules a new one.
func (m *DataManager) UpdateReminder(ctx context.Context, r core.Reminder) bool {
	_, ok := m.mutateReminder(ctx, r.ID, func(cur *core.Reminder) {
		*cur = r
	})
	return ok
}

// ToggleReminderCompletion flips the completed flag and applies the same
// notification rules as UpdateReminder.
func (m *DataManager) ToggleReminderCompletion(ctx context.Context, id string) (core.Reminder, bool) {
	return m.mutateReminder(ctx, id, func(cur *core.Reminder) {
		cur.IsCompleted = !cur.IsCompleted
	})
}

func (m *DataManager) mutateReminder(ctx context.Context, id string, mutate func(*core.Reminder)) (core.Reminder, bool) {
	m.notifyMu.Lock()
	defer m.notifyMu.Unlock()

	m.mu.Lock()
	old, found := find(m.reminders, reminderID(id))
	if !found {
		m.mu.Unlock()
		return core.Reminder{}, false
	}
	updated := old
	mutate(&updated)
	updated.ID = old.ID
	updated.UpdatedAt = m.now()

	next, _ := withReplaced(m.reminders, updated, reminderID(id))
	ok := persist(ctx, m, KeyReminders, next)
	if ok {
		m.reminders = next
	}
	m.mu.Unlock()

	if !ok {
		return core.Reminder{}, false
	}
	m.changed(KeyReminders, OpUpdated, id)

	switch {
	case updated.IsCompleted && !old.IsCompleted:
		m.cancelNotification(ctx, id)
	case !updated.IsCompleted && (old.IsCompleted || !updated.DueDate.Equal(old.DueDate)):
		m.scheduleNotification(ctx, updated)
	}
	return updated, true
}

// DeleteReminder removes every reminder with id and cancels its notification.
// The cancel is sent for unknown ids too, but not when the write fails.
func (m *DataManager) DeleteReminder(ctx context.Context, id string) bool {
	m.notifyMu.Lock()
	defer m.notifyMu.Unlock()

	m.mu.Lock()
	next, found := withRemoved(m.reminders, reminderID(id))
	saved := !found || persist(ctx, m, KeyReminders, next)
	if found && saved {
		m.reminders = next
	}
	m.mu.Unlock()

	if !saved {
		return false
	}
	m.cancelNotification(ctx, id)
	if found {
		m.changed(KeyReminders, OpDeleted, id)
	}
	return found
}

// ScheduleReminderNotification arms a notification at the reminder's due time.
// Completed reminders and due times that are not in the future are skipped.
// It is ordered with reminder updates and deletes, never interleaved with them.
func (m *DataManager) ScheduleReminderNotification(ctx context.Context, r core.Reminder) bool {
	m.notifyMu.Lock()
	defer m.notifyMu.Unlock()
	return m.scheduleNotification(ctx, r)
}

// scheduleNotification must be called with m.notifyMu held.
func (m *DataManager) scheduleNotification(ctx context.Context, r core.Reminder) bool {
	if r.IsCompleted || !r.DueDate.After(m.now()) {
		m.logger.DebugContext(ctx, "Notification not scheduled",
			log.FieldReminderID, r.ID,
			"completed", r.IsCompleted,
			log.FieldTriggerAt, r.DueDate)
		return false
	}
	body := r.Notes
	if body == "" {
		body = "Reminder due"
	}
	n := notify.Notification{ID: r.ID, Title: r.Title, Body: body, TriggerAt: r.DueDate}
	if err := m.notifier.Schedule(ctx, n); err != nil {
		m.logger.ErrorContext(ctx, "Failed to schedule notification",
			log.NewFields().WithOperation(log.OpSchedule).WithError(err).With(log.FieldReminderID, r.ID).ToSlice()...)
		return false
	}
	return true
}

func (m *DataManager) cancelNotification(ctx context.Context, id string) {
	if err := m.notifier.Cancel(ctx, id); err != nil {
		m.logger.ErrorContext(ctx, "Failed to cancel notification",
			log.NewFields().WithOperation(log.OpCancel).WithError(err).With(log.FieldReminderID, id).ToSlice()...)
	}
}

func (m *DataManager) Reminders() []core.Reminder {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return cloneOrEmpty(m.reminders)
}

func (m *DataManager) FindReminder(id string) (core.Reminder, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return find(m.reminders, reminderID(id))
}

// PendingReminders returns incomplete reminders, earliest due first.
func (m *DataManager) PendingReminders() []core.Reminder {
	out := m.filterReminders(func(r core.Reminder) bool { return !r.IsCompleted })
	sortByDue(out)
	return out
}

// OverdueReminders returns incomplete reminders whose due time has passed,
// earliest due first.
func (m *DataManager) OverdueReminders() []core.Reminder {
	now := m.now()
	out := m.filterReminders(func(r core.Reminder) bool { return r.IsOverdue(now) })
	sortByDue(out)
	return out
}

// CompletedReminders returns completed reminders, most recently updated first.
func (m *DataManager) CompletedReminders() []core.Reminder {
	out := m.filterReminders(func(r core.Reminder) bool { return r.IsCompleted })
	slices.SortStableFunc(out, func(a, b core.Reminder) int {
		return b.UpdatedAt.Compare(a.UpdatedAt)
	})
	return out
}

func (m *DataManager) filterReminders(keep func(core.Reminder) bool) []core.Reminder {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []core.Reminder{}
	for _, r := range m.reminders {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}

func sortByDue(rs []core.Reminder) {
	slices.SortStableFunc(rs, func(a, b core.Reminder) int {
		if c := a.DueDate.Compare(b.DueDate); c != 0 {
			return c
		}
		return b.Priority.Rank() - a.Priority.Rank()
	})
}
