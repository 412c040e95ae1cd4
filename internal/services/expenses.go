package services

import (
	"context"
	"slices"
	"time"

	"fintrack/internal/core"
	"fintrack/internal/log"
)

func expenseID(id string) func(core.Expense) bool {
	return func(e core.Expense) bool { return e.ID == id }
}

// AddExpense appends e, assigning an id and creation time when missing.
func (m *DataManager) AddExpense(ctx context.Context, e core.Expense) (core.Expense, bool) {
	if e.ID == "" {
		e.ID = m.newID()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = m.now()
	}

	m.mu.Lock()
	next := withAppended(m.expenses, e)
	ok := persist(ctx, m, KeyExpenses, next)
	if ok {
		m.expenses = next
	}
	m.mu.Unlock()

	if ok {
		m.logger.InfoContext(ctx, "Expense added",
			log.FieldExpenseID, e.ID,
			log.FieldAmount, e.Amount.String(),
			log.FieldCategory, e.Category)
		m.changed(KeyExpenses, OpCreated, e.ID)
	}
	return e, ok
}

// UpdateExpense replaces the expense with the same id. Unknown ids are a no-op.
func (m *DataManager) UpdateExpense(ctx context.Context, e core.Expense) bool {
	m.mu.Lock()
	next, found := withReplaced(m.expenses, e, expenseID(e.ID))
	ok := found && persist(ctx, m, KeyExpenses, next)
	if ok {
		m.expenses = next
	}
	m.mu.Unlock()

	if ok {
		m.changed(KeyExpenses, OpUpdated, e.ID)
	}
	return ok
}

// DeleteExpense removes every expense with id. Absent ids are a no-op.
func (m *DataManager) DeleteExpense(ctx context.Context, id string) bool {
	m.mu.Lock()
	next, found := withRemoved(m.expenses, expenseID(id))
	ok := found && persist(ctx, m, KeyExpenses, next)
	if ok {
		m.expenses = next
	}
	m.mu.Unlock()

	if ok {
		m.changed(KeyExpenses, OpDeleted, id)
	}
	return ok
}

func (m *DataManager) Expenses() []core.Expense {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return cloneOrEmpty(m.expenses)
}

func (m *DataManager) FindExpense(id string) (core.Expense, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return find(m.expenses, expenseID(id))
}

// RecentExpenses returns up to limit expenses, newest date first. A non-positive
// limit means DefaultRecentExpenses.
func (m *DataManager) RecentExpenses(limit int) []core.Expense {
	if limit <= 0 {
		limit = DefaultRecentExpenses
	}
	out := m.Expenses()
	slices.SortStableFunc(out, func(a, b core.Expense) int {
		if c := b.Date.Compare(a.Date); c != 0 {
			return c
		}
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// UpcomingExpense is the next occurrence of a recurring expense.
type UpcomingExpense struct {
	Expense  core.Expense `json:"expense"`
	NextDate time.Time    `json:"next_date"`
}

// UpcomingRecurringExpenses lists the next occurrence of every recurring expense
// that falls within horizon from now, soonest first. Nothing is created.
func (m *DataManager) UpcomingRecurringExpenses(horizon time.Duration) []UpcomingExpense {
	now := m.now()
	limit := now.Add(horizon)

	m.mu.RLock()
	defer m.mu.RUnlock()

	out := []UpcomingExpense{}
	for _, e := range m.expenses {
		if !e.IsRecurring || e.Frequency == nil || !e.Frequency.Valid() {
			continue
		}
		next := e.Frequency.NextAfter(e.Date, now)
		if next.After(limit) {
			continue
		}
		out = append(out, UpcomingExpense{Expense: e, NextDate: next})
	}
	slices.SortStableFunc(out, func(a, b UpcomingExpense) int {
		return a.NextDate.Compare(b.NextDate)
	})
	return out
}
