package services

import (
	"context"

	"fintrack/internal/analysis"
	"fintrack/internal/core"
	"fintrack/internal/log"
)

// DefaultRecentExpenses is the RecentExpenses limit used when none is given.
const DefaultRecentExpenses = 5

// SetTotalAmount overwrites the starting balance. The existing id is kept so the
// singleton keeps its identity across edits.
func (m *DataManager) SetTotalAmount(ctx context.Context, amount core.Money, description string) (core.TotalAmount, bool) {
	m.mu.Lock()
	t := core.TotalAmount{
		Amount:      amount,
		Description: description,
		LastUpdated: m.now(),
	}
	if m.total != nil {
		t.ID = m.total.ID
	} else {
		t.ID = m.newID()
	}
	ok := persist(ctx, m, KeyTotalAmount, &t)
	if ok {
		m.total = &t
	}
	m.mu.Unlock()

	if ok {
		m.logger.InfoContext(ctx, "Total amount set", log.FieldAmount, amount.String())
		m.changed(KeyTotalAmount, OpUpdated, "")
	}
	return t, ok
}

// ClearTotalAmount removes the starting balance. Clearing an unset total is a no-op.
func (m *DataManager) ClearTotalAmount(ctx context.Context) bool {
	m.mu.Lock()
	ok := m.total != nil && persist[*core.TotalAmount](ctx, m, KeyTotalAmount, nil)
	if ok {
		m.total = nil
	}
	m.mu.Unlock()

	if ok {
		m.changed(KeyTotalAmount, OpDeleted, "")
	}
	return ok
}

// TotalAmount returns the starting balance, if one is set.
func (m *DataManager) TotalAmount() (core.TotalAmount, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.total == nil {
		return core.TotalAmount{}, false
	}
	return *m.total, true
}

func (m *DataManager) totalAfterExpensesLocked() core.Money {
	if m.total == nil {
		return core.Zero
	}
	return m.total.Amount.Sub(analysis.Total(m.expenses)).Floor()
}

// TotalAfterExpenses is the starting balance minus every expense, floored at zero.
// It is zero when no total is set.
func (m *DataManager) TotalAfterExpenses() core.Money {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.totalAfterExpensesLocked()
}

// RemainingPercentage is TotalAfterExpenses as a percentage of the starting balance.
func (m *DataManager) RemainingPercentage() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.total == nil {
		return 0
	}
	return m.totalAfterExpensesLocked().Ratio(m.total.Amount) * 100
}

// SpentAmount sums every expense regardless of date or budget. It is zero when no
// total is set.
func (m *DataManager) SpentAmount() core.Money {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.total == nil {
		return core.Zero
	}
	return analysis.Total(m.expenses)
}

func (m *DataManager) SpentPercentage() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.total == nil {
		return 0
	}
	return analysis.Total(m.expenses).Ratio(m.total.Amount) * 100
}

// ExpensesByCategory maps every expense category to its summed amount.
func (m *DataManager) ExpensesByCategory() map[core.ExpenseCategory]core.Money {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return analysis.ByCategory(m.expenses)
}

// TopExpenseCategories ranks categories by spend and keeps the first limit
// (analysis.DefaultTopCategories when limit <= 0).
func (m *DataManager) TopExpenseCategories(limit int) []analysis.CategorySpending {
	return analysis.Top(analysis.Ranked(m.ExpensesByCategory()), limit)
}

// CanCoverExpense reports whether a total is set and what is left covers amount.
func (m *DataManager) CanCoverExpense(amount core.Money) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.total != nil && m.totalAfterExpensesLocked().Cents >= amount.Cents
}

// Summary is the dashboard view of the starting balance against all expenses.
type Summary struct {
	Total               *core.TotalAmount           `json:"total,omitempty"`
	TotalAfterExpenses  core.Money                  `json:"total_after_expenses"`
	RemainingPercentage float64                     `json:"remaining_percentage"`
	SpentAmount         core.Money                  `json:"spent_amount"`
	SpentPercentage     float64                     `json:"spent_percentage"`
	TopCategories       []analysis.CategorySpending `json:"top_categories"`
	RecentExpenses      []core.Expense              `json:"recent_expenses"`
	PendingReminders    int                         `json:"pending_reminders"`
	OverdueReminders    int                         `json:"overdue_reminders"`
}

func (m *DataManager) Summary() Summary {
	s := Summary{
		TotalAfterExpenses:  m.TotalAfterExpenses(),
		RemainingPercentage: m.RemainingPercentage(),
		SpentAmount:         m.SpentAmount(),
		SpentPercentage:     m.SpentPercentage(),
		TopCategories:       m.TopExpenseCategories(analysis.DefaultTopCategories),
		RecentExpenses:      m.RecentExpenses(DefaultRecentExpenses),
		PendingReminders:    len(m.PendingReminders()),
		OverdueReminders:    len(m.OverdueReminders()),
	}
	if t, ok := m.TotalAmount(); ok {
		s.Total = &t
	}
	return s
}
