package services

import (
	"context"

	"fintrack/internal/analysis"
	"fintrack/internal/core"
	"fintrack/internal/log"
)

func budgetID(id string) func(core.Budget) bool {
	return func(b core.Budget) bool { return b.ID == id }
}

func (m *DataManager) AddBudget(ctx context.Context, b core.Budget) (core.Budget, bool) {
	if b.ID == "" {
		b.ID = m.newID()
	}
	if b.CreatedAt.IsZero() {
		b.CreatedAt = m.now()
	}

	m.mu.Lock()
	next := withAppended(m.budgets, b)
	ok := persist(ctx, m, KeyBudgets, next)
	if ok {
		m.budgets = next
	}
	m.mu.Unlock()

	if ok {
		m.logger.InfoContext(ctx, "Budget added", log.FieldBudgetID, b.ID, log.FieldAmount, b.Amount.String())
		m.changed(KeyBudgets, OpCreated, b.ID)
	}
	return b, ok
}

func (m *DataManager) UpdateBudget(ctx context.Context, b core.Budget) bool {
	m.mu.Lock()
	next, found := withReplaced(m.budgets, b, budgetID(b.ID))
	ok := found && persist(ctx, m, KeyBudgets, next)
	if ok {
		m.budgets = next
	}
	m.mu.Unlock()

	if ok {
		m.changed(KeyBudgets, OpUpdated, b.ID)
	}
	return ok
}

func (m *DataManager) DeleteBudget(ctx context.Context, id string) bool {
	m.mu.Lock()
	next, found := withRemoved(m.budgets, budgetID(id))
	ok := found && persist(ctx, m, KeyBudgets, next)
	if ok {
		m.budgets = next
	}
	m.mu.Unlock()

	if ok {
		m.changed(KeyBudgets, OpDeleted, id)
	}
	return ok
}

func (m *DataManager) Budgets() []core.Budget {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return cloneOrEmpty(m.budgets)
}

func (m *DataManager) FindBudget(id string) (core.Budget, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return find(m.budgets, budgetID(id))
}

// RelevantExpensesForBudget returns the cached expenses inside b's date range and
// category filter.
func (m *DataManager) RelevantExpensesForBudget(b core.Budget) []core.Expense {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return b.RelevantExpenses(m.expenses)
}

func (m *DataManager) BudgetAnalysis(b core.Budget) analysis.BudgetAnalysis {
	now := m.now()
	m.mu.RLock()
	defer m.mu.RUnlock()
	return analysis.Analyze(b, m.expenses, now)
}

// BudgetAnalyses analyzes every cached budget in storage order.
func (m *DataManager) BudgetAnalyses() []analysis.BudgetAnalysis {
	now := m.now()
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]analysis.BudgetAnalysis, 0, len(m.budgets))
	for _, b := range m.budgets {
		out = append(out, analysis.Analyze(b, m.expenses, now))
	}
	return out
}
