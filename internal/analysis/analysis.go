// Package analysis computes read-only spending projections over in-memory expense sets.
//
// Nothing here performs I/O or keeps state: every function is a pure computation over
// its arguments, so results can be recomputed on every read.
package analysis

import (
	"slices"
	"sort"
	"time"

	"fintrack/internal/core"
)

const (
	// DefaultTopCategories is how many categories top-N queries return when no limit is given.
	DefaultTopCategories = 3

	// warningThreshold is the remaining share (percent) below which a budget is flagged.
	warningThreshold = 20.0
)

// CategorySpending is one row of a category breakdown.
type CategorySpending struct {
	Category   core.ExpenseCategory `json:"category"`
	Amount     core.Money           `json:"amount"`
	Percentage float64              `json:"percentage"` // share of the total, 0-100
}

// BudgetAnalysis is a request-scoped snapshot of a budget. It is never persisted.
//
// PercentageUsed saturates at 100 because it is derived from the clamped remaining
// amount; SpentPercentage is the unclamped ratio and exceeds 100 when overspent.
type BudgetAnalysis struct {
	Budget          core.Budget        `json:"budget"`
	Expenses        []core.Expense     `json:"expenses"`
	TotalSpent      core.Money         `json:"total_spent"`
	Remaining       core.Money         `json:"remaining"`
	PercentageUsed  float64            `json:"percentage_used"`
	SpentPercentage float64            `json:"spent_percentage"`
	Breakdown       []CategorySpending `json:"category_breakdown"`
	TopCategories   []CategorySpending `json:"top_categories"`
	Status          core.BudgetStatus  `json:"status"`
	DailyAllowance  core.Money         `json:"daily_allowance"`
	DaysRemaining   int                `json:"days_remaining"`
}

// Total sums expense amounts.
func Total(expenses []core.Expense) core.Money {
	var total core.Money
	for _, e := range expenses {
		total = total.Add(e.Amount)
	}
	return total
}

// ByCategory maps every category of the closed set to its summed amount.
// Categories without expenses are present with a zero amount. Expenses carrying a
// category outside the closed set are counted as CategoryOther, so the keys are
// always exactly core.ExpenseCategories.
func ByCategory(expenses []core.Expense) map[core.ExpenseCategory]core.Money {
	totals := make(map[core.ExpenseCategory]core.Money, len(core.ExpenseCategories))
	for _, c := range core.ExpenseCategories {
		totals[c] = core.Zero
	}
	for _, e := range expenses {
		c := e.Category
		if !c.Valid() {
			c = core.CategoryOther
		}
		totals[c] = totals[c].Add(e.Amount)
	}
	return totals
}

// Ranked turns a category map into rows sorted by amount descending. Ties keep the
// category display order so results are stable. Percentages are shares of the map total.
func Ranked(totals map[core.ExpenseCategory]core.Money) []CategorySpending {
	var sum core.Money
	for _, amount := range totals {
		sum = sum.Add(amount)
	}
	rows := make([]CategorySpending, 0, len(totals))
	for category, amount := range totals {
		rows = append(rows, CategorySpending{
			Category:   category,
			Amount:     amount,
			Percentage: amount.Ratio(sum) * 100,
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Amount.Cents != rows[j].Amount.Cents {
			return rows[i].Amount.Cents > rows[j].Amount.Cents
		}
		return rows[i].Category.Index() < rows[j].Category.Index()
	})
	return rows
}

// Top returns a copy of the first limit ranked rows, using DefaultTopCategories
// when limit <= 0.
func Top(rows []CategorySpending, limit int) []CategorySpending {
	if limit <= 0 {
		limit = DefaultTopCategories
	}
	if len(rows) > limit {
		rows = rows[:limit]
	}
	return slices.Clone(rows)
}

// Breakdown ranks only the categories with a positive amount.
func Breakdown(expenses []core.Expense) []CategorySpending {
	totals := ByCategory(expenses)
	for c, amount := range totals {
		if amount.Cents <= 0 {
			delete(totals, c)
		}
	}
	return Ranked(totals)
}

// Status classifies a budget from its clamped remaining amount.
func Status(amount, remaining core.Money) core.BudgetStatus {
	if remaining.Cents <= 0 {
		return core.StatusExceeded
	}
	if remaining.Ratio(amount)*100 < warningThreshold {
		return core.StatusWarning
	}
	return core.StatusGood
}

// DailyAllowance spreads the remaining amount over the whole days left in the budget.
// It is zero once the budget has ended or nothing remains.
func DailyAllowance(b core.Budget, remaining core.Money, now time.Time) core.Money {
	if b.HasEnded(now) || remaining.Cents <= 0 {
		return core.Zero
	}
	days := int64(b.DaysRemaining(now))
	if days < 1 {
		days = 1
	}
	return core.Money{Cents: remaining.Cents / days}
}

// Analyze builds the analysis of b from the expenses it covers. The expense list may
// contain expenses outside the budget; they are filtered out first.
func Analyze(b core.Budget, expenses []core.Expense, now time.Time) BudgetAnalysis {
	relevant := b.RelevantExpenses(expenses)
	spent := Total(relevant)
	remaining := b.Amount.Sub(spent).Floor()

	a := BudgetAnalysis{
		Budget:        b,
		Expenses:      relevant,
		TotalSpent:    spent,
		Remaining:     remaining,
		Breakdown:     Breakdown(relevant),
		Status:        Status(b.Amount, remaining),
		DaysRemaining: b.DaysRemaining(now),
	}
	if b.Amount.Cents > 0 {
		a.PercentageUsed = b.Amount.Sub(remaining).Ratio(b.Amount) * 100
		a.SpentPercentage = spent.Ratio(b.Amount) * 100
	}
	a.TopCategories = Top(a.Breakdown, DefaultTopCategories)
	a.DailyAllowance = DailyAllowance(b, remaining, now)
	return a
}
