package http

import (
	"time"

	"github.com/shopspring/decimal"

	"fintrack/internal/core"
)

type expenseRequest struct {
	Title       string     `json:"title" validate:"notblank,max=200"`
	Amount      core.Money `json:"amount"`
	Date        time.Time  `json:"date" validate:"required"`
	Category    string     `json:"category" validate:"required,expense_category"`
	Notes       string     `json:"notes" validate:"max=2000"`
	IsRecurring bool       `json:"is_recurring"`
	Frequency   string     `json:"recurring_frequency" validate:"required_if=IsRecurring true,omitempty,recurring_frequency"`
}

func (r expenseRequest) toExpense() (core.Expense, error) {
	e := core.Expense{
		Title:       r.Title,
		Amount:      r.Amount,
		Date:        r.Date,
		Category:    core.ExpenseCategory(r.Category),
		Notes:       r.Notes,
		IsRecurring: r.IsRecurring,
	}
	if r.IsRecurring {
		f := core.RecurringFrequency(r.Frequency)
		e.Frequency = &f
	}
	return e, e.Validate()
}

type budgetRequest struct {
	Name      string     `json:"name" validate:"notblank,max=200"`
	Amount    core.Money `json:"amount"`
	Category  string     `json:"category" validate:"omitempty,expense_category"`
	StartDate time.Time  `json:"start_date" validate:"required"`
	EndDate   time.Time  `json:"end_date" validate:"required"`
}

func (r budgetRequest) toBudget() (core.Budget, error) {
	b := core.Budget{
		Name:      r.Name,
		Amount:    r.Amount,
		StartDate: r.StartDate,
		EndDate:   r.EndDate,
	}
	if r.Category != "" {
		c := core.ExpenseCategory(r.Category)
		b.Category = &c
	}
	return b, b.Validate()
}

type reminderRequest struct {
	Title       string    `json:"title" validate:"notblank,max=200"`
	Notes       string    `json:"notes" validate:"max=2000"`
	DueDate     time.Time `json:"due_date" validate:"required"`
	IsCompleted bool      `json:"is_completed"`
	Priority    string    `json:"priority" validate:"omitempty,oneof=low medium high"`
	Category    string    `json:"category" validate:"omitempty,oneof=personal work health finance other"`
}

func (r reminderRequest) toReminder() (core.Reminder, error) {
	rem := core.Reminder{
		Title:       r.Title,
		Notes:       r.Notes,
		DueDate:     r.DueDate,
		IsCompleted: r.IsCompleted,
		Priority:    core.ReminderPriority(r.Priority),
		Category:    core.ReminderCategory(r.Category),
	}
	if rem.Priority == "" {
		rem.Priority = core.PriorityMedium
	}
	if rem.Category == "" {
		rem.Category = core.ReminderPersonal
	}
	return rem, rem.Validate()
}

type interestRequest struct {
	Name      string          `json:"name" validate:"notblank,max=200"`
	Principal core.Money      `json:"principal"`
	Rate      decimal.Decimal `json:"rate"`
	Years     decimal.Decimal `json:"time_years"`
	Type      string          `json:"interest_type" validate:"required,oneof=simple compound"`
	Frequency string          `json:"compounding_frequency" validate:"required_if=Type compound,omitempty,compounding_frequency"`
}

func (r interestRequest) toCalculation() (core.InterestCalculation, error) {
	c := core.InterestCalculation{
		Name:      r.Name,
		Principal: r.Principal,
		Rate:      r.Rate,
		Years:     r.Years,
		Type:      core.InterestType(r.Type),
	}
	if r.Frequency != "" {
		f := core.CompoundingFrequency(r.Frequency)
		c.Frequency = &f
	}
	return c, c.Validate()
}

type totalRequest struct {
	Amount      core.Money `json:"amount"`
	Description string     `json:"description" validate:"max=500"`
}

// interestResult is a calculation with its derived amounts.
type interestResult struct {
	core.InterestCalculation
	InterestAmount core.Money `json:"interest_amount"`
	TotalAmount    core.Money `json:"total_amount"`
}

func newInterestResult(c core.InterestCalculation) interestResult {
	return interestResult{
		InterestCalculation: c,
		InterestAmount:      c.InterestAmount(),
		TotalAmount:         c.TotalAmount(),
	}
}
