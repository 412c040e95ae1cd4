package core

import (
	"errors"
	"strings"
	"time"
)

type (
	Expense struct {
		ID          string              `json:"id"`
		Title       string              `json:"title"`
		Amount      Money               `json:"amount"`
		Date        time.Time           `json:"date"`
		Category    ExpenseCategory     `json:"category"`
		Notes       string              `json:"notes"`
		IsRecurring bool                `json:"is_recurring"`
		Frequency   *RecurringFrequency `json:"recurring_frequency,omitempty"`
		CreatedAt   time.Time           `json:"created_at"`
	}

	Budget struct {
		ID        string           `json:"id"`
		Name      string           `json:"name"`
		Amount    Money            `json:"amount"`
		Category  *ExpenseCategory `json:"category,omitempty"` // nil means all categories
		StartDate time.Time        `json:"start_date"`
		EndDate   time.Time        `json:"end_date"` // inclusive
		CreatedAt time.Time        `json:"created_at"`
	}

	// TotalAmount is the user's starting balance. At most one exists at a time.
	TotalAmount struct {
		ID          string    `json:"id"`
		Amount      Money     `json:"amount"`
		Description string    `json:"description"`
		LastUpdated time.Time `json:"last_updated"`
	}

	Reminder struct {
		ID          string           `json:"id"`
		Title       string           `json:"title"`
		Notes       string           `json:"notes"`
		DueDate     time.Time        `json:"due_date"`
		IsCompleted bool             `json:"is_completed"`
		Priority    ReminderPriority `json:"priority"`
		Category    ReminderCategory `json:"category"`
		CreatedAt   time.Time        `json:"created_at"`
		UpdatedAt   time.Time        `json:"updated_at"`
	}
)

const maxTitleLength = 200

var (
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrEmptyTitle         = errors.New("empty title")
	ErrTitleTooLong       = errors.New("title too long (max 200 characters)")
	ErrZeroDate           = errors.New("date cannot be zero")
	ErrInvalidCategory    = errors.New("invalid category")
	ErrInvalidFrequency   = errors.New("invalid recurring frequency")
	ErrInvalidDateRange   = errors.New("end date must not be before start date")
	ErrInvalidPriority    = errors.New("invalid priority")
	ErrInvalidRate        = errors.New("invalid interest rate")
	ErrInvalidTime        = errors.New("invalid time period")
	ErrInvalidType        = errors.New("invalid interest type")
	ErrMissingCompounding = errors.New("compounding frequency required for compound interest")
	ErrInterestOutOfRange = errors.New("interest result out of range")
)

func validateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return ErrEmptyTitle
	}
	if len(title) > maxTitleLength {
		return ErrTitleTooLong
	}
	return nil
}

// Equal compares expenses by identity only.
func (e Expense) Equal(o Expense) bool {
	return e.ID == o.ID
}

func (e Expense) Validate() error {
	if err := validateTitle(e.Title); err != nil {
		return err
	}
	if err := e.Amount.Validate(); err != nil {
		return err
	}
	if e.Date.IsZero() {
		return ErrZeroDate
	}
	if !e.Category.Valid() {
		return ErrInvalidCategory
	}
	if e.IsRecurring && (e.Frequency == nil || !e.Frequency.Valid()) {
		return ErrInvalidFrequency
	}
	return nil
}

func (b Budget) Validate() error {
	if err := validateTitle(b.Name); err != nil {
		return err
	}
	if err := b.Amount.Validate(); err != nil {
		return err
	}
	if b.StartDate.IsZero() || b.EndDate.IsZero() {
		return ErrZeroDate
	}
	if EndOfDay(b.EndDate).Before(StartOfDay(b.StartDate)) {
		return ErrInvalidDateRange
	}
	if b.Category != nil && !b.Category.Valid() {
		return ErrInvalidCategory
	}
	return nil
}

// Covers reports whether e falls inside the budget's inclusive date range and
// matches its category filter.
func (b Budget) Covers(e Expense) bool {
	if e.Date.Before(StartOfDay(b.StartDate)) || e.Date.After(EndOfDay(b.EndDate)) {
		return false
	}
	return b.Category == nil || *b.Category == e.Category
}

// RelevantExpenses filters expenses down to the ones the budget covers.
func (b Budget) RelevantExpenses(expenses []Expense) []Expense {
	out := make([]Expense, 0, len(expenses))
	for _, e := range expenses {
		if b.Covers(e) {
			out = append(out, e)
		}
	}
	return out
}

// TotalSpent sums the covered expenses.
func (b Budget) TotalSpent(expenses []Expense) Money {
	var total Money
	for _, e := range b.RelevantExpenses(expenses) {
		total = total.Add(e.Amount)
	}
	return total
}

// RemainingAmount never goes below zero; overspending is reported by IsExceeded.
func (b Budget) RemainingAmount(expenses []Expense) Money {
	return b.Amount.Sub(b.TotalSpent(expenses)).Floor()
}

// PercentageUsed is derived from the clamped remaining amount, so it saturates at 100.
func (b Budget) PercentageUsed(expenses []Expense) float64 {
	if b.Amount.Cents <= 0 {
		return 0
	}
	used := b.Amount.Sub(b.RemainingAmount(expenses))
	return used.Ratio(b.Amount) * 100
}

func (b Budget) IsExceeded(expenses []Expense) bool {
	return b.TotalSpent(expenses).Cents > b.Amount.Cents
}

// DaysRemaining counts whole calendar days from now until the end date, never negative.
func (b Budget) DaysRemaining(now time.Time) int {
	days := DaysBetween(now, b.EndDate)
	if days < 0 {
		return 0
	}
	return days
}

// HasEnded reports whether now is past the last day of the budget.
func (b Budget) HasEnded(now time.Time) bool {
	return now.After(EndOfDay(b.EndDate))
}

func (r Reminder) Validate() error {
	if err := validateTitle(r.Title); err != nil {
		return err
	}
	if r.DueDate.IsZero() {
		return ErrZeroDate
	}
	if !r.Priority.Valid() {
		return ErrInvalidPriority
	}
	if !r.Category.Valid() {
		return ErrInvalidCategory
	}
	return nil
}

// IsOverdue is evaluated against the supplied clock on every call; it is never cached.
func (r Reminder) IsOverdue(now time.Time) bool {
	return !r.IsCompleted && r.DueDate.Before(now)
}

func (t TotalAmount) Validate() error {
	if t.Amount.Cents < 0 {
		return ErrInvalidAmount
	}
	return nil
}

// StartOfDay truncates t to midnight in t's location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// EndOfDay returns the last representable instant of t's day.
func EndOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}

// DaysBetween counts calendar days from a to b; negative when b is before a.
func DaysBetween(a, b time.Time) int {
	b = b.In(a.Location())
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	start := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	end := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(end.Sub(start).Hours() / 24)
}
