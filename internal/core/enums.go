package core

import "fmt"

type (
	ExpenseCategory      string
	RecurringFrequency   string
	BudgetStatus         string
	ReminderPriority     string
	ReminderCategory     string
	InterestType         string
	CompoundingFrequency string
)

const (
	CategoryFood          ExpenseCategory = "food"
	CategoryTransport     ExpenseCategory = "transportation"
	CategoryShopping      ExpenseCategory = "shopping"
	CategoryEntertainment ExpenseCategory = "entertainment"
	CategoryBills         ExpenseCategory = "bills"
	CategoryHealthcare    ExpenseCategory = "healthcare"
	CategoryEducation     ExpenseCategory = "education"
	CategoryTravel        ExpenseCategory = "travel"
	CategoryHousing       ExpenseCategory = "housing"
	CategoryOther         ExpenseCategory = "other"
)

const (
	Daily   RecurringFrequency = "daily"
	Weekly  RecurringFrequency = "weekly"
	Monthly RecurringFrequency = "monthly"
	Yearly  RecurringFrequency = "yearly"
)

const (
	StatusGood     BudgetStatus = "good"
	StatusWarning  BudgetStatus = "warning"
	StatusExceeded BudgetStatus = "exceeded"
)

const (
	PriorityLow    ReminderPriority = "low"
	PriorityMedium ReminderPriority = "medium"
	PriorityHigh   ReminderPriority = "high"
)

const (
	ReminderPersonal ReminderCategory = "personal"
	ReminderWork     ReminderCategory = "work"
	ReminderHealth   ReminderCategory = "health"
	ReminderFinance  ReminderCategory = "finance"
	ReminderOther    ReminderCategory = "other"
)

const (
	SimpleInterest   InterestType = "simple"
	CompoundInterest InterestType = "compound"
)

const (
	CompoundDaily        CompoundingFrequency = "daily"
	CompoundMonthly      CompoundingFrequency = "monthly"
	CompoundQuarterly    CompoundingFrequency = "quarterly"
	CompoundSemiannually CompoundingFrequency = "semiannually"
	CompoundAnnually     CompoundingFrequency = "annually"
)

// ExpenseCategories lists every expense category in display order.
// Aggregations that must report all categories iterate this slice.
var ExpenseCategories = []ExpenseCategory{
	CategoryFood,
	CategoryTransport,
	CategoryShopping,
	CategoryEntertainment,
	CategoryBills,
	CategoryHealthcare,
	CategoryEducation,
	CategoryTravel,
	CategoryHousing,
	CategoryOther,
}

var expenseCategoryNames = map[ExpenseCategory]string{
	CategoryFood:          "Food & Dining",
	CategoryTransport:     "Transportation",
	CategoryShopping:      "Shopping",
	CategoryEntertainment: "Entertainment",
	CategoryBills:         "Bills & Utilities",
	CategoryHealthcare:    "Healthcare",
	CategoryEducation:     "Education",
	CategoryTravel:        "Travel",
	CategoryHousing:       "Housing",
	CategoryOther:         "Other",
}

func (c ExpenseCategory) Valid() bool {
	_, ok := expenseCategoryNames[c]
	return ok
}

func (c ExpenseCategory) DisplayName() string {
	if name, ok := expenseCategoryNames[c]; ok {
		return name
	}
	return string(c)
}

// Index returns the position of c in ExpenseCategories, or len(ExpenseCategories) when unknown.
func (c ExpenseCategory) Index() int {
	for i, v := range ExpenseCategories {
		if v == c {
			return i
		}
	}
	return len(ExpenseCategories)
}

func (f RecurringFrequency) Valid() bool {
	switch f {
	case Daily, Weekly, Monthly, Yearly:
		return true
	}
	return false
}

func (s BudgetStatus) DisplayName() string {
	switch s {
	case StatusGood:
		return "On Track"
	case StatusWarning:
		return "Almost Exceeded"
	case StatusExceeded:
		return "Exceeded"
	}
	return string(s)
}

func (p ReminderPriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Rank orders priorities from low (0) to high (2).
func (p ReminderPriority) Rank() int {
	switch p {
	case PriorityMedium:
		return 1
	case PriorityHigh:
		return 2
	}
	return 0
}

func (c ReminderCategory) Valid() bool {
	switch c {
	case ReminderPersonal, ReminderWork, ReminderHealth, ReminderFinance, ReminderOther:
		return true
	}
	return false
}

func (t InterestType) Valid() bool {
	return t == SimpleInterest || t == CompoundInterest
}

// PeriodsPerYear is the number of compounding periods in one year.
func (f CompoundingFrequency) PeriodsPerYear() int {
	switch f {
	case CompoundDaily:
		return 365
	case CompoundMonthly:
		return 12
	case CompoundQuarterly:
		return 4
	case CompoundSemiannually:
		return 2
	case CompoundAnnually:
		return 1
	}
	return 0
}

func (f CompoundingFrequency) Valid() bool {
	return f.PeriodsPerYear() > 0
}

// ParseExpenseCategory is the inverse of the string conversion, rejecting unknown values.
func ParseExpenseCategory(s string) (ExpenseCategory, error) {
	c := ExpenseCategory(s)
	if !c.Valid() {
		return "", fmt.Errorf("unknown expense category %q", s)
	}
	return c, nil
}
