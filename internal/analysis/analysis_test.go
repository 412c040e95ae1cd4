package analysis

import (
	"testing"
	"time"

	"fintrack/internal/core"
)

func at(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

func budget(amount core.Money, category *core.ExpenseCategory) core.Budget {
	return core.Budget{
		ID:        "b1",
		Name:      "March",
		Amount:    amount,
		Category:  category,
		StartDate: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC),
	}
}

func expense(id string, amount core.Money, c core.ExpenseCategory, date time.Time) core.Expense {
	return core.Expense{ID: id, Title: id, Amount: amount, Category: c, Date: date}
}

func TestByCategoryContainsEveryCategory(t *testing.T) {
	for _, expenses := range [][]core.Expense{
		nil,
		{expense("a", core.NewMoney(10, 0), core.CategoryFood, at(2025, 3, 2))},
		{
			expense("a", core.NewMoney(10, 0), core.CategoryFood, at(2025, 3, 2)),
			expense("b", core.NewMoney(5, 0), core.CategoryFood, at(2025, 3, 3)),
			expense("c", core.NewMoney(7, 0), core.CategoryTravel, at(2025, 3, 3)),
		},
	} {
		totals := ByCategory(expenses)
		if len(totals) != len(core.ExpenseCategories) {
			t.Fatalf("expected %d keys, got %d", len(core.ExpenseCategories), len(totals))
		}
		for _, c := range core.ExpenseCategories {
			if _, ok := totals[c]; !ok {
				t.Fatalf("missing category %s", c)
			}
		}
	}

	totals := ByCategory([]core.Expense{
		expense("a", core.NewMoney(10, 0), core.CategoryFood, at(2025, 3, 2)),
		expense("b", core.NewMoney(5, 0), core.CategoryFood, at(2025, 3, 3)),
	})
	if totals[core.CategoryFood].Cents != 1500 || !totals[core.CategoryBills].IsZero() {
		t.Fatalf("unexpected totals: %v", totals)
	}
}

func TestByCategoryFoldsUnknownIntoOther(t *testing.T) {
	totals := ByCategory([]core.Expense{
		expense("a", core.NewMoney(5, 0), core.ExpenseCategory("groceries"), at(2025, 3, 2)),
		expense("b", core.NewMoney(2, 0), core.CategoryOther, at(2025, 3, 2)),
	})
	if len(totals) != len(core.ExpenseCategories) {
		t.Fatalf("expected %d keys, got %d", len(core.ExpenseCategories), len(totals))
	}
	if _, ok := totals["groceries"]; ok {
		t.Fatalf("unknown category leaked into the result")
	}
	if totals[core.CategoryOther].Cents != 700 {
		t.Fatalf("other = %d cents, want 700", totals[core.CategoryOther].Cents)
	}
}

func TestTopDoesNotAliasRankedRows(t *testing.T) {
	rows := Ranked(ByCategory([]core.Expense{
		expense("a", core.NewMoney(30, 0), core.CategoryTravel, at(2025, 3, 2)),
		expense("b", core.NewMoney(20, 0), core.CategoryBills, at(2025, 3, 2)),
		expense("c", core.NewMoney(10, 0), core.CategoryFood, at(2025, 3, 2)),
	}))
	third := rows[2]

	top := Top(rows, 2)
	top = append(top, CategorySpending{Category: core.CategoryHousing})
	top[0].Amount = core.Zero

	if rows[2] != third {
		t.Fatalf("appending to Top changed the ranked rows: %+v", rows[2])
	}
	if rows[0].Amount.Cents != 3000 {
		t.Fatalf("editing Top changed the ranked rows: %+v", rows[0])
	}
}

func TestRankedAndTop(t *testing.T) {
	totals := ByCategory([]core.Expense{
		expense("a", core.NewMoney(10, 0), core.CategoryFood, at(2025, 3, 2)),
		expense("b", core.NewMoney(30, 0), core.CategoryTravel, at(2025, 3, 3)),
		expense("c", core.NewMoney(20, 0), core.CategoryBills, at(2025, 3, 3)),
		expense("d", core.NewMoney(5, 0), core.CategoryHousing, at(2025, 3, 3)),
	})
	top := Top(Ranked(totals), 0)
	if len(top) != DefaultTopCategories {
		t.Fatalf("expected %d rows, got %d", DefaultTopCategories, len(top))
	}
	want := []core.ExpenseCategory{core.CategoryTravel, core.CategoryBills, core.CategoryFood}
	for i, c := range want {
		if top[i].Category != c {
			t.Fatalf("row %d = %s, want %s", i, top[i].Category, c)
		}
	}

	// Zero rows tie; display order breaks the tie.
	all := Ranked(ByCategory(nil))
	for i, row := range all {
		if row.Category != core.ExpenseCategories[i] {
			t.Fatalf("tie order broken at %d: %s", i, row.Category)
		}
	}
}

func TestBreakdownSkipsEmptyCategories(t *testing.T) {
	rows := Breakdown([]core.Expense{
		expense("a", core.NewMoney(75, 0), core.CategoryFood, at(2025, 3, 2)),
		expense("b", core.NewMoney(25, 0), core.CategoryTravel, at(2025, 3, 3)),
	})
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].Category != core.CategoryFood || rows[0].Percentage != 75 {
		t.Fatalf("unexpected first row %+v", rows[0])
	}
	if rows[1].Percentage != 25 {
		t.Fatalf("unexpected second row %+v", rows[1])
	}
}

func TestStatus(t *testing.T) {
	amount := core.NewMoney(100, 0)
	tests := []struct {
		remaining core.Money
		want      core.BudgetStatus
	}{
		{core.NewMoney(100, 0), core.StatusGood},
		{core.NewMoney(20, 0), core.StatusGood},
		{core.NewMoney(19, 99), core.StatusWarning},
		{core.NewMoney(0, 1), core.StatusWarning},
		{core.Zero, core.StatusExceeded},
	}
	for _, tt := range tests {
		if got := Status(amount, tt.remaining); got != tt.want {
			t.Errorf("Status(%s) = %s, want %s", tt.remaining, got, tt.want)
		}
	}
}

func TestAnalyzeOverspentFoodBudget(t *testing.T) {
	food := core.CategoryFood
	b := budget(core.NewMoney(500, 0), &food)
	a := Analyze(b, []core.Expense{
		expense("a", core.NewMoney(600, 0), core.CategoryFood, at(2025, 3, 10)),
		expense("b", core.NewMoney(80, 0), core.CategoryTravel, at(2025, 3, 10)),
	}, at(2025, 3, 15))

	if !a.Remaining.IsZero() {
		t.Errorf("Remaining = %s, want 0", a.Remaining)
	}
	if a.PercentageUsed != 100 {
		t.Errorf("PercentageUsed = %v, want 100", a.PercentageUsed)
	}
	if a.SpentPercentage != 120 {
		t.Errorf("SpentPercentage = %v, want 120", a.SpentPercentage)
	}
	if a.Status != core.StatusExceeded {
		t.Errorf("Status = %s, want exceeded", a.Status)
	}
	if !a.DailyAllowance.IsZero() {
		t.Errorf("DailyAllowance = %s, want 0", a.DailyAllowance)
	}
	if len(a.Expenses) != 1 || a.TotalSpent.Cents != 60000 {
		t.Errorf("travel expense should be filtered out: %+v", a.Expenses)
	}
}

func TestAnalyzeDailyAllowance(t *testing.T) {
	b := budget(core.NewMoney(310, 0), nil)
	expenses := []core.Expense{expense("a", core.NewMoney(100, 0), core.CategoryBills, at(2025, 3, 1))}

	tests := []struct {
		name string
		now  time.Time
		want int64
		days int
	}{
		{"mid budget", at(2025, 3, 24), 3000, 7},
		{"last day", at(2025, 3, 31), 21000, 0},
		{"after end", at(2025, 4, 2), 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := Analyze(b, expenses, tt.now)
			if a.DailyAllowance.Cents != tt.want {
				t.Errorf("DailyAllowance = %d, want %d", a.DailyAllowance.Cents, tt.want)
			}
			if a.DaysRemaining != tt.days {
				t.Errorf("DaysRemaining = %d, want %d", a.DaysRemaining, tt.days)
			}
			if a.Status != core.StatusGood {
				t.Errorf("Status = %s, want good", a.Status)
			}
		})
	}
}

func TestAnalyzeTopCategoriesLimited(t *testing.T) {
	b := budget(core.NewMoney(1000, 0), nil)
	var expenses []core.Expense
	for i, c := range core.ExpenseCategories[:5] {
		expenses = append(expenses, expense(string(c), core.NewMoney(int64(10*(i+1)), 0), c, at(2025, 3, 5)))
	}
	a := Analyze(b, expenses, at(2025, 3, 5))
	if len(a.Breakdown) != 5 || len(a.TopCategories) != 3 {
		t.Fatalf("breakdown=%d top=%d", len(a.Breakdown), len(a.TopCategories))
	}
	if a.TopCategories[0].Category != core.ExpenseCategories[4] {
		t.Fatalf("largest category should lead, got %s", a.TopCategories[0].Category)
	}
}
