package report

import (
	"testing"
	"time"

	"fintrack/internal/core"
)

func tx(id string, date core.Date, cents int64, t core.TransactionType, category string) core.Transaction {
	return core.Transaction{
		ID:          id,
		Date:        date,
		Description: id,
		Amount:      core.Money{Cents: cents},
		Type:        t,
		Category:    category,
	}
}

func jan(day int) core.Date { return core.NewDate(2025, time.January, day) }

func TestBalance(t *testing.T) {
	txs := []core.Transaction{
		tx("a", jan(1), 10000, core.Income, "Salary"),
		tx("b", jan(2), 4000, core.Expense, "Food"),
		tx("c", jan(3), 2500, core.Expense, "Transportation"),
	}

	if got := Balance(txs); got.Cents != 3500 {
		t.Errorf("Balance = %d, want 3500", got.Cents)
	}
	if got := Balance(nil); got.Cents != 0 {
		t.Errorf("Balance(nil) = %d, want 0", got.Cents)
	}
}

func TestBalanceEqualsIncomeMinusExpenses(t *testing.T) {
	txs := []core.Transaction{
		tx("a", jan(1), 123456, core.Income, "Salary"),
		tx("b", jan(5), 999, core.Income, "Gifts"),
		tx("c", jan(9), 78901, core.Expense, "Housing"),
		tx("d", jan(20), 1, core.Expense, "Food"),
	}

	balance := Balance(txs)
	income := TotalByType(txs, core.Income)
	expenses := TotalByType(txs, core.Expense)
	if balance.Cents != income.Cents-expenses.Cents {
		t.Errorf("balance %d != income %d - expenses %d", balance.Cents, income.Cents, expenses.Cents)
	}
}

func TestTotalByTypeMatchesGroupSum(t *testing.T) {
	txs := []core.Transaction{
		tx("a", jan(1), 5000, core.Expense, "Food"),
		tx("b", jan(2), 3000, core.Expense, "Food"),
		tx("c", jan(3), 7000, core.Expense, "Housing"),
		tx("d", jan(4), 100000, core.Income, "Salary"),
	}

	groups := GroupByCategory(txs, core.Expense)
	var groupSum int64
	for _, m := range groups {
		groupSum += m.Cents
	}
	if total := TotalByType(txs, core.Expense); total.Cents != groupSum {
		t.Errorf("TotalByType = %d, group sum = %d", total.Cents, groupSum)
	}

	if got := groups["Food"].Cents; got != 8000 {
		t.Errorf("Food = %d, want 8000", got)
	}
	if _, ok := groups["Salary"]; ok {
		t.Error("income category leaked into expense grouping")
	}
	if _, ok := groups["Utilities"]; ok {
		t.Error("category without records should be absent, not zero-filled")
	}
}

func TestGroupByCategoryEmptyInput(t *testing.T) {
	groups := GroupByCategory(nil, core.Expense)
	if groups == nil {
		t.Fatal("expected empty map, got nil")
	}
	if len(groups) != 0 {
		t.Errorf("expected no entries, got %d", len(groups))
	}
}

func TestMonthlySeriesDense(t *testing.T) {
	// Data only in the middle month; all six must still appear.
	txs := []core.Transaction{
		tx("a", core.NewDate(2024, time.November, 15), 1000, core.Expense, "Food"),
	}
	series := MonthlySeries(txs, 6, jan(31))

	if len(series) != 6 {
		t.Fatalf("len = %d, want 6", len(series))
	}
	if series[0].Label != "Aug 2024" {
		t.Errorf("first label = %q, want Aug 2024", series[0].Label)
	}
	if series[5].Label != "Jan 2025" {
		t.Errorf("last label = %q, want Jan 2025", series[5].Label)
	}
	for i, b := range series {
		if b.Label == "Nov 2024" {
			if b.Expense.Cents != 1000 {
				t.Errorf("Nov expense = %d, want 1000", b.Expense.Cents)
			}
			continue
		}
		if b.Income.Cents != 0 || b.Expense.Cents != 0 || b.Savings.Cents != 0 {
			t.Errorf("bucket %d (%s) not zero: %+v", i, b.Label, b)
		}
	}
}

func TestMonthlySeriesWorkedExample(t *testing.T) {
	txs := []core.Transaction{
		tx("a", jan(10), 10000, core.Income, "Salary"),
		tx("b", jan(12), 4000, core.Expense, "Food"),
	}
	series := MonthlySeries(txs, 1, jan(31))

	if len(series) != 1 {
		t.Fatalf("len = %d, want 1", len(series))
	}
	b := series[0]
	if b.Label != "Jan 2025" || b.Year != 2025 || b.Month != time.January {
		t.Errorf("bucket identity = %d/%v %q", b.Year, b.Month, b.Label)
	}
	if b.Income.Cents != 10000 || b.Expense.Cents != 4000 || b.Savings.Cents != 6000 {
		t.Errorf("bucket totals = %+v", b)
	}

	if got := Balance(txs); got.Cents != 6000 {
		t.Errorf("Balance = %d, want 6000", got.Cents)
	}
	if got := GroupByCategory(txs, core.Expense)["Food"].Cents; got != 4000 {
		t.Errorf("Food = %d, want 4000", got)
	}
}

func TestMonthlySeriesEdges(t *testing.T) {
	if got := MonthlySeries(nil, 0, jan(1)); got != nil {
		t.Errorf("monthCount 0 should yield nil, got %v", got)
	}
	if got := MonthlySeries(nil, -3, jan(1)); got != nil {
		t.Errorf("negative monthCount should yield nil, got %v", got)
	}

	empty := MonthlySeries([]core.Transaction{}, 3, jan(1))
	if len(empty) != 3 {
		t.Fatalf("empty input: len = %d, want 3", len(empty))
	}
	for _, b := range empty {
		if b.Income.Cents != 0 || b.Expense.Cents != 0 || b.Savings.Cents != 0 {
			t.Errorf("empty input bucket not zero: %+v", b)
		}
	}

	// Transactions outside the window are ignored.
	outside := []core.Transaction{
		tx("old", core.NewDate(2020, time.May, 1), 999, core.Expense, "Food"),
	}
	for _, b := range MonthlySeries(outside, 3, jan(1)) {
		if b.Expense.Cents != 0 {
			t.Errorf("out-of-window transaction counted in %s", b.Label)
		}
	}
}

func TestMonthlySeriesYearRollover(t *testing.T) {
	series := MonthlySeries(nil, 3, core.NewDate(2025, time.February, 10))
	wantLabels := []string{"Dec 2024", "Jan 2025", "Feb 2025"}
	for i, want := range wantLabels {
		if series[i].Label != want {
			t.Errorf("series[%d].Label = %q, want %q", i, series[i].Label, want)
		}
	}
}

func TestMonthlySeriesDoesNotMutateInput(t *testing.T) {
	txs := []core.Transaction{
		tx("a", jan(10), 10000, core.Income, "Salary"),
		tx("b", jan(12), 4000, core.Expense, "Food"),
	}
	before := make([]core.Transaction, len(txs))
	copy(before, txs)

	first := MonthlySeries(txs, 2, jan(31))
	second := MonthlySeries(txs, 2, jan(31))

	for i := range txs {
		if txs[i] != before[i] {
			t.Fatalf("input mutated at %d: %+v", i, txs[i])
		}
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("series not idempotent at %d: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestBudgetStatus(t *testing.T) {
	entry := core.BudgetEntry{Category: "Food", Ceiling: core.Money{Cents: 50000}}
	txs := []core.Transaction{
		tx("a", jan(5), 30000, core.Expense, "Food"),
		tx("b", jan(20), 30000, core.Expense, "Food"),
		tx("c", jan(12), 10000, core.Expense, "Housing"),
		tx("d", core.NewDate(2025, time.February, 1), 5000, core.Expense, "Food"),
		tx("e", jan(8), 100000, core.Income, "Salary"),
	}

	usage := BudgetStatus(entry, txs, jan(1), jan(31))
	if usage.Spent.Cents != 60000 {
		t.Errorf("Spent = %d, want 60000", usage.Spent.Cents)
	}
	if usage.Remaining.Cents != -10000 {
		t.Errorf("Remaining = %d, want -10000 (over budget is reportable, not clamped)", usage.Remaining.Cents)
	}
	if usage.PercentUsed != 120 {
		t.Errorf("PercentUsed = %v, want 120", usage.PercentUsed)
	}
}

func TestBudgetStatusWindowInclusive(t *testing.T) {
	entry := core.BudgetEntry{Category: "Food", Ceiling: core.Money{Cents: 10000}}
	txs := []core.Transaction{
		tx("first", jan(1), 100, core.Expense, "Food"),
		tx("last", jan(31), 200, core.Expense, "Food"),
		tx("before", core.NewDate(2024, time.December, 31), 400, core.Expense, "Food"),
		tx("after", core.NewDate(2025, time.February, 1), 800, core.Expense, "Food"),
	}

	usage := BudgetStatus(entry, txs, jan(1), jan(31))
	if usage.Spent.Cents != 300 {
		t.Errorf("Spent = %d, want 300 (both window edges inclusive)", usage.Spent.Cents)
	}
}

func TestBudgetStatusZeroCeiling(t *testing.T) {
	entry := core.BudgetEntry{Category: "Food", Ceiling: core.Money{}}
	txs := []core.Transaction{
		tx("a", jan(5), 5000, core.Expense, "Food"),
	}

	usage := BudgetStatus(entry, txs, jan(1), jan(31))
	if usage.PercentUsed != 0 {
		t.Errorf("PercentUsed = %v, want 0 for zero ceiling", usage.PercentUsed)
	}
	if usage.Remaining.Cents != -5000 {
		t.Errorf("Remaining = %d, want -5000", usage.Remaining.Cents)
	}
}

func TestGoalProjectionWorkedExample(t *testing.T) {
	g := core.Goal{
		ID:             "g-1",
		Name:           "Emergency Fund",
		TargetAmount:   core.Money{Cents: 120000},
		ProgressAmount: core.Money{Cents: 60000},
		Deadline:       core.NewDate(2025, time.April, 1),
	}
	p := GoalProjection(g, jan(1))

	if p.Remaining.Cents != 60000 {
		t.Errorf("Remaining = %d, want 60000", p.Remaining.Cents)
	}
	if p.DaysRemaining != 90 {
		t.Errorf("DaysRemaining = %d, want 90", p.DaysRemaining)
	}
	if p.MonthsRemaining != 3 {
		t.Errorf("MonthsRemaining = %d, want 3", p.MonthsRemaining)
	}
	if p.MonthlyNeeded.Cents != 20000 {
		t.Errorf("MonthlyNeeded = %d, want 20000", p.MonthlyNeeded.Cents)
	}
}

func TestGoalProjectionDueTomorrow(t *testing.T) {
	g := core.Goal{
		TargetAmount:   core.Money{Cents: 30000},
		ProgressAmount: core.Money{Cents: 0},
		Deadline:       jan(2),
	}
	p := GoalProjection(g, jan(1))

	if p.DaysRemaining != 1 {
		t.Errorf("DaysRemaining = %d, want 1", p.DaysRemaining)
	}
	if p.MonthsRemaining != 1 {
		t.Errorf("MonthsRemaining = %d, want 1 (floored)", p.MonthsRemaining)
	}
	if p.MonthlyNeeded.Cents != 30000 {
		t.Errorf("MonthlyNeeded = %d, want the whole remainder", p.MonthlyNeeded.Cents)
	}
}

func TestGoalProjectionOverdue(t *testing.T) {
	g := core.Goal{
		TargetAmount:   core.Money{Cents: 10000},
		ProgressAmount: core.Money{Cents: 4000},
		Deadline:       core.NewDate(2024, time.December, 22),
	}
	p := GoalProjection(g, jan(1))

	if p.DaysRemaining != -10 {
		t.Errorf("DaysRemaining = %d, want -10", p.DaysRemaining)
	}
	if p.MonthsRemaining != 1 {
		t.Errorf("MonthsRemaining = %d, want 1 (floored)", p.MonthsRemaining)
	}
	if p.Remaining.Cents != 6000 {
		t.Errorf("Remaining = %d, want 6000", p.Remaining.Cents)
	}
}

func TestGoalProjectionOverfunded(t *testing.T) {
	g := core.Goal{
		TargetAmount:   core.Money{Cents: 100000},
		ProgressAmount: core.Money{Cents: 130000},
		Deadline:       core.NewDate(2025, time.July, 1),
	}
	p := GoalProjection(g, jan(1))

	if p.Remaining.Cents != -30000 {
		t.Errorf("Remaining = %d, want -30000 (not clamped)", p.Remaining.Cents)
	}
	if p.MonthlyNeeded.Cents >= 0 {
		t.Errorf("MonthlyNeeded = %d, want negative for over-funded goal", p.MonthlyNeeded.Cents)
	}
}

func TestDivRound(t *testing.T) {
	tests := []struct {
		cents, div, want int64
	}{
		{100, 3, 33},
		{200, 3, 67},
		{100, 2, 50},
		{-100, 3, -33},
		{-200, 3, -67},
		{5, 0, 0},
	}
	for _, tt := range tests {
		if got := divRound(tt.cents, tt.div); got != tt.want {
			t.Errorf("divRound(%d, %d) = %d, want %d", tt.cents, tt.div, got, tt.want)
		}
	}
}
