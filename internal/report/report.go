// Package report computes derived financial metrics from transaction, goal
// and budget records.
//
// Every function here is pure: it reads its input slice, allocates a fresh
// result, performs no I/O and never mutates or aliases the input. Empty or
// nil input collections always yield the zero-valued result instead of an
// error; callers that failed to load data should pass an empty slice, never
// nil-check here.
package report

import (
	"time"

	"fintrack/internal/core"
)

// MonthBucket is one calendar month of a monthly series.
type MonthBucket struct {
	Year    int             `json:"year"`
	Month   time.Month      `json:"month"`
	Label   string          `json:"monthLabel"`
	Income  core.Money      `json:"income"`
	Expense core.Money      `json:"expense"`
	Savings core.Money      `json:"savings"`
}

// BudgetUsage describes spending against a single budget ceiling.
// Remaining goes negative when over budget; that is a reportable state,
// not an error.
type BudgetUsage struct {
	Category    string     `json:"category"`
	Ceiling     core.Money `json:"ceiling"`
	Spent       core.Money `json:"spent"`
	Remaining   core.Money `json:"remaining"`
	PercentUsed float64    `json:"percentUsed"`
}

// Projection describes progress toward a goal as of a reference date.
//
// Remaining is deliberately not floored at zero: an over-funded goal yields
// a negative remaining (and a negative monthly need), which callers display
// as "done". DaysRemaining is negative for overdue goals.
type Projection struct {
	Remaining       core.Money `json:"remaining"`
	DaysRemaining   int        `json:"daysRemaining"`
	MonthsRemaining int        `json:"monthsRemaining"`
	MonthlyNeeded   core.Money `json:"monthlyAmountNeeded"`
}

// Balance returns income minus expenses over the whole input.
func Balance(txs []core.Transaction) core.Money {
	var cents int64
	for _, tx := range txs {
		switch tx.Type {
		case core.Income:
			cents += tx.Amount.Cents
		case core.Expense:
			cents -= tx.Amount.Cents
		}
	}
	return core.Money{Cents: cents}
}

// TotalByType sums the amounts of all records of the given type. Unknown
// types sum to zero.
func TotalByType(txs []core.Transaction, t core.TransactionType) core.Money {
	var cents int64
	for _, tx := range txs {
		if tx.Type == t {
			cents += tx.Amount.Cents
		}
	}
	return core.Money{Cents: cents}
}

// GroupByCategory sums amounts per category for records of the given type.
// Categories with no records in the filtered set are absent from the result,
// not zero-filled. Map order is unspecified; presentation sorts separately.
func GroupByCategory(txs []core.Transaction, t core.TransactionType) map[string]core.Money {
	out := make(map[string]core.Money)
	for _, tx := range txs {
		if tx.Type != t {
			continue
		}
		sum := out[tx.Category]
		sum.Cents += tx.Amount.Cents
		out[tx.Category] = sum
	}
	return out
}

// MonthlySeries partitions transactions into calendar-month buckets for the
// monthCount months ending at ref's month inclusive, ordered oldest first.
//
// The series is dense: months without transactions still appear with all
// three fields zero, so chart axes stay stable regardless of the data.
// monthCount <= 0 yields an empty series.
func MonthlySeries(txs []core.Transaction, monthCount int, ref core.Date) []MonthBucket {
	if monthCount <= 0 {
		return nil
	}

	buckets := make([]MonthBucket, monthCount)
	index := make(map[int]int, monthCount)
	for i := 0; i < monthCount; i++ {
		// Normalize via time.Date so month arithmetic rolls over years.
		m := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, time.UTC).
			AddDate(0, i-(monthCount-1), 0)
		buckets[i] = MonthBucket{
			Year:  m.Year(),
			Month: m.Month(),
			Label: m.Format("Jan 2006"),
		}
		index[monthKey(m.Year(), m.Month())] = i
	}

	for _, tx := range txs {
		i, ok := index[monthKey(tx.Date.Year(), tx.Date.Month())]
		if !ok {
			continue
		}
		switch tx.Type {
		case core.Income:
			buckets[i].Income.Cents += tx.Amount.Cents
		case core.Expense:
			buckets[i].Expense.Cents += tx.Amount.Cents
		}
	}
	for i := range buckets {
		buckets[i].Savings.Cents = buckets[i].Income.Cents - buckets[i].Expense.Cents
	}
	return buckets
}

func monthKey(year int, month time.Month) int {
	return year*12 + int(month) - 1
}

// BudgetStatus reports spending in the entry's category against its ceiling
// over the inclusive [from, to] date window.
//
// PercentUsed is 0 when the ceiling is zero; over-budget yields a negative
// remaining and a percent above 100, never an error.
func BudgetStatus(entry core.BudgetEntry, txs []core.Transaction, from, to core.Date) BudgetUsage {
	var spent int64
	for _, tx := range txs {
		if tx.Type != core.Expense || tx.Category != entry.Category {
			continue
		}
		if tx.Date.Before(from.Time) || tx.Date.After(to.Time) {
			continue
		}
		spent += tx.Amount.Cents
	}

	usage := BudgetUsage{
		Category:  entry.Category,
		Ceiling:   entry.Ceiling,
		Spent:     core.Money{Cents: spent},
		Remaining: core.Money{Cents: entry.Ceiling.Cents - spent},
	}
	if entry.Ceiling.Cents > 0 {
		usage.PercentUsed = float64(spent) / float64(entry.Ceiling.Cents) * 100
	}
	return usage
}

// GoalProjection derives the remaining amount, days and months to deadline,
// and the monthly contribution needed to finish on time.
//
// MonthsRemaining is ceil(days/30) floored at one month, so a goal due
// tomorrow needs its whole remainder this month instead of dividing by a
// near-zero window. Remaining is not clamped for over-funded goals.
func GoalProjection(g core.Goal, asOf core.Date) Projection {
	remaining := g.TargetAmount.Cents - g.ProgressAmount.Cents

	days := daysBetween(asOf, g.Deadline)
	months := ceilDiv(days, 30)
	if months < 1 {
		months = 1
	}

	return Projection{
		Remaining:       core.Money{Cents: remaining},
		DaysRemaining:   days,
		MonthsRemaining: months,
		MonthlyNeeded:   core.Money{Cents: divRound(remaining, int64(months))},
	}
}

// daysBetween returns whole days from a to b; negative when b is earlier.
// Both operands are midnight dates, so the division is exact.
func daysBetween(a, b core.Date) int {
	return int(b.Sub(a.Time) / (24 * time.Hour))
}

// ceilDiv divides rounding toward positive infinity for positive numerators;
// non-positive numerators round toward zero, which the month floor absorbs.
func ceilDiv(n, d int) int {
	if n <= 0 {
		return n / d
	}
	return (n + d - 1) / d
}

// divRound divides cents by a positive divisor, rounding half away from zero.
func divRound(cents, div int64) int64 {
	if div == 0 {
		return 0
	}
	if cents < 0 {
		return -((-cents + div/2) / div)
	}
	return (cents + div/2) / div
}
