package report

import (
	"time"

	"fintrack/internal/core"
)

// MonthTotals is one month's slice of an export document.
type MonthTotals struct {
	Income  core.Money `json:"income"`
	Expense core.Money `json:"expense"`
	Savings core.Money `json:"savings"`
}

// Document is the downloadable analysis export. The field layout matches
// the JSON documents earlier versions of the tracker produced, so previous
// exports stay readable side by side with new ones.
type Document struct {
	MonthlyAnalysis  map[string]MonthTotals `json:"monthlyAnalysis"`
	CategoryAnalysis map[string]core.Money  `json:"categoryAnalysis"`
	ExportDate       time.Time              `json:"exportDate"`
}

// BuildExport assembles an export document: a dense monthly series for the
// monthCount months ending at asOf, expense totals per category over the
// full record set, and the generation timestamp.
func BuildExport(txs []core.Transaction, monthCount int, asOf core.Date, now time.Time) Document {
	monthly := make(map[string]MonthTotals, monthCount)
	for _, b := range MonthlySeries(txs, monthCount, asOf) {
		monthly[b.Label] = MonthTotals{
			Income:  b.Income,
			Expense: b.Expense,
			Savings: b.Savings,
		}
	}
	return Document{
		MonthlyAnalysis:  monthly,
		CategoryAnalysis: GroupByCategory(txs, core.Expense),
		ExportDate:       now.UTC(),
	}
}
