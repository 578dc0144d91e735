package http

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"fintrack/internal/core"
	applog "fintrack/internal/log"
	"fintrack/internal/report"
)

type summaryResponse struct {
	Balance       core.Money `json:"balance"`
	TotalIncome   core.Money `json:"totalIncome"`
	TotalExpenses core.Money `json:"totalExpenses"`
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	ns := s.namespace(r)
	if cached, found := s.summaryCache.Get(ns); found {
		slog.DebugContext(r.Context(), "Summary cache hit", applog.FieldNamespace, ns)
		writeJSON(w, http.StatusOK, cached)
		return
	}

	txs, err := s.store.LoadTransactions(r.Context(), ns)
	if err != nil {
		writeStoreError(w, r, "load transactions", err)
		return
	}

	resp := summaryResponse{
		Balance:       report.Balance(txs),
		TotalIncome:   report.TotalByType(txs, core.Income),
		TotalExpenses: report.TotalByType(txs, core.Expense),
	}
	s.summaryCache.Set(ns, resp)
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleMonthlyAnalysis(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	months, err := s.parseMonths(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	asOf, err := parseDateParam(r, "asOf", core.DateOf(time.Now()))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	ns := s.namespace(r)
	txs, err := s.store.LoadTransactions(r.Context(), ns)
	if err != nil {
		writeStoreError(w, r, "load transactions", err)
		return
	}

	writeJSON(w, http.StatusOK, report.MonthlySeries(txs, months, asOf))
}

func (s *Server) handleCategoryAnalysis(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	txType := core.Expense
	if v := strings.TrimSpace(r.URL.Query().Get("type")); v != "" {
		txType = core.TransactionType(v)
		if !txType.IsValid() {
			writeError(w, http.StatusBadRequest, "invalid type: must be 'income' or 'expense'")
			return
		}
	}

	ns := s.namespace(r)
	txs, err := s.store.LoadTransactions(r.Context(), ns)
	if err != nil {
		writeStoreError(w, r, "load transactions", err)
		return
	}

	writeJSON(w, http.StatusOK, report.GroupByCategory(txs, txType))
}

// handleBudgetStatus reports per-category usage for a date window, one row
// per configured budget entry. The window defaults to the current calendar
// month.
func (s *Server) handleBudgetStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	now := time.Now()
	monthStart := core.NewDate(now.Year(), now.Month(), 1)
	monthEnd := core.DateOf(monthStart.AddDate(0, 1, -1))

	from, err := parseDateParam(r, "from", monthStart)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	to, err := parseDateParam(r, "to", monthEnd)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if to.Before(from.Time) {
		writeError(w, http.StatusBadRequest, "invalid window: to precedes from")
		return
	}

	ns := s.namespace(r)
	entries, err := s.store.LoadBudgets(r.Context(), ns)
	if err != nil {
		writeStoreError(w, r, "load budgets", err)
		return
	}
	txs, err := s.store.LoadTransactions(r.Context(), ns)
	if err != nil {
		writeStoreError(w, r, "load transactions", err)
		return
	}

	usages := make([]report.BudgetUsage, 0, len(entries))
	for _, entry := range entries {
		usages = append(usages, report.BudgetStatus(entry, txs, from, to))
	}
	writeJSON(w, http.StatusOK, usages)
}

func (s *Server) goalProjection(w http.ResponseWriter, r *http.Request, id string) {
	asOf, err := parseDateParam(r, "asOf", core.DateOf(time.Now()))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	ns := s.namespace(r)
	goals, err := s.store.LoadGoals(r.Context(), ns)
	if err != nil {
		writeStoreError(w, r, "load goals", err)
		return
	}

	for _, g := range goals {
		if g.ID == id {
			writeJSON(w, http.StatusOK, report.GoalProjection(g, asOf))
			return
		}
	}
	writeError(w, http.StatusNotFound, "goal not found")
}

type categoriesResponse struct {
	Income  []string `json:"income"`
	Expense []string `json:"expense"`
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	writeJSON(w, http.StatusOK, categoriesResponse{
		Income:  core.IncomeCategories,
		Expense: core.ExpenseCategories,
	})
}

// handleExport serves the full analysis document as a JSON download.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	months, err := s.parseMonths(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	ns := s.namespace(r)
	txs, err := s.store.LoadTransactions(r.Context(), ns)
	if err != nil {
		writeStoreError(w, r, "load transactions", err)
		return
	}

	now := time.Now()
	doc := report.BuildExport(txs, months, core.DateOf(now), now)

	filename := "fintrack-export-" + now.UTC().Format("2006-01-02") + ".json"
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	slog.InfoContext(r.Context(), "Export generated",
		applog.FieldNamespace, ns,
		"months", months,
		applog.FieldCount, len(txs))
	writeJSON(w, http.StatusOK, doc)
}
