package http

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"fintrack/internal/core"
	applog "fintrack/internal/log"
)

// transactionRequest is the write payload for transactions. The ID is always
// server-assigned.
type transactionRequest struct {
	Date        core.Date            `json:"date"`
	Description string               `json:"description"`
	Amount      core.Money           `json:"amount"`
	Type        core.TransactionType `json:"type"`
	Category    string               `json:"category"`
}

func (req transactionRequest) toTransaction(id string) core.Transaction {
	return core.Transaction{
		ID:          id,
		Date:        req.Date,
		Description: sanitizeInput(req.Description),
		Amount:      req.Amount,
		Type:        req.Type,
		Category:    strings.TrimSpace(req.Category),
	}
}

func (s *Server) handleTransactions(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.listTransactions(w, r)
	case http.MethodPost:
		s.createTransaction(w, r)
	default:
		w.Header().Set("Allow", "GET, POST")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *Server) listTransactions(w http.ResponseWriter, r *http.Request) {
	ns := s.namespace(r)
	txs, err := s.store.LoadTransactions(r.Context(), ns)
	if err != nil {
		writeStoreError(w, r, "load transactions", err)
		return
	}
	writeJSON(w, http.StatusOK, txs)
}

func (s *Server) createTransaction(w http.ResponseWriter, r *http.Request) {
	var req transactionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	tx := req.toTransaction(uuid.NewString())
	if err := tx.Validate(); err != nil {
		writeValidationError(w, err)
		return
	}

	ns := s.namespace(r)
	txs, err := s.store.LoadTransactions(r.Context(), ns)
	if err != nil {
		writeStoreError(w, r, "load transactions", err)
		return
	}
	txs = append(txs, tx)
	if err := s.ledger.SaveTransactions(r.Context(), ns, txs); err != nil {
		writeStoreError(w, r, "save transactions", err)
		return
	}

	s.summaryCache.Delete(ns)
	slog.InfoContext(r.Context(), "Transaction created",
		applog.FieldNamespace, ns,
		applog.FieldTransactionID, tx.ID,
		"type", tx.Type,
		"amount_cents", tx.Amount.Cents)
	writeJSON(w, http.StatusCreated, tx)
}

func (s *Server) handleTransactionByID(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/api/transactions/")
	if id == "" || strings.Contains(id, "/") {
		writeError(w, http.StatusNotFound, "transaction not found")
		return
	}

	switch r.Method {
	case http.MethodPut:
		s.updateTransaction(w, r, id)
	case http.MethodDelete:
		s.deleteTransaction(w, r, id)
	default:
		w.Header().Set("Allow", "PUT, DELETE")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *Server) updateTransaction(w http.ResponseWriter, r *http.Request, id string) {
	var req transactionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	tx := req.toTransaction(id)
	if err := tx.Validate(); err != nil {
		writeValidationError(w, err)
		return
	}

	ns := s.namespace(r)
	txs, err := s.store.LoadTransactions(r.Context(), ns)
	if err != nil {
		writeStoreError(w, r, "load transactions", err)
		return
	}

	found := false
	for i := range txs {
		if txs[i].ID == id {
			txs[i] = tx
			found = true
			break
		}
	}
	if !found {
		writeError(w, http.StatusNotFound, "transaction not found")
		return
	}

	if err := s.ledger.SaveTransactions(r.Context(), ns, txs); err != nil {
		writeStoreError(w, r, "save transactions", err)
		return
	}

	s.summaryCache.Delete(ns)
	writeJSON(w, http.StatusOK, tx)
}

func (s *Server) deleteTransaction(w http.ResponseWriter, r *http.Request, id string) {
	ns := s.namespace(r)
	txs, err := s.store.LoadTransactions(r.Context(), ns)
	if err != nil {
		writeStoreError(w, r, "load transactions", err)
		return
	}

	kept := txs[:0:0]
	for _, tx := range txs {
		if tx.ID != id {
			kept = append(kept, tx)
		}
	}
	if len(kept) == len(txs) {
		writeError(w, http.StatusNotFound, "transaction not found")
		return
	}

	if err := s.ledger.SaveTransactions(r.Context(), ns, kept); err != nil {
		writeStoreError(w, r, "save transactions", err)
		return
	}

	s.summaryCache.Delete(ns)
	w.WriteHeader(http.StatusNoContent)
}

// goalRequest is the write payload for goals.
type goalRequest struct {
	Name           string     `json:"name"`
	TargetAmount   core.Money `json:"targetAmount"`
	ProgressAmount core.Money `json:"progressAmount"`
	Deadline       core.Date  `json:"deadline"`
}

func (req goalRequest) toGoal(id string) core.Goal {
	return core.Goal{
		ID:             id,
		Name:           sanitizeInput(req.Name),
		TargetAmount:   req.TargetAmount,
		ProgressAmount: req.ProgressAmount,
		Deadline:       req.Deadline,
	}
}

func (s *Server) handleGoals(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.listGoals(w, r)
	case http.MethodPost:
		s.createGoal(w, r)
	default:
		w.Header().Set("Allow", "GET, POST")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *Server) listGoals(w http.ResponseWriter, r *http.Request) {
	ns := s.namespace(r)
	goals, err := s.store.LoadGoals(r.Context(), ns)
	if err != nil {
		writeStoreError(w, r, "load goals", err)
		return
	}
	writeJSON(w, http.StatusOK, goals)
}

func (s *Server) createGoal(w http.ResponseWriter, r *http.Request) {
	var req goalRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	goal := req.toGoal(uuid.NewString())
	if err := goal.Validate(); err != nil {
		writeValidationError(w, err)
		return
	}

	ns := s.namespace(r)
	goals, err := s.store.LoadGoals(r.Context(), ns)
	if err != nil {
		writeStoreError(w, r, "load goals", err)
		return
	}
	goals = append(goals, goal)
	if err := s.ledger.SaveGoals(r.Context(), ns, goals); err != nil {
		writeStoreError(w, r, "save goals", err)
		return
	}

	slog.InfoContext(r.Context(), "Goal created",
		applog.FieldNamespace, ns,
		applog.FieldGoalID, goal.ID,
		"target_cents", goal.TargetAmount.Cents)
	writeJSON(w, http.StatusCreated, goal)
}

func (s *Server) handleGoalByID(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/goals/")

	// /api/goals/{id}/projection is the one nested route.
	if id, ok := strings.CutSuffix(rest, "/projection"); ok && id != "" && !strings.Contains(id, "/") {
		if r.Method != http.MethodGet {
			w.Header().Set("Allow", "GET")
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		s.goalProjection(w, r, id)
		return
	}

	if rest == "" || strings.Contains(rest, "/") {
		writeError(w, http.StatusNotFound, "goal not found")
		return
	}

	switch r.Method {
	case http.MethodPut:
		s.updateGoal(w, r, rest)
	case http.MethodDelete:
		s.deleteGoal(w, r, rest)
	default:
		w.Header().Set("Allow", "PUT, DELETE")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *Server) updateGoal(w http.ResponseWriter, r *http.Request, id string) {
	var req goalRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	goal := req.toGoal(id)
	if err := goal.Validate(); err != nil {
		writeValidationError(w, err)
		return
	}

	ns := s.namespace(r)
	goals, err := s.store.LoadGoals(r.Context(), ns)
	if err != nil {
		writeStoreError(w, r, "load goals", err)
		return
	}

	found := false
	for i := range goals {
		if goals[i].ID == id {
			goals[i] = goal
			found = true
			break
		}
	}
	if !found {
		writeError(w, http.StatusNotFound, "goal not found")
		return
	}

	if err := s.ledger.SaveGoals(r.Context(), ns, goals); err != nil {
		writeStoreError(w, r, "save goals", err)
		return
	}
	writeJSON(w, http.StatusOK, goal)
}

func (s *Server) deleteGoal(w http.ResponseWriter, r *http.Request, id string) {
	ns := s.namespace(r)
	goals, err := s.store.LoadGoals(r.Context(), ns)
	if err != nil {
		writeStoreError(w, r, "load goals", err)
		return
	}

	kept := goals[:0:0]
	for _, g := range goals {
		if g.ID != id {
			kept = append(kept, g)
		}
	}
	if len(kept) == len(goals) {
		writeError(w, http.StatusNotFound, "goal not found")
		return
	}

	if err := s.ledger.SaveGoals(r.Context(), ns, kept); err != nil {
		writeStoreError(w, r, "save goals", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleBudgets(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.listBudgets(w, r)
	case http.MethodPut:
		s.upsertBudget(w, r)
	default:
		w.Header().Set("Allow", "GET, PUT")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *Server) listBudgets(w http.ResponseWriter, r *http.Request) {
	ns := s.namespace(r)
	entries, err := s.store.LoadBudgets(r.Context(), ns)
	if err != nil {
		writeStoreError(w, r, "load budgets", err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

// upsertBudget sets the ceiling for one category, replacing an existing
// entry for the same category.
func (s *Server) upsertBudget(w http.ResponseWriter, r *http.Request) {
	var entry core.BudgetEntry
	if err := decodeJSON(r, &entry); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	entry.Category = strings.TrimSpace(entry.Category)
	if err := entry.Validate(); err != nil {
		writeValidationError(w, err)
		return
	}

	ns := s.namespace(r)
	entries, err := s.store.LoadBudgets(r.Context(), ns)
	if err != nil {
		writeStoreError(w, r, "load budgets", err)
		return
	}

	replaced := false
	for i := range entries {
		if entries[i].Category == entry.Category {
			entries[i] = entry
			replaced = true
			break
		}
	}
	if !replaced {
		entries = append(entries, entry)
	}

	if err := s.ledger.SaveBudgets(r.Context(), ns, entries); err != nil {
		writeStoreError(w, r, "save budgets", err)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

func (s *Server) handleBudgetByCategory(w http.ResponseWriter, r *http.Request) {
	category := strings.TrimPrefix(r.URL.Path, "/api/budgets/")
	if category == "" || strings.Contains(category, "/") {
		writeError(w, http.StatusNotFound, "budget entry not found")
		return
	}

	if r.Method != http.MethodDelete {
		w.Header().Set("Allow", "DELETE")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	ns := s.namespace(r)
	entries, err := s.store.LoadBudgets(r.Context(), ns)
	if err != nil {
		writeStoreError(w, r, "load budgets", err)
		return
	}

	kept := entries[:0:0]
	for _, e := range entries {
		if e.Category != category {
			kept = append(kept, e)
		}
	}
	if len(kept) == len(entries) {
		writeError(w, http.StatusNotFound, "budget entry not found")
		return
	}

	if err := s.ledger.SaveBudgets(r.Context(), ns, kept); err != nil {
		writeStoreError(w, r, "save budgets", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
