// Package memory provides an in-process record store. It backs local
// development and tests, and doubles as the reference implementation of the
// store contract.
package memory

import (
	"context"
	"sync"

	"fintrack/internal/core"
	"fintrack/internal/store"
)

// Store keeps whole collections per namespace. Both Load and Save copy, so
// callers and the store never alias the same backing array.
type Store struct {
	mu      sync.Mutex
	txs     map[string][]core.Transaction
	goals   map[string][]core.Goal
	budgets map[string][]core.BudgetEntry
}

var _ store.RecordStore = (*Store)(nil)

func New() *Store {
	return &Store{
		txs:     make(map[string][]core.Transaction),
		goals:   make(map[string][]core.Goal),
		budgets: make(map[string][]core.BudgetEntry),
	}
}

func (s *Store) LoadTransactions(_ context.Context, namespace string) ([]core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copySlice(s.txs[namespace]), nil
}

func (s *Store) SaveTransactions(_ context.Context, namespace string, txs []core.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.txs[namespace] = copySlice(txs)
	return nil
}

func (s *Store) LoadGoals(_ context.Context, namespace string) ([]core.Goal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copySlice(s.goals[namespace]), nil
}

func (s *Store) SaveGoals(_ context.Context, namespace string, goals []core.Goal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.goals[namespace] = copySlice(goals)
	return nil
}

func (s *Store) LoadBudgets(_ context.Context, namespace string) ([]core.BudgetEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copySlice(s.budgets[namespace]), nil
}

func (s *Store) SaveBudgets(_ context.Context, namespace string, entries []core.BudgetEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.budgets[namespace] = copySlice(entries)
	return nil
}

// copySlice returns an empty (non-nil for missing is fine as nil) copy of in.
func copySlice[T any](in []T) []T {
	if len(in) == 0 {
		return []T{}
	}
	out := make([]T, len(in))
	copy(out, in)
	return out
}
