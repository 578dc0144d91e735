// Package store defines the record-store contract the rest of the service
// persists through.
//
// Collections are loaded and saved wholesale per namespace: Save replaces
// whatever was persisted before, last writer wins, no merge semantics. A
// namespace with nothing persisted loads as an empty collection, never as
// an error.
package store

import (
	"context"

	"fintrack/internal/core"
)

type (
	TransactionStore interface {
		LoadTransactions(ctx context.Context, namespace string) ([]core.Transaction, error)
		SaveTransactions(ctx context.Context, namespace string, txs []core.Transaction) error
	}

	GoalStore interface {
		LoadGoals(ctx context.Context, namespace string) ([]core.Goal, error)
		SaveGoals(ctx context.Context, namespace string, goals []core.Goal) error
	}

	BudgetStore interface {
		LoadBudgets(ctx context.Context, namespace string) ([]core.BudgetEntry, error)
		SaveBudgets(ctx context.Context, namespace string, entries []core.BudgetEntry) error
	}

	// RecordStore is the full persistence boundary.
	RecordStore interface {
		TransactionStore
		GoalStore
		BudgetStore
	}
)
