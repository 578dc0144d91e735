package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"fintrack/internal/core"
)

func newTestRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "records.db"))
	if err != nil {
		t.Fatalf("NewSQLiteRepository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestTransactionsRoundTrip(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	txs := []core.Transaction{
		{
			ID:          "tx-1",
			Date:        core.NewDate(2025, time.January, 10),
			Description: "Paycheck",
			Amount:      core.Money{Cents: 250000},
			Type:        core.Income,
			Category:    "Salary",
		},
		{
			ID:          "tx-2",
			Date:        core.NewDate(2025, time.January, 12),
			Description: "Groceries",
			Amount:      core.Money{Cents: 4000},
			Type:        core.Expense,
			Category:    "Food",
		},
	}
	if err := repo.SaveTransactions(ctx, "default", txs); err != nil {
		t.Fatalf("SaveTransactions: %v", err)
	}

	got, err := repo.LoadTransactions(ctx, "default")
	if err != nil {
		t.Fatalf("LoadTransactions: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("loaded %d transactions, want 2", len(got))
	}
	for i := range txs {
		if got[i] != txs[i] {
			t.Errorf("transaction %d = %+v, want %+v", i, got[i], txs[i])
		}
	}
}

func TestSaveReplacesNamespaceRows(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	first := []core.BudgetEntry{
		{Category: "Food", Ceiling: core.Money{Cents: 50000}},
		{Category: "Housing", Ceiling: core.Money{Cents: 120000}},
	}
	if err := repo.SaveBudgets(ctx, "default", first); err != nil {
		t.Fatalf("SaveBudgets: %v", err)
	}

	second := []core.BudgetEntry{
		{Category: "Food", Ceiling: core.Money{Cents: 60000}},
	}
	if err := repo.SaveBudgets(ctx, "default", second); err != nil {
		t.Fatalf("SaveBudgets: %v", err)
	}

	got, err := repo.LoadBudgets(ctx, "default")
	if err != nil {
		t.Fatalf("LoadBudgets: %v", err)
	}
	if len(got) != 1 || got[0].Ceiling.Cents != 60000 {
		t.Errorf("after replace = %+v, want single Food entry at 60000", got)
	}
}

func TestGoalsRoundTrip(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	goals := []core.Goal{
		{
			ID:             "g-1",
			Name:           "Emergency Fund",
			TargetAmount:   core.Money{Cents: 120000},
			ProgressAmount: core.Money{Cents: 60000},
			Deadline:       core.NewDate(2025, time.April, 1),
		},
	}
	if err := repo.SaveGoals(ctx, "default", goals); err != nil {
		t.Fatalf("SaveGoals: %v", err)
	}

	got, err := repo.LoadGoals(ctx, "default")
	if err != nil {
		t.Fatalf("LoadGoals: %v", err)
	}
	if len(got) != 1 || got[0] != goals[0] {
		t.Errorf("round trip = %+v, want %+v", got, goals)
	}
}

func TestNamespaces(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	namespaces, err := repo.Namespaces(ctx)
	if err != nil {
		t.Fatalf("Namespaces: %v", err)
	}
	if len(namespaces) != 0 {
		t.Errorf("fresh database has namespaces: %v", namespaces)
	}

	tx := core.Transaction{
		ID:          "tx-1",
		Date:        core.NewDate(2025, time.January, 10),
		Description: "Paycheck",
		Amount:      core.Money{Cents: 100},
		Type:        core.Income,
		Category:    "Salary",
	}
	for _, ns := range []string{"bob", "alice"} {
		if err := repo.SaveTransactions(ctx, ns, []core.Transaction{tx}); err != nil {
			t.Fatalf("SaveTransactions(%s): %v", ns, err)
		}
	}

	namespaces, err = repo.Namespaces(ctx)
	if err != nil {
		t.Fatalf("Namespaces: %v", err)
	}
	if len(namespaces) != 2 || namespaces[0] != "alice" || namespaces[1] != "bob" {
		t.Errorf("Namespaces = %v, want [alice bob]", namespaces)
	}
}
