package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"fintrack/internal/core"
	applog "fintrack/internal/log"
	"fintrack/internal/store"

	_ "modernc.org/sqlite"
)

// SQLiteRepository persists record collections in SQLite with the same
// wholesale load/save semantics as the in-memory store: Save replaces the
// namespace's rows inside a single transaction, last writer wins.
type SQLiteRepository struct {
	db *sql.DB
}

var _ store.RecordStore = (*SQLiteRepository)(nil)

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

func (r *SQLiteRepository) LoadTransactions(ctx context.Context, namespace string) ([]core.Transaction, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, date, description, amount_cents, type, category
		   FROM transactions WHERE namespace = ? ORDER BY date, id`, namespace)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	txs := []core.Transaction{}
	for rows.Next() {
		var (
			tx      core.Transaction
			dateStr string
			txType  string
		)
		if err := rows.Scan(&tx.ID, &dateStr, &tx.Description, &tx.Amount.Cents, &txType, &tx.Category); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		tx.Type = core.TransactionType(txType)
		tx.Date, err = core.ParseDate(dateStr)
		if err != nil {
			return nil, fmt.Errorf("parse transaction date %q: %w", dateStr, err)
		}
		txs = append(txs, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}
	return txs, nil
}

func (r *SQLiteRepository) SaveTransactions(ctx context.Context, namespace string, txs []core.Transaction) error {
	err := r.replace(ctx, namespace,
		`DELETE FROM transactions WHERE namespace = ?`,
		func(dbtx *sql.Tx) error {
			stmt, err := dbtx.PrepareContext(ctx,
				`INSERT INTO transactions (namespace, id, date, description, amount_cents, type, category)
				 VALUES (?, ?, ?, ?, ?, ?, ?)`)
			if err != nil {
				return fmt.Errorf("prepare insert: %w", err)
			}
			defer stmt.Close()
			for _, tx := range txs {
				if _, err := stmt.ExecContext(ctx, namespace, tx.ID, tx.Date.String(),
					tx.Description, tx.Amount.Cents, string(tx.Type), tx.Category); err != nil {
					return fmt.Errorf("insert transaction %s: %w", tx.ID, err)
				}
			}
			return nil
		})
	if err != nil {
		return err
	}

	slog.InfoContext(ctx, "Transactions saved",
		applog.FieldNamespace, namespace,
		applog.FieldCount, len(txs))
	return nil
}

func (r *SQLiteRepository) LoadGoals(ctx context.Context, namespace string) ([]core.Goal, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, target_cents, progress_cents, deadline
		   FROM goals WHERE namespace = ? ORDER BY deadline, id`, namespace)
	if err != nil {
		return nil, fmt.Errorf("query goals: %w", err)
	}
	defer rows.Close()

	goals := []core.Goal{}
	for rows.Next() {
		var (
			g        core.Goal
			deadline string
		)
		if err := rows.Scan(&g.ID, &g.Name, &g.TargetAmount.Cents, &g.ProgressAmount.Cents, &deadline); err != nil {
			return nil, fmt.Errorf("scan goal: %w", err)
		}
		g.Deadline, err = core.ParseDate(deadline)
		if err != nil {
			return nil, fmt.Errorf("parse goal deadline %q: %w", deadline, err)
		}
		goals = append(goals, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate goals: %w", err)
	}
	return goals, nil
}

func (r *SQLiteRepository) SaveGoals(ctx context.Context, namespace string, goals []core.Goal) error {
	err := r.replace(ctx, namespace,
		`DELETE FROM goals WHERE namespace = ?`,
		func(dbtx *sql.Tx) error {
			stmt, err := dbtx.PrepareContext(ctx,
				`INSERT INTO goals (namespace, id, name, target_cents, progress_cents, deadline)
				 VALUES (?, ?, ?, ?, ?, ?)`)
			if err != nil {
				return fmt.Errorf("prepare insert: %w", err)
			}
			defer stmt.Close()
			for _, g := range goals {
				if _, err := stmt.ExecContext(ctx, namespace, g.ID, g.Name,
					g.TargetAmount.Cents, g.ProgressAmount.Cents, g.Deadline.String()); err != nil {
					return fmt.Errorf("insert goal %s: %w", g.ID, err)
				}
			}
			return nil
		})
	if err != nil {
		return err
	}

	slog.InfoContext(ctx, "Goals saved",
		applog.FieldNamespace, namespace,
		applog.FieldCount, len(goals))
	return nil
}

func (r *SQLiteRepository) LoadBudgets(ctx context.Context, namespace string) ([]core.BudgetEntry, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT category, ceiling_cents
		   FROM budgets WHERE namespace = ? ORDER BY category`, namespace)
	if err != nil {
		return nil, fmt.Errorf("query budgets: %w", err)
	}
	defer rows.Close()

	entries := []core.BudgetEntry{}
	for rows.Next() {
		var b core.BudgetEntry
		if err := rows.Scan(&b.Category, &b.Ceiling.Cents); err != nil {
			return nil, fmt.Errorf("scan budget entry: %w", err)
		}
		entries = append(entries, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate budgets: %w", err)
	}
	return entries, nil
}

func (r *SQLiteRepository) SaveBudgets(ctx context.Context, namespace string, entries []core.BudgetEntry) error {
	err := r.replace(ctx, namespace,
		`DELETE FROM budgets WHERE namespace = ?`,
		func(dbtx *sql.Tx) error {
			stmt, err := dbtx.PrepareContext(ctx,
				`INSERT INTO budgets (namespace, category, ceiling_cents) VALUES (?, ?, ?)`)
			if err != nil {
				return fmt.Errorf("prepare insert: %w", err)
			}
			defer stmt.Close()
			for _, b := range entries {
				if _, err := stmt.ExecContext(ctx, namespace, b.Category, b.Ceiling.Cents); err != nil {
					return fmt.Errorf("insert budget entry %s: %w", b.Category, err)
				}
			}
			return nil
		})
	if err != nil {
		return err
	}

	slog.InfoContext(ctx, "Budgets saved",
		applog.FieldNamespace, namespace,
		applog.FieldCount, len(entries))
	return nil
}

// Namespaces lists every namespace that has at least one transaction.
// The mirror worker uses it for periodic full re-mirrors.
func (r *SQLiteRepository) Namespaces(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT DISTINCT namespace FROM transactions ORDER BY namespace`)
	if err != nil {
		return nil, fmt.Errorf("query namespaces: %w", err)
	}
	defer rows.Close()

	var namespaces []string
	for rows.Next() {
		var ns string
		if err := rows.Scan(&ns); err != nil {
			return nil, fmt.Errorf("scan namespace: %w", err)
		}
		namespaces = append(namespaces, ns)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate namespaces: %w", err)
	}
	return namespaces, nil
}

// replace runs delete-then-insert for one namespace inside a transaction.
func (r *SQLiteRepository) replace(ctx context.Context, namespace, deleteQuery string, insert func(*sql.Tx) error) error {
	dbtx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer dbtx.Rollback()

	if _, err := dbtx.ExecContext(ctx, deleteQuery, namespace); err != nil {
		return fmt.Errorf("delete namespace rows: %w", err)
	}
	if err := insert(dbtx); err != nil {
		return err
	}
	if err := dbtx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
