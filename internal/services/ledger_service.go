// Package services orchestrates record-store writes with change
// notification for the mirror worker.
package services

import (
	"context"
	"fmt"
	"log/slog"

	"fintrack/internal/amqp"
	"fintrack/internal/core"
	applog "fintrack/internal/log"
	"fintrack/internal/store"
)

// LedgerService persists collections and publishes a record-changed message
// after each successful save. Publish failures are logged, never surfaced:
// the local store is the source of truth and the mirror catches up on its
// periodic re-check.
type LedgerService struct {
	store      store.RecordStore
	amqpClient *amqp.Client
	closer     func() error
}

func NewLedgerService(recordStore store.RecordStore, amqpClient *amqp.Client, closer func() error) *LedgerService {
	return &LedgerService{
		store:      recordStore,
		amqpClient: amqpClient,
		closer:     closer,
	}
}

// Store exposes the underlying record store for reads.
func (s *LedgerService) Store() store.RecordStore {
	return s.store
}

func (s *LedgerService) SaveTransactions(ctx context.Context, namespace string, txs []core.Transaction) error {
	if err := s.store.SaveTransactions(ctx, namespace, txs); err != nil {
		return fmt.Errorf("save transactions: %w", err)
	}
	s.notify(ctx, amqp.KindTransaction, namespace)
	return nil
}

func (s *LedgerService) SaveGoals(ctx context.Context, namespace string, goals []core.Goal) error {
	if err := s.store.SaveGoals(ctx, namespace, goals); err != nil {
		return fmt.Errorf("save goals: %w", err)
	}
	s.notify(ctx, amqp.KindGoal, namespace)
	return nil
}

func (s *LedgerService) SaveBudgets(ctx context.Context, namespace string, entries []core.BudgetEntry) error {
	if err := s.store.SaveBudgets(ctx, namespace, entries); err != nil {
		return fmt.Errorf("save budgets: %w", err)
	}
	s.notify(ctx, amqp.KindBudget, namespace)
	return nil
}

func (s *LedgerService) notify(ctx context.Context, kind amqp.RecordKind, namespace string) {
	if s.amqpClient == nil {
		return
	}
	if err := s.amqpClient.PublishRecordChanged(ctx, kind, namespace); err != nil {
		slog.ErrorContext(ctx, "Failed to publish record change",
			applog.FieldRecordKind, kind,
			applog.FieldNamespace, namespace,
			applog.FieldError, err)
	}
}

// Close releases the store and AMQP connections.
func (s *LedgerService) Close() error {
	var errs []error

	if s.closer != nil {
		if err := s.closer(); err != nil {
			errs = append(errs, fmt.Errorf("store: %w", err))
		}
	}
	if s.amqpClient != nil {
		if err := s.amqpClient.Close(); err != nil {
			errs = append(errs, fmt.Errorf("amqp: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close ledger service: %v", errs)
	}
	return nil
}
