// Package worker keeps the spreadsheet mirror in step with the record store.
package worker

import (
	"context"
	"fmt"
	"log/slog"

	"fintrack/internal/amqp"
	applog "fintrack/internal/log"
	"fintrack/internal/sheets"
	"fintrack/internal/storage"
)

// SyncWorker mirrors transaction snapshots from SQLite to the configured
// spreadsheet. Change messages trigger a mirror of one namespace; MirrorAll
// is the periodic backup for messages lost in transit.
type SyncWorker struct {
	storage *storage.SQLiteRepository
	mirror  sheets.TransactionMirror
}

func NewSyncWorker(repo *storage.SQLiteRepository, mirror sheets.TransactionMirror) *SyncWorker {
	return &SyncWorker{
		storage: repo,
		mirror:  mirror,
	}
}

// HandleRecordChanged processes a single record-changed message. Only
// transaction changes are mirrored; goal and budget changes are local-only
// and acknowledged without work.
func (w *SyncWorker) HandleRecordChanged(ctx context.Context, msg *amqp.RecordChangedMessage) error {
	if msg.Kind != amqp.KindTransaction {
		slog.DebugContext(ctx, "Ignoring non-transaction change",
			applog.FieldRecordKind, msg.Kind,
			applog.FieldNamespace, msg.Namespace)
		return nil
	}
	return w.mirrorNamespace(ctx, msg.Namespace)
}

// MirrorAll re-mirrors every namespace known to the store. Failures are
// logged per namespace; the first error is returned after the full pass so
// one bad namespace does not starve the rest.
func (w *SyncWorker) MirrorAll(ctx context.Context) error {
	namespaces, err := w.storage.Namespaces(ctx)
	if err != nil {
		return fmt.Errorf("list namespaces: %w", err)
	}
	if len(namespaces) == 0 {
		return nil
	}

	slog.InfoContext(ctx, "Mirroring all namespaces", applog.FieldCount, len(namespaces))

	var firstErr error
	for _, ns := range namespaces {
		if err := w.mirrorNamespace(ctx, ns); err != nil {
			slog.ErrorContext(ctx, "Failed to mirror namespace",
				applog.FieldNamespace, ns,
				applog.FieldError, err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

func (w *SyncWorker) mirrorNamespace(ctx context.Context, namespace string) error {
	txs, err := w.storage.LoadTransactions(ctx, namespace)
	if err != nil {
		return fmt.Errorf("load transactions: %w", err)
	}
	if err := w.mirror.ReplaceTransactions(ctx, namespace, txs); err != nil {
		return fmt.Errorf("replace mirrored transactions: %w", err)
	}

	slog.InfoContext(ctx, "Namespace mirrored",
		applog.FieldNamespace, namespace,
		applog.FieldCount, len(txs))
	return nil
}
