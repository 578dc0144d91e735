package sheets

import (
	"context"

	"fintrack/internal/core"
)

// TransactionMirror receives whole transaction snapshots. The mirror is a
// one-way replica of the record store, never read back.
type TransactionMirror interface {
	// ReplaceTransactions rewrites the mirrored rows for a namespace with
	// the given snapshot.
	ReplaceTransactions(ctx context.Context, namespace string, txs []core.Transaction) error
}
