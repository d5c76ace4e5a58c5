// Package tx threads a *sql.Tx through context so the ledger write and the
// revocation log append of one lifecycle operation commit or roll back as a
// unit. Stores that find a transaction in the context join it instead of
// opening their own.
package tx

import (
	"context"
	"database/sql"
)

type txKey struct{}

// WithTx returns a context carrying tx. A nil tx leaves the context as-is.
func WithTx(ctx context.Context, tx *sql.Tx) context.Context {
	if tx == nil {
		return ctx
	}
	return context.WithValue(ctx, txKey{}, tx)
}

// From reports the transaction in flight, if any.
func From(ctx context.Context) (*sql.Tx, bool) {
	tx, ok := ctx.Value(txKey{}).(*sql.Tx)
	return tx, ok
}
