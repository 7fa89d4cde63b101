package xcontext

import (
	"context"

	"gorm.io/gorm"
)

type gormTxHolder struct {
	tx   *gorm.DB
	done bool
}

// WithDBTransaction begins a database transaction and makes DB(ctx) return it
// until the transaction is committed or rolled back. Transactions do not
// nest: callers open at most one per request flow.
//
// The usual pattern is:
//
//	ctx = xcontext.WithDBTransaction(ctx)
//	defer xcontext.WithRollbackDBTransaction(ctx)
//	...
//	xcontext.WithCommitDBTransaction(ctx)
func WithDBTransaction(ctx context.Context) context.Context {
	if holder, ok := ctx.Value(txKey{}).(*gormTxHolder); ok && !holder.done {
		return ctx
	}

	return context.WithValue(ctx, txKey{}, &gormTxHolder{tx: DB(ctx).Begin()})
}

// WithCommitDBTransaction commits the current transaction. A later deferred
// WithRollbackDBTransaction becomes a no-op.
func WithCommitDBTransaction(ctx context.Context) {
	if holder, ok := ctx.Value(txKey{}).(*gormTxHolder); ok && !holder.done {
		holder.tx.Commit()
		holder.done = true
	}
}

// WithRollbackDBTransaction rolls back the current transaction unless it has
// already been committed.
func WithRollbackDBTransaction(ctx context.Context) {
	if holder, ok := ctx.Value(txKey{}).(*gormTxHolder); ok && !holder.done {
		holder.tx.Rollback()
		holder.done = true
	}
}
