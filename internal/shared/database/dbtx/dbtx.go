// Package dbtx binds an open gorm transaction to a context so repositories
// called inside a locked scope read and write on that transaction's
// connection instead of taking a second one from the pool.
package dbtx

import (
	"context"
	"sync"

	"gorm.io/gorm"
)

type scopeKey struct{}

type scope struct {
	tx *gorm.DB
	// A transaction owns a single connection, which cannot run two
	// statements at once. Concurrent callers take turns.
	mu sync.Mutex
}

// WithTx returns a context carrying tx.
func WithTx(ctx context.Context, tx *gorm.DB) context.Context {
	return context.WithValue(ctx, scopeKey{}, &scope{tx: tx})
}

// InTx reports whether ctx carries a transaction.
func InTx(ctx context.Context) bool {
	_, ok := ctx.Value(scopeKey{}).(*scope)
	return ok
}

// Conn returns the transaction carried by ctx, or db when there is none,
// already bound to ctx. release must be called once the statement has
// finished and its rows are fully read.
func Conn(ctx context.Context, db *gorm.DB) (conn *gorm.DB, release func()) {
	s, ok := ctx.Value(scopeKey{}).(*scope)
	if !ok {
		return db.WithContext(ctx), func() {}
	}
	s.mu.Lock()
	return s.tx.WithContext(ctx), s.mu.Unlock
}
