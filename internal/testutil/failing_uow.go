package testutil

import (
	"context"
	"database/sql"
	"sync/atomic"

	"github.com/alexanderramin/advisor/internal/db"
)

// FailOnNthExecUoW fails the FailOn-th write inside a transaction with Err,
// so tests can check that a half-saved record is rolled back. Writes are
// counted from 1; reads are not counted.
type FailOnNthExecUoW struct {
	DB     *sql.DB
	FailOn int32
	Err    error
}

func (u *FailOnNthExecUoW) WithinTx(ctx context.Context, fn db.TxFunc) error {
	return db.RunTx(ctx, u.DB, func(tx *sql.Tx) db.DBTX {
		return &failingExec{DBTX: tx, failOn: u.FailOn, err: u.Err}
	}, fn)
}

type failingExec struct {
	db.DBTX
	writes atomic.Int32
	failOn int32
	err    error
}

func (f *failingExec) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	if f.writes.Add(1) == f.failOn {
		return nil, f.err
	}
	return f.DBTX.ExecContext(ctx, query, args...)
}
