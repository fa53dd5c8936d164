package db

import (
	"context"
	"database/sql"
	"fmt"
)

// DBTX is what repositories run queries against: the database itself or an
// open transaction.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

var (
	_ DBTX = (*sql.DB)(nil)
	_ DBTX = (*sql.Tx)(nil)
)

// TxFunc does the work of one transaction. Repositories built on tx see and
// write the same snapshot.
type TxFunc func(ctx context.Context, tx DBTX) error

// UnitOfWork saves a student record and its child rows all at once or not
// at all.
type UnitOfWork interface {
	WithinTx(ctx context.Context, fn TxFunc) error
}

type SQLiteUnitOfWork struct {
	db *sql.DB
}

func NewSQLiteUnitOfWork(db *sql.DB) *SQLiteUnitOfWork {
	return &SQLiteUnitOfWork{db: db}
}

func (u *SQLiteUnitOfWork) WithinTx(ctx context.Context, fn TxFunc) error {
	return RunTx(ctx, u.db, nil, fn)
}

// RunTx begins a transaction, hands it to fn (through wrap, when given) and
// commits. An error or panic from fn rolls the transaction back.
func RunTx(ctx context.Context, conn *sql.DB, wrap func(*sql.Tx) DBTX, fn TxFunc) (err error) {
	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	var target DBTX = tx
	if wrap != nil {
		target = wrap(tx)
	}
	if err := fn(ctx, target); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("rolling back after %w: %v", err, rbErr)
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}
