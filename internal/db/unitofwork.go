package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

// UnitOfWork runs fn inside one transaction. The DBTX handed to fn is the
// transaction; callers build tx-scoped repositories from it.
type UnitOfWork interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, tx DBTX) error) error
}

const (
	defaultTxAttempts = 3
	defaultTxBackoff  = 25 * time.Millisecond
)

// SQLiteUnitOfWork implements UnitOfWork over database/sql. A transaction
// that fails with a lock conflict is rolled back and run again, up to
// attempts times in total.
type SQLiteUnitOfWork struct {
	db       *sql.DB
	attempts int
	backoff  time.Duration
}

// NewSQLiteUnitOfWork creates a UnitOfWork backed by the given *sql.DB.
func NewSQLiteUnitOfWork(db *sql.DB) *SQLiteUnitOfWork {
	return &SQLiteUnitOfWork{db: db, attempts: defaultTxAttempts, backoff: defaultTxBackoff}
}

// WithRetry overrides how often a conflicting transaction is attempted and
// the base wait between attempts. attempts below 1 means a single attempt.
func (u *SQLiteUnitOfWork) WithRetry(attempts int, backoff time.Duration) *SQLiteUnitOfWork {
	if attempts < 1 {
		attempts = 1
	}
	u.attempts = attempts
	u.backoff = backoff
	return u
}

func (u *SQLiteUnitOfWork) WithinTx(ctx context.Context, fn func(ctx context.Context, tx DBTX) error) error {
	var err error
	for attempt := 1; attempt <= u.attempts; attempt++ {
		err = u.runOnce(ctx, fn)
		if err == nil || !IsConflictError(err) || attempt == u.attempts {
			return err
		}
		select {
		case <-ctx.Done():
			return errors.Join(err, ctx.Err())
		case <-time.After(u.backoff * time.Duration(attempt)):
		}
	}
	return err
}

func (u *SQLiteUnitOfWork) runOnce(ctx context.Context, fn func(ctx context.Context, tx DBTX) error) error {
	tx, err := u.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(ctx, tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("rollback failed: %v (original error: %w)", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// IsConflictError reports whether err is SQLite refusing a write because
// another connection holds the lock (SQLITE_BUSY or "database is locked").
func IsConflictError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "SQLITE_BUSY") || strings.Contains(msg, "database is locked")
}
