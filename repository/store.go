// Package repository persists the menu, intro blocks and restaurant info in
// PostgreSQL.
package repository

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"

	"github.com/lib/pq"
	"go.uber.org/multierr"

	"aukra/apperr"
)

// PostgreSQL error codes translated into domain errors.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Ping checks that the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return apperr.Transient("database unavailable", err)
	}
	return nil
}

// withTx runs fn in a transaction, committing when fn returns nil.
func (s *Store) withTx(ctx context.Context, fn func(tx *sql.Tx) error) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return translate(err, "begin transaction")
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
				err = multierr.Append(err, rbErr)
			}
		}
	}()
	if err = fn(tx); err != nil {
		return err
	}
	return translate(tx.Commit(), "commit")
}

// translate maps driver errors onto apperr kinds. what names the entity the
// statement was about and becomes part of the client-facing message.
func translate(err error, what string) error {
	if err == nil {
		return nil
	}
	var ae *apperr.Error
	if errors.As(err, &ae) {
		return err
	}
	if errors.Is(err, sql.ErrNoRows) {
		return &apperr.Error{Kind: apperr.KindNotFound, Message: what + " not found", Err: err}
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case codeUniqueViolation:
			return &apperr.Error{Kind: apperr.KindConflict, Message: what + " already exists", Err: err}
		case codeForeignKeyViolation:
			return &apperr.Error{Kind: apperr.KindDependency, Message: what + " is still referenced", Err: err}
		}
		if pqErr.Code.Class() == "08" {
			return apperr.Transient("database unavailable", err)
		}
	}
	var netErr net.Error
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, context.DeadlineExceeded) || errors.As(err, &netErr) {
		return apperr.Transient("database unavailable", err)
	}
	return fmt.Errorf("%s: %w", what, err)
}
