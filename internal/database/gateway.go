package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Querier is satisfied by both *sqlx.DB and *sqlx.Tx.
type Querier interface {
	sqlx.ExtContext
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	NamedExecContext(ctx context.Context, query string, arg interface{}) (sql.Result, error)
}

// Transactor scopes a unit of work: every statement issued through the ctx
// passed to fn commits together or not at all.
type Transactor interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type txKey struct{}

type Gateway struct {
	DB *sqlx.DB
}

func NewGateway(db *sqlx.DB) *Gateway {
	return &Gateway{DB: db}
}

// Querier returns the transaction bound to ctx, or the pool outside one.
func (g *Gateway) Querier(ctx context.Context) Querier {
	if tx, ok := ctx.Value(txKey{}).(*sqlx.Tx); ok {
		return tx
	}
	return g.DB
}

// WithTransaction joins an outer transaction when ctx already carries one.
func (g *Gateway) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*sqlx.Tx); ok {
		return fn(ctx)
	}

	tx, err := g.DB.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func (g *Gateway) Ping(ctx context.Context) error {
	return g.DB.PingContext(ctx)
}

func IsNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

// InsertReturningID runs a named INSERT ... RETURNING id and returns the new id.
func InsertReturningID(ctx context.Context, q Querier, query string, arg interface{}) (int64, error) {
	bound, args, err := q.BindNamed(query, arg)
	if err != nil {
		return 0, err
	}
	var id int64
	if err := q.GetContext(ctx, &id, bound, args...); err != nil {
		return 0, err
	}
	return id, nil
}

// EnsureAffected returns notFound when res touched no rows.
func EnsureAffected(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return notFound
	}
	return nil
}
