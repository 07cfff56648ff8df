// Copyright (c) 2026 Dugout. All rights reserved.

package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is the query surface shared by [*pgxpool.Pool] and [pgx.Tx].
type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
}

// TxBeginner is implemented by [*pgxpool.Pool].
type TxBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// WithTx runs fn inside a single transaction.
//
// The transaction commits only when fn returns nil. Any error or panic
// rolls back every statement issued through tx; the panic is re-raised
// after the rollback.
func WithTx(ctx context.Context, db TxBeginner, fn func(tx pgx.Tx) error) (err error) {
	tx, err := db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("postgres: begin: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback(context.WithoutCancel(ctx))
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback(context.WithoutCancel(ctx))
		}
	}()

	if err = fn(tx); err != nil {
		return err
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("postgres: commit: %w", err)
	}
	return nil
}

// Transactor opens the transactional scope a service operation runs in.
type Transactor interface {
	InTx(ctx context.Context, fn func(q DBTX) error) error
}

// PoolTransactor runs every scope as a real transaction on the pool.
type PoolTransactor struct {
	pool TxBeginner
}

// NewTransactor wraps the shared pool.
func NewTransactor(pool TxBeginner) *PoolTransactor {
	return &PoolTransactor{pool: pool}
}

// InTx implements [Transactor].
func (t *PoolTransactor) InTx(ctx context.Context, fn func(q DBTX) error) error {
	return WithTx(ctx, t.pool, func(tx pgx.Tx) error { return fn(tx) })
}

// Direct hands DB to fn without opening a transaction. Service tests use it
// with in-memory stores that ignore the query handle.
type Direct struct {
	DB DBTX
}

// InTx implements [Transactor].
func (d Direct) InTx(_ context.Context, fn func(q DBTX) error) error {
	return fn(d.DB)
}
