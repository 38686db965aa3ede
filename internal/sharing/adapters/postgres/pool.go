// Package postgres provides PostgreSQL implementations of repositories.
package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"sharednotes/pkg/logger"
)

// PgxPoolInterface - подмножество pgxpool.Pool, нужное репозиториям. Реализуется и pgxmock.
type PgxPoolInterface interface {
	QueryRow(ctx context.Context, query string, args ...any) pgx.Row
	Exec(ctx context.Context, query string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, query string, args ...any) (pgx.Rows, error)
	Begin(ctx context.Context) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

// Коды ошибок PostgreSQL.
const (
	pgUniqueViolation = "23505"
)

// Сообщения транзакций.
const (
	ErrBeginTx    = "failed to begin transaction"
	ErrCommitTx   = "failed to commit transaction"
	ErrRollbackTx = "failed to rollback transaction"
)

// inTx выполняет fn в транзакции. Ошибка fn откатывает транзакцию и возвращается как есть.
func inTx(ctx context.Context, pool PgxPoolInterface, fn func(tx pgx.Tx) error) error {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrBeginTx, err)
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(context.WithoutCancel(ctx)); rbErr != nil {
			logger.Log(ctx).Warn(ctx, ErrRollbackTx, zap.Error(rbErr))
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%s: %w", ErrCommitTx, err)
	}
	return nil
}
