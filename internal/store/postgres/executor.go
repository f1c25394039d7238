package postgres

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/assetdesk/assetdesk/internal/observability"
	"github.com/assetdesk/assetdesk/internal/store"
)

// Executor runs parameterized statements against Postgres. Each call
// acquires a pooled connection for the duration of one statement. Failures
// are logged and converted to empty results (Read) or -1 (Write).
type Executor struct {
	db     *sql.DB
	logger *slog.Logger
}

func NewExecutor(db *sql.DB, logger *slog.Logger) *Executor {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Executor{db: db, logger: logger}
}

func (e *Executor) HealthCheck(ctx context.Context) error {
	return e.db.PingContext(ctx)
}

// Read executes a read-only statement and returns all rows in the
// database's natural order. Any execution error yields an empty slice.
func (e *Executor) Read(ctx context.Context, query string, args ...any) []store.Row {
	rows, err := e.db.QueryContext(ctx, query, args...)
	if err != nil {
		e.logger.ErrorContext(ctx, "read query failed", slog.String("query", query), slog.Any("error", err))
		observability.ObserveStoreQueryFailure("read")
		return []store.Row{}
	}
	defer func() { _ = rows.Close() }()

	columns, err := rows.Columns()
	if err != nil {
		e.logger.ErrorContext(ctx, "read query columns failed", slog.Any("error", err))
		observability.ObserveStoreQueryFailure("read")
		return []store.Row{}
	}

	result := make([]store.Row, 0)
	for rows.Next() {
		values := make([]any, len(columns))
		scanTargets := make([]any, len(columns))
		for i := range values {
			scanTargets[i] = &values[i]
		}
		if err := rows.Scan(scanTargets...); err != nil {
			e.logger.ErrorContext(ctx, "read query scan failed", slog.Any("error", err))
			observability.ObserveStoreQueryFailure("read")
			return []store.Row{}
		}
		for i, value := range values {
			if raw, ok := value.([]byte); ok {
				values[i] = string(raw)
			}
		}
		result = append(result, store.Row{Columns: columns, Values: values})
	}
	if err := rows.Err(); err != nil {
		e.logger.ErrorContext(ctx, "read query iteration failed", slog.Any("error", err))
		observability.ObserveStoreQueryFailure("read")
		return []store.Row{}
	}
	return result
}

// Write executes a mutating statement inside a single-statement transaction
// and returns the affected row count, or -1 on any failure.
func (e *Executor) Write(ctx context.Context, query string, args ...any) int64 {
	tx, err := e.db.BeginTx(ctx, nil)
	if err != nil {
		e.logger.ErrorContext(ctx, "write begin failed", slog.Any("error", err))
		observability.ObserveStoreQueryFailure("write")
		return -1
	}

	result, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		_ = tx.Rollback()
		e.logger.ErrorContext(ctx, "write query failed", slog.String("query", query), slog.Any("error", err))
		observability.ObserveStoreQueryFailure("write")
		return -1
	}
	if err := tx.Commit(); err != nil {
		e.logger.ErrorContext(ctx, "write commit failed", slog.Any("error", err))
		observability.ObserveStoreQueryFailure("write")
		return -1
	}

	affected, err := result.RowsAffected()
	if err != nil {
		e.logger.ErrorContext(ctx, "write rows affected unavailable", slog.Any("error", err))
		return -1
	}
	return affected
}
