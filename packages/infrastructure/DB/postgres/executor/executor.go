package executor

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"
	Error "warehouse/packages/common/errors"
	"warehouse/packages/common/logger"
	"warehouse/packages/infrastructure/DB/postgres/query"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var executorLogger = logger.NewSource("EXECUTOR", logger.Default)

// Implemented by *pgxpool.Pool and pgx.Tx
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type Executor struct {
	querier    Querier
	timeout    time.Duration
	logQueries bool
}

func New(querier Querier, timeout time.Duration, logQueries bool) *Executor {
	if querier == nil {
		executorLogger.Panic(
			"Failed to create DB executor",
			"Querier can't be nil",
			nil,
		)
	}
	return &Executor{
		querier:    querier,
		timeout:    timeout,
		logQueries: logQueries,
	}
}

// Returns executor with the same settings which runs queries using the given querier.
func (e *Executor) WithQuerier(querier Querier) *Executor {
	return New(querier, e.timeout, e.logQueries)
}

func (e *Executor) Timeout() time.Duration {
	return e.timeout
}

func formatArg(arg any) string {
	switch a := arg.(type) {
	case string:
		return a
	case []string:
		return strings.Join(a, ", ")
	case int64:
		return strconv.FormatInt(a, 10)
	case []int64:
		s := make([]string, len(a))
		for i, v := range a {
			s[i] = strconv.FormatInt(v, 10)
		}
		return strings.Join(s, ", ")
	case bool:
		return strconv.FormatBool(a)
	case time.Time:
		return a.String()
	case *string:
		if a == nil {
			return "NULL"
		}
		return *a
	case *int64:
		if a == nil {
			return "NULL"
		}
		return strconv.FormatInt(*a, 10)
	case nil:
		return "NULL"
	}
	return "?"
}

// Creates context with the query timeout, zero timeout means no timeout.
func (e *Executor) prepare(ctx context.Context, q *query.Query) (context.Context, context.CancelFunc) {
	if e.logQueries {
		args := make([]string, len(q.Args))
		for i, arg := range q.Args {
			args[i] = formatArg(arg)
		}

		executorLogger.Debug("Running query:\n"+q.SQL+"\n * Query args: "+strings.Join(args, "; "), nil)
	}

	if e.timeout <= 0 {
		return context.WithCancel(ctx)
	}

	return context.WithTimeout(ctx, e.timeout)
}

// Runs query and scans the first row into dests.
// Returns Error.StatusNotFound if there are no rows.
func (e *Executor) Row(ctx context.Context, q *query.Query, dests ...any) *Error.Status {
	ctx, cancel := e.prepare(ctx, q)
	defer cancel()

	if err := e.querier.QueryRow(ctx, q.SQL, q.Args...).Scan(dests...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Error.StatusNotFound
		}
		return q.ConvertError(err)
	}

	return nil
}

// Wrapper for Querier.Exec. Returns amount of affected rows.
func (e *Executor) Exec(ctx context.Context, q *query.Query) (int64, *Error.Status) {
	ctx, cancel := e.prepare(ctx, q)
	defer cancel()

	tag, err := e.querier.Exec(ctx, q.SQL, q.Args...)
	if err != nil {
		return 0, q.ConvertError(err)
	}

	return tag.RowsAffected(), nil
}

// Runs query and collects all resulting rows.
// Rows are read before query context is cancelled.
func Collect[T any](ctx context.Context, e *Executor, q *query.Query, collect func(pgx.CollectableRow) (T, error)) ([]T, *Error.Status) {
	ctx, cancel := e.prepare(ctx, q)
	defer cancel()

	rows, err := e.querier.Query(ctx, q.SQL, q.Args...)
	if err != nil {
		return nil, q.ConvertError(err)
	}

	records, err := pgx.CollectRows(rows, collect)
	if err != nil {
		executorLogger.Error("Failed to collect rows", err.Error(), nil)
		return nil, q.ConvertError(err)
	}

	return records, nil
}
