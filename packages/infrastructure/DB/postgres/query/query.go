package query

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	Error "warehouse/packages/common/errors"
	"warehouse/packages/common/logger"

	"github.com/jackc/pgx/v5/pgconn"
)

var queryLogger = logger.NewSource("QUERY", logger.Default)

type Query struct {
	SQL  string
	Args []any
	// Name of the entity this query works with, used in error messages
	Entity string
}

func New(sql string, args ...any) *Query {
	return &Query{
		SQL:  sql,
		Args: args,
	}
}

const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
	notNullViolation    = "23502"
	checkViolation      = "23514"
)

// e.g. Key (name)=(Main) already exists.
var keyDetailRegexp = regexp.MustCompile(`^Key \((.+?)\)=\((.*?)\)`)

func (q *Query) entity() string {
	if q.Entity == "" {
		return "record"
	}
	return q.Entity
}

func parseKeyDetail(detail string) (column string, value string, ok bool) {
	m := keyDetailRegexp.FindStringSubmatch(detail)
	if m == nil {
		return "", "", false
	}
	return m[1], m[2], true
}

func (q *Query) convertPgError(pgErr *pgconn.PgError) *Error.Status {
	column, value, ok := parseKeyDetail(pgErr.Detail)

	switch pgErr.Code {
	case uniqueViolation:
		if !ok {
			return Error.NewConflict(q.entity()+" already exists", http.StatusConflict)
		}
		return Error.NewConflict(
			fmt.Sprintf("%s with %s %s already exists", q.entity(), column, value),
			http.StatusConflict,
		)
	case foreignKeyViolation:
		// Deletion of still referenced record
		if !ok || strings.Contains(pgErr.Detail, "is still referenced") {
			return Error.NewConflict(q.entity()+" is still referenced", http.StatusConflict)
		}
		return Error.NewValidationStatus(
			fmt.Sprintf("referenced %s %s doesn't exist", column, value),
		)
	case notNullViolation, checkViolation:
		return Error.NewValidationStatus("invalid " + q.entity() + ": " + pgErr.Message)
	}

	return nil
}

// Converts err into *Error.Status.
// Constraint violations are converted into client errors, everything else is logged.
func (q *Query) ConvertError(err error) *Error.Status {
	if errors.Is(err, context.DeadlineExceeded) {
		queryLogger.Error("Query failed", "Operation timeout", nil)
		queryLogger.Debug("Failed query: "+q.SQL, nil)
		return Error.StatusTimeout
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if status := q.convertPgError(pgErr); status != nil {
			queryLogger.Trace("Constraint violation: "+pgErr.Message, nil)
			return status
		}
	}

	queryLogger.Error("Query failed", err.Error(), nil)
	queryLogger.Debug("Failed query: "+q.SQL, nil)

	return Error.StatusInternalError
}
