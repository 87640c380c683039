package transaction

import (
	"context"
	"errors"
	"time"
	Error "warehouse/packages/common/errors"
	"warehouse/packages/common/logger"

	"github.com/jackc/pgx/v5"
)

var txLogger = logger.NewSource("DB TRANSACTION", logger.Default)

// Implemented by *pgxpool.Pool
type Beginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Runs fn inside of transaction.
// Transaction is committed if fn succeeded, otherwise it's rolled back.
// Zero timeout means no timeout.
func Run(ctx context.Context, db Beginner, timeout time.Duration, fn func(tx pgx.Tx) *Error.Status) *Error.Status {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return Error.StatusTimeout
		}
		txLogger.Error("Failed to begin transaction", err.Error(), nil)
		return Error.StatusInternalError
	}

	defer func() {
		if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			txLogger.Error("Rollback failed (non-critical)", err.Error(), nil)
		}
	}()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return Error.StatusTimeout
		}
		txLogger.Error("Failed to commit transaction", err.Error(), nil)
		return Error.StatusInternalError
	}

	return nil
}
