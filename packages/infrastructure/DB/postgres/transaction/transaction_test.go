package transaction

import (
	"context"
	"errors"
	"testing"
	"time"
	Error "warehouse/packages/common/errors"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type tx struct {
	pgx.Tx
	committed  bool
	rolledBack bool
	commitErr  error
}

func (t *tx) Commit(ctx context.Context) error {
	if t.commitErr != nil {
		return t.commitErr
	}
	t.committed = true
	return nil
}

func (t *tx) Rollback(ctx context.Context) error {
	if t.committed {
		return pgx.ErrTxClosed
	}
	t.rolledBack = true
	return nil
}

type beginner struct {
	tx  *tx
	err error
}

func (b *beginner) Begin(ctx context.Context) (pgx.Tx, error) {
	if b.err != nil {
		return nil, b.err
	}
	return b.tx, nil
}

func TestRun(t *testing.T) {
	ctx := context.Background()

	t.Run("commit", func(t *testing.T) {
		b := &beginner{tx: new(tx)}

		err := Run(ctx, b, time.Second, func(tx pgx.Tx) *Error.Status { return nil })
		require.Nil(t, err)
		assert.True(t, b.tx.committed)
		assert.False(t, b.tx.rolledBack)
	})

	t.Run("rollback", func(t *testing.T) {
		b := &beginner{tx: new(tx)}
		failure := Error.NewValidationStatus("invalid")

		err := Run(ctx, b, time.Second, func(tx pgx.Tx) *Error.Status { return failure })
		assert.Equal(t, failure, err)
		assert.False(t, b.tx.committed)
		assert.True(t, b.tx.rolledBack)
	})

	t.Run("commit failure", func(t *testing.T) {
		b := &beginner{tx: &tx{commitErr: errors.New("connection lost")}}

		err := Run(ctx, b, 0, func(tx pgx.Tx) *Error.Status { return nil })
		assert.Equal(t, Error.StatusInternalError, err)
		assert.True(t, b.tx.rolledBack)
	})

	t.Run("begin failure", func(t *testing.T) {
		err := Run(ctx, &beginner{err: context.DeadlineExceeded}, time.Second, func(tx pgx.Tx) *Error.Status {
			t.Fatal("must not be called")
			return nil
		})
		assert.Equal(t, Error.StatusTimeout, err)
	})
}
