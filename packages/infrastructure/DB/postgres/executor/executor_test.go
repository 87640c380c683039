package executor

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"
	Error "warehouse/packages/common/errors"
	"warehouse/packages/infrastructure/DB/postgres/query"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type row struct {
	err    error
	values []int64
}

func (r *row) Scan(dests ...any) error {
	if r.err != nil {
		return r.err
	}
	for i, d := range dests {
		*d.(*int64) = r.values[i]
	}
	return nil
}

type querier struct {
	row      *row
	tag      pgconn.CommandTag
	err      error
	deadline bool
}

func (q *querier) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	_, q.deadline = ctx.Deadline()
	return q.tag, q.err
}

func (q *querier) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, q.err
}

func (q *querier) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	_, q.deadline = ctx.Deadline()
	return q.row
}

func TestRow(t *testing.T) {
	ctx := context.Background()
	q := query.New("SELECT id FROM warehouses WHERE id = $1;", int64(1))

	t.Run("scanned", func(t *testing.T) {
		fake := &querier{row: &row{values: []int64{7}}}
		e := New(fake, time.Second, true)

		var id int64
		require.Nil(t, e.Row(ctx, q, &id))
		assert.Equal(t, int64(7), id)
		assert.True(t, fake.deadline)
	})

	t.Run("no rows", func(t *testing.T) {
		e := New(&querier{row: &row{err: pgx.ErrNoRows}}, time.Second, false)

		var id int64
		assert.Equal(t, Error.StatusNotFound, e.Row(ctx, q, &id))
	})

	t.Run("failure", func(t *testing.T) {
		e := New(&querier{row: &row{err: errors.New("connection reset")}}, time.Second, false)

		var id int64
		err := e.Row(ctx, q, &id)
		require.NotNil(t, err)
		assert.Equal(t, http.StatusInternalServerError, err.Status())
	})
}

func TestExec(t *testing.T) {
	ctx := context.Background()
	q := query.New("DELETE FROM warehouses WHERE id = ANY($1);", []int64{1, 2})

	fake := &querier{tag: pgconn.NewCommandTag("DELETE 2")}
	e := New(fake, 0, false)

	n, err := e.Exec(ctx, q)
	require.Nil(t, err)
	assert.Equal(t, int64(2), n)
	// Zero timeout means no deadline
	assert.False(t, fake.deadline)

	e = e.WithQuerier(&querier{err: &pgconn.PgError{Code: "23505"}})
	_, err = e.Exec(ctx, q)
	require.NotNil(t, err)
	assert.Equal(t, http.StatusConflict, err.Status())
}

func TestCollectQueryFailure(t *testing.T) {
	e := New(&querier{err: context.DeadlineExceeded}, time.Second, false)

	_, err := Collect(context.Background(), e, query.New("SELECT 1;"), func(row pgx.CollectableRow) (int64, error) {
		return 0, nil
	})
	assert.Equal(t, Error.StatusTimeout, err)
}

func TestFormatArg(t *testing.T) {
	var nilStr *string
	name := "Main"

	assert.Equal(t, "Main", formatArg(name))
	assert.Equal(t, "Main", formatArg(&name))
	assert.Equal(t, "NULL", formatArg(nilStr))
	assert.Equal(t, "NULL", formatArg(nil))
	assert.Equal(t, "1, 2", formatArg([]int64{1, 2}))
	assert.Equal(t, "true", formatArg(true))
	assert.Equal(t, "?", formatArg(3.5))
}
