package postgres

import (
	"context"
	Error "warehouse/packages/common/errors"
	"warehouse/packages/core/directive"
	"warehouse/packages/core/entity"
	"warehouse/packages/core/store"
	"warehouse/packages/infrastructure/DB/postgres/executor"
	"warehouse/packages/infrastructure/DB/postgres/query"
	"warehouse/packages/infrastructure/DB/postgres/table"

	"github.com/jackc/pgx/v5"
)

type repository[T any] struct {
	exec  *executor.Executor
	table *table.Table[T]
}

func (r *repository[T]) notFound(err *Error.Status) *Error.Status {
	if err == Error.StatusNotFound {
		return Error.NewNotFound(r.table.Schema.Entity)
	}
	return err
}

func (r *repository[T]) Create(ctx context.Context, record *T) *Error.Status {
	q := query.Insert(r.table.Schema, r.table.InsertColumns, r.table.Values(record))

	var id int64
	if err := r.exec.Row(ctx, q, &id); err != nil {
		return err
	}

	r.table.SetID(record, id)

	return nil
}

func (r *repository[T]) getBy(ctx context.Context, q *query.Query) (*T, *Error.Status) {
	record := new(T)

	if err := r.exec.Row(ctx, q, r.table.Dests(record)...); err != nil {
		return nil, r.notFound(err)
	}

	return record, nil
}

func (r *repository[T]) GetByID(ctx context.Context, id int64) (*T, *Error.Status) {
	return r.getBy(ctx, query.SelectByID(r.table.Schema, r.table.Columns, id))
}

func (r *repository[T]) List(ctx context.Context, plan *directive.Plan[T]) ([]*T, *Error.Status) {
	return executor.Collect(ctx, r.exec, query.Select(r.table.Columns, plan), r.table.Scan)
}

func (r *repository[T]) FindIDs(ctx context.Context, plan *directive.Plan[T]) ([]int64, *Error.Status) {
	return executor.Collect(ctx, r.exec, query.SelectIDs(plan), pgx.RowTo[int64])
}

func (r *repository[T]) Update(ctx context.Context, id int64, patch store.Patch[T]) (*T, *Error.Status) {
	changes := patch.Changes()
	if len(changes) == 0 {
		return r.GetByID(ctx, id)
	}

	return r.getBy(ctx, query.Update(r.table.Schema, r.table.Columns, id, changes))
}

func (r *repository[T]) Delete(ctx context.Context, id int64) *Error.Status {
	affected, err := r.exec.Exec(ctx, query.Delete(r.table.Schema, id))
	if err != nil {
		return err
	}

	if affected == 0 {
		return Error.NewNotFound(r.table.Schema.Entity)
	}

	return nil
}

func (r *repository[T]) DeleteByIDs(ctx context.Context, ids []int64) *Error.Status {
	if len(ids) == 0 {
		return nil
	}

	_, err := r.exec.Exec(ctx, query.DeleteIDs(r.table.Schema, ids))

	return err
}

type userRepository struct {
	repository[entity.User]
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*entity.User, *Error.Status) {
	field, _ := r.table.Schema.Field("username")

	return r.getBy(ctx, query.SelectBy(r.table.Schema, r.table.Columns, field.Column, username))
}
