package memory

import (
	"context"
	Error "warehouse/packages/common/errors"
	"warehouse/packages/core/directive"
	"warehouse/packages/core/entity"
	"warehouse/packages/core/store"
)

type repository[T any] struct {
	db    *DB
	table func(*state) *table[T]
}

func (r *repository[T]) Create(ctx context.Context, record *T) *Error.Status {
	unlock := r.db.lock()
	defer unlock()

	t := r.table(r.db.state)

	if err := t.check(r.db.state, record, 0); err != nil {
		return err
	}

	t.nextID++
	t.setID(record, t.nextID)
	t.rows[t.nextID] = copyOf(record)

	return nil
}

func (r *repository[T]) GetByID(ctx context.Context, id int64) (*T, *Error.Status) {
	unlock := r.db.rlock()
	defer unlock()

	t := r.table(r.db.state)

	row, ok := t.rows[id]
	if !ok {
		return nil, Error.NewNotFound(t.schema.Entity)
	}

	return copyOf(row), nil
}

func (r *repository[T]) List(ctx context.Context, plan *directive.Plan[T]) ([]*T, *Error.Status) {
	unlock := r.db.rlock()
	defer unlock()

	t := r.table(r.db.state)

	records := make([]*T, 0, len(t.rows))
	for _, row := range t.rows {
		records = append(records, copyOf(row))
	}

	return plan.Apply(records), nil
}

func (r *repository[T]) FindIDs(ctx context.Context, plan *directive.Plan[T]) ([]int64, *Error.Status) {
	unlock := r.db.rlock()
	defer unlock()

	t := r.table(r.db.state)

	ids := []int64{}
	for _, id := range t.ids() {
		if plan.Matches(t.rows[id]) {
			ids = append(ids, id)
		}
	}

	return ids, nil
}

func (r *repository[T]) Update(ctx context.Context, id int64, patch store.Patch[T]) (*T, *Error.Status) {
	unlock := r.db.lock()
	defer unlock()

	t := r.table(r.db.state)

	row, ok := t.rows[id]
	if !ok {
		return nil, Error.NewNotFound(t.schema.Entity)
	}

	updated := copyOf(row)
	patch.Apply(updated)

	if err := t.check(r.db.state, updated, id); err != nil {
		return nil, err
	}

	t.rows[id] = updated

	return copyOf(updated), nil
}

func (r *repository[T]) Delete(ctx context.Context, id int64) *Error.Status {
	unlock := r.db.lock()
	defer unlock()

	t := r.table(r.db.state)

	if _, ok := t.rows[id]; !ok {
		return Error.NewNotFound(t.schema.Entity)
	}

	delete(t.rows, id)

	return nil
}

func (r *repository[T]) DeleteByIDs(ctx context.Context, ids []int64) *Error.Status {
	unlock := r.db.lock()
	defer unlock()

	t := r.table(r.db.state)

	for _, id := range ids {
		delete(t.rows, id)
	}

	return nil
}

type userRepository struct {
	repository[entity.User]
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*entity.User, *Error.Status) {
	unlock := r.db.rlock()
	defer unlock()

	t := r.table(r.db.state)

	for _, id := range t.ids() {
		if t.rows[id].Username == username {
			return copyOf(t.rows[id]), nil
		}
	}

	return nil, Error.NewNotFound(t.schema.Entity)
}
