package memory

import (
	"fmt"
	"net/http"
	"slices"
	Error "warehouse/packages/common/errors"
	"warehouse/packages/core/schema"
)

type uniqueKey[T any] struct {
	field string
	get   func(*T) any
}

// Checks that all records referenced by the given one exist.
type referenceCheck[T any] func(s *state, record *T) *Error.Status

type table[T any] struct {
	schema     *schema.Schema[T]
	nextID     int64
	rows       map[int64]*T
	setID      func(*T, int64)
	unique     []uniqueKey[T]
	references referenceCheck[T]
}

func newTable[T any](s *schema.Schema[T], setID func(*T, int64), unique ...uniqueKey[T]) *table[T] {
	return &table[T]{
		schema: s,
		rows:   make(map[int64]*T),
		setID:  setID,
		unique: unique,
	}
}

func copyOf[T any](record *T) *T {
	c := *record
	return &c
}

func (t *table[T]) clone() *table[T] {
	c := &table[T]{
		schema:     t.schema,
		nextID:     t.nextID,
		rows:       make(map[int64]*T, len(t.rows)),
		setID:      t.setID,
		unique:     t.unique,
		references: t.references,
	}
	for id, row := range t.rows {
		c.rows[id] = copyOf(row)
	}
	return c
}

// Returns ids of all rows in ascending order.
func (t *table[T]) ids() []int64 {
	ids := make([]int64, 0, len(t.rows))
	for id := range t.rows {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Nil values never conflict, same as NULLs in unique index.
func (t *table[T]) checkUnique(record *T, exceptID int64) *Error.Status {
	for _, key := range t.unique {
		v := key.get(record)
		if v == nil {
			continue
		}
		for id, row := range t.rows {
			if id != exceptID && key.get(row) == v {
				return Error.NewConflict(
					fmt.Sprintf("%s with %s %v already exists", t.schema.Entity, key.field, v),
					http.StatusConflict,
				)
			}
		}
	}
	return nil
}

func (t *table[T]) check(s *state, record *T, exceptID int64) *Error.Status {
	if err := t.checkUnique(record, exceptID); err != nil {
		return err
	}
	if t.references != nil {
		return t.references(s, record)
	}
	return nil
}

func exists[T any](t *table[T], id int64, name string) *Error.Status {
	if _, ok := t.rows[id]; !ok {
		return Error.NewValidationStatus(fmt.Sprintf("referenced %s %d doesn't exist", name, id))
	}
	return nil
}
