// Mapping of entities to postgres tables.
package table

import (
	"warehouse/packages/core/schema"

	"github.com/jackc/pgx/v5"
)

type Table[T any] struct {
	Schema *schema.Schema[T]
	// Selected columns, Dests() must return scan destinations in the same order
	Columns []string
	Dests   func(record *T) []any
	// Columns set on insertion, Values() must return values in the same order
	InsertColumns []string
	Values        func(record *T) []any
	SetID         func(record *T, id int64)
}

func (t *Table[T]) Scan(row pgx.CollectableRow) (*T, error) {
	record := new(T)
	if err := row.Scan(t.Dests(record)...); err != nil {
		return nil, err
	}
	return record, nil
}

// Names of all tables, they must exist after migrations applied.
func Names() []string {
	return []string{
		Warehouses.Schema.Table,
		Categories.Schema.Table,
		Users.Schema.Table,
		Products.Schema.Table,
		Attributes.Schema.Table,
	}
}
