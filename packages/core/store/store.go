// Ports of the entity store. Implemented by the postgres and memory adapters.
package store

import (
	"context"
	Error "warehouse/packages/common/errors"
	"warehouse/packages/core/directive"
	"warehouse/packages/core/entity"
)

// Partial update of the entity of type T.
// Changes() is used by SQL adapters, Apply() by in-memory ones,
// both must describe the same modification.
type Patch[T any] interface {
	Changes() []entity.Change
	Apply(record *T)
}

// Unique constraint violations are reported as Conflict with status 409,
// violations of references as ValidationError.
type Repository[T any] interface {
	// Inserts record and assigns its id.
	Create(ctx context.Context, record *T) *Error.Status
	GetByID(ctx context.Context, id int64) (*T, *Error.Status)
	// Returns records matching the plan: filtered, then sorted, then ranged.
	List(ctx context.Context, plan *directive.Plan[T]) ([]*T, *Error.Status)
	// Returns ids of all records matching plan predicates,
	// plan order and range are ignored.
	FindIDs(ctx context.Context, plan *directive.Plan[T]) ([]int64, *Error.Status)
	// Applies patch to the record with the given id and returns updated record.
	// Empty patch just returns current record.
	Update(ctx context.Context, id int64, patch Patch[T]) (*T, *Error.Status)
	// Returns NotFound if there are no record with the given id.
	Delete(ctx context.Context, id int64) *Error.Status
	// Deletes all records with the given ids, missing ids are ignored.
	DeleteByIDs(ctx context.Context, ids []int64) *Error.Status
}

type UserRepository interface {
	Repository[entity.User]
	GetByUsername(ctx context.Context, username string) (*entity.User, *Error.Status)
}

type Store interface {
	Warehouses() Repository[entity.Warehouse]
	Categories() Repository[entity.Category]
	Products() Repository[entity.Product]
	Attributes() Repository[entity.Attribute]
	Users() UserRepository
	// Runs fn atomically: if fn returns error, none of its modifications are applied.
	// Store passed to fn must be used for all operations inside of it.
	Atomic(ctx context.Context, fn func(tx Store) *Error.Status) *Error.Status
	Close() error
}
