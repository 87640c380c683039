// In-memory entity store. Used for tests and local runs without postgres.
package memory

import (
	"context"
	"sync"
	Error "warehouse/packages/common/errors"
	"warehouse/packages/common/logger"
	"warehouse/packages/core/entity"
	"warehouse/packages/core/store"
)

var memoryLogger = logger.NewSource("MEMORY DB", logger.Default)

type state struct {
	warehouses *table[entity.Warehouse]
	categories *table[entity.Category]
	products   *table[entity.Product]
	attributes *table[entity.Attribute]
	users      *table[entity.User]
}

func (s *state) clone() *state {
	return &state{
		warehouses: s.warehouses.clone(),
		categories: s.categories.clone(),
		products:   s.products.clone(),
		attributes: s.attributes.clone(),
		users:      s.users.clone(),
	}
}

func newState() *state {
	s := &state{
		warehouses: newTable(
			entity.WarehouseSchema,
			func(w *entity.Warehouse, id int64) { w.ID = id },
			uniqueKey[entity.Warehouse]{"name", func(w *entity.Warehouse) any { return w.Name }},
		),
		categories: newTable(
			entity.CategorySchema,
			func(c *entity.Category, id int64) { c.ID = id },
			uniqueKey[entity.Category]{"name", func(c *entity.Category) any { return c.Name }},
		),
		products: newTable(
			entity.ProductSchema,
			func(p *entity.Product, id int64) { p.ID = id },
			uniqueKey[entity.Product]{"name", func(p *entity.Product) any { return p.Name }},
		),
		attributes: newTable(
			entity.AttributeSchema,
			func(a *entity.Attribute, id int64) { a.ID = id },
			uniqueKey[entity.Attribute]{"name", func(a *entity.Attribute) any { return a.Name }},
		),
		users: newTable(
			entity.UserSchema,
			func(u *entity.User, id int64) { u.ID = id },
			uniqueKey[entity.User]{"username", func(u *entity.User) any { return u.Username }},
			uniqueKey[entity.User]{"email", func(u *entity.User) any {
				if u.Email == nil {
					return nil
				}
				return *u.Email
			}},
		),
	}

	s.products.references = func(s *state, p *entity.Product) *Error.Status {
		if err := exists(s.categories, p.CategoryID, "category"); err != nil {
			return err
		}
		if err := exists(s.warehouses, p.WarehouseID, "warehouse"); err != nil {
			return err
		}
		if err := exists(s.users, p.CreatedBy, "user"); err != nil {
			return err
		}
		if p.UpdatedBy != nil {
			return exists(s.users, *p.UpdatedBy, "user")
		}
		return nil
	}
	s.attributes.references = func(s *state, a *entity.Attribute) *Error.Status {
		return exists(s.products, a.ProductID, "product")
	}

	return s
}

// Satisfies store.Store interface.
type DB struct {
	mut   *sync.RWMutex
	state *state
	// Set for the view of DB passed into Atomic(), lock is already held by it
	inTx bool
}

var _ store.Store = (*DB)(nil)

func New() *DB {
	memoryLogger.Info("Creating in-memory store", nil)

	return &DB{
		mut:   new(sync.RWMutex),
		state: newState(),
	}
}

func (db *DB) lock() func() {
	if db.inTx {
		return func() {}
	}
	db.mut.Lock()
	return db.mut.Unlock
}

func (db *DB) rlock() func() {
	if db.inTx {
		return func() {}
	}
	db.mut.RLock()
	return db.mut.RUnlock
}

func (db *DB) Warehouses() store.Repository[entity.Warehouse] {
	return &repository[entity.Warehouse]{db, func(s *state) *table[entity.Warehouse] { return s.warehouses }}
}

func (db *DB) Categories() store.Repository[entity.Category] {
	return &repository[entity.Category]{db, func(s *state) *table[entity.Category] { return s.categories }}
}

func (db *DB) Products() store.Repository[entity.Product] {
	return &repository[entity.Product]{db, func(s *state) *table[entity.Product] { return s.products }}
}

func (db *DB) Attributes() store.Repository[entity.Attribute] {
	return &repository[entity.Attribute]{db, func(s *state) *table[entity.Attribute] { return s.attributes }}
}

func (db *DB) Users() store.UserRepository {
	return &userRepository{
		repository[entity.User]{db, func(s *state) *table[entity.User] { return s.users }},
	}
}

// Holds write lock during the whole fn execution.
// If fn fails, state is restored from the snapshot taken before the call.
func (db *DB) Atomic(ctx context.Context, fn func(tx store.Store) *Error.Status) *Error.Status {
	if db.inTx {
		return fn(db)
	}

	db.mut.Lock()
	defer db.mut.Unlock()

	snapshot := db.state.clone()

	tx := &DB{
		mut:   db.mut,
		state: db.state,
		inTx:  true,
	}

	if err := fn(tx); err != nil {
		memoryLogger.Trace("Atomic operation failed, restoring snapshot", nil)
		*db.state = *snapshot
		return err
	}

	return nil
}

func (db *DB) Close() error {
	return nil
}
