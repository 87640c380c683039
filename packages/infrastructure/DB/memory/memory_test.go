package memory

import (
	"context"
	"net/http"
	"testing"
	Error "warehouse/packages/common/errors"
	"warehouse/packages/core/directive"
	"warehouse/packages/core/entity"
	"warehouse/packages/core/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T {
	return &v
}

func seed(t *testing.T, db *DB) {
	t.Helper()

	ctx := context.Background()

	require.Nil(t, db.Users().Create(ctx, &entity.User{Username: "admin", HashedPassword: "x"}))
	require.Nil(t, db.Warehouses().Create(ctx, &entity.Warehouse{Name: "Main", Address: "Street 1", IsActive: true}))
	require.Nil(t, db.Warehouses().Create(ctx, &entity.Warehouse{Name: "Backup", Address: "Street 2", IsActive: true}))
	require.Nil(t, db.Categories().Create(ctx, &entity.Category{Name: "Tools", IsActive: true}))

	for i, q := range []int64{3, 10, 5} {
		p := &entity.Product{
			Name:        []string{"Hammer", "Screwdriver", "Drill"}[i],
			CategoryID:  1,
			WarehouseID: 1,
			Quantity:    q,
			IsActive:    true,
			CreatedBy:   1,
		}
		require.Nil(t, db.Products().Create(ctx, p))
		assert.Equal(t, int64(i+1), p.ID)
	}
}

func TestCreateAndGet(t *testing.T) {
	db := New()
	ctx := context.Background()

	w := &entity.Warehouse{Name: "Main", Address: "Street 1", Description: ptr("Primary"), IsActive: true}
	require.Nil(t, db.Warehouses().Create(ctx, w))
	assert.Equal(t, int64(1), w.ID)

	got, err := db.Warehouses().GetByID(ctx, w.ID)
	require.Nil(t, err)
	assert.Equal(t, w, got)

	// Returned record is a copy
	got.Name = "Changed"
	again, err := db.Warehouses().GetByID(ctx, w.ID)
	require.Nil(t, err)
	assert.Equal(t, "Main", again.Name)
}

func TestGetAndDeleteMissing(t *testing.T) {
	db := New()
	ctx := context.Background()

	_, err := db.Categories().GetByID(ctx, 42)
	require.NotNil(t, err)
	assert.Equal(t, http.StatusNotFound, err.Status())
	assert.Equal(t, "category not found", err.Error())

	err = db.Categories().Delete(ctx, 42)
	require.NotNil(t, err)
	assert.Equal(t, http.StatusNotFound, err.Status())
}

func TestUniqueConstraints(t *testing.T) {
	db := New()
	ctx := context.Background()

	require.Nil(t, db.Users().Create(ctx, &entity.User{Username: "john", Email: ptr("john@example.com")}))
	require.Nil(t, db.Users().Create(ctx, &entity.User{Username: "jane"}))
	// NULL emails never conflict
	require.Nil(t, db.Users().Create(ctx, &entity.User{Username: "jack"}))

	err := db.Users().Create(ctx, &entity.User{Username: "john"})
	require.NotNil(t, err)
	assert.Equal(t, http.StatusConflict, err.Status())

	err = db.Users().Create(ctx, &entity.User{Username: "jim", Email: ptr("john@example.com")})
	require.NotNil(t, err)
	assert.Equal(t, http.StatusConflict, err.Status())

	_, err = db.Users().Update(ctx, 2, &entity.UserUpdate{Username: ptr("john")})
	require.NotNil(t, err)
	assert.Equal(t, http.StatusConflict, err.Status())

	// Record doesn't conflict with itself
	u, err := db.Users().Update(ctx, 1, &entity.UserUpdate{Username: ptr("john"), Age: ptr(int64(30))})
	require.Nil(t, err)
	assert.Equal(t, int64(30), *u.Age)

	john, err := db.Users().GetByUsername(ctx, "john")
	require.Nil(t, err)
	assert.Equal(t, int64(1), john.ID)

	_, err = db.Users().GetByUsername(ctx, "nobody")
	require.NotNil(t, err)
	assert.Equal(t, http.StatusNotFound, err.Status())
}

func TestReferences(t *testing.T) {
	db := New()
	ctx := context.Background()
	seed(t, db)

	err := db.Products().Create(ctx, &entity.Product{Name: "Saw", CategoryID: 7, WarehouseID: 1, CreatedBy: 1})
	require.NotNil(t, err)
	assert.Equal(t, http.StatusBadRequest, err.Status())

	_, err = db.Products().Update(ctx, 1, &entity.ProductUpdate{WarehouseID: ptr(int64(9))})
	require.NotNil(t, err)
	assert.Equal(t, http.StatusBadRequest, err.Status())

	p, err := db.Products().GetByID(ctx, 1)
	require.Nil(t, err)
	assert.Equal(t, int64(1), p.WarehouseID)

	err = db.Attributes().Create(ctx, &entity.Attribute{Name: "color", ProductID: 99})
	require.NotNil(t, err)
	assert.Equal(t, http.StatusBadRequest, err.Status())
}

func TestList(t *testing.T) {
	db := New()
	ctx := context.Background()
	seed(t, db)

	plan, err := directive.Compile(entity.ProductSchema, directive.FromRaw(
		`{"quantity": {"GE": 5}}`,
		`[{"field": "quantity", "order": "DESC"}]`,
		"",
	))
	require.Nil(t, err)

	products, err := db.Products().List(ctx, plan)
	require.Nil(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, int64(10), products[0].Quantity)
	assert.Equal(t, int64(5), products[1].Quantity)

	plan, err = directive.Compile(entity.ProductSchema, directive.FromRaw("", "", `{"limit": 1, "offset": 1}`))
	require.Nil(t, err)

	products, err = db.Products().List(ctx, plan)
	require.Nil(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, int64(2), products[0].ID)
}

func TestFindAndDeleteByIDs(t *testing.T) {
	db := New()
	ctx := context.Background()
	seed(t, db)

	plan, err := directive.Where(entity.ProductSchema, "quantity", directive.LE, int64(5))
	require.Nil(t, err)

	ids, err := db.Products().FindIDs(ctx, plan)
	require.Nil(t, err)
	assert.Equal(t, []int64{1, 3}, ids)

	require.Nil(t, db.Products().DeleteByIDs(ctx, append(ids, 100)))

	all, err := directive.Compile(entity.ProductSchema, nil)
	require.Nil(t, err)

	products, err := db.Products().List(ctx, all)
	require.Nil(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Screwdriver", products[0].Name)
}

func TestAtomic(t *testing.T) {
	db := New()
	ctx := context.Background()
	seed(t, db)

	t.Run("rollback on error", func(t *testing.T) {
		err := db.Atomic(ctx, func(tx store.Store) *Error.Status {
			require.Nil(t, tx.Products().Delete(ctx, 1))
			require.Nil(t, tx.Warehouses().Create(ctx, &entity.Warehouse{Name: "Temp", Address: "-"}))
			return Error.NewValidationStatus("abort")
		})
		require.NotNil(t, err)
		assert.Equal(t, "abort", err.Error())

		_, e := db.Products().GetByID(ctx, 1)
		assert.Nil(t, e)

		all, _ := directive.Compile(entity.WarehouseSchema, nil)
		warehouses, _ := db.Warehouses().List(ctx, all)
		assert.Len(t, warehouses, 2)
	})

	t.Run("commit on success", func(t *testing.T) {
		err := db.Atomic(ctx, func(tx store.Store) *Error.Status {
			// Nested call runs in the same transaction
			return tx.Atomic(ctx, func(tx store.Store) *Error.Status {
				return tx.Products().Delete(ctx, 2)
			})
		})
		require.Nil(t, err)

		_, e := db.Products().GetByID(ctx, 2)
		require.NotNil(t, e)
		assert.Equal(t, http.StatusNotFound, e.Status())
	})
}
