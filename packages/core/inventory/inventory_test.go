package inventory

import (
	"context"
	"net/http"
	"strings"
	"testing"
	Error "warehouse/packages/common/errors"
	"warehouse/packages/core/directive"
	"warehouse/packages/core/entity"
	"warehouse/packages/infrastructure/DB/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type plainHasher struct{}

func (plainHasher) Hash(plaintext string) (string, *Error.Status) {
	return "hashed:" + plaintext, nil
}

func (plainHasher) Verify(plaintext string, hash string) bool {
	return strings.TrimPrefix(hash, "hashed:") == plaintext
}

type countingHasher struct {
	plainHasher
	hashes   int
	verifies int
}

func (h *countingHasher) Hash(plaintext string) (string, *Error.Status) {
	h.hashes++
	return h.plainHasher.Hash(plaintext)
}

func (h *countingHasher) Verify(plaintext string, hash string) bool {
	h.verifies++
	return h.plainHasher.Verify(plaintext, hash)
}

func ptr[T any](v T) *T {
	return &v
}

type fixture struct {
	svc         *Service
	db          *memory.DB
	user        *entity.User
	main        *entity.Warehouse
	backup      *entity.Warehouse
	tools       *entity.Category
	hammer      *entity.Product
	screwdriver *entity.Product
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	ctx := context.Background()
	f := &fixture{db: memory.New()}
	f.svc = New(f.db, plainHasher{})

	var err *Error.Status

	f.user, err = f.svc.Register(ctx, &entity.UserCreate{Username: "admin", Password: "secret"}, nil)
	require.Nil(t, err)

	f.main, err = f.svc.CreateWarehouse(ctx, &entity.WarehouseCreate{Name: "Main", Address: "Street 1"}, nil)
	require.Nil(t, err)
	f.backup, err = f.svc.CreateWarehouse(ctx, &entity.WarehouseCreate{Name: "Backup", Address: "Street 2"}, nil)
	require.Nil(t, err)

	f.tools, err = f.svc.CreateCategory(ctx, &entity.CategoryCreate{Name: "Tools"}, nil)
	require.Nil(t, err)

	f.hammer, err = f.svc.CreateProduct(ctx, &entity.ProductCreate{
		Name: "Hammer", CategoryID: f.tools.ID, WarehouseID: f.main.ID, Quantity: ptr(int64(3)),
	}, f.user, nil)
	require.Nil(t, err)

	f.screwdriver, err = f.svc.CreateProduct(ctx, &entity.ProductCreate{
		Name: "Screwdriver", CategoryID: f.tools.ID, WarehouseID: f.backup.ID, Quantity: ptr(int64(10)),
	}, f.user, nil)
	require.Nil(t, err)

	return f
}

func TestCreateAndGet(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	assert.True(t, f.main.IsActive)
	assert.Equal(t, f.user.ID, f.hammer.CreatedBy)
	assert.Nil(t, f.hammer.UpdatedBy)
	assert.False(t, f.hammer.CreatedAt.IsZero())

	p, err := f.svc.GetProduct(ctx, f.hammer.ID)
	require.Nil(t, err)
	assert.Equal(t, f.hammer, p)

	_, err = f.svc.GetWarehouse(ctx, 100)
	require.NotNil(t, err)
	assert.Equal(t, http.StatusNotFound, err.Status())
}

func TestConflicts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.CreateWarehouse(ctx, &entity.WarehouseCreate{Name: "Main", Address: "Elsewhere"}, nil)
	require.NotNil(t, err)
	assert.Equal(t, http.StatusBadRequest, err.Status())

	_, err = f.svc.UpdateWarehouse(ctx, f.backup.ID, &entity.WarehouseUpdate{Name: ptr("Main")}, nil)
	require.NotNil(t, err)
	assert.Equal(t, http.StatusConflict, err.Status())
}

func TestRegisterDuplicate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Register(ctx, &entity.UserCreate{Username: "admin", Password: "another"}, nil)
	require.NotNil(t, err)
	assert.Equal(t, http.StatusBadRequest, err.Status())

	// First user is untouched
	u, err := f.svc.Authenticate(ctx, "admin", "secret", nil)
	require.Nil(t, err)
	assert.Equal(t, f.user.ID, u.ID)
}

func TestAuthenticate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Authenticate(ctx, "admin", "wrong", nil)
	assert.Equal(t, InvalidCredentials, err)

	_, err = f.svc.Authenticate(ctx, "nobody", "secret", nil)
	assert.Equal(t, InvalidCredentials, err)

	u, err := f.svc.CurrentUser(ctx, "admin")
	require.Nil(t, err)
	assert.Equal(t, "admin", u.Username)

	_, err = f.svc.CurrentUser(ctx, "nobody")
	assert.Equal(t, UserNotFound, err)

	t.Run("unknown user costs a hash check", func(t *testing.T) {
		hasher := new(countingHasher)
		svc := New(f.db, hasher)

		_, err := svc.Authenticate(ctx, "nobody", "secret", nil)
		assert.Equal(t, InvalidCredentials, err)
		assert.Equal(t, 1, hasher.verifies)

		_, err = svc.Authenticate(ctx, "ghost", "placeholder-password", nil)
		assert.Equal(t, InvalidCredentials, err)
		assert.Equal(t, 2, hasher.verifies)
		assert.Equal(t, 1, hasher.hashes)
	})
}

func TestProductReferences(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.CreateProduct(ctx, &entity.ProductCreate{
		Name: "Saw", CategoryID: 99, WarehouseID: f.main.ID,
	}, f.user, nil)
	require.NotNil(t, err)
	assert.Equal(t, http.StatusBadRequest, err.Status())
	assert.Equal(t, "category not found", err.Error())

	_, err = f.svc.UpdateProduct(ctx, f.hammer.ID, &entity.ProductUpdate{WarehouseID: ptr(int64(99))}, f.user, nil)
	require.NotNil(t, err)
	assert.Equal(t, http.StatusBadRequest, err.Status())
	assert.Equal(t, "warehouse not found", err.Error())

	_, err = f.svc.UpdateProduct(ctx, 99, &entity.ProductUpdate{Quantity: ptr(int64(1))}, f.user, nil)
	require.NotNil(t, err)
	assert.Equal(t, http.StatusNotFound, err.Status())

	p, err := f.svc.UpdateProduct(ctx, f.hammer.ID, &entity.ProductUpdate{Quantity: ptr(int64(7))}, f.user, nil)
	require.Nil(t, err)
	assert.Equal(t, int64(7), p.Quantity)
	require.NotNil(t, p.UpdatedBy)
	assert.Equal(t, f.user.ID, *p.UpdatedBy)

	_, err = f.svc.CreateAttribute(ctx, &entity.AttributeCreate{Name: "color", ProductID: 99}, nil)
	require.NotNil(t, err)
	assert.Equal(t, http.StatusBadRequest, err.Status())
}

func TestMoveProduct(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown destination", func(t *testing.T) {
		f := newFixture(t)

		_, _, err := f.svc.MoveProduct(ctx, f.hammer.ID, &entity.ProductMove{DestinationWarehouseID: 99}, f.user, nil)
		require.NotNil(t, err)
		assert.Equal(t, http.StatusNotFound, err.Status())

		p, err := f.svc.GetProduct(ctx, f.hammer.ID)
		require.Nil(t, err)
		assert.Equal(t, f.hammer, p)
	})

	t.Run("unknown source", func(t *testing.T) {
		f := newFixture(t)

		_, _, err := f.svc.MoveProduct(ctx, f.hammer.ID, &entity.ProductMove{
			DestinationWarehouseID: f.backup.ID,
			SourceWarehouseID:      ptr(int64(99)),
		}, f.user, nil)
		require.NotNil(t, err)
		assert.Equal(t, http.StatusNotFound, err.Status())
	})

	t.Run("source mismatch", func(t *testing.T) {
		f := newFixture(t)

		_, _, err := f.svc.MoveProduct(ctx, f.hammer.ID, &entity.ProductMove{
			DestinationWarehouseID: f.main.ID,
			SourceWarehouseID:      &f.backup.ID,
		}, f.user, nil)
		assert.Equal(t, ProductNotInSourceWarehouse, err)
	})

	t.Run("missing product", func(t *testing.T) {
		f := newFixture(t)

		_, _, err := f.svc.MoveProduct(ctx, 99, &entity.ProductMove{DestinationWarehouseID: f.main.ID}, f.user, nil)
		require.NotNil(t, err)
		assert.Equal(t, http.StatusNotFound, err.Status())
	})

	t.Run("moved", func(t *testing.T) {
		f := newFixture(t)

		p, dst, err := f.svc.MoveProduct(ctx, f.hammer.ID, &entity.ProductMove{
			DestinationWarehouseID: f.backup.ID,
			SourceWarehouseID:      &f.main.ID,
		}, f.user, nil)
		require.Nil(t, err)
		assert.Equal(t, f.backup.ID, p.WarehouseID)
		assert.Equal(t, "Backup", dst.Name)
		require.NotNil(t, p.UpdatedBy)
		assert.Equal(t, f.user.ID, *p.UpdatedBy)
	})
}

func countProducts(t *testing.T, f *fixture) int {
	t.Helper()

	products, err := f.svc.ListProducts(context.Background(), directive.NewQuery(), nil)
	require.Nil(t, err)
	return len(products)
}

func TestCascades(t *testing.T) {
	ctx := context.Background()

	t.Run("warehouse", func(t *testing.T) {
		f := newFixture(t)

		attr, err := f.svc.CreateAttribute(ctx, &entity.AttributeCreate{Name: "weight", Value: ptr("1kg"), ProductID: f.hammer.ID}, nil)
		require.Nil(t, err)

		require.Nil(t, f.svc.DeleteWarehouse(ctx, f.main.ID, nil))

		_, err = f.svc.GetProduct(ctx, f.hammer.ID)
		require.NotNil(t, err)
		_, err = f.svc.GetAttribute(ctx, attr.ID)
		require.NotNil(t, err)

		// Products of other warehouses are kept
		assert.Equal(t, 1, countProducts(t, f))
	})

	t.Run("category", func(t *testing.T) {
		f := newFixture(t)

		require.Nil(t, f.svc.DeleteCategory(ctx, f.tools.ID, nil))
		assert.Equal(t, 0, countProducts(t, f))
	})

	t.Run("product", func(t *testing.T) {
		f := newFixture(t)

		attr, err := f.svc.CreateAttribute(ctx, &entity.AttributeCreate{Name: "weight", ProductID: f.hammer.ID}, nil)
		require.Nil(t, err)

		require.Nil(t, f.svc.DeleteProduct(ctx, f.hammer.ID, nil))

		_, err = f.svc.GetAttribute(ctx, attr.ID)
		require.NotNil(t, err)
		assert.Equal(t, http.StatusNotFound, err.Status())
	})

	t.Run("user", func(t *testing.T) {
		f := newFixture(t)

		other, err := f.svc.Register(ctx, &entity.UserCreate{Username: "other", Password: "secret"}, nil)
		require.Nil(t, err)

		saw, err := f.svc.CreateProduct(ctx, &entity.ProductCreate{
			Name: "Saw", CategoryID: f.tools.ID, WarehouseID: f.main.ID,
		}, other, nil)
		require.Nil(t, err)

		// Updated by admin, so it must be deleted along with admin
		_, err = f.svc.UpdateProduct(ctx, saw.ID, &entity.ProductUpdate{Quantity: ptr(int64(2))}, f.user, nil)
		require.Nil(t, err)

		require.Nil(t, f.svc.DeleteUser(ctx, f.user.ID, f.user, nil))

		assert.Equal(t, 0, countProducts(t, f))

		_, err = f.svc.CurrentUser(ctx, "admin")
		assert.Equal(t, UserNotFound, err)
	})

	t.Run("missing", func(t *testing.T) {
		f := newFixture(t)

		err := f.svc.DeleteWarehouse(ctx, 99, nil)
		require.NotNil(t, err)
		assert.Equal(t, http.StatusNotFound, err.Status())
		assert.Equal(t, 2, countProducts(t, f))

		err = f.svc.DeleteAttribute(ctx, 99, nil)
		require.NotNil(t, err)
		assert.Equal(t, http.StatusNotFound, err.Status())
	})
}

func TestSelfOnly(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	other, err := f.svc.Register(ctx, &entity.UserCreate{Username: "other", Password: "secret"}, nil)
	require.Nil(t, err)

	err = f.svc.DeleteUser(ctx, other.ID, f.user, nil)
	require.NotNil(t, err)
	assert.Equal(t, http.StatusForbidden, err.Status())

	_, err = f.svc.UpdateUser(ctx, other.ID, &entity.UserUpdate{Age: ptr(int64(20))}, f.user, nil)
	require.NotNil(t, err)
	assert.Equal(t, http.StatusForbidden, err.Status())

	u, err := f.svc.UpdateUser(ctx, f.user.ID, &entity.UserUpdate{Password: ptr("changed")}, f.user, nil)
	require.Nil(t, err)
	assert.Equal(t, "hashed:changed", u.HashedPassword)

	_, err = f.svc.Authenticate(ctx, "admin", "changed", nil)
	assert.Nil(t, err)

	_, err = f.svc.UpdateUser(ctx, f.user.ID, &entity.UserUpdate{Username: ptr("other")}, f.user, nil)
	require.NotNil(t, err)
	assert.Equal(t, http.StatusConflict, err.Status())
}

func TestListValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.ListProducts(ctx, directive.FromRaw(`{"color": {"EQUAL": "red"}}`, "", ""), nil)
	require.NotNil(t, err)
	assert.Equal(t, http.StatusBadRequest, err.Status())
	assert.Contains(t, err.Error(), `"product"`)

	products, err := f.svc.ListProducts(ctx, directive.FromRaw(
		`{"quantity": {"GE": 5}}`, `[{"field": "quantity", "order": "DESC"}]`, "",
	), nil)
	require.Nil(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Screwdriver", products[0].Name)
}
