package table

import (
	"testing"
	"warehouse/packages/core/entity"

	"github.com/stretchr/testify/assert"
)

func checkTable[T any](t *testing.T, table *Table[T]) {
	t.Helper()

	record := new(T)

	assert.Len(t, table.Dests(record), len(table.Columns))
	assert.Len(t, table.Values(record), len(table.InsertColumns))
	assert.Equal(t, "id", table.Columns[0])
	assert.NotContains(t, table.InsertColumns, "id")

	// Every directive field must be selectable
	for _, f := range table.Schema.Fields() {
		assert.Contains(t, table.Columns, f.Column)
	}

	table.SetID(record, 42)
	assert.Equal(t, int64(42), table.Schema.ID().Get(record))
}

func TestTables(t *testing.T) {
	checkTable(t, Warehouses)
	checkTable(t, Categories)
	checkTable(t, Products)
	checkTable(t, Attributes)
	checkTable(t, Users)

	assert.Equal(t, []string{"warehouses", "categories", "users", "products", "attributes"}, Names())
}

func TestUserTableKeepsPasswordHash(t *testing.T) {
	assert.Contains(t, Users.Columns, "hashed_password")

	_, ok := entity.UserSchema.Field("hashed_password")
	assert.False(t, ok)
}
