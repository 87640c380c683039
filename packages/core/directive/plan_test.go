package directive

import (
	"net/http"
	"testing"
	"warehouse/packages/core/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T {
	return &v
}

func products() []*entity.Product {
	return []*entity.Product{
		{ID: 1, Name: "Hammer", CategoryID: 1, WarehouseID: 1, Quantity: 3, IsActive: true},
		{ID: 2, Name: "Screwdriver", CategoryID: 1, WarehouseID: 2, Quantity: 10, IsActive: true, UpdatedBy: ptr(int64(1))},
		{ID: 3, Name: "Drill", CategoryID: 2, WarehouseID: 1, Quantity: 5, IsActive: false},
		{ID: 4, Name: "Saw", CategoryID: 2, WarehouseID: 3, Quantity: 5, IsActive: true},
	}
}

func ids(records []*entity.Product) []int64 {
	r := make([]int64, len(records))
	for i, p := range records {
		r[i] = p.ID
	}
	return r
}

func apply(t *testing.T, q *Query) []int64 {
	t.Helper()

	plan, err := Compile(entity.ProductSchema, q)
	require.Nil(t, err)

	return ids(plan.Apply(products()))
}

func TestCompileErrors(t *testing.T) {
	tests := []struct {
		name    string
		query   *Query
		message string
	}{
		{
			"unknown filter field",
			FromRaw(`{"color": {"EQUAL": "red"}}`, "", ""),
			`unknown filter field "color" for entity "product"`,
		},
		{
			"unknown sort field",
			FromRaw("", `[{"field": "color", "order": "ASC"}]`, ""),
			`unknown sort field "color" for entity "product"`,
		},
		{
			"invalid sort order",
			FromRaw("", `[{"field": "name", "order": "UP"}]`, ""),
			`invalid sort order "UP" of field "name"`,
		},
		{
			"missing sort order",
			FromRaw("", `[{"field": "name"}]`, ""),
			`invalid sort order "" of field "name"`,
		},
		{
			"IN without list",
			FromRaw(`{"id": {"IN": 1}}`, "", ""),
			"list expected",
		},
		{
			"NOT IN without list",
			FromRaw(`{"id": {"NOT IN": "1,2"}}`, "", ""),
			"list expected",
		},
		{
			"BETWEEN with three values",
			FromRaw(`{"quantity": {"BETWEEN": [1, 2, 3]}}`, "", ""),
			"list of 2 values expected",
		},
		{
			"scalar operator with list",
			FromRaw(`{"quantity": {"GE": [1]}}`, "", ""),
			"scalar expected",
		},
		{
			"wrong value kind",
			FromRaw(`{"quantity": {"GE": "many"}}`, "", ""),
			`invalid value of filter field "quantity"`,
		},
		{
			"ILIKE on int field",
			FromRaw(`{"quantity": {"ILIKE": "5"}}`, "", ""),
			"ILIKE can be used only with string fields",
		},
		{
			"negative limit",
			FromRaw("", "", `{"limit": -1}`),
			"invalid range limit",
		},
		{
			"filter value out of int64 range",
			FromRaw(`{"id": {"LE": 1e20}}`, "", ""),
			"out of int64 range",
		},
		{
			"limit out of int64 range",
			FromRaw("", "", `{"limit": 1e19}`),
			"out of int64 range",
		},
		{
			"fractional offset",
			FromRaw("", "", `{"offset": 1.5}`),
			"invalid range offset",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Compile(entity.ProductSchema, tt.query)
			require.NotNil(t, err)
			assert.Equal(t, http.StatusBadRequest, err.Status())
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}

func TestCompileRange(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		plan, err := Compile(entity.ProductSchema, nil)
		require.Nil(t, err)
		assert.Equal(t, DefaultLimit, plan.Limit)
		assert.Equal(t, DefaultOffset, plan.Offset)
	})

	t.Run("present zero is literal zero", func(t *testing.T) {
		plan, err := Compile(entity.ProductSchema, FromRaw("", "", `{"limit": 0, "offset": 0}`))
		require.Nil(t, err)
		assert.Equal(t, 0, plan.Limit)
		assert.Equal(t, 0, plan.Offset)
	})

	t.Run("missing key uses default", func(t *testing.T) {
		plan, err := Compile(entity.ProductSchema, FromRaw("", "", `{"offset": 2}`))
		require.Nil(t, err)
		assert.Equal(t, DefaultLimit, plan.Limit)
		assert.Equal(t, 2, plan.Offset)
	})
}

func TestCompileSortTieBreak(t *testing.T) {
	plan, err := Compile(entity.ProductSchema, FromRaw("", `[{"field": "quantity", "order": "desc"}]`, ""))
	require.Nil(t, err)
	require.Len(t, plan.Orders, 2)
	assert.Equal(t, "quantity", plan.Orders[0].Field.Name)
	assert.True(t, plan.Orders[0].Desc)
	assert.Equal(t, "id", plan.Orders[1].Field.Name)
	assert.False(t, plan.Orders[1].Desc)

	plan, err = Compile(entity.ProductSchema, FromRaw("", `[{"field": "id", "order": "DESC"}]`, ""))
	require.Nil(t, err)
	assert.Len(t, plan.Orders, 1)
}

func TestCompileUnknownOperatorIsIgnored(t *testing.T) {
	plan, err := Compile(entity.ProductSchema, FromRaw(`{"quantity": {"LIKE": 5, "GE": 5}}`, "", ""))
	require.Nil(t, err)
	require.Len(t, plan.Predicates, 1)
	assert.Equal(t, GE, plan.Predicates[0].Op)
	assert.Equal(t, []any{int64(5)}, plan.Predicates[0].Args)
}

func TestApply(t *testing.T) {
	tests := []struct {
		name  string
		query *Query
		want  []int64
	}{
		{"no directives", NewQuery(), []int64{1, 2, 3, 4}},
		{"EQUAL", FromRaw(`{"warehouse_id": {"EQUAL": 1}}`, "", ""), []int64{1, 3}},
		{"NOT", FromRaw(`{"warehouse_id": {"NOT": 1}}`, "", ""), []int64{2, 4}},
		{"ILIKE", FromRaw(`{"name": {"ILIKE": "DRI"}}`, "", ""), []int64{2, 3}},
		{"IN", FromRaw(`{"id": {"IN": [1, 4, 9]}}`, "", ""), []int64{1, 4}},
		{"NOT IN", FromRaw(`{"id": {"NOT IN": [1, 4]}}`, "", ""), []int64{2, 3}},
		{"empty IN", FromRaw(`{"id": {"IN": []}}`, "", ""), []int64{}},
		{"GE", FromRaw(`{"quantity": {"GE": 5}}`, "", ""), []int64{2, 3, 4}},
		{"GTE", FromRaw(`{"quantity": {"GTE": 10}}`, "", ""), []int64{2}},
		{"LE", FromRaw(`{"quantity": {"LE": 5}}`, "", ""), []int64{1, 3, 4}},
		{"LTE", FromRaw(`{"quantity": {"lte": 3}}`, "", ""), []int64{1}},
		{"BETWEEN", FromRaw(`{"quantity": {"BETWEEN": [4, 5]}}`, "", ""), []int64{3, 4}},
		{"bool", FromRaw(`{"is_active": {"EQUAL": false}}`, "", ""), []int64{3}},
		{"NULL never matches", FromRaw(`{"updated_by": {"NOT": 5}}`, "", ""), []int64{2}},
		{
			"combined predicates",
			FromRaw(`{"quantity": {"GE": 5}, "is_active": {"EQUAL": true}}`, "", ""),
			[]int64{2, 4},
		},
		{
			"GE with descending sort",
			FromRaw(`{"quantity": {"GE": 5}}`, `[{"field": "quantity", "order": "DESC"}]`, ""),
			[]int64{2, 3, 4},
		},
		{
			"composite sort",
			FromRaw("", `[{"field": "quantity", "order": "DESC"}, {"field": "name", "order": "ASC"}]`, ""),
			[]int64{2, 3, 4, 1},
		},
		{
			"NULLs last on ascending sort",
			FromRaw("", `[{"field": "updated_by", "order": "ASC"}]`, ""),
			[]int64{2, 1, 3, 4},
		},
		{
			"NULLs first on descending sort",
			FromRaw("", `[{"field": "updated_by", "order": "DESC"}]`, ""),
			[]int64{1, 3, 4, 2},
		},
		{"limit and offset", FromRaw("", "", `{"limit": 1, "offset": 1}`), []int64{2}},
		{"zero limit", FromRaw("", "", `{"limit": 0}`), []int64{}},
		{"offset out of range", FromRaw("", "", `{"offset": 10}`), []int64{}},
		{"unknown operator is no-op", FromRaw(`{"quantity": {"MATCHES": 1}}`, "", ""), []int64{1, 2, 3, 4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, apply(t, tt.query))
		})
	}
}

func TestApplyDoesNotModifyInput(t *testing.T) {
	plan, err := Compile(entity.ProductSchema, FromRaw("", `[{"field": "id", "order": "DESC"}]`, ""))
	require.Nil(t, err)

	records := products()
	_ = plan.Apply(records)

	assert.Equal(t, []int64{1, 2, 3, 4}, ids(records))
}

func TestWhere(t *testing.T) {
	plan, err := Where(entity.ProductSchema, "id", In, []any{int64(2), int64(3)})
	require.Nil(t, err)
	assert.Equal(t, []int64{2, 3}, ids(plan.Apply(products())))

	_, err = Where(entity.ProductSchema, "color", Equal, "red")
	require.NotNil(t, err)
}
