package directive

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseFilter(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want Filter
	}{
		{"empty", "", Filter{}},
		{"blank", "   ", Filter{}},
		{"null", "null", Filter{}},
		{"malformed", `{"quantity": {"GE": 5}`, Filter{}},
		{"not an object per field", `{"quantity": 5}`, Filter{}},
		{"array", `[1, 2]`, Filter{}},
		{
			"valid",
			`{"quantity": {"GE": 5}, "name": {"IN": ["a", "b"]}}`,
			Filter{
				"quantity": {"GE": float64(5)},
				"name":     {"IN": []any{"a", "b"}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseFilter(tt.raw))
		})
	}
}

func TestParseSort(t *testing.T) {
	assert.Equal(t, Sort{}, ParseSort(""))
	assert.Equal(t, Sort{}, ParseSort("not json"))
	assert.Equal(t, Sort{}, ParseSort(`{"field": "id"}`))
	assert.Equal(
		t,
		Sort{{Field: "quantity", Order: "DESC"}, {Field: "name", Order: "asc"}},
		ParseSort(`[{"field": "quantity", "order": "DESC"}, {"field": "name", "order": "asc"}]`),
	)
}

func TestParseRange(t *testing.T) {
	assert.Equal(t, Range{}, ParseRange(""))
	assert.Equal(t, Range{}, ParseRange("[1, 2]"))
	assert.Equal(t, Range{"limit": float64(0)}, ParseRange(`{"limit": 0}`))
	// Types aren't validated on parsing
	assert.Equal(t, Range{"limit": "ten"}, ParseRange(`{"limit": "ten"}`))
}

func TestFromRaw(t *testing.T) {
	q := FromRaw(`{"name": {"ILIKE": "x"}}`, "garbage", `{"offset": 1}`)

	assert.Equal(t, Filter{"name": {"ILIKE": "x"}}, q.Filter)
	assert.Equal(t, Sort{}, q.Sort)
	assert.Equal(t, Range{"offset": float64(1)}, q.Range)
}

func TestParseOperator(t *testing.T) {
	tests := []struct {
		raw  string
		want Operator
		ok   bool
	}{
		{"EQUAL", Equal, true},
		{"equal", Equal, true},
		{" not ", Not, true},
		{"ILIKE", ILike, true},
		{"IN", In, true},
		{"NOT IN", NotIn, true},
		{"not_in", NotIn, true},
		{"NOT   IN", NotIn, true},
		{"GE", GE, true},
		{"GTE", GE, true},
		{"LE", LE, true},
		{"LTE", LE, true},
		{"BETWEEN", Between, true},
		{"LIKE", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			op, ok := ParseOperator(tt.raw)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, op)
		})
	}
}
