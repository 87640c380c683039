package schema

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	ID      int64
	Name    string
	Active  bool
	Created time.Time
	Note    *string
}

func itemFields() []Field[item] {
	return []Field[item]{
		{Name: "id", Column: "id", Kind: Int, Get: func(i *item) any { return i.ID }},
		{Name: "name", Column: "name", Kind: String, Get: func(i *item) any { return i.Name }},
		{Name: "is_active", Column: "is_active", Kind: Bool, Get: func(i *item) any { return i.Active }},
		{Name: "created_at", Column: "created_at", Kind: Time, Get: func(i *item) any { return i.Created }},
		{Name: "note", Column: "note", Kind: String, Get: func(i *item) any {
			if i.Note == nil {
				return nil
			}
			return *i.Note
		}},
	}
}

func TestValidate(t *testing.T) {
	t.Run("valid schema", func(t *testing.T) {
		s := New("item", "items", itemFields()...)
		require.NoError(t, s.Validate())

		f, ok := s.Field("name")
		require.True(t, ok)
		assert.Equal(t, "name", f.Column)
		assert.Equal(t, "id", s.ID().Name)
		assert.Equal(t, []string{"id", "name", "is_active", "created_at", "note"}, s.Columns())

		_, ok = s.Field("missing")
		assert.False(t, ok)
	})

	t.Run("duplicate field", func(t *testing.T) {
		fields := append(itemFields(), Field[item]{
			Name: "name", Column: "name2", Kind: String, Get: func(i *item) any { return i.Name },
		})
		assert.ErrorContains(t, New("item", "items", fields...).Validate(), `duplicate field "name"`)
	})

	t.Run("missing accessor", func(t *testing.T) {
		fields := append(itemFields(), Field[item]{Name: "x", Column: "x", Kind: String})
		assert.ErrorContains(t, New("item", "items", fields...).Validate(), "no accessor")
	})

	t.Run("accessor kind mismatch", func(t *testing.T) {
		fields := append(itemFields(), Field[item]{
			Name: "bad", Column: "bad", Kind: Int, Get: func(i *item) any { return int32(0) },
		})
		assert.ErrorContains(t, New("item", "items", fields...).Validate(), `accessor of field "bad"`)
	})

	t.Run("unknown kind", func(t *testing.T) {
		fields := append(itemFields(), Field[item]{
			Name: "bad", Column: "bad", Kind: Kind(42), Get: func(i *item) any { return nil },
		})
		assert.ErrorContains(t, New("item", "items", fields...).Validate(), "unknown kind")
	})

	t.Run("missing id", func(t *testing.T) {
		fields := itemFields()[1:]
		assert.ErrorContains(t, New("item", "items", fields...).Validate(), `"id" field`)
	})

	t.Run("empty names", func(t *testing.T) {
		err := New[item]("", "", itemFields()...).Validate()
		assert.ErrorContains(t, err, "entity name is empty")
		assert.ErrorContains(t, err, "table name is empty")
	})
}

func TestCoerce(t *testing.T) {
	ts := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		kind    Kind
		in      any
		want    any
		wantErr bool
	}{
		{"int from float", Int, float64(5), int64(5), false},
		{"int from string", Int, " 7 ", int64(7), false},
		{"int from fraction", Int, 5.5, nil, true},
		{"int from huge float", Int, 1e20, nil, true},
		{"int from 2^63", Int, float64(math.MaxInt64), nil, true},
		{"int from min int64", Int, float64(math.MinInt64), int64(math.MinInt64), false},
		{"int from bool", Int, true, nil, true},
		{"string", String, "abc", "abc", false},
		{"string from number", String, float64(1), nil, true},
		{"bool", Bool, true, true, false},
		{"bool from string", Bool, "false", false, false},
		{"bool from garbage", Bool, "nope", nil, true},
		{"time from string", Time, "2024-05-01T10:00:00Z", ts, false},
		{"time from garbage", Time, "yesterday", nil, true},
		{"null", String, nil, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.kind.Coerce(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			if want, ok := tt.want.(time.Time); ok {
				assert.True(t, want.Equal(got.(time.Time)))
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCompare(t *testing.T) {
	assert.Equal(t, -1, Int.Compare(int64(1), int64(2)))
	assert.Equal(t, 0, Int.Compare(int64(2), int64(2)))
	assert.Equal(t, 1, String.Compare("b", "a"))
	assert.Equal(t, -1, Bool.Compare(false, true))
	assert.Equal(t, 0, Bool.Compare(true, true))

	now := time.Now()
	assert.Equal(t, 1, Time.Compare(now.Add(time.Second), now))
}
