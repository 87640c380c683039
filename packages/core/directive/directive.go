// Query directives: filter, sort and range parsed from the request
// and applied to a single entity collection.
package directive

import "warehouse/packages/common/logger"

var directiveLogger = logger.NewSource("DIRECTIVE", logger.Default)

const (
	DefaultLimit  = 100
	DefaultOffset = 0
)

// Field name to operator to value.
// e.g. {"quantity": {"GE": 5}, "name": {"ILIKE": "ham"}}
type Filter map[string]map[string]any

type SortKey struct {
	Field string `json:"field"`
	Order string `json:"order"`
}

// Sort keys in order of precedence.
type Sort []SortKey

// Raw range mapping, may contain "limit" and "offset" keys.
// Values are validated on compilation, not on parsing.
type Range map[string]any

type Query struct {
	Filter Filter
	Sort   Sort
	Range  Range
}

func NewQuery() *Query {
	return &Query{
		Filter: Filter{},
		Sort:   Sort{},
		Range:  Range{},
	}
}
