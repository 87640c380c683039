package directive

import "strings"

type Operator string

const (
	Equal   Operator = "EQUAL"
	Not     Operator = "NOT"
	ILike   Operator = "ILIKE"
	In      Operator = "IN"
	NotIn   Operator = "NOT IN"
	GE      Operator = "GE"
	LE      Operator = "LE"
	Between Operator = "BETWEEN"
)

var operatorAliases = map[string]Operator{
	"EQUAL":   Equal,
	"NOT":     Not,
	"ILIKE":   ILike,
	"IN":      In,
	"NOT IN":  NotIn,
	"GE":      GE,
	"GTE":     GE,
	"LE":      LE,
	"LTE":     LE,
	"BETWEEN": Between,
}

// Returns canonical operator for the given raw operator name.
// Names are case-insensitive, "_" is treated as space ("not_in" is NOT IN).
func ParseOperator(raw string) (Operator, bool) {
	name := strings.ToUpper(strings.TrimSpace(raw))
	name = strings.Join(strings.Fields(strings.ReplaceAll(name, "_", " ")), " ")

	op, ok := operatorAliases[name]
	return op, ok
}

// Reports whether operator value must be a list.
func (op Operator) IsListOperator() bool {
	return op == In || op == NotIn || op == Between
}
