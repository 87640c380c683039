package directive

import (
	"fmt"
	"slices"
	"strings"
	Error "warehouse/packages/common/errors"
	"warehouse/packages/common/logger"
	"warehouse/packages/core/schema"
)

type Predicate[T any] struct {
	Field *schema.Field[T]
	Op    Operator
	// Coerced values. Single value for scalar operators,
	// two values (lower and upper bounds) for BETWEEN, any amount for IN and NOT IN.
	Args []any
}

type Order[T any] struct {
	Field *schema.Field[T]
	Desc  bool
}

// Query compiled against the entity schema.
// All fields are resolved and all values are coerced to the field kinds.
type Plan[T any] struct {
	Schema     *schema.Schema[T]
	Predicates []Predicate[T]
	Orders     []Order[T]
	Limit      int
	Offset     int
}

func unknownField(kind string, field string, entity string) *Error.Status {
	return Error.NewValidationStatus(
		fmt.Sprintf("unknown %s field %q for entity %q", kind, field, entity),
	)
}

// Resolves query against the given schema.
// Unknown fields and invalid values cause validation error.
// Unknown filter operators are skipped.
func Compile[T any](s *schema.Schema[T], q *Query) (*Plan[T], *Error.Status) {
	if q == nil {
		q = NewQuery()
	}

	plan := &Plan[T]{
		Schema:     s,
		Predicates: []Predicate[T]{},
		Orders:     []Order[T]{},
	}

	if err := plan.compileFilter(q.Filter); err != nil {
		return nil, err
	}
	if err := plan.compileSort(q.Sort); err != nil {
		return nil, err
	}
	if err := plan.compileRange(q.Range); err != nil {
		return nil, err
	}

	return plan, nil
}

func (p *Plan[T]) compileFilter(filter Filter) *Error.Status {
	// Map iteration order is random, sort to get deterministic predicates order
	fieldNames := make([]string, 0, len(filter))
	for name := range filter {
		fieldNames = append(fieldNames, name)
	}
	slices.Sort(fieldNames)

	for _, name := range fieldNames {
		field, ok := p.Schema.Field(name)
		if !ok {
			return unknownField("filter", name, p.Schema.Entity)
		}

		conditions := filter[name]

		rawOps := make([]string, 0, len(conditions))
		for rawOp := range conditions {
			rawOps = append(rawOps, rawOp)
		}
		slices.Sort(rawOps)

		for _, rawOp := range rawOps {
			op, ok := ParseOperator(rawOp)
			if !ok {
				directiveLogger.Warning(
					"Unknown filter operator "+rawOp+" on field "+name+" will be ignored",
					logger.Meta{"entity": p.Schema.Entity},
				)
				continue
			}

			predicate, err := newPredicate(field, op, conditions[rawOp])
			if err != nil {
				return err
			}

			p.Predicates = append(p.Predicates, predicate)
		}
	}

	return nil
}

func newPredicate[T any](field *schema.Field[T], op Operator, value any) (Predicate[T], *Error.Status) {
	predicate := Predicate[T]{Field: field, Op: op}

	invalidValue := func(reason string) *Error.Status {
		return Error.NewValidationStatus(
			fmt.Sprintf("invalid value of filter field %q (%s): %s", field.Name, op, reason),
		)
	}

	if op == ILike && field.Kind != schema.String {
		return predicate, invalidValue("ILIKE can be used only with string fields")
	}

	list, isList := value.([]any)

	if op.IsListOperator() {
		if !isList {
			return predicate, invalidValue("list expected")
		}
		if op == Between && len(list) != 2 {
			return predicate, invalidValue("list of 2 values expected")
		}

		predicate.Args = make([]any, len(list))

		for i, v := range list {
			coerced, err := field.Kind.Coerce(v)
			if err != nil {
				return predicate, invalidValue(err.Error())
			}
			predicate.Args[i] = coerced
		}

		return predicate, nil
	}

	if isList {
		return predicate, invalidValue("scalar expected")
	}

	coerced, err := field.Kind.Coerce(value)
	if err != nil {
		return predicate, invalidValue(err.Error())
	}

	predicate.Args = []any{coerced}

	return predicate, nil
}

func (p *Plan[T]) compileSort(sort Sort) *Error.Status {
	hasID := false

	for _, key := range sort {
		field, ok := p.Schema.Field(key.Field)
		if !ok {
			return unknownField("sort", key.Field, p.Schema.Entity)
		}

		var desc bool
		switch strings.ToUpper(strings.TrimSpace(key.Order)) {
		case "ASC":
			desc = false
		case "DESC":
			desc = true
		default:
			return Error.NewValidationStatus(
				fmt.Sprintf("invalid sort order %q of field %q: expected ASC or DESC", key.Order, key.Field),
			)
		}

		if field.Name == schema.IDField {
			hasID = true
		}

		p.Orders = append(p.Orders, Order[T]{Field: field, Desc: desc})
	}

	// Tie-break, makes paging stable
	if !hasID {
		p.Orders = append(p.Orders, Order[T]{Field: p.Schema.ID()})
	}

	return nil
}

func rangeValue(rng Range, key string, def int) (int, *Error.Status) {
	raw, present := rng[key]
	if !present {
		return def, nil
	}

	v, err := schema.Int.Coerce(raw)
	if err != nil {
		return 0, Error.NewValidationStatus("invalid range " + key + ": " + err.Error())
	}

	n := v.(int64)
	if n < 0 {
		return 0, Error.NewValidationStatus(fmt.Sprintf("invalid range %s: %d is negative", key, n))
	}

	return int(n), nil
}

// Absent key means default, present zero means zero.
func (p *Plan[T]) compileRange(rng Range) *Error.Status {
	var err *Error.Status

	if p.Limit, err = rangeValue(rng, "limit", DefaultLimit); err != nil {
		return err
	}
	if p.Offset, err = rangeValue(rng, "offset", DefaultOffset); err != nil {
		return err
	}

	return nil
}

// Builds plan with a single predicate on the given field.
// Values of list operators must be passed as []any.
func Where[T any](s *schema.Schema[T], field string, op Operator, value any) (*Plan[T], *Error.Status) {
	q := NewQuery()
	q.Filter[field] = map[string]any{string(op): value}
	return Compile(s, q)
}
