package directive

import (
	"slices"
	"strings"
)

func (p *Predicate[T]) match(record *T) bool {
	v := p.Field.Get(record)
	// Same as SQL: comparison with NULL is never true
	if v == nil {
		return false
	}

	kind := p.Field.Kind

	switch p.Op {
	case Equal:
		return kind.Compare(v, p.Args[0]) == 0
	case Not:
		return kind.Compare(v, p.Args[0]) != 0
	case ILike:
		return strings.Contains(strings.ToLower(v.(string)), strings.ToLower(p.Args[0].(string)))
	case In, NotIn:
		found := slices.ContainsFunc(p.Args, func(arg any) bool {
			return kind.Compare(v, arg) == 0
		})
		return found == (p.Op == In)
	case GE:
		return kind.Compare(v, p.Args[0]) >= 0
	case LE:
		return kind.Compare(v, p.Args[0]) <= 0
	case Between:
		return kind.Compare(v, p.Args[0]) >= 0 && kind.Compare(v, p.Args[1]) <= 0
	}

	return true
}

// NULLs are greater than any value, so they go last on ascending
// and first on descending order (same as PostgreSQL default).
func (o *Order[T]) compare(a *T, b *T) int {
	x, y := o.Field.Get(a), o.Field.Get(b)

	var r int
	switch {
	case x == nil && y == nil:
		r = 0
	case x == nil:
		r = 1
	case y == nil:
		r = -1
	default:
		r = o.Field.Kind.Compare(x, y)
	}

	if o.Desc {
		return -r
	}
	return r
}

// Reports whether record satisfies all plan predicates.
func (p *Plan[T]) Matches(record *T) bool {
	for i := range p.Predicates {
		if !p.Predicates[i].match(record) {
			return false
		}
	}
	return true
}

// Applies plan to the given records: filter, then sort, then range.
// Returns a new slice, records itself is not modified.
func (p *Plan[T]) Apply(records []*T) []*T {
	result := make([]*T, 0, len(records))

	for _, record := range records {
		if p.Matches(record) {
			result = append(result, record)
		}
	}

	slices.SortStableFunc(result, func(a *T, b *T) int {
		for i := range p.Orders {
			if r := p.Orders[i].compare(a, b); r != 0 {
				return r
			}
		}
		return 0
	})

	if p.Offset >= len(result) {
		return []*T{}
	}
	result = result[p.Offset:]

	if p.Limit < len(result) {
		result = result[:p.Limit]
	}

	return result
}
