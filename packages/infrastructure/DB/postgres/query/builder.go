package query

import (
	"strconv"
	"strings"
	"time"
	"warehouse/packages/core/directive"
	"warehouse/packages/core/entity"
	"warehouse/packages/core/schema"

	"github.com/jackc/pgx/v5"
)

var operatorSQL = map[directive.Operator]string{
	directive.Equal: "=",
	directive.Not:   "<>",
	directive.ILike: "ILIKE",
	directive.GE:    ">=",
	directive.LE:    "<=",
}

func quote(name string) string {
	return pgx.Identifier{name}.Sanitize()
}

func columnList(columns []string) string {
	quoted := make([]string, len(columns))
	for i, col := range columns {
		quoted[i] = quote(col)
	}
	return strings.Join(quoted, ", ")
}

type builder struct {
	sql  strings.Builder
	args []any
}

// Adds arg and returns its placeholder.
func (b *builder) arg(v any) string {
	b.args = append(b.args, v)
	return "$" + strconv.Itoa(len(b.args))
}

func (b *builder) query(entity string) *Query {
	return &Query{
		SQL:    b.sql.String(),
		Args:   b.args,
		Entity: entity,
	}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Converts list of coerced values into the typed slice, so it can be encoded as postgres array.
func typedList(kind schema.Kind, values []any) any {
	switch kind {
	case schema.Int:
		r := make([]int64, len(values))
		for i, v := range values {
			r[i] = v.(int64)
		}
		return r
	case schema.String:
		r := make([]string, len(values))
		for i, v := range values {
			r[i] = v.(string)
		}
		return r
	case schema.Bool:
		r := make([]bool, len(values))
		for i, v := range values {
			r[i] = v.(bool)
		}
		return r
	case schema.Time:
		r := make([]time.Time, len(values))
		for i, v := range values {
			r[i] = v.(time.Time)
		}
		return r
	}
	return values
}

func (b *builder) predicate(field string, kind schema.Kind, op directive.Operator, args []any) string {
	col := quote(field)

	switch op {
	case directive.In:
		return col + " = ANY(" + b.arg(typedList(kind, args)) + ")"
	case directive.NotIn:
		return "NOT (" + col + " = ANY(" + b.arg(typedList(kind, args)) + "))"
	case directive.Between:
		lo := b.arg(args[0])
		hi := b.arg(args[1])
		return col + " BETWEEN " + lo + " AND " + hi
	case directive.ILike:
		return col + " ILIKE " + b.arg("%"+likeEscaper.Replace(args[0].(string))+"%")
	}

	return col + " " + operatorSQL[op] + " " + b.arg(args[0])
}

func where[T any](b *builder, plan *directive.Plan[T]) {
	if len(plan.Predicates) == 0 {
		return
	}

	conds := make([]string, len(plan.Predicates))
	for i, p := range plan.Predicates {
		conds[i] = b.predicate(p.Field.Column, p.Field.Kind, p.Op, p.Args)
	}

	b.sql.WriteString(" WHERE ")
	b.sql.WriteString(strings.Join(conds, " AND "))
}

func orderBy[T any](b *builder, plan *directive.Plan[T]) {
	if len(plan.Orders) == 0 {
		return
	}

	keys := make([]string, len(plan.Orders))
	for i, o := range plan.Orders {
		dir := " ASC"
		if o.Desc {
			dir = " DESC"
		}
		keys[i] = quote(o.Field.Column) + dir
	}

	b.sql.WriteString(" ORDER BY ")
	b.sql.WriteString(strings.Join(keys, ", "))
}

// SELECT of the given columns filtered, sorted and ranged by the plan.
func Select[T any](columns []string, plan *directive.Plan[T]) *Query {
	b := new(builder)

	b.sql.WriteString("SELECT " + columnList(columns) + " FROM " + quote(plan.Schema.Table))
	where(b, plan)
	orderBy(b, plan)
	b.sql.WriteString(" LIMIT " + b.arg(int64(plan.Limit)))
	b.sql.WriteString(" OFFSET " + b.arg(int64(plan.Offset)))
	b.sql.WriteString(";")

	return b.query(plan.Schema.Entity)
}

// SELECT of ids of all records matching plan predicates.
func SelectIDs[T any](plan *directive.Plan[T]) *Query {
	b := new(builder)

	b.sql.WriteString("SELECT " + quote(schema.IDField) + " FROM " + quote(plan.Schema.Table))
	where(b, plan)
	b.sql.WriteString(" ORDER BY " + quote(schema.IDField) + " ASC;")

	return b.query(plan.Schema.Entity)
}

func SelectByID[T any](s *schema.Schema[T], columns []string, id int64) *Query {
	b := new(builder)

	b.sql.WriteString("SELECT " + columnList(columns) + " FROM " + quote(s.Table))
	b.sql.WriteString(" WHERE " + quote(schema.IDField) + " = " + b.arg(id) + ";")

	return b.query(s.Entity)
}

func SelectBy[T any](s *schema.Schema[T], columns []string, column string, value any) *Query {
	b := new(builder)

	b.sql.WriteString("SELECT " + columnList(columns) + " FROM " + quote(s.Table))
	b.sql.WriteString(" WHERE " + quote(column) + " = " + b.arg(value) + ";")

	return b.query(s.Entity)
}

// INSERT returning id of the new record.
func Insert[T any](s *schema.Schema[T], columns []string, values []any) *Query {
	b := new(builder)

	placeholders := make([]string, len(values))
	for i, v := range values {
		placeholders[i] = b.arg(v)
	}

	b.sql.WriteString("INSERT INTO " + quote(s.Table) + " (" + columnList(columns) + ")")
	b.sql.WriteString(" VALUES (" + strings.Join(placeholders, ", ") + ")")
	b.sql.WriteString(" RETURNING " + quote(schema.IDField) + ";")

	return b.query(s.Entity)
}

// UPDATE of the record with the given id, returning updated columns.
// Changes must not be empty.
func Update[T any](s *schema.Schema[T], columns []string, id int64, changes []entity.Change) *Query {
	b := new(builder)

	set := make([]string, len(changes))
	for i, c := range changes {
		set[i] = quote(c.Column) + " = " + b.arg(c.Value)
	}

	b.sql.WriteString("UPDATE " + quote(s.Table) + " SET " + strings.Join(set, ", "))
	b.sql.WriteString(" WHERE " + quote(schema.IDField) + " = " + b.arg(id))
	b.sql.WriteString(" RETURNING " + columnList(columns) + ";")

	return b.query(s.Entity)
}

func Delete[T any](s *schema.Schema[T], id int64) *Query {
	b := new(builder)

	b.sql.WriteString("DELETE FROM " + quote(s.Table) + " WHERE " + quote(schema.IDField) + " = " + b.arg(id) + ";")

	return b.query(s.Entity)
}

func DeleteIDs[T any](s *schema.Schema[T], ids []int64) *Query {
	b := new(builder)

	b.sql.WriteString("DELETE FROM " + quote(s.Table) + " WHERE " + quote(schema.IDField) + " = ANY(" + b.arg(ids) + ");")

	return b.query(s.Entity)
}
