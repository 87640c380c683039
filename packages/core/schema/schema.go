package schema

import (
	"errors"
	"fmt"
	"strings"
)

const IDField = "id"

// Describes single entity field which can be used in query directives.
type Field[T any] struct {
	// Public name of the field, used in directives and JSON
	Name string
	// Store column name
	Column string
	Kind   Kind
	// Typed accessor, must return value of the Kind representation or nil
	Get func(*T) any
}

// Explicit mapping of entity fields to store columns and typed accessors.
type Schema[T any] struct {
	Entity string
	Table  string
	fields []Field[T]
	lookup map[string]int
}

func New[T any](entity string, table string, fields ...Field[T]) *Schema[T] {
	s := &Schema[T]{
		Entity: entity,
		Table:  table,
		fields: fields,
		lookup: make(map[string]int, len(fields)),
	}

	for i, f := range fields {
		if _, exists := s.lookup[f.Name]; !exists {
			s.lookup[f.Name] = i
		}
	}

	return s
}

// Returns field with the given name.
func (s *Schema[T]) Field(name string) (*Field[T], bool) {
	i, ok := s.lookup[name]
	if !ok {
		return nil, false
	}
	return &s.fields[i], true
}

func (s *Schema[T]) ID() *Field[T] {
	f, _ := s.Field(IDField)
	return f
}

// Returns all fields in declaration order.
func (s *Schema[T]) Fields() []Field[T] {
	return s.fields
}

// Returns column names in declaration order.
func (s *Schema[T]) Columns() []string {
	cols := make([]string, len(s.fields))
	for i, f := range s.fields {
		cols[i] = f.Column
	}
	return cols
}

// Checks that schema is well-formed:
//   - entity and table names are set;
//   - field names and columns are unique and non-empty;
//   - all kinds are known and all accessors are set;
//   - accessors return values of the declared kind for zero value of T;
//   - there is an "id" field of Int kind.
func (s *Schema[T]) Validate() error {
	var errs []error

	if strings.TrimSpace(s.Entity) == "" {
		errs = append(errs, errors.New("entity name is empty"))
	}
	if strings.TrimSpace(s.Table) == "" {
		errs = append(errs, errors.New("table name is empty"))
	}

	names := make(map[string]struct{}, len(s.fields))
	columns := make(map[string]struct{}, len(s.fields))
	zero := new(T)

	for i, f := range s.fields {
		if strings.TrimSpace(f.Name) == "" {
			errs = append(errs, fmt.Errorf("field #%d has empty name", i))
			continue
		}
		if _, dup := names[f.Name]; dup {
			errs = append(errs, fmt.Errorf("duplicate field %q", f.Name))
		}
		names[f.Name] = struct{}{}

		if strings.TrimSpace(f.Column) == "" {
			errs = append(errs, fmt.Errorf("field %q has empty column", f.Name))
		} else {
			if _, dup := columns[f.Column]; dup {
				errs = append(errs, fmt.Errorf("duplicate column %q", f.Column))
			}
			columns[f.Column] = struct{}{}
		}

		if !f.Kind.IsValid() {
			errs = append(errs, fmt.Errorf("field %q has unknown kind", f.Name))
			continue
		}
		if f.Get == nil {
			errs = append(errs, fmt.Errorf("field %q has no accessor", f.Name))
			continue
		}
		if v := f.Get(zero); !f.Kind.Accepts(v) {
			errs = append(errs, fmt.Errorf("accessor of field %q returned %T, %s expected", f.Name, v, f.Kind))
		}
	}

	if id, ok := s.Field(IDField); !ok || id.Kind != Int {
		errs = append(errs, fmt.Errorf("%q field of int kind is required", IDField))
	}

	if len(errs) != 0 {
		return fmt.Errorf("invalid %q schema: %w", s.Entity, errors.Join(errs...))
	}

	return nil
}
