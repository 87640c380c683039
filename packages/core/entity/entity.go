package entity

// Column and value pair of a partial update.
type Change struct {
	Column string
	Value  any
}

// Returns value of p or nil if p is nil.
// Used by accessors of nullable fields.
func deref[T any](p *T) any {
	if p == nil {
		return nil
	}
	return *p
}

func appendChange[T any](changes []Change, column string, v *T) []Change {
	if v == nil {
		return changes
	}
	return append(changes, Change{Column: column, Value: *v})
}

func assign[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

func assignNullable[T any](dst **T, v *T) {
	if v != nil {
		value := *v
		*dst = &value
	}
}

// Validates schemas of all entities. Must be called once on startup.
func ValidateSchemas() error {
	validators := []interface{ Validate() error }{
		WarehouseSchema,
		CategorySchema,
		ProductSchema,
		AttributeSchema,
		UserSchema,
	}

	for _, v := range validators {
		if err := v.Validate(); err != nil {
			return err
		}
	}

	return nil
}

