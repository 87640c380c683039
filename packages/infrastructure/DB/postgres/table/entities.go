package table

import "warehouse/packages/core/entity"

var Warehouses = &Table[entity.Warehouse]{
	Schema:  entity.WarehouseSchema,
	Columns: []string{"id", "name", "address", "description", "is_active"},
	Dests: func(w *entity.Warehouse) []any {
		return []any{&w.ID, &w.Name, &w.Address, &w.Description, &w.IsActive}
	},
	InsertColumns: []string{"name", "address", "description", "is_active"},
	Values: func(w *entity.Warehouse) []any {
		return []any{w.Name, w.Address, w.Description, w.IsActive}
	},
	SetID: func(w *entity.Warehouse, id int64) { w.ID = id },
}

var Categories = &Table[entity.Category]{
	Schema:  entity.CategorySchema,
	Columns: []string{"id", "name", "is_active"},
	Dests: func(c *entity.Category) []any {
		return []any{&c.ID, &c.Name, &c.IsActive}
	},
	InsertColumns: []string{"name", "is_active"},
	Values: func(c *entity.Category) []any {
		return []any{c.Name, c.IsActive}
	},
	SetID: func(c *entity.Category, id int64) { c.ID = id },
}

var Products = &Table[entity.Product]{
	Schema: entity.ProductSchema,
	Columns: []string{
		"id", "name", "category_id", "warehouse_id", "quantity", "is_active",
		"created_by", "updated_by", "created_at", "updated_at",
	},
	Dests: func(p *entity.Product) []any {
		return []any{
			&p.ID, &p.Name, &p.CategoryID, &p.WarehouseID, &p.Quantity, &p.IsActive,
			&p.CreatedBy, &p.UpdatedBy, &p.CreatedAt, &p.UpdatedAt,
		}
	},
	InsertColumns: []string{
		"name", "category_id", "warehouse_id", "quantity", "is_active",
		"created_by", "updated_by", "created_at", "updated_at",
	},
	Values: func(p *entity.Product) []any {
		return []any{
			p.Name, p.CategoryID, p.WarehouseID, p.Quantity, p.IsActive,
			p.CreatedBy, p.UpdatedBy, p.CreatedAt, p.UpdatedAt,
		}
	},
	SetID: func(p *entity.Product, id int64) { p.ID = id },
}

var Attributes = &Table[entity.Attribute]{
	Schema:  entity.AttributeSchema,
	Columns: []string{"id", "name", "value", "product_id"},
	Dests: func(a *entity.Attribute) []any {
		return []any{&a.ID, &a.Name, &a.Value, &a.ProductID}
	},
	InsertColumns: []string{"name", "value", "product_id"},
	Values: func(a *entity.Attribute) []any {
		return []any{a.Name, a.Value, a.ProductID}
	},
	SetID: func(a *entity.Attribute, id int64) { a.ID = id },
}

// Unlike schema, also contains password hash
var Users = &Table[entity.User]{
	Schema: entity.UserSchema,
	Columns: []string{
		"id", "username", "first_name", "last_name", "age", "email", "phone", "hashed_password",
	},
	Dests: func(u *entity.User) []any {
		return []any{
			&u.ID, &u.Username, &u.FirstName, &u.LastName, &u.Age, &u.Email, &u.Phone, &u.HashedPassword,
		}
	},
	InsertColumns: []string{
		"username", "first_name", "last_name", "age", "email", "phone", "hashed_password",
	},
	Values: func(u *entity.User) []any {
		return []any{u.Username, u.FirstName, u.LastName, u.Age, u.Email, u.Phone, u.HashedPassword}
	},
	SetID: func(u *entity.User, id int64) { u.ID = id },
}
