package entity

import "warehouse/packages/core/schema"

type Warehouse struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Address     string  `json:"address"`
	Description *string `json:"description"`
	IsActive    bool    `json:"is_active"`
}

type WarehouseCreate struct {
	Name        string  `json:"name" validate:"required,max=255"`
	Address     string  `json:"address" validate:"required,max=255"`
	Description *string `json:"description" validate:"omitempty,max=2048"`
	IsActive    *bool   `json:"is_active"`
}

func (c *WarehouseCreate) Build() *Warehouse {
	w := &Warehouse{
		Name:        c.Name,
		Address:     c.Address,
		Description: c.Description,
		IsActive:    true,
	}
	assign(&w.IsActive, c.IsActive)
	return w
}

type WarehouseUpdate struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=255"`
	Address     *string `json:"address" validate:"omitempty,min=1,max=255"`
	Description *string `json:"description" validate:"omitempty,max=2048"`
	IsActive    *bool   `json:"is_active"`
}

func (u *WarehouseUpdate) Changes() []Change {
	changes := []Change{}
	changes = appendChange(changes, "name", u.Name)
	changes = appendChange(changes, "address", u.Address)
	changes = appendChange(changes, "description", u.Description)
	changes = appendChange(changes, "is_active", u.IsActive)
	return changes
}

func (u *WarehouseUpdate) Apply(w *Warehouse) {
	assign(&w.Name, u.Name)
	assign(&w.Address, u.Address)
	assignNullable(&w.Description, u.Description)
	assign(&w.IsActive, u.IsActive)
}

var WarehouseSchema = schema.New("warehouse", "warehouses",
	schema.Field[Warehouse]{Name: "id", Column: "id", Kind: schema.Int, Get: func(w *Warehouse) any { return w.ID }},
	schema.Field[Warehouse]{Name: "name", Column: "name", Kind: schema.String, Get: func(w *Warehouse) any { return w.Name }},
	schema.Field[Warehouse]{Name: "address", Column: "address", Kind: schema.String, Get: func(w *Warehouse) any { return w.Address }},
	schema.Field[Warehouse]{Name: "description", Column: "description", Kind: schema.String, Get: func(w *Warehouse) any { return deref(w.Description) }},
	schema.Field[Warehouse]{Name: "is_active", Column: "is_active", Kind: schema.Bool, Get: func(w *Warehouse) any { return w.IsActive }},
)
