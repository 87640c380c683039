package entity

import (
	"time"
	"warehouse/packages/core/schema"
)

type Product struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	CategoryID  int64     `json:"category_id"`
	WarehouseID int64     `json:"warehouse_id"`
	Quantity    int64     `json:"quantity"`
	IsActive    bool      `json:"is_active"`
	CreatedBy   int64     `json:"created_by"`
	UpdatedBy   *int64    `json:"updated_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type ProductCreate struct {
	Name        string `json:"name" validate:"required,max=255"`
	CategoryID  int64  `json:"category_id" validate:"required,min=1"`
	WarehouseID int64  `json:"warehouse_id" validate:"required,min=1"`
	Quantity    *int64 `json:"quantity" validate:"omitempty,min=0"`
	IsActive    *bool  `json:"is_active"`
}

// Builds product created by the given user.
func (c *ProductCreate) Build(createdBy int64, now time.Time) *Product {
	p := &Product{
		Name:        c.Name,
		CategoryID:  c.CategoryID,
		WarehouseID: c.WarehouseID,
		IsActive:    true,
		CreatedBy:   createdBy,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	assign(&p.Quantity, c.Quantity)
	assign(&p.IsActive, c.IsActive)
	return p
}

type ProductUpdate struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=255"`
	CategoryID  *int64  `json:"category_id" validate:"omitempty,min=1"`
	WarehouseID *int64  `json:"warehouse_id" validate:"omitempty,min=1"`
	Quantity    *int64  `json:"quantity" validate:"omitempty,min=0"`
	IsActive    *bool   `json:"is_active"`

	// Set by the service, not by the client
	UpdatedBy *int64     `json:"-"`
	UpdatedAt *time.Time `json:"-"`
}

func (u *ProductUpdate) Changes() []Change {
	changes := []Change{}
	changes = appendChange(changes, "name", u.Name)
	changes = appendChange(changes, "category_id", u.CategoryID)
	changes = appendChange(changes, "warehouse_id", u.WarehouseID)
	changes = appendChange(changes, "quantity", u.Quantity)
	changes = appendChange(changes, "is_active", u.IsActive)
	changes = appendChange(changes, "updated_by", u.UpdatedBy)
	changes = appendChange(changes, "updated_at", u.UpdatedAt)
	return changes
}

func (u *ProductUpdate) Apply(p *Product) {
	assign(&p.Name, u.Name)
	assign(&p.CategoryID, u.CategoryID)
	assign(&p.WarehouseID, u.WarehouseID)
	assign(&p.Quantity, u.Quantity)
	assign(&p.IsActive, u.IsActive)
	assignNullable(&p.UpdatedBy, u.UpdatedBy)
	assign(&p.UpdatedAt, u.UpdatedAt)
}

type ProductMove struct {
	DestinationWarehouseID int64 `json:"destination_warehouse_id" validate:"required,min=1"`
	// Optional, if specified product must be located in this warehouse
	SourceWarehouseID *int64 `json:"source_warehouse_id" validate:"omitempty,min=1"`
}

var ProductSchema = schema.New("product", "products",
	schema.Field[Product]{Name: "id", Column: "id", Kind: schema.Int, Get: func(p *Product) any { return p.ID }},
	schema.Field[Product]{Name: "name", Column: "name", Kind: schema.String, Get: func(p *Product) any { return p.Name }},
	schema.Field[Product]{Name: "category_id", Column: "category_id", Kind: schema.Int, Get: func(p *Product) any { return p.CategoryID }},
	schema.Field[Product]{Name: "warehouse_id", Column: "warehouse_id", Kind: schema.Int, Get: func(p *Product) any { return p.WarehouseID }},
	schema.Field[Product]{Name: "quantity", Column: "quantity", Kind: schema.Int, Get: func(p *Product) any { return p.Quantity }},
	schema.Field[Product]{Name: "is_active", Column: "is_active", Kind: schema.Bool, Get: func(p *Product) any { return p.IsActive }},
	schema.Field[Product]{Name: "created_by", Column: "created_by", Kind: schema.Int, Get: func(p *Product) any { return p.CreatedBy }},
	schema.Field[Product]{Name: "updated_by", Column: "updated_by", Kind: schema.Int, Get: func(p *Product) any { return deref(p.UpdatedBy) }},
	schema.Field[Product]{Name: "created_at", Column: "created_at", Kind: schema.Time, Get: func(p *Product) any { return p.CreatedAt }},
	schema.Field[Product]{Name: "updated_at", Column: "updated_at", Kind: schema.Time, Get: func(p *Product) any { return p.UpdatedAt }},
)
