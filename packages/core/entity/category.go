package entity

import "warehouse/packages/core/schema"

type Category struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	IsActive bool   `json:"is_active"`
}

type CategoryCreate struct {
	Name     string `json:"name" validate:"required,max=255"`
	IsActive *bool  `json:"is_active"`
}

func (c *CategoryCreate) Build() *Category {
	category := &Category{
		Name:     c.Name,
		IsActive: true,
	}
	assign(&category.IsActive, c.IsActive)
	return category
}

type CategoryUpdate struct {
	Name     *string `json:"name" validate:"omitempty,min=1,max=255"`
	IsActive *bool   `json:"is_active"`
}

func (u *CategoryUpdate) Changes() []Change {
	changes := []Change{}
	changes = appendChange(changes, "name", u.Name)
	changes = appendChange(changes, "is_active", u.IsActive)
	return changes
}

func (u *CategoryUpdate) Apply(c *Category) {
	assign(&c.Name, u.Name)
	assign(&c.IsActive, u.IsActive)
}

var CategorySchema = schema.New("category", "categories",
	schema.Field[Category]{Name: "id", Column: "id", Kind: schema.Int, Get: func(c *Category) any { return c.ID }},
	schema.Field[Category]{Name: "name", Column: "name", Kind: schema.String, Get: func(c *Category) any { return c.Name }},
	schema.Field[Category]{Name: "is_active", Column: "is_active", Kind: schema.Bool, Get: func(c *Category) any { return c.IsActive }},
)
