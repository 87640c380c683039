package entity

import "warehouse/packages/core/schema"

type Attribute struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Value     *string `json:"value"`
	ProductID int64   `json:"product_id"`
}

type AttributeCreate struct {
	Name      string  `json:"name" validate:"required,max=255"`
	Value     *string `json:"value" validate:"omitempty,max=2048"`
	ProductID int64   `json:"product_id" validate:"required,min=1"`
}

func (c *AttributeCreate) Build() *Attribute {
	return &Attribute{
		Name:      c.Name,
		Value:     c.Value,
		ProductID: c.ProductID,
	}
}

type AttributeUpdate struct {
	Name  *string `json:"name" validate:"omitempty,min=1,max=255"`
	Value *string `json:"value" validate:"omitempty,max=2048"`
}

func (u *AttributeUpdate) Changes() []Change {
	changes := []Change{}
	changes = appendChange(changes, "name", u.Name)
	changes = appendChange(changes, "value", u.Value)
	return changes
}

func (u *AttributeUpdate) Apply(a *Attribute) {
	assign(&a.Name, u.Name)
	assignNullable(&a.Value, u.Value)
}

var AttributeSchema = schema.New("attribute", "attributes",
	schema.Field[Attribute]{Name: "id", Column: "id", Kind: schema.Int, Get: func(a *Attribute) any { return a.ID }},
	schema.Field[Attribute]{Name: "name", Column: "name", Kind: schema.String, Get: func(a *Attribute) any { return a.Name }},
	schema.Field[Attribute]{Name: "value", Column: "value", Kind: schema.String, Get: func(a *Attribute) any { return deref(a.Value) }},
	schema.Field[Attribute]{Name: "product_id", Column: "product_id", Kind: schema.Int, Get: func(a *Attribute) any { return a.ProductID }},
)
