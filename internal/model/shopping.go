package model

import "github.com/deppfellow/pantry/internal/validation"

// ShoppingItem is one row of the shopping list, keyed by ItemName.
type ShoppingItem struct {
	ItemName  string `json:"itemName" db:"item_name"`
	Quantity  int    `json:"quantity" db:"quantity"`
	Purchased bool   `json:"purchased" db:"purchased"`
}

type ListShoppingItemsPayload struct{}

func (p *ListShoppingItemsPayload) Validate() error {
	return nil
}

// CreateShoppingItemPayload adds an item; Quantity defaults to 0.
type CreateShoppingItemPayload struct {
	ItemName string                 `json:"itemName" form:"itemName" query:"itemName" validate:"required,max=255"`
	Quantity validation.OptionalInt `json:"quantity" form:"quantity" query:"quantity" validate:"omitempty,min=0"`
}

func (p *CreateShoppingItemPayload) Validate() error {
	if err := validation.Struct(p); err != nil {
		return err
	}
	return blankFields(map[string]string{"itemName": p.ItemName})
}

// UpdateShoppingItemPayload changes whichever of Quantity and Purchased were sent.
type UpdateShoppingItemPayload struct {
	ItemName  string                  `json:"itemName" form:"itemName" query:"itemName" validate:"required,max=255"`
	Quantity  validation.OptionalInt  `json:"quantity" form:"quantity" query:"quantity" validate:"omitempty,min=0"`
	Purchased validation.OptionalBool `json:"purchased" form:"purchased" query:"purchased"`
}

func (p *UpdateShoppingItemPayload) Validate() error {
	if err := validation.Struct(p); err != nil {
		return err
	}
	return blankFields(map[string]string{"itemName": p.ItemName})
}

type DeleteShoppingItemPayload struct {
	ItemName string `json:"itemName" form:"itemName" query:"itemName" validate:"required,max=255"`
}

func (p *DeleteShoppingItemPayload) Validate() error {
	if err := validation.Struct(p); err != nil {
		return err
	}
	return blankFields(map[string]string{"itemName": p.ItemName})
}
