package model

import (
	"strings"

	"github.com/deppfellow/pantry/internal/validation"
)

// InventoryItem is one row of the inventory list.
//
// The same item name may appear several times with different expiry dates;
// (ItemName, ExpiryDate) is the primary key.
type InventoryItem struct {
	ItemName     string `json:"itemName" db:"item_name"`
	ItemCategory string `json:"itemCategory" db:"item_category"`
	Quantity     int    `json:"quantity" db:"quantity"`
	EntryDate    string `json:"entryDate" db:"entry_date"`
	ExpiryDate   string `json:"expiryDate" db:"expiry_date"`
}

// ListInventoryItemsPayload carries no parameters; GET returns the full list.
type ListInventoryItemsPayload struct{}

func (p *ListInventoryItemsPayload) Validate() error {
	return nil
}

type CreateInventoryItemPayload struct {
	ItemName     string                 `json:"itemName" form:"itemName" query:"itemName" validate:"required,max=255"`
	Quantity     validation.OptionalInt `json:"quantity" form:"quantity" query:"quantity" validate:"required,min=0"`
	ExpiryDate   string                 `json:"expiryDate" form:"expiryDate" query:"expiryDate" validate:"required,datetime=2006-01-02"`
	ItemCategory string                 `json:"itemCategory" form:"itemCategory" query:"itemCategory" validate:"required,max=255"`
}

func (p *CreateInventoryItemPayload) Validate() error {
	if err := validation.Struct(p); err != nil {
		return err
	}
	return blankFields(map[string]string{
		"itemName":     p.ItemName,
		"itemCategory": p.ItemCategory,
	})
}

// UpdateInventoryItemPayload moves the (ItemName, OldExpiryDate) row to
// NewExpiryDate and sets its quantity.
type UpdateInventoryItemPayload struct {
	ItemName      string                 `json:"itemName" form:"itemName" query:"itemName" validate:"required,max=255"`
	Quantity      validation.OptionalInt `json:"quantity" form:"quantity" query:"quantity" validate:"required,min=0"`
	NewExpiryDate string                 `json:"newExpiryDate" form:"newExpiryDate" query:"newExpiryDate" validate:"required,datetime=2006-01-02"`
	OldExpiryDate string                 `json:"oldExpiryDate" form:"oldExpiryDate" query:"oldExpiryDate" validate:"required,datetime=2006-01-02"`
}

func (p *UpdateInventoryItemPayload) Validate() error {
	if err := validation.Struct(p); err != nil {
		return err
	}
	return blankFields(map[string]string{"itemName": p.ItemName})
}

type DeleteInventoryItemPayload struct {
	ItemName   string `json:"itemName" form:"itemName" query:"itemName" validate:"required,max=255"`
	ExpiryDate string `json:"expiryDate" form:"expiryDate" query:"expiryDate" validate:"required,datetime=2006-01-02"`
}

func (p *DeleteInventoryItemPayload) Validate() error {
	if err := validation.Struct(p); err != nil {
		return err
	}
	return blankFields(map[string]string{"itemName": p.ItemName})
}

// blankFields rejects values that pass "required" but hold only whitespace.
func blankFields(fields map[string]string) error {
	var errs validation.CustomValidationErrors
	for _, name := range []string{"itemName", "itemCategory"} {
		value, ok := fields[name]
		if ok && strings.TrimSpace(value) == "" {
			errs = append(errs, validation.CustomValidationError{
				Field:   name,
				Message: "must not be blank",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
