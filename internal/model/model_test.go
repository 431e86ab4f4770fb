package model

import (
	"testing"

	"github.com/deppfellow/pantry/internal/validation"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateInventoryItemPayloadAcceptsZeroQuantity(t *testing.T) {
	p := &CreateInventoryItemPayload{
		ItemName:     "rice",
		Quantity:     validation.NewOptionalInt(0),
		ExpiryDate:   "2026-12-01",
		ItemCategory: "grains",
	}

	assert.NoError(t, p.Validate())
}

func TestCreateInventoryItemPayloadMissingQuantity(t *testing.T) {
	p := &CreateInventoryItemPayload{
		ItemName:     "rice",
		ExpiryDate:   "2026-12-01",
		ItemCategory: "grains",
	}

	err := p.Validate()
	require.Error(t, err)

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	require.Len(t, verrs, 1)
	assert.Equal(t, "quantity", verrs[0].Field())
	assert.Equal(t, "required", verrs[0].Tag())
}

func TestCreateInventoryItemPayloadBlankNames(t *testing.T) {
	p := &CreateInventoryItemPayload{
		ItemName:     "   ",
		Quantity:     validation.NewOptionalInt(1),
		ExpiryDate:   "2026-12-01",
		ItemCategory: "\t",
	}

	err := p.Validate()
	require.Error(t, err)

	var custom validation.CustomValidationErrors
	require.ErrorAs(t, err, &custom)
	require.Len(t, custom, 2)
	assert.Equal(t, "itemName", custom[0].Field)
	assert.Equal(t, "itemCategory", custom[1].Field)
	assert.Equal(t, "must not be blank", custom[0].Message)
}

func TestUpdateInventoryItemPayloadBadDate(t *testing.T) {
	p := &UpdateInventoryItemPayload{
		ItemName:      "rice",
		Quantity:      validation.NewOptionalInt(2),
		NewExpiryDate: "2026-13-01",
		OldExpiryDate: "2026-12-01",
	}

	var verrs validator.ValidationErrors
	require.ErrorAs(t, p.Validate(), &verrs)
	assert.Equal(t, "newExpiryDate", verrs[0].Field())
	assert.Equal(t, "datetime", verrs[0].Tag())
}

func TestShoppingPayloadsOptionalFields(t *testing.T) {
	assert.NoError(t, (&CreateShoppingItemPayload{ItemName: "milk"}).Validate())
	assert.NoError(t, (&UpdateShoppingItemPayload{ItemName: "milk"}).Validate())

	negative := &CreateShoppingItemPayload{ItemName: "milk", Quantity: validation.NewOptionalInt(-1)}
	var verrs validator.ValidationErrors
	require.ErrorAs(t, negative.Validate(), &verrs)
	assert.Equal(t, "min", verrs[0].Tag())

	assert.Error(t, (&DeleteShoppingItemPayload{ItemName: " "}).Validate())
	assert.Error(t, (&DeleteShoppingItemPayload{}).Validate())
}

func TestNewDataResponse(t *testing.T) {
	items := []ShoppingItem{{ItemName: "milk", Quantity: 2}}
	assert.Equal(t, items, NewDataResponse(items).Data)
}
