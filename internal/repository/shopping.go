package repository

import (
	"context"

	"github.com/deppfellow/pantry/internal/model"
	"github.com/deppfellow/pantry/internal/server"
	"github.com/pkg/errors"
)

type ShoppingRepository struct {
	server *server.Server
}

func NewShoppingRepository(s *server.Server) *ShoppingRepository {
	return &ShoppingRepository{server: s}
}

const shoppingColumns = `item_name, quantity, purchased`

func (r *ShoppingRepository) ListItems(ctx context.Context) ([]model.ShoppingItem, error) {
	items := []model.ShoppingItem{}

	stmt := `SELECT ` + shoppingColumns + ` FROM shopping_list ORDER BY item_name`
	if err := r.server.DB.SelectContext(ctx, &items, stmt); err != nil {
		return nil, errors.Wrap(err, "failed to list shopping items")
	}

	return items, nil
}

// CreateItem inserts a not yet purchased item.
func (r *ShoppingRepository) CreateItem(ctx context.Context, itemName string, quantity int) (*model.ShoppingItem, error) {
	stmt := `
		INSERT INTO shopping_list (item_name, quantity, purchased)
		VALUES (?, ?, 0)
		RETURNING ` + shoppingColumns

	var created model.ShoppingItem
	if err := r.server.DB.GetContext(ctx, &created, stmt, itemName, quantity); err != nil {
		return nil, errors.Wrapf(err, "failed to create shopping item %q", itemName)
	}

	return &created, nil
}

// UpdateItem changes the non-nil fields only. With both nil the row is
// returned unchanged, or sql.ErrNoRows when it does not exist.
func (r *ShoppingRepository) UpdateItem(ctx context.Context, itemName string, quantity *int, purchased *bool) (*model.ShoppingItem, error) {
	stmt := `
		UPDATE shopping_list
		SET quantity = COALESCE(?, quantity),
		    purchased = COALESCE(?, purchased)
		WHERE item_name = ?
		RETURNING ` + shoppingColumns

	var quantityArg, purchasedArg interface{}
	if quantity != nil {
		quantityArg = *quantity
	}
	if purchased != nil {
		purchasedArg = boolToInt(*purchased)
	}

	var updated model.ShoppingItem
	if err := r.server.DB.GetContext(ctx, &updated, stmt, quantityArg, purchasedArg, itemName); err != nil {
		return nil, errors.Wrapf(err, "failed to update shopping item %q", itemName)
	}

	return &updated, nil
}

func (r *ShoppingRepository) DeleteItem(ctx context.Context, itemName string) (*model.ShoppingItem, error) {
	stmt := `
		DELETE FROM shopping_list
		WHERE item_name = ?
		RETURNING ` + shoppingColumns

	var deleted model.ShoppingItem
	if err := r.server.DB.GetContext(ctx, &deleted, stmt, itemName); err != nil {
		return nil, errors.Wrapf(err, "failed to delete shopping item %q", itemName)
	}

	return &deleted, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
