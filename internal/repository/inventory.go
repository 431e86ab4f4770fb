package repository

import (
	"context"
	"database/sql"

	"github.com/deppfellow/pantry/internal/model"
	"github.com/deppfellow/pantry/internal/server"
	"github.com/pkg/errors"
)

type InventoryRepository struct {
	server *server.Server
}

func NewInventoryRepository(s *server.Server) *InventoryRepository {
	return &InventoryRepository{server: s}
}

const inventoryColumns = `item_name, item_category, quantity, entry_date, expiry_date`

func (r *InventoryRepository) ListItems(ctx context.Context) ([]model.InventoryItem, error) {
	items := []model.InventoryItem{}

	stmt := `SELECT ` + inventoryColumns + ` FROM inventory_list ORDER BY item_name, expiry_date`
	if err := r.server.DB.SelectContext(ctx, &items, stmt); err != nil {
		return nil, errors.Wrap(err, "failed to list inventory items")
	}

	return items, nil
}

// CreateItem inserts item unless a row with the same name exists, whatever
// its expiry date; that case returns ErrAlreadyExists. The check and the
// insert are one statement.
func (r *InventoryRepository) CreateItem(ctx context.Context, item model.InventoryItem) (*model.InventoryItem, error) {
	stmt := `
		INSERT INTO inventory_list (` + inventoryColumns + `)
		SELECT ?, ?, ?, ?, ?
		WHERE NOT EXISTS (SELECT 1 FROM inventory_list WHERE item_name = ?)
		RETURNING ` + inventoryColumns

	var created model.InventoryItem
	err := r.server.DB.GetContext(ctx, &created, stmt,
		item.ItemName,
		item.ItemCategory,
		item.Quantity,
		item.EntryDate,
		item.ExpiryDate,
		item.ItemName,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errors.Wrapf(ErrAlreadyExists, "inventory item %q", item.ItemName)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to create inventory item %q", item.ItemName)
	}

	return &created, nil
}

// UpdateItem sets quantity and moves the (itemName, oldExpiryDate) row to
// newExpiryDate. When no row matches it returns a nil item if itemName is
// stored under another expiry date, and sql.ErrNoRows otherwise.
func (r *InventoryRepository) UpdateItem(ctx context.Context, itemName, oldExpiryDate, newExpiryDate string, quantity int) (*model.InventoryItem, error) {
	stmt := `
		UPDATE inventory_list
		SET quantity = ?, expiry_date = ?
		WHERE item_name = ? AND expiry_date = ?
		RETURNING ` + inventoryColumns

	var updated model.InventoryItem
	err := r.server.DB.GetContext(ctx, &updated, stmt, quantity, newExpiryDate, itemName, oldExpiryDate)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, r.unmatched(ctx, itemName, err)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to update inventory item %q", itemName)
	}

	return &updated, nil
}

// DeleteItem removes the (itemName, expiryDate) row. A miss is reported
// like UpdateItem's.
func (r *InventoryRepository) DeleteItem(ctx context.Context, itemName, expiryDate string) (*model.InventoryItem, error) {
	stmt := `
		DELETE FROM inventory_list
		WHERE item_name = ? AND expiry_date = ?
		RETURNING ` + inventoryColumns

	var deleted model.InventoryItem
	err := r.server.DB.GetContext(ctx, &deleted, stmt, itemName, expiryDate)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, r.unmatched(ctx, itemName, err)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to delete inventory item %q", itemName)
	}

	return &deleted, nil
}

// unmatched resolves a write that matched no row: nil when itemName is
// stored under another expiry date, the wrapped miss otherwise.
func (r *InventoryRepository) unmatched(ctx context.Context, itemName string, miss error) error {
	var exists bool
	stmt := `SELECT EXISTS (SELECT 1 FROM inventory_list WHERE item_name = ?)`
	if err := r.server.DB.GetContext(ctx, &exists, stmt, itemName); err != nil {
		return errors.Wrapf(err, "failed to look up inventory item %q", itemName)
	}

	if exists {
		return nil
	}
	return errors.Wrapf(miss, "inventory item %q", itemName)
}
