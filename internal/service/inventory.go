package service

import (
	"context"
	"time"

	"github.com/deppfellow/pantry/internal/metrics"
	"github.com/deppfellow/pantry/internal/model"
	"github.com/deppfellow/pantry/internal/server"
	"github.com/deppfellow/pantry/internal/validation"
	"github.com/rs/zerolog"
)

// InventoryRepository is the data access InventoryService needs.
type InventoryRepository interface {
	ListItems(ctx context.Context) ([]model.InventoryItem, error)
	CreateItem(ctx context.Context, item model.InventoryItem) (*model.InventoryItem, error)
	UpdateItem(ctx context.Context, itemName, oldExpiryDate, newExpiryDate string, quantity int) (*model.InventoryItem, error)
	DeleteItem(ctx context.Context, itemName, expiryDate string) (*model.InventoryItem, error)
}

type InventoryService struct {
	repo    InventoryRepository
	metrics *metrics.Metrics

	// now stamps entry dates.
	now func() time.Time
}

func NewInventoryService(s *server.Server, repo InventoryRepository) *InventoryService {
	return &InventoryService{
		repo:    repo,
		metrics: s.Metrics,
		now:     time.Now,
	}
}

func (s *InventoryService) ListItems(ctx context.Context) ([]model.InventoryItem, error) {
	return s.repo.ListItems(ctx)
}

// CreateItem stores a new inventory row stamped with today's entry date.
// An existing (itemName, expiryDate) row yields a 409.
func (s *InventoryService) CreateItem(ctx context.Context, payload *model.CreateInventoryItemPayload) (*model.InventoryItem, error) {
	item := model.InventoryItem{
		ItemName:     payload.ItemName,
		ItemCategory: payload.ItemCategory,
		Quantity:     payload.Quantity.Value,
		EntryDate:    s.now().Format(validation.DateLayout),
		ExpiryDate:   payload.ExpiryDate,
	}

	created, err := s.repo.CreateItem(ctx, item)
	if err != nil {
		return nil, classify(err, payload.ItemName)
	}

	s.metrics.RecordItemChange(listInventory, operationCreate)
	zerolog.Ctx(ctx).Info().
		Str("item_name", created.ItemName).
		Str("expiry_date", created.ExpiryDate).
		Msg("inventory item created")

	return created, nil
}

// UpdateItem returns a nil item when the name is stored but not under
// OldExpiryDate; nothing is changed then.
func (s *InventoryService) UpdateItem(ctx context.Context, payload *model.UpdateInventoryItemPayload) (*model.InventoryItem, error) {
	updated, err := s.repo.UpdateItem(ctx,
		payload.ItemName,
		payload.OldExpiryDate,
		payload.NewExpiryDate,
		payload.Quantity.Value,
	)
	if err != nil {
		return nil, classify(err, payload.ItemName)
	}
	if updated == nil {
		zerolog.Ctx(ctx).Debug().
			Str("item_name", payload.ItemName).
			Str("old_expiry_date", payload.OldExpiryDate).
			Msg("no inventory row with that expiry date, nothing updated")
		return nil, nil
	}

	s.metrics.RecordItemChange(listInventory, operationUpdate)
	zerolog.Ctx(ctx).Info().
		Str("item_name", updated.ItemName).
		Str("old_expiry_date", payload.OldExpiryDate).
		Str("expiry_date", updated.ExpiryDate).
		Msg("inventory item updated")

	return updated, nil
}

// DeleteItem returns a nil item when the name is stored but not under
// ExpiryDate; nothing is deleted then.
func (s *InventoryService) DeleteItem(ctx context.Context, payload *model.DeleteInventoryItemPayload) (*model.InventoryItem, error) {
	deleted, err := s.repo.DeleteItem(ctx, payload.ItemName, payload.ExpiryDate)
	if err != nil {
		return nil, classify(err, payload.ItemName)
	}
	if deleted == nil {
		zerolog.Ctx(ctx).Debug().
			Str("item_name", payload.ItemName).
			Str("expiry_date", payload.ExpiryDate).
			Msg("no inventory row with that expiry date, nothing deleted")
		return nil, nil
	}

	s.metrics.RecordItemChange(listInventory, operationDelete)
	zerolog.Ctx(ctx).Info().
		Str("item_name", deleted.ItemName).
		Str("expiry_date", deleted.ExpiryDate).
		Msg("inventory item deleted")

	return deleted, nil
}
