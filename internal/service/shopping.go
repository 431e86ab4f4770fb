package service

import (
	"context"

	"github.com/deppfellow/pantry/internal/metrics"
	"github.com/deppfellow/pantry/internal/model"
	"github.com/deppfellow/pantry/internal/server"
	"github.com/rs/zerolog"
)

// ShoppingRepository is the data access ShoppingService needs.
type ShoppingRepository interface {
	ListItems(ctx context.Context) ([]model.ShoppingItem, error)
	CreateItem(ctx context.Context, itemName string, quantity int) (*model.ShoppingItem, error)
	UpdateItem(ctx context.Context, itemName string, quantity *int, purchased *bool) (*model.ShoppingItem, error)
	DeleteItem(ctx context.Context, itemName string) (*model.ShoppingItem, error)
}

type ShoppingService struct {
	repo    ShoppingRepository
	metrics *metrics.Metrics
}

func NewShoppingService(s *server.Server, repo ShoppingRepository) *ShoppingService {
	return &ShoppingService{
		repo:    repo,
		metrics: s.Metrics,
	}
}

func (s *ShoppingService) ListItems(ctx context.Context) ([]model.ShoppingItem, error) {
	return s.repo.ListItems(ctx)
}

// CreateItem adds an unpurchased item; an absent quantity is stored as 0.
func (s *ShoppingService) CreateItem(ctx context.Context, payload *model.CreateShoppingItemPayload) (*model.ShoppingItem, error) {
	created, err := s.repo.CreateItem(ctx, payload.ItemName, payload.Quantity.Value)
	if err != nil {
		return nil, classify(err, payload.ItemName)
	}

	s.metrics.RecordItemChange(listShopping, operationCreate)
	zerolog.Ctx(ctx).Info().Str("item_name", created.ItemName).Msg("shopping item created")

	return created, nil
}

// UpdateItem changes only the fields present in payload.
func (s *ShoppingService) UpdateItem(ctx context.Context, payload *model.UpdateShoppingItemPayload) (*model.ShoppingItem, error) {
	updated, err := s.repo.UpdateItem(ctx, payload.ItemName, payload.Quantity.Ptr(), payload.Purchased.Ptr())
	if err != nil {
		return nil, classify(err, payload.ItemName)
	}

	s.metrics.RecordItemChange(listShopping, operationUpdate)
	zerolog.Ctx(ctx).Info().
		Str("item_name", updated.ItemName).
		Bool("quantity_set", payload.Quantity.Set).
		Bool("purchased_set", payload.Purchased.Set).
		Msg("shopping item updated")

	return updated, nil
}

func (s *ShoppingService) DeleteItem(ctx context.Context, payload *model.DeleteShoppingItemPayload) (*model.ShoppingItem, error) {
	deleted, err := s.repo.DeleteItem(ctx, payload.ItemName)
	if err != nil {
		return nil, classify(err, payload.ItemName)
	}

	s.metrics.RecordItemChange(listShopping, operationDelete)
	zerolog.Ctx(ctx).Info().Str("item_name", deleted.ItemName).Msg("shopping item deleted")

	return deleted, nil
}
