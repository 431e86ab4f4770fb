package service

import (
	"context"
	"database/sql"
	"net/http"
	"testing"
	"time"

	"github.com/deppfellow/pantry/internal/errs"
	"github.com/deppfellow/pantry/internal/metrics"
	"github.com/deppfellow/pantry/internal/model"
	"github.com/deppfellow/pantry/internal/repository"
	"github.com/deppfellow/pantry/internal/server"
	"github.com/deppfellow/pantry/internal/sqlerr"
	"github.com/deppfellow/pantry/internal/validation"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockInventoryRepository struct {
	mock.Mock
}

func (m *mockInventoryRepository) ListItems(ctx context.Context) ([]model.InventoryItem, error) {
	args := m.Called(ctx)
	items, _ := args.Get(0).([]model.InventoryItem)
	return items, args.Error(1)
}

func (m *mockInventoryRepository) CreateItem(ctx context.Context, item model.InventoryItem) (*model.InventoryItem, error) {
	args := m.Called(ctx, item)
	created, _ := args.Get(0).(*model.InventoryItem)
	return created, args.Error(1)
}

func (m *mockInventoryRepository) UpdateItem(ctx context.Context, itemName, oldExpiryDate, newExpiryDate string, quantity int) (*model.InventoryItem, error) {
	args := m.Called(ctx, itemName, oldExpiryDate, newExpiryDate, quantity)
	updated, _ := args.Get(0).(*model.InventoryItem)
	return updated, args.Error(1)
}

func (m *mockInventoryRepository) DeleteItem(ctx context.Context, itemName, expiryDate string) (*model.InventoryItem, error) {
	args := m.Called(ctx, itemName, expiryDate)
	deleted, _ := args.Get(0).(*model.InventoryItem)
	return deleted, args.Error(1)
}

type mockShoppingRepository struct {
	mock.Mock
}

func (m *mockShoppingRepository) ListItems(ctx context.Context) ([]model.ShoppingItem, error) {
	args := m.Called(ctx)
	items, _ := args.Get(0).([]model.ShoppingItem)
	return items, args.Error(1)
}

func (m *mockShoppingRepository) CreateItem(ctx context.Context, itemName string, quantity int) (*model.ShoppingItem, error) {
	args := m.Called(ctx, itemName, quantity)
	created, _ := args.Get(0).(*model.ShoppingItem)
	return created, args.Error(1)
}

func (m *mockShoppingRepository) UpdateItem(ctx context.Context, itemName string, quantity *int, purchased *bool) (*model.ShoppingItem, error) {
	args := m.Called(ctx, itemName, quantity, purchased)
	updated, _ := args.Get(0).(*model.ShoppingItem)
	return updated, args.Error(1)
}

func (m *mockShoppingRepository) DeleteItem(ctx context.Context, itemName string) (*model.ShoppingItem, error) {
	args := m.Called(ctx, itemName)
	deleted, _ := args.Get(0).(*model.ShoppingItem)
	return deleted, args.Error(1)
}

var (
	errUnique = errors.Wrap(&sqlerr.Error{Code: sqlerr.UniqueViolation, TableName: "inventory_list"}, "insert")
	errNoRows = errors.Wrap(sql.ErrNoRows, "update")
)

func requireHTTPError(t *testing.T, err error, status int, message string) {
	t.Helper()

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, status, httpErr.Status)
	assert.Equal(t, message, httpErr.Message)
	assert.True(t, httpErr.Override)
}

func TestInventoryServiceCreateItemStampsEntryDate(t *testing.T) {
	repo := &mockInventoryRepository{}
	m := metrics.New()
	svc := NewInventoryService(&server.Server{Metrics: m}, repo)
	svc.now = func() time.Time { return time.Date(2024, 6, 1, 23, 59, 0, 0, time.UTC) }

	want := model.InventoryItem{
		ItemName:     "rice",
		ItemCategory: "grain",
		Quantity:     5,
		EntryDate:    "2024-06-01",
		ExpiryDate:   "2025-01-01",
	}
	repo.On("CreateItem", mock.Anything, want).Return(&want, nil).Once()

	created, err := svc.CreateItem(context.Background(), &model.CreateInventoryItemPayload{
		ItemName:     "rice",
		Quantity:     validation.NewOptionalInt(5),
		ExpiryDate:   "2025-01-01",
		ItemCategory: "grain",
	})
	require.NoError(t, err)
	assert.Equal(t, want, *created)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ItemChangesTotal.WithLabelValues("inventory", "create")))
	repo.AssertExpectations(t)
}

func TestInventoryServiceErrors(t *testing.T) {
	repo := &mockInventoryRepository{}
	svc := NewInventoryService(&server.Server{}, repo)
	ctx := context.Background()

	repo.On("CreateItem", mock.Anything, mock.Anything).Return(nil, errUnique).Once()
	_, err := svc.CreateItem(ctx, &model.CreateInventoryItemPayload{ItemName: "rice", ExpiryDate: "2025-01-01"})
	requireHTTPError(t, err, http.StatusConflict, "'rice' already exists.")

	repo.On("CreateItem", mock.Anything, mock.Anything).
		Return(nil, errors.Wrap(repository.ErrAlreadyExists, "inventory item")).Once()
	_, err = svc.CreateItem(ctx, &model.CreateInventoryItemPayload{ItemName: "rice", ExpiryDate: "2025-06-01"})
	requireHTTPError(t, err, http.StatusConflict, "'rice' already exists.")

	repo.On("UpdateItem", mock.Anything, "beans", "2025-01-01", "2025-02-01", 2).Return(nil, errNoRows).Once()
	_, err = svc.UpdateItem(ctx, &model.UpdateInventoryItemPayload{
		ItemName:      "beans",
		Quantity:      validation.NewOptionalInt(2),
		NewExpiryDate: "2025-02-01",
		OldExpiryDate: "2025-01-01",
	})
	requireHTTPError(t, err, http.StatusNotFound, "'beans' item not found.")

	repo.On("DeleteItem", mock.Anything, "beans", "2025-01-01").Return(nil, errNoRows).Once()
	_, err = svc.DeleteItem(ctx, &model.DeleteInventoryItemPayload{ItemName: "beans", ExpiryDate: "2025-01-01"})
	requireHTTPError(t, err, http.StatusNotFound, "'beans' item not found.")

	// Unclassified errors pass through untouched.
	boom := errors.New("disk I/O error")
	repo.On("ListItems", mock.Anything).Return(nil, boom).Once()
	_, err = svc.ListItems(ctx)
	assert.Same(t, boom, err)

	repo.AssertExpectations(t)
}

func TestInventoryServiceUnmatchedExpiryIsNotAnError(t *testing.T) {
	repo := &mockInventoryRepository{}
	m := metrics.New()
	svc := NewInventoryService(&server.Server{Metrics: m}, repo)
	ctx := context.Background()

	repo.On("UpdateItem", mock.Anything, "rice", "1999-01-01", "2025-02-01", 2).Return(nil, nil).Once()
	updated, err := svc.UpdateItem(ctx, &model.UpdateInventoryItemPayload{
		ItemName:      "rice",
		Quantity:      validation.NewOptionalInt(2),
		NewExpiryDate: "2025-02-01",
		OldExpiryDate: "1999-01-01",
	})
	require.NoError(t, err)
	assert.Nil(t, updated)

	repo.On("DeleteItem", mock.Anything, "rice", "1999-01-01").Return(nil, nil).Once()
	deleted, err := svc.DeleteItem(ctx, &model.DeleteInventoryItemPayload{ItemName: "rice", ExpiryDate: "1999-01-01"})
	require.NoError(t, err)
	assert.Nil(t, deleted)

	assert.Equal(t, 0.0, testutil.ToFloat64(m.ItemChangesTotal.WithLabelValues("inventory", "update")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.ItemChangesTotal.WithLabelValues("inventory", "delete")))
	repo.AssertExpectations(t)
}

func TestShoppingServiceCreateDefaultsQuantity(t *testing.T) {
	repo := &mockShoppingRepository{}
	svc := NewShoppingService(&server.Server{}, repo)

	item := &model.ShoppingItem{ItemName: "milk"}
	repo.On("CreateItem", mock.Anything, "milk", 0).Return(item, nil).Once()

	created, err := svc.CreateItem(context.Background(), &model.CreateShoppingItemPayload{ItemName: "milk"})
	require.NoError(t, err)
	assert.Same(t, item, created)
	repo.AssertExpectations(t)
}

func TestShoppingServiceUpdatePassesOnlySetFields(t *testing.T) {
	repo := &mockShoppingRepository{}
	svc := NewShoppingService(&server.Server{}, repo)

	item := &model.ShoppingItem{ItemName: "milk", Quantity: 2, Purchased: true}
	repo.On("UpdateItem", mock.Anything, "milk", (*int)(nil), mock.MatchedBy(func(p *bool) bool {
		return p != nil && *p
	})).Return(item, nil).Once()

	updated, err := svc.UpdateItem(context.Background(), &model.UpdateShoppingItemPayload{
		ItemName:  "milk",
		Purchased: validation.NewOptionalBool(true),
	})
	require.NoError(t, err)
	assert.Same(t, item, updated)
	repo.AssertExpectations(t)
}

func TestShoppingServiceErrors(t *testing.T) {
	repo := &mockShoppingRepository{}
	svc := NewShoppingService(&server.Server{}, repo)
	ctx := context.Background()

	repo.On("CreateItem", mock.Anything, "milk", 1).Return(nil, errUnique).Once()
	_, err := svc.CreateItem(ctx, &model.CreateShoppingItemPayload{ItemName: "milk", Quantity: validation.NewOptionalInt(1)})
	requireHTTPError(t, err, http.StatusConflict, "'milk' already exists.")

	repo.On("UpdateItem", mock.Anything, "bread", (*int)(nil), (*bool)(nil)).Return(nil, errNoRows).Once()
	_, err = svc.UpdateItem(ctx, &model.UpdateShoppingItemPayload{ItemName: "bread"})
	requireHTTPError(t, err, http.StatusNotFound, "'bread' item not found.")

	repo.On("DeleteItem", mock.Anything, "bread").Return(nil, errNoRows).Once()
	_, err = svc.DeleteItem(ctx, &model.DeleteShoppingItemPayload{ItemName: "bread"})
	requireHTTPError(t, err, http.StatusNotFound, "'bread' item not found.")

	repo.AssertExpectations(t)
}
