package repository

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/deppfellow/pantry/internal/config"
	"github.com/deppfellow/pantry/internal/database"
	"github.com/deppfellow/pantry/internal/model"
	"github.com/deppfellow/pantry/internal/server"
	"github.com/deppfellow/pantry/internal/sqlerr"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *server.Server {
	t.Helper()

	cfg := &config.Config{
		Primary: config.Primary{Env: "development"},
		Database: config.DatabaseConfig{
			Path:         filepath.Join(t.TempDir(), "pantry.db"),
			MaxOpenConns: 1,
			BusyTimeout:  1000,
		},
		Observability: config.DefaultObservabilityConfig(),
	}

	logger := zerolog.Nop()
	s, err := server.New(cfg, &logger, nil)
	require.NoError(t, err)
	t.Cleanup(func() { s.DB.Close() })

	require.NoError(t, database.Migrate(context.Background(), &logger, s.DB))
	return s
}

func rice(expiry string) model.InventoryItem {
	return model.InventoryItem{
		ItemName:     "rice",
		ItemCategory: "grain",
		Quantity:     5,
		EntryDate:    "2024-06-01",
		ExpiryDate:   expiry,
	}
}

func TestInventoryRepositoryCRUD(t *testing.T) {
	repo := NewRepositories(newTestServer(t)).Inventory
	ctx := context.Background()

	items, err := repo.ListItems(ctx)
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)

	created, err := repo.CreateItem(ctx, rice("2025-01-01"))
	require.NoError(t, err)
	assert.Equal(t, rice("2025-01-01"), *created)

	beans := rice("2025-06-01")
	beans.ItemName = "beans"
	_, err = repo.CreateItem(ctx, beans)
	require.NoError(t, err)

	updated, err := repo.UpdateItem(ctx, "rice", "2025-01-01", "2025-02-01", 3)
	require.NoError(t, err)
	assert.Equal(t, 3, updated.Quantity)
	assert.Equal(t, "2025-02-01", updated.ExpiryDate)
	assert.Equal(t, "2024-06-01", updated.EntryDate)

	items, err = repo.ListItems(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "beans", items[0].ItemName)
	assert.Equal(t, "2025-02-01", items[1].ExpiryDate)

	deleted, err := repo.DeleteItem(ctx, "beans", "2025-06-01")
	require.NoError(t, err)
	assert.Equal(t, 5, deleted.Quantity)

	items, err = repo.ListItems(ctx)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestInventoryRepositoryCreateRejectsTakenName(t *testing.T) {
	repo := NewInventoryRepository(newTestServer(t))
	ctx := context.Background()

	_, err := repo.CreateItem(ctx, rice("2025-01-01"))
	require.NoError(t, err)

	for _, expiry := range []string{"2025-01-01", "2025-06-01"} {
		_, err = repo.CreateItem(ctx, rice(expiry))
		require.Error(t, err, expiry)
		assert.True(t, errors.Is(err, ErrAlreadyExists), expiry)
	}

	items, err := repo.ListItems(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "2025-01-01", items[0].ExpiryDate)
}

func TestInventoryRepositoryUnmatchedExpiry(t *testing.T) {
	repo := NewInventoryRepository(newTestServer(t))
	ctx := context.Background()

	_, err := repo.CreateItem(ctx, rice("2025-01-01"))
	require.NoError(t, err)

	// Name stored under another expiry date: no error, nothing changed.
	updated, err := repo.UpdateItem(ctx, "rice", "1999-01-01", "2025-02-01", 1)
	require.NoError(t, err)
	assert.Nil(t, updated)

	deleted, err := repo.DeleteItem(ctx, "rice", "1999-01-01")
	require.NoError(t, err)
	assert.Nil(t, deleted)

	items, err := repo.ListItems(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, rice("2025-01-01"), items[0])

	// Name not stored at all.
	_, err = repo.UpdateItem(ctx, "beans", "2025-01-01", "2025-02-01", 1)
	assert.True(t, errors.Is(err, sql.ErrNoRows))

	_, err = repo.DeleteItem(ctx, "beans", "2025-01-01")
	assert.True(t, errors.Is(err, sql.ErrNoRows))
}

func TestInventoryPrimaryKeyBackstop(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	// Rows written around CreateItem still hit the (item_name, expiry_date) key.
	insert := `INSERT INTO inventory_list (item_name, item_category, quantity, entry_date, expiry_date)
		VALUES ('rice', 'grain', 1, '2024-06-01', '2025-01-01')`
	_, err := s.DB.ExecContext(ctx, insert)
	require.NoError(t, err)

	_, err = s.DB.ExecContext(ctx, insert)
	assert.True(t, sqlerr.IsUniqueViolation(err))
}

func TestShoppingRepositoryCRUD(t *testing.T) {
	repo := NewShoppingRepository(newTestServer(t))
	ctx := context.Background()

	created, err := repo.CreateItem(ctx, "milk", 2)
	require.NoError(t, err)
	assert.Equal(t, model.ShoppingItem{ItemName: "milk", Quantity: 2, Purchased: false}, *created)

	_, err = repo.CreateItem(ctx, "milk", 1)
	assert.True(t, sqlerr.IsUniqueViolation(err))

	purchased := true
	updated, err := repo.UpdateItem(ctx, "milk", nil, &purchased)
	require.NoError(t, err)
	assert.Equal(t, model.ShoppingItem{ItemName: "milk", Quantity: 2, Purchased: true}, *updated)

	quantity := 0
	updated, err = repo.UpdateItem(ctx, "milk", &quantity, nil)
	require.NoError(t, err)
	assert.Equal(t, model.ShoppingItem{ItemName: "milk", Quantity: 0, Purchased: true}, *updated)

	unchanged, err := repo.UpdateItem(ctx, "milk", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, *updated, *unchanged)

	_, err = repo.UpdateItem(ctx, "bread", nil, nil)
	assert.True(t, errors.Is(err, sql.ErrNoRows))

	items, err := repo.ListItems(ctx)
	require.NoError(t, err)
	assert.Len(t, items, 1)

	deleted, err := repo.DeleteItem(ctx, "milk")
	require.NoError(t, err)
	assert.Equal(t, "milk", deleted.ItemName)

	_, err = repo.DeleteItem(ctx, "milk")
	assert.True(t, errors.Is(err, sql.ErrNoRows))
}
