package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeanlozanor/simple-backend/internal/domain"
)

func seedMemory(t *testing.T) *Memory {
	t.Helper()
	ctx := context.Background()
	repo := NewMemory()

	require.NoError(t, SeedDefaultStores(ctx, repo))

	tv := &domain.Product{Name: "Televisor LG 55", Brand: "LG", Category: "tv"}
	phone := &domain.Product{Name: "Samsung Galaxy S24", Brand: "Samsung", Category: "celulares"}
	require.NoError(t, repo.CreateProduct(ctx, tv))
	require.NoError(t, repo.CreateProduct(ctx, phone))

	require.NoError(t, repo.CreateInventoryItem(ctx, &domain.InventoryItem{
		StoreID: 1, ProductID: tv.ID, Price: 1999.90,
	}))
	require.NoError(t, repo.CreateInventoryItem(ctx, &domain.InventoryItem{
		StoreID: 2, ProductID: phone.ID, Price: 3499.00,
	}))
	return repo
}

func TestSeedDefaultStoresIsIdempotent(t *testing.T) {
	ctx := context.Background()
	repo := NewMemory()

	require.NoError(t, SeedDefaultStores(ctx, repo))
	require.NoError(t, SeedDefaultStores(ctx, repo))

	stores, err := repo.ListStores(ctx)
	require.NoError(t, err)
	assert.Len(t, stores, 4)
	assert.Equal(t, "hiraoka", stores[0].Code)
}

func TestCreateInventoryItemChecksReferences(t *testing.T) {
	ctx := context.Background()
	repo := NewMemory()

	err := repo.CreateInventoryItem(ctx, &domain.InventoryItem{StoreID: 99, ProductID: 1, Price: 10})
	assert.ErrorIs(t, err, domain.ErrStoreNotFound)

	store := &domain.Store{Name: "Tienda", Code: "tienda", Latitude: -12, Longitude: -77}
	require.NoError(t, repo.CreateStore(ctx, store))

	err = repo.CreateInventoryItem(ctx, &domain.InventoryItem{StoreID: store.ID, ProductID: 99, Price: 10})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestCreateInventoryItemDefaultsCurrency(t *testing.T) {
	ctx := context.Background()
	repo := seedMemory(t)

	items, err := repo.ListInventoryItems(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "PEN", items[0].Currency)
}

func TestSearchInventoryMatchesNameBrandCategory(t *testing.T) {
	ctx := context.Background()
	repo := seedMemory(t)

	for _, query := range []string{"televisor", "LG", "tv"} {
		entries, err := repo.SearchInventory(ctx, query, nil)
		require.NoError(t, err)
		require.Len(t, entries, 1, "query %q", query)
		assert.Equal(t, "Televisor LG 55", entries[0].Product.Name)
	}

	entries, err := repo.SearchInventory(ctx, "", nil)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestSearchInventoryAppliesFilters(t *testing.T) {
	ctx := context.Background()
	repo := seedMemory(t)

	maxPrice := 2500.0
	entries, err := repo.SearchInventory(ctx, "", &domain.SearchFilters{MaxPrice: &maxPrice})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Televisor LG 55", entries[0].Product.Name)

	entries, err = repo.SearchInventory(ctx, "", &domain.SearchFilters{Brand: "Samsung"})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Samsung Galaxy S24", entries[0].Product.Name)

	entries, err = repo.SearchInventory(ctx, "", &domain.SearchFilters{PaymentMethod: "yape"})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Hiraoka Online", entries[0].Store.Name)
}
