package domain

import "context"

// Connector fetches live results from one retail source. Implementations
// apply the exact-word strict match filter and the simple price/brand filters
// before returning, skip malformed items, and return an empty slice plus an
// error describing the cause on total source failure.
type Connector interface {
	// Name is the stable registry key, e.g. "hiraoka".
	Name() string
	// StoreName is the human-readable store label carried on records.
	StoreName() string
	Fetch(ctx context.Context, query string, location *GeoPoint, filters *SearchFilters) ([]ProductRecord, error)
}

// CatalogRepository persists stores, products and inventory items and serves
// the catalog-backed search.
type CatalogRepository interface {
	CreateStore(ctx context.Context, store *Store) error
	ListStores(ctx context.Context) ([]Store, error)
	CreateProduct(ctx context.Context, product *Product) error
	ListProducts(ctx context.Context) ([]Product, error)
	CreateInventoryItem(ctx context.Context, item *InventoryItem) error
	ListInventoryItems(ctx context.Context) ([]InventoryItem, error)
	// SearchInventory returns inventory rows joined with product and store,
	// filtered by a case-insensitive name/brand/category pattern and the
	// optional SearchFilters constraints.
	SearchInventory(ctx context.Context, query string, filters *SearchFilters) ([]CatalogEntry, error)
}
