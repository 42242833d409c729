package catalog

import (
	"context"
	"strings"
	"sync"

	"github.com/jeanlozanor/simple-backend/internal/domain"
)

// Memory is an in-process CatalogRepository used for development runs and
// tests. It mirrors the Postgres behaviour including the foreign key checks.
type Memory struct {
	mu        sync.RWMutex
	stores    map[int]domain.Store
	products  map[int]domain.Product
	inventory map[int]domain.InventoryItem
	nextStore int
	nextProd  int
	nextItem  int
}

// NewMemory creates an empty in-memory catalog.
func NewMemory() *Memory {
	return &Memory{
		stores:    make(map[int]domain.Store),
		products:  make(map[int]domain.Product),
		inventory: make(map[int]domain.InventoryItem),
	}
}

func (m *Memory) CreateStore(_ context.Context, store *domain.Store) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextStore++
	store.ID = m.nextStore
	if store.City == "" {
		store.City = "Lima"
	}
	m.stores[store.ID] = *store
	return nil
}

func (m *Memory) ListStores(_ context.Context) ([]domain.Store, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	stores := make([]domain.Store, 0, len(m.stores))
	for id := 1; id <= m.nextStore; id++ {
		if s, ok := m.stores[id]; ok {
			stores = append(stores, s)
		}
	}
	return stores, nil
}

func (m *Memory) CreateProduct(_ context.Context, product *domain.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextProd++
	product.ID = m.nextProd
	m.products[product.ID] = *product
	return nil
}

func (m *Memory) ListProducts(_ context.Context) ([]domain.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	products := make([]domain.Product, 0, len(m.products))
	for id := 1; id <= m.nextProd; id++ {
		if p, ok := m.products[id]; ok {
			products = append(products, p)
		}
	}
	return products, nil
}

func (m *Memory) CreateInventoryItem(_ context.Context, item *domain.InventoryItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.stores[item.StoreID]; !ok {
		return domain.ErrStoreNotFound
	}
	if _, ok := m.products[item.ProductID]; !ok {
		return domain.ErrProductNotFound
	}
	if item.Currency == "" {
		item.Currency = "PEN"
	}

	m.nextItem++
	item.ID = m.nextItem
	m.inventory[item.ID] = *item
	return nil
}

func (m *Memory) ListInventoryItems(_ context.Context) ([]domain.InventoryItem, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	items := make([]domain.InventoryItem, 0, len(m.inventory))
	for id := 1; id <= m.nextItem; id++ {
		if it, ok := m.inventory[id]; ok {
			items = append(items, it)
		}
	}
	return items, nil
}

func (m *Memory) SearchInventory(_ context.Context, query string, filters *domain.SearchFilters) ([]domain.CatalogEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	needle := strings.ToLower(query)

	var entries []domain.CatalogEntry
	for id := 1; id <= m.nextItem; id++ {
		item, ok := m.inventory[id]
		if !ok {
			continue
		}
		product := m.products[item.ProductID]
		store := m.stores[item.StoreID]

		if needle != "" {
			haystack := strings.ToLower(product.Name + " " + product.Brand + " " + product.Category)
			if !strings.Contains(haystack, needle) {
				continue
			}
		}
		if !passesCatalogFilters(product, store, item, filters) {
			continue
		}

		entries = append(entries, domain.CatalogEntry{
			Product:  product,
			Store:    store,
			Price:    item.Price,
			Currency: item.Currency,
		})
	}
	return entries, nil
}

func passesCatalogFilters(product domain.Product, store domain.Store, item domain.InventoryItem, filters *domain.SearchFilters) bool {
	if filters == nil {
		return true
	}
	if filters.Category != "" && product.Category != filters.Category {
		return false
	}
	if filters.Brand != "" && product.Brand != filters.Brand {
		return false
	}
	if filters.MaxPrice != nil && item.Price > *filters.MaxPrice {
		return false
	}
	if filters.PaymentMethod != "" {
		found := false
		for _, method := range store.PaymentMethods {
			if strings.EqualFold(method, filters.PaymentMethod) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
