package catalog

import (
	"context"
	"log"

	"github.com/jeanlozanor/simple-backend/internal/domain"
)

var defaultStores = []domain.Store{
	{
		Name:           "Hiraoka Online",
		Code:           "hiraoka",
		City:           "Online",
		Latitude:       -12.06,
		Longitude:      -77.04,
		PaymentMethods: []string{"tarjeta", "efectivo", "yape", "plin"},
	},
	{
		Name:           "Promart Online",
		Code:           "promart",
		City:           "Online",
		Latitude:       -12.06,
		Longitude:      -77.04,
		PaymentMethods: []string{"tarjeta", "efectivo"},
	},
	{
		Name:           "Oechsle Online",
		Code:           "oechsle",
		City:           "Online",
		Latitude:       -12.06,
		Longitude:      -77.04,
		PaymentMethods: []string{"tarjeta", "efectivo"},
	},
	{
		Name:           "PlazaVea Online",
		Code:           "plazavea",
		City:           "Online",
		Latitude:       -12.06,
		Longitude:      -77.04,
		PaymentMethods: []string{"tarjeta", "efectivo"},
	},
}

// SeedDefaultStores inserts the built-in store records on first boot. It is a
// no-op when the repository already holds stores.
func SeedDefaultStores(ctx context.Context, repo domain.CatalogRepository) error {
	stores, err := repo.ListStores(ctx)
	if err != nil {
		return err
	}
	if len(stores) > 0 {
		return nil
	}

	for i := range defaultStores {
		store := defaultStores[i]
		if err := repo.CreateStore(ctx, &store); err != nil {
			return err
		}
	}
	log.Printf("[CATALOG] seeded %d default stores", len(defaultStores))
	return nil
}
