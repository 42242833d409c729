package connector

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeanlozanor/simple-backend/internal/domain"
)

func TestParseSolesPrice(t *testing.T) {
	tests := []struct {
		text string
		want float64
	}{
		{"S/ 2,499", 2499},
		{"S/. 1,299.90", 1299.90},
		{"s/ 59.50", 59.50},
		{" 3499 ", 3499},
		{"S/ 1 299.90", 1299.90},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, err := parseSolesPrice(tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("rejects non-numeric text", func(t *testing.T) {
		_, err := parseSolesPrice("Agotado")
		assert.Error(t, err)
	})
}

func TestPassesFilters(t *testing.T) {
	record := domain.ProductRecord{Name: "Galaxy S24", Brand: "Samsung", Price: 3000}

	assert.True(t, passesFilters(record, nil))

	max := 2500.0
	assert.False(t, passesFilters(record, &domain.SearchFilters{MaxPrice: &max}))

	max = 3500.0
	assert.True(t, passesFilters(record, &domain.SearchFilters{MaxPrice: &max}))

	assert.True(t, passesFilters(record, &domain.SearchFilters{Brand: "samsung"}))
	assert.False(t, passesFilters(record, &domain.SearchFilters{Brand: "Apple"}))

	noBrand := domain.ProductRecord{Name: "Genérico", Price: 100}
	assert.False(t, passesFilters(noBrand, &domain.SearchFilters{Brand: "Samsung"}))
}

func TestAbsoluteURL(t *testing.T) {
	assert.Equal(t, "https://tienda.pe/p/1", absoluteURL("https://tienda.pe", "/p/1"))
	assert.Equal(t, "https://otra.pe/p/2", absoluteURL("https://tienda.pe", "https://otra.pe/p/2"))
	assert.Equal(t, "", absoluteURL("https://tienda.pe", "  "))
}

func TestSortRecords(t *testing.T) {
	t.Run("without location sorts by price", func(t *testing.T) {
		records := []domain.ProductRecord{
			{Name: "B", Price: 200},
			{Name: "A", Price: 100},
		}
		sortRecords(records, false)
		assert.Equal(t, "A", records[0].Name)
	})

	t.Run("with location sorts by distance then price", func(t *testing.T) {
		near, far := 1.0, 5.0
		records := []domain.ProductRecord{
			{Name: "Far", Price: 10, DistanceKm: &far},
			{Name: "NearExpensive", Price: 300, DistanceKm: &near},
			{Name: "NearCheap", Price: 100, DistanceKm: &near},
		}
		sortRecords(records, true)
		assert.Equal(t, "NearCheap", records[0].Name)
		assert.Equal(t, "NearExpensive", records[1].Name)
		assert.Equal(t, "Far", records[2].Name)
	})
}
