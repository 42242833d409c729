package usecase

import (
	"fmt"
	"testing"

	"github.com/jeanlozanor/simple-backend/internal/domain"
)

func TestBuildComparison(t *testing.T) {
	t.Run("derives cheapest most expensive and savings", func(t *testing.T) {
		records := []domain.ProductRecord{
			record("Galaxy S24", "Samsung", "Tienda A", 100),
			record("Galaxy S24", "Samsung", "Tienda B", 150),
			record("Galaxy S24", "Samsung", "Tienda C", 200),
		}

		cmp, ok := BuildComparison(records, "Galaxy S24")
		if !ok {
			t.Fatal("BuildComparison returned ok=false")
		}
		if cmp.Cheapest.StoreName != "Tienda A" {
			t.Errorf("Cheapest = %s, want Tienda A", cmp.Cheapest.StoreName)
		}
		if cmp.MostExpensive.StoreName != "Tienda C" {
			t.Errorf("MostExpensive = %s, want Tienda C", cmp.MostExpensive.StoreName)
		}
		if cmp.PriceDifference != 100 {
			t.Errorf("PriceDifference = %v, want 100", cmp.PriceDifference)
		}
		if cmp.AveragePrice != 150 {
			t.Errorf("AveragePrice = %v, want 150", cmp.AveragePrice)
		}
		if cmp.SavingsPercentage != 50 {
			t.Errorf("SavingsPercentage = %v, want 50", cmp.SavingsPercentage)
		}
	})

	t.Run("requires two distinct stores", func(t *testing.T) {
		records := []domain.ProductRecord{
			record("Galaxy S24", "Samsung", "Tienda A", 100),
			record("Galaxy S24", "Samsung", "Tienda A", 150),
		}
		if _, ok := BuildComparison(records, "Galaxy S24"); ok {
			t.Error("expected ok=false for a single store")
		}
	})

	t.Run("single record is not comparable", func(t *testing.T) {
		records := []domain.ProductRecord{
			record("Galaxy S24", "Samsung", "Tienda A", 100),
		}
		if _, ok := BuildComparison(records, "Galaxy S24"); ok {
			t.Error("expected ok=false for one record")
		}
	})
}

func TestBuildStatistics(t *testing.T) {
	t.Run("odd count median is the middle price", func(t *testing.T) {
		records := []domain.ProductRecord{
			record("TV 55", "LG", "A", 10),
			record("TV 55", "LG", "B", 25),
			record("TV 55", "LG", "C", 40),
		}

		stats, ok := BuildStatistics(records, "TV 55")
		if !ok {
			t.Fatal("BuildStatistics returned ok=false")
		}
		if stats.MedianPrice != 25 {
			t.Errorf("MedianPrice = %v, want 25", stats.MedianPrice)
		}
		if stats.MinPrice != 10 || stats.MaxPrice != 40 {
			t.Errorf("Min/Max = %v/%v, want 10/40", stats.MinPrice, stats.MaxPrice)
		}
		if stats.AveragePrice != 25 {
			t.Errorf("AveragePrice = %v, want 25", stats.AveragePrice)
		}
	})

	t.Run("even count median averages the middle pair", func(t *testing.T) {
		records := []domain.ProductRecord{
			record("TV 55", "LG", "A", 10),
			record("TV 55", "LG", "B", 15),
			record("TV 55", "LG", "C", 25),
			record("TV 55", "LG", "D", 50),
		}

		stats, ok := BuildStatistics(records, "TV 55")
		if !ok {
			t.Fatal("BuildStatistics returned ok=false")
		}
		if stats.MedianPrice != 20 {
			t.Errorf("MedianPrice = %v, want 20", stats.MedianPrice)
		}
		if stats.Count != 4 {
			t.Errorf("Count = %v, want 4", stats.Count)
		}
	})

	t.Run("records per store land in the stores map", func(t *testing.T) {
		records := []domain.ProductRecord{
			record("TV 55", "LG", "A", 10),
			record("TV 55", "LG", "B", 20),
		}

		stats, _ := BuildStatistics(records, "TV 55")
		if stats.Stores["A"] != 10 || stats.Stores["B"] != 20 {
			t.Errorf("Stores map = %v", stats.Stores)
		}
	})

	t.Run("no match yields ok=false", func(t *testing.T) {
		if _, ok := BuildStatistics(nil, "TV 55"); ok {
			t.Error("expected ok=false for no records")
		}
	})
}

func TestComparisons(t *testing.T) {
	t.Run("sorted by savings descending and capped", func(t *testing.T) {
		var records []domain.ProductRecord
		// product i saves i*5 percent; 12 comparable groups, expect top 10
		for i := 1; i <= 12; i++ {
			name := fmt.Sprintf("Producto %d", i)
			records = append(records,
				record(name, "", "Tienda A", 100),
				record(name, "", "Tienda B", 100/(1-float64(i)*0.05)),
			)
		}

		comparisons := Comparisons(records)
		if len(comparisons) != 10 {
			t.Fatalf("Comparisons returned %d groups, want 10", len(comparisons))
		}
		for i := 1; i < len(comparisons); i++ {
			if comparisons[i-1].SavingsPercentage < comparisons[i].SavingsPercentage {
				t.Fatalf("not savings-descending at %d", i)
			}
		}
	})

	t.Run("single-store groups are excluded", func(t *testing.T) {
		records := []domain.ProductRecord{
			record("Solo", "", "Tienda A", 100),
			record("Solo", "", "Tienda A", 120),
		}
		if comparisons := Comparisons(records); len(comparisons) != 0 {
			t.Errorf("Comparisons returned %d groups, want 0", len(comparisons))
		}
	})
}

func TestStatistics(t *testing.T) {
	t.Run("multi-store groups sorted by count", func(t *testing.T) {
		records := []domain.ProductRecord{
			record("Muy Vendido", "", "A", 10),
			record("Muy Vendido", "", "B", 12),
			record("Muy Vendido", "", "C", 14),
			record("Menos Vendido", "", "A", 20),
			record("Menos Vendido", "", "B", 22),
			record("Solo Uno", "", "A", 30),
		}

		stats := Statistics(records)
		if len(stats) != 2 {
			t.Fatalf("Statistics returned %d groups, want 2", len(stats))
		}
		if stats[0].Count != 3 || stats[1].Count != 2 {
			t.Errorf("counts = %d, %d, want 3, 2", stats[0].Count, stats[1].Count)
		}
	})
}
