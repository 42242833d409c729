package usecase

import (
	"math"
	"sort"

	"github.com/jeanlozanor/simple-backend/internal/domain"
)

// derivedTopN caps the comparison and statistics lists.
const derivedTopN = 10

// GroupByProduct buckets records by normalized product name. Groups are
// ephemeral, computed per request and discarded with the response.
func GroupByProduct(records []domain.ProductRecord) map[string][]domain.ProductRecord {
	groups := make(map[string][]domain.ProductRecord)
	for _, r := range records {
		key := domain.Normalize(r.Name)
		groups[key] = append(groups[key], r)
	}
	return groups
}

// matchingRecords keeps records whose normalized name, or name+brand, equals
// the normalized product name.
func matchingRecords(records []domain.ProductRecord, productName string) []domain.ProductRecord {
	target := domain.Normalize(productName)
	var matched []domain.ProductRecord
	for _, r := range records {
		if domain.Normalize(r.Name) == target || r.NameBrandKey() == target {
			matched = append(matched, r)
		}
	}
	return matched
}

func distinctStores(records []domain.ProductRecord) int {
	stores := make(map[string]bool)
	for _, r := range records {
		stores[r.StoreName] = true
	}
	return len(stores)
}

// BuildComparison derives a cross-store price comparison for one product.
// It requires records from at least two distinct stores; otherwise ok is false.
func BuildComparison(records []domain.ProductRecord, productName string) (domain.PriceComparison, bool) {
	matched := matchingRecords(records, productName)
	if len(matched) < 2 || distinctStores(matched) < 2 {
		return domain.PriceComparison{}, false
	}

	cheapest := matched[0]
	mostExpensive := matched[0]
	var sum float64
	for _, r := range matched {
		sum += r.Price
		if r.Price < cheapest.Price {
			cheapest = r
		}
		if r.Price > mostExpensive.Price {
			mostExpensive = r
		}
	}

	difference := mostExpensive.Price - cheapest.Price
	savings := 0.0
	if mostExpensive.Price > 0 {
		savings = difference / mostExpensive.Price * 100
	}

	return domain.PriceComparison{
		ProductName:       productName,
		Brand:             matched[0].Brand,
		Stores:            matched,
		Cheapest:          cheapest,
		MostExpensive:     mostExpensive,
		PriceDifference:   difference,
		AveragePrice:      sum / float64(len(matched)),
		SavingsPercentage: round2(savings),
	}, true
}

// BuildStatistics derives descriptive price statistics for one product.
// A single matching record is enough; ok is false only when nothing matches.
func BuildStatistics(records []domain.ProductRecord, productName string) (domain.PriceStatistics, bool) {
	matched := matchingRecords(records, productName)
	if len(matched) == 0 {
		return domain.PriceStatistics{}, false
	}

	prices := make([]float64, len(matched))
	for i, r := range matched {
		prices[i] = r.Price
	}
	sort.Float64s(prices)

	count := len(prices)
	var sum float64
	for _, p := range prices {
		sum += p
	}

	var median float64
	if count%2 == 1 {
		median = prices[count/2]
	} else {
		median = (prices[count/2-1] + prices[count/2]) / 2
	}

	stores := make(map[string]float64, len(matched))
	for _, r := range matched {
		stores[r.StoreName] = r.Price
	}

	return domain.PriceStatistics{
		ProductName:  productName,
		Count:        count,
		MinPrice:     prices[0],
		MaxPrice:     prices[count-1],
		AveragePrice: round2(sum / float64(count)),
		MedianPrice:  round2(median),
		Stores:       stores,
	}, true
}

// Comparisons builds a comparison per multi-store product group, sorted
// descending by savings percentage and capped at the top 10.
func Comparisons(records []domain.ProductRecord) []domain.PriceComparison {
	var comparisons []domain.PriceComparison
	for name, group := range GroupByProduct(records) {
		if comparison, ok := BuildComparison(group, name); ok {
			comparisons = append(comparisons, comparison)
		}
	}

	sort.SliceStable(comparisons, func(i, j int) bool {
		if comparisons[i].SavingsPercentage != comparisons[j].SavingsPercentage {
			return comparisons[i].SavingsPercentage > comparisons[j].SavingsPercentage
		}
		return comparisons[i].ProductName < comparisons[j].ProductName
	})

	if len(comparisons) > derivedTopN {
		comparisons = comparisons[:derivedTopN]
	}
	return comparisons
}

// Statistics builds statistics per multi-store product group, sorted
// descending by record count and capped at the top 10.
func Statistics(records []domain.ProductRecord) []domain.PriceStatistics {
	var stats []domain.PriceStatistics
	for name, group := range GroupByProduct(records) {
		if distinctStores(group) < 2 {
			continue
		}
		if s, ok := BuildStatistics(group, name); ok {
			stats = append(stats, s)
		}
	}

	sort.SliceStable(stats, func(i, j int) bool {
		if stats[i].Count != stats[j].Count {
			return stats[i].Count > stats[j].Count
		}
		return stats[i].ProductName < stats[j].ProductName
	})

	if len(stats) > derivedTopN {
		stats = stats[:derivedTopN]
	}
	return stats
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
