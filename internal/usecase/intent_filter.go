package usecase

import (
	"sort"
	"strings"

	"github.com/jeanlozanor/simple-backend/internal/domain"
)

// defaultIntentLimit caps price-intent result sets.
const defaultIntentLimit = 10

// priceIntentTerms signal a bargain-hunting query.
var priceIntentTerms = []string{"barato", "economico", "oferta", "descuento", "rebajado"}

// premiumIntentTerms signal a high-end query.
var premiumIntentTerms = []string{"premium", "caro", "lujo", "top", "mejor"}

type brandKeyword struct {
	keyword string
	brand   string
}

// brandIntentKeywords maps query keywords to the brand they imply. Checked in
// order, after the price intents.
var brandIntentKeywords = []brandKeyword{
	{"apple", "Apple"},
	{"samsung", "Samsung"},
	{"huawei", "Huawei"},
	{"xiaomi", "Xiaomi"},
	{"sony", "Sony"},
}

// IntentFilterConfig holds configuration for the intent filter.
type IntentFilterConfig struct {
	Limit int
}

// IntentFilter reinterprets aggregated results under a detected query intent:
// cheap, premium or brand-specific. At most one intent applies per query,
// first match wins in that order.
type IntentFilter struct {
	limit int
}

// NewIntentFilter creates an intent filter with the given result limit.
func NewIntentFilter(config IntentFilterConfig) *IntentFilter {
	limit := config.Limit
	if limit <= 0 {
		limit = defaultIntentLimit
	}
	return &IntentFilter{limit: limit}
}

// Apply re-filters records according to the intent detected in query.
// Queries without a recognized intent pass through unchanged.
func (f *IntentFilter) Apply(records []domain.ProductRecord, query string) []domain.ProductRecord {
	if len(records) == 0 {
		return records
	}

	normalized := domain.Normalize(query)

	if containsAny(normalized, priceIntentTerms) {
		cheap := make([]domain.ProductRecord, len(records))
		copy(cheap, records)
		sort.SliceStable(cheap, func(i, j int) bool { return cheap[i].Price < cheap[j].Price })
		return Truncate(cheap, f.limit)
	}

	if containsAny(normalized, premiumIntentTerms) {
		mean := meanPrice(records)
		var premium []domain.ProductRecord
		for _, r := range records {
			if r.Price >= mean {
				premium = append(premium, r)
			}
		}
		sort.SliceStable(premium, func(i, j int) bool { return premium[i].Price > premium[j].Price })
		return Truncate(premium, f.limit)
	}

	for _, bk := range brandIntentKeywords {
		if strings.Contains(normalized, bk.keyword) {
			var branded []domain.ProductRecord
			for _, r := range records {
				if r.Brand != "" && strings.Contains(strings.ToLower(r.Brand), strings.ToLower(bk.brand)) {
					branded = append(branded, r)
				}
			}
			return branded
		}
	}

	return records
}

func containsAny(s string, terms []string) bool {
	for _, term := range terms {
		if strings.Contains(s, term) {
			return true
		}
	}
	return false
}

func meanPrice(records []domain.ProductRecord) float64 {
	if len(records) == 0 {
		return 0
	}
	var sum float64
	for _, r := range records {
		sum += r.Price
	}
	return sum / float64(len(records))
}
