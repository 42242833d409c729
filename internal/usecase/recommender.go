package usecase

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jeanlozanor/simple-backend/internal/domain"
)

// Scoring adjustments. Every record starts at 100; the final score is capped
// at 100 but has no floor.
const (
	goodPriceBonus        = 20.0 // price below 0.8x the mean of the input set
	elevatedPricePenalty  = 15.0 // price above 1.2x the mean
	trustedStoreBonus     = 15.0 // store on the trusted allow-list
	maxScore              = 100.0
	defaultRecommendLimit = 10
)

// defaultTrustedStores earn the relevance bonus unless a list is injected.
var defaultTrustedStores = []string{"Hiraoka Online", "Falabella Online"}

// defaultReason labels records that earned no bonus and no penalty.
const defaultReason = "Producto relevante"

// RecommenderConfig holds configuration for the recommender.
type RecommenderConfig struct {
	TrustedStores []string
	Limit         int
}

// Recommender scores ranked records for relevance and value. It assumes the
// caller already ranked and truncated its input and only looks at the first
// few records; earlier positions earn a positional bonus.
type Recommender struct {
	trustedStores map[string]bool
	limit         int
}

// NewRecommender creates a recommender, falling back to the built-in trusted
// store list and limit when the config leaves them unset.
func NewRecommender(config RecommenderConfig) *Recommender {
	stores := config.TrustedStores
	if len(stores) == 0 {
		stores = defaultTrustedStores
	}
	trusted := make(map[string]bool, len(stores))
	for _, s := range stores {
		trusted[s] = true
	}

	limit := config.Limit
	if limit <= 0 {
		limit = defaultRecommendLimit
	}

	return &Recommender{trustedStores: trusted, limit: limit}
}

// Recommend scores at most the first limit records and returns them sorted
// descending by score. Price adjustments compare against the mean price of
// ALL input records, not just the scored ones.
func (r *Recommender) Recommend(records []domain.ProductRecord) []domain.Recommendation {
	if len(records) == 0 {
		return nil
	}

	mean := meanPrice(records)

	limit := r.limit
	if limit > len(records) {
		limit = len(records)
	}

	recommendations := make([]domain.Recommendation, 0, limit)
	for idx, record := range records[:limit] {
		score := 100.0
		var reasons []string

		if record.Price < mean*0.8 {
			score += goodPriceBonus
			reasons = append(reasons, "Muy buen precio")
		} else if record.Price > mean*1.2 {
			score -= elevatedPricePenalty
			reasons = append(reasons, "Precio elevado")
		}

		if r.trustedStores[record.StoreName] {
			score += trustedStoreBonus
			reasons = append(reasons, fmt.Sprintf("Vendido por %s", record.StoreName))
		}

		// Earlier entries are more relevant; reward position.
		score += float64(10 - idx)

		if score > maxScore {
			score = maxScore
		}

		reason := defaultReason
		if len(reasons) > 0 {
			reason = strings.Join(reasons, "; ")
		}

		recommendations = append(recommendations, domain.Recommendation{
			Product: record,
			Reason:  reason,
			Score:   score,
		})
	}

	sort.SliceStable(recommendations, func(i, j int) bool {
		return recommendations[i].Score > recommendations[j].Score
	})
	return recommendations
}
