package usecase

import (
	"context"
	"log"
	"time"

	"github.com/jeanlozanor/simple-backend/internal/domain"
)

// SearchService composes the search pipeline: query correction, connector
// fan-out, intent filtering and the derived analytics. It also serves the
// catalog-backed search over the persistence layer.
type SearchService struct {
	corrector    *QueryCorrector
	aggregator   *Aggregator
	intent       *IntentFilter
	recommender  *Recommender
	registry     *Registry
	catalog      domain.CatalogRepository
	fetchTimeout time.Duration
}

// NewSearchService wires the pipeline components together.
func NewSearchService(
	registry *Registry,
	catalog domain.CatalogRepository,
	corrector *QueryCorrector,
	aggregator *Aggregator,
	intent *IntentFilter,
	recommender *Recommender,
) *SearchService {
	return &SearchService{
		corrector:    corrector,
		aggregator:   aggregator,
		intent:       intent,
		recommender:  recommender,
		registry:     registry,
		catalog:      catalog,
		fetchTimeout: aggregator.fetchTimeout,
	}
}

// SearchAllStores runs the full aggregation pipeline across every registered
// source and applies the intent filter. It returns the ranked records and the
// (possibly corrected) query actually searched.
func (s *SearchService) SearchAllStores(ctx context.Context, req domain.SearchRequest) ([]domain.ProductRecord, string, error) {
	if req.Query == "" {
		return nil, "", domain.ErrQueryRequired
	}

	corrected := s.corrector.Correct(req.Query)
	records := s.aggregator.Aggregate(ctx, corrected, req.UserLocation, req.Filters)
	records = s.intent.Apply(records, corrected)
	return records, corrected, nil
}

// LiveSearch queries a single source by registry name and applies the
// substring strict filter on top of the source's own relevance. A failing
// source yields an empty result, not an error; an unknown or disabled source
// yields ErrSourceUnavailable.
func (s *SearchService) LiveSearch(ctx context.Context, source string, req domain.SearchRequest) ([]domain.ProductRecord, error) {
	if req.Query == "" {
		return nil, domain.ErrQueryRequired
	}

	connector, available := s.registry.Lookup(source)
	if connector == nil || !available {
		return nil, domain.ErrSourceUnavailable
	}

	fetchCtx, cancel := context.WithTimeout(ctx, s.fetchTimeout)
	defer cancel()

	records, err := connector.Fetch(fetchCtx, req.Query, req.UserLocation, req.Filters)
	if err != nil {
		log.Printf("[SEARCH] %s: fetch failed: %v", source, err)
		return nil, nil
	}

	tokens := domain.LongQueryTokens(req.Query)
	if len(tokens) == 0 {
		return records, nil
	}

	var filtered []domain.ProductRecord
	for _, r := range records {
		if r.ContainsAllTokens(tokens) {
			filtered = append(filtered, r)
		}
	}
	return filtered, nil
}

// StoreNameFor resolves the display name of a registered source, falling back
// to the source name itself when it is unknown.
func (s *SearchService) StoreNameFor(source string) string {
	if connector, _ := s.registry.Lookup(source); connector != nil {
		return connector.StoreName()
	}
	return source
}

// AvailableSourceCount reports how many sources participate in a fan-out.
func (s *SearchService) AvailableSourceCount() int {
	count := 0
	for _, entry := range s.registry.Entries() {
		if entry.Available {
			count++
		}
	}
	return count
}

// Recommend aggregates across all sources and scores the ranked results.
func (s *SearchService) Recommend(ctx context.Context, req domain.SearchRequest) ([]domain.Recommendation, string, error) {
	if req.Query == "" {
		return nil, "", domain.ErrQueryRequired
	}

	corrected := s.corrector.Correct(req.Query)
	records := s.aggregator.Aggregate(ctx, corrected, req.UserLocation, req.Filters)
	return s.recommender.Recommend(records), corrected, nil
}

// ComparePrices aggregates across all sources without deduplication (same
// product in several stores is the whole point) and derives comparisons.
func (s *SearchService) ComparePrices(ctx context.Context, req domain.SearchRequest) ([]domain.PriceComparison, string, error) {
	if req.Query == "" {
		return nil, "", domain.ErrQueryRequired
	}

	corrected := s.corrector.Correct(req.Query)
	records := s.aggregator.Collect(ctx, corrected, req.UserLocation, req.Filters)
	return Comparisons(records), corrected, nil
}

// PriceStats aggregates across all sources without deduplication and derives
// per-product price statistics.
func (s *SearchService) PriceStats(ctx context.Context, req domain.SearchRequest) ([]domain.PriceStatistics, string, error) {
	if req.Query == "" {
		return nil, "", domain.ErrQueryRequired
	}

	corrected := s.corrector.Correct(req.Query)
	records := s.aggregator.Collect(ctx, corrected, req.UserLocation, req.Filters)
	return Statistics(records), corrected, nil
}

// SearchCatalog searches the persisted catalog instead of the live sources.
// The query is optional here; an empty one lists everything the filters allow.
func (s *SearchService) SearchCatalog(ctx context.Context, req domain.SearchRequest) ([]domain.ProductRecord, error) {
	entries, err := s.catalog.SearchInventory(ctx, req.Query, req.Filters)
	if err != nil {
		return nil, err
	}

	records := make([]domain.ProductRecord, 0, len(entries))
	for _, e := range entries {
		record := domain.ProductRecord{
			SourceID:       e.Product.ID,
			Name:           e.Product.Name,
			Brand:          e.Product.Brand,
			Category:       e.Product.Category,
			ImageURL:       e.Product.ImageURL,
			Price:          e.Price,
			Currency:       e.Currency,
			StoreID:        e.Store.ID,
			StoreName:      e.Store.Name,
			StoreLocation:  domain.GeoPoint{Lat: e.Store.Latitude, Lon: e.Store.Longitude},
			PaymentMethods: e.Store.PaymentMethods,
		}
		if req.UserLocation != nil {
			d := req.UserLocation.RoundedDistanceKm(record.StoreLocation)
			record.DistanceKm = &d
		}
		records = append(records, record)
	}

	return Rank(records, req.UserLocation != nil), nil
}
