package usecase

import (
	"context"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/jeanlozanor/simple-backend/internal/domain"
)

const (
	// defaultMaxResults caps the ranked list returned by Aggregate.
	defaultMaxResults = 50

	// defaultFetchTimeout bounds each connector call. A slow source degrades
	// latency up to this bound but never blocks the request past it.
	defaultFetchTimeout = 25 * time.Second

	// missingDistance ranks records without a computed distance last when
	// sorting by proximity.
	missingDistance = 999999.0
)

// RegisteredConnector pairs a connector with its availability flag. An
// unavailable connector contributes an empty result set, exactly like a
// failing one.
type RegisteredConnector struct {
	Connector domain.Connector
	Available bool
}

// Registry holds connectors in registration order. The order is part of the
// pipeline's observable behavior: dedupe keeps the first record per key, so
// earlier connectors win ties.
type Registry struct {
	entries []RegisteredConnector
}

// NewRegistry creates an empty connector registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register appends a connector with its availability flag.
func (r *Registry) Register(c domain.Connector, available bool) {
	r.entries = append(r.entries, RegisteredConnector{Connector: c, Available: available})
}

// Entries returns the registered connectors in registration order.
func (r *Registry) Entries() []RegisteredConnector {
	return r.entries
}

// Lookup finds a connector by name. The second return reports whether it is
// available; the first is nil when the name is unknown.
func (r *Registry) Lookup(name string) (domain.Connector, bool) {
	for _, entry := range r.entries {
		if entry.Connector.Name() == name {
			return entry.Connector, entry.Available
		}
	}
	return nil, false
}

// AggregatorConfig holds configuration for the aggregator.
type AggregatorConfig struct {
	FetchTimeout time.Duration
	MaxResults   int
}

// Aggregator fans a query out to every registered connector, merges the
// results, deduplicates and ranks them.
type Aggregator struct {
	registry     *Registry
	fetchTimeout time.Duration
	maxResults   int
}

// NewAggregator creates an aggregator over the given registry.
func NewAggregator(registry *Registry, config AggregatorConfig) *Aggregator {
	timeout := config.FetchTimeout
	if timeout <= 0 {
		timeout = defaultFetchTimeout
	}

	maxResults := config.MaxResults
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}

	return &Aggregator{
		registry:     registry,
		fetchTimeout: timeout,
		maxResults:   maxResults,
	}
}

// Collect invokes every available connector concurrently and concatenates
// their results in registration order. Connector failures, panics and
// unavailable capabilities all degrade to an empty contribution; one source
// can never abort the whole search. Total wall-clock time is bounded by the
// slowest connector, not the sum.
func (a *Aggregator) Collect(
	ctx context.Context,
	query string,
	location *domain.GeoPoint,
	filters *domain.SearchFilters,
) []domain.ProductRecord {
	entries := a.registry.Entries()
	buckets := make([][]domain.ProductRecord, len(entries))

	var wg sync.WaitGroup
	for i, entry := range entries {
		if !entry.Available {
			log.Printf("[AGG] %s: connector unavailable, skipping", entry.Connector.Name())
			continue
		}

		wg.Add(1)
		go func(i int, c domain.Connector) {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					log.Printf("[AGG] %s: connector panicked: %v", c.Name(), r)
				}
			}()

			fetchCtx, cancel := context.WithTimeout(ctx, a.fetchTimeout)
			defer cancel()

			records, err := c.Fetch(fetchCtx, query, location, filters)
			if err != nil {
				log.Printf("[AGG] %s: fetch failed: %v", c.Name(), err)
				return
			}
			buckets[i] = records
		}(i, entry.Connector)
	}
	wg.Wait()

	var all []domain.ProductRecord
	for _, bucket := range buckets {
		all = append(all, bucket...)
	}
	return all
}

// Aggregate runs the full pipeline: collect, deduplicate, rank, truncate.
func (a *Aggregator) Aggregate(
	ctx context.Context,
	query string,
	location *domain.GeoPoint,
	filters *domain.SearchFilters,
) []domain.ProductRecord {
	records := a.Collect(ctx, query, location, filters)
	records = Deduplicate(records)
	records = Rank(records, location != nil)
	return Truncate(records, a.maxResults)
}

// Deduplicate keeps the first record per normalized name+brand key, in input
// order. First-seen wins regardless of price; which store survives is decided
// by connector registration order.
func Deduplicate(records []domain.ProductRecord) []domain.ProductRecord {
	seen := make(map[string]bool, len(records))
	unique := make([]domain.ProductRecord, 0, len(records))
	for _, r := range records {
		key := r.NameBrandKey()
		if seen[key] {
			continue
		}
		seen[key] = true
		unique = append(unique, r)
	}
	return unique
}

// Rank returns a new slice sorted ascending by (distance, price) when the
// request carried a user location, otherwise by (price, store name). The sort
// is stable so equal keys keep their merge order.
func Rank(records []domain.ProductRecord, located bool) []domain.ProductRecord {
	ranked := make([]domain.ProductRecord, len(records))
	copy(ranked, records)

	if located {
		sort.SliceStable(ranked, func(i, j int) bool {
			di, dj := distanceOrSentinel(ranked[i]), distanceOrSentinel(ranked[j])
			if di != dj {
				return di < dj
			}
			return ranked[i].Price < ranked[j].Price
		})
	} else {
		sort.SliceStable(ranked, func(i, j int) bool {
			if ranked[i].Price != ranked[j].Price {
				return ranked[i].Price < ranked[j].Price
			}
			return ranked[i].StoreName < ranked[j].StoreName
		})
	}
	return ranked
}

func distanceOrSentinel(r domain.ProductRecord) float64 {
	if r.DistanceKm == nil {
		return missingDistance
	}
	return *r.DistanceKm
}

// Truncate caps records at n without mutating the input.
func Truncate(records []domain.ProductRecord, n int) []domain.ProductRecord {
	if len(records) <= n {
		return records
	}
	return records[:n]
}
