// Package connector implements the site-specific adapters that turn live
// retailer responses into canonical ProductRecords. Every connector honors
// the same contract: apply the exact-word strict match filter and the simple
// price/brand filters before returning, skip malformed items instead of
// failing, and report total source failure as an error the aggregator
// downgrades to an empty contribution.
package connector

import (
	"sort"
	"strconv"
	"strings"

	"github.com/jeanlozanor/simple-backend/internal/domain"
)

// defaultPaymentMethods is assumed for online storefronts that do not expose
// payment information.
var defaultPaymentMethods = []string{"tarjeta", "efectivo"}

// parseSolesPrice parses price strings as rendered on Peruvian storefronts,
// e.g. "S/ 2,499" or "S/. 1 299.90".
func parseSolesPrice(text string) (float64, error) {
	cleaned := strings.NewReplacer(
		"S/.", "",
		"S/", "",
		"s/", "",
		" ", "",
		" ", "",
		",", "",
	).Replace(strings.TrimSpace(text))
	return strconv.ParseFloat(cleaned, 64)
}

// passesFilters applies the optional max-price and brand constraints.
func passesFilters(record domain.ProductRecord, filters *domain.SearchFilters) bool {
	if filters == nil {
		return true
	}
	if filters.MaxPrice != nil && record.Price > *filters.MaxPrice {
		return false
	}
	if filters.Brand != "" {
		if record.Brand == "" || !strings.Contains(strings.ToLower(record.Brand), strings.ToLower(filters.Brand)) {
			return false
		}
	}
	return true
}

// setDistance fills DistanceKm iff a user location was supplied.
func setDistance(record *domain.ProductRecord, location *domain.GeoPoint) {
	if location == nil {
		return
	}
	d := location.RoundedDistanceKm(record.StoreLocation)
	record.DistanceKm = &d
}

// sortRecords orders a single source's results the same way the aggregator
// ranks merged ones: (distance, price) when located, else price.
func sortRecords(records []domain.ProductRecord, located bool) {
	if located {
		sort.SliceStable(records, func(i, j int) bool {
			di, dj := distanceOr(records[i], 999999), distanceOr(records[j], 999999)
			if di != dj {
				return di < dj
			}
			return records[i].Price < records[j].Price
		})
		return
	}
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Price < records[j].Price
	})
}

func distanceOr(r domain.ProductRecord, fallback float64) float64 {
	if r.DistanceKm == nil {
		return fallback
	}
	return *r.DistanceKm
}

// absoluteURL resolves href against origin when href is site-relative.
func absoluteURL(origin, href string) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return ""
	}
	if strings.HasPrefix(href, "/") {
		return strings.TrimRight(origin, "/") + href
	}
	return href
}
