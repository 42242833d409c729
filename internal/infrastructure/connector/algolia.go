package connector

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/jeanlozanor/simple-backend/internal/domain"
)

const algoliaHitsPerPage = 50

// Algolia queries a retailer's Algolia search index directly, the way the
// retailer's own frontend does. Inkafarma and Mifarma (both Intercorp
// pharmacies) share this shape under different application IDs.
type Algolia struct {
	client         *Client
	name           string
	storeName      string
	storeID        int
	queryURL       string
	appID          string
	apiKey         string
	siteOrigin     string
	imageBaseURL   string
	location       domain.GeoPoint
	paymentMethods []string
}

// AlgoliaConfig identifies one Algolia-backed storefront.
type AlgoliaConfig struct {
	Name           string
	StoreName      string
	StoreID        int
	AppID          string
	APIKey         string
	Index          string
	QueryURL       string // overrides the derived Algolia DSN URL, for tests
	SiteOrigin     string
	ImageBaseURL   string
	Location       domain.GeoPoint
	PaymentMethods []string
}

// NewAlgolia creates a connector for one Algolia-backed storefront.
func NewAlgolia(client *Client, config AlgoliaConfig) *Algolia {
	queryURL := config.QueryURL
	if queryURL == "" {
		queryURL = fmt.Sprintf("https://%s-dsn.algolia.net/1/indexes/%s/query", config.AppID, config.Index)
	}

	methods := config.PaymentMethods
	if len(methods) == 0 {
		methods = defaultPaymentMethods
	}

	return &Algolia{
		client:         client,
		name:           config.Name,
		storeName:      config.StoreName,
		storeID:        config.StoreID,
		queryURL:       queryURL,
		appID:          config.AppID,
		apiKey:         config.APIKey,
		siteOrigin:     strings.TrimRight(config.SiteOrigin, "/"),
		imageBaseURL:   config.ImageBaseURL,
		location:       config.Location,
		paymentMethods: methods,
	}
}

func (a *Algolia) Name() string      { return a.name }
func (a *Algolia) StoreName() string { return a.storeName }

type algoliaHit struct {
	ObjectID     string   `json:"objectID"`
	Name         string   `json:"name"`
	Presentation string   `json:"presentation"`
	Brand        string   `json:"brand"`
	PricePromo   float64  `json:"pricePromo"`
	PriceList    float64  `json:"priceList"`
	Image        string   `json:"image"`
	URI          string   `json:"uri"`
	Category     []string `json:"category"`
}

type algoliaResponse struct {
	Hits []algoliaHit `json:"hits"`
}

// Fetch posts a query to the Algolia index and normalizes the hits.
func (a *Algolia) Fetch(
	ctx context.Context,
	query string,
	location *domain.GeoPoint,
	filters *domain.SearchFilters,
) ([]domain.ProductRecord, error) {
	headers := map[string]string{
		"X-Algolia-Application-Id": a.appID,
		"X-Algolia-API-Key":        a.apiKey,
	}
	payload := map[string]any{
		"query":       query,
		"hitsPerPage": algoliaHitsPerPage,
	}

	body, err := a.client.PostJSON(ctx, a.queryURL, headers, payload)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", a.name, err)
	}

	var resp algoliaResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%s: decode response: %w", a.name, err)
	}

	tokens := domain.QueryTokens(query)

	var records []domain.ProductRecord
	for i, hit := range resp.Hits {
		name := strings.TrimSpace(hit.Name)
		if len(name) < 3 {
			continue
		}
		if p := strings.TrimSpace(hit.Presentation); p != "" {
			name = name + " - " + p
		}

		// Promo price wins when present.
		price := hit.PriceList
		if hit.PricePromo > 0 {
			price = hit.PricePromo
		}
		if price <= 0 {
			continue
		}

		record := domain.ProductRecord{
			SourceID:       i + 1,
			Name:           name,
			Brand:          strings.TrimSpace(hit.Brand),
			Category:       firstOrEmpty(hit.Category),
			ImageURL:       a.imageURL(hit),
			ProductURL:     a.productURL(hit),
			Price:          price,
			Currency:       "PEN",
			StoreID:        a.storeID,
			StoreName:      a.storeName,
			StoreLocation:  a.location,
			PaymentMethods: a.paymentMethods,
		}

		if !record.MatchesAllWords(tokens) {
			continue
		}
		if !passesFilters(record, filters) {
			continue
		}
		setDistance(&record, location)
		records = append(records, record)
	}

	sortRecords(records, location != nil)
	log.Printf("[ALGOLIA] %s query %q: %d records", a.name, query, len(records))
	return records, nil
}

func (a *Algolia) imageURL(hit algoliaHit) string {
	if img := strings.TrimSpace(hit.Image); img != "" {
		return img
	}
	if hit.ObjectID != "" && a.imageBaseURL != "" {
		return a.imageBaseURL + hit.ObjectID + "X.jpg"
	}
	return ""
}

func (a *Algolia) productURL(hit algoliaHit) string {
	uri := strings.TrimSpace(hit.URI)
	if uri == "" || a.siteOrigin == "" {
		return ""
	}
	return a.siteOrigin + "/producto/" + uri
}

func firstOrEmpty(values []string) string {
	if len(values) == 0 {
		return ""
	}
	return values[0]
}
