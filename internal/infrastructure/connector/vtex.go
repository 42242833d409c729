package connector

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/jeanlozanor/simple-backend/internal/domain"
)

const (
	vtexSearchPath   = "/api/catalog_system/pub/products/search/"
	vtexDefaultLimit = 25

	// vtexItemPause throttles per-item processing so a burst of searches
	// spreads its pressure on the source.
	vtexItemPause = 30 * time.Millisecond
)

// VTEX queries a store running the VTEX platform through its public
// catalog_system search API. One instance per retailer: Promart, Oechsle and
// PlazaVea all expose the same endpoint under their own origin.
type VTEX struct {
	client     *Client
	name       string
	storeName  string
	storeID    int
	baseOrigin string
	location   domain.GeoPoint
	limit      int
}

// VTEXConfig identifies one VTEX storefront.
type VTEXConfig struct {
	Name       string
	StoreName  string
	StoreID    int
	BaseOrigin string
	Location   domain.GeoPoint
	Limit      int
}

// NewVTEX creates a connector for one VTEX storefront.
func NewVTEX(client *Client, config VTEXConfig) *VTEX {
	limit := config.Limit
	if limit <= 0 || limit > 50 {
		limit = vtexDefaultLimit
	}
	return &VTEX{
		client:     client,
		name:       config.Name,
		storeName:  config.StoreName,
		storeID:    config.StoreID,
		baseOrigin: strings.TrimRight(config.BaseOrigin, "/"),
		location:   config.Location,
		limit:      limit,
	}
}

func (v *VTEX) Name() string      { return v.name }
func (v *VTEX) StoreName() string { return v.storeName }

type vtexProduct struct {
	ProductID   string `json:"productId"`
	ProductName string `json:"productName"`
	Brand       string `json:"brand"`
	Link        string `json:"link"`
	LinkText    string `json:"linkText"`
	Items       []struct {
		Images []struct {
			ImageURL string `json:"imageUrl"`
		} `json:"images"`
		Sellers []struct {
			CommertialOffer struct {
				Price float64 `json:"Price"`
			} `json:"commertialOffer"`
		} `json:"sellers"`
	} `json:"items"`
}

// Fetch queries the catalog_system search API and normalizes the results.
func (v *VTEX) Fetch(
	ctx context.Context,
	query string,
	location *domain.GeoPoint,
	filters *domain.SearchFilters,
) ([]domain.ProductRecord, error) {
	params := url.Values{
		"ft":    []string{query},
		"_from": []string{"0"},
		"_to":   []string{strconv.Itoa(v.limit - 1)},
	}

	body, err := v.client.Get(ctx, v.baseOrigin+vtexSearchPath, params)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", v.name, err)
	}

	var products []vtexProduct
	if err := json.Unmarshal(body, &products); err != nil {
		return nil, fmt.Errorf("%s: decode response: %w", v.name, err)
	}

	tokens := domain.QueryTokens(query)

	var records []domain.ProductRecord
	for i, p := range products {
		name := strings.TrimSpace(p.ProductName)
		if name == "" {
			continue
		}

		price, ok := v.offerPrice(p)
		if !ok || price <= 0 {
			continue
		}

		record := domain.ProductRecord{
			SourceID:       v.sourceID(p, i),
			Name:           name,
			Brand:          strings.TrimSpace(p.Brand),
			ImageURL:       v.imageURL(p),
			ProductURL:     v.productURL(p),
			Price:          price,
			Currency:       "PEN",
			StoreID:        v.storeID,
			StoreName:      v.storeName,
			StoreLocation:  v.location,
			PaymentMethods: defaultPaymentMethods,
		}

		if !record.MatchesAllWords(tokens) {
			continue
		}
		if !passesFilters(record, filters) {
			continue
		}
		setDistance(&record, location)
		records = append(records, record)

		time.Sleep(vtexItemPause)
	}

	sortRecords(records, location != nil)
	log.Printf("[VTEX] %s query %q: %d records", v.name, query, len(records))
	return records, nil
}

func (v *VTEX) offerPrice(p vtexProduct) (float64, bool) {
	if len(p.Items) == 0 || len(p.Items[0].Sellers) == 0 {
		return 0, false
	}
	return p.Items[0].Sellers[0].CommertialOffer.Price, true
}

func (v *VTEX) imageURL(p vtexProduct) string {
	if len(p.Items) == 0 || len(p.Items[0].Images) == 0 {
		return ""
	}
	return strings.TrimSpace(p.Items[0].Images[0].ImageURL)
}

func (v *VTEX) productURL(p vtexProduct) string {
	if link := strings.TrimSpace(p.Link); link != "" {
		return absoluteURL(v.baseOrigin, link)
	}
	if linkText := strings.TrimSpace(p.LinkText); linkText != "" {
		return v.baseOrigin + "/" + linkText + "/p"
	}
	return ""
}

func (v *VTEX) sourceID(p vtexProduct, index int) int {
	if id, err := strconv.Atoi(strings.TrimSpace(p.ProductID)); err == nil {
		return id
	}
	return index + 1
}
