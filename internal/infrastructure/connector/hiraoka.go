package connector

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/jeanlozanor/simple-backend/internal/domain"
)

const (
	hiraokaOrigin    = "https://hiraoka.com.pe"
	hiraokaSearchURL = hiraokaOrigin + "/gpsearch/"
	hiraokaStoreID   = 1
)

// hiraokaLocation approximates the Lima city center for distance ranking.
var hiraokaLocation = domain.GeoPoint{Lat: -12.06, Lon: -77.04}

// Hiraoka scrapes the server-rendered search page of hiraoka.com.pe.
type Hiraoka struct {
	client    *Client
	searchURL string
}

// NewHiraoka creates the Hiraoka connector. searchURL overrides the live
// endpoint, which tests point at a local server.
func NewHiraoka(client *Client, searchURL string) *Hiraoka {
	if searchURL == "" {
		searchURL = hiraokaSearchURL
	}
	return &Hiraoka{client: client, searchURL: searchURL}
}

func (h *Hiraoka) Name() string      { return "hiraoka" }
func (h *Hiraoka) StoreName() string { return "Hiraoka Online" }

// Fetch searches Hiraoka and extracts product cards from the result grid.
func (h *Hiraoka) Fetch(
	ctx context.Context,
	query string,
	location *domain.GeoPoint,
	filters *domain.SearchFilters,
) ([]domain.ProductRecord, error) {
	body, err := h.client.Get(ctx, h.searchURL, url.Values{"q": []string{query}})
	if err != nil {
		return nil, fmt.Errorf("hiraoka: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("hiraoka: parse html: %w", err)
	}

	tokens := domain.QueryTokens(query)

	var records []domain.ProductRecord
	doc.Find(`div.product-item-info[data-container="product-grid"]`).Each(func(i int, card *goquery.Selection) {
		nameLink := card.Find("strong.product.name.product-item-name a.product-item-link").First()
		name := strings.TrimSpace(nameLink.Text())
		if name == "" {
			return
		}

		href, _ := nameLink.Attr("href")
		brand := strings.TrimSpace(card.Find("strong.product.brand.product-item-brand a.product-item-link").First().Text())

		price, ok := h.extractPrice(card)
		if !ok || price <= 0 {
			return
		}

		imageURL, _ := card.Find("img.product-image-photo").First().Attr("src")

		record := domain.ProductRecord{
			SourceID:       i + 1,
			Name:           name,
			Brand:          brand,
			ImageURL:       imageURL,
			ProductURL:     absoluteURL(hiraokaOrigin, href),
			Price:          price,
			Currency:       "PEN",
			StoreID:        hiraokaStoreID,
			StoreName:      h.StoreName(),
			StoreLocation:  hiraokaLocation,
			PaymentMethods: defaultPaymentMethods,
		}

		if !record.MatchesAllWords(tokens) {
			return
		}
		if !passesFilters(record, filters) {
			return
		}
		setDistance(&record, location)
		records = append(records, record)
	})

	sortRecords(records, location != nil)
	log.Printf("[HIRAOKA] query %q: %d records", query, len(records))
	return records, nil
}

// extractPrice prefers the machine-readable data-price-amount attribute and
// falls back to the rendered "S/ 1,299" text.
func (h *Hiraoka) extractPrice(card *goquery.Selection) (float64, bool) {
	finalPrice := card.Find(`div.price-box [data-price-type="finalPrice"]`).First()
	if amount, ok := finalPrice.Attr("data-price-amount"); ok && strings.TrimSpace(amount) != "" {
		if price, err := parseSolesPrice(amount); err == nil {
			return price, true
		}
	}

	text := card.Find("div.price-box span.price").First().Text()
	if strings.TrimSpace(text) == "" {
		return 0, false
	}
	price, err := parseSolesPrice(text)
	if err != nil {
		return 0, false
	}
	return price, true
}
