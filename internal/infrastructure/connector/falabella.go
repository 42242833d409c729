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
	falabellaOrigin    = "https://www.falabella.com.pe"
	falabellaSearchURL = falabellaOrigin + "/falabella-pe/search"
	falabellaStoreID   = 2
)

var falabellaLocation = domain.GeoPoint{Lat: -12.06, Lon: -77.04}

// Falabella scrapes the falabella.com.pe search results. The 2025 markup
// renders each product as a "catalyst pod" anchor with the brand in
// b.pod-title, the name in b.pod-subTitle and the price in li[data-event-price].
type Falabella struct {
	client    *Client
	searchURL string
}

// NewFalabella creates the Falabella connector; searchURL overrides the live
// endpoint for tests.
func NewFalabella(client *Client, searchURL string) *Falabella {
	if searchURL == "" {
		searchURL = falabellaSearchURL
	}
	return &Falabella{client: client, searchURL: searchURL}
}

func (f *Falabella) Name() string      { return "falabella" }
func (f *Falabella) StoreName() string { return "Falabella Online" }

// Fetch searches Falabella and extracts the product pods.
func (f *Falabella) Fetch(
	ctx context.Context,
	query string,
	location *domain.GeoPoint,
	filters *domain.SearchFilters,
) ([]domain.ProductRecord, error) {
	body, err := f.client.Get(ctx, f.searchURL, url.Values{"Ntt": []string{query}})
	if err != nil {
		return nil, fmt.Errorf("falabella: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("falabella: parse html: %w", err)
	}

	tokens := domain.QueryTokens(query)

	var records []domain.ProductRecord
	doc.Find(`a[data-pod="catalyst-pod"]`).Each(func(i int, pod *goquery.Selection) {
		name := strings.TrimSpace(pod.Find("b.pod-subTitle").First().Text())
		if name == "" {
			return
		}

		brand := strings.TrimSpace(pod.Find("b.pod-title").First().Text())
		href, _ := pod.Attr("href")

		price, ok := f.extractPrice(pod)
		if !ok || price <= 0 {
			return
		}

		imageURL, _ := pod.Find("img[alt]").First().Attr("src")

		record := domain.ProductRecord{
			SourceID:       i + 1,
			Name:           name,
			Brand:          brand,
			ImageURL:       imageURL,
			ProductURL:     absoluteURL(falabellaOrigin, href),
			Price:          price,
			Currency:       "PEN",
			StoreID:        falabellaStoreID,
			StoreName:      f.StoreName(),
			StoreLocation:  falabellaLocation,
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
	log.Printf("[FALABELLA] query %q: %d records", query, len(records))
	return records, nil
}

func (f *Falabella) extractPrice(pod *goquery.Selection) (float64, bool) {
	priceItem := pod.Find("li[data-event-price]").First()
	if priceItem.Length() == 0 {
		return 0, false
	}

	if amount, ok := priceItem.Attr("data-event-price"); ok && strings.TrimSpace(amount) != "" {
		if price, err := parseSolesPrice(amount); err == nil {
			return price, true
		}
	}

	text := priceItem.Find("span").First().Text()
	if strings.TrimSpace(text) == "" {
		return 0, false
	}
	price, err := parseSolesPrice(text)
	if err != nil {
		return 0, false
	}
	return price, true
}
