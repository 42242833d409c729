package domain

// ProductRecord is the canonical record every source connector produces and
// the unit the aggregation pipeline operates on. Records surfaced to a user
// always carry price > 0; connectors drop anything else.
type ProductRecord struct {
	SourceID       int      `json:"product_id"`
	Name           string   `json:"name"`
	Brand          string   `json:"brand,omitempty"`
	Category       string   `json:"category,omitempty"`
	ImageURL       string   `json:"image_url,omitempty"`
	ProductURL     string   `json:"product_url,omitempty"`
	Price          float64  `json:"price"`
	Currency       string   `json:"currency"`
	StoreID        int      `json:"store_id"`
	StoreName      string   `json:"store_name"`
	StoreLocation  GeoPoint `json:"store_location"`
	DistanceKm     *float64 `json:"distance_km,omitempty"`
	PaymentMethods []string `json:"payment_methods"`
}

// SearchFilters narrows results. A zero/nil field means "no constraint".
type SearchFilters struct {
	MaxPrice      *float64 `json:"max_price,omitempty"`
	Category      string   `json:"category,omitempty"`
	Brand         string   `json:"brand,omitempty"`
	PaymentMethod string   `json:"payment_method,omitempty"`
}

// SearchRequest is the inbound shape shared by every search endpoint.
type SearchRequest struct {
	Query        string         `json:"query"`
	UserLocation *GeoPoint      `json:"user_location,omitempty"`
	Filters      *SearchFilters `json:"filters,omitempty"`
}

// SearchResponse carries a ranked record list plus a human-readable status.
type SearchResponse struct {
	Results []ProductRecord `json:"results"`
	Total   int             `json:"total"`
	Message string          `json:"message"`
}

// PriceComparison describes the same product offered by two or more stores.
type PriceComparison struct {
	ProductName       string          `json:"product_name"`
	Brand             string          `json:"brand,omitempty"`
	Stores            []ProductRecord `json:"stores"`
	Cheapest          ProductRecord   `json:"cheapest"`
	MostExpensive     ProductRecord   `json:"most_expensive"`
	PriceDifference   float64         `json:"price_difference"`
	AveragePrice      float64         `json:"average_price"`
	SavingsPercentage float64         `json:"savings_percentage"`
}

// PriceStatistics holds descriptive statistics for one product's prices.
type PriceStatistics struct {
	ProductName  string             `json:"product_name"`
	Count        int                `json:"count"`
	MinPrice     float64            `json:"min_price"`
	MaxPrice     float64            `json:"max_price"`
	AveragePrice float64            `json:"average_price"`
	MedianPrice  float64            `json:"median_price"`
	Stores       map[string]float64 `json:"stores"`
}

// Recommendation pairs a record with a relevance score capped at 100 and the
// accumulated reasons behind it.
type Recommendation struct {
	Product ProductRecord `json:"product"`
	Reason  string        `json:"reason"`
	Score   float64       `json:"score"`
}

// RecommendationResponse is the outbound shape of the recommendations endpoint.
type RecommendationResponse struct {
	Recommendations []Recommendation `json:"recommendations"`
	Total           int              `json:"total"`
	Message         string           `json:"message"`
}
