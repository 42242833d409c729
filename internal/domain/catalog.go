package domain

// Store is a persisted retailer. Online-only stores carry an approximate
// city-center location so distance ranking still works.
type Store struct {
	ID             int      `json:"id"`
	Name           string   `json:"name"`
	Code           string   `json:"code"`
	Address        string   `json:"address,omitempty"`
	District       string   `json:"district,omitempty"`
	City           string   `json:"city,omitempty"`
	Latitude       float64  `json:"latitude"`
	Longitude      float64  `json:"longitude"`
	PaymentMethods []string `json:"payment_methods,omitempty"`
}

// Product is a persisted catalog product.
type Product struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Brand       string `json:"brand,omitempty"`
	Category    string `json:"category,omitempty"`
	Description string `json:"description,omitempty"`
	ImageURL    string `json:"image_url,omitempty"`
}

// InventoryItem prices one product at one store.
type InventoryItem struct {
	ID        int     `json:"id"`
	StoreID   int     `json:"store_id"`
	ProductID int     `json:"product_id"`
	Price     float64 `json:"price"`
	Currency  string  `json:"currency"`
	Stock     *int    `json:"stock,omitempty"`
}

// CatalogEntry is one inventory row joined with its product and store.
type CatalogEntry struct {
	Product  Product
	Store    Store
	Price    float64
	Currency string
}
