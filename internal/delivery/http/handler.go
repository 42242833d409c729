package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jeanlozanor/simple-backend/internal/domain"
	"github.com/jeanlozanor/simple-backend/internal/infrastructure/catalog"
	"github.com/jeanlozanor/simple-backend/internal/usecase"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	search  *usecase.SearchService
	catalog domain.CatalogRepository
}

// NewHandler creates a new HTTP handler
func NewHandler(search *usecase.SearchService, catalog domain.CatalogRepository) *Handler {
	return &Handler{search: search, catalog: catalog}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "simple-backend",
		"version": "1.0.0",
	})
}

func bindSearchRequest(c *gin.Context) (domain.SearchRequest, bool) {
	var req domain.SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cuerpo de la solicitud inválido"})
		return req, false
	}
	return req, true
}

func respondSearchError(c *gin.Context, source string, err error) {
	switch {
	case errors.Is(err, domain.ErrQueryRequired):
		c.JSON(http.StatusBadRequest, gin.H{"error": "'query' es obligatorio"})
	case errors.Is(err, domain.ErrSourceUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": fmt.Sprintf("la tienda '%s' no está disponible", source),
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// SearchCatalog searches the persisted catalog.
func (h *Handler) SearchCatalog(c *gin.Context) {
	req, ok := bindSearchRequest(c)
	if !ok {
		return
	}

	records, err := h.search.SearchCatalog(c.Request.Context(), req)
	if err != nil {
		respondSearchError(c, "", err)
		return
	}

	message := "OK"
	if len(records) == 0 {
		message = "Sin resultados para esta búsqueda"
	}
	c.JSON(http.StatusOK, domain.SearchResponse{
		Results: emptyIfNil(records),
		Total:   len(records),
		Message: message,
	})
}

// SearchAllStores fans the query out to every registered live source.
func (h *Handler) SearchAllStores(c *gin.Context) {
	req, ok := bindSearchRequest(c)
	if !ok {
		return
	}

	records, corrected, err := h.search.SearchAllStores(c.Request.Context(), req)
	if err != nil {
		respondSearchError(c, "", err)
		return
	}

	message := fmt.Sprintf("Búsqueda en %d tiendas: %d productos encontrados",
		h.search.AvailableSourceCount(), len(records))
	if corrected != req.Query {
		message += fmt.Sprintf(" (búsqueda corregida: '%s')", corrected)
	}
	c.JSON(http.StatusOK, domain.SearchResponse{
		Results: emptyIfNil(records),
		Total:   len(records),
		Message: message,
	})
}

// LiveSearch returns a handler bound to a single source.
func (h *Handler) LiveSearch(source string) gin.HandlerFunc {
	return func(c *gin.Context) {
		req, ok := bindSearchRequest(c)
		if !ok {
			return
		}

		records, err := h.search.LiveSearch(c.Request.Context(), source, req)
		if err != nil {
			respondSearchError(c, source, err)
			return
		}

		message := "OK"
		if len(records) == 0 {
			message = fmt.Sprintf("Sin resultados para esta búsqueda en %s", h.search.StoreNameFor(source))
		}
		c.JSON(http.StatusOK, domain.SearchResponse{
			Results: emptyIfNil(records),
			Total:   len(records),
			Message: message,
		})
	}
}

// Recommendations scores the aggregated results for the query.
func (h *Handler) Recommendations(c *gin.Context) {
	req, ok := bindSearchRequest(c)
	if !ok {
		return
	}

	recs, corrected, err := h.search.Recommend(c.Request.Context(), req)
	if err != nil {
		respondSearchError(c, "", err)
		return
	}

	if recs == nil {
		recs = []domain.Recommendation{}
	}
	c.JSON(http.StatusOK, domain.RecommendationResponse{
		Recommendations: recs,
		Total:           len(recs),
		Message:         fmt.Sprintf("Se generaron %d recomendaciones basadas en %s", len(recs), corrected),
	})
}

// ComparePrices groups the same product across stores.
func (h *Handler) ComparePrices(c *gin.Context) {
	req, ok := bindSearchRequest(c)
	if !ok {
		return
	}

	comparisons, _, err := h.search.ComparePrices(c.Request.Context(), req)
	if err != nil {
		respondSearchError(c, "", err)
		return
	}

	if comparisons == nil {
		comparisons = []domain.PriceComparison{}
	}
	c.JSON(http.StatusOK, gin.H{
		"comparisons": comparisons,
		"total":       len(comparisons),
		"message":     fmt.Sprintf("Se encontraron %d productos en múltiples tiendas", len(comparisons)),
	})
}

// PriceStatistics derives per-product price statistics across stores.
func (h *Handler) PriceStatistics(c *gin.Context) {
	req, ok := bindSearchRequest(c)
	if !ok {
		return
	}

	stats, _, err := h.search.PriceStats(c.Request.Context(), req)
	if err != nil {
		respondSearchError(c, "", err)
		return
	}

	if stats == nil {
		stats = []domain.PriceStatistics{}
	}
	c.JSON(http.StatusOK, gin.H{
		"statistics": stats,
		"total":      len(stats),
		"message":    fmt.Sprintf("Estadísticas de %d productos encontrados", len(stats)),
	})
}

// CreateStore persists a new store.
func (h *Handler) CreateStore(c *gin.Context) {
	var store domain.Store
	if err := c.ShouldBindJSON(&store); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cuerpo de la solicitud inválido"})
		return
	}
	if store.Name == "" || store.Code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "'name' y 'code' son obligatorios"})
		return
	}

	if err := h.catalog.CreateStore(c.Request.Context(), &store); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, store)
}

// ListStores returns all stores, seeding the defaults on a cold catalog.
func (h *Handler) ListStores(c *gin.Context) {
	ctx := c.Request.Context()
	stores, err := h.catalog.ListStores(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if len(stores) == 0 {
		if err := catalog.SeedDefaultStores(ctx, h.catalog); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if stores, err = h.catalog.ListStores(ctx); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
	}

	if stores == nil {
		stores = []domain.Store{}
	}
	c.JSON(http.StatusOK, stores)
}

// CreateProduct persists a new product.
func (h *Handler) CreateProduct(c *gin.Context) {
	var product domain.Product
	if err := c.ShouldBindJSON(&product); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cuerpo de la solicitud inválido"})
		return
	}
	if product.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "'name' es obligatorio"})
		return
	}

	if err := h.catalog.CreateProduct(c.Request.Context(), &product); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, product)
}

// ListProducts returns all products.
func (h *Handler) ListProducts(c *gin.Context) {
	products, err := h.catalog.ListProducts(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if products == nil {
		products = []domain.Product{}
	}
	c.JSON(http.StatusOK, products)
}

// CreateInventoryItem prices a product at a store.
func (h *Handler) CreateInventoryItem(c *gin.Context) {
	var item domain.InventoryItem
	if err := c.ShouldBindJSON(&item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cuerpo de la solicitud inválido"})
		return
	}

	if err := h.catalog.CreateInventoryItem(c.Request.Context(), &item); err != nil {
		switch {
		case errors.Is(err, domain.ErrStoreNotFound):
			c.JSON(http.StatusBadRequest, gin.H{"error": "la tienda indicada no existe"})
		case errors.Is(err, domain.ErrProductNotFound):
			c.JSON(http.StatusBadRequest, gin.H{"error": "el producto indicado no existe"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusCreated, item)
}

// ListInventoryItems returns all inventory rows.
func (h *Handler) ListInventoryItems(c *gin.Context) {
	items, err := h.catalog.ListInventoryItems(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if items == nil {
		items = []domain.InventoryItem{}
	}
	c.JSON(http.StatusOK, items)
}

func emptyIfNil(records []domain.ProductRecord) []domain.ProductRecord {
	if records == nil {
		return []domain.ProductRecord{}
	}
	return records
}
