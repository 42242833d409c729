package http

import (
	"github.com/gin-gonic/gin"

	"github.com/jeanlozanor/simple-backend/config"
)

// liveSources lists the single-source endpoints in their route order.
var liveSources = []string{
	"hiraoka",
	"falabella",
	"promart",
	"oechsle",
	"plazavea",
	"inkafarma",
	"mifarma",
}

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler) *gin.Engine {
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(RecoveryMiddleware())
	router.Use(LoggerMiddleware())
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))

	router.GET("/health", handler.HealthCheck)

	router.POST("/stores", handler.CreateStore)
	router.GET("/stores", handler.ListStores)
	router.POST("/products", handler.CreateProduct)
	router.GET("/products", handler.ListProducts)
	router.POST("/inventory-items", handler.CreateInventoryItem)
	router.GET("/inventory-items", handler.ListInventoryItems)

	router.POST("/search", handler.SearchCatalog)

	search := router.Group("/search")
	{
		search.POST("/all-stores", handler.SearchAllStores)
		search.POST("/recommendations", handler.Recommendations)
		search.POST("/compare-prices", handler.ComparePrices)
		search.POST("/statistics", handler.PriceStatistics)

		for _, source := range liveSources {
			search.POST("/"+source+"-live", handler.LiveSearch(source))
		}
	}

	return router
}
