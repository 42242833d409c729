package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/jeanlozanor/simple-backend/config"
	httpDelivery "github.com/jeanlozanor/simple-backend/internal/delivery/http"
	"github.com/jeanlozanor/simple-backend/internal/domain"
	"github.com/jeanlozanor/simple-backend/internal/infrastructure/catalog"
	"github.com/jeanlozanor/simple-backend/internal/infrastructure/connector"
	"github.com/jeanlozanor/simple-backend/internal/usecase"
)

var limaCenter = domain.GeoPoint{Lat: -12.06, Lon: -77.04}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting Simple Backend v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)
	log.Printf("Catalog driver: %s", cfg.Catalog.Driver)

	repo, err := buildCatalog(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize catalog: %v", err)
	}
	if err := catalog.SeedDefaultStores(context.Background(), repo); err != nil {
		log.Fatalf("Failed to seed default stores: %v", err)
	}

	registry := buildRegistry(cfg)
	searchService := usecase.NewSearchService(
		registry,
		repo,
		usecase.NewQueryCorrector(usecase.CorrectorConfig{
			Vocabulary: cfg.Search.Vocabulary,
			Threshold:  cfg.Search.CorrectionThreshold,
			Debug:      cfg.Server.Environment == "development",
		}),
		usecase.NewAggregator(registry, usecase.AggregatorConfig{
			FetchTimeout: cfg.Connector.FetchTimeout,
			MaxResults:   cfg.Search.MaxResults,
		}),
		usecase.NewIntentFilter(usecase.IntentFilterConfig{Limit: cfg.Search.IntentLimit}),
		usecase.NewRecommender(usecase.RecommenderConfig{
			TrustedStores: cfg.Search.TrustedStores,
			Limit:         cfg.Search.RecommendLimit,
		}),
	)

	handler := httpDelivery.NewHandler(searchService, repo)
	router := httpDelivery.SetupRouter(cfg, handler)

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Server listening on %s", addr)

	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// buildCatalog picks the persistence backend from the config.
func buildCatalog(cfg *config.Config) (domain.CatalogRepository, error) {
	if cfg.Catalog.Driver == "postgres" {
		return catalog.NewPostgres(cfg.Catalog.DSN)
	}
	return catalog.NewMemory(), nil
}

// buildRegistry constructs every source connector and registers them. The
// registration order decides which store survives deduplication ties, so it
// stays fixed even when some sources are disabled.
func buildRegistry(cfg *config.Config) *usecase.Registry {
	htmlClient := connector.NewClient(connector.ClientConfig{
		Timeout:           cfg.Connector.HTMLTimeout,
		UserAgent:         cfg.Connector.UserAgent,
		RequestsPerSecond: cfg.Connector.RequestsPerSecond,
	})
	apiClient := connector.NewClient(connector.ClientConfig{
		Timeout:           cfg.Connector.APITimeout,
		UserAgent:         cfg.Connector.UserAgent,
		RequestsPerSecond: cfg.Connector.RequestsPerSecond,
	})

	disabled := make(map[string]bool, len(cfg.Connector.Disabled))
	for _, name := range cfg.Connector.Disabled {
		disabled[name] = true
	}

	connectors := []domain.Connector{
		connector.NewHiraoka(htmlClient, ""),
		connector.NewFalabella(htmlClient, ""),
		connector.NewVTEX(apiClient, connector.VTEXConfig{
			Name:       "promart",
			StoreName:  "Promart Online",
			StoreID:    5,
			BaseOrigin: "https://www.promart.pe",
			Location:   limaCenter,
		}),
		connector.NewVTEX(apiClient, connector.VTEXConfig{
			Name:       "oechsle",
			StoreName:  "Oechsle Online",
			StoreID:    6,
			BaseOrigin: "https://www.oechsle.pe",
			Location:   limaCenter,
		}),
		connector.NewVTEX(apiClient, connector.VTEXConfig{
			Name:       "plazavea",
			StoreName:  "PlazaVea Online",
			StoreID:    7,
			BaseOrigin: "https://www.plazavea.com.pe",
			Location:   limaCenter,
		}),
		connector.NewAlgolia(apiClient, connector.AlgoliaConfig{
			Name:           "inkafarma",
			StoreName:      "Inkafarma Online",
			StoreID:        10,
			AppID:          "15W622LAQ4",
			APIKey:         os.Getenv("SIMPLE_INKAFARMA_API_KEY"),
			Index:          "products",
			SiteOrigin:     "https://inkafarma.pe",
			ImageBaseURL:   "https://dcuk1cxrnzjkh.cloudfront.net/imagesproducto/",
			Location:       limaCenter,
			PaymentMethods: []string{"tarjeta", "efectivo", "online"},
		}),
		connector.NewAlgolia(apiClient, connector.AlgoliaConfig{
			Name:           "mifarma",
			StoreName:      "Mifarma",
			StoreID:        11,
			AppID:          "O74E6QKJ1F",
			APIKey:         os.Getenv("SIMPLE_MIFARMA_API_KEY"),
			Index:          "products",
			SiteOrigin:     "https://www.mifarma.com.pe",
			ImageBaseURL:   "https://dcuk1cxrnzjkh.cloudfront.net/imagesproducto/",
			Location:       limaCenter,
			PaymentMethods: []string{"tarjeta", "efectivo", "online"},
		}),
	}

	registry := usecase.NewRegistry()
	for _, c := range connectors {
		available := !disabled[c.Name()]
		registry.Register(c, available)
		if !available {
			log.Printf("Connector %s disabled by configuration", c.Name())
		}
	}
	return registry
}

func init() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stdout)
}
