package main

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/volantino/backend/config"
	httpDelivery "github.com/volantino/backend/internal/delivery/http"
	"github.com/volantino/backend/internal/domain"
	"github.com/volantino/backend/internal/infrastructure/cache"
	"github.com/volantino/backend/internal/infrastructure/catalog"
	"github.com/volantino/backend/internal/infrastructure/storage"
	"github.com/volantino/backend/internal/usecase"
)

func main() {
	// Load .env if present; real environments set variables directly
	if err := godotenv.Load(); err == nil {
		log.Printf("Loaded environment from .env")
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting Volantino Backend v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)
	log.Printf("Catalog API: %s", cfg.API.BaseURL)

	// Initialize infrastructure dependencies
	memoryCache := cache.NewMemoryCache()
	defer memoryCache.Stop()
	log.Printf("Cache TTL: %s", cfg.Cache.TTL)

	catalogClient := catalog.NewClient(cfg.API.BaseURL, cfg.API.Timeout)

	// Enable debug mode in development environment
	if cfg.Server.Environment == "development" {
		catalogClient.SetDebug(true)
		log.Printf("Catalog client debug mode enabled")
	}

	var cartStore domain.CartRepository
	switch cfg.Storage.Type {
	case "sqlite":
		store, err := storage.NewSQLiteCartStore(cfg.Storage.Path)
		if err != nil {
			log.Fatalf("Failed to open cart database: %v", err)
		}
		defer store.Close()
		cartStore = store
	default:
		store, err := storage.NewFileCartStore(cfg.Storage.Path)
		if err != nil {
			log.Fatalf("Failed to open cart file: %v", err)
		}
		cartStore = store
	}
	log.Printf("Cart storage: %s (%s)", cfg.Storage.Type, cfg.Storage.Path)

	// Initialize usecase layer
	cartService := usecase.NewCartService(cartStore, catalogClient)
	catalogService := usecase.NewCatalogService(
		catalogClient,
		catalogClient,
		memoryCache,
		usecase.CatalogServiceConfig{
			PageSize: cfg.Catalog.PageSize,
			CacheTTL: cfg.Cache.TTL,
		},
	)
	compareService := usecase.NewCompareService(catalogClient, cartStore)

	log.Printf("Catalog: default=%s, stores=%d, page_size=%d",
		cfg.Catalog.DefaultSupermarket,
		len(cfg.Catalog.Supermarkets),
		cfg.Catalog.PageSize)

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(cartService, catalogService, compareService, usecase.BrowseConfig{
		DefaultSupermarket: cfg.Catalog.DefaultSupermarket,
		Supermarkets:       cfg.Catalog.Supermarkets,
		PageSize:           cfg.Catalog.PageSize,
	})

	// Setup router
	router := httpDelivery.SetupRouter(cfg, handler)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Server listening on %s", addr)

	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func init() {
	// Set log flags for better debugging
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stdout)
}
