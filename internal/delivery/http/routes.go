package http

import (
	"github.com/gin-gonic/gin"
	"github.com/volantino/backend/config"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler) *gin.Engine {
	// Set Gin mode based on environment
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(RecoveryMiddleware())
	router.Use(LoggerMiddleware())
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))

	// Health check endpoint
	router.GET("/health", handler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		v1.GET("/supermarkets", handler.ListSupermarkets)
		v1.GET("/products", handler.SearchProducts)

		cart := v1.Group("/cart")
		{
			cart.GET("", handler.GetCart)
			cart.DELETE("", handler.ClearCart)
			cart.GET("/export", handler.ExportCart)
			cart.POST("/items", handler.AddCartItem)
			cart.PATCH("/items/:id", handler.UpdateCartItem)
			cart.DELETE("/items/:id", handler.DeleteCartItem)
		}

		v1.POST("/compare", handler.CompareCart)

		browse := v1.Group("/browse")
		{
			browse.GET("", handler.GetBrowse)
			browse.POST("/query", handler.BrowseQuery)
			browse.POST("/supermarket", handler.BrowseSupermarket)
			browse.POST("/next", handler.BrowseNext)
			browse.POST("/prev", handler.BrowsePrev)
		}
	}

	return router
}
