package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/01moynul/inventory-dashboard/internal/handlers"
	"github.com/01moynul/inventory-dashboard/internal/middleware"
)

// CORSMiddleware lets the dashboard frontend at allowedOrigin call the API.
func CORSMiddleware(allowedOrigin string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", allowedOrigin)
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-Request-ID, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")
		c.Writer.Header().Set("Access-Control-Expose-Headers", middleware.RequestIDHeader)

		// Preflight requests get an empty 204.
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// Options configures SetupRouter.
type Options struct {
	AllowedOrigin string
	Logger        *zap.Logger
}

func SetupRouter(h *handlers.Handlers, opts Options) *gin.Engine {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(log))
	if opts.AllowedOrigin != "" {
		router.Use(CORSMiddleware(opts.AllowedOrigin))
	}

	api := router.Group("/api")
	{
		api.GET("/health", h.Health)

		// --- Product Routes ---
		// Static segments are registered alongside :id; gin matches them first.
		products := api.Group("/products")
		{
			products.GET("", h.ListProducts)
			products.GET("/stats", h.GetProductStats)
			products.GET("/reports", h.GetInventoryReport)
			products.GET("/export", h.ExportProducts)
			products.GET("/:id", h.GetProduct)
			products.POST("", h.CreateProduct)
			products.PUT("/:id", h.UpdateProduct)
			products.DELETE("/:id", h.DeleteProduct)
		}
	}

	return router
}
