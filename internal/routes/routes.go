package routes

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"techplug_back_end/internal/handlers"
	"techplug_back_end/internal/middleware"
	"techplug_back_end/internal/utils"
)

// Options carries what the router needs beyond the handlers. Limiter may be
// nil, which turns rate limiting off.
type Options struct {
	CORSOrigins []string
	JWTSecret   string
	Limiter     middleware.Counter
	APILimit    int
	CartLimit   int
	Auditor     utils.Auditor
	Logger      *zap.Logger
}

func RegisterRoutes(r *gin.Engine, h *handlers.Handler, opts Options) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(gin.Recovery())
	r.Use(cors.New(corsConfig(opts.CORSOrigins)))

	r.GET("/health", h.Health)

	api := r.Group("/api")
	api.Use(middleware.APIRateLimit(opts.Limiter, opts.APILimit))

	// Catalog
	api.GET("/products", h.GetProducts)
	api.GET("/products/search", h.SearchProducts)
	api.GET("/products/:id", h.GetProduct)
	api.GET("/services", h.GetServiceCategories)

	// Cart
	api.GET("/cart", h.GetCart)
	api.POST("/cart", middleware.CartRateLimit(opts.Limiter, opts.CartLimit), h.AddToCart)
	api.DELETE("/cart/:productId", h.RemoveFromCart)

	// Orders
	api.POST("/checkout", h.Checkout)
	api.GET("/orders/:id/qrcode", h.GetOrderQRCode)

	api.GET("/ws", h.StoreWebSocket)
	api.POST("/admin/login", h.AdminLogin)

	audit := func(action, resource string) gin.HandlerFunc {
		return middleware.AuditAdminAction(opts.Auditor, logger, action, resource)
	}

	admin := api.Group("/admin")
	admin.Use(middleware.AuthRequired(opts.JWTSecret), middleware.RequireAdmin)
	{
		admin.POST("/products", audit(utils.ActionProductCreate, utils.ResourceProduct), h.CreateProduct)
		admin.PATCH("/products/:id", audit(utils.ActionProductUpdate, utils.ResourceProduct), h.UpdateProduct)
		admin.DELETE("/products/:id", audit(utils.ActionProductDelete, utils.ResourceProduct), h.DeleteProduct)
		admin.POST("/products/:id/image", audit(utils.ActionProductImage, utils.ResourceProduct), h.UploadProductImage)

		admin.POST("/services", audit(utils.ActionServiceCreate, utils.ResourceService), h.CreateServiceCategory)
		admin.PATCH("/services/:id", audit(utils.ActionServiceUpdate, utils.ResourceService), h.UpdateServiceCategory)
		admin.DELETE("/services/:id", audit(utils.ActionServiceDelete, utils.ResourceService), h.DeleteServiceCategory)

		admin.POST("/orders", audit(utils.ActionOrderCreate, utils.ResourceOrder), h.PlaceOrder)
		admin.GET("/orders", h.GetOrders)
		admin.GET("/orders/:id", h.GetOrder)
		admin.GET("/tickets", h.GetTickets)
		admin.POST("/tickets/:id/analysis", audit(utils.ActionTicketAnalysis, utils.ResourceTicket), h.AnalyzeTicket)
	}
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders: []string{middleware.RequestIDHeader, "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	return cfg
}
