package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/kirana/backend/internal/infrastructure/auth"
	"github.com/kirana/backend/internal/interfaces/http/handler"
	"github.com/kirana/backend/internal/interfaces/http/middleware"
)

// Handlers bundles all HTTP handlers for route registration
type Handlers struct {
	Auth      *handler.AuthHandler
	Product   *handler.ProductHandler
	Bill      *handler.BillHandler
	Dashboard *handler.DashboardHandler
	System    *handler.SystemHandler
}

// New builds the gin engine with all routes and middleware
func New(h Handlers, jwtService *auth.JWTService, logger *zap.Logger, production bool) *gin.Engine {
	if production {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(
		middleware.RequestID(),
		middleware.RequestLogger(logger),
		middleware.Recovery(logger),
		middleware.CORS(),
	)

	engine.GET("/health", h.System.Health)
	engine.GET("/ready", h.System.Ready)

	api := engine.Group("/api")

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/signup", h.Auth.Signup)
		authGroup.POST("/login", h.Auth.Login)
		authGroup.GET("/me", middleware.JWTAuth(jwtService), h.Auth.Me)
	}

	protected := api.Group("")
	protected.Use(middleware.JWTAuth(jwtService))
	{
		products := protected.Group("/products")
		{
			products.POST("", h.Product.Create)
			products.GET("", h.Product.List)
			products.GET("/low-stock", h.Product.LowStock)
			products.GET("/barcode/:barcode", h.Product.GetByBarcode)
			products.GET("/:id", h.Product.Get)
			products.PUT("/:id", h.Product.Update)
			products.PATCH("/:id/stock", h.Product.AdjustStock)
			products.DELETE("/:id", h.Product.Delete)
		}

		bills := protected.Group("/bills")
		{
			bills.POST("", h.Bill.Create)
			bills.GET("", h.Bill.List)
			bills.GET("/history", h.Bill.SalesHistory)
			bills.GET("/:id", h.Bill.Get)
		}

		dashboard := protected.Group("/dashboard")
		{
			dashboard.GET("/stats", h.Dashboard.Stats)
			dashboard.GET("/recent-bills", h.Dashboard.RecentBills)
		}
	}

	return engine
}
