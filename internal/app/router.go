package app

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/yungbote/commerce-admin-backend/internal/handlers"
)

func wireRouter(h Handlers, mw Middleware) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/healthcheck", handlers.Healthcheck)

	v1 := router.Group("/api/private/v1")
	v1.POST("/auth/login", h.Auth.Login)

	admin := v1.Group("")
	admin.Use(mw.Auth, mw.Admin)

	categories := admin.Group("/categories")
	{
		categories.POST("", h.Category.Create)
		categories.GET("", h.Category.List)
		categories.GET("/deleted", h.Category.ListDeleted)
		categories.POST("/permanent/bulk", h.Category.PermanentDeleteBulk)
		categories.GET("/:id", h.Category.Get)
		categories.PATCH("/:id", h.Category.Update)
		categories.DELETE("/:id", h.Category.Delete)
		categories.PATCH("/:id/reactivate", h.Category.Restore)
		categories.DELETE("/:id/permanent", h.Category.PermanentDelete)
	}

	attributes := admin.Group("/attributes")
	{
		attributes.POST("", h.Attribute.Create)
		attributes.GET("", h.Attribute.List)
		attributes.GET("/:id", h.Attribute.Get)
		attributes.PATCH("/:id", h.Attribute.Update)
		attributes.DELETE("/:id", h.Attribute.Delete)
	}

	permissions := admin.Group("/permissions")
	{
		permissions.POST("", h.Permission.Create)
		permissions.GET("", h.Permission.List)
		permissions.GET("/:id", h.Permission.Get)
		permissions.PATCH("/:id", h.Permission.Update)
		permissions.DELETE("/:id", h.Permission.Delete)
	}

	roles := admin.Group("/roles")
	{
		roles.POST("", h.Role.Create)
		roles.GET("", h.Role.List)
		roles.GET("/:id", h.Role.Get)
		roles.PATCH("/:id", h.Role.Update)
		roles.DELETE("/:id", h.Role.Delete)
	}

	users := admin.Group("/users")
	{
		users.POST("", h.User.Create)
		users.GET("", h.User.List)
		users.GET("/:id", h.User.Get)
		users.PATCH("/:id", h.User.Update)
		users.DELETE("/:id", h.User.Delete)
	}

	products := admin.Group("/products")
	{
		products.POST("", h.Product.Create)
		products.GET("", h.Product.List)
		products.GET("/:id", h.Product.Get)
		products.PATCH("/:id", h.Product.Update)
		products.DELETE("/:id", h.Product.Delete)
	}

	orders := admin.Group("/orders")
	{
		orders.POST("", h.Order.Create)
		orders.GET("", h.Order.List)
		orders.GET("/:id", h.Order.Get)
		orders.PATCH("/:id", h.Order.Update)
		orders.DELETE("/:id", h.Order.Delete)
	}

	reports := admin.Group("/reports")
	{
		reports.GET("/sales", h.Report.SalesByDate)
		reports.GET("/products", h.Report.ProductPopularity)
		reports.GET("/payment_status", h.Report.PaymentStatus)
		reports.GET("/categories", h.Report.CategorySales)
	}

	return router
}
