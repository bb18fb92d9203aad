package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/techwithPranab/GrocerySellingWeb-sub001/cloudinary"
	"github.com/techwithPranab/GrocerySellingWeb-sub001/config"
	adminController "github.com/techwithPranab/GrocerySellingWeb-sub001/controllers/admin"
	cartControllers "github.com/techwithPranab/GrocerySellingWeb-sub001/controllers/cart"
	offerControllers "github.com/techwithPranab/GrocerySellingWeb-sub001/controllers/offer"
	orderControllers "github.com/techwithPranab/GrocerySellingWeb-sub001/controllers/order"
	productcontroller "github.com/techwithPranab/GrocerySellingWeb-sub001/controllers/product"
	reviewControllers "github.com/techwithPranab/GrocerySellingWeb-sub001/controllers/review"
	"github.com/techwithPranab/GrocerySellingWeb-sub001/middleware"
)

// SetupAdminRoutes registers all "/admin/*" endpoints plus the media signing
// endpoint. Requires a valid JWT with the admin role.
func SetupAdminRoutes(api *gin.RouterGroup, db *gorm.DB, cfg config.Config) {
	adminGroup := api.Group("/admin")
	adminGroup.Use(middleware.ValidateToken(cfg.JWTSecret), middleware.RequireAdmin)
	{
		// ─────────── Dashboard & Customers ───────────
		adminGroup.GET("/dashboard", adminController.GetDashboard(db))
		adminGroup.GET("/customers", adminController.GetCustomers(db))

		// ─────────── Product Management ───────────
		productAdmin := adminGroup.Group("/products")
		{
			productAdmin.POST("", productcontroller.CreateProduct(db))
			productAdmin.PUT("/:id", productcontroller.UpdateProduct(db))
			productAdmin.DELETE("/:id", productcontroller.DeleteProduct(db))
			productAdmin.POST("/import-excel", productcontroller.ImportProductsFromExcel(db))
			productAdmin.GET("/export-excel", productcontroller.ExportProductsToExcel(db))
		}

		// ─────────── Category Management ───────────
		categoryAdmin := adminGroup.Group("/categories")
		{
			categoryAdmin.POST("", productcontroller.CreateCategory(db))
			categoryAdmin.PUT("/:id", productcontroller.UpdateCategory(db))
			categoryAdmin.DELETE("/:id", productcontroller.DeleteCategory(db))
		}

		// ─────────── Offer Management ───────────
		offerAdmin := adminGroup.Group("/offers")
		{
			offerAdmin.GET("", offerControllers.GetAllOffers(db))
			offerAdmin.POST("", offerControllers.CreateOffer(db))
			offerAdmin.DELETE("/:id", offerControllers.DeleteOffer(db))
		}

		// ─────────── Order Management ───────────
		orderAdmin := adminGroup.Group("/orders")
		{
			orderAdmin.GET("", orderControllers.GetAllOrdersHandler(db))
			orderAdmin.GET("/ws", orderControllers.OrderWebSocketHandler)
			orderAdmin.PUT("/:orderID/status", orderControllers.UpdateOrderStatusHandler(db))
			orderAdmin.PUT("/:orderID/payment-status", orderControllers.UpdatePaymentStatusHandler(db))
			orderAdmin.DELETE("/:orderID", orderControllers.DeleteOrderHandler(db))
		}

		// ─────────── Reviews & Carts ───────────
		adminGroup.DELETE("/reviews/:id", reviewControllers.DeleteReview(db))
		adminGroup.GET("/user-cart/:user_id", cartControllers.GetAdminUserCart(db))
	}

	// Media upload signing sits outside /admin but still requires admin auth.
	api.POST("/cloudinary/signature",
		middleware.ValidateToken(cfg.JWTSecret), middleware.RequireAdmin,
		cloudinary.SignatureHandler(cloudinary.Config{
			CloudName: cfg.CloudinaryCloudName,
			APIKey:    cfg.CloudinaryAPIKey,
			APISecret: cfg.CloudinaryAPISecret,
			Folder:    cfg.CloudinaryFolder,
		}))
}
