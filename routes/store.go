package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/techwithPranab/GrocerySellingWeb-sub001/config"
	cartControllers "github.com/techwithPranab/GrocerySellingWeb-sub001/controllers/cart"
	offerControllers "github.com/techwithPranab/GrocerySellingWeb-sub001/controllers/offer"
	orderControllers "github.com/techwithPranab/GrocerySellingWeb-sub001/controllers/order"
	productcontroller "github.com/techwithPranab/GrocerySellingWeb-sub001/controllers/product"
	reviewControllers "github.com/techwithPranab/GrocerySellingWeb-sub001/controllers/review"
	userControllers "github.com/techwithPranab/GrocerySellingWeb-sub001/controllers/user"
	"github.com/techwithPranab/GrocerySellingWeb-sub001/middleware"
)

// SetupStoreRoutes registers the customer-facing endpoints: public catalog
// browsing plus the JWT-protected cart, profile, review, and order routes.
func SetupStoreRoutes(api *gin.RouterGroup, db *gorm.DB, cfg config.Config) {
	// ──────────────── Public catalog ────────────────
	api.GET("/products", productcontroller.GetProducts(db))
	api.GET("/products/:id", productcontroller.GetProductByID(db))
	api.GET("/products/:id/reviews", reviewControllers.GetProductReviews(db))
	api.GET("/categories", productcontroller.GetAllCategories(db))
	api.GET("/categories/with-products", productcontroller.GetAllCategoriesWithProducts(db))
	api.GET("/offers", offerControllers.GetActiveOffers(db))

	authed := api.Group("")
	authed.Use(middleware.ValidateToken(cfg.JWTSecret))
	{
		// ──────────────── User Profile ────────────────
		authed.GET("/user", userControllers.GetUser(db))
		authed.PUT("/user", userControllers.UpdateUser(db))

		// ──────────────── Shopping Cart ────────────────
		cartGroup := authed.Group("/cart")
		{
			cartGroup.GET("", cartControllers.GetCart(db))
			cartGroup.POST("/add", cartControllers.AddItem(db))
			cartGroup.PUT("/item/:productId", cartControllers.UpdateItemQuantity(db))
			cartGroup.DELETE("/item/:productId", cartControllers.RemoveItem(db))
			cartGroup.DELETE("/clear", cartControllers.ClearCart(db))
		}

		// ──────────────── Reviews & Orders ────────────────
		authed.POST("/products/:id/reviews", reviewControllers.UpsertReview(db))
		authed.POST("/orders/checkout", orderControllers.CheckoutHandler(db))
		authed.GET("/orders", orderControllers.GetMyOrdersHandler(db))
	}
}
