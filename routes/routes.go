package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/techwithPranab/GrocerySellingWeb-sub001/config"
)

// SetupRoutes is the single entry-point that wires up the /api surface:
// public auth and catalog routes, JWT-protected storefront routes, and
// admin-protected back-office routes.
func SetupRoutes(r *gin.Engine, db *gorm.DB, cfg config.Config) {
	api := r.Group("/api")

	// Public auth routes (no middleware)
	SetupAuthRoutes(api, db, cfg)

	// Public catalog + storefront routes (JWT-protected where needed)
	SetupStoreRoutes(api, db, cfg)

	// Admin back office (JWT + admin role)
	SetupAdminRoutes(api, db, cfg)
}
