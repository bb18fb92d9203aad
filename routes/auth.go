package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/techwithPranab/GrocerySellingWeb-sub001/auth"
	"github.com/techwithPranab/GrocerySellingWeb-sub001/config"
	"github.com/techwithPranab/GrocerySellingWeb-sub001/middleware"
)

// SetupAuthRoutes registers all "/auth/*" endpoints.
func SetupAuthRoutes(api *gin.RouterGroup, db *gorm.DB, cfg config.Config) {
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", auth.Register(db, cfg.JWTSecret))
		authGroup.POST("/login", auth.Login(db, cfg.JWTSecret))
		authGroup.POST("/admin/login", auth.AdminLogin(db, cfg.JWTSecret))

		// Identity resolution for a stored token
		authGroup.GET("/profile", middleware.ValidateToken(cfg.JWTSecret), auth.Profile(db))
	}
}
