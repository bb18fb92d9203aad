package adminController

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/techwithPranab/GrocerySellingWeb-sub001/models"
)

const lowStockThreshold = 10

type dashboardSummary struct {
	Customers     int64   `json:"customers"`
	Products      int64   `json:"products"`
	Orders        int64   `json:"orders"`
	PendingOrders int64   `json:"pendingOrders"`
	Revenue       float64 `json:"revenue"`
	RevenueToday  float64 `json:"revenueToday"`
	LowStock      int64   `json:"lowStock"`
}

// GET /admin/dashboard
func GetDashboard(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var summary dashboardSummary

		queries := []error{
			db.Model(&models.User{}).
				Where("role = ?", models.RoleCustomer).
				Count(&summary.Customers).Error,
			db.Model(&models.Product{}).Count(&summary.Products).Error,
			db.Model(&models.Order{}).Count(&summary.Orders).Error,
			db.Model(&models.Order{}).
				Where("status = ?", models.OrderStatusPending).
				Count(&summary.PendingOrders).Error,
			db.Model(&models.Product{}).
				Where("stock < ?", lowStockThreshold).
				Count(&summary.LowStock).Error,
			// Cancelled orders never count toward revenue.
			db.Model(&models.Order{}).
				Where("status <> ?", models.OrderStatusCancelled).
				Select("COALESCE(SUM(total), 0)").
				Scan(&summary.Revenue).Error,
			db.Model(&models.Order{}).
				Where("status <> ? AND created_at >= ?", models.OrderStatusCancelled, startOfToday()).
				Select("COALESCE(SUM(total), 0)").
				Scan(&summary.RevenueToday).Error,
		}
		for _, err := range queries {
			if err != nil {
				log.WithError(err).Error("dashboard query failed")
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build dashboard"})
				return
			}
		}

		c.JSON(http.StatusOK, summary)
	}
}

// startOfToday is midnight in the server's local zone, not the UTC boundary.
func startOfToday() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}

// GET /admin/customers
func GetCustomers(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var users []models.User
		if err := db.
			Select("id", "email", "name", "phone", "role", "created_at"). // Public fields only
			Where("role = ?", models.RoleCustomer).
			Order("created_at desc").
			Find(&users).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch customers"})
			return
		}

		c.JSON(http.StatusOK, users)
	}
}
