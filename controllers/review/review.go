package reviewControllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/techwithPranab/GrocerySellingWeb-sub001/models"
)

type ReviewInput struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment"`
}

// GET /products/:id/reviews
func GetProductReviews(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		productID := c.Param("id")

		var reviews []models.Review
		if err := db.Where("product_id = ?", productID).
			Order("created_at desc").
			Find(&reviews).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch reviews"})
			return
		}
		c.JSON(http.StatusOK, reviews)
	}
}

// POST /products/:id/reviews — one review per user per product; posting again
// replaces the earlier one.
func UpsertReview(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")
		productID := c.Param("id")

		var input ReviewInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		var product models.Product
		if err := db.First(&product, "id = ?", productID).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Product does not exist"})
			return
		}

		var user models.User
		if err := db.First(&user, "id = ?", userID).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid session"})
			return
		}

		var review models.Review
		err := db.Where("product_id = ? AND user_id = ?", productID, userID).First(&review).Error
		switch {
		case err == nil:
			review.Rating = input.Rating
			review.Comment = input.Comment
			review.UpdatedAt = time.Now()
			if err := db.Save(&review).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update review"})
				return
			}
			c.JSON(http.StatusOK, review)
		case err == gorm.ErrRecordNotFound:
			review = models.Review{
				ProductID: productID,
				UserID:    userID,
				UserName:  user.Name,
				Rating:    input.Rating,
				Comment:   input.Comment,
			}
			if err := db.Create(&review).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create review"})
				return
			}
			c.JSON(http.StatusCreated, review)
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		}
	}
}

// DELETE /admin/reviews/:id
func DeleteReview(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		result := db.Delete(&models.Review{}, id)
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete review"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Review not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Review deleted"})
	}
}
