package productcontroller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/techwithPranab/GrocerySellingWeb-sub001/models"
)

type CreateProductInput struct {
	Name            string  `json:"name" binding:"required"`
	Description     string  `json:"description"`
	Price           float64 `json:"price" binding:"required,gt=0"`
	DiscountedPrice float64 `json:"discountedPrice"`
	Unit            string  `json:"unit" binding:"required"`
	Image           string  `json:"image"` // Cloudinary URL from the signed upload
	Stock           int     `json:"stock"`
	CategoryID      uint    `json:"categoryId"`
}

// CreateProduct adds a catalog entry. The image is already hosted on the media
// provider; only its URL is stored here.
func CreateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input CreateProductInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		if input.DiscountedPrice != 0 && (input.DiscountedPrice < 0 || input.DiscountedPrice >= input.Price) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "discountedPrice must be lower than price"})
			return
		}

		if input.CategoryID != 0 {
			var category models.Category
			if err := db.First(&category, input.CategoryID).Error; err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Category does not exist"})
				return
			}
		}

		product := models.Product{
			ID:              uuid.NewString(),
			Name:            input.Name,
			Description:     input.Description,
			Price:           input.Price,
			DiscountedPrice: input.DiscountedPrice,
			Unit:            input.Unit,
			Image:           input.Image,
			Stock:           input.Stock,
			CategoryID:      input.CategoryID,
		}

		if err := db.Create(&product).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
			return
		}

		c.JSON(http.StatusCreated, product)
	}
}
