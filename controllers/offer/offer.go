package offerControllers

import (
	"math"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/techwithPranab/GrocerySellingWeb-sub001/models"
)

type CreateOfferInput struct {
	Title       string    `json:"title" binding:"required"`
	Description string    `json:"description"`
	ProductID   string    `json:"productId" binding:"required"`
	PercentOff  float64   `json:"percentOff" binding:"required,gt=0,lt=100"`
	StartsAt    time.Time `json:"startsAt"`
	EndsAt      time.Time `json:"endsAt"`
}

// discounted price is rounded to cents so every client sees the same number.
func discountedPrice(listPrice, percentOff float64) float64 {
	return math.Round(listPrice*(100-percentOff)) / 100
}

// GET /offers — active offers only.
func GetActiveOffers(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var offers []models.Offer
		now := time.Now()
		if err := db.Preload("Product").
			Where("active = ? AND starts_at <= ? AND ends_at >= ?", true, now, now).
			Order("created_at desc").
			Find(&offers).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch offers"})
			return
		}
		c.JSON(http.StatusOK, offers)
	}
}

// GET /admin/offers — all offers.
func GetAllOffers(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var offers []models.Offer
		if err := db.Preload("Product").Order("created_at desc").Find(&offers).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch offers"})
			return
		}
		c.JSON(http.StatusOK, offers)
	}
}

// POST /admin/offers — creates the offer and activates it, setting the
// product's discounted price.
func CreateOffer(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input CreateOfferInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		var product models.Product
		if err := db.First(&product, "id = ?", input.ProductID).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Product does not exist"})
			return
		}

		starts, ends := input.StartsAt, input.EndsAt
		if starts.IsZero() {
			starts = time.Now()
		}
		if ends.IsZero() {
			ends = starts.Add(30 * 24 * time.Hour)
		}
		if !ends.After(starts) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "endsAt must be after startsAt"})
			return
		}

		offer := models.Offer{
			Title:       input.Title,
			Description: input.Description,
			ProductID:   input.ProductID,
			PercentOff:  input.PercentOff,
			StartsAt:    starts,
			EndsAt:      ends,
			Active:      true,
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&offer).Error; err != nil {
				return err
			}
			return tx.Model(&product).
				Update("discounted_price", discountedPrice(product.Price, input.PercentOff)).Error
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create offer"})
			return
		}

		log.WithFields(log.Fields{"offer_id": offer.ID, "product_id": product.ID}).Info("offer created")
		c.JSON(http.StatusCreated, offer)
	}
}

// DELETE /admin/offers/:id — removes the offer and clears the product's
// discounted price.
func DeleteOffer(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		var offer models.Offer
		if err := db.First(&offer, id).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				c.JSON(http.StatusNotFound, gin.H{"error": "Offer not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
			return
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Model(&models.Product{}).
				Where("id = ?", offer.ProductID).
				Update("discounted_price", 0).Error; err != nil {
				return err
			}
			return tx.Delete(&offer).Error
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete offer"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Offer deleted"})
	}
}
