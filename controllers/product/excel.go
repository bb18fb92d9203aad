package productcontroller

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/tealeg/xlsx"
	"gorm.io/gorm"

	"github.com/techwithPranab/GrocerySellingWeb-sub001/models"
)

// ImportProductsFromExcel bulk-creates or updates catalog entries from an
// uploaded sheet. Expected columns: ID, Name, Description, Price,
// DiscountedPrice, Unit, Stock, Image, CategoryID. Rows with an ID matching
// an existing product update it; others insert with a fresh ID.
func ImportProductsFromExcel(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		excelFileHeader, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Excel file is required"})
			return
		}

		file, err := excelFileHeader.Open()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to open Excel file"})
			return
		}
		defer file.Close()

		xlFile, err := xlsx.OpenReaderAt(file, excelFileHeader.Size)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to parse Excel file"})
			return
		}

		if len(xlFile.Sheets) == 0 || xlFile.Sheets[0].MaxRow < 2 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Excel file is empty or missing header row"})
			return
		}

		sheet := xlFile.Sheets[0]
		createdCount, updatedCount, skippedCount := 0, 0, 0

		for i := 1; i < sheet.MaxRow; i++ {
			row := sheet.Rows[i]

			get := func(index int) string {
				if index < len(row.Cells) {
					return strings.TrimSpace(row.Cells[index].String())
				}
				return ""
			}

			id := get(0)
			name := get(1)
			description := get(2)
			price, err1 := strconv.ParseFloat(get(3), 64)
			discountedPrice, _ := strconv.ParseFloat(get(4), 64)
			unit := get(5)
			stock, _ := strconv.Atoi(get(6))
			image := get(7)
			categoryID, _ := strconv.ParseUint(get(8), 10, 64)

			if name == "" || unit == "" || err1 != nil || price <= 0 {
				skippedCount++
				continue
			}

			product := models.Product{
				Name:            name,
				Description:     description,
				Price:           price,
				DiscountedPrice: discountedPrice,
				Unit:            unit,
				Stock:           stock,
				Image:           image,
				CategoryID:      uint(categoryID),
			}

			if id != "" {
				var existing models.Product
				if err := db.First(&existing, "id = ?", id).Error; err == nil {
					product.ID = existing.ID
					if err := db.Model(&existing).Updates(map[string]interface{}{
						"name":             product.Name,
						"description":      product.Description,
						"price":            product.Price,
						"discounted_price": product.DiscountedPrice,
						"unit":             product.Unit,
						"stock":            product.Stock,
						"image":            product.Image,
						"category_id":      product.CategoryID,
					}).Error; err == nil {
						updatedCount++
						continue
					}
					skippedCount++
					continue
				}
			}

			// Insert new product
			product.ID = uuid.NewString()
			if err := db.Create(&product).Error; err == nil {
				createdCount++
			} else {
				skippedCount++
			}
		}

		c.JSON(http.StatusOK, gin.H{
			"message":       "Import completed",
			"created_count": createdCount,
			"updated_count": updatedCount,
			"skipped_count": skippedCount,
		})
	}
}
