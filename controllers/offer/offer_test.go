package offerControllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/techwithPranab/GrocerySellingWeb-sub001/models"
)

func setupOfferRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()

	gin.SetMode(gin.TestMode)
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Product{}, &models.Offer{}))

	require.NoError(t, db.Create(&models.Product{ID: "p1", Name: "Olive Oil", Price: 10.00, Unit: "bottle", Stock: 5}).Error)

	r := gin.New()
	r.GET("/offers", GetActiveOffers(db))
	r.POST("/admin/offers", CreateOffer(db))
	r.DELETE("/admin/offers/:id", DeleteOffer(db))

	return r, db
}

func TestCreateOfferSetsDiscountedPrice(t *testing.T) {
	r, db := setupOfferRouter(t)

	body, _ := json.Marshal(gin.H{"title": "Oil week", "productId": "p1", "percentOff": 20})
	req := httptest.NewRequest(http.MethodPost, "/admin/offers", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var product models.Product
	require.NoError(t, db.First(&product, "id = ?", "p1").Error)
	assert.Equal(t, 8.00, product.DiscountedPrice)
}

func TestCreateOfferUnknownProduct(t *testing.T) {
	r, _ := setupOfferRouter(t)

	body, _ := json.Marshal(gin.H{"title": "Ghost sale", "productId": "nope", "percentOff": 10})
	req := httptest.NewRequest(http.MethodPost, "/admin/offers", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteOfferClearsDiscountedPrice(t *testing.T) {
	r, db := setupOfferRouter(t)

	body, _ := json.Marshal(gin.H{"title": "Oil week", "productId": "p1", "percentOff": 20})
	req := httptest.NewRequest(http.MethodPost, "/admin/offers", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	var offer models.Offer
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &offer))

	req = httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/admin/offers/%d", offer.ID), nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var product models.Product
	require.NoError(t, db.First(&product, "id = ?", "p1").Error)
	assert.Equal(t, 0.00, product.DiscountedPrice)
}

func TestActiveOffersExcludesExpired(t *testing.T) {
	r, db := setupOfferRouter(t)

	body, _ := json.Marshal(gin.H{"title": "Oil week", "productId": "p1", "percentOff": 20})
	req := httptest.NewRequest(http.MethodPost, "/admin/offers", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/offers", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var offers []models.Offer
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &offers))
	assert.Len(t, offers, 1)

	// Expire it and check it falls out of the listing.
	require.NoError(t, db.Model(&models.Offer{}).
		Where("id = ?", offers[0].ID).
		Update("ends_at", offers[0].StartsAt).Error)

	req = httptest.NewRequest(http.MethodGet, "/offers", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	offers = nil
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &offers))
	assert.Empty(t, offers)
}
