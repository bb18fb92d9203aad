package reviewControllers

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

func setupReviewRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()

	gin.SetMode(gin.TestMode)
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Product{}, &models.Review{}))

	require.NoError(t, db.Create(&models.User{ID: "user-1", Email: "pat@example.com", Name: "Pat"}).Error)
	require.NoError(t, db.Create(&models.Product{ID: "p1", Name: "Milk", Price: 3.00, Unit: "l"}).Error)

	r := gin.New()
	r.Use(func(c *gin.Context) { c.Set("user_id", "user-1") })
	r.GET("/products/:id/reviews", GetProductReviews(db))
	r.POST("/products/:id/reviews", UpsertReview(db))
	r.DELETE("/admin/reviews/:id", DeleteReview(db))

	return r, db
}

func postReview(t *testing.T, r *gin.Engine, productID string, rating int, comment string) *httptest.ResponseRecorder {
	t.Helper()

	body, err := json.Marshal(gin.H{"rating": rating, "comment": comment})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/products/"+productID+"/reviews", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestUpsertReviewReplacesExisting(t *testing.T) {
	r, db := setupReviewRouter(t)

	w := postReview(t, r, "p1", 4, "Good")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = postReview(t, r, "p1", 2, "Went off quickly")
	require.Equal(t, http.StatusOK, w.Code)

	var reviews []models.Review
	require.NoError(t, db.Find(&reviews).Error)
	require.Len(t, reviews, 1)
	assert.Equal(t, 2, reviews[0].Rating)
	assert.Equal(t, "Went off quickly", reviews[0].Comment)
	assert.Equal(t, "Pat", reviews[0].UserName)
}

func TestUpsertReviewValidation(t *testing.T) {
	r, _ := setupReviewRouter(t)

	w := postReview(t, r, "p1", 6, "Too good")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = postReview(t, r, "nope", 4, "Ghost product")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetProductReviews(t *testing.T) {
	r, _ := setupReviewRouter(t)
	postReview(t, r, "p1", 5, "Great")

	req := httptest.NewRequest(http.MethodGet, "/products/p1/reviews", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var reviews []models.Review
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &reviews))
	require.Len(t, reviews, 1)
	assert.Equal(t, 5, reviews[0].Rating)
}

func TestDeleteReview(t *testing.T) {
	r, db := setupReviewRouter(t)
	postReview(t, r, "p1", 5, "Great")

	var review models.Review
	require.NoError(t, db.First(&review).Error)

	req := httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/admin/reviews/%d", review.ID), nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	req = httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/admin/reviews/%d", review.ID), nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
