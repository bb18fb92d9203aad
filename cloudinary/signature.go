// Package cloudinary issues time-scoped signed upload credentials so clients
// can push images straight to the media host. No image bytes pass through or
// are stored by this service.
package cloudinary

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type Config struct {
	CloudName string
	APIKey    string
	APISecret string
	Folder    string
}

type SignatureResponse struct {
	Signature string `json:"signature"`
	Timestamp int64  `json:"timestamp"`
	APIKey    string `json:"api_key"`
	CloudName string `json:"cloud_name"`
	Folder    string `json:"folder"`
}

// Sign computes the upload signature per Cloudinary's contract: SHA-1 over the
// alphabetically sorted parameter string with the API secret appended.
func Sign(folder string, timestamp int64, apiSecret string) string {
	toSign := fmt.Sprintf("folder=%s&timestamp=%d%s", folder, timestamp, apiSecret)
	sum := sha1.Sum([]byte(toSign))
	return hex.EncodeToString(sum[:])
}

// POST /cloudinary/signature
func SignatureHandler(cfg Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		if cfg.APISecret == "" || cfg.CloudName == "" {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Media uploads are not configured"})
			return
		}

		ts := time.Now().Unix()
		c.JSON(http.StatusOK, SignatureResponse{
			Signature: Sign(cfg.Folder, ts, cfg.APISecret),
			Timestamp: ts,
			APIKey:    cfg.APIKey,
			CloudName: cfg.CloudName,
			Folder:    cfg.Folder,
		})
	}
}
