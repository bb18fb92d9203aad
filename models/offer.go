package models

import "time"

// Offer is a promotional discount on a single product. While an offer is
// active the product's discountedPrice is set from PercentOff; deactivating
// the offer clears it.
type Offer struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Title       string    `gorm:"not null" json:"title"`
	Description string    `json:"description"`
	ProductID   string    `gorm:"index;not null" json:"productId"`
	Product     Product   `json:"product"`
	PercentOff  float64   `gorm:"not null" json:"percentOff"` // 0 < PercentOff < 100
	StartsAt    time.Time `json:"startsAt"`
	EndsAt      time.Time `json:"endsAt"`
	Active      bool      `gorm:"default:false" json:"active"`
	CreatedAt   time.Time `json:"createdAt"`
}
