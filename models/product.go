package models

import (
	"time"

	"gorm.io/gorm"
)

type Product struct {
	ID              string         `gorm:"primaryKey" json:"id"`
	Name            string         `gorm:"not null" json:"name"`
	Description     string         `json:"description"`
	Price           float64        `gorm:"not null" json:"price"` // List price
	DiscountedPrice float64        `json:"discountedPrice"`       // 0 means no active offer
	Unit            string         `gorm:"not null" json:"unit"`  // e.g. "kg", "l", "piece"
	Image           string         `json:"image"`
	Stock           int            `json:"stock"`
	CategoryID      uint           `gorm:"index" json:"categoryId"`
	Category        Category       `json:"category"`
	CreatedAt       time.Time      `json:"createdAt"`
	UpdatedAt       time.Time      `json:"updatedAt"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}
