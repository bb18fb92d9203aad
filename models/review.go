package models

import "time"

type Review struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID string    `gorm:"index:idx_product_user,unique;not null" json:"productId"`
	UserID    string    `gorm:"index:idx_product_user,unique;not null" json:"userId"`
	UserName  string    `json:"userName"`
	Rating    int       `gorm:"not null" json:"rating"` // 1..5
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
