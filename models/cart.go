package models

import "time"

type Cart struct {
	CartID    uint       `gorm:"primaryKey" json:"-"`
	UserID    string     `gorm:"uniqueIndex" json:"-"` // Enforces ONE cart per user
	Items     []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt time.Time  `json:"-"`
	UpdatedAt time.Time  `json:"-"`
}

// CartItem is a snapshot of the product as submitted at add-time. Name, unit
// and price are not re-fetched from the catalog afterwards; the price is the
// one the client resolved when the line was created.
type CartItem struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	CartID    uint      `gorm:"index:idx_cart_product,unique" json:"-"`
	ProductID string    `gorm:"index:idx_cart_product,unique" json:"productId"`
	Name      string    `json:"name"`
	Unit      string    `json:"unit"`
	Price     float64   `json:"price"` // Unit price in effect when the item was added
	Quantity  int       `json:"quantity"`
	AddedAt   time.Time `json:"-"`
}

// Subtotal is the authoritative per-line amount, computed server-side only.
func (i CartItem) Subtotal() float64 {
	return i.Price * float64(i.Quantity)
}
