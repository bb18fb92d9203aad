package models

import "time"

type OrderStatus string
type PaymentStatus string

const (
	// Order statuses (typical grocery delivery flow)
	OrderStatusPending        OrderStatus = "pending"          // Order placed, awaiting confirmation
	OrderStatusConfirmed      OrderStatus = "confirmed"        // Confirmed by the store
	OrderStatusOutForDelivery OrderStatus = "out_for_delivery" // Picked and out for delivery
	OrderStatusDelivered      OrderStatus = "delivered"        // Customer received the order
	OrderStatusCancelled      OrderStatus = "cancelled"        // Cancelled before delivery

	// Payment statuses
	PaymentStatusPending  PaymentStatus = "pending"  // Payment not completed yet
	PaymentStatusPaid     PaymentStatus = "paid"     // Payment completed successfully
	PaymentStatusRefunded PaymentStatus = "refunded" // Money returned to customer
)

type Order struct {
	ID            uint          `gorm:"primaryKey" json:"id"`
	Reference     string        `gorm:"uniqueIndex" json:"reference"`
	UserID        string        `gorm:"not null" json:"userId"`
	User          User          `gorm:"foreignKey:UserID" json:"user"`
	Items         []OrderItem   `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	Total         float64       `json:"total"`
	Status        OrderStatus   `gorm:"type:VARCHAR(20);default:'pending'" json:"status"`
	PaymentStatus PaymentStatus `gorm:"type:VARCHAR(20);default:'pending'" json:"paymentStatus"`
	PaymentMethod string        `json:"paymentMethod"` // e.g. "cod"
	CreatedAt     time.Time     `json:"createdAt"`
}

// OrderItem is a frozen copy of the cart line at checkout time.
type OrderItem struct {
	ID        uint    `gorm:"primaryKey" json:"-"`
	OrderID   uint    `gorm:"index" json:"-"`
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Unit      string  `json:"unit"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	Subtotal  float64 `json:"subtotal"`
}
