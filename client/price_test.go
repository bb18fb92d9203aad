package client

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEffectivePrice(t *testing.T) {
	tests := []struct {
		name    string
		product Product
		want    float64
	}{
		{
			name:    "discount lower than list price wins",
			product: Product{ID: "p1", Price: 10.00, DiscountedPrice: 8.00},
			want:    8.00,
		},
		{
			name:    "no discount uses list price",
			product: Product{ID: "p2", Price: 3.00},
			want:    3.00,
		},
		{
			name:    "discount equal to list price is ignored",
			product: Product{ID: "p3", Price: 5.00, DiscountedPrice: 5.00},
			want:    5.00,
		},
		{
			name:    "discount above list price is ignored",
			product: Product{ID: "p4", Price: 5.00, DiscountedPrice: 6.00},
			want:    5.00,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EffectivePrice(tt.product))
		})
	}
}
