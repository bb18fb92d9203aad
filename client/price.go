package client

// Product is the catalog entry as displayed; only the fields the cart needs.
type Product struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Price           float64 `json:"price"`
	DiscountedPrice float64 `json:"discountedPrice"`
	Unit            string  `json:"unit"`
}

// EffectivePrice resolves the unit price at add-time: the discounted price
// when one is present and strictly lower than the list price, else the list
// price. Resolved once, client-side, and transmitted with the add request.
func EffectivePrice(p Product) float64 {
	if p.DiscountedPrice > 0 && p.DiscountedPrice < p.Price {
		return p.DiscountedPrice
	}
	return p.Price
}
