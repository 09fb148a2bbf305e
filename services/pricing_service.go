package services

import "math"

const (
	TaxRate               = 0.10
	FreeShippingThreshold = 100.0
	FlatShippingFee       = 10.0
)

type OrderBreakdown struct {
	Subtotal float64 `json:"subtotal"`
	Tax      float64 `json:"tax"`
	Shipping float64 `json:"shipping"`
	Total    float64 `json:"total"`
}

// ComputeBreakdown derives tax, shipping and total from a subtotal. Shipping
// is free strictly above the threshold; a $100.00 cart still pays the flat
// fee. All figures are rounded to cents.
func ComputeBreakdown(subtotal float64) OrderBreakdown {
	subtotal = roundCents(subtotal)
	tax := roundCents(subtotal * TaxRate)

	shipping := FlatShippingFee
	if subtotal > FreeShippingThreshold {
		shipping = 0
	}

	return OrderBreakdown{
		Subtotal: subtotal,
		Tax:      tax,
		Shipping: shipping,
		Total:    roundCents(subtotal + tax + shipping),
	}
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
