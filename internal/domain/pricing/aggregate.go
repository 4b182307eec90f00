package pricing

import (
	"math"

	"dacsan/internal/domain/entity"
)

// Quote is a fully aggregated order price. It is a value, not a record: calling
// Aggregate twice with the same inputs yields an identical Quote, and nothing is
// persisted or mutated on the way.
type Quote struct {
	Subtotal      float64 `json:"subtotal"`
	ShippingFee   float64 `json:"shipping_fee"`
	Discount      float64 `json:"discount"`
	PointsApplied float64 `json:"points_applied"`
	TotalAmount   float64 `json:"total_amount"`
}

// Aggregate combines subtotal, shipping fee, an optional applicable voucher and a
// validated point redemption into the final total. This is the single place where
// amounts are rounded to the currency's minor unit, and the total is clamped so it
// can never go negative.
func Aggregate(subtotal, shippingFee float64, voucher *entity.Voucher, pointsApplied float64) Quote {
	subtotal = math.Round(subtotal)

	var discount float64
	if voucher != nil {
		discount = math.Round(voucher.DiscountFor(subtotal))
	}

	total := subtotal + shippingFee - discount - pointsApplied
	if total < 0 {
		total = 0
	}

	return Quote{
		Subtotal:      subtotal,
		ShippingFee:   shippingFee,
		Discount:      discount,
		PointsApplied: pointsApplied,
		TotalAmount:   total,
	}
}
