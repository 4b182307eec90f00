package pricing

import (
	"math"

	domainerrors "dacsan/internal/domain/errors"
)

// PointsPolicy holds the configurable loyalty redemption rules. The point-to-currency
// ratio is product configuration, not hard-coded logic.
type PointsPolicy struct {
	// ValueRatio is the currency value of one point (1.0 means 1 point = 1 dong).
	ValueRatio float64
	// MaxSubtotalRatio caps redemption at this fraction of the order subtotal.
	MaxSubtotalRatio float64
}

// Cap returns the maximum points redeemable against a subtotal:
// floor(min(spendable balance, subtotal x MaxSubtotalRatio / ValueRatio)).
func (p PointsPolicy) Cap(spendable int64, subtotal float64) int64 {
	bySubtotal := int64(math.Floor(subtotal * p.MaxSubtotalRatio / p.ValueRatio))
	if spendable < bySubtotal {
		return spendable
	}

	return bySubtotal
}

// Value converts a point amount into its currency value.
func (p PointsPolicy) Value(points int64) float64 {
	return float64(points) * p.ValueRatio
}

// ValidateRedemption checks a requested redemption against the cap and against
// expiry. spendable is the unexpired balance; lifetime additionally includes
// expired-but-unspent grants, which distinguishes "you are over the limit" from
// "those points have expired".
func (p PointsPolicy) ValidateRedemption(requested, spendable, lifetime int64, subtotal float64) error {
	if requested < 0 {
		return domainerrors.ErrPointsExceedLimit.WrapMessage("requested points must not be negative")
	}
	if requested == 0 {
		return nil
	}
	if requested > spendable && requested <= lifetime {
		return domainerrors.ErrPointsExpired
	}
	if requested > p.Cap(spendable, subtotal) {
		return domainerrors.ErrPointsExceedLimit
	}

	return nil
}
