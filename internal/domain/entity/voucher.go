package entity

import (
	"time"

	"github.com/google/uuid"
)

// DiscountType distinguishes percentage vouchers from fixed-amount vouchers.
type DiscountType string

const (
	// DiscountPercentage discounts a percentage of the order subtotal.
	DiscountPercentage DiscountType = "percentage"
	// DiscountFixed discounts a fixed currency amount.
	DiscountFixed DiscountType = "fixed"
)

// Voucher is a promotion that can be claimed into a user's wallet and redeemed
// against an order. A voucher with no ApplicableProducts applies to every product.
type Voucher struct {
	ID                 uuid.UUID    `json:"id"`
	Code               string       `json:"code"` // Unique, user-facing redemption code.
	Description        string       `json:"description"`
	DiscountType       DiscountType `json:"discount_type"`
	DiscountValue      float64      `json:"discount_value"`       // Percent for percentage type, amount for fixed type.
	MaxDiscountAmount  float64      `json:"max_discount_amount"`  // 0 means unbounded.
	MinPurchaseAmount  float64      `json:"min_purchase_amount"`  // Minimum order subtotal to qualify.
	StartDate          time.Time    `json:"start_date"`
	EndDate            time.Time    `json:"end_date"`
	IsActive           bool         `json:"is_active"`
	ApplicableProducts []uuid.UUID  `json:"applicable_products,omitempty"` // Empty or nil applies to all products.
	TotalSlots         int          `json:"total_slots"`                   // Finite claim capacity.
	ClaimedSlots       int          `json:"claimed_slots"`
	CreatedAt          time.Time    `json:"created_at"`
	UpdatedAt          time.Time    `json:"updated_at"`
}

// IsGeneral reports whether the voucher applies to all products.
func (v *Voucher) IsGeneral() bool {
	return len(v.ApplicableProducts) == 0
}

// HasFreeSlots reports whether the voucher can still be claimed.
func (v *Voucher) HasFreeSlots() bool {
	return v.ClaimedSlots < v.TotalSlots
}

// DiscountFor computes the discount amount this voucher grants against a subtotal,
// applying MaxDiscountAmount as a cap when it is set. The eligibility checks are
// a separate concern; callers must evaluate applicability first.
func (v *Voucher) DiscountFor(subtotal float64) float64 {
	var discount float64
	switch v.DiscountType {
	case DiscountPercentage:
		discount = subtotal * v.DiscountValue / 100
	case DiscountFixed:
		discount = v.DiscountValue
	}

	if v.MaxDiscountAmount > 0 && discount > v.MaxDiscountAmount {
		discount = v.MaxDiscountAmount
	}
	if discount > subtotal {
		discount = subtotal
	}

	return discount
}

// UserVoucher binds a user to a voucher they claimed. A voucher can be claimed at
// most once per user and consumed at most once. The referenced voucher may have been
// deleted since the claim; such dangling rows are treated as absent by the evaluator.
type UserVoucher struct {
	ID        uuid.UUID  `json:"id"`
	UserID    uuid.UUID  `json:"user_id"`
	VoucherID uuid.UUID  `json:"voucher_id"`
	IsUsed    bool       `json:"is_used"`
	OrderID   *uuid.UUID `json:"order_id,omitempty"` // Set once the voucher is consumed by an order.
	ClaimedAt time.Time  `json:"claimed_at"`
}
