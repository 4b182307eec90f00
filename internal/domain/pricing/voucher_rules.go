package pricing

import (
	"fmt"
	"time"

	"dacsan/internal/domain/entity"
)

// Reason is the machine-readable outcome of a failed eligibility check.
type Reason string

const (
	ReasonInactive            Reason = "inactive"
	ReasonNotStarted          Reason = "not_started"
	ReasonExpired             Reason = "expired"
	ReasonMinPurchaseNotMet   Reason = "min_purchase_not_met"
	ReasonNotApplicableToCart Reason = "not_applicable_to_cart"
)

// Eligibility is the outcome of evaluating one voucher against one order context.
type Eligibility struct {
	Applicable bool   `json:"is_applicable"`
	Reason     Reason `json:"reason,omitempty"`
	Message    string `json:"message,omitempty"`
}

// VoucherContext is everything a voucher rule may look at. Rules are pure
// functions of (voucher, context); batch evaluation runs them independently per
// voucher with no shared state.
type VoucherContext struct {
	Subtotal float64
	Cart     *entity.PricedCart
	Now      time.Time
}

// voucherRule returns nil when the check passes, or the failing eligibility.
// Keeping the checks as an ordered list rather than nested conditionals makes
// the precedence testable in isolation and the UI messaging stable.
type voucherRule func(v *entity.Voucher, ctx VoucherContext) *Eligibility

var voucherRules = []voucherRule{
	ruleActive,
	ruleStarted,
	ruleNotExpired,
	ruleMinPurchase,
	ruleProductScope,
}

// EvaluateVoucher runs the eligibility rule chain in its fixed order,
// short-circuiting at the first failing check.
func EvaluateVoucher(v *entity.Voucher, ctx VoucherContext) Eligibility {
	for _, rule := range voucherRules {
		if outcome := rule(v, ctx); outcome != nil {
			return *outcome
		}
	}

	return Eligibility{Applicable: true}
}

func ruleActive(v *entity.Voucher, _ VoucherContext) *Eligibility {
	if v.IsActive {
		return nil
	}

	return &Eligibility{Reason: ReasonInactive, Message: "Mã giảm giá đã ngừng hoạt động"}
}

func ruleStarted(v *entity.Voucher, ctx VoucherContext) *Eligibility {
	if !ctx.Now.Before(v.StartDate) {
		return nil
	}

	return &Eligibility{
		Reason:  ReasonNotStarted,
		Message: fmt.Sprintf("Mã giảm giá có hiệu lực từ %s", v.StartDate.Format("02/01/2006")),
	}
}

func ruleNotExpired(v *entity.Voucher, ctx VoucherContext) *Eligibility {
	if !ctx.Now.After(v.EndDate) {
		return nil
	}

	return &Eligibility{Reason: ReasonExpired, Message: "Mã giảm giá đã hết hạn"}
}

func ruleMinPurchase(v *entity.Voucher, ctx VoucherContext) *Eligibility {
	if ctx.Subtotal >= v.MinPurchaseAmount {
		return nil
	}

	return &Eligibility{Reason: ReasonMinPurchaseNotMet, Message: "Đơn hàng chưa đạt giá trị tối thiểu"}
}

// ruleProductScope passes for general vouchers (no product list) and for
// vouchers whose product list intersects the products actually priced into the
// cart. Unresolved cart lines never count toward the intersection.
func ruleProductScope(v *entity.Voucher, ctx VoucherContext) *Eligibility {
	if v.IsGeneral() {
		return nil
	}
	if ctx.Cart != nil && ctx.Cart.ContainsAny(v.ApplicableProducts) {
		return nil
	}

	return &Eligibility{Reason: ReasonNotApplicableToCart, Message: "Mã giảm giá không áp dụng cho sản phẩm trong giỏ hàng"}
}
