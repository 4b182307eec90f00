package pricing

import (
	"testing"
	"time"

	"dacsan/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func activeVoucher(now time.Time) *entity.Voucher {
	return &entity.Voucher{
		ID:                uuid.New(),
		Code:              "TET50",
		DiscountType:      entity.DiscountPercentage,
		DiscountValue:     10,
		MinPurchaseAmount: 400000,
		StartDate:         now.Add(-24 * time.Hour),
		EndDate:           now.Add(24 * time.Hour),
		IsActive:          true,
		TotalSlots:        100,
	}
}

func cartWith(products ...uuid.UUID) *entity.PricedCart {
	cart := &entity.PricedCart{}
	for _, id := range products {
		cart.AddLine(entity.PricedLine{ProductID: id, Quantity: 1, LineTotal: 100000})
	}

	return cart
}

func TestEvaluateVoucher_Applicable(t *testing.T) {
	now := time.Now()
	voucher := activeVoucher(now)

	outcome := EvaluateVoucher(voucher, VoucherContext{Subtotal: 500000, Now: now})
	assert.True(t, outcome.Applicable)
	assert.Empty(t, outcome.Reason)
}

func TestEvaluateVoucher_Inactive(t *testing.T) {
	now := time.Now()
	voucher := activeVoucher(now)
	voucher.IsActive = false

	outcome := EvaluateVoucher(voucher, VoucherContext{Subtotal: 500000, Now: now})
	assert.False(t, outcome.Applicable)
	assert.Equal(t, ReasonInactive, outcome.Reason)
}

func TestEvaluateVoucher_NotStarted(t *testing.T) {
	now := time.Now()
	voucher := activeVoucher(now)
	voucher.StartDate = now.Add(time.Hour)

	outcome := EvaluateVoucher(voucher, VoucherContext{Subtotal: 500000, Now: now})
	assert.False(t, outcome.Applicable)
	assert.Equal(t, ReasonNotStarted, outcome.Reason)
}

func TestEvaluateVoucher_Expired(t *testing.T) {
	now := time.Now()
	voucher := activeVoucher(now)
	voucher.EndDate = now.Add(-time.Minute)

	outcome := EvaluateVoucher(voucher, VoucherContext{Subtotal: 500000, Now: now})
	assert.False(t, outcome.Applicable)
	assert.Equal(t, ReasonExpired, outcome.Reason)
}

func TestEvaluateVoucher_MinPurchaseNotMet(t *testing.T) {
	now := time.Now()
	voucher := activeVoucher(now)

	// 380,000 against a 400,000 floor
	outcome := EvaluateVoucher(voucher, VoucherContext{Subtotal: 380000, Now: now})
	assert.False(t, outcome.Applicable)
	assert.Equal(t, ReasonMinPurchaseNotMet, outcome.Reason)
}

func TestEvaluateVoucher_MinPurchaseBoundaryPasses(t *testing.T) {
	now := time.Now()
	voucher := activeVoucher(now)

	outcome := EvaluateVoucher(voucher, VoucherContext{Subtotal: 400000, Now: now})
	assert.True(t, outcome.Applicable)
}

func TestEvaluateVoucher_GeneralVoucherIgnoresCartScope(t *testing.T) {
	now := time.Now()
	voucher := activeVoucher(now)
	voucher.ApplicableProducts = nil

	outcome := EvaluateVoucher(voucher, VoucherContext{
		Subtotal: 500000,
		Cart:     cartWith(uuid.New()),
		Now:      now,
	})
	assert.True(t, outcome.Applicable)
}

func TestEvaluateVoucher_ScopedVoucherRequiresIntersection(t *testing.T) {
	now := time.Now()
	inCart := uuid.New()
	scoped := uuid.New()

	voucher := activeVoucher(now)
	voucher.ApplicableProducts = []uuid.UUID{scoped}

	outcome := EvaluateVoucher(voucher, VoucherContext{
		Subtotal: 500000,
		Cart:     cartWith(inCart),
		Now:      now,
	})
	assert.False(t, outcome.Applicable)
	assert.Equal(t, ReasonNotApplicableToCart, outcome.Reason)

	voucher.ApplicableProducts = []uuid.UUID{scoped, inCart}
	outcome = EvaluateVoucher(voucher, VoucherContext{
		Subtotal: 500000,
		Cart:     cartWith(inCart),
		Now:      now,
	})
	assert.True(t, outcome.Applicable)
}

func TestEvaluateVoucher_ScopedVoucherWithoutCartFails(t *testing.T) {
	now := time.Now()
	voucher := activeVoucher(now)
	voucher.ApplicableProducts = []uuid.UUID{uuid.New()}

	outcome := EvaluateVoucher(voucher, VoucherContext{Subtotal: 500000, Now: now})
	assert.False(t, outcome.Applicable)
	assert.Equal(t, ReasonNotApplicableToCart, outcome.Reason)
}

// The rule chain short-circuits in its declared order, so an inactive voucher
// that would also miss the purchase floor reports inactive, not the floor.
func TestEvaluateVoucher_RulePrecedence(t *testing.T) {
	now := time.Now()
	voucher := activeVoucher(now)
	voucher.IsActive = false
	voucher.EndDate = now.Add(-time.Hour)

	outcome := EvaluateVoucher(voucher, VoucherContext{Subtotal: 0, Now: now})
	assert.Equal(t, ReasonInactive, outcome.Reason)
}

func TestVoucherDiscountFor_PercentageWithCap(t *testing.T) {
	voucher := &entity.Voucher{
		DiscountType:      entity.DiscountPercentage,
		DiscountValue:     20,
		MaxDiscountAmount: 50000,
	}

	assert.InDelta(t, 40000, voucher.DiscountFor(200000), 1e-9)
	assert.InDelta(t, 50000, voucher.DiscountFor(500000), 1e-9) // capped
}

func TestVoucherDiscountFor_FixedClampedToSubtotal(t *testing.T) {
	voucher := &entity.Voucher{
		DiscountType:  entity.DiscountFixed,
		DiscountValue: 30000,
	}

	assert.InDelta(t, 30000, voucher.DiscountFor(100000), 1e-9)
	assert.InDelta(t, 20000, voucher.DiscountFor(20000), 1e-9) // never exceeds subtotal
}
