// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"dacsan/internal/domain/entity"
	"dacsan/internal/domain/pricing"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// CheckoutInput is the shared shape of a checkout request: what is in the cart
// and which voucher, points and delivery method the customer selected.
type CheckoutInput struct {
	Items         []entity.CartItem `json:"items" validate:"required,min=1,dive"`
	VoucherCode   string            `json:"voucher_code,omitempty"`
	PointsToApply int64             `json:"points_to_apply,omitempty" validate:"min=0"`
	DeliveryType  string            `json:"delivery_type,omitempty"`
	DestProvince  string            `json:"dest_province,omitempty"`
}

// PlaceOrderInput is a checkout commit: the same selections as a preview plus
// the payment method and the full shipping address to freeze onto the order.
type PlaceOrderInput struct {
	CheckoutInput
	PaymentMethod   string                 `json:"payment_method" validate:"required"`
	ShippingAddress entity.ShippingAddress `json:"shipping_address" validate:"required"`
}

// --- Output DTOs ---

// PreviewOutput is a recomputable price breakdown. Nothing is reserved or
// persisted by a preview; two identical requests yield identical output.
type PreviewOutput struct {
	Lines      []entity.PricedLine       `json:"lines"`
	Unresolved []uuid.UUID               `json:"unresolved_products,omitempty"`
	Voucher    *entity.Voucher           `json:"voucher,omitempty"`
	Shipping   *pricing.ShippingDecision `json:"shipping,omitempty"`
	Quote      pricing.Quote             `json:"quote"`
}

// PlaceOrderOutput returns the committed order.
type PlaceOrderOutput struct {
	Order *entity.Order `json:"order"`
}

// CheckoutUsecase defines the pricing and commit operations of checkout.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type CheckoutUsecase interface {
	// PreviewOrder computes the full price breakdown for the given selections
	// against current data, with no side effects.
	PreviewOrder(ctx context.Context, userID uuid.UUID, input *CheckoutInput) (*PreviewOutput, error)

	// PlaceOrder re-validates the selections against current data and commits
	// the order atomically: stock decrements, voucher consumption, point debit
	// and order creation all succeed together or not at all.
	PlaceOrder(ctx context.Context, userID uuid.UUID, input *PlaceOrderInput) (*PlaceOrderOutput, error)

	// ListDeliveryMethods returns every configured delivery method together
	// with its eligibility for the given destination province.
	ListDeliveryMethods(ctx context.Context, destProvince string) ([]*pricing.ShippingDecision, error)
}
