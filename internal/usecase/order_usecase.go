package usecase

import (
	"context"

	"dacsan/internal/domain/entity"

	"github.com/google/uuid"
)

// OrderDetail is an order together with the actions currently available on it,
// so the storefront renders exactly what the engine would accept.
type OrderDetail struct {
	Order            *entity.Order `json:"order"`
	CanCancel        bool          `json:"can_cancel"`
	CanChangeAddress bool          `json:"can_change_address"`
	CanReview        bool          `json:"can_review"`
}

// AdvanceInput moves an order one step along the fulfilment path. This is the
// merchant/back-office side of the lifecycle.
type AdvanceInput struct {
	SubStatus   entity.OrderSubStatus `json:"sub_status" validate:"required"`
	Description string                `json:"description,omitempty"`
}

// OrderUsecase defines the post-checkout lifecycle operations on orders.
type OrderUsecase interface {
	// GetOrder retrieves one of the user's orders with its available actions.
	GetOrder(ctx context.Context, userID, orderID uuid.UUID) (*OrderDetail, error)

	// ListOrders retrieves the user's orders, newest first.
	ListOrders(ctx context.Context, userID uuid.UUID) ([]*OrderDetail, error)

	// RequestCancellation cancels the order if its window is still open:
	// while pending, or while processing before the parcel is handed over.
	RequestCancellation(ctx context.Context, userID, orderID uuid.UUID) (*OrderDetail, error)

	// RequestAddressChange replaces the shipping address, at most once per
	// order and only while the cancellation window is still open.
	RequestAddressChange(ctx context.Context, userID, orderID uuid.UUID, addr entity.ShippingAddress) (*OrderDetail, error)

	// Advance progresses the order's fulfilment sub-status on behalf of the
	// merchant, deriving the coarse status and appending the timeline entry.
	Advance(ctx context.Context, orderID uuid.UUID, input *AdvanceInput) (*OrderDetail, error)
}
