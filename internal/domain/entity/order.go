package entity

import (
	"time"

	domainerrors "dacsan/internal/domain/errors"

	"github.com/google/uuid"
)

// OrderStatus is the coarse lifecycle state of an order.
type OrderStatus string

const (
	StatusPending      OrderStatus = "pending"
	StatusProcessing   OrderStatus = "processing"
	StatusShipping     OrderStatus = "shipping"
	StatusCompleted    OrderStatus = "completed"
	StatusCancelled    OrderStatus = "cancelled"
	StatusReturnRefund OrderStatus = "return_refund"
)

// OrderSubStatus is the finer-grained phase recorded in the timeline. Within
// "processing" it progresses placed-independent: confirmed -> preparing -> handed_over.
type OrderSubStatus string

const (
	SubStatusPlaced     OrderSubStatus = "placed"
	SubStatusConfirmed  OrderSubStatus = "confirmed"
	SubStatusPreparing  OrderSubStatus = "preparing"
	SubStatusHandedOver OrderSubStatus = "handed_over"
	SubStatusDelivering OrderSubStatus = "delivering"
	SubStatusDelivered  OrderSubStatus = "delivered"
	SubStatusCancelled  OrderSubStatus = "cancelled"
	SubStatusRefunded   OrderSubStatus = "refunded"
)

// TimelineEntry is one append-only record of an order's progression.
type TimelineEntry struct {
	SubStatus   OrderSubStatus `json:"sub_status"`
	Description string         `json:"description"`
	PerformedBy string         `json:"performed_by"` // "customer", "merchant" or "system".
	At          time.Time      `json:"at"`
}

// Payment settlement states.
const (
	PaymentStatusUnpaid   = "unpaid"
	PaymentStatusPaid     = "paid"
	PaymentStatusRefunded = "refunded"
)

// Payment holds the chosen payment method and its settlement status.
// Gateway integration lives outside the engine; only the contract is kept here.
type Payment struct {
	Method string `json:"method"` // e.g. "cod", "bank_transfer", "ewallet".
	Status string `json:"status"` // e.g. "unpaid", "paid", "refunded".
}

// ShippingAddress is the destination frozen onto the order at commit time.
type ShippingAddress struct {
	Recipient string `json:"recipient"`
	Phone     string `json:"phone"`
	Street    string `json:"street"`
	Ward      string `json:"ward"`
	District  string `json:"district"`
	Province  string `json:"province"`
}

// OrderLine is a cart line frozen into an order together with its product snapshot.
type OrderLine struct {
	ID        uuid.UUID       `json:"id"`
	Quantity  int             `json:"quantity"`
	LineTotal float64         `json:"line_total"`
	Snapshot  ProductSnapshot `json:"snapshot"`
}

// Order is the aggregate created by committing a validated preview. It is never
// deleted; terminal outcomes are soft states, and every mutation goes through the
// lifecycle methods below so that what the UI shows and what the engine enforces
// cannot drift apart.
type Order struct {
	ID                 uuid.UUID       `json:"id"`
	UserID             uuid.UUID       `json:"user_id"`
	Lines              []OrderLine     `json:"lines"`
	Subtotal           float64         `json:"subtotal"`
	ShippingFee        float64         `json:"shipping_fee"`
	Discount           float64         `json:"discount"`
	PointsApplied      float64         `json:"points_applied"`
	TotalAmount        float64         `json:"total_amount"`
	VoucherID          *uuid.UUID      `json:"voucher_id,omitempty"`
	DeliveryType       string          `json:"delivery_type"`
	Status             OrderStatus     `json:"status"`
	Timeline           []TimelineEntry `json:"timeline"`
	ShippingAddress    ShippingAddress `json:"shipping_address"`
	AddressChangeCount int             `json:"address_change_count"`
	Payment            Payment         `json:"payment"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`

	// Version is the optimistic concurrency token carried from storage.
	// Updates are conditional on it, so two racing lifecycle mutations cannot
	// both apply.
	Version int64 `json:"-"`
}

// LatestSubStatus returns the sub-status of the newest timeline entry.
func (o *Order) LatestSubStatus() OrderSubStatus {
	if len(o.Timeline) == 0 {
		return SubStatusPlaced
	}

	return o.Timeline[len(o.Timeline)-1].SubStatus
}

// AppendTimeline records a new progression entry.
func (o *Order) AppendTimeline(sub OrderSubStatus, description, performedBy string, at time.Time) {
	o.Timeline = append(o.Timeline, TimelineEntry{
		SubStatus:   sub,
		Description: description,
		PerformedBy: performedBy,
		At:          at,
	})
	o.UpdatedAt = at
}

// CanCancel reports whether cancellation is currently permitted: while pending, or
// while processing with the latest sub-status still confirmed or preparing. Once the
// parcel is handed over, or the order is shipping or later, the window is closed.
func (o *Order) CanCancel() bool {
	switch o.Status {
	case StatusPending:
		return true
	case StatusProcessing:
		sub := o.LatestSubStatus()

		return sub == SubStatusConfirmed || sub == SubStatusPreparing
	default:
		return false
	}
}

// Cancel transitions the order into the absorbing cancelled state.
func (o *Order) Cancel(performedBy string, at time.Time) error {
	if !o.CanCancel() {
		return domainerrors.ErrCancellationWindowClosed
	}

	o.Status = StatusCancelled
	o.AppendTimeline(SubStatusCancelled, "Đơn hàng đã được hủy", performedBy, at)

	return nil
}

// CanChangeAddress reports whether an address change is currently permitted:
// at most once per order, and only while the parcel has not started being packed
// for dispatch (the same window in which cancellation is still possible).
func (o *Order) CanChangeAddress() bool {
	if o.AddressChangeCount >= 1 {
		return false
	}

	return o.CanCancel()
}

// ChangeAddress replaces the shipping address and burns the single allowed change.
// A second attempt fails with the limit error regardless of the current status.
func (o *Order) ChangeAddress(addr ShippingAddress, at time.Time) error {
	if o.AddressChangeCount >= 1 {
		return domainerrors.ErrAddressChangeLimitExceeded
	}
	if !o.CanChangeAddress() {
		return domainerrors.ErrAddressChangeWindowClosed
	}

	o.ShippingAddress = addr
	o.AddressChangeCount++
	o.UpdatedAt = at

	return nil
}

// CanReview reports whether line items of this order are reviewable.
// Reviews open only once the order is completed.
func (o *Order) CanReview() bool {
	return o.Status == StatusCompleted
}

// fulfilmentPath is the only permitted forward progression of sub-statuses.
var fulfilmentPath = []OrderSubStatus{
	SubStatusPlaced,
	SubStatusConfirmed,
	SubStatusPreparing,
	SubStatusHandedOver,
	SubStatusDelivering,
	SubStatusDelivered,
}

// statusForSubStatus derives the coarse status implied by a fulfilment phase.
func statusForSubStatus(sub OrderSubStatus) OrderStatus {
	switch sub {
	case SubStatusPlaced:
		return StatusPending
	case SubStatusConfirmed, SubStatusPreparing:
		return StatusProcessing
	case SubStatusHandedOver, SubStatusDelivering:
		return StatusShipping
	case SubStatusDelivered:
		return StatusCompleted
	default:
		return StatusPending
	}
}

// Advance moves the order one step along the fulfilment path, appending the
// timeline entry and deriving the coarse status. Skipping phases, moving
// backwards or advancing a cancelled/refunded order is rejected.
func (o *Order) Advance(next OrderSubStatus, description, performedBy string, at time.Time) error {
	if o.Status == StatusCancelled || o.Status == StatusReturnRefund {
		return domainerrors.ErrConflict.WrapMessage("order is in a terminal state")
	}

	current := o.LatestSubStatus()
	for i, sub := range fulfilmentPath {
		if sub != current {
			continue
		}
		if i+1 >= len(fulfilmentPath) || fulfilmentPath[i+1] != next {
			return domainerrors.ErrConflict.WrapMessage("invalid fulfilment progression")
		}

		o.Status = statusForSubStatus(next)
		o.AppendTimeline(next, description, performedBy, at)

		return nil
	}

	return domainerrors.ErrConflict.WrapMessage("invalid fulfilment progression")
}
