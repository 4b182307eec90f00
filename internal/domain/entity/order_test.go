package entity

import (
	"testing"
	"time"

	domainerrors "dacsan/internal/domain/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func placedOrder() *Order {
	order := &Order{
		ID:     uuid.New(),
		UserID: uuid.New(),
		Status: StatusPending,
		ShippingAddress: ShippingAddress{
			Recipient: "Nguyễn Văn A",
			Province:  "Hà Nội",
		},
	}
	order.AppendTimeline(SubStatusPlaced, "Đơn hàng đã được đặt", "customer", time.Now())

	return order
}

// advanceTo walks the order along the fulfilment path up to the target phase.
func advanceTo(t *testing.T, order *Order, target OrderSubStatus) {
	t.Helper()
	path := []OrderSubStatus{
		SubStatusConfirmed,
		SubStatusPreparing,
		SubStatusHandedOver,
		SubStatusDelivering,
		SubStatusDelivered,
	}
	for _, sub := range path {
		require.NoError(t, order.Advance(sub, "", "merchant", time.Now()))
		if sub == target {
			return
		}
	}
}

func TestOrderAdvance_FullPath(t *testing.T) {
	order := placedOrder()

	require.NoError(t, order.Advance(SubStatusConfirmed, "", "merchant", time.Now()))
	assert.Equal(t, StatusProcessing, order.Status)

	require.NoError(t, order.Advance(SubStatusPreparing, "", "merchant", time.Now()))
	assert.Equal(t, StatusProcessing, order.Status)

	require.NoError(t, order.Advance(SubStatusHandedOver, "", "merchant", time.Now()))
	assert.Equal(t, StatusShipping, order.Status)

	require.NoError(t, order.Advance(SubStatusDelivering, "", "merchant", time.Now()))
	assert.Equal(t, StatusShipping, order.Status)

	require.NoError(t, order.Advance(SubStatusDelivered, "", "merchant", time.Now()))
	assert.Equal(t, StatusCompleted, order.Status)
	assert.True(t, order.CanReview())

	assert.Len(t, order.Timeline, 6)
	assert.Equal(t, SubStatusDelivered, order.LatestSubStatus())
}

func TestOrderAdvance_RejectsSkippedPhase(t *testing.T) {
	order := placedOrder()

	err := order.Advance(SubStatusDelivering, "", "merchant", time.Now())
	assert.Error(t, err)
	assert.Equal(t, StatusPending, order.Status)
	assert.Len(t, order.Timeline, 1)
}

func TestOrderAdvance_RejectsBackwardMove(t *testing.T) {
	order := placedOrder()
	advanceTo(t, order, SubStatusPreparing)

	err := order.Advance(SubStatusConfirmed, "", "merchant", time.Now())
	assert.Error(t, err)
}

func TestOrderAdvance_RejectsCancelledOrder(t *testing.T) {
	order := placedOrder()
	require.NoError(t, order.Cancel("customer", time.Now()))

	err := order.Advance(SubStatusConfirmed, "", "merchant", time.Now())
	assert.Error(t, err)
	assert.Equal(t, StatusCancelled, order.Status)
}

func TestOrderCancel_WindowByPhase(t *testing.T) {
	tests := []struct {
		name     string
		target   OrderSubStatus
		cancelOK bool
	}{
		{"while confirmed", SubStatusConfirmed, true},
		{"while preparing", SubStatusPreparing, true},
		{"after handover", SubStatusHandedOver, false},
		{"while delivering", SubStatusDelivering, false},
		{"after delivery", SubStatusDelivered, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			order := placedOrder()
			advanceTo(t, order, tt.target)

			assert.Equal(t, tt.cancelOK, order.CanCancel())
			err := order.Cancel("customer", time.Now())
			if tt.cancelOK {
				require.NoError(t, err)
				assert.Equal(t, StatusCancelled, order.Status)
				assert.Equal(t, SubStatusCancelled, order.LatestSubStatus())
			} else {
				assert.ErrorIs(t, err, domainerrors.ErrCancellationWindowClosed)
			}
		})
	}
}

func TestOrderCancel_PendingOrder(t *testing.T) {
	order := placedOrder()

	require.NoError(t, order.Cancel("customer", time.Now()))
	assert.Equal(t, StatusCancelled, order.Status)

	// Cancellation is absorbing
	err := order.Cancel("customer", time.Now())
	assert.ErrorIs(t, err, domainerrors.ErrCancellationWindowClosed)
}

func TestOrderChangeAddress_OncePerOrder(t *testing.T) {
	order := placedOrder()
	newAddr := ShippingAddress{Recipient: "Trần Thị B", Province: "Đà Nẵng"}

	require.True(t, order.CanChangeAddress())
	require.NoError(t, order.ChangeAddress(newAddr, time.Now()))
	assert.Equal(t, newAddr, order.ShippingAddress)
	assert.Equal(t, 1, order.AddressChangeCount)

	err := order.ChangeAddress(ShippingAddress{Province: "Huế"}, time.Now())
	assert.ErrorIs(t, err, domainerrors.ErrAddressChangeLimitExceeded)
	assert.Equal(t, newAddr, order.ShippingAddress)
}

func TestOrderChangeAddress_WindowClosesWithHandover(t *testing.T) {
	order := placedOrder()
	advanceTo(t, order, SubStatusHandedOver)

	assert.False(t, order.CanChangeAddress())
	err := order.ChangeAddress(ShippingAddress{Province: "Huế"}, time.Now())
	assert.ErrorIs(t, err, domainerrors.ErrAddressChangeWindowClosed)
}

// The limit error wins over the window error: a second change on a shipped
// order reports the limit, which is the earlier violated constraint.
func TestOrderChangeAddress_LimitBeforeWindow(t *testing.T) {
	order := placedOrder()
	require.NoError(t, order.ChangeAddress(ShippingAddress{Province: "Huế"}, time.Now()))
	advanceTo(t, order, SubStatusDelivering)

	err := order.ChangeAddress(ShippingAddress{Province: "Hà Nội"}, time.Now())
	assert.ErrorIs(t, err, domainerrors.ErrAddressChangeLimitExceeded)
}

func TestOrderCanReview_OnlyWhenCompleted(t *testing.T) {
	order := placedOrder()
	assert.False(t, order.CanReview())

	advanceTo(t, order, SubStatusDelivered)
	assert.True(t, order.CanReview())
}
