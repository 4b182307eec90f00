package impl

import (
	"context"
	"testing"
	"time"

	"dacsan/internal/domain/entity"
	domainerrors "dacsan/internal/domain/errors"
	"dacsan/internal/domain/repository"
	"dacsan/internal/domain/service"
	"dacsan/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type orderFixture struct {
	orderRepo *mockOrderRepo
	publisher *mockPublisher
	now       time.Time
	service   usecase.OrderUsecase
}

func newOrderFixture(t *testing.T) *orderFixture {
	t.Helper()

	f := &orderFixture{
		orderRepo: &mockOrderRepo{},
		publisher: &mockPublisher{},
		now:       time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC),
	}
	f.service = NewOrderService(OrderServiceParams{
		OrderRepo: f.orderRepo,
		Publisher: f.publisher,
		Clock:     fixedClock{now: f.now},
		Logger:    newDiscardLogger(),
	})

	return f
}

func (f *orderFixture) pendingOrder(userID uuid.UUID) *entity.Order {
	order := &entity.Order{
		ID:     uuid.New(),
		UserID: userID,
		Status: entity.StatusPending,
		ShippingAddress: entity.ShippingAddress{
			Recipient: "Nguyễn Văn A",
			Province:  "Hà Nội",
		},
	}
	order.AppendTimeline(entity.SubStatusPlaced, "Đơn hàng đã được đặt", "customer", f.now.Add(-time.Hour))

	return order
}

func TestOrderService_GetOrder_ReportsAvailableActions(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()
	userID := uuid.New()

	order := f.pendingOrder(userID)
	f.orderRepo.On("FindByID", ctx, order.ID).Return(order, nil)

	detail, err := f.service.GetOrder(ctx, userID, order.ID)
	require.NoError(t, err)
	assert.Equal(t, order, detail.Order)
	assert.True(t, detail.CanCancel)
	assert.True(t, detail.CanChangeAddress)
	assert.False(t, detail.CanReview)
}

func TestOrderService_GetOrder_HidesOtherUsersOrder(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()

	order := f.pendingOrder(uuid.New())
	f.orderRepo.On("FindByID", ctx, order.ID).Return(order, nil)

	_, err := f.service.GetOrder(ctx, uuid.New(), order.ID)
	assert.ErrorIs(t, err, domainerrors.ErrOrderNotFound)
}

func TestOrderService_GetOrder_NotFound(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()
	orderID := uuid.New()

	f.orderRepo.On("FindByID", ctx, orderID).Return(nil, repository.ErrOrderNotFound)

	_, err := f.service.GetOrder(ctx, uuid.New(), orderID)
	assert.ErrorIs(t, err, domainerrors.ErrOrderNotFound)
}

func TestOrderService_ListOrders(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()
	userID := uuid.New()

	first := f.pendingOrder(userID)
	second := f.pendingOrder(userID)
	f.orderRepo.On("ListByUser", ctx, userID).Return([]*entity.Order{first, second}, nil)

	details, err := f.service.ListOrders(ctx, userID)
	require.NoError(t, err)
	require.Len(t, details, 2)
	assert.Equal(t, first, details[0].Order)
	assert.Equal(t, second, details[1].Order)
}

func TestOrderService_RequestCancellation_CancelsAndPublishes(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()
	userID := uuid.New()

	order := f.pendingOrder(userID)
	f.orderRepo.On("FindByID", ctx, order.ID).Return(order, nil)
	f.orderRepo.On("Update", ctx, order).Return(nil)

	var published *service.OrderEvent
	f.publisher.On("PublishOrderEvent", ctx, mock.AnythingOfType("*service.OrderEvent")).
		Run(func(args mock.Arguments) {
			published = args.Get(1).(*service.OrderEvent)
		}).
		Return(nil)

	detail, err := f.service.RequestCancellation(ctx, userID, order.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusCancelled, detail.Order.Status)
	assert.False(t, detail.CanCancel)

	require.NotNil(t, published)
	assert.Equal(t, service.OrderEventCancelled, published.Type)
	assert.Equal(t, order.ID.String(), published.OrderID)
	assert.Equal(t, string(entity.StatusCancelled), published.Status)
}

func TestOrderService_RequestCancellation_WindowClosed(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()
	userID := uuid.New()

	order := f.pendingOrder(userID)
	require.NoError(t, order.Advance(entity.SubStatusConfirmed, "", "merchant", f.now))
	require.NoError(t, order.Advance(entity.SubStatusPreparing, "", "merchant", f.now))
	require.NoError(t, order.Advance(entity.SubStatusHandedOver, "", "merchant", f.now))
	f.orderRepo.On("FindByID", ctx, order.ID).Return(order, nil)

	_, err := f.service.RequestCancellation(ctx, userID, order.ID)
	assert.ErrorIs(t, err, domainerrors.ErrCancellationWindowClosed)

	f.orderRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	f.publisher.AssertNotCalled(t, "PublishOrderEvent", mock.Anything, mock.Anything)
}

func TestOrderService_RequestAddressChange(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()
	userID := uuid.New()

	order := f.pendingOrder(userID)
	f.orderRepo.On("FindByID", ctx, order.ID).Return(order, nil)
	f.orderRepo.On("Update", ctx, order).Return(nil)

	newAddr := entity.ShippingAddress{Recipient: "Trần Thị B", Province: "Đà Nẵng"}
	detail, err := f.service.RequestAddressChange(ctx, userID, order.ID, newAddr)
	require.NoError(t, err)
	assert.Equal(t, newAddr, detail.Order.ShippingAddress)
	assert.False(t, detail.CanChangeAddress)
}

func TestOrderService_RequestAddressChange_SecondChangeRejected(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()
	userID := uuid.New()

	order := f.pendingOrder(userID)
	require.NoError(t, order.ChangeAddress(entity.ShippingAddress{Province: "Huế"}, f.now))
	f.orderRepo.On("FindByID", ctx, order.ID).Return(order, nil)

	_, err := f.service.RequestAddressChange(ctx, userID, order.ID, entity.ShippingAddress{Province: "Hà Nội"})
	assert.ErrorIs(t, err, domainerrors.ErrAddressChangeLimitExceeded)
	f.orderRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestOrderService_Advance_UsesDefaultDescription(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()

	order := f.pendingOrder(uuid.New())
	f.orderRepo.On("FindByID", ctx, order.ID).Return(order, nil)
	f.orderRepo.On("Update", ctx, order).Return(nil)

	var published *service.OrderEvent
	f.publisher.On("PublishOrderEvent", ctx, mock.AnythingOfType("*service.OrderEvent")).
		Run(func(args mock.Arguments) {
			published = args.Get(1).(*service.OrderEvent)
		}).
		Return(nil)

	detail, err := f.service.Advance(ctx, order.ID, &usecase.AdvanceInput{SubStatus: entity.SubStatusConfirmed})
	require.NoError(t, err)
	assert.Equal(t, entity.StatusProcessing, detail.Order.Status)

	last := detail.Order.Timeline[len(detail.Order.Timeline)-1]
	assert.Equal(t, entity.SubStatusConfirmed, last.SubStatus)
	assert.Equal(t, "Đơn hàng đã được xác nhận", last.Description)

	require.NotNil(t, published)
	assert.Equal(t, service.OrderEventProgress, published.Type)
	assert.Equal(t, string(entity.SubStatusConfirmed), published.SubStatus)
}

func TestOrderService_Advance_KeepsCallerDescription(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()

	order := f.pendingOrder(uuid.New())
	f.orderRepo.On("FindByID", ctx, order.ID).Return(order, nil)
	f.orderRepo.On("Update", ctx, order).Return(nil)
	f.publisher.On("PublishOrderEvent", ctx, mock.AnythingOfType("*service.OrderEvent")).Return(nil)

	detail, err := f.service.Advance(ctx, order.ID, &usecase.AdvanceInput{
		SubStatus:   entity.SubStatusConfirmed,
		Description: "Shop đã xác nhận, chuẩn bị hàng trong ngày",
	})
	require.NoError(t, err)

	last := detail.Order.Timeline[len(detail.Order.Timeline)-1]
	assert.Equal(t, "Shop đã xác nhận, chuẩn bị hàng trong ngày", last.Description)
}

func TestOrderService_Advance_RejectsIllegalTransition(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()

	order := f.pendingOrder(uuid.New())
	f.orderRepo.On("FindByID", ctx, order.ID).Return(order, nil)

	_, err := f.service.Advance(ctx, order.ID, &usecase.AdvanceInput{SubStatus: entity.SubStatusDelivered})
	assert.Error(t, err)
	f.orderRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestOrderService_Advance_StaleOrderConflict(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()

	order := f.pendingOrder(uuid.New())
	f.orderRepo.On("FindByID", ctx, order.ID).Return(order, nil)
	f.orderRepo.On("Update", ctx, order).Return(repository.ErrStaleOrder)

	_, err := f.service.Advance(ctx, order.ID, &usecase.AdvanceInput{SubStatus: entity.SubStatusConfirmed})
	assert.ErrorIs(t, err, domainerrors.ErrConflict)
	f.publisher.AssertNotCalled(t, "PublishOrderEvent", mock.Anything, mock.Anything)
}
