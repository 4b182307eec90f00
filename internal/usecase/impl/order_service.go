package impl

import (
	"context"
	"log/slog"

	deliverycontext "dacsan/internal/delivery/context"
	"dacsan/internal/domain/constants"
	"dacsan/internal/domain/entity"
	domainerrors "dacsan/internal/domain/errors"
	"dacsan/internal/domain/repository"
	"dacsan/internal/domain/service"
	"dacsan/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// orderService implements the OrderUsecase interface.
type orderService struct {
	orderRepo repository.OrderRepository
	publisher service.EventPublisher
	clock     service.Clock
	logger    *slog.Logger
}

// OrderServiceParams holds dependencies for OrderService, injected by Fx.
type OrderServiceParams struct {
	fx.In

	OrderRepo repository.OrderRepository
	Publisher service.EventPublisher
	Clock     service.Clock
	Logger    *slog.Logger
}

// NewOrderService is the constructor for orderService.
func NewOrderService(params OrderServiceParams) usecase.OrderUsecase {
	return &orderService{
		orderRepo: params.OrderRepo,
		publisher: params.Publisher,
		clock:     params.Clock,
		logger:    params.Logger,
	}
}

func (srv *orderService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// advanceDescriptions are the default timeline texts per fulfilment phase.
var advanceDescriptions = map[entity.OrderSubStatus]string{
	entity.SubStatusConfirmed:  "Đơn hàng đã được xác nhận",
	entity.SubStatusPreparing:  "Người bán đang chuẩn bị hàng",
	entity.SubStatusHandedOver: "Đơn hàng đã bàn giao cho đơn vị vận chuyển",
	entity.SubStatusDelivering: "Đơn hàng đang được giao",
	entity.SubStatusDelivered:  "Đơn hàng đã giao thành công",
}

// GetOrder retrieves one of the user's orders with its available actions.
func (srv *orderService) GetOrder(ctx context.Context, userID, orderID uuid.UUID) (*usecase.OrderDetail, error) {
	order, err := srv.findOwned(ctx, userID, orderID)
	if err != nil {
		return nil, err
	}

	return detailOf(order), nil
}

// ListOrders retrieves the user's orders, newest first.
func (srv *orderService) ListOrders(ctx context.Context, userID uuid.UUID) ([]*usecase.OrderDetail, error) {
	orders, err := srv.orderRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list orders")
	}

	details := make([]*usecase.OrderDetail, 0, len(orders))
	for _, order := range orders {
		details = append(details, detailOf(order))
	}

	return details, nil
}

// RequestCancellation cancels the order if its window is still open. The order
// is never deleted; cancellation is an absorbing state.
func (srv *orderService) RequestCancellation(ctx context.Context, userID, orderID uuid.UUID) (*usecase.OrderDetail, error) {
	order, err := srv.findOwned(ctx, userID, orderID)
	if err != nil {
		return nil, err
	}

	if err := order.Cancel(constants.ActorCustomer, srv.clock.Now()); err != nil {
		return nil, err
	}

	if err := srv.update(ctx, order); err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Order cancelled",
		slog.String("order_id", order.ID.String()),
		slog.String("user_id", userID.String()))
	publishOrderEvent(ctx, srv.publisher, srv.log(ctx), service.OrderEventCancelled, order)

	return detailOf(order), nil
}

// RequestAddressChange replaces the shipping address, at most once per order
// and only while the cancellation window is still open.
func (srv *orderService) RequestAddressChange(ctx context.Context, userID, orderID uuid.UUID, addr entity.ShippingAddress) (*usecase.OrderDetail, error) {
	order, err := srv.findOwned(ctx, userID, orderID)
	if err != nil {
		return nil, err
	}

	if err := order.ChangeAddress(addr, srv.clock.Now()); err != nil {
		return nil, err
	}

	if err := srv.update(ctx, order); err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Order address changed", slog.String("order_id", order.ID.String()))

	return detailOf(order), nil
}

// Advance progresses the order's fulfilment sub-status on behalf of the merchant.
func (srv *orderService) Advance(ctx context.Context, orderID uuid.UUID, input *usecase.AdvanceInput) (*usecase.OrderDetail, error) {
	order, err := srv.findByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	description := input.Description
	if description == "" {
		description = advanceDescriptions[input.SubStatus]
	}

	if err := order.Advance(input.SubStatus, description, constants.ActorMerchant, srv.clock.Now()); err != nil {
		return nil, err
	}

	if err := srv.update(ctx, order); err != nil {
		return nil, err
	}

	publishOrderEvent(ctx, srv.publisher, srv.log(ctx), service.OrderEventProgress, order)

	return detailOf(order), nil
}

func (srv *orderService) findByID(ctx context.Context, orderID uuid.UUID) (*entity.Order, error) {
	order, err := srv.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, domainerrors.ErrOrderNotFound
		}

		return nil, errors.Wrap(err, "failed to find order")
	}

	return order, nil
}

// findOwned loads an order and verifies ownership. Another user's order is
// reported as not found rather than forbidden to avoid leaking its existence.
func (srv *orderService) findOwned(ctx context.Context, userID, orderID uuid.UUID) (*entity.Order, error) {
	order, err := srv.findByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, domainerrors.ErrOrderNotFound
	}

	return order, nil
}

func (srv *orderService) update(ctx context.Context, order *entity.Order) error {
	if err := srv.orderRepo.Update(ctx, order); err != nil {
		if errors.Is(err, repository.ErrStaleOrder) {
			return domainerrors.ErrConflict.WrapMessage("order was modified concurrently")
		}

		return errors.Wrap(err, "failed to update order")
	}

	return nil
}

func detailOf(order *entity.Order) *usecase.OrderDetail {
	return &usecase.OrderDetail{
		Order:            order,
		CanCancel:        order.CanCancel(),
		CanChangeAddress: order.CanChangeAddress(),
		CanReview:        order.CanReview(),
	}
}
