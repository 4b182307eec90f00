// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"time"

	"dacsan/config"
	deliverycontext "dacsan/internal/delivery/context"
	"dacsan/internal/domain/constants"
	"dacsan/internal/domain/entity"
	domainerrors "dacsan/internal/domain/errors"
	"dacsan/internal/domain/pricing"
	"dacsan/internal/domain/repository"
	"dacsan/internal/domain/service"
	"dacsan/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// checkoutService implements the CheckoutUsecase interface.
type checkoutService struct {
	txManager    repository.TransactionManager
	catalogRepo  repository.CatalogRepository
	voucherRepo  repository.VoucherRepository
	loyaltyRepo  repository.LoyaltyRepository
	deliveryRepo repository.DeliveryMethodRepository
	publisher    service.EventPublisher
	clock        service.Clock
	regions      *pricing.RegionIndex
	points       pricing.PointsPolicy
	logger       *slog.Logger
}

// CheckoutServiceParams holds dependencies for CheckoutService, injected by Fx.
type CheckoutServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	CatalogRepo  repository.CatalogRepository
	VoucherRepo  repository.VoucherRepository
	LoyaltyRepo  repository.LoyaltyRepository
	DeliveryRepo repository.DeliveryMethodRepository
	Publisher    service.EventPublisher
	Clock        service.Clock
	Regions      *pricing.RegionIndex
	Config       *config.Config
	Logger       *slog.Logger
}

// NewCheckoutService is the constructor for checkoutService. It receives all dependencies as interfaces.
func NewCheckoutService(params CheckoutServiceParams) usecase.CheckoutUsecase {
	points := pricing.PointsPolicy{ValueRatio: 1, MaxSubtotalRatio: 0.5}
	if params.Config != nil && params.Config.Pricing != nil {
		points = pricing.PointsPolicy{
			ValueRatio:       params.Config.Pricing.PointsValueRatio,
			MaxSubtotalRatio: params.Config.Pricing.MaxPointsSubtotalRatio,
		}
	}

	return &checkoutService{
		txManager:    params.TxManager,
		catalogRepo:  params.CatalogRepo,
		voucherRepo:  params.VoucherRepo,
		loyaltyRepo:  params.LoyaltyRepo,
		deliveryRepo: params.DeliveryRepo,
		publisher:    params.Publisher,
		clock:        params.Clock,
		regions:      params.Regions,
		points:       points,
		logger:       params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *checkoutService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// checkoutComputation is the fully validated outcome of one evaluation pass:
// the priced cart, the resolved selections and the aggregated quote.
type checkoutComputation struct {
	cart        *entity.PricedCart
	voucher     *entity.Voucher
	userVoucher *entity.UserVoucher
	shipping    *pricing.ShippingDecision
	quote       pricing.Quote
}

// evaluate prices the cart and validates the voucher, point and delivery
// selections against current data. Preview and commit run the exact same pass;
// the commit additionally runs it against transaction-bound repositories and
// follows it with the conditional updates.
func (srv *checkoutService) evaluate(
	ctx context.Context,
	userID uuid.UUID,
	input *usecase.CheckoutInput,
	catalogRepo repository.CatalogRepository,
	voucherRepo repository.VoucherRepository,
	loyaltyRepo repository.LoyaltyRepository,
	requireDelivery bool,
) (*checkoutComputation, error) {
	now := srv.clock.Now()

	cart, err := pricing.PriceCart(ctx, catalogRepo, input.Items)
	if err != nil {
		return nil, err
	}

	comp := &checkoutComputation{cart: cart}

	if input.VoucherCode != "" {
		voucher, userVoucher, err := srv.resolveVoucher(ctx, userID, input.VoucherCode, cart, now, voucherRepo)
		if err != nil {
			return nil, err
		}
		comp.voucher = voucher
		comp.userVoucher = userVoucher
	}

	if input.PointsToApply != 0 {
		if err := srv.validatePoints(ctx, userID, input.PointsToApply, cart.Subtotal, now, loyaltyRepo); err != nil {
			return nil, err
		}
	}

	switch {
	case input.DeliveryType != "":
		decision, err := srv.resolveDelivery(ctx, input.DeliveryType, input.DestProvince)
		if err != nil {
			return nil, err
		}
		comp.shipping = decision
	case requireDelivery:
		return nil, domainerrors.ErrValidationFailed.WrapMessage("delivery type is required")
	}

	var fee float64
	if comp.shipping != nil {
		fee = comp.shipping.Fee
	}
	comp.quote = pricing.Aggregate(cart.Subtotal, fee, comp.voucher, srv.points.Value(input.PointsToApply))

	return comp, nil
}

// resolveVoucher loads the voucher, verifies the caller holds an unused claim on
// it and evaluates eligibility against the priced cart.
func (srv *checkoutService) resolveVoucher(
	ctx context.Context,
	userID uuid.UUID,
	code string,
	cart *entity.PricedCart,
	now time.Time,
	voucherRepo repository.VoucherRepository,
) (*entity.Voucher, *entity.UserVoucher, error) {
	voucher, err := voucherRepo.FindByCode(ctx, code)
	if err != nil {
		if errors.Is(err, repository.ErrVoucherNotFound) {
			return nil, nil, domainerrors.ErrVoucherNotFound
		}

		return nil, nil, errors.Wrap(err, "failed to find voucher by code")
	}

	userVoucher, err := voucherRepo.FindUserVoucher(ctx, userID, voucher.ID)
	if err != nil {
		if errors.Is(err, repository.ErrUserVoucherNotFound) {
			return nil, nil, domainerrors.ErrVoucherNotClaimed
		}

		return nil, nil, errors.Wrap(err, "failed to find user voucher")
	}
	if userVoucher.IsUsed {
		return nil, nil, domainerrors.ErrVoucherAlreadyUsed
	}

	eligibility := pricing.EvaluateVoucher(voucher, pricing.VoucherContext{
		Subtotal: cart.Subtotal,
		Cart:     cart,
		Now:      now,
	})
	if !eligibility.Applicable {
		return nil, nil, domainerrors.NewVoucherNotApplicableError(string(eligibility.Reason))
	}

	return voucher, userVoucher, nil
}

// validatePoints checks the requested redemption against the user's spendable
// balance and the configured cap.
func (srv *checkoutService) validatePoints(
	ctx context.Context,
	userID uuid.UUID,
	requested int64,
	subtotal float64,
	now time.Time,
	loyaltyRepo repository.LoyaltyRepository,
) error {
	grants, err := loyaltyRepo.ListGrants(ctx, userID)
	if err != nil {
		return errors.Wrap(err, "failed to list point grants")
	}

	spendable := entity.SpendableBalance(grants, now)
	var lifetime int64
	for _, grant := range grants {
		lifetime += grant.Remaining
	}

	return srv.points.ValidateRedemption(requested, spendable, lifetime, subtotal)
}

// resolveDelivery loads the selected delivery method and rejects it when it is
// suspended or region-gated away from the destination.
func (srv *checkoutService) resolveDelivery(ctx context.Context, deliveryType, destProvince string) (*pricing.ShippingDecision, error) {
	method, err := srv.deliveryRepo.FindByType(ctx, deliveryType)
	if err != nil {
		if errors.Is(err, repository.ErrDeliveryMethodNotFound) {
			return nil, domainerrors.ErrNotFound.WrapMessage("delivery method not found")
		}

		return nil, errors.Wrap(err, "failed to find delivery method")
	}

	decision := pricing.ResolveShipping(method, destProvince, srv.regions)
	if !decision.Eligible {
		return nil, domainerrors.ErrShippingIneligible.WithDetails(decision.Reason)
	}

	return &decision, nil
}

// PreviewOrder computes the full price breakdown with no side effects.
func (srv *checkoutService) PreviewOrder(ctx context.Context, userID uuid.UUID, input *usecase.CheckoutInput) (*usecase.PreviewOutput, error) {
	comp, err := srv.evaluate(ctx, userID, input, srv.catalogRepo, srv.voucherRepo, srv.loyaltyRepo, false)
	if err != nil {
		return nil, err
	}

	return &usecase.PreviewOutput{
		Lines:      comp.cart.Lines,
		Unresolved: comp.cart.Unresolved,
		Voucher:    comp.voucher,
		Shipping:   comp.shipping,
		Quote:      comp.quote,
	}, nil
}

// PlaceOrder re-validates the selections inside one transaction and commits the
// order. Every resource consumption is a conditional update, so two checkouts
// racing for the last unit, the same voucher or the same points cannot both win;
// the loser's transaction rolls back entirely.
func (srv *checkoutService) PlaceOrder(ctx context.Context, userID uuid.UUID, input *usecase.PlaceOrderInput) (*usecase.PlaceOrderOutput, error) {
	input.DestProvince = input.ShippingAddress.Province

	var order *entity.Order
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		catalogRepo := repoFactory.NewCatalogRepository()
		voucherRepo := repoFactory.NewVoucherRepository()
		loyaltyRepo := repoFactory.NewLoyaltyRepository()
		orderRepo := repoFactory.NewOrderRepository()

		comp, err := srv.evaluate(ctx, userID, &input.CheckoutInput, catalogRepo, voucherRepo, loyaltyRepo, true)
		if err != nil {
			return err
		}
		if len(comp.cart.Lines) == 0 {
			return domainerrors.ErrInvalidCart.WrapMessage("no purchasable items in cart")
		}

		now := srv.clock.Now()
		orderID := uuid.New()

		lines := make([]entity.OrderLine, 0, len(comp.cart.Lines))
		for _, line := range comp.cart.Lines {
			if err := catalogRepo.DecrementStock(ctx, line.ProductID, line.Quantity); err != nil {
				if errors.Is(err, repository.ErrInsufficientStock) {
					return domainerrors.ErrProductOutOfStock.WithDetails(line.Name)
				}

				return errors.Wrap(err, "failed to decrement stock")
			}

			lines = append(lines, entity.OrderLine{
				ID:        uuid.New(),
				Quantity:  line.Quantity,
				LineTotal: line.LineTotal,
				Snapshot:  *line.Snapshot,
			})
		}

		if comp.userVoucher != nil {
			if err := voucherRepo.MarkUsed(ctx, comp.userVoucher.ID, orderID); err != nil {
				if errors.Is(err, repository.ErrAlreadyUsed) {
					return domainerrors.ErrVoucherAlreadyUsed
				}

				return errors.Wrap(err, "failed to mark voucher used")
			}
		}

		if input.PointsToApply > 0 {
			if err := loyaltyRepo.Debit(ctx, userID, input.PointsToApply, now); err != nil {
				if errors.Is(err, repository.ErrInsufficientPoints) {
					return domainerrors.ErrCommitConflict.WithDetails("loyalty balance changed")
				}

				return errors.Wrap(err, "failed to debit points")
			}
		}

		var voucherID *uuid.UUID
		if comp.voucher != nil {
			id := comp.voucher.ID
			voucherID = &id
		}

		order = &entity.Order{
			ID:              orderID,
			UserID:          userID,
			Lines:           lines,
			Subtotal:        comp.quote.Subtotal,
			ShippingFee:     comp.quote.ShippingFee,
			Discount:        comp.quote.Discount,
			PointsApplied:   comp.quote.PointsApplied,
			TotalAmount:     comp.quote.TotalAmount,
			VoucherID:       voucherID,
			DeliveryType:    input.DeliveryType,
			Status:          entity.StatusPending,
			ShippingAddress: input.ShippingAddress,
			Payment:         entity.Payment{Method: input.PaymentMethod, Status: entity.PaymentStatusUnpaid},
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		order.AppendTimeline(entity.SubStatusPlaced, "Đơn hàng đã được đặt", constants.ActorCustomer, now)

		if err := orderRepo.Create(ctx, order); err != nil {
			return errors.Wrap(err, "failed to create order")
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Order placed",
		slog.String("order_id", order.ID.String()),
		slog.String("user_id", userID.String()),
		slog.Float64("total_amount", order.TotalAmount))
	publishOrderEvent(ctx, srv.publisher, srv.log(ctx), service.OrderEventCreated, order)

	return &usecase.PlaceOrderOutput{Order: order}, nil
}

// ListDeliveryMethods resolves every configured method against the destination.
// Ineligible methods are listed with their reason rather than hidden.
func (srv *checkoutService) ListDeliveryMethods(ctx context.Context, destProvince string) ([]*pricing.ShippingDecision, error) {
	methods, err := srv.deliveryRepo.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list delivery methods")
	}

	decisions := make([]*pricing.ShippingDecision, 0, len(methods))
	for _, method := range methods {
		decision := pricing.ResolveShipping(method, destProvince, srv.regions)
		decisions = append(decisions, &decision)
	}

	return decisions, nil
}

// publishOrderEvent emits an order lifecycle event. Delivery is best effort; the
// order is already committed, so a publish failure is logged, never surfaced.
func publishOrderEvent(ctx context.Context, publisher service.EventPublisher, logger *slog.Logger, eventType string, order *entity.Order) {
	if publisher == nil {
		return
	}

	event := &service.OrderEvent{
		RequestID:   deliverycontext.GetRequestIDFromContext(ctx),
		Type:        eventType,
		OrderID:     order.ID.String(),
		UserID:      order.UserID.String(),
		Status:      string(order.Status),
		SubStatus:   string(order.LatestSubStatus()),
		TotalAmount: order.TotalAmount,
	}
	if err := publisher.PublishOrderEvent(ctx, event); err != nil {
		logger.Warn("Failed to publish order event",
			slog.String("type", eventType),
			slog.String("order_id", order.ID.String()),
			slog.Any("error", err))
	}
}
