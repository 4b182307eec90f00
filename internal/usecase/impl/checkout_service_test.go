package impl

import (
	"context"
	"testing"
	"time"

	"dacsan/config"
	"dacsan/internal/domain/entity"
	domainerrors "dacsan/internal/domain/errors"
	"dacsan/internal/domain/pricing"
	"dacsan/internal/domain/repository"
	"dacsan/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type checkoutFixture struct {
	catalogRepo  *mockCatalogRepo
	voucherRepo  *mockVoucherRepo
	loyaltyRepo  *mockLoyaltyRepo
	deliveryRepo *mockDeliveryRepo
	orderRepo    *mockOrderRepo
	publisher    *mockPublisher
	now          time.Time
	service      usecase.CheckoutUsecase
}

func newCheckoutFixture(t *testing.T) *checkoutFixture {
	t.Helper()

	f := &checkoutFixture{
		catalogRepo:  &mockCatalogRepo{},
		voucherRepo:  &mockVoucherRepo{},
		loyaltyRepo:  &mockLoyaltyRepo{},
		deliveryRepo: &mockDeliveryRepo{},
		orderRepo:    &mockOrderRepo{},
		publisher:    &mockPublisher{},
		now:          time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC),
	}

	txManager := &passthroughTxManager{
		catalogRepo: f.catalogRepo,
		voucherRepo: f.voucherRepo,
		loyaltyRepo: f.loyaltyRepo,
		orderRepo:   f.orderRepo,
	}

	f.service = NewCheckoutService(CheckoutServiceParams{
		TxManager:    txManager,
		CatalogRepo:  f.catalogRepo,
		VoucherRepo:  f.voucherRepo,
		LoyaltyRepo:  f.loyaltyRepo,
		DeliveryRepo: f.deliveryRepo,
		Publisher:    f.publisher,
		Clock:        fixedClock{now: f.now},
		Regions: pricing.NewRegionIndex(map[string][]string{
			"Hồ Chí Minh": {"hcm", "tphcm"},
		}),
		Config: &config.Config{
			Pricing: &config.PricingConfig{PointsValueRatio: 1, MaxPointsSubtotalRatio: 0.5},
		},
		Logger: newDiscardLogger(),
	})

	return f
}

func (f *checkoutFixture) stockSnapshot(price float64) *entity.ProductSnapshot {
	return &entity.ProductSnapshot{
		ProductID:  uuid.New(),
		Name:       "Nem chua Thanh Hóa",
		Price:      price,
		Stock:      100,
		IsActive:   true,
		CapturedAt: f.now,
	}
}

func (f *checkoutFixture) claimableVoucher() *entity.Voucher {
	return &entity.Voucher{
		ID:            uuid.New(),
		Code:          "GIAM10",
		DiscountType:  entity.DiscountPercentage,
		DiscountValue: 10,
		StartDate:     f.now.Add(-time.Hour),
		EndDate:       f.now.Add(time.Hour),
		IsActive:      true,
		TotalSlots:    100,
	}
}

func TestCheckoutService_PreviewOrder_FullSelection(t *testing.T) {
	f := newCheckoutFixture(t)
	ctx := context.Background()
	userID := uuid.New()

	snapshot := f.stockSnapshot(200000)
	voucher := f.claimableVoucher()

	f.catalogRepo.On("ResolveSnapshot", ctx, snapshot.ProductID).Return(snapshot, nil)
	f.voucherRepo.On("FindByCode", ctx, "GIAM10").Return(voucher, nil)
	f.voucherRepo.On("FindUserVoucher", ctx, userID, voucher.ID).
		Return(&entity.UserVoucher{ID: uuid.New(), UserID: userID, VoucherID: voucher.ID}, nil)
	f.loyaltyRepo.On("ListGrants", ctx, userID).Return([]*entity.PointsGrant{
		{Remaining: 30000, ExpiresAt: f.now.AddDate(0, 1, 0)},
	}, nil)
	f.deliveryRepo.On("FindByType", ctx, "standard").
		Return(&entity.DeliveryMethod{Type: "standard", Price: 30000, IsActive: true}, nil)

	preview, err := f.service.PreviewOrder(ctx, userID, &usecase.CheckoutInput{
		Items:         []entity.CartItem{{ProductID: snapshot.ProductID, Quantity: 2}},
		VoucherCode:   "GIAM10",
		PointsToApply: 20000,
		DeliveryType:  "standard",
		DestProvince:  "Hà Nội",
	})
	require.NoError(t, err)

	assert.InDelta(t, 400000, preview.Quote.Subtotal, 1e-9)
	assert.InDelta(t, 30000, preview.Quote.ShippingFee, 1e-9)
	assert.InDelta(t, 40000, preview.Quote.Discount, 1e-9)
	assert.InDelta(t, 20000, preview.Quote.PointsApplied, 1e-9)
	assert.InDelta(t, 370000, preview.Quote.TotalAmount, 1e-9)
	assert.Len(t, preview.Lines, 1)
	assert.NotNil(t, preview.Shipping)
	assert.Equal(t, voucher, preview.Voucher)

	// Preview never touches reservation paths
	f.catalogRepo.AssertNotCalled(t, "DecrementStock", mock.Anything, mock.Anything, mock.Anything)
	f.orderRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCheckoutService_PreviewOrder_BareCart(t *testing.T) {
	f := newCheckoutFixture(t)
	ctx := context.Background()
	userID := uuid.New()

	snapshot := f.stockSnapshot(80000)
	f.catalogRepo.On("ResolveSnapshot", ctx, snapshot.ProductID).Return(snapshot, nil)

	preview, err := f.service.PreviewOrder(ctx, userID, &usecase.CheckoutInput{
		Items: []entity.CartItem{{ProductID: snapshot.ProductID, Quantity: 1}},
	})
	require.NoError(t, err)

	assert.InDelta(t, 80000, preview.Quote.TotalAmount, 1e-9)
	assert.Nil(t, preview.Voucher)
	assert.Nil(t, preview.Shipping)
}

func TestCheckoutService_PreviewOrder_VoucherNotClaimed(t *testing.T) {
	f := newCheckoutFixture(t)
	ctx := context.Background()
	userID := uuid.New()

	snapshot := f.stockSnapshot(100000)
	voucher := f.claimableVoucher()

	f.catalogRepo.On("ResolveSnapshot", ctx, snapshot.ProductID).Return(snapshot, nil)
	f.voucherRepo.On("FindByCode", ctx, "GIAM10").Return(voucher, nil)
	f.voucherRepo.On("FindUserVoucher", ctx, userID, voucher.ID).
		Return(nil, repository.ErrUserVoucherNotFound)

	_, err := f.service.PreviewOrder(ctx, userID, &usecase.CheckoutInput{
		Items:       []entity.CartItem{{ProductID: snapshot.ProductID, Quantity: 1}},
		VoucherCode: "GIAM10",
	})
	assert.ErrorIs(t, err, domainerrors.ErrVoucherNotClaimed)
}

func TestCheckoutService_PreviewOrder_VoucherAlreadyUsed(t *testing.T) {
	f := newCheckoutFixture(t)
	ctx := context.Background()
	userID := uuid.New()

	snapshot := f.stockSnapshot(100000)
	voucher := f.claimableVoucher()

	f.catalogRepo.On("ResolveSnapshot", ctx, snapshot.ProductID).Return(snapshot, nil)
	f.voucherRepo.On("FindByCode", ctx, "GIAM10").Return(voucher, nil)
	f.voucherRepo.On("FindUserVoucher", ctx, userID, voucher.ID).
		Return(&entity.UserVoucher{ID: uuid.New(), IsUsed: true}, nil)

	_, err := f.service.PreviewOrder(ctx, userID, &usecase.CheckoutInput{
		Items:       []entity.CartItem{{ProductID: snapshot.ProductID, Quantity: 1}},
		VoucherCode: "GIAM10",
	})
	assert.ErrorIs(t, err, domainerrors.ErrVoucherAlreadyUsed)
}

func TestCheckoutService_PreviewOrder_VoucherBelowMinPurchase(t *testing.T) {
	f := newCheckoutFixture(t)
	ctx := context.Background()
	userID := uuid.New()

	snapshot := f.stockSnapshot(380000)
	voucher := f.claimableVoucher()
	voucher.MinPurchaseAmount = 400000

	f.catalogRepo.On("ResolveSnapshot", ctx, snapshot.ProductID).Return(snapshot, nil)
	f.voucherRepo.On("FindByCode", ctx, "GIAM10").Return(voucher, nil)
	f.voucherRepo.On("FindUserVoucher", ctx, userID, voucher.ID).
		Return(&entity.UserVoucher{ID: uuid.New()}, nil)

	_, err := f.service.PreviewOrder(ctx, userID, &usecase.CheckoutInput{
		Items:       []entity.CartItem{{ProductID: snapshot.ProductID, Quantity: 1}},
		VoucherCode: "GIAM10",
	})
	require.Error(t, err)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "VOUCHER_NOT_APPLICABLE", appErr.ErrorCode())
	assert.Equal(t, string(pricing.ReasonMinPurchaseNotMet), appErr.Details())
}

func TestCheckoutService_PreviewOrder_ShippingIneligible(t *testing.T) {
	f := newCheckoutFixture(t)
	ctx := context.Background()
	userID := uuid.New()

	snapshot := f.stockSnapshot(100000)
	f.catalogRepo.On("ResolveSnapshot", ctx, snapshot.ProductID).Return(snapshot, nil)
	f.deliveryRepo.On("FindByType", ctx, "express_2h").
		Return(&entity.DeliveryMethod{
			Type:              "express_2h",
			Price:             50000,
			IsActive:          true,
			RegionRestriction: "Hồ Chí Minh",
		}, nil)

	_, err := f.service.PreviewOrder(ctx, userID, &usecase.CheckoutInput{
		Items:        []entity.CartItem{{ProductID: snapshot.ProductID, Quantity: 1}},
		DeliveryType: "express_2h",
		DestProvince: "Hà Nội",
	})
	require.Error(t, err)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "SHIPPING_INELIGIBLE", appErr.ErrorCode())
}

func TestCheckoutService_PlaceOrder_CommitsEverything(t *testing.T) {
	f := newCheckoutFixture(t)
	ctx := context.Background()
	userID := uuid.New()

	snapshot := f.stockSnapshot(200000)
	voucher := f.claimableVoucher()
	userVoucher := &entity.UserVoucher{ID: uuid.New(), UserID: userID, VoucherID: voucher.ID}

	f.catalogRepo.On("ResolveSnapshot", ctx, snapshot.ProductID).Return(snapshot, nil)
	f.voucherRepo.On("FindByCode", ctx, "GIAM10").Return(voucher, nil)
	f.voucherRepo.On("FindUserVoucher", ctx, userID, voucher.ID).Return(userVoucher, nil)
	f.loyaltyRepo.On("ListGrants", ctx, userID).Return([]*entity.PointsGrant{
		{Remaining: 30000, ExpiresAt: f.now.AddDate(0, 1, 0)},
	}, nil)
	f.deliveryRepo.On("FindByType", ctx, "standard").
		Return(&entity.DeliveryMethod{Type: "standard", Price: 30000, IsActive: true}, nil)

	f.catalogRepo.On("DecrementStock", ctx, snapshot.ProductID, 2).Return(nil)
	f.voucherRepo.On("MarkUsed", ctx, userVoucher.ID, mock.AnythingOfType("uuid.UUID")).Return(nil)
	f.loyaltyRepo.On("Debit", ctx, userID, int64(20000), f.now).Return(nil)
	f.orderRepo.On("Create", ctx, mock.AnythingOfType("*entity.Order")).Return(nil)
	f.publisher.On("PublishOrderEvent", ctx, mock.AnythingOfType("*service.OrderEvent")).Return(nil)

	out, err := f.service.PlaceOrder(ctx, userID, &usecase.PlaceOrderInput{
		CheckoutInput: usecase.CheckoutInput{
			Items:         []entity.CartItem{{ProductID: snapshot.ProductID, Quantity: 2}},
			VoucherCode:   "GIAM10",
			PointsToApply: 20000,
			DeliveryType:  "standard",
		},
		PaymentMethod: "cod",
		ShippingAddress: entity.ShippingAddress{
			Recipient: "Nguyễn Văn A",
			Province:  "Hà Nội",
		},
	})
	require.NoError(t, err)

	order := out.Order
	assert.Equal(t, entity.StatusPending, order.Status)
	assert.Equal(t, entity.SubStatusPlaced, order.LatestSubStatus())
	assert.Equal(t, userID, order.UserID)
	assert.InDelta(t, 370000, order.TotalAmount, 1e-9)
	require.NotNil(t, order.VoucherID)
	assert.Equal(t, voucher.ID, *order.VoucherID)
	assert.Equal(t, entity.PaymentStatusUnpaid, order.Payment.Status)
	require.Len(t, order.Lines, 1)
	assert.Equal(t, snapshot.ProductID, order.Lines[0].Snapshot.ProductID)

	f.catalogRepo.AssertExpectations(t)
	f.voucherRepo.AssertExpectations(t)
	f.loyaltyRepo.AssertExpectations(t)
	f.orderRepo.AssertExpectations(t)
	f.publisher.AssertExpectations(t)
}

func TestCheckoutService_PlaceOrder_StockRaceLoses(t *testing.T) {
	f := newCheckoutFixture(t)
	ctx := context.Background()
	userID := uuid.New()

	snapshot := f.stockSnapshot(200000)
	f.catalogRepo.On("ResolveSnapshot", ctx, snapshot.ProductID).Return(snapshot, nil)
	f.deliveryRepo.On("FindByType", ctx, "standard").
		Return(&entity.DeliveryMethod{Type: "standard", Price: 30000, IsActive: true}, nil)
	f.catalogRepo.On("DecrementStock", ctx, snapshot.ProductID, 2).
		Return(repository.ErrInsufficientStock)

	_, err := f.service.PlaceOrder(ctx, userID, &usecase.PlaceOrderInput{
		CheckoutInput: usecase.CheckoutInput{
			Items:        []entity.CartItem{{ProductID: snapshot.ProductID, Quantity: 2}},
			DeliveryType: "standard",
		},
		PaymentMethod:   "cod",
		ShippingAddress: entity.ShippingAddress{Province: "Hà Nội"},
	})
	require.Error(t, err)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "PRODUCT_OUT_OF_STOCK", appErr.ErrorCode())

	f.orderRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	f.publisher.AssertNotCalled(t, "PublishOrderEvent", mock.Anything, mock.Anything)
}

func TestCheckoutService_PlaceOrder_RequiresDeliveryType(t *testing.T) {
	f := newCheckoutFixture(t)
	ctx := context.Background()
	userID := uuid.New()

	snapshot := f.stockSnapshot(100000)
	f.catalogRepo.On("ResolveSnapshot", ctx, snapshot.ProductID).Return(snapshot, nil)

	_, err := f.service.PlaceOrder(ctx, userID, &usecase.PlaceOrderInput{
		CheckoutInput: usecase.CheckoutInput{
			Items: []entity.CartItem{{ProductID: snapshot.ProductID, Quantity: 1}},
		},
		PaymentMethod:   "cod",
		ShippingAddress: entity.ShippingAddress{Province: "Hà Nội"},
	})
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}

func TestCheckoutService_PlaceOrder_AllLinesUnresolved(t *testing.T) {
	f := newCheckoutFixture(t)
	ctx := context.Background()
	userID := uuid.New()
	gone := uuid.New()

	f.catalogRepo.On("ResolveSnapshot", ctx, gone).Return(nil, repository.ErrProductNotFound)
	f.deliveryRepo.On("FindByType", ctx, "standard").
		Return(&entity.DeliveryMethod{Type: "standard", Price: 30000, IsActive: true}, nil)

	_, err := f.service.PlaceOrder(ctx, userID, &usecase.PlaceOrderInput{
		CheckoutInput: usecase.CheckoutInput{
			Items:        []entity.CartItem{{ProductID: gone, Quantity: 1}},
			DeliveryType: "standard",
		},
		PaymentMethod:   "cod",
		ShippingAddress: entity.ShippingAddress{Province: "Hà Nội"},
	})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCart)
}

func TestCheckoutService_ListDeliveryMethods_ReportsIneligible(t *testing.T) {
	f := newCheckoutFixture(t)
	ctx := context.Background()

	f.deliveryRepo.On("List", ctx).Return([]*entity.DeliveryMethod{
		{Type: "standard", Price: 30000, IsActive: true},
		{Type: "express_2h", Price: 50000, IsActive: true, RegionRestriction: "Hồ Chí Minh"},
		{Type: "same_day", Price: 45000, IsActive: false},
	}, nil)

	decisions, err := f.service.ListDeliveryMethods(ctx, "Hà Nội")
	require.NoError(t, err)
	require.Len(t, decisions, 3)

	assert.True(t, decisions[0].Eligible)
	assert.False(t, decisions[1].Eligible)
	assert.Equal(t, pricing.ShippingReasonOutsideRegion, decisions[1].Reason)
	assert.False(t, decisions[2].Eligible)
	assert.Equal(t, pricing.ShippingReasonSuspended, decisions[2].Reason)
}
