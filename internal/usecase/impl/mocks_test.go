package impl

import (
	"context"
	"io"
	"log/slog"
	"time"

	"dacsan/internal/domain/entity"
	"dacsan/internal/domain/repository"
	"dacsan/internal/domain/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fixedClock always reports the same instant.
type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time {
	return c.now
}

type mockCatalogRepo struct {
	mock.Mock
}

func (m *mockCatalogRepo) ResolveSnapshot(ctx context.Context, productID uuid.UUID) (*entity.ProductSnapshot, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.ProductSnapshot), args.Error(1)
}

func (m *mockCatalogRepo) DecrementStock(ctx context.Context, productID uuid.UUID, quantity int) error {
	return m.Called(ctx, productID, quantity).Error(0)
}

type mockVoucherRepo struct {
	mock.Mock
}

func (m *mockVoucherRepo) FindByCode(ctx context.Context, code string) (*entity.Voucher, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Voucher), args.Error(1)
}

func (m *mockVoucherRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Voucher, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Voucher), args.Error(1)
}

func (m *mockVoucherRepo) ListPublic(ctx context.Context) ([]*entity.Voucher, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.Voucher), args.Error(1)
}

func (m *mockVoucherRepo) FindUserVoucher(ctx context.Context, userID, voucherID uuid.UUID) (*entity.UserVoucher, error) {
	args := m.Called(ctx, userID, voucherID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.UserVoucher), args.Error(1)
}

func (m *mockVoucherRepo) ListClaimedByUser(ctx context.Context, userID uuid.UUID) ([]*entity.UserVoucher, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.UserVoucher), args.Error(1)
}

func (m *mockVoucherRepo) Claim(ctx context.Context, userID, voucherID uuid.UUID) (*entity.UserVoucher, error) {
	args := m.Called(ctx, userID, voucherID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.UserVoucher), args.Error(1)
}

func (m *mockVoucherRepo) MarkUsed(ctx context.Context, userVoucherID, orderID uuid.UUID) error {
	return m.Called(ctx, userVoucherID, orderID).Error(0)
}

type mockLoyaltyRepo struct {
	mock.Mock
}

func (m *mockLoyaltyRepo) ListGrants(ctx context.Context, userID uuid.UUID) ([]*entity.PointsGrant, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.PointsGrant), args.Error(1)
}

func (m *mockLoyaltyRepo) Debit(ctx context.Context, userID uuid.UUID, points int64, now time.Time) error {
	return m.Called(ctx, userID, points, now).Error(0)
}

type mockOrderRepo struct {
	mock.Mock
}

func (m *mockOrderRepo) Create(ctx context.Context, order *entity.Order) error {
	return m.Called(ctx, order).Error(0)
}

func (m *mockOrderRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Order), args.Error(1)
}

func (m *mockOrderRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Order, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.Order), args.Error(1)
}

func (m *mockOrderRepo) Update(ctx context.Context, order *entity.Order) error {
	return m.Called(ctx, order).Error(0)
}

type mockDeliveryRepo struct {
	mock.Mock
}

func (m *mockDeliveryRepo) List(ctx context.Context) ([]*entity.DeliveryMethod, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.DeliveryMethod), args.Error(1)
}

func (m *mockDeliveryRepo) FindByType(ctx context.Context, methodType string) (*entity.DeliveryMethod, error) {
	args := m.Called(ctx, methodType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.DeliveryMethod), args.Error(1)
}

type mockQRService struct {
	mock.Mock
}

func (m *mockQRService) GenerateClaimQR(voucherCode string) ([]byte, error) {
	args := m.Called(voucherCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]byte), args.Error(1)
}

func (m *mockQRService) ParseClaimQR(qrData string) (string, error) {
	args := m.Called(qrData)

	return args.String(0), args.Error(1)
}

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) PublishOrderEvent(ctx context.Context, event *service.OrderEvent) error {
	return m.Called(ctx, event).Error(0)
}

func (m *mockPublisher) Close() error {
	return m.Called().Error(0)
}

// passthroughTxManager runs the callback against a factory serving the fixture's
// mocks, matching the commit path without a real transaction.
type passthroughTxManager struct {
	catalogRepo repository.CatalogRepository
	voucherRepo repository.VoucherRepository
	loyaltyRepo repository.LoyaltyRepository
	orderRepo   repository.OrderRepository
}

func (m *passthroughTxManager) Execute(_ context.Context, fn func(repository.RepositoryFactory) error) error {
	return fn(m)
}

func (m *passthroughTxManager) NewCatalogRepository() repository.CatalogRepository {
	return m.catalogRepo
}

func (m *passthroughTxManager) NewVoucherRepository() repository.VoucherRepository {
	return m.voucherRepo
}

func (m *passthroughTxManager) NewLoyaltyRepository() repository.LoyaltyRepository {
	return m.loyaltyRepo
}

func (m *passthroughTxManager) NewOrderRepository() repository.OrderRepository {
	return m.orderRepo
}
