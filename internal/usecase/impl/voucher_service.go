package impl

import (
	"context"
	"log/slog"

	deliverycontext "dacsan/internal/delivery/context"
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

// voucherService implements the VoucherUsecase interface.
type voucherService struct {
	voucherRepo repository.VoucherRepository
	catalogRepo repository.CatalogRepository
	qrService   service.QRCodeService
	clock       service.Clock
	logger      *slog.Logger
}

// VoucherServiceParams holds dependencies for VoucherService, injected by Fx.
type VoucherServiceParams struct {
	fx.In

	VoucherRepo repository.VoucherRepository
	CatalogRepo repository.CatalogRepository
	QRService   service.QRCodeService
	Clock       service.Clock
	Logger      *slog.Logger
}

// NewVoucherService is the constructor for voucherService.
func NewVoucherService(params VoucherServiceParams) usecase.VoucherUsecase {
	return &voucherService{
		voucherRepo: params.VoucherRepo,
		catalogRepo: params.CatalogRepo,
		qrService:   params.QRService,
		clock:       params.Clock,
		logger:      params.Logger,
	}
}

func (srv *voucherService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// ListForCart evaluates the user's claimed vouchers plus the public pool against
// the cart. Each voucher is evaluated independently; an empty cart evaluates
// against a zero subtotal so the storefront can show the wallet outside checkout.
func (srv *voucherService) ListForCart(ctx context.Context, userID uuid.UUID, items []entity.CartItem) ([]*usecase.VoucherStatus, error) {
	now := srv.clock.Now()

	var cart *entity.PricedCart
	if len(items) > 0 {
		priced, err := pricing.PriceCart(ctx, srv.catalogRepo, items)
		if err != nil {
			return nil, err
		}
		cart = priced
	}

	voucherCtx := pricing.VoucherContext{Cart: cart, Now: now}
	if cart != nil {
		voucherCtx.Subtotal = cart.Subtotal
	}

	claims, err := srv.voucherRepo.ListClaimedByUser(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list claimed vouchers")
	}

	statuses := make([]*usecase.VoucherStatus, 0, len(claims))
	seen := make(map[uuid.UUID]struct{}, len(claims))
	for _, claim := range claims {
		voucher, err := srv.voucherRepo.FindByID(ctx, claim.VoucherID)
		if err != nil {
			// A claim whose voucher has since been deleted is dangling; treat
			// it as absent rather than failing the whole listing.
			if errors.Is(err, repository.ErrVoucherNotFound) {
				srv.log(ctx).Warn("Skipping dangling voucher claim",
					slog.String("user_voucher_id", claim.ID.String()),
					slog.String("voucher_id", claim.VoucherID.String()))

				continue
			}

			return nil, errors.Wrap(err, "failed to find claimed voucher")
		}

		seen[voucher.ID] = struct{}{}
		statuses = append(statuses, &usecase.VoucherStatus{
			Voucher:     voucher,
			Claimed:     true,
			Used:        claim.IsUsed,
			Eligibility: pricing.EvaluateVoucher(voucher, voucherCtx),
		})
	}

	public, err := srv.voucherRepo.ListPublic(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list public vouchers")
	}
	for _, voucher := range public {
		if _, ok := seen[voucher.ID]; ok {
			continue
		}

		statuses = append(statuses, &usecase.VoucherStatus{
			Voucher:     voucher,
			Eligibility: pricing.EvaluateVoucher(voucher, voucherCtx),
		})
	}

	return statuses, nil
}

// Claim takes one claim slot of the voucher for the user. The slot take is a
// conditional update in storage, so a voucher with one slot left cannot be
// claimed by two users.
func (srv *voucherService) Claim(ctx context.Context, userID uuid.UUID, code string) (*usecase.ClaimOutput, error) {
	voucher, err := srv.findByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	now := srv.clock.Now()
	if !voucher.IsActive {
		return nil, domainerrors.NewVoucherNotApplicableError(string(pricing.ReasonInactive))
	}
	if now.After(voucher.EndDate) {
		return nil, domainerrors.NewVoucherNotApplicableError(string(pricing.ReasonExpired))
	}

	userVoucher, err := srv.voucherRepo.Claim(ctx, userID, voucher.ID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNoFreeSlots):
			return nil, domainerrors.ErrVoucherOutOfSlots
		case errors.Is(err, repository.ErrAlreadyClaimed):
			return nil, domainerrors.ErrVoucherAlreadyClaimed
		default:
			return nil, errors.Wrap(err, "failed to claim voucher")
		}
	}

	srv.log(ctx).Info("Voucher claimed",
		slog.String("voucher_code", voucher.Code),
		slog.String("user_id", userID.String()))

	return &usecase.ClaimOutput{UserVoucher: userVoucher, Voucher: voucher}, nil
}

// ClaimQR renders the claim link of an existing voucher as a QR code image.
func (srv *voucherService) ClaimQR(ctx context.Context, code string) ([]byte, error) {
	voucher, err := srv.findByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	image, err := srv.qrService.GenerateClaimQR(voucher.Code)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate claim QR code")
	}

	return image, nil
}

func (srv *voucherService) findByCode(ctx context.Context, code string) (*entity.Voucher, error) {
	voucher, err := srv.voucherRepo.FindByCode(ctx, code)
	if err != nil {
		if errors.Is(err, repository.ErrVoucherNotFound) {
			return nil, domainerrors.ErrVoucherNotFound
		}

		return nil, errors.Wrap(err, "failed to find voucher by code")
	}

	return voucher, nil
}
