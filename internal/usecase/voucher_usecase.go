package usecase

import (
	"context"

	"dacsan/internal/domain/entity"
	"dacsan/internal/domain/pricing"

	"github.com/google/uuid"
)

// VoucherStatus is one voucher evaluated against a cart, annotated with the
// caller's claim state. Inapplicable vouchers are returned with their reason so
// the storefront can render "needs 50,000đ more" instead of hiding the voucher.
type VoucherStatus struct {
	Voucher     *entity.Voucher     `json:"voucher"`
	Claimed     bool                `json:"claimed"`
	Used        bool                `json:"used"`
	Eligibility pricing.Eligibility `json:"eligibility"`
}

// ClaimOutput returns the claim binding created for the user.
type ClaimOutput struct {
	UserVoucher *entity.UserVoucher `json:"user_voucher"`
	Voucher     *entity.Voucher     `json:"voucher"`
}

// VoucherUsecase defines voucher discovery, claiming and QR sharing operations.
type VoucherUsecase interface {
	// ListForCart evaluates the user's claimed vouchers plus all public
	// vouchers against the given cart. Claims whose voucher has since been
	// deleted are skipped.
	ListForCart(ctx context.Context, userID uuid.UUID, items []entity.CartItem) ([]*VoucherStatus, error)

	// Claim takes one claim slot of the voucher for the user. First claim wins
	// under concurrency; a full voucher or a repeat claim is rejected.
	Claim(ctx context.Context, userID uuid.UUID, code string) (*ClaimOutput, error)

	// ClaimQR renders a QR code image encoding the claim link for the voucher.
	ClaimQR(ctx context.Context, code string) ([]byte, error)
}
