package repository

import (
	"context"

	"dacsan/internal/domain/entity"
	"dacsan/internal/errors"

	"github.com/google/uuid"
)

// Sentinel errors for voucher persistence.
var (
	ErrVoucherNotFound     = errors.New("voucher not found")
	ErrUserVoucherNotFound = errors.New("user voucher not found")
	ErrNoFreeSlots         = errors.New("voucher has no free claim slots")
	ErrAlreadyClaimed      = errors.New("voucher already claimed by user")
	ErrAlreadyUsed         = errors.New("user voucher already used")
)

// VoucherRepository is the boundary to voucher and user-voucher storage.
type VoucherRepository interface {
	// FindByCode retrieves a voucher by its unique code.
	FindByCode(ctx context.Context, code string) (*entity.Voucher, error)

	// FindByID retrieves a voucher by id.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Voucher, error)

	// ListPublic retrieves all vouchers currently visible to every user.
	ListPublic(ctx context.Context) ([]*entity.Voucher, error)

	// FindUserVoucher retrieves the claim binding between a user and a voucher.
	FindUserVoucher(ctx context.Context, userID, voucherID uuid.UUID) (*entity.UserVoucher, error)

	// ListClaimedByUser retrieves all of a user's claim bindings. Bindings whose
	// voucher has since been deleted are dangling; callers must treat them as
	// absent rather than dereferencing the missing voucher.
	ListClaimedByUser(ctx context.Context, userID uuid.UUID) ([]*entity.UserVoucher, error)

	// Claim atomically takes one claim slot for the user: it fails with
	// ErrNoFreeSlots when claimedSlots has reached totalSlots and with
	// ErrAlreadyClaimed when the user already holds this voucher. First claim
	// wins under concurrency.
	Claim(ctx context.Context, userID, voucherID uuid.UUID) (*entity.UserVoucher, error)

	// MarkUsed atomically consumes a claimed voucher for an order, failing with
	// ErrAlreadyUsed if it was consumed before. This is the guard against
	// double redemption.
	MarkUsed(ctx context.Context, userVoucherID, orderID uuid.UUID) error
}
