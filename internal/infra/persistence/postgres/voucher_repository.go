package postgres

import (
	"context"
	"time"

	"dacsan/internal/domain/entity"
	"dacsan/internal/domain/repository"
	"dacsan/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// voucherRepository implements the repository.VoucherRepository interface.
type voucherRepository struct {
	db *gorm.DB
}

// NewVoucherRepository is the constructor for voucherRepository.
func NewVoucherRepository(db *gorm.DB) repository.VoucherRepository {
	return &voucherRepository{
		db: db,
	}
}

// FindByCode retrieves a voucher by its unique code.
func (repo *voucherRepository) FindByCode(ctx context.Context, code string) (*entity.Voucher, error) {
	var voucherM model.VoucherModel

	if err := repo.db.WithContext(ctx).
		Preload("ApplicableProducts").
		Where("code = ? AND deleted_at IS NULL", code).
		First(&voucherM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrVoucherNotFound
		}

		return nil, errors.Wrap(err, "failed to find voucher by code")
	}

	return toVoucherDomain(&voucherM), nil
}

// FindByID retrieves a voucher by id.
func (repo *voucherRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Voucher, error) {
	var voucherM model.VoucherModel

	if err := repo.db.WithContext(ctx).
		Preload("ApplicableProducts").
		Where("id = ? AND deleted_at IS NULL", id).
		First(&voucherM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrVoucherNotFound
		}

		return nil, errors.Wrap(err, "failed to find voucher by id")
	}

	return toVoucherDomain(&voucherM), nil
}

// ListPublic retrieves all active vouchers visible to every user.
func (repo *voucherRepository) ListPublic(ctx context.Context) ([]*entity.Voucher, error) {
	var voucherMs []*model.VoucherModel

	if err := repo.db.WithContext(ctx).
		Preload("ApplicableProducts").
		Where("is_active = ? AND deleted_at IS NULL", true).
		Order("end_date ASC").
		Find(&voucherMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list public vouchers")
	}

	vouchers := make([]*entity.Voucher, 0, len(voucherMs))
	for _, voucherM := range voucherMs {
		vouchers = append(vouchers, toVoucherDomain(voucherM))
	}

	return vouchers, nil
}

// FindUserVoucher retrieves the claim binding between a user and a voucher.
func (repo *voucherRepository) FindUserVoucher(ctx context.Context, userID, voucherID uuid.UUID) (*entity.UserVoucher, error) {
	var userVoucherM model.UserVoucherModel

	if err := repo.db.WithContext(ctx).
		Where("user_id = ? AND voucher_id = ?", userID, voucherID).
		First(&userVoucherM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserVoucherNotFound
		}

		return nil, errors.Wrap(err, "failed to find user voucher")
	}

	return toUserVoucherDomain(&userVoucherM), nil
}

// ListClaimedByUser retrieves all of a user's claim bindings.
func (repo *voucherRepository) ListClaimedByUser(ctx context.Context, userID uuid.UUID) ([]*entity.UserVoucher, error) {
	var userVoucherMs []*model.UserVoucherModel

	if err := repo.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("claimed_at DESC").
		Find(&userVoucherMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list claimed vouchers")
	}

	userVouchers := make([]*entity.UserVoucher, 0, len(userVoucherMs))
	for _, userVoucherM := range userVoucherMs {
		userVouchers = append(userVouchers, toUserVoucherDomain(userVoucherM))
	}

	return userVouchers, nil
}

// Claim takes one claim slot and records the binding in a single transaction.
// The slot take is conditional on claimed_slots < total_slots and the binding
// insert is guarded by the (user_id, voucher_id) unique index, so both
// over-claiming and repeat claims lose their race at the database.
func (repo *voucherRepository) Claim(ctx context.Context, userID, voucherID uuid.UUID) (*entity.UserVoucher, error) {
	userVoucherM := &model.UserVoucherModel{
		ID:        uuid.New(),
		UserID:    userID,
		VoucherID: voucherID,
		ClaimedAt: time.Now(),
	}

	err := repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&model.VoucherModel{}).
			Where("id = ? AND claimed_slots < total_slots AND deleted_at IS NULL", voucherID).
			UpdateColumn("claimed_slots", gorm.Expr("claimed_slots + 1"))
		if result.Error != nil {
			return errors.Wrap(result.Error, "failed to take claim slot")
		}
		if result.RowsAffected == 0 {
			return repository.ErrNoFreeSlots
		}

		if err := tx.Create(userVoucherM).Error; err != nil {
			if isUniqueConstraintViolation(err) {
				return repository.ErrAlreadyClaimed
			}

			return errors.Wrap(err, "failed to create user voucher")
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return toUserVoucherDomain(userVoucherM), nil
}

// MarkUsed consumes a claimed voucher for an order. The is_used guard in the
// WHERE clause makes double redemption impossible regardless of interleaving.
func (repo *voucherRepository) MarkUsed(ctx context.Context, userVoucherID, orderID uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Model(&model.UserVoucherModel{}).
		Where("id = ? AND is_used = ?", userVoucherID, false).
		Updates(map[string]any{
			"is_used":  true,
			"order_id": orderID,
		})
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to mark voucher used")
	}
	if result.RowsAffected == 0 {
		return repository.ErrAlreadyUsed
	}

	return nil
}

func toVoucherDomain(voucherM *model.VoucherModel) *entity.Voucher {
	var products []uuid.UUID
	for _, vp := range voucherM.ApplicableProducts {
		products = append(products, vp.ProductID)
	}

	return &entity.Voucher{
		ID:                 voucherM.ID,
		Code:               voucherM.Code,
		Description:        voucherM.Description,
		DiscountType:       entity.DiscountType(voucherM.DiscountType),
		DiscountValue:      voucherM.DiscountValue,
		MaxDiscountAmount:  voucherM.MaxDiscountAmount,
		MinPurchaseAmount:  voucherM.MinPurchaseAmount,
		StartDate:          voucherM.StartDate,
		EndDate:            voucherM.EndDate,
		IsActive:           voucherM.IsActive,
		ApplicableProducts: products,
		TotalSlots:         voucherM.TotalSlots,
		ClaimedSlots:       voucherM.ClaimedSlots,
		CreatedAt:          voucherM.CreatedAt,
		UpdatedAt:          voucherM.UpdatedAt,
	}
}

func toUserVoucherDomain(userVoucherM *model.UserVoucherModel) *entity.UserVoucher {
	return &entity.UserVoucher{
		ID:        userVoucherM.ID,
		UserID:    userVoucherM.UserID,
		VoucherID: userVoucherM.VoucherID,
		IsUsed:    userVoucherM.IsUsed,
		OrderID:   userVoucherM.OrderID,
		ClaimedAt: userVoucherM.ClaimedAt,
	}
}
