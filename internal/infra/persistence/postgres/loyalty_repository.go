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

// loyaltyRepository implements the repository.LoyaltyRepository interface.
type loyaltyRepository struct {
	db *gorm.DB
}

// NewLoyaltyRepository is the constructor for loyaltyRepository.
func NewLoyaltyRepository(db *gorm.DB) repository.LoyaltyRepository {
	return &loyaltyRepository{
		db: db,
	}
}

// ListGrants retrieves all of a user's point grants, oldest first. Expired
// grants are included; the caller needs them to distinguish expired points from
// a balance that never existed.
func (repo *loyaltyRepository) ListGrants(ctx context.Context, userID uuid.UUID) ([]*entity.PointsGrant, error) {
	var grantMs []*model.PointsGrantModel

	if err := repo.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("granted_at ASC").
		Find(&grantMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list point grants")
	}

	grants := make([]*entity.PointsGrant, 0, len(grantMs))
	for _, grantM := range grantMs {
		grants = append(grants, toPointsGrantDomain(grantM))
	}

	return grants, nil
}

// Debit consumes points from the user's unexpired grants, oldest first. Each
// per-grant take is conditional on the grant still holding that many points, so
// a concurrent debit of the same grant fails one of the two instead of going
// negative. The caller runs this inside the commit transaction, which rolls the
// partial takes back when the total cannot be covered.
func (repo *loyaltyRepository) Debit(ctx context.Context, userID uuid.UUID, points int64, now time.Time) error {
	var grantMs []*model.PointsGrantModel

	if err := repo.db.WithContext(ctx).
		Where("user_id = ? AND remaining > 0 AND expires_at > ?", userID, now).
		Order("granted_at ASC").
		Find(&grantMs).Error; err != nil {
		return errors.Wrap(err, "failed to load spendable grants")
	}

	left := points
	for _, grantM := range grantMs {
		if left <= 0 {
			break
		}

		take := grantM.Remaining
		if take > left {
			take = left
		}

		result := repo.db.WithContext(ctx).
			Model(&model.PointsGrantModel{}).
			Where("id = ? AND remaining >= ?", grantM.ID, take).
			UpdateColumn("remaining", gorm.Expr("remaining - ?", take))
		if result.Error != nil {
			return errors.Wrap(result.Error, "failed to debit grant")
		}
		if result.RowsAffected == 0 {
			return repository.ErrInsufficientPoints
		}

		left -= take
	}

	if left > 0 {
		return repository.ErrInsufficientPoints
	}

	return nil
}

func toPointsGrantDomain(grantM *model.PointsGrantModel) *entity.PointsGrant {
	return &entity.PointsGrant{
		ID:        grantM.ID,
		UserID:    grantM.UserID,
		Points:    grantM.Points,
		Remaining: grantM.Remaining,
		GrantedAt: grantM.GrantedAt,
		ExpiresAt: grantM.ExpiresAt,
	}
}
