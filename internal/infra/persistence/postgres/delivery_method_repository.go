package postgres

import (
	"context"

	"dacsan/internal/domain/entity"
	"dacsan/internal/domain/repository"
	"dacsan/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// deliveryMethodRepository implements the repository.DeliveryMethodRepository interface.
type deliveryMethodRepository struct {
	db *gorm.DB
}

// NewDeliveryMethodRepository is the constructor for deliveryMethodRepository.
func NewDeliveryMethodRepository(db *gorm.DB) repository.DeliveryMethodRepository {
	return &deliveryMethodRepository{
		db: db,
	}
}

// List retrieves all configured delivery methods, active or not. Suspended
// methods are listed so the storefront can show them as unavailable.
func (repo *deliveryMethodRepository) List(ctx context.Context) ([]*entity.DeliveryMethod, error) {
	var methodMs []*model.DeliveryMethodModel

	if err := repo.db.WithContext(ctx).
		Order("price ASC").
		Find(&methodMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list delivery methods")
	}

	methods := make([]*entity.DeliveryMethod, 0, len(methodMs))
	for _, methodM := range methodMs {
		methods = append(methods, toDeliveryMethodDomain(methodM))
	}

	return methods, nil
}

// FindByType retrieves a delivery method by its type key.
func (repo *deliveryMethodRepository) FindByType(ctx context.Context, methodType string) (*entity.DeliveryMethod, error) {
	var methodM model.DeliveryMethodModel

	if err := repo.db.WithContext(ctx).
		Where("type = ?", methodType).
		First(&methodM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrDeliveryMethodNotFound
		}

		return nil, errors.Wrap(err, "failed to find delivery method by type")
	}

	return toDeliveryMethodDomain(&methodM), nil
}

func toDeliveryMethodDomain(methodM *model.DeliveryMethodModel) *entity.DeliveryMethod {
	return &entity.DeliveryMethod{
		ID:                methodM.ID,
		Type:              methodM.Type,
		Price:             methodM.Price,
		EstimatedDays:     methodM.EstimatedDays,
		IsActive:          methodM.IsActive,
		RegionRestriction: methodM.RegionRestriction,
		CreatedAt:         methodM.CreatedAt,
		UpdatedAt:         methodM.UpdatedAt,
	}
}
