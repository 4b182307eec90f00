// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
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

// catalogRepository implements the repository.CatalogRepository interface.
type catalogRepository struct {
	db *gorm.DB
}

// NewCatalogRepository is the constructor for catalogRepository.
func NewCatalogRepository(db *gorm.DB) repository.CatalogRepository {
	return &catalogRepository{
		db: db,
	}
}

// ResolveSnapshot retrieves the current catalog state of a product. Deleted and
// deactivated products resolve to ErrProductNotFound; the pricing layer treats
// them as stale cart references, not failures.
func (repo *catalogRepository) ResolveSnapshot(ctx context.Context, productID uuid.UUID) (*entity.ProductSnapshot, error) {
	var productM model.ProductModel

	if err := repo.db.WithContext(ctx).
		Where("id = ? AND is_active = ? AND deleted_at IS NULL", productID, true).
		First(&productM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrProductNotFound
		}

		return nil, errors.Wrap(err, "failed to resolve product snapshot")
	}

	return &entity.ProductSnapshot{
		ProductID:       productM.ID,
		Name:            productM.Name,
		ImageURL:        productM.ImageURL,
		Price:           productM.Price,
		DiscountPercent: productM.DiscountPercent,
		Stock:           productM.Stock,
		Rating:          productM.Rating,
		Category:        productM.Category,
		IsActive:        productM.IsActive,
		CapturedAt:      time.Now(),
	}, nil
}

// DecrementStock atomically takes quantity units from a product's stock. The
// guard lives in the WHERE clause, so two commits racing for the last units
// serialize at the database and exactly one succeeds.
func (repo *catalogRepository) DecrementStock(ctx context.Context, productID uuid.UUID, quantity int) error {
	result := repo.db.WithContext(ctx).
		Model(&model.ProductModel{}).
		Where("id = ? AND stock >= ? AND deleted_at IS NULL", productID, quantity).
		UpdateColumn("stock", gorm.Expr("stock - ?", quantity))
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to decrement stock")
	}
	if result.RowsAffected == 0 {
		return repository.ErrInsufficientStock
	}

	return nil
}
