package repository

import (
	"context"

	"dacsan/internal/domain/entity"
	"dacsan/internal/errors"
)

// ErrDeliveryMethodNotFound is returned when no delivery method has the given type.
var ErrDeliveryMethodNotFound = errors.New("delivery method not found")

// DeliveryMethodRepository is the boundary to delivery method configuration.
type DeliveryMethodRepository interface {
	// List retrieves all configured delivery methods, active or not.
	List(ctx context.Context) ([]*entity.DeliveryMethod, error)

	// FindByType retrieves a delivery method by its type key.
	FindByType(ctx context.Context, methodType string) (*entity.DeliveryMethod, error)
}
