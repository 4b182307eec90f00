// Package repository defines the persistence interfaces the engine depends on.
// Concrete implementations live under internal/infra/persistence.
package repository

import (
	"context"

	"dacsan/internal/domain/entity"
	"dacsan/internal/errors"

	"github.com/google/uuid"
)

// ErrProductNotFound is returned when a product cannot be resolved from the catalog.
var ErrProductNotFound = errors.New("product not found")

// CatalogRepository is the boundary to catalog storage. The engine only reads
// snapshots from it and, during commit, decrements stock conditionally.
type CatalogRepository interface {
	// ResolveSnapshot returns the current catalog state of a product.
	// Returns ErrProductNotFound for missing, deleted or inactive products.
	ResolveSnapshot(ctx context.Context, productID uuid.UUID) (*entity.ProductSnapshot, error)

	// DecrementStock atomically decrements a product's stock by quantity,
	// failing with ErrInsufficientStock if fewer units remain. This is a
	// conditional update, not read-then-write, so concurrent checkouts cannot
	// both take the last unit.
	DecrementStock(ctx context.Context, productID uuid.UUID, quantity int) error
}

// ErrInsufficientStock is returned when a conditional stock decrement finds
// fewer units than requested.
var ErrInsufficientStock = errors.New("insufficient stock")
