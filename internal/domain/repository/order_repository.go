package repository

import (
	"context"

	"dacsan/internal/domain/entity"
	"dacsan/internal/errors"

	"github.com/google/uuid"
)

// Sentinel errors for order persistence.
var (
	ErrOrderNotFound = errors.New("order not found")
	ErrStaleOrder    = errors.New("order was modified concurrently")
)

// OrderRepository is the boundary to order storage. Orders are created once and
// then only mutated through lifecycle updates; they are never deleted.
type OrderRepository interface {
	// Create persists a new order with its frozen lines and first timeline entry.
	Create(ctx context.Context, order *entity.Order) error

	// FindByID retrieves an order with its lines and timeline.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error)

	// ListByUser retrieves a user's orders, newest first.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Order, error)

	// Update persists lifecycle mutations (status, address, timeline, counters)
	// conditionally on the order not having been updated since it was read,
	// failing with ErrStaleOrder otherwise. Single-order atomicity is all the
	// lifecycle operations need; there is no cross-order coordination.
	Update(ctx context.Context, order *entity.Order) error
}
