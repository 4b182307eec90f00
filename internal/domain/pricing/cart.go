// Package pricing implements the side-effect-free order pricing engine: cart
// resolution, voucher eligibility, loyalty point capping, shipping fee resolution
// and final aggregation. Everything in this package is a pure function of its
// inputs so a preview can be recomputed on every keystroke during checkout.
package pricing

import (
	"context"

	"dacsan/internal/domain/entity"
	domainerrors "dacsan/internal/domain/errors"
	"dacsan/internal/domain/repository"
	"dacsan/internal/errors"

	"github.com/google/uuid"
)

// SnapshotResolver is the narrow read-side of the catalog needed for pricing.
type SnapshotResolver interface {
	ResolveSnapshot(ctx context.Context, productID uuid.UUID) (*entity.ProductSnapshot, error)
}

// PriceCart resolves and prices an ordered list of cart items.
//
// Products that cannot be resolved (missing, deleted or deactivated) are skipped:
// they contribute nothing to the subtotal and are excluded from voucher matching.
// Stale cart references must not block checkout of the remaining valid items, so
// this is policy, not error handling; the skipped ids are reported in the result.
func PriceCart(ctx context.Context, resolver SnapshotResolver, items []entity.CartItem) (*entity.PricedCart, error) {
	if len(items) == 0 {
		return nil, domainerrors.ErrInvalidCart
	}

	cart := &entity.PricedCart{}
	for _, item := range items {
		if item.Quantity < 1 {
			return nil, domainerrors.ErrInvalidCart.WrapMessage("quantity must be a positive integer")
		}

		snapshot, err := resolver.ResolveSnapshot(ctx, item.ProductID)
		if err != nil {
			if errors.Is(err, repository.ErrProductNotFound) {
				cart.Unresolved = append(cart.Unresolved, item.ProductID)

				continue
			}

			return nil, errors.Wrap(err, "failed to resolve product snapshot")
		}

		cart.AddLine(entity.PricedLine{
			ProductID:       snapshot.ProductID,
			Name:            snapshot.Name,
			ImageURL:        snapshot.ImageURL,
			UnitPrice:       snapshot.Price,
			DiscountPercent: snapshot.DiscountPercent,
			Quantity:        item.Quantity,
			// Line totals stay unrounded; rounding happens once in Aggregate to
			// avoid cumulative per-line drift.
			LineTotal: snapshot.EffectiveUnitPrice() * float64(item.Quantity),
			Snapshot:  snapshot,
		})
	}

	return cart, nil
}
