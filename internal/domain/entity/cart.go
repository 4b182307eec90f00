package entity

import (
	"github.com/google/uuid"
)

// CartItem is a single requested line in a cart: a product reference and a quantity.
type CartItem struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Quantity  int       `json:"quantity" validate:"required,min=1"`
}

// PricedLine is a cart line after catalog resolution, carrying the display fields
// and the computed line total.
type PricedLine struct {
	ProductID       uuid.UUID `json:"product_id"`
	Name            string    `json:"name"`
	ImageURL        string    `json:"image_url"`
	UnitPrice       float64   `json:"unit_price"`       // Listed price before the catalog discount.
	DiscountPercent float64   `json:"discount_percent"` // Catalog discount percentage (0-100).
	Quantity        int       `json:"quantity"`
	LineTotal       float64   `json:"line_total"` // Effective unit price x quantity, unrounded.

	// Snapshot is the full catalog state the line was priced from. The commit
	// path freezes it onto the order; it is never serialized in previews.
	Snapshot *ProductSnapshot `json:"-"`
}

// PricedCart is the output of cart pricing: the lines that resolved, their subtotal,
// and the product ids that could not be resolved. Unresolved products contribute
// nothing to the subtotal and are excluded from voucher matching; they are reported
// rather than silently dropped so the caller can show the omission.
type PricedCart struct {
	Lines      []PricedLine `json:"lines"`
	Subtotal   float64      `json:"subtotal"`
	Unresolved []uuid.UUID  `json:"unresolved,omitempty"`

	productIDs map[uuid.UUID]struct{}
}

// AddLine appends a priced line and indexes its product id for matching.
func (c *PricedCart) AddLine(line PricedLine) {
	c.Lines = append(c.Lines, line)
	c.Subtotal += line.LineTotal
	if c.productIDs == nil {
		c.productIDs = make(map[uuid.UUID]struct{})
	}
	c.productIDs[line.ProductID] = struct{}{}
}

// Contains reports whether the given product was actually priced into this cart.
func (c *PricedCart) Contains(productID uuid.UUID) bool {
	_, ok := c.productIDs[productID]

	return ok
}

// ContainsAny reports whether any of the given products was priced into this cart.
func (c *PricedCart) ContainsAny(productIDs []uuid.UUID) bool {
	for _, id := range productIDs {
		if c.Contains(id) {
			return true
		}
	}

	return false
}

// ProductIDs returns the set of product ids that were actually priced.
func (c *PricedCart) ProductIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(c.productIDs))
	for id := range c.productIDs {
		ids = append(ids, id)
	}

	return ids
}
