// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// ProductSnapshot captures the catalog state of a product at a point in time.
// During preview it is the resolver output; once an order is created it is frozen
// into the order line and never updated again, so historical orders stay accurate
// even if the catalog entry changes or is deleted.
type ProductSnapshot struct {
	ProductID       uuid.UUID `json:"product_id"`       // The catalog product this snapshot was taken from.
	Name            string    `json:"name"`             // Product name at capture time.
	ImageURL        string    `json:"image_url"`        // Primary product image at capture time.
	Price           float64   `json:"price"`            // Listed unit price at capture time.
	DiscountPercent float64   `json:"discount_percent"` // Catalog discount percentage (0-100) at capture time.
	Stock           int       `json:"stock"`            // Units in stock at capture time.
	Rating          float64   `json:"rating"`           // Average rating at capture time.
	Category        string    `json:"category"`         // Category name at capture time.
	IsActive        bool      `json:"is_active"`        // Whether the product was purchasable at capture time.
	CapturedAt      time.Time `json:"captured_at"`      // When the snapshot was taken.
}

// EffectiveUnitPrice returns the unit price after the catalog discount.
// The result is intentionally unrounded; rounding happens once at aggregation.
func (s *ProductSnapshot) EffectiveUnitPrice() float64 {
	return s.Price * (1 - s.DiscountPercent/100)
}
