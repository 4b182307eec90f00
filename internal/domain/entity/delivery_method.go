package entity

import (
	"time"

	"github.com/google/uuid"
)

// DeliveryMethod is a configured shipping option. A method with a RegionRestriction
// is only selectable when the destination province matches the restricted region.
type DeliveryMethod struct {
	ID                uuid.UUID `json:"id"`
	Type              string    `json:"type"` // e.g. "standard", "express".
	Price             float64   `json:"price"`
	EstimatedDays     int       `json:"estimated_days"`
	IsActive          bool      `json:"is_active"`
	RegionRestriction string    `json:"region_restriction,omitempty"` // Empty means available everywhere.
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// IsRegionGated reports whether this method is restricted to a region.
func (m *DeliveryMethod) IsRegionGated() bool {
	return m.RegionRestriction != ""
}
