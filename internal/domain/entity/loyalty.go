package entity

import (
	"time"

	"github.com/google/uuid"
)

// PointsGrant is a batch of loyalty points awarded to a user. Each grant expires
// at the end of the month following the grant and is consumed oldest-first.
type PointsGrant struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Points    int64     `json:"points"`    // Points originally granted.
	Remaining int64     `json:"remaining"` // Points not yet spent from this grant.
	GrantedAt time.Time `json:"granted_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the grant can no longer be spent.
func (g *PointsGrant) Expired(now time.Time) bool {
	return !now.Before(g.ExpiresAt)
}

// PointsExpiry returns the expiry boundary for points granted at the given time:
// the end of the following month (i.e. the first instant of the month after next).
func PointsExpiry(grantedAt time.Time) time.Time {
	year, month, _ := grantedAt.Date()

	return time.Date(year, month+2, 1, 0, 0, 0, 0, grantedAt.Location())
}

// SpendableBalance sums the unexpired remainders of a user's grants.
func SpendableBalance(grants []*PointsGrant, now time.Time) int64 {
	var balance int64
	for _, grant := range grants {
		if !grant.Expired(now) {
			balance += grant.Remaining
		}
	}

	return balance
}
