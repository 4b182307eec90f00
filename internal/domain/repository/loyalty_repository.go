package repository

import (
	"context"
	"time"

	"dacsan/internal/domain/entity"
	"dacsan/internal/errors"

	"github.com/google/uuid"
)

// ErrInsufficientPoints is returned when a conditional debit finds fewer
// spendable points than requested.
var ErrInsufficientPoints = errors.New("insufficient loyalty points")

// LoyaltyRepository is the boundary to loyalty point storage. Points live in
// dated grants that expire at the end of the month following the grant.
type LoyaltyRepository interface {
	// ListGrants retrieves all of a user's point grants, oldest first,
	// including expired ones (needed to distinguish expired from overspent).
	ListGrants(ctx context.Context, userID uuid.UUID) ([]*entity.PointsGrant, error)

	// Debit atomically consumes points from the user's unexpired grants,
	// oldest first, failing with ErrInsufficientPoints if the spendable
	// balance at `now` is below the requested amount.
	Debit(ctx context.Context, userID uuid.UUID, points int64, now time.Time) error
}
