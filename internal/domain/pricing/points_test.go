package pricing

import (
	"testing"

	domainerrors "dacsan/internal/domain/errors"

	"github.com/stretchr/testify/assert"
)

func TestPointsPolicy_Cap(t *testing.T) {
	policy := PointsPolicy{ValueRatio: 1, MaxSubtotalRatio: 0.5}

	// Subtotal bound wins
	assert.Equal(t, int64(250000), policy.Cap(1000000, 500000))
	// Balance bound wins
	assert.Equal(t, int64(1000), policy.Cap(1000, 500000))
	// Floor, not round
	assert.Equal(t, int64(150), policy.Cap(10000, 301))
}

func TestPointsPolicy_CapRespectsValueRatio(t *testing.T) {
	// 1 point = 100 dong: a 500,000 subtotal caps redemption at 2,500 points
	policy := PointsPolicy{ValueRatio: 100, MaxSubtotalRatio: 0.5}

	assert.Equal(t, int64(2500), policy.Cap(10000, 500000))
	assert.InDelta(t, 250000, policy.Value(2500), 1e-9)
}

func TestPointsPolicy_ValidateRedemption(t *testing.T) {
	policy := PointsPolicy{ValueRatio: 1, MaxSubtotalRatio: 0.5}

	assert.NoError(t, policy.ValidateRedemption(0, 0, 0, 100000))
	assert.NoError(t, policy.ValidateRedemption(50000, 60000, 60000, 100000))

	// Over the subtotal cap
	err := policy.ValidateRedemption(50001, 60000, 60000, 100000)
	assert.ErrorIs(t, err, domainerrors.ErrPointsExceedLimit)

	// Negative request
	err = policy.ValidateRedemption(-1, 60000, 60000, 100000)
	assert.Error(t, err)
}

// A request covered by lifetime points but not by the unexpired balance means
// the missing points expired, which is a different message than overspending.
func TestPointsPolicy_ValidateRedemption_ExpiredVsOverspent(t *testing.T) {
	policy := PointsPolicy{ValueRatio: 1, MaxSubtotalRatio: 0.5}

	err := policy.ValidateRedemption(5000, 3000, 8000, 100000)
	assert.ErrorIs(t, err, domainerrors.ErrPointsExpired)

	err = policy.ValidateRedemption(9000, 3000, 8000, 100000)
	assert.ErrorIs(t, err, domainerrors.ErrPointsExceedLimit)
}
