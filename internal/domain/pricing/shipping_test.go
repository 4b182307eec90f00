package pricing

import (
	"testing"

	"dacsan/internal/domain/entity"

	"github.com/stretchr/testify/assert"
)

func testRegions() *RegionIndex {
	return NewRegionIndex(map[string][]string{
		"Hồ Chí Minh": {"hcm", "tphcm", "tp hcm", "sai gon", "saigon"},
		"Đà Nẵng":     {"danang"},
	})
}

func TestRegionIndex_MatchesDiacriticVariants(t *testing.T) {
	regions := testRegions()

	for _, input := range []string{
		"Hồ Chí Minh",
		"ho chi minh",
		"HO CHI MINH",
		"TP. HCM",
		"tphcm",
		"Sài Gòn",
		"sai gon",
	} {
		assert.True(t, regions.Matches("Hồ Chí Minh", input), "input %q should match", input)
	}
}

func TestRegionIndex_RejectsOtherProvinces(t *testing.T) {
	regions := testRegions()

	assert.False(t, regions.Matches("Hồ Chí Minh", "Hà Nội"))
	assert.False(t, regions.Matches("Hồ Chí Minh", ""))
	assert.False(t, regions.Matches("unknown region", "anything"))
}

func TestRegionIndex_FoldsDStroke(t *testing.T) {
	regions := testRegions()

	assert.True(t, regions.Matches("Đà Nẵng", "da nang"))
	assert.True(t, regions.Matches("Đà Nẵng", "Đà Nẵng"))
	assert.True(t, regions.Matches("Đà Nẵng", "DaNang"))
}

func TestResolveShipping_ActiveUnrestricted(t *testing.T) {
	method := &entity.DeliveryMethod{Type: "standard", Price: 30000, IsActive: true}

	decision := ResolveShipping(method, "Hà Nội", testRegions())
	assert.True(t, decision.Eligible)
	assert.InDelta(t, 30000, decision.Fee, 1e-9)
	assert.Empty(t, decision.Reason)
}

func TestResolveShipping_Suspended(t *testing.T) {
	method := &entity.DeliveryMethod{Type: "standard", Price: 30000, IsActive: false}

	decision := ResolveShipping(method, "Hà Nội", testRegions())
	assert.False(t, decision.Eligible)
	assert.Equal(t, ShippingReasonSuspended, decision.Reason)
	assert.Zero(t, decision.Fee)
}

func TestResolveShipping_RegionGated(t *testing.T) {
	method := &entity.DeliveryMethod{
		Type:              "express_2h",
		Price:             50000,
		IsActive:          true,
		RegionRestriction: "Hồ Chí Minh",
	}
	regions := testRegions()

	inside := ResolveShipping(method, "TP. Hồ Chí Minh", regions)
	assert.True(t, inside.Eligible)
	assert.InDelta(t, 50000, inside.Fee, 1e-9)

	outside := ResolveShipping(method, "Cần Thơ", regions)
	assert.False(t, outside.Eligible)
	assert.Equal(t, ShippingReasonOutsideRegion, outside.Reason)
}
