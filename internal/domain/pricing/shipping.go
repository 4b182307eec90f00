package pricing

import (
	"strings"
	"unicode"

	"dacsan/internal/domain/entity"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Shipping ineligibility reasons.
const (
	ShippingReasonSuspended     = "temporarily_suspended"
	ShippingReasonOutsideRegion = "outside_region"
)

// ShippingDecision is the outcome of resolving a delivery method for a destination.
// An ineligible method is reported, never silently swapped for another one.
type ShippingDecision struct {
	Method   *entity.DeliveryMethod `json:"method"`
	Fee      float64                `json:"fee"`
	Eligible bool                   `json:"eligible"`
	Reason   string                 `json:"reason,omitempty"`
}

// RegionIndex matches free-text province input against the known variants of
// gating region names, ignoring case, diacritics and punctuation. Destination
// addresses arrive as user-typed text ("Sai Gon", "TP. Hồ Chí Minh", "tphcm"),
// so exact string comparison is useless here.
type RegionIndex struct {
	variants map[string][]string // region key -> normalized variant tokens
}

// NewRegionIndex builds an index from region name to its accepted spellings.
// The region's own name is always accepted as a variant.
func NewRegionIndex(regions map[string][]string) *RegionIndex {
	idx := &RegionIndex{variants: make(map[string][]string, len(regions))}
	for region, spellings := range regions {
		tokens := make([]string, 0, len(spellings)+1)
		tokens = append(tokens, foldProvince(region))
		for _, s := range spellings {
			tokens = append(tokens, foldProvince(s))
		}
		idx.variants[region] = tokens
	}

	return idx
}

// Matches reports whether the destination province is one of the region's variants.
func (idx *RegionIndex) Matches(region, destProvince string) bool {
	needle := foldProvince(destProvince)
	if needle == "" {
		return false
	}
	for _, token := range idx.variants[region] {
		if token == needle {
			return true
		}
	}

	return false
}

// ResolveShipping maps a delivery method plus destination province to a fee and
// an eligibility flag. Inactive methods and region-gated methods outside their
// region are ineligible with distinct reasons.
func ResolveShipping(method *entity.DeliveryMethod, destProvince string, regions *RegionIndex) ShippingDecision {
	if !method.IsActive {
		return ShippingDecision{Method: method, Reason: ShippingReasonSuspended}
	}
	if method.IsRegionGated() && !regions.Matches(method.RegionRestriction, destProvince) {
		return ShippingDecision{Method: method, Reason: ShippingReasonOutsideRegion}
	}

	return ShippingDecision{Method: method, Fee: method.Price, Eligible: true}
}

var diacriticStripper = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// foldProvince lowercases, strips diacritics and drops everything that is not a
// letter or digit, so "TP. Hồ Chí Minh" and "tp ho chi minh" compare equal.
// The Vietnamese đ is not a combining mark, so it is mapped separately.
func foldProvince(s string) string {
	stripped, _, err := transform.String(diacriticStripper, s)
	if err != nil {
		stripped = s
	}

	var folded strings.Builder
	folded.Grow(len(stripped))
	for _, r := range stripped {
		switch {
		case r == 'đ' || r == 'Đ':
			folded.WriteRune('d')
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			folded.WriteRune(unicode.ToLower(r))
		}
	}

	return folded.String()
}
