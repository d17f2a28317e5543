package craft

import (
	"fmt"

	"github.com/udisondev/craftassist/internal/data"
)

// SelectTier picks the tier of affix matching the observed values.
//
// Tiers are scanned in loaded order. With one observed value the first tier
// whose first range contains it wins; with two values both ranges must
// contain their value. When no tier matches, the last loaded tier is
// returned; it is assumed to be the lowest one, data.FindingTierOrder
// reports affixes where it is not.
//
// ErrCorruptTierData is returned for empty values, an affix without tiers,
// or a tier lacking a range for an observed value.
func SelectTier(affix *data.Affix, values []int) (*data.Tier, error) {
	if affix == nil {
		return nil, fmt.Errorf("%w: nil affix", ErrCorruptTierData)
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("%w: affix %q: no observed values", ErrCorruptTierData, affix.Description)
	}
	if len(affix.Tiers) == 0 {
		return nil, fmt.Errorf("%w: affix %q has no tiers", ErrCorruptTierData, affix.Description)
	}

	// Only the first two values are compared, matching the 1-2 ranges a
	// tier can carry.
	n := min(len(values), 2)

	for _, t := range affix.Tiers {
		if len(t.Values) < n {
			return nil, fmt.Errorf("%w: affix %q tier %q: %d ranges for %d values",
				ErrCorruptTierData, affix.Description, t.Name, len(t.Values), n)
		}
		if contains(t, values[:n]) {
			return t, nil
		}
	}

	return affix.LastTier(), nil
}

func contains(t *data.Tier, values []int) bool {
	for i, v := range values {
		if !t.Values[i].Contains(v) {
			return false
		}
	}
	return true
}
