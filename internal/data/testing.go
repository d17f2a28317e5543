package data

import "strconv"

// NewCatalog builds a Catalog from already constructed groups.
// Intended for tests from other packages that need reference data without
// going through a JSON document. Findings are computed as Load would.
func NewCatalog(groups ...*BaseGroup) *Catalog {
	c := &Catalog{groups: groups}
	c.findings = c.Check()
	return c
}

// NewTestAffix returns an affix with single-range tiers, one per bracket,
// named T1..Tn in the given order.
func NewTestAffix(description string, groups []string, brackets ...ValueRange) *Affix {
	a := &Affix{Description: description, ModGroups: groups}
	for i, b := range brackets {
		a.Tiers = append(a.Tiers, &Tier{
			Name:      "T" + strconv.Itoa(i+1),
			ItemLevel: 1,
			Weighting: 1000,
			Values:    []ValueRange{b},
		})
	}
	return a
}
