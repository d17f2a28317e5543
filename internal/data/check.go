package data

import "fmt"

// FindingKind classifies a consistency finding.
type FindingKind int

const (
	// FindingAmbiguousGroupKey: two affixes of one base group answer to the
	// same modifier key, so matching picks whichever is loaded first.
	FindingAmbiguousGroupKey FindingKind = iota
	// FindingTierOrder: the last tier of an affix is not its lowest-value
	// tier, which the tier fallback relies on.
	FindingTierOrder
	// FindingEmptyAffix: an affix without tiers can never be scored.
	FindingEmptyAffix
)

// String returns the finding kind name.
func (k FindingKind) String() string {
	switch k {
	case FindingAmbiguousGroupKey:
		return "ambiguous_group_key"
	case FindingTierOrder:
		return "tier_order"
	case FindingEmptyAffix:
		return "empty_affix"
	default:
		return fmt.Sprintf("unknown(%d)", int(k))
	}
}

// Finding is a non-fatal inconsistency in the reference data.
type Finding struct {
	Kind      FindingKind
	BaseGroup string
	Detail    string
}

func (f Finding) String() string {
	return fmt.Sprintf("%s [%s]: %s", f.Kind, f.BaseGroup, f.Detail)
}

// Check walks the catalog and reports ambiguous group keys, affixes whose
// last tier is not the lowest-value one, and affixes without tiers.
// Findings are ordered by base group, then by affix, as loaded.
func (c *Catalog) Check() []Finding {
	var out []Finding
	for _, g := range c.BaseGroups() {
		out = append(out, checkGroupKeys(g)...)
		for _, a := range g.Affixes() {
			if len(a.Tiers) == 0 {
				out = append(out, Finding{
					Kind:      FindingEmptyAffix,
					BaseGroup: g.LookupKey(),
					Detail:    fmt.Sprintf("affix %q has no tiers", a.Description),
				})
				continue
			}
			if f, ok := checkTierOrder(a); ok {
				f.BaseGroup = g.LookupKey()
				out = append(out, f)
			}
		}
	}
	return out
}

func checkGroupKeys(g *BaseGroup) []Finding {
	var out []Finding
	owner := make(map[string]*Affix)
	affixes := g.Affixes()

	for _, a := range affixes {
		for _, key := range a.ModGroups {
			if prev, ok := owner[key]; ok && prev != a {
				out = append(out, Finding{
					Kind:      FindingAmbiguousGroupKey,
					BaseGroup: g.LookupKey(),
					Detail:    fmt.Sprintf("group %q used by %q and %q", key, prev.Description, a.Description),
				})
				continue
			}
			owner[key] = a
		}
	}

	// "x" on one affix and "localx" on another both answer to a "localx" modifier.
	for _, a := range affixes {
		for _, key := range a.ModGroups {
			if other, ok := owner["local"+key]; ok && other != a {
				out = append(out, Finding{
					Kind:      FindingAmbiguousGroupKey,
					BaseGroup: g.LookupKey(),
					Detail: fmt.Sprintf("group %q of %q shadows local variant on %q",
						key, a.Description, other.Description),
				})
			}
		}
	}
	return out
}

func checkTierOrder(a *Affix) (Finding, bool) {
	last := a.LastTier()
	if len(last.Values) == 0 {
		return Finding{}, false
	}
	for _, t := range a.Tiers[:len(a.Tiers)-1] {
		if len(t.Values) == 0 {
			continue
		}
		if t.Values[0].Max < last.Values[0].Max {
			return Finding{
				Kind: FindingTierOrder,
				Detail: fmt.Sprintf("affix %q: last tier %q [%d-%d] is above tier %q [%d-%d]",
					a.Description, last.Name, last.Values[0].Min, last.Values[0].Max,
					t.Name, t.Values[0].Min, t.Values[0].Max),
			}, true
		}
	}
	return Finding{}, false
}
