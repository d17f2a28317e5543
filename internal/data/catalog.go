// Package data holds the crafting reference dataset: base item groups, their
// prefix and suffix affixes, and the tiers of every affix.
//
// A Catalog is built once by Load and is read-only afterwards, so it can be
// shared by any number of goroutines without locking.
package data

import "strings"

// ValueRange is an inclusive [Min, Max] bracket of one affix value.
type ValueRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// Contains reports whether v lies within the range, bounds included.
func (r ValueRange) Contains(v int) bool {
	return v >= r.Min && v <= r.Max
}

// Tier is a weighted bracket of an affix.
type Tier struct {
	Name          string       `json:"tier"`
	ItemLevel     int          `json:"ilvl"`
	Weighting     int          `json:"weighting"`
	WeightPercent float64      `json:"weight_percent"`
	AffixPercent  float64      `json:"affix_percent"`
	Float         bool         `json:"float"` // values are fixed-point, scaled by 60
	Values        []ValueRange `json:"values"`
}

// Affix is a prefix or suffix definition.
// Description is a template with one '#' per value; sub-descriptions are
// separated by commas.
type Affix struct {
	Description string   `json:"description"`
	ModGroups   []string `json:"mod_groups"`
	Tiers       []*Tier  `json:"tiers"`
}

// SplitDescription returns the description with one sub-description per line.
func (a *Affix) SplitDescription() string {
	parts := strings.Split(a.Description, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return strings.Join(parts, "\n")
}

// ValueCount returns the number of value ranges carried by the affix tiers.
func (a *Affix) ValueCount() int {
	if len(a.Tiers) == 0 {
		return 0
	}
	return len(a.Tiers[0].Values)
}

// LastTier returns the last loaded tier, or nil for an affix without tiers.
func (a *Affix) LastTier() *Tier {
	if len(a.Tiers) == 0 {
		return nil
	}
	return a.Tiers[len(a.Tiers)-1]
}

// BaseGroup is the bucket of affixes that can roll on one kind of base item.
type BaseGroup struct {
	Key       string   `json:"base_group"`
	ClassName string   `json:"bgroup"`
	BaseType  string   `json:"base_type"`
	Prefixes  []*Affix `json:"prefixes"`
	Suffixes  []*Affix `json:"suffixes"`
}

// LookupKey returns the key used for base group resolution: base_group when
// present, bgroup otherwise.
func (g *BaseGroup) LookupKey() string {
	if g.Key != "" {
		return g.Key
	}
	return g.ClassName
}

// Affixes returns prefixes followed by suffixes, in loaded order.
func (g *BaseGroup) Affixes() []*Affix {
	all := make([]*Affix, 0, len(g.Prefixes)+len(g.Suffixes))
	all = append(all, g.Prefixes...)
	all = append(all, g.Suffixes...)
	return all
}

// IsPrefix reports whether a belongs to the prefix list of g.
func (g *BaseGroup) IsPrefix(a *Affix) bool {
	for _, p := range g.Prefixes {
		if p == a {
			return true
		}
	}
	return false
}

// Catalog is the loaded reference dataset.
type Catalog struct {
	groups   []*BaseGroup
	findings []Finding
}

// BaseGroups returns all base groups in document order.
// The returned slice must not be modified.
func (c *Catalog) BaseGroups() []*BaseGroup {
	if c == nil {
		return nil
	}
	return c.groups
}

// Len returns the number of base groups.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.groups)
}

// Findings returns the consistency findings collected at load time.
func (c *Catalog) Findings() []Finding {
	if c == nil {
		return nil
	}
	return c.findings
}

// FindByKey returns the first group whose lookup key contains key,
// case-insensitively. Returns nil if none does.
func (c *Catalog) FindByKey(key string) *BaseGroup {
	key = strings.ToLower(key)
	for _, g := range c.BaseGroups() {
		if strings.Contains(strings.ToLower(g.LookupKey()), key) {
			return g
		}
	}
	return nil
}
