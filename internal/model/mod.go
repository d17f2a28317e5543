package model

import (
	"fmt"
	"strings"

	"github.com/udisondev/craftassist/internal/data"
)

// AffixType is the kind of modifier as reported by the game.
type AffixType int32

const (
	AffixPrefix AffixType = iota
	AffixSuffix
	AffixImplicit
	AffixEnchant
	AffixCorruptedImplicit
)

var affixTypeNames = map[AffixType]string{
	AffixPrefix:            "Prefix",
	AffixSuffix:            "Suffix",
	AffixImplicit:          "Implicit",
	AffixEnchant:           "Enchant",
	AffixCorruptedImplicit: "CorruptedImplicit",
}

// String returns human-readable affix type name.
func (t AffixType) String() string {
	if s, ok := affixTypeNames[t]; ok {
		return s
	}
	return fmt.Sprintf("Unknown(%d)", int32(t))
}

// MarshalText encodes the affix type by name.
func (t AffixType) MarshalText() ([]byte, error) {
	s, ok := affixTypeNames[t]
	if !ok {
		return nil, fmt.Errorf("unknown affix type %d", int32(t))
	}
	return []byte(s), nil
}

// UnmarshalText decodes an affix type name (case-insensitive).
func (t *AffixType) UnmarshalText(b []byte) error {
	for k, v := range affixTypeNames {
		if strings.EqualFold(v, string(b)) {
			*t = k
			return nil
		}
	}
	return fmt.Errorf("unknown affix type %q", b)
}

// Mod is a raw modifier as read from the game, before matching.
type Mod struct {
	Name        string
	Group       string
	Values      []int
	AffixType   AffixType
	Translation string   // game-rendered text, informational only
	ExtraKeys   []string // additional tags supplied by the source
}

// NewMod creates a raw modifier with normalized name and group.
func NewMod(name, group string, values []int, affixType AffixType) Mod {
	return Mod{
		Name:      normalizeKey(name),
		Group:     normalizeKey(group),
		Values:    values,
		AffixType: affixType,
	}
}

// SemanticKeys returns the keys used to match the modifier against
// reference affixes, in priority order: name, group, then extra keys.
// Empty and repeated keys are skipped.
func (m Mod) SemanticKeys() []string {
	keys := make([]string, 0, 2+len(m.ExtraKeys))
	seen := make(map[string]struct{}, cap(keys))
	add := func(k string) {
		if k == "" {
			return
		}
		if _, dup := seen[k]; dup {
			return
		}
		seen[k] = struct{}{}
		keys = append(keys, k)
	}
	add(m.Name)
	add(m.Group)
	for _, k := range m.ExtraKeys {
		add(normalizeKey(k))
	}
	return keys
}

func normalizeKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// DisplayMod is a modifier resolved against the reference data.
type DisplayMod struct {
	AffixType   AffixType  `json:"affix_type"`
	Values      []int      `json:"values"`
	Description string     `json:"description"`
	Tier        *data.Tier `json:"tier"`
	Float       bool       `json:"float"`

	// Affix is the matched reference affix. Not persisted.
	Affix *data.Affix `json:"-"`
}

// Matched reports whether a tier was selected for the modifier.
func (d DisplayMod) Matched() bool {
	return d.Tier != nil
}

func (d DisplayMod) clone() DisplayMod {
	c := d
	c.Values = append([]int(nil), d.Values...)
	return c
}
