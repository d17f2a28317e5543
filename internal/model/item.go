// Package model describes an inspected item: identity fields read from the
// game, its raw modifiers and, after processing, the modifiers resolved
// against reference data.
package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/udisondev/craftassist/internal/data"
)

// Rarity of an item.
type Rarity int32

const (
	RarityNormal Rarity = iota
	RarityMagic
	RarityRare
	RarityUnique
)

var rarityNames = map[Rarity]string{
	RarityNormal: "Normal",
	RarityMagic:  "Magic",
	RarityRare:   "Rare",
	RarityUnique: "Unique",
}

// String returns human-readable rarity name.
func (r Rarity) String() string {
	if s, ok := rarityNames[r]; ok {
		return s
	}
	return fmt.Sprintf("Unknown(%d)", int32(r))
}

// MarshalText encodes the rarity by name.
func (r Rarity) MarshalText() ([]byte, error) {
	s, ok := rarityNames[r]
	if !ok {
		return nil, fmt.Errorf("unknown rarity %d", int32(r))
	}
	return []byte(s), nil
}

// UnmarshalText decodes a rarity name (case-insensitive).
func (r *Rarity) UnmarshalText(b []byte) error {
	for k, v := range rarityNames {
		if strings.EqualFold(v, string(b)) {
			*r = k
			return nil
		}
	}
	return fmt.Errorf("unknown rarity %q", b)
}

// Requirements are attribute requirements of an item.
type Requirements struct {
	Strength     int `json:"strength"`
	Dexterity    int `json:"dexterity"`
	Intelligence int `json:"intelligence"`
}

// Item is a point-in-time snapshot of an inspected item.
//
// RawMods and BaseGroup are only meaningful during processing and are not
// persisted; Mods holds the resolved modifiers.
type Item struct {
	ID               uuid.UUID    `json:"id"`
	FileName         string       `json:"file_name"`
	Metadata         string       `json:"metadata"`
	BaseName         string       `json:"base_name"`
	ClassName        string       `json:"class_name"`
	Width            int          `json:"width"`
	Height           int          `json:"height"`
	Identified       bool         `json:"identified"`
	IsMirrored       bool         `json:"is_mirrored"`
	ItemLevel        int          `json:"item_level"`
	Rarity           Rarity       `json:"rarity"`
	RequiredLevel    int          `json:"required_level"`
	UniqueName       string       `json:"unique_name"`
	Tags             []string     `json:"tags"`
	MoreTagsFromPath []string     `json:"more_tags_from_path"`
	Requirements     Requirements `json:"requirements"`
	Quality          int          `json:"quality"`
	ResourcePath     string       `json:"resource_path"`
	Mods             []DisplayMod `json:"mods"`
	StoredAt         time.Time    `json:"stored_at,omitzero"`

	RawMods   []Mod           `json:"-"`
	BaseGroup *data.BaseGroup `json:"-"`
}

// NewItem creates an empty snapshot with a fresh ID.
func NewItem() *Item {
	return &Item{ID: uuid.New()}
}

// Name returns "{UniqueName} {BaseName}" without surrounding blanks.
func (it *Item) Name() string {
	return strings.TrimSpace(it.UniqueName + " " + it.BaseName)
}

// RequirementsText renders level and attribute requirements,
// e.g. "Level 45, 20 Dex, 30 Str". Zero requirements are omitted.
func (it *Item) RequirementsText() string {
	var parts []string
	if it.RequiredLevel > 0 {
		parts = append(parts, fmt.Sprintf("Level %d", it.RequiredLevel))
	}
	if it.Requirements.Dexterity > 0 {
		parts = append(parts, fmt.Sprintf("%d Dex", it.Requirements.Dexterity))
	}
	if it.Requirements.Intelligence > 0 {
		parts = append(parts, fmt.Sprintf("%d Int", it.Requirements.Intelligence))
	}
	if it.Requirements.Strength > 0 {
		parts = append(parts, fmt.Sprintf("%d Str", it.Requirements.Strength))
	}
	return strings.Join(parts, ", ")
}

// CandidateKeys returns base group lookup keys in priority order:
//  1. "{class}_{firstTag}", class lower-cased with spaces as underscores
//     and a trailing plural "s" removed (only when the item has tags)
//  2. the lower-cased class name with spaces as underscores
//  3. the lower-cased class name as is, when it contains spaces
func (it *Item) CandidateKeys() []string {
	keys := make([]string, 0, 3)

	lower := strings.ToLower(it.ClassName)
	underscored := strings.ReplaceAll(lower, " ", "_")

	if len(it.Tags) > 0 {
		keys = append(keys, strings.TrimSuffix(underscored, "s")+"_"+it.Tags[0])
	}
	keys = append(keys, underscored)
	if lower != underscored {
		keys = append(keys, lower)
	}
	return keys
}

// Clone returns a deep copy of the item with a new ID.
// Matched affixes and the base group are shared, they are read-only.
func (it *Item) Clone() *Item {
	c := *it
	c.ID = uuid.New()
	c.Tags = append([]string(nil), it.Tags...)
	c.MoreTagsFromPath = append([]string(nil), it.MoreTagsFromPath...)
	c.RawMods = append([]Mod(nil), it.RawMods...)
	c.Mods = make([]DisplayMod, len(it.Mods))
	for i, m := range it.Mods {
		c.Mods[i] = m.clone()
	}
	return &c
}

// Prefixes returns resolved modifiers of prefix type.
func (it *Item) Prefixes() []DisplayMod {
	return it.modsOf(AffixPrefix)
}

// Suffixes returns resolved modifiers of suffix type.
func (it *Item) Suffixes() []DisplayMod {
	return it.modsOf(AffixSuffix)
}

func (it *Item) modsOf(t AffixType) []DisplayMod {
	var out []DisplayMod
	for _, m := range it.Mods {
		if m.AffixType == t {
			out = append(out, m)
		}
	}
	return out
}
