// Package ingest turns a game entity exposed by the item-acquisition side
// into a model.Item snapshot.
//
// The acquisition side is not part of this module. It is consumed through
// Entity, which answers capability queries for optional components, and
// BaseItemTypes, which resolves the static base item description.
package ingest

import "github.com/udisondev/craftassist/internal/model"

// Component is implemented by every component type an Entity can carry.
type Component interface {
	ComponentName() string
}

// Entity is a live or captured game object.
type Entity interface {
	Metadata() string
	// Component returns the component registered under name, if any.
	Component(name string) (Component, bool)
}

// TryGetComponent queries e for a component of type T.
func TryGetComponent[T Component](e Entity) (T, bool) {
	var zero T
	c, ok := e.Component(zero.ComponentName())
	if !ok {
		return zero, false
	}
	typed, ok := c.(T)
	return typed, ok
}

// BaseItemTypes resolves base item descriptions by entity metadata path.
type BaseItemTypes interface {
	BaseItemType(metadata string) (BaseItemType, bool)
}

// BaseItemType is the static description of a base item.
type BaseItemType struct {
	BaseName         string   `json:"base_name"`
	ClassName        string   `json:"class_name"`
	Width            int      `json:"width"`
	Height           int      `json:"height"`
	Tags             []string `json:"tags"`
	MoreTagsFromPath []string `json:"more_tags_from_path"`
}

// ItemMod is one modifier record as reported by the game.
type ItemMod struct {
	Name        string          `json:"name"`
	Group       string          `json:"group"`
	Values      []int           `json:"values"`
	Translation string          `json:"translation"`
	AffixType   model.AffixType `json:"affix_type"`
	// Groups are additional mod-group tags of the record, used as extra
	// matching keys.
	Groups []string `json:"groups,omitempty"`
}

// Mods is the modifier component.
type Mods struct {
	Identified             bool         `json:"identified"`
	IsMirrored             bool         `json:"is_mirrored"`
	ItemLevel              int          `json:"item_level"`
	Rarity                 model.Rarity `json:"rarity"`
	RequiredLevel          int          `json:"required_level"`
	UniqueName             string       `json:"unique_name"`
	ExplicitMods           []ItemMod    `json:"explicit_mods"`
	ImplicitMods           []ItemMod    `json:"implicit_mods"`
	EnchantedMods          []ItemMod    `json:"enchanted_mods"`
	CorruptionImplicitMods []ItemMod    `json:"corruption_implicit_mods"`
}

func (Mods) ComponentName() string { return "Mods" }

// AttributeRequirements is the attribute requirement component.
type AttributeRequirements struct {
	Strength     int `json:"strength"`
	Dexterity    int `json:"dexterity"`
	Intelligence int `json:"intelligence"`
}

func (AttributeRequirements) ComponentName() string { return "AttributeRequirements" }

// Quality is the item quality component.
type Quality struct {
	ItemQuality int `json:"item_quality"`
}

func (Quality) ComponentName() string { return "Quality" }

// RenderItem carries the art resource path of the item.
type RenderItem struct {
	ResourcePath string `json:"resource_path"`
}

func (RenderItem) ComponentName() string { return "RenderItem" }
