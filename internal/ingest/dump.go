package ingest

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Dump is an entity captured to JSON by the game-side exporter.
// It carries its own base item type, so it serves as both Entity and
// BaseItemTypes.
type Dump struct {
	Path                  string                 `json:"metadata"`
	Base                  *BaseItemType          `json:"base_item_type,omitempty"`
	Mods                  *Mods                  `json:"mods,omitempty"`
	AttributeRequirements *AttributeRequirements `json:"attribute_requirements,omitempty"`
	Quality               *Quality               `json:"quality,omitempty"`
	RenderItem            *RenderItem            `json:"render_item,omitempty"`
}

var (
	_ Entity        = (*Dump)(nil)
	_ BaseItemTypes = (*Dump)(nil)
)

// Metadata returns the entity metadata path.
func (d *Dump) Metadata() string { return d.Path }

// Component implements Entity.
func (d *Dump) Component(name string) (Component, bool) {
	switch name {
	case Mods{}.ComponentName():
		if d.Mods != nil {
			return *d.Mods, true
		}
	case AttributeRequirements{}.ComponentName():
		if d.AttributeRequirements != nil {
			return *d.AttributeRequirements, true
		}
	case Quality{}.ComponentName():
		if d.Quality != nil {
			return *d.Quality, true
		}
	case RenderItem{}.ComponentName():
		if d.RenderItem != nil {
			return *d.RenderItem, true
		}
	}
	return nil, false
}

// BaseItemType implements BaseItemTypes for the dumped entity only.
func (d *Dump) BaseItemType(metadata string) (BaseItemType, bool) {
	if d.Base == nil || metadata != d.Path {
		return BaseItemType{}, false
	}
	return *d.Base, true
}

// ReadDump decodes one dumped entity.
func ReadDump(r io.Reader) (*Dump, error) {
	var d Dump
	if err := json.NewDecoder(r).Decode(&d); err != nil {
		return nil, fmt.Errorf("decoding entity dump: %w", err)
	}
	return &d, nil
}

// LoadDump reads a dumped entity from a file.
func LoadDump(path string) (*Dump, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening entity dump %s: %w", path, err)
	}
	defer f.Close()

	d, err := ReadDump(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}

// DumpSet resolves base item types across several dumped entities.
type DumpSet []*Dump

var _ BaseItemTypes = DumpSet(nil)

// BaseItemType implements BaseItemTypes.
func (s DumpSet) BaseItemType(metadata string) (BaseItemType, bool) {
	for _, d := range s {
		if d == nil {
			continue
		}
		if b, ok := d.BaseItemType(metadata); ok {
			return b, true
		}
	}
	return BaseItemType{}, false
}

// Entities returns the dumps as entities, in order.
func (s DumpSet) Entities() []Entity {
	out := make([]Entity, len(s))
	for i, d := range s {
		out[i] = d
	}
	return out
}
