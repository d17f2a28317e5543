package ingest

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/udisondev/craftassist/internal/model"
)

// Errors.
var (
	ErrNilEntity            = errors.New("entity is nil")
	ErrInvalidBaseItem      = errors.New("invalid base item type")
	ErrInvalidModsComponent = errors.New("invalid mods component")
)

// ToItem builds an item snapshot from e.
//
// The base item type and the Mods component are required. Requirements,
// quality and render data are optional and default to zero values.
// Explicit, implicit, enchant and corruption-implicit modifiers are merged
// into one list in that order, with names and groups lower-cased and trimmed.
func ToItem(e Entity, types BaseItemTypes) (*model.Item, error) {
	if e == nil || types == nil {
		return nil, ErrNilEntity
	}

	item := model.NewItem()
	item.Metadata = e.Metadata()
	slog.Debug("processing entity", "metadata", item.Metadata)

	base, ok := types.BaseItemType(item.Metadata)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrInvalidBaseItem, item.Metadata)
	}
	item.BaseName = base.BaseName
	item.ClassName = base.ClassName
	item.Width = base.Width
	item.Height = base.Height
	item.Tags = append([]string(nil), base.Tags...)
	item.MoreTagsFromPath = append([]string(nil), base.MoreTagsFromPath...)

	mods, ok := TryGetComponent[Mods](e)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrInvalidModsComponent, item.Metadata)
	}
	item.Identified = mods.Identified
	item.IsMirrored = mods.IsMirrored
	item.ItemLevel = mods.ItemLevel
	item.Rarity = mods.Rarity
	item.RequiredLevel = mods.RequiredLevel
	item.UniqueName = mods.UniqueName
	item.RawMods = mergeMods(mods)

	if req, ok := TryGetComponent[AttributeRequirements](e); ok {
		item.Requirements = model.Requirements{
			Strength:     req.Strength,
			Dexterity:    req.Dexterity,
			Intelligence: req.Intelligence,
		}
	}
	if q, ok := TryGetComponent[Quality](e); ok {
		item.Quality = q.ItemQuality
	}
	if r, ok := TryGetComponent[RenderItem](e); ok {
		item.ResourcePath = r.ResourcePath
	}

	item.FileName = item.Name()
	return item, nil
}

func mergeMods(m Mods) []model.Mod {
	lists := [][]ItemMod{m.ExplicitMods, m.ImplicitMods, m.EnchantedMods, m.CorruptionImplicitMods}

	n := 0
	for _, l := range lists {
		n += len(l)
	}
	out := make([]model.Mod, 0, n)

	for _, l := range lists {
		for _, im := range l {
			mod := model.NewMod(im.Name, im.Group, append([]int(nil), im.Values...), im.AffixType)
			mod.Translation = im.Translation
			mod.ExtraKeys = append([]string(nil), im.Groups...)
			out = append(out, mod)
		}
	}
	return out
}
