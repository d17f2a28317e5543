package craft

import (
	"github.com/udisondev/craftassist/internal/data"
	"github.com/udisondev/craftassist/internal/model"
)

// AvailablePrefixes returns prefixes of the item's base group that are not
// already present on the item, in loaded order.
func AvailablePrefixes(item *model.Item) []*data.Affix {
	if item == nil || item.BaseGroup == nil {
		return nil
	}
	return available(item.BaseGroup.Prefixes, item.Mods)
}

// AvailableSuffixes returns suffixes of the item's base group that are not
// already present on the item, in loaded order.
func AvailableSuffixes(item *model.Item) []*data.Affix {
	if item == nil || item.BaseGroup == nil {
		return nil
	}
	return available(item.BaseGroup.Suffixes, item.Mods)
}

func available(affixes []*data.Affix, mods []model.DisplayMod) []*data.Affix {
	taken := make(map[string]struct{}, len(mods))
	for _, m := range mods {
		taken[m.Description] = struct{}{}
	}

	out := make([]*data.Affix, 0, len(affixes))
	for _, a := range affixes {
		if _, ok := taken[a.Description]; ok {
			continue
		}
		out = append(out, a)
	}
	return out
}
