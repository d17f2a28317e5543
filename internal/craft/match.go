package craft

import (
	"github.com/udisondev/craftassist/internal/data"
	"github.com/udisondev/craftassist/internal/model"
)

// localPrefix marks item-local modifiers in game data. Reference data stores
// the global group key only.
const localPrefix = "local"

// MatchAffix finds the reference affix of a raw modifier within group.
//
// Keys of the modifier are tried in priority order against prefixes, then
// suffixes, as loaded. A key matches a group key g when it equals g or
// "local"+g. The first match wins; with overlapping group keys the loaded
// order decides (see data.FindingAmbiguousGroupKey).
//
// Returns nil when nothing matches.
func MatchAffix(mod model.Mod, group *data.BaseGroup) *data.Affix {
	if group == nil {
		return nil
	}
	affixes := group.Affixes()
	for _, key := range mod.SemanticKeys() {
		for _, a := range affixes {
			for _, g := range a.ModGroups {
				if key == g || key == localPrefix+g {
					return a
				}
			}
		}
	}
	return nil
}
