package craft

import (
	"github.com/udisondev/craftassist/internal/data"
	"github.com/udisondev/craftassist/internal/model"
)

// ResolveBaseGroup finds the reference base group of item.
//
// Candidate keys come from model.Item.CandidateKeys. For each candidate in
// order, the catalog is scanned in document order and the first group whose
// key contains the candidate (case-insensitive) wins. Containment rather than
// equality lets reference keys carry extra qualifiers, e.g. candidate
// "glove_dex" matches "glove_dex_int_armour".
//
// Returns nil when no candidate matches: the item is not covered by the
// reference data.
func ResolveBaseGroup(item *model.Item, catalog *data.Catalog) *data.BaseGroup {
	if item == nil {
		return nil
	}
	for _, key := range item.CandidateKeys() {
		if g := catalog.FindByKey(key); g != nil {
			return g
		}
	}
	return nil
}
