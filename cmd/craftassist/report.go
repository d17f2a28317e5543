package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/udisondev/craftassist/internal/craft"
	"github.com/udisondev/craftassist/internal/data"
	"github.com/udisondev/craftassist/internal/display"
	"github.com/udisondev/craftassist/internal/model"
)

// reporter writes the plain text report. The first write error sticks.
type reporter struct {
	w         io.Writer
	available bool
	tiers     bool
	err       error
}

func (r *reporter) printf(format string, args ...any) {
	if r.err != nil {
		return
	}
	_, r.err = fmt.Fprintf(r.w, format, args...)
}

func (r *reporter) status(res craft.Result) {
	name := "<unknown>"
	if res.Item != nil {
		name = res.Item.Name()
	}
	r.printf("!! %s: %s\n", name, res.Status)
}

func (r *reporter) item(it *model.Item) {
	r.printf("== %s ==\n", it.Name())
	r.printf("%s, %s, item level %d", it.ClassName, it.Rarity, it.ItemLevel)
	if it.Quality > 0 {
		r.printf(", quality %d%%", it.Quality)
	}
	r.printf("\n")
	if req := it.RequirementsText(); req != "" {
		r.printf("Requires %s\n", req)
	}
	if it.BaseGroup != nil {
		r.printf("Base group: %s\n", it.BaseGroup.LookupKey())
	}

	r.mods("Prefixes", it.Prefixes())
	r.mods("Suffixes", it.Suffixes())

	var other []model.DisplayMod
	for _, m := range it.Mods {
		if m.AffixType != model.AffixPrefix && m.AffixType != model.AffixSuffix {
			other = append(other, m)
		}
	}
	r.mods("Other", other)

	if r.available {
		r.affixes("Open prefixes", craft.AvailablePrefixes(it))
		r.affixes("Open suffixes", craft.AvailableSuffixes(it))
	}
	r.printf("\n")
}

func (r *reporter) mods(title string, mods []model.DisplayMod) {
	if len(mods) == 0 {
		return
	}
	r.printf("%s:\n", title)
	for _, m := range mods {
		tier := "--"
		if m.Tier != nil {
			tier = m.Tier.Name
		}
		label := ""
		if m.AffixType != model.AffixPrefix && m.AffixType != model.AffixSuffix {
			label = " (" + m.AffixType.String() + ")"
		}
		r.printf("  %-4s %s%s\n", tier, indent(display.Modifier(m)), label)
	}
}

func (r *reporter) affixes(title string, affixes []*data.Affix) {
	if len(affixes) == 0 {
		return
	}
	r.printf("%s:\n", title)
	for _, a := range affixes {
		best := bestTier(a)
		if best == nil {
			r.printf("  %s\n", indent(a.Description))
			continue
		}
		r.printf("  %s\n", indent(display.FormatRange(a.Description, best.Values, best.Float)))
		if r.tiers {
			for _, t := range a.Tiers {
				r.printf("      %s\n", display.TierLine(a, t))
			}
		}
	}
}

// bestTier returns the first loaded tier.
func bestTier(a *data.Affix) *data.Tier {
	if len(a.Tiers) == 0 {
		return nil
	}
	return a.Tiers[0]
}

// indent aligns continuation lines of multi-line templates.
func indent(s string) string {
	return strings.ReplaceAll(s, "\n", "\n       ")
}

type jsonResult struct {
	Name    string `json:"name"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

type jsonDoc struct {
	Results []jsonResult  `json:"results,omitempty"`
	Items   []*model.Item `json:"items"`
}

func jsonReport(items []*model.Item, results []craft.Result) jsonDoc {
	doc := jsonDoc{Items: items}
	for _, res := range results {
		jr := jsonResult{Status: res.Status.Code.String(), Message: res.Status.Message}
		if res.Item != nil {
			jr.Name = res.Item.Name()
		}
		doc.Results = append(doc.Results, jr)
	}
	if doc.Items == nil {
		doc.Items = []*model.Item{}
	}
	return doc
}
