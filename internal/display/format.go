// Package display renders affix templates for presentation.
//
// Templates use '#' as a value placeholder and ',' to separate lines:
// "#% increased Armour, +# to maximum Life" renders as two lines.
// Placeholders are filled in order of appearance. A template with more
// placeholders than values keeps the extra '#' as is.
package display

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/udisondev/craftassist/internal/data"
	"github.com/udisondev/craftassist/internal/model"
)

// FixedPointScale is the denominator of fractional game values.
const FixedPointScale = 60

// Value renders v as a plain integer, or as v/60 with at most one decimal
// when fractional is set (0.6666 -> "0.7", 1.0 -> "1").
func Value(v int, fractional bool) string {
	if !fractional {
		return strconv.Itoa(v)
	}
	f := math.Round(float64(v)/FixedPointScale*10) / 10
	if f == 0 {
		f = 0 // drop negative zero
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// Format fills the template with observed values.
func Format(template string, values []int, fractional bool) string {
	return render(template, len(values), func(i int) string {
		return Value(values[i], fractional)
	})
}

// FormatRange fills the template with "[min-max]" brackets.
func FormatRange(template string, ranges []data.ValueRange, fractional bool) string {
	return render(template, len(ranges), func(i int) string {
		r := ranges[i]
		return "[" + Value(r.Min, fractional) + "-" + Value(r.Max, fractional) + "]"
	})
}

func render(template string, n int, fill func(i int) string) string {
	parts := strings.Split(template, ",")
	idx := 0
	var sb strings.Builder
	for pi, part := range parts {
		if pi > 0 {
			sb.WriteByte('\n')
		}
		part = strings.TrimSpace(part)
		for _, r := range part {
			if r == '#' && idx < n {
				sb.WriteString(fill(idx))
				idx++
				continue
			}
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// Modifier renders a resolved modifier with its observed values.
// An unmatched modifier renders as an empty string.
func Modifier(m model.DisplayMod) string {
	if m.Description == "" {
		return ""
	}
	return Format(m.Description, m.Values, m.Float)
}

// TierLine renders one reference line of a tier, e.g.
// "T1 ilvl 75 weight 300 (5%): #% increased Armour" with the template
// filled with the tier ranges.
func TierLine(a *data.Affix, t *data.Tier) string {
	return fmt.Sprintf("%s ilvl %d weight %d (%s%%): %s",
		t.Name, t.ItemLevel, t.Weighting,
		strconv.FormatFloat(t.AffixPercent, 'f', -1, 64),
		FormatRange(a.Description, t.Values, t.Float))
}
