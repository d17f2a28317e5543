package data

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFile(t *testing.T) {
	c, err := LoadFile("testdata/reference.json", Options{})
	require.NoError(t, err)

	require.Equal(t, 2, c.Len())
	assert.Empty(t, c.Findings())

	armour := c.BaseGroups()[0]
	assert.Equal(t, "body_armour_str_armour", armour.LookupKey())
	assert.Equal(t, "Body Armour", armour.ClassName)
	require.Len(t, armour.Prefixes, 2)
	require.Len(t, armour.Suffixes, 2)

	inc := armour.Prefixes[0]
	assert.Equal(t, []string{"defencesincrease"}, inc.ModGroups)
	require.Len(t, inc.Tiers, 3)
	assert.Equal(t, "T1", inc.Tiers[0].Name)
	assert.Equal(t, 75, inc.Tiers[0].ItemLevel)
	assert.Equal(t, 300, inc.Tiers[0].Weighting)
	assert.InDelta(t, 2.5, inc.Tiers[0].WeightPercent, 1e-9)
	assert.InDelta(t, 5.0, inc.Tiers[0].AffixPercent, 1e-9)
	// Scraper output uses capitalised range keys.
	assert.Equal(t, ValueRange{Min: 92, Max: 100}, inc.Tiers[0].Values[0])

	regen := armour.Suffixes[1]
	assert.True(t, regen.Tiers[0].Float)

	ring := c.BaseGroups()[1]
	assert.Equal(t, "ring", ring.LookupKey())
	assert.Equal(t, 2, ring.Prefixes[0].ValueCount())
}

func TestLoad_Malformed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		doc  string
		want string
	}{
		{
			name: "not json",
			doc:  `{"base_groups": [`,
		},
		{
			name: "missing base_groups",
			doc:  `{"groups": []}`,
			want: "base_groups",
		},
		{
			name: "group without key",
			doc:  `{"base_groups": [{"base_type": "ring"}]}`,
		},
		{
			name: "tier without values",
			doc: `{"base_groups": [{"bgroup": "ring", "prefixes": [
				{"description": "#", "mod_groups": ["a"], "tiers": [{"tier": "T1", "values": []}]}]}]}`,
		},
		{
			name: "three ranges",
			doc: `{"base_groups": [{"bgroup": "ring", "prefixes": [
				{"description": "#", "mod_groups": ["a"], "tiers": [{"tier": "T1", "values": [{"min":1,"max":2},{"min":1,"max":2},{"min":1,"max":2}]}]}]}]}`,
		},
		{
			name: "min above max",
			doc: `{"base_groups": [{"bgroup": "ring", "suffixes": [
				{"description": "#", "mod_groups": ["a"], "tiers": [{"tier": "T1", "values": [{"min":5,"max":2}]}]}]}]}`,
			want: "min 5 > max 2",
		},
		{
			name: "mixed range counts",
			doc: `{"base_groups": [{"bgroup": "ring", "suffixes": [
				{"description": "#", "mod_groups": ["a"], "tiers": [
					{"tier": "T1", "values": [{"min":5,"max":6}]},
					{"tier": "T2", "values": [{"min":1,"max":2},{"min":3,"max":4}]}]}]}]}`,
			want: "other tiers have 1",
		},
		{
			name: "wrong ilvl type",
			doc: `{"base_groups": [{"bgroup": "ring", "suffixes": [
				{"description": "#", "mod_groups": ["a"], "tiers": [{"tier": "T1", "ilvl": "high", "values": [{"min":1,"max":2}]}]}]}]}`,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c, err := Load(strings.NewReader(tt.doc), Options{})
			require.Error(t, err)
			assert.Nil(t, c)
			assert.True(t, errors.Is(err, ErrMalformedData), "want ErrMalformedData, got %v", err)
			if tt.want != "" {
				assert.Contains(t, err.Error(), tt.want)
			}
		})
	}
}

func TestLoad_Strict(t *testing.T) {
	t.Parallel()

	doc := `{"base_groups": [{"bgroup": "ring", "prefixes": [
		{"description": "# to Life", "mod_groups": ["life"], "tiers": [{"tier": "T1", "values": [{"min":1,"max":2}]}]},
		{"description": "# to Mana", "mod_groups": ["life"], "tiers": [{"tier": "T1", "values": [{"min":1,"max":2}]}]}]}]}`

	c, err := Load(strings.NewReader(doc), Options{})
	require.NoError(t, err)
	require.Len(t, c.Findings(), 1)
	assert.Equal(t, FindingAmbiguousGroupKey, c.Findings()[0].Kind)

	_, err = Load(strings.NewReader(doc), Options{Strict: true})
	require.ErrorIs(t, err, ErrMalformedData)
	assert.Contains(t, err.Error(), "ambiguous_group_key")
}

func TestLoadFile_Missing(t *testing.T) {
	t.Parallel()

	_, err := LoadFile("testdata/does-not-exist.json", Options{})
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrMalformedData))
}

func TestCatalog_FindByKey(t *testing.T) {
	t.Parallel()

	c := NewCatalog(
		&BaseGroup{Key: "Gloves_Dex_Armour"},
		&BaseGroup{ClassName: "body_armour"},
	)

	assert.Same(t, c.BaseGroups()[0], c.FindByKey("glove_dex"))
	assert.Same(t, c.BaseGroups()[1], c.FindByKey("BODY_ARMOUR"))
	assert.Nil(t, c.FindByKey("ring"))

	var nilCatalog *Catalog
	assert.Nil(t, nilCatalog.FindByKey("ring"))
	assert.Zero(t, nilCatalog.Len())
}

func TestAffix_SplitDescription(t *testing.T) {
	t.Parallel()

	a := &Affix{Description: "#% increased Armour, +# to maximum Life"}
	assert.Equal(t, "#% increased Armour\n+# to maximum Life", a.SplitDescription())
}

func TestBaseGroup_Affixes(t *testing.T) {
	t.Parallel()

	p := &Affix{Description: "p"}
	s := &Affix{Description: "s"}
	g := &BaseGroup{Prefixes: []*Affix{p}, Suffixes: []*Affix{s}}

	all := g.Affixes()
	require.Len(t, all, 2)
	assert.Same(t, p, all[0])
	assert.Same(t, s, all[1])
	assert.True(t, g.IsPrefix(p))
	assert.False(t, g.IsPrefix(s))

	// The combined slice is a copy.
	all[0] = s
	assert.Same(t, p, g.Prefixes[0])
}
