package ingest

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/craftassist/internal/model"
)

type fakeEntity struct {
	metadata   string
	components map[string]Component
}

func (f *fakeEntity) Metadata() string { return f.metadata }

func (f *fakeEntity) Component(name string) (Component, bool) {
	c, ok := f.components[name]
	return c, ok
}

type fakeTypes map[string]BaseItemType

func (f fakeTypes) BaseItemType(metadata string) (BaseItemType, bool) {
	b, ok := f[metadata]
	return b, ok
}

const armourPath = "Metadata/Items/Armours/BodyArmours/BodyStr1"

func armourTypes() fakeTypes {
	return fakeTypes{armourPath: {
		BaseName:  "Plate Vest",
		ClassName: "Body Armour",
		Width:     2,
		Height:    3,
		Tags:      []string{"str_armour", "body_armour"},
	}}
}

func TestToItem(t *testing.T) {
	t.Parallel()

	e := &fakeEntity{
		metadata: armourPath,
		components: map[string]Component{
			"Mods": Mods{
				Identified:    true,
				ItemLevel:     82,
				Rarity:        model.RarityRare,
				RequiredLevel: 45,
				ExplicitMods: []ItemMod{
					{Name: "LocalIncreasedPhysicalDamageReductionRating3", Group: "DefencesPercent", Values: []int{60}, AffixType: model.AffixPrefix},
					{Name: "FireResist2", Group: " FireResistance ", Values: []int{18}, AffixType: model.AffixSuffix, Groups: []string{"ElementalResistance"}},
				},
				ImplicitMods:           []ItemMod{{Name: "ImplicitLife", Group: "IncreasedLife", Values: []int{20}, AffixType: model.AffixImplicit}},
				EnchantedMods:          []ItemMod{{Name: "EnchantArmour", Group: "Armour", Values: []int{5}, AffixType: model.AffixEnchant}},
				CorruptionImplicitMods: []ItemMod{{Name: "CorruptLife", Group: "IncreasedLife", Values: []int{3}, AffixType: model.AffixCorruptedImplicit}},
			},
			"AttributeRequirements": AttributeRequirements{Strength: 66},
			"Quality":               Quality{ItemQuality: 20},
			"RenderItem":            RenderItem{ResourcePath: "Art/2DItems/Armours/BodyArmours/BodyStr1.dds"},
		},
	}

	item, err := ToItem(e, armourTypes())
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, item.ID)
	assert.Equal(t, armourPath, item.Metadata)
	assert.Equal(t, "Plate Vest", item.BaseName)
	assert.Equal(t, "Body Armour", item.ClassName)
	assert.Equal(t, 2, item.Width)
	assert.Equal(t, 3, item.Height)
	assert.Equal(t, []string{"str_armour", "body_armour"}, item.Tags)
	assert.Equal(t, 82, item.ItemLevel)
	assert.Equal(t, model.RarityRare, item.Rarity)
	assert.Equal(t, 45, item.RequiredLevel)
	assert.Equal(t, 66, item.Requirements.Strength)
	assert.Equal(t, 20, item.Quality)
	assert.Equal(t, "Art/2DItems/Armours/BodyArmours/BodyStr1.dds", item.ResourcePath)
	assert.Equal(t, "Plate Vest", item.FileName)

	require.Len(t, item.RawMods, 5)
	assert.Equal(t, "localincreasedphysicaldamagereductionrating3", item.RawMods[0].Name)
	assert.Equal(t, "defencespercent", item.RawMods[0].Group)
	assert.Equal(t, "fireresistance", item.RawMods[1].Group)
	assert.Equal(t, []string{"fireresist2", "fireresistance", "elementalresistance"}, item.RawMods[1].SemanticKeys())
	assert.Equal(t, model.AffixImplicit, item.RawMods[2].AffixType)
	assert.Equal(t, model.AffixEnchant, item.RawMods[3].AffixType)
	assert.Equal(t, model.AffixCorruptedImplicit, item.RawMods[4].AffixType)
	assert.Empty(t, item.Mods)
}

func TestToItem_OptionalComponentsDefault(t *testing.T) {
	t.Parallel()

	e := &fakeEntity{metadata: armourPath, components: map[string]Component{"Mods": Mods{}}}

	item, err := ToItem(e, armourTypes())
	require.NoError(t, err)
	assert.Zero(t, item.Requirements)
	assert.Zero(t, item.Quality)
	assert.Empty(t, item.ResourcePath)
	assert.Empty(t, item.RawMods)
}

func TestToItem_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		entity  Entity
		types   BaseItemTypes
		wantErr error
	}{
		{"nil entity", nil, armourTypes(), ErrNilEntity},
		{"unknown base type", &fakeEntity{metadata: "Metadata/Unknown", components: map[string]Component{"Mods": Mods{}}}, armourTypes(), ErrInvalidBaseItem},
		{"no mods component", &fakeEntity{metadata: armourPath}, armourTypes(), ErrInvalidModsComponent},
		{
			name:    "wrong component type",
			entity:  &fakeEntity{metadata: armourPath, components: map[string]Component{"Mods": Quality{}}},
			types:   armourTypes(),
			wantErr: ErrInvalidModsComponent,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			item, err := ToItem(tt.entity, tt.types)
			assert.Nil(t, item)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v, want %v", err, tt.wantErr)
		})
	}
}

func TestReadDump(t *testing.T) {
	t.Parallel()

	src := `{
		"metadata": "Metadata/Items/Rings/Ring1",
		"base_item_type": {"base_name": "Ruby Ring", "class_name": "Ring", "tags": ["ring"]},
		"mods": {
			"item_level": 70,
			"rarity": "Magic",
			"explicit_mods": [{"name": "FireResist3", "group": "FireResistance", "values": [33], "affix_type": "Suffix"}]
		},
		"quality": {"item_quality": 5}
	}`

	d, err := ReadDump(strings.NewReader(src))
	require.NoError(t, err)

	item, err := ToItem(d, d)
	require.NoError(t, err)
	assert.Equal(t, "Ruby Ring", item.BaseName)
	assert.Equal(t, model.RarityMagic, item.Rarity)
	assert.Equal(t, 5, item.Quality)
	require.Len(t, item.RawMods, 1)
	assert.Equal(t, model.AffixSuffix, item.RawMods[0].AffixType)

	_, ok := TryGetComponent[RenderItem](d)
	assert.False(t, ok)

	_, ok = d.BaseItemType("Metadata/Other")
	assert.False(t, ok)
}

func TestReadDump_Invalid(t *testing.T) {
	t.Parallel()

	_, err := ReadDump(strings.NewReader(`{"mods": {"rarity": "Legendary"}}`))
	assert.Error(t, err)
}

func TestDumpSet(t *testing.T) {
	t.Parallel()

	ring := &Dump{Path: "Metadata/Items/Rings/Ring1", Base: &BaseItemType{BaseName: "Ruby Ring", ClassName: "Ring"}, Mods: &Mods{}}
	belt := &Dump{Path: "Metadata/Items/Belts/Belt1", Base: &BaseItemType{BaseName: "Leather Belt", ClassName: "Belt"}}
	set := DumpSet{ring, nil, belt}

	b, ok := set.BaseItemType(belt.Path)
	require.True(t, ok)
	assert.Equal(t, "Leather Belt", b.BaseName)

	_, ok = set.BaseItemType("Metadata/Items/Amulets/Amulet1")
	assert.False(t, ok)

	entities := DumpSet{ring, belt}.Entities()
	require.Len(t, entities, 2)
	assert.Equal(t, ring.Path, entities[0].Metadata())

	item, err := ToItem(entities[0], set)
	require.NoError(t, err)
	assert.Equal(t, "Ring", item.ClassName)

	_, err = ToItem(entities[1], set)
	assert.True(t, errors.Is(err, ErrInvalidModsComponent))
}
