package craft

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/craftassist/internal/data"
)

func lifeAffix() *data.Affix {
	return data.NewTestAffix("+# to maximum Life", []string{"life"},
		data.ValueRange{Min: 80, Max: 89},
		data.ValueRange{Min: 60, Max: 79},
		data.ValueRange{Min: 40, Max: 59},
		data.ValueRange{Min: 10, Max: 39},
	)
}

func fireAddedAffix() *data.Affix {
	return &data.Affix{
		Description: "Adds # to # Fire Damage to Attacks",
		ModGroups:   []string{"firedamage"},
		Tiers: []*data.Tier{
			{Name: "T1", Values: []data.ValueRange{{Min: 10, Max: 14}, {Min: 20, Max: 25}}},
			{Name: "T2", Values: []data.ValueRange{{Min: 10, Max: 14}, {Min: 15, Max: 19}}},
			{Name: "T3", Values: []data.ValueRange{{Min: 1, Max: 3}, {Min: 4, Max: 6}}},
		},
	}
}

func TestSelectTier_SingleValue(t *testing.T) {
	t.Parallel()

	a := lifeAffix()

	tests := []struct {
		value int
		want  string
	}{
		{85, "T1"},
		{80, "T1"}, // lower bound inclusive
		{89, "T1"}, // upper bound inclusive
		{79, "T2"},
		{45, "T3"},
		{10, "T4"},
		{5, "T4"},   // below every range: fallback
		{120, "T4"}, // above every range: fallback
	}
	for _, tt := range tests {
		got, err := SelectTier(a, []int{tt.value})
		require.NoError(t, err)
		assert.Equal(t, tt.want, got.Name, "value %d", tt.value)
	}
}

func TestSelectTier_DoubleValue(t *testing.T) {
	t.Parallel()

	a := fireAddedAffix()

	tests := []struct {
		name   string
		values []int
		want   string
	}{
		{"both in T1", []int{12, 22}, "T1"},
		{"first shared, second decides", []int{12, 17}, "T2"},
		{"low tier", []int{2, 5}, "T3"},
		{"first matches but second does not", []int{12, 30}, "T3"},
		{"extra values ignored", []int{12, 22, 999}, "T1"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := SelectTier(a, tt.values)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Name)
		})
	}
}

func TestSelectTier_SingleValueAgainstDoubleRangeTiers(t *testing.T) {
	t.Parallel()

	got, err := SelectTier(fireAddedAffix(), []int{2})
	require.NoError(t, err)
	assert.Equal(t, "T3", got.Name)
}

func TestSelectTier_Corrupt(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		affix  *data.Affix
		values []int
	}{
		{"nil affix", nil, []int{1}},
		{"no values", lifeAffix(), nil},
		{"no tiers", &data.Affix{Description: "# to Life"}, []int{1}},
		{"two values, one range", lifeAffix(), []int{85, 10}},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := SelectTier(tt.affix, tt.values)
			assert.Nil(t, got)
			assert.True(t, errors.Is(err, ErrCorruptTierData), "got %v", err)
		})
	}
}

func TestSelectTier_Idempotent(t *testing.T) {
	t.Parallel()

	a := lifeAffix()
	for v := 0; v <= 100; v++ {
		first, err := SelectTier(a, []int{v})
		require.NoError(t, err)
		second, err := SelectTier(a, []int{v})
		require.NoError(t, err)
		assert.Same(t, first, second, "value %d", v)
	}
}

func TestSelectTier_FallbackIsLastLoaded(t *testing.T) {
	t.Parallel()

	// Unsorted tiers: the fallback still returns the last one loaded.
	a := data.NewTestAffix("#", []string{"k"},
		data.ValueRange{Min: 10, Max: 20},
		data.ValueRange{Min: 50, Max: 60},
		data.ValueRange{Min: 30, Max: 40},
	)
	for _, v := range []int{0, 25, 45, 100} {
		got, err := SelectTier(a, []int{v})
		require.NoError(t, err)
		assert.Same(t, a.LastTier(), got, "value %d", v)
	}
}
