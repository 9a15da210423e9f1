package parcel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stwalsh4118/leadrank/internal/models"
)

func TestParse_CanonicalLayout(t *testing.T) {
	key, ok := Parse("(1) 2-3-004:005")

	require.True(t, ok)
	assert.Equal(t, "1", key.Zone)
	assert.Equal(t, "2", key.Section)
	assert.Equal(t, "3", key.Plat)
	assert.Equal(t, "004", key.Parcel)
	assert.Equal(t, "005", key.Unit)
	assert.Equal(t, models.IslandOahu, key.Island)
}

func TestParse_Layouts(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		zone   string
		island models.Island
	}{
		{"colon omitted", "(2) 2-3-004005", "2", models.IslandMaui},
		{"hyphenated with bare zone", "3-2-3-004-005", "3", models.IslandHawaii},
		{"zone omitted defaults to 1", "2-3-004:005", "1", models.IslandOahu},
		{"embedded in notice text", "TMK: (4) 2-3-004:005, Lihue", "4", models.IslandKauai},
		{"space after paren optional", "(5)2-3-004:005", "5", models.IslandMolokai},
		{"lanai zone", "(6) 2-3-004:005", "6", models.IslandLanai},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, ok := Parse(tt.input)
			require.True(t, ok, "expected %q to parse", tt.input)
			assert.Equal(t, tt.zone, key.Zone)
			assert.Equal(t, tt.island, key.Island)
			assert.Equal(t, "2", key.Section)
			assert.Equal(t, "3", key.Plat)
			assert.Equal(t, "004", key.Parcel)
			assert.Equal(t, "005", key.Unit)
		})
	}
}

func TestParse_Rejects(t *testing.T) {
	inputs := []string{
		"",
		"not-a-key",
		"(1) 2-3-04:005",
		"(7) 2-3-004:005",
		"(0) 2-3-004:005",
		"12-3-004:005",
		"2-3-004:0051",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			key, ok := Parse(input)
			assert.False(t, ok)
			assert.Equal(t, ParcelKey{}, key, "no partially filled key may be returned")
		})
	}
}

func TestParse_RoundTrip(t *testing.T) {
	inputs := []string{
		"(1) 2-3-004:005",
		"1-2-3-004-005",
		"2-3-004005",
		"(3) 9-8-123:456",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			first, ok := Parse(input)
			require.True(t, ok)

			second, ok := Parse(first.String())
			require.True(t, ok)
			assert.Equal(t, first, second)
		})
	}
}

func TestFindAll(t *testing.T) {
	notice := "Parcels TMK (1) 2-3-004:005 and TMK (2) 4-5-006:007; see also (1) 2-3-004:005."

	keys := FindAll(notice)

	require.Len(t, keys, 2)
	assert.Equal(t, "(1) 2-3-004:005", keys[0].String())
	assert.Equal(t, "(2) 4-5-006:007", keys[1].String())
	assert.Empty(t, FindAll("no keys here"))
}

func TestIslandForZone(t *testing.T) {
	island, ok := IslandForZone("3")
	assert.True(t, ok)
	assert.Equal(t, models.IslandHawaii, island)

	_, ok = IslandForZone("9")
	assert.False(t, ok)
}
