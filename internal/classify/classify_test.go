package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/stwalsh4118/leadrank/internal/models"
)

func TestClassify(t *testing.T) {
	c := Default()

	tests := []struct {
		name    string
		address string
		parcel  string
		want    Classification
	}{
		{
			name:    "urban honolulu residential",
			address: "123 Main St, Honolulu, HI 96815",
			want:    Classification{models.IslandOahu, RegionUrbanHonolulu, ClassResidential},
		},
		{
			name:    "no keywords falls back to defaults",
			address: "1 Unknown Rd",
			want:    Classification{models.IslandOahu, RegionCentral, ClassResidential},
		},
		{
			name:    "maui island skips oahu regions",
			address: "55 S Kihei Rd, Kihei, HI 96753",
			want:    Classification{models.IslandMaui, RegionCentral, ClassResidential},
		},
		{
			name:    "kailua-kona is big island even though it contains kailua",
			address: "75-5660 Palani Rd, Kailua-Kona, HI 96740",
			want:    Classification{models.IslandHawaii, RegionCentral, ClassResidential},
		},
		{
			name:    "windward oahu",
			address: "300 Kuulei Rd, Kailua, HI 96734",
			want:    Classification{models.IslandOahu, RegionWindward, ClassResidential},
		},
		{
			name:    "first region rule wins",
			address: "North Shore lot, mailing via Honolulu",
			want:    Classification{models.IslandOahu, RegionNorthShore, ClassResidential},
		},
		{
			name:    "condo class",
			address: "2211 Ala Wai Blvd Apartment 1203, Waikiki",
			want:    Classification{models.IslandOahu, RegionUrbanHonolulu, ClassCondominium},
		},
		{
			name:    "condo rule precedes commercial",
			address: "Commercial condo unit, Kapolei",
			want:    Classification{models.IslandOahu, RegionLeeward, ClassCondominium},
		},
		{
			name:    "agricultural on kauai",
			address: "Farm lot, Lihue, Kauai",
			want:    Classification{models.IslandKauai, RegionCentral, ClassAgricultural},
		},
		{
			name:    "case insensitive",
			address: "RETAIL SPACE, HILO",
			want:    Classification{models.IslandHawaii, RegionCentral, ClassCommercial},
		},
		{
			name:    "parcel key decides island",
			address: "123 Main St, Honolulu, HI 96815",
			parcel:  "(2) 2-3-004:005",
			want:    Classification{models.IslandMaui, RegionCentral, ClassResidential},
		},
		{
			name:    "unparseable parcel key is ignored",
			address: "123 Main St, Honolulu, HI 96815",
			parcel:  "not-a-key",
			want:    Classification{models.IslandOahu, RegionUrbanHonolulu, ClassResidential},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Classify(tt.address, tt.parcel))
		})
	}
}

func TestNew_CustomRulesAreCopied(t *testing.T) {
	rules := []Rule[PropertyClass]{
		{Label: ClassCommercial, Keywords: []string{"Warehouse"}},
	}
	c := New(WithClassRules(rules))

	rules[0].Keywords[0] = "changed"

	got := c.Classify("Warehouse on Sand Island", "")
	assert.Equal(t, ClassCommercial, got.PropertyClass)
	assert.Equal(t, ClassResidential, c.Classify("Condo tower", "").PropertyClass)
}

func TestValidateAddress(t *testing.T) {
	c := Default()

	tests := []struct {
		address string
		want    bool
	}{
		{"98-1005 Moanalua Rd, Aiea", true},
		{"PO Box 96815", true},
		{"123 Main St, HI", true},
		{"Somewhere in Hawaii", true},
		{"500 Congress Ave, Austin, TX 78701", false},
		{"Philadelphia, PA 19104", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.address, func(t *testing.T) {
			assert.Equal(t, tt.want, c.ValidateAddress(tt.address))
		})
	}
}

func TestRule_Matches(t *testing.T) {
	r := Rule[Region]{Label: RegionLeeward, Keywords: []string{"waianae"}}

	assert.True(t, r.Matches("87-100 farrington hwy, waianae"))
	assert.False(t, r.Matches("kapolei"))
}
