package classify

import (
	"strings"

	"github.com/stwalsh4118/leadrank/internal/models"
)

// Region is an Oahu market region.
type Region string

const (
	RegionUrbanHonolulu Region = "Urban Honolulu"
	RegionNorthShore    Region = "North Shore"
	RegionWindward      Region = "Windward"
	RegionLeeward       Region = "Leeward"
	RegionCentral       Region = "Central"
)

// PropertyClass is the zoning-style class derived from an address.
type PropertyClass string

const (
	ClassResidential  PropertyClass = "Residential"
	ClassCondominium  PropertyClass = "Condominium"
	ClassCommercial   PropertyClass = "Commercial"
	ClassAgricultural PropertyClass = "Agricultural"
)

// Rule assigns Label when any keyword occurs in the lowercased text.
type Rule[L ~string] struct {
	Label    L
	Keywords []string
}

// Matches reports whether any keyword is a substring of lowered.
func (r Rule[L]) Matches(lowered string) bool {
	for _, kw := range r.Keywords {
		if strings.Contains(lowered, kw) {
			return true
		}
	}
	return false
}

// firstMatch walks rules in order and returns the first label that matches.
func firstMatch[L ~string](rules []Rule[L], lowered string, fallback L) L {
	for _, r := range rules {
		if r.Matches(lowered) {
			return r.Label
		}
	}
	return fallback
}

// cloneRules copies a table and lowercases its keywords so callers cannot
// mutate a Classifier after construction.
func cloneRules[L ~string](rules []Rule[L]) []Rule[L] {
	out := make([]Rule[L], len(rules))
	for i, r := range rules {
		kws := make([]string, len(r.Keywords))
		for j, kw := range r.Keywords {
			kws[j] = strings.ToLower(kw)
		}
		out[i] = Rule[L]{Label: r.Label, Keywords: kws}
	}
	return out
}

// IslandRules is checked before any region rule.
var IslandRules = []Rule[models.Island]{
	{Label: models.IslandMaui, Keywords: []string{"maui", "lahaina", "kihei"}},
	{Label: models.IslandHawaii, Keywords: []string{"big island", "hilo", "kona"}},
	{Label: models.IslandKauai, Keywords: []string{"kauai", "lihue"}},
	{Label: models.IslandMolokai, Keywords: []string{"molokai", "kaunakakai"}},
	{Label: models.IslandLanai, Keywords: []string{"lanai city"}},
}

// RegionRules only apply to addresses on the default island.
var RegionRules = []Rule[Region]{
	{Label: RegionNorthShore, Keywords: []string{"north shore", "haleiwa"}},
	{Label: RegionWindward, Keywords: []string{"windward", "kailua", "kaneohe"}},
	{Label: RegionLeeward, Keywords: []string{"leeward", "waianae", "kapolei"}},
	{Label: RegionUrbanHonolulu, Keywords: []string{"honolulu", "waikiki"}},
}

// ClassRules map type keywords to a property class.
var ClassRules = []Rule[PropertyClass]{
	{Label: ClassCondominium, Keywords: []string{"condo", "apartment"}},
	{Label: ClassCommercial, Keywords: []string{"commercial", "retail"}},
	{Label: ClassAgricultural, Keywords: []string{"farm", "agricultural"}},
}

// KnownCities are place names that put an address inside the state.
var KnownCities = []string{
	"honolulu", "hilo", "kailua-kona", "kaneohe", "waipahu", "pearl city",
	"kailua", "kihei", "lahaina", "lihue", "aiea", "mililani", "ewa beach",
}
