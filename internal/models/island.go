package models

import "strings"

// Island is one of the six county tax-map islands.
type Island string

const (
	IslandOahu    Island = "Oahu"
	IslandMaui    Island = "Maui"
	IslandHawaii  Island = "Hawaii"
	IslandKauai   Island = "Kauai"
	IslandMolokai Island = "Molokai"
	IslandLanai   Island = "Lanai"
)

// Islands is the enumeration in tax-map zone order. The first entry is the
// default island for classification.
var Islands = []Island{
	IslandOahu,
	IslandMaui,
	IslandHawaii,
	IslandKauai,
	IslandMolokai,
	IslandLanai,
}

var islandAliases = map[string]Island{
	"big island":    IslandHawaii,
	"hawaii island": IslandHawaii,
	"o'ahu":         IslandOahu,
	"lana'i":        IslandLanai,
	"moloka'i":      IslandMolokai,
	"kaua'i":        IslandKauai,
}

// ParseIsland resolves a free-form island label, including common aliases,
// to an Island. It reports false for unknown labels.
func ParseIsland(label string) (Island, bool) {
	key := strings.ToLower(strings.TrimSpace(label))
	if key == "" {
		return "", false
	}
	for _, island := range Islands {
		if strings.ToLower(string(island)) == key {
			return island, true
		}
	}
	island, ok := islandAliases[key]
	return island, ok
}
