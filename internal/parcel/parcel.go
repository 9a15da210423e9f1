// Package parcel parses Hawaii tax map keys (TMKs) into their fields.
package parcel

import (
	"fmt"
	"regexp"

	"github.com/stwalsh4118/leadrank/internal/models"
)

// DefaultZone is assumed when a key omits the leading zone indicator.
const DefaultZone = "1"

// keyPattern accepts "(1) 2-3-004:005", "(1) 2-3-004005", "1-2-3-004-005"
// and "2-3-004:005". Boundaries are checked separately because RE2 has no
// lookbehind.
var keyPattern = regexp.MustCompile(`(?:\((\d)\)\s*|(\d)-)?(\d)-(\d)-(\d{3})[:-]?(\d{3})`)

// zoneIslands maps the zone digit to its island.
var zoneIslands = map[string]models.Island{
	"1": models.IslandOahu,
	"2": models.IslandMaui,
	"3": models.IslandHawaii,
	"4": models.IslandKauai,
	"5": models.IslandMolokai,
	"6": models.IslandLanai,
}

// ParcelKey is a parsed tax map key. Every field is fixed width; a ParcelKey
// is either fully populated or not returned at all.
type ParcelKey struct {
	Zone    string        `json:"zone"`
	Section string        `json:"section"`
	Plat    string        `json:"plat"`
	Parcel  string        `json:"parcel"`
	Unit    string        `json:"unit"`
	Island  models.Island `json:"island"`
}

// String renders the canonical "(Z) S-P-PPP:UUU" layout. Parse(k.String())
// yields k again.
func (k ParcelKey) String() string {
	return fmt.Sprintf("(%s) %s-%s-%s:%s", k.Zone, k.Section, k.Plat, k.Parcel, k.Unit)
}

// Parse extracts the first well-formed key from text. It reports false when
// text contains no key or the zone digit is outside 1..6.
func Parse(text string) (ParcelKey, bool) {
	for _, loc := range keyPattern.FindAllStringSubmatchIndex(text, -1) {
		if key, ok := fromMatch(text, loc); ok {
			return key, true
		}
	}
	return ParcelKey{}, false
}

// FindAll returns every distinct key in text in order of first appearance.
// It is meant for legal notices that list several parcels.
func FindAll(text string) []ParcelKey {
	var keys []ParcelKey
	seen := make(map[ParcelKey]struct{})
	for _, loc := range keyPattern.FindAllStringSubmatchIndex(text, -1) {
		key, ok := fromMatch(text, loc)
		if !ok {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		keys = append(keys, key)
	}
	return keys
}

// IslandForZone resolves a zone digit to its island.
func IslandForZone(zone string) (models.Island, bool) {
	island, ok := zoneIslands[zone]
	return island, ok
}

func fromMatch(text string, loc []int) (ParcelKey, bool) {
	start, end := loc[0], loc[1]
	if start > 0 && isGlue(text[start-1]) {
		return ParcelKey{}, false
	}
	if end < len(text) && isDigit(text[end]) {
		return ParcelKey{}, false
	}

	zone := group(text, loc, 1)
	if zone == "" {
		zone = group(text, loc, 2)
	}
	if zone == "" {
		zone = DefaultZone
	}
	island, ok := zoneIslands[zone]
	if !ok {
		return ParcelKey{}, false
	}

	return ParcelKey{
		Zone:    zone,
		Section: group(text, loc, 3),
		Plat:    group(text, loc, 4),
		Parcel:  group(text, loc, 5),
		Unit:    group(text, loc, 6),
		Island:  island,
	}, true
}

func group(text string, loc []int, n int) string {
	if loc[2*n] < 0 {
		return ""
	}
	return text[loc[2*n]:loc[2*n+1]]
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func isGlue(b byte) bool {
	return isDigit(b) || b == '-'
}
