// Package classify labels a property with island, region and property class
// using ordered keyword tables.
package classify

import (
	"regexp"
	"strings"

	"github.com/stwalsh4118/leadrank/internal/models"
	"github.com/stwalsh4118/leadrank/internal/parcel"
)

var (
	zipPattern   = regexp.MustCompile(`\b9(67|68)\d{2}\b`)
	statePattern = regexp.MustCompile(`(?i)\bhi\b|\bhawaii\b`)
)

// Classification holds three independent labels for one property.
type Classification struct {
	Island        models.Island `json:"island"`
	Region        Region        `json:"region"`
	PropertyClass PropertyClass `json:"property_class"`
}

// Classifier holds immutable rule tables. It is safe for concurrent use.
type Classifier struct {
	islands       []Rule[models.Island]
	regions       []Rule[Region]
	classes       []Rule[PropertyClass]
	cities        []string
	defaultIsland models.Island
	defaultRegion Region
	defaultClass  PropertyClass
}

// Option customises a Classifier at construction.
type Option func(*Classifier)

// WithIslandRules replaces the island table.
func WithIslandRules(rules []Rule[models.Island]) Option {
	return func(c *Classifier) { c.islands = cloneRules(rules) }
}

// WithRegionRules replaces the region table.
func WithRegionRules(rules []Rule[Region]) Option {
	return func(c *Classifier) { c.regions = cloneRules(rules) }
}

// WithClassRules replaces the property-class table.
func WithClassRules(rules []Rule[PropertyClass]) Option {
	return func(c *Classifier) { c.classes = cloneRules(rules) }
}

// WithCities replaces the city list used by ValidateAddress.
func WithCities(cities []string) Option {
	return func(c *Classifier) {
		c.cities = make([]string, len(cities))
		for i, city := range cities {
			c.cities[i] = strings.ToLower(city)
		}
	}
}

// New builds a Classifier from the Hawaii tables, then applies opts.
func New(opts ...Option) *Classifier {
	c := &Classifier{
		islands:       cloneRules(IslandRules),
		regions:       cloneRules(RegionRules),
		classes:       cloneRules(ClassRules),
		defaultIsland: models.Islands[0],
		defaultRegion: RegionCentral,
		defaultClass:  ClassResidential,
	}
	WithCities(KnownCities)(c)
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Default returns a Classifier with the Hawaii tables.
func Default() *Classifier {
	return New()
}

// Classify labels an address. A parseable parcel key decides the island;
// otherwise island keywords do. Region keywords are only consulted for the
// default island. It never fails.
func (c *Classifier) Classify(address, parcelKey string) Classification {
	lowered := strings.ToLower(address)

	island := firstMatch(c.islands, lowered, c.defaultIsland)
	if key, ok := parcel.Parse(parcelKey); ok {
		island = key.Island
	}

	region := c.defaultRegion
	if island == c.defaultIsland {
		region = firstMatch(c.regions, lowered, c.defaultRegion)
	}

	return Classification{
		Island:        island,
		Region:        region,
		PropertyClass: firstMatch(c.classes, lowered, c.defaultClass),
	}
}

// ValidateAddress reports whether address plausibly lies in the state: a
// known city, a 967xx/968xx postal code, or the state name or abbreviation.
func (c *Classifier) ValidateAddress(address string) bool {
	lowered := strings.ToLower(address)
	for _, city := range c.cities {
		if strings.Contains(lowered, city) {
			return true
		}
	}
	return zipPattern.MatchString(address) || statePattern.MatchString(address)
}
