package matching

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/stwalsh4118/leadrank/internal/models"
)

// Constraint names one hard rule of the filter stage.
type Constraint string

const (
	ConstraintStatus       Constraint = "status"
	ConstraintBudget       Constraint = "budget"
	ConstraintIsland       Constraint = "island"
	ConstraintPropertyType Constraint = "property_type"
)

// Failure records one violated constraint.
type Failure struct {
	Constraint Constraint `json:"constraint"`
	Reason     string     `json:"reason"`
}

// Verdict is the filter outcome for one investor. Failures is empty exactly
// when Accepted is true.
type Verdict struct {
	Accepted bool      `json:"accepted"`
	Failures []Failure `json:"failures,omitempty"`
}

// Filter evaluates every hard constraint for inv against the property and
// its classified island. It does not stop at the first failure.
func Filter(inv models.Investor, p models.Property, island models.Island) Verdict {
	var failures []Failure
	add := func(c Constraint, format string, args ...any) {
		failures = append(failures, Failure{Constraint: c, Reason: fmt.Sprintf(format, args...)})
	}

	if !inv.IsActive() {
		status := string(inv.Status)
		if status == "" {
			status = "unset"
		}
		add(ConstraintStatus, "investor status is %s", status)
	}

	if reason, ok := checkBudget(inv, p); !ok {
		add(ConstraintBudget, "%s", reason)
	}

	if !islandAllowed(inv.PreferredIslands, island) {
		add(ConstraintIsland, "%s not in preferred islands (%s)", island, strings.Join(inv.PreferredIslands, ", "))
	}

	if !typeAllowed(inv.PropertyTypes, p.PropertyType) {
		propertyType := string(p.PropertyType)
		if propertyType == "" {
			propertyType = "unknown property type"
		}
		add(ConstraintPropertyType, "%s not in accepted property types (%s)", propertyType, strings.Join(inv.PropertyTypes, ", "))
	}

	return Verdict{Accepted: len(failures) == 0, Failures: failures}
}

// bounds returns the investor budget with zero or nil bounds reported unset.
func bounds(inv models.Investor) (lo, hi int64, hasLo, hasHi bool) {
	if inv.MinBudget != nil && *inv.MinBudget > 0 {
		lo, hasLo = *inv.MinBudget, true
	}
	if inv.MaxBudget != nil && *inv.MaxBudget > 0 {
		hi, hasHi = *inv.MaxBudget, true
	}
	return lo, hi, hasLo, hasHi
}

func checkBudget(inv models.Investor, p models.Property) (string, bool) {
	lo, hi, hasLo, hasHi := bounds(inv)
	if !hasLo && !hasHi {
		return "", true
	}

	price, known := p.Price()
	if !known {
		return "property price unknown", false
	}
	if hasLo && price < lo {
		return fmt.Sprintf("price %s below minimum budget %s", dollars(price), dollars(lo)), false
	}
	if hasHi && price > hi {
		return fmt.Sprintf("price %s above maximum budget %s", dollars(price), dollars(hi)), false
	}
	return "", true
}

func islandAllowed(preferred []string, island models.Island) bool {
	if len(preferred) == 0 {
		return true
	}
	for _, label := range preferred {
		if parsed, ok := models.ParseIsland(label); ok && parsed == island {
			return true
		}
	}
	return false
}

func typeAllowed(accepted []string, propertyType models.PropertyType) bool {
	if len(accepted) == 0 {
		return true
	}
	if strings.TrimSpace(string(propertyType)) == "" {
		return false
	}
	want := NormalizePropertyType(string(propertyType))
	for _, label := range accepted {
		if strings.EqualFold(string(NormalizePropertyType(label)), string(want)) {
			return true
		}
	}
	return false
}

func dollars(amount int64) string {
	return "$" + humanize.Comma(amount)
}
