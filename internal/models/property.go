package models

import (
	"time"
)

// PropertyType is the storage label for a property's physical type.
type PropertyType string

const (
	PropertyTypeSingleFamily PropertyType = "Single Family"
	PropertyTypeCondo        PropertyType = "Condo"
	PropertyTypeMultifamily  PropertyType = "Multifamily"
	PropertyTypeCommercial   PropertyType = "Commercial"
	PropertyTypeAgricultural PropertyType = "Agricultural"
	PropertyTypeLand         PropertyType = "Land"
)

// PropertyStatus describes why a property is in the pipeline.
type PropertyStatus string

const (
	PropertyStatusForeclosure   PropertyStatus = "foreclosure"
	PropertyStatusTaxDelinquent PropertyStatus = "tax_delinquent"
	PropertyStatusAuction       PropertyStatus = "auction"
	PropertyStatusWholesale     PropertyStatus = "wholesale"
)

// DistressedStatuses lists the statuses the priority refresher and the
// investor matcher consider.
var DistressedStatuses = []PropertyStatus{
	PropertyStatusForeclosure,
	PropertyStatusTaxDelinquent,
	PropertyStatusAuction,
	PropertyStatusWholesale,
}

// Priority is the coarse follow-up priority stored on a property.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Property is a snapshot of a distressed property record.
// Nullable numeric fields use pointers so that "absent" and zero stay distinct.
// Money amounts are whole dollars.
type Property struct {
	CreatedAt        time.Time      `json:"createdAt"`
	UpdatedAt        time.Time      `json:"updatedAt"`
	EstimatedValue   *int64         `json:"estimatedValue,omitempty"`
	AmountOwed       *int64         `json:"amountOwed,omitempty"`
	AskingPrice      *int64         `json:"askingPrice,omitempty"`
	ContractPrice    *int64         `json:"contractPrice,omitempty"`
	DaysUntilAuction *int           `json:"daysUntilAuction,omitempty"`
	SquareFeet       *int           `json:"squareFeet,omitempty"`
	ParcelKey        *string        `json:"parcelKey,omitempty"`
	ZipCode          *string        `json:"zipCode,omitempty"`
	Address          string         `json:"address"`
	City             string         `json:"city"`
	State            string         `json:"state"`
	PropertyType     PropertyType   `json:"propertyType,omitempty"`
	Status           PropertyStatus `json:"status"`
	Priority         Priority       `json:"priority"`
	ID               int64          `json:"id"`
}

// Price returns the figure a buyer would pay: the contract price when set,
// then the asking price, then the estimated value.
func (p Property) Price() (int64, bool) {
	switch {
	case p.ContractPrice != nil && *p.ContractPrice > 0:
		return *p.ContractPrice, true
	case p.AskingPrice != nil && *p.AskingPrice > 0:
		return *p.AskingPrice, true
	case p.EstimatedValue != nil && *p.EstimatedValue > 0:
		return *p.EstimatedValue, true
	}
	return 0, false
}

// ParcelText returns the raw parcel key or an empty string.
func (p Property) ParcelText() string {
	if p.ParcelKey == nil {
		return ""
	}
	return *p.ParcelKey
}
