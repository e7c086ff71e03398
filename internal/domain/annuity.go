package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AnnuityType represents the kind of annuity contract
type AnnuityType string

const (
	AnnuityTypeImmediate AnnuityType = "immediate"
	AnnuityTypeDeferred  AnnuityType = "deferred"
	AnnuityTypeVariable  AnnuityType = "variable"
	AnnuityTypeFixed     AnnuityType = "fixed"
)

// Valid reports whether t is one of the known annuity types
func (t AnnuityType) Valid() bool {
	switch t {
	case AnnuityTypeImmediate, AnnuityTypeDeferred, AnnuityTypeVariable, AnnuityTypeFixed:
		return true
	}
	return false
}

// ParseAnnuityType maps free-form input onto a known type.
// Unknown or empty values become AnnuityTypeFixed, the form's default selection.
func ParseAnnuityType(raw string) AnnuityType {
	t := AnnuityType(strings.ToLower(strings.TrimSpace(raw)))
	if !t.Valid() {
		return AnnuityTypeFixed
	}
	return t
}

// Annuity is one income-producing annuity held by the household.
// Annuities form an ordered collection; the order is display-relevant only.
// Names are not unique, identity is the storage-assigned ID.
type Annuity struct {
	ID                uuid.UUID // uuid.Nil until first saved
	Name              string
	Type              AnnuityType
	MonthlyPayment    decimal.Decimal
	InitialInvestment decimal.Decimal
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// DefaultAnnuity returns the blank placeholder shown when no annuities are stored
func DefaultAnnuity() Annuity {
	return Annuity{
		Name:              "",
		Type:              AnnuityTypeFixed,
		MonthlyPayment:    decimal.Zero,
		InitialInvestment: decimal.Zero,
	}
}

// Validate ensures the annuity can be persisted
func (a *Annuity) Validate() error {
	if !a.Type.Valid() {
		return errors.New("annuity type must be immediate, deferred, variable, or fixed")
	}
	return nil
}

// TotalAnnuityIncome sums the monthly payments of all annuities
func TotalAnnuityIncome(annuities []Annuity) decimal.Decimal {
	total := decimal.Zero
	for _, a := range annuities {
		total = total.Add(a.MonthlyPayment)
	}
	return total
}
