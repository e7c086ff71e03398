package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultRetirementAge is the expected retirement age used before the user enters one
const DefaultRetirementAge = 67

// SocialSecurityProfile holds the household's Social Security benefit estimates.
// Exactly one profile exists per plan key.
type SocialSecurityProfile struct {
	CurrentMonthlyBenefit        decimal.Decimal // Informational only, never used in affordability math
	ExpectedRetirementAge        int
	ExpectedMonthlyBenefit       decimal.Decimal
	SpouseCurrentMonthlyBenefit  decimal.Decimal // Informational only
	SpouseExpectedMonthlyBenefit decimal.Decimal // Zero when there is no spouse
	UpdatedAt                    time.Time       // Assigned by the store on write
}

// DefaultSocialSecurity returns the profile used when the slot is empty
func DefaultSocialSecurity() SocialSecurityProfile {
	return SocialSecurityProfile{
		CurrentMonthlyBenefit:        decimal.Zero,
		ExpectedRetirementAge:        DefaultRetirementAge,
		ExpectedMonthlyBenefit:       decimal.Zero,
		SpouseCurrentMonthlyBenefit:  decimal.Zero,
		SpouseExpectedMonthlyBenefit: decimal.Zero,
	}
}

// ExpectedHouseholdBenefit is the expected benefit of both spouses combined
func (p SocialSecurityProfile) ExpectedHouseholdBenefit() decimal.Decimal {
	return p.ExpectedMonthlyBenefit.Add(p.SpouseExpectedMonthlyBenefit)
}

// CurrentHouseholdBenefit is the current benefit of both spouses combined
func (p SocialSecurityProfile) CurrentHouseholdBenefit() decimal.Decimal {
	return p.CurrentMonthlyBenefit.Add(p.SpouseCurrentMonthlyBenefit)
}
