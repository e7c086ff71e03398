package affordability

import "github.com/simaogato/retireplan-backend/internal/domain"

// PaymentBreakdown splits a monthly housing payment into its components
type PaymentBreakdown struct {
	PrincipalAndInterest float64
	PropertyTax          float64
	Insurance            float64
}

// Total is the full monthly housing payment
func (b PaymentBreakdown) Total() float64 {
	return finite(b.PrincipalAndInterest + b.PropertyTax + b.Insurance)
}

// Breakdown computes the monthly payment components for a house bought at housePrice
func Breakdown(housePrice float64, plan domain.HousingPlan) PaymentBreakdown {
	loanAmount := housePrice - domain.Float(plan.DownPayment)
	return PaymentBreakdown{
		PrincipalAndInterest: PrincipalAndInterest(loanAmount, plan),
		PropertyTax:          finite(housePrice * domain.Float(plan.PropertyTaxRate) / 100 / monthsPerYear),
		Insurance:            finite(housePrice * domain.Float(plan.InsuranceRate) / 100 / monthsPerYear),
	}
}

// IncomeSplit is monthly income grouped by source
type IncomeSplit struct {
	SocialSecurity float64
	Annuities      float64
}

// IncomeSources groups the expected monthly income by source
func IncomeSources(ss domain.SocialSecurityProfile, annuities []domain.Annuity) IncomeSplit {
	return IncomeSplit{
		SocialSecurity: finite(domain.Float(ss.ExpectedHouseholdBenefit())),
		Annuities:      finite(domain.Float(domain.TotalAnnuityIncome(annuities))),
	}
}
