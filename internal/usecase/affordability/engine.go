// Package affordability converts retirement inputs into housing affordability metrics.
//
// Every function is pure and works on unrounded float64 values. Currency rounding happens
// at the input boundary and again only when results are displayed or stored.
package affordability

import (
	"math"

	"github.com/simaogato/retireplan-backend/internal/domain"
)

// FrontEndRatio caps the monthly housing payment at 28% of gross monthly income
const FrontEndRatio = 0.28

const monthsPerYear = 12

// TotalMonthlyIncome sums the expected household Social Security benefit and all annuity payments.
// Current benefits are informational and never enter the affordability math.
func TotalMonthlyIncome(ss domain.SocialSecurityProfile, annuities []domain.Annuity) float64 {
	total := domain.Float(ss.ExpectedMonthlyBenefit) + domain.Float(ss.SpouseExpectedMonthlyBenefit)
	for _, a := range annuities {
		total += domain.Float(a.MonthlyPayment)
	}
	return finite(total)
}

// MaxHousingPayment applies the front-end ratio to the monthly income
func MaxHousingPayment(totalMonthlyIncome float64) float64 {
	return finite(totalMonthlyIncome * FrontEndRatio)
}

// AffordableHousePrice is the canonical affordability formula.
// Logic:
//  1. Cap the monthly payment at 28% of income
//  2. Treat the whole cap as principal and interest and solve for the loan amount
//  3. Add the down payment
func AffordableHousePrice(totalMonthlyIncome float64, plan domain.HousingPlan) float64 {
	loan := LoanAmountForPayment(MaxHousingPayment(totalMonthlyIncome), plan)
	return finite(loan + domain.Float(plan.DownPayment))
}

// AffordableHousePriceNetOfEscrow is the alternative formula that first subtracts
// monthly tax and insurance before solving for the loan amount.
// Tax and insurance are estimated off the down payment, not the house price.
func AffordableHousePriceNetOfEscrow(totalMonthlyIncome float64, plan domain.HousingPlan) float64 {
	downPayment := domain.Float(plan.DownPayment)
	monthlyTax := downPayment * domain.Float(plan.PropertyTaxRate) / 100 / monthsPerYear
	monthlyInsurance := downPayment * domain.Float(plan.InsuranceRate) / 100 / monthsPerYear

	principalAndInterest := MaxHousingPayment(totalMonthlyIncome) - monthlyTax - monthlyInsurance
	loan := LoanAmountForPayment(principalAndInterest, plan)
	return finite(loan + downPayment)
}

// LoanAmountForPayment returns the principal a level monthly payment can amortize over the loan term.
// A zero interest rate degenerates to payment * n.
func LoanAmountForPayment(payment float64, plan domain.HousingPlan) float64 {
	rate, n := monthlyRate(plan), paymentCount(plan)
	if n <= 0 {
		return 0
	}
	if rate == 0 {
		return finite(payment * n)
	}

	growth := math.Pow(1+rate, n)
	return finite(payment * (growth - 1) / (rate * growth))
}

// PrincipalAndInterest returns the level monthly payment that amortizes loanAmount over the loan term.
// A zero interest rate degenerates to loanAmount / n.
func PrincipalAndInterest(loanAmount float64, plan domain.HousingPlan) float64 {
	rate, n := monthlyRate(plan), paymentCount(plan)
	if n <= 0 {
		return 0
	}
	if rate == 0 {
		return finite(loanAmount / n)
	}

	growth := math.Pow(1+rate, n)
	return finite(loanAmount * rate * growth / (growth - 1))
}

// MonthlyHousingPayment returns principal and interest on (housePrice - downPayment)
// plus monthly property tax and insurance on the full house price
func MonthlyHousingPayment(housePrice float64, plan domain.HousingPlan) float64 {
	b := Breakdown(housePrice, plan)
	return b.Total()
}

// CurrentHomeEquity is currentValue - mortgageBalance. It is negative for an underwater mortgage.
func CurrentHomeEquity(home domain.CurrentHome) float64 {
	return finite(domain.Float(home.CurrentValue) - domain.Float(home.MortgageBalance))
}

// NetHousingChange is futurePayment - currentPayment; positive means the future home costs more
func NetHousingChange(futurePayment, currentPayment float64) float64 {
	return finite(futurePayment - currentPayment)
}

// FullPlan composes the engine in order:
// income -> affordable price -> payment at that price -> remaining income -> equity -> net change
func FullPlan(
	ss domain.SocialSecurityProfile,
	annuities []domain.Annuity,
	plan domain.HousingPlan,
	home domain.CurrentHome,
) domain.Calculations {
	income := TotalMonthlyIncome(ss, annuities)
	price := AffordableHousePrice(income, plan)
	payment := MonthlyHousingPayment(price, plan)
	currentPayment := domain.Float(home.MonthlyPayment)

	return domain.Calculations{
		TotalMonthlyIncome:    income,
		AffordableHousePrice:  price,
		MonthlyHousingPayment: payment,
		RemainingIncome:       finite(income - payment),
		CurrentHomeEquity:     CurrentHomeEquity(home),
		CurrentHomePayment:    currentPayment,
		NetHousingChange:      NetHousingChange(payment, currentPayment),
	}
}

// FullPlanFor runs FullPlan over a snapshot
func FullPlanFor(s domain.PlanSnapshot) domain.Calculations {
	return FullPlan(s.SocialSecurity, s.Annuities, s.Housing, s.CurrentHome)
}

func monthlyRate(plan domain.HousingPlan) float64 {
	return domain.Float(plan.InterestRate) / 100 / monthsPerYear
}

func paymentCount(plan domain.HousingPlan) float64 {
	return float64(plan.LoanTerm * monthsPerYear)
}

// finite maps NaN and infinities to zero so they never reach callers
func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
