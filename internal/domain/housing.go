package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Default assumptions for a prospective retirement home
var (
	DefaultInterestRate    = decimal.NewFromFloat(7.5)
	DefaultPropertyTaxRate = decimal.NewFromFloat(1.2)
	DefaultInsuranceRate   = decimal.NewFromFloat(0.5)
)

// DefaultLoanTerm is the default mortgage term in years
const DefaultLoanTerm = 30

// HousingPlan describes the home the household intends to buy in retirement.
// All rates are percentages (7.5 means 7.5%), not fractions.
type HousingPlan struct {
	PreferredLocation string
	MaxMonthlyPayment decimal.Decimal // Recorded preference, the engine derives its own cap
	DownPayment       decimal.Decimal
	InterestRate      decimal.Decimal // Annual percentage
	LoanTerm          int             // Years
	PropertyTaxRate   decimal.Decimal // Annual percentage of house price
	InsuranceRate     decimal.Decimal // Annual percentage of house price
	UpdatedAt         time.Time
}

// DefaultHousingPlan returns the plan used when the slot is empty
func DefaultHousingPlan() HousingPlan {
	return HousingPlan{
		PreferredLocation: "",
		MaxMonthlyPayment: decimal.Zero,
		DownPayment:       decimal.Zero,
		InterestRate:      DefaultInterestRate,
		LoanTerm:          DefaultLoanTerm,
		PropertyTaxRate:   DefaultPropertyTaxRate,
		InsuranceRate:     DefaultInsuranceRate,
	}
}

// CurrentHome describes the home the household occupies today
type CurrentHome struct {
	CurrentValue    decimal.Decimal
	MortgageBalance decimal.Decimal
	MonthlyPayment  decimal.Decimal
	InterestRate    decimal.Decimal
	Location        string
	YearsRemaining  int
	PropertyTaxRate decimal.Decimal
	InsuranceRate   decimal.Decimal
	UpdatedAt       time.Time
}

// DefaultCurrentHome returns the all-zero home used when the slot is empty
func DefaultCurrentHome() CurrentHome {
	return CurrentHome{
		CurrentValue:    decimal.Zero,
		MortgageBalance: decimal.Zero,
		MonthlyPayment:  decimal.Zero,
		InterestRate:    decimal.Zero,
		Location:        "",
		YearsRemaining:  0,
		PropertyTaxRate: decimal.Zero,
		InsuranceRate:   decimal.Zero,
	}
}
