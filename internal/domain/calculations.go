package domain

import "github.com/shopspring/decimal"

// Calculations holds the affordability metrics derived from a PlanSnapshot.
// Values are unrounded; use Rounded for display or transport.
// Calculations are never persisted and are recomputed on every change.
type Calculations struct {
	TotalMonthlyIncome    float64
	AffordableHousePrice  float64
	MonthlyHousingPayment float64
	RemainingIncome       float64
	CurrentHomeEquity     float64 // Negative when the mortgage is underwater
	CurrentHomePayment    float64
	NetHousingChange      float64 // Positive when the future home costs more per month
}

// RoundedCalculations is Calculations rounded to cents
type RoundedCalculations struct {
	TotalMonthlyIncome    decimal.Decimal
	AffordableHousePrice  decimal.Decimal
	MonthlyHousingPayment decimal.Decimal
	RemainingIncome       decimal.Decimal
	CurrentHomeEquity     decimal.Decimal
	CurrentHomePayment    decimal.Decimal
	NetHousingChange      decimal.Decimal
}

// Rounded returns the calculations rounded to cents for display
func (c Calculations) Rounded() RoundedCalculations {
	return RoundedCalculations{
		TotalMonthlyIncome:    CurrencyFromFloat(c.TotalMonthlyIncome),
		AffordableHousePrice:  CurrencyFromFloat(c.AffordableHousePrice),
		MonthlyHousingPayment: CurrencyFromFloat(c.MonthlyHousingPayment),
		RemainingIncome:       CurrencyFromFloat(c.RemainingIncome),
		CurrentHomeEquity:     CurrencyFromFloat(c.CurrentHomeEquity),
		CurrentHomePayment:    CurrencyFromFloat(c.CurrentHomePayment),
		NetHousingChange:      CurrencyFromFloat(c.NetHousingChange),
	}
}

// HousingCostsMore reports whether the future home costs more per month than the current one
func (c Calculations) HousingCostsMore() bool {
	return c.NetHousingChange > 0
}
