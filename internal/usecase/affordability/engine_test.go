package affordability

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simaogato/retireplan-backend/internal/domain"
)

const tolerance = 1e-6

func samplePlan() domain.HousingPlan {
	return domain.HousingPlan{
		DownPayment:     decimal.NewFromInt(50000),
		InterestRate:    decimal.NewFromInt(6),
		LoanTerm:        30,
		PropertyTaxRate: decimal.RequireFromString("1.2"),
		InsuranceRate:   decimal.RequireFromString("0.5"),
	}
}

func sampleSocialSecurity() domain.SocialSecurityProfile {
	ss := domain.DefaultSocialSecurity()
	ss.ExpectedMonthlyBenefit = decimal.NewFromInt(2000)
	ss.SpouseExpectedMonthlyBenefit = decimal.NewFromInt(1000)
	return ss
}

func sampleAnnuities() []domain.Annuity {
	return []domain.Annuity{
		{Name: "Pension Plus", Type: domain.AnnuityTypeFixed, MonthlyPayment: decimal.NewFromInt(500)},
	}
}

func TestTotalMonthlyIncome(t *testing.T) {
	assert.InDelta(t, 3500.0, TotalMonthlyIncome(sampleSocialSecurity(), sampleAnnuities()), tolerance)
}

func TestTotalMonthlyIncome_IgnoresCurrentBenefits(t *testing.T) {
	ss := sampleSocialSecurity()
	ss.CurrentMonthlyBenefit = decimal.NewFromInt(9999)
	ss.SpouseCurrentMonthlyBenefit = decimal.NewFromInt(9999)

	assert.InDelta(t, 3500.0, TotalMonthlyIncome(ss, sampleAnnuities()), tolerance)
}

func TestTotalMonthlyIncome_EmptyAnnuitiesNoSpouse(t *testing.T) {
	ss := domain.DefaultSocialSecurity()
	ss.ExpectedMonthlyBenefit = decimal.RequireFromString("1834.25")

	assert.Equal(t, 1834.25, TotalMonthlyIncome(ss, nil))
	assert.Equal(t, 1834.25, TotalMonthlyIncome(ss, []domain.Annuity{}))
}

func TestAffordableHousePrice_ConcreteScenario(t *testing.T) {
	income := TotalMonthlyIncome(sampleSocialSecurity(), sampleAnnuities())

	assert.InDelta(t, 980.0, MaxHousingPayment(income), tolerance)

	loan := LoanAmountForPayment(980, samplePlan())
	assert.InDelta(t, 163455.78, loan, 0.01)

	price := AffordableHousePrice(income, samplePlan())
	assert.InDelta(t, 213455.78, price, 0.01)
}

func TestAffordableHousePriceNetOfEscrow(t *testing.T) {
	plan := samplePlan()

	price := AffordableHousePriceNetOfEscrow(3500, plan)

	// 980 - 50 (tax on down payment) - 20.83 (insurance on down payment) amortized, plus down payment
	assert.InDelta(t, 201641.38, price, 0.01)
	assert.Less(t, price, AffordableHousePrice(3500, plan))
}

func TestAffordableHousePrice_ZeroDownPaymentVariantsAgree(t *testing.T) {
	plan := samplePlan()
	plan.DownPayment = decimal.Zero

	assert.InDelta(t, AffordableHousePrice(4200, plan), AffordableHousePriceNetOfEscrow(4200, plan), tolerance)
}

func TestRoundTrip_PrincipalAndInterestReconstructsCap(t *testing.T) {
	tests := []struct {
		name   string
		income float64
		rate   string
		term   int
	}{
		{name: "6% over 30 years", income: 3500, rate: "6", term: 30},
		{name: "7.5% over 30 years", income: 5200, rate: "7.5", term: 30},
		{name: "3.25% over 15 years", income: 2750.40, rate: "3.25", term: 15},
		{name: "12% over 10 years", income: 10000, rate: "12", term: 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := samplePlan()
			plan.InterestRate = decimal.RequireFromString(tt.rate)
			plan.LoanTerm = tt.term

			price := AffordableHousePrice(tt.income, plan)
			breakdown := Breakdown(price, plan)

			assert.InDelta(t, tt.income*FrontEndRatio, breakdown.PrincipalAndInterest, 1e-6)
		})
	}
}

func TestZeroInterestRate_IsFinite(t *testing.T) {
	plan := samplePlan()
	plan.InterestRate = decimal.Zero

	price := AffordableHousePrice(3500, plan)
	require.False(t, math.IsNaN(price))
	require.False(t, math.IsInf(price, 0))
	assert.InDelta(t, 980.0*360+50000, price, tolerance)

	payment := MonthlyHousingPayment(price, plan)
	require.False(t, math.IsNaN(payment))
	require.False(t, math.IsInf(payment, 0))

	breakdown := Breakdown(price, plan)
	assert.InDelta(t, 980.0, breakdown.PrincipalAndInterest, tolerance)

	netOfEscrow := AffordableHousePriceNetOfEscrow(3500, plan)
	assert.False(t, math.IsNaN(netOfEscrow))
}

func TestZeroLoanTerm_IsFinite(t *testing.T) {
	plan := samplePlan()
	plan.LoanTerm = 0

	assert.Equal(t, 0.0, LoanAmountForPayment(980, plan))
	assert.Equal(t, 0.0, PrincipalAndInterest(100000, plan))
	assert.InDelta(t, 50000.0, AffordableHousePrice(3500, plan), tolerance)

	plan.InterestRate = decimal.Zero
	assert.Equal(t, 0.0, PrincipalAndInterest(100000, plan))
}

func TestMonthlyHousingPayment(t *testing.T) {
	plan := samplePlan()

	payment := MonthlyHousingPayment(213455.78210448736, plan)

	// 980 P&I + 213.46 tax + 88.94 insurance
	assert.InDelta(t, 1282.40, payment, 0.01)
}

func TestCurrentHomeEquity(t *testing.T) {
	home := domain.DefaultCurrentHome()
	home.CurrentValue = decimal.NewFromInt(300000)
	home.MortgageBalance = decimal.NewFromInt(120000)
	assert.Equal(t, 180000.0, CurrentHomeEquity(home))

	home.MortgageBalance = decimal.NewFromInt(350000)
	assert.Equal(t, -50000.0, CurrentHomeEquity(home), "underwater mortgage must not clamp to zero")
}

func TestNetHousingChange_Sign(t *testing.T) {
	assert.Equal(t, 250.0, NetHousingChange(1250, 1000))
	assert.Equal(t, -250.0, NetHousingChange(1000, 1250))
	assert.Equal(t, 0.0, NetHousingChange(1000, 1000))
}

func TestFullPlan(t *testing.T) {
	home := domain.DefaultCurrentHome()
	home.CurrentValue = decimal.NewFromInt(300000)
	home.MortgageBalance = decimal.NewFromInt(120000)
	home.MonthlyPayment = decimal.NewFromInt(1500)

	calc := FullPlan(sampleSocialSecurity(), sampleAnnuities(), samplePlan(), home)

	assert.InDelta(t, 3500.0, calc.TotalMonthlyIncome, tolerance)
	assert.InDelta(t, 213455.78, calc.AffordableHousePrice, 0.01)
	assert.InDelta(t, 1282.40, calc.MonthlyHousingPayment, 0.01)
	assert.InDelta(t, 2217.60, calc.RemainingIncome, 0.01)
	assert.Equal(t, 180000.0, calc.CurrentHomeEquity)
	assert.Equal(t, 1500.0, calc.CurrentHomePayment)
	assert.InDelta(t, -217.60, calc.NetHousingChange, 0.01)
	assert.False(t, calc.HousingCostsMore())

	rounded := calc.Rounded()
	assert.Equal(t, "213455.78", rounded.AffordableHousePrice.StringFixed(2))
	assert.Equal(t, "2217.60", rounded.RemainingIncome.StringFixed(2))
}

func TestFullPlan_Defaults(t *testing.T) {
	calc := FullPlanFor(domain.DefaultSnapshot())

	assert.Equal(t, domain.Calculations{}, calc)
}
