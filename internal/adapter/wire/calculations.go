package wire

import (
	"github.com/simaogato/retireplan-backend/internal/domain"
	"github.com/simaogato/retireplan-backend/internal/usecase/affordability"
)

// Calculations is the wire shape of domain.Calculations, rounded to cents
type Calculations struct {
	TotalMonthlyIncome    Number `json:"totalMonthlyIncome" yaml:"totalMonthlyIncome"`
	AffordableHousePrice  Number `json:"affordableHousePrice" yaml:"affordableHousePrice"`
	MonthlyHousingPayment Number `json:"monthlyHousingPayment" yaml:"monthlyHousingPayment"`
	RemainingIncome       Number `json:"remainingIncome" yaml:"remainingIncome"`
	CurrentHomeEquity     Number `json:"currentHomeEquity" yaml:"currentHomeEquity"`
	CurrentHomePayment    Number `json:"currentHomePayment" yaml:"currentHomePayment"`
	NetHousingChange      Number `json:"netHousingChange" yaml:"netHousingChange"`
}

// FromCalculations rounds the engine output for display
func FromCalculations(c domain.Calculations) Calculations {
	r := c.Rounded()
	return Calculations{
		TotalMonthlyIncome:    Number(domain.Float(r.TotalMonthlyIncome)),
		AffordableHousePrice:  Number(domain.Float(r.AffordableHousePrice)),
		MonthlyHousingPayment: Number(domain.Float(r.MonthlyHousingPayment)),
		RemainingIncome:       Number(domain.Float(r.RemainingIncome)),
		CurrentHomeEquity:     Number(domain.Float(r.CurrentHomeEquity)),
		CurrentHomePayment:    Number(domain.Float(r.CurrentHomePayment)),
		NetHousingChange:      Number(domain.Float(r.NetHousingChange)),
	}
}

// Scenario is one what-if variant
type Scenario struct {
	Name                 string `json:"name" yaml:"name"`
	HousingShare         Number `json:"housingShare" yaml:"housingShare"`
	AffordableHousePrice Number `json:"affordableHousePrice" yaml:"affordableHousePrice"`
}

// Scenarios is the wire shape of affordability.ScenarioSet
type Scenarios struct {
	Conservative           Scenario `json:"conservative" yaml:"conservative"`
	Aggressive             Scenario `json:"aggressive" yaml:"aggressive"`
	CurrentSocialSecurity  Number   `json:"currentSocialSecurity" yaml:"currentSocialSecurity"`
	ExpectedSocialSecurity Number   `json:"expectedSocialSecurity" yaml:"expectedSocialSecurity"`
	SocialSecurityIncrease Number   `json:"socialSecurityIncrease" yaml:"socialSecurityIncrease"`
}

// Breakdown splits the monthly housing payment and the income by source
type Breakdown struct {
	PrincipalAndInterest Number `json:"principalAndInterest" yaml:"principalAndInterest"`
	PropertyTax          Number `json:"propertyTax" yaml:"propertyTax"`
	Insurance            Number `json:"insurance" yaml:"insurance"`
	SocialSecurityIncome Number `json:"socialSecurityIncome" yaml:"socialSecurityIncome"`
	AnnuityIncome        Number `json:"annuityIncome" yaml:"annuityIncome"`
}

// Analysis bundles everything derived from one snapshot
type Analysis struct {
	Calculations Calculations `json:"calculations" yaml:"calculations"`
	Scenarios    Scenarios    `json:"scenarios" yaml:"scenarios"`
	Breakdown    Breakdown    `json:"breakdown" yaml:"breakdown"`
}

// Analyze runs the engine over the snapshot and rounds every result to cents
func Analyze(s domain.PlanSnapshot) Analysis {
	calc := affordability.FullPlanFor(s)
	set := affordability.Scenarios(calc, s.SocialSecurity)
	payment := affordability.Breakdown(calc.AffordableHousePrice, s.Housing)
	income := affordability.IncomeSources(s.SocialSecurity, s.Annuities)

	return Analysis{
		Calculations: FromCalculations(calc),
		Scenarios: Scenarios{
			Conservative:           fromScenario(set.Conservative),
			Aggressive:             fromScenario(set.Aggressive),
			CurrentSocialSecurity:  cents(set.CurrentSocialSecurity),
			ExpectedSocialSecurity: cents(set.ExpectedSocialSecurity),
			SocialSecurityIncrease: cents(set.SocialSecurityIncrease),
		},
		Breakdown: Breakdown{
			PrincipalAndInterest: cents(payment.PrincipalAndInterest),
			PropertyTax:          cents(payment.PropertyTax),
			Insurance:            cents(payment.Insurance),
			SocialSecurityIncome: cents(income.SocialSecurity),
			AnnuityIncome:        cents(income.Annuities),
		},
	}
}

func fromScenario(s affordability.Scenario) Scenario {
	return Scenario{
		Name:                 s.Name,
		HousingShare:         Number(s.HousingShare),
		AffordableHousePrice: cents(s.AffordableHousePrice),
	}
}

func cents(f float64) Number {
	return Number(domain.Float(domain.CurrencyFromFloat(f)))
}
