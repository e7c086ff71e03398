package affordability

import "github.com/simaogato/retireplan-backend/internal/domain"

// Static multipliers applied to the affordable price for the what-if comparison.
// Conservative approximates spending 25% of income on housing, aggressive 32%.
const (
	ConservativeMultiplier = 0.89
	AggressiveMultiplier   = 1.14
)

// Scenario is one what-if variant of the affordable price
type Scenario struct {
	Name                 string
	HousingShare         float64 // Share of income spent on housing the scenario approximates
	AffordableHousePrice float64
}

// ScenarioSet compares the canonical result against the what-if variants
type ScenarioSet struct {
	Conservative           Scenario
	Aggressive             Scenario
	CurrentSocialSecurity  float64 // Current household benefit
	ExpectedSocialSecurity float64 // Expected household benefit at retirement
	SocialSecurityIncrease float64
}

// Scenarios derives the conservative and aggressive variants from a finished calculation
// and compares current with expected Social Security benefits
func Scenarios(calc domain.Calculations, ss domain.SocialSecurityProfile) ScenarioSet {
	current := finite(domain.Float(ss.CurrentHouseholdBenefit()))
	expected := finite(domain.Float(ss.ExpectedHouseholdBenefit()))

	return ScenarioSet{
		Conservative: Scenario{
			Name:                 "conservative",
			HousingShare:         0.25,
			AffordableHousePrice: finite(calc.AffordableHousePrice * ConservativeMultiplier),
		},
		Aggressive: Scenario{
			Name:                 "aggressive",
			HousingShare:         0.32,
			AffordableHousePrice: finite(calc.AffordableHousePrice * AggressiveMultiplier),
		},
		CurrentSocialSecurity:  current,
		ExpectedSocialSecurity: expected,
		SocialSecurityIncrease: finite(expected - current),
	}
}
