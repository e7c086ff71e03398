package wire

import (
	"time"

	"github.com/google/uuid"

	"github.com/simaogato/retireplan-backend/internal/domain"
)

// SocialSecurity is the wire shape of domain.SocialSecurityProfile
type SocialSecurity struct {
	CurrentMonthlyBenefit        Number     `json:"currentMonthlyBenefit" toml:"currentMonthlyBenefit" yaml:"currentMonthlyBenefit"`
	ExpectedRetirementAge        Number     `json:"expectedRetirementAge" toml:"expectedRetirementAge" yaml:"expectedRetirementAge"`
	ExpectedMonthlyBenefit       Number     `json:"expectedMonthlyBenefit" toml:"expectedMonthlyBenefit" yaml:"expectedMonthlyBenefit"`
	SpouseCurrentMonthlyBenefit  Number     `json:"spouseCurrentMonthlyBenefit" toml:"spouseCurrentMonthlyBenefit" yaml:"spouseCurrentMonthlyBenefit"`
	SpouseExpectedMonthlyBenefit Number     `json:"spouseExpectedMonthlyBenefit" toml:"spouseExpectedMonthlyBenefit" yaml:"spouseExpectedMonthlyBenefit"`
	UpdatedAt                    *time.Time `json:"updatedAt,omitempty" toml:"-" yaml:"-"`
}

// Annuity is the wire shape of domain.Annuity
type Annuity struct {
	ID                string     `json:"id,omitempty" toml:"id" yaml:"id"`
	Name              string     `json:"name" toml:"name" yaml:"name"`
	Type              string     `json:"type" toml:"type" yaml:"type"`
	MonthlyPayment    Number     `json:"monthlyPayment" toml:"monthlyPayment" yaml:"monthlyPayment"`
	InitialInvestment Number     `json:"initialInvestment" toml:"initialInvestment" yaml:"initialInvestment"`
	CreatedAt         *time.Time `json:"createdAt,omitempty" toml:"-" yaml:"-"`
	UpdatedAt         *time.Time `json:"updatedAt,omitempty" toml:"-" yaml:"-"`
}

// Housing is the wire shape of domain.HousingPlan
type Housing struct {
	PreferredLocation string     `json:"preferredLocation" toml:"preferredLocation" yaml:"preferredLocation"`
	MaxMonthlyPayment Number     `json:"maxMonthlyPayment" toml:"maxMonthlyPayment" yaml:"maxMonthlyPayment"`
	DownPayment       Number     `json:"downPayment" toml:"downPayment" yaml:"downPayment"`
	InterestRate      Number     `json:"interestRate" toml:"interestRate" yaml:"interestRate"`
	LoanTerm          Number     `json:"loanTerm" toml:"loanTerm" yaml:"loanTerm"`
	PropertyTaxRate   Number     `json:"propertyTaxRate" toml:"propertyTaxRate" yaml:"propertyTaxRate"`
	InsuranceRate     Number     `json:"insuranceRate" toml:"insuranceRate" yaml:"insuranceRate"`
	UpdatedAt         *time.Time `json:"updatedAt,omitempty" toml:"-" yaml:"-"`
}

// CurrentHome is the wire shape of domain.CurrentHome
type CurrentHome struct {
	CurrentValue    Number     `json:"currentValue" toml:"currentValue" yaml:"currentValue"`
	MortgageBalance Number     `json:"mortgageBalance" toml:"mortgageBalance" yaml:"mortgageBalance"`
	MonthlyPayment  Number     `json:"monthlyPayment" toml:"monthlyPayment" yaml:"monthlyPayment"`
	InterestRate    Number     `json:"interestRate" toml:"interestRate" yaml:"interestRate"`
	Location        string     `json:"location" toml:"location" yaml:"location"`
	YearsRemaining  Number     `json:"yearsRemaining" toml:"yearsRemaining" yaml:"yearsRemaining"`
	PropertyTaxRate Number     `json:"propertyTaxRate" toml:"propertyTaxRate" yaml:"propertyTaxRate"`
	InsuranceRate   Number     `json:"insuranceRate" toml:"insuranceRate" yaml:"insuranceRate"`
	UpdatedAt       *time.Time `json:"updatedAt,omitempty" toml:"-" yaml:"-"`
}

// Plan is the full plan body returned by load and accepted by save.
// Every field is optional on save; a nil field is left untouched.
type Plan struct {
	SocialSecurity *SocialSecurity `json:"socialSecurity,omitempty" toml:"socialSecurity" yaml:"socialSecurity"`
	Annuities      []Annuity       `json:"annuities" toml:"annuities" yaml:"annuities"`
	Housing        *Housing        `json:"housing,omitempty" toml:"housing" yaml:"housing"`
	CurrentHome    *CurrentHome    `json:"currentHome,omitempty" toml:"currentHome" yaml:"currentHome"`
}

// FromSnapshot converts a loaded snapshot into its wire shape
func FromSnapshot(s domain.PlanSnapshot) Plan {
	annuities := make([]Annuity, len(s.Annuities))
	for i, a := range s.Annuities {
		annuities[i] = FromAnnuity(a)
	}

	ss := FromSocialSecurity(s.SocialSecurity)
	housing := FromHousing(s.Housing)
	home := FromCurrentHome(s.CurrentHome)
	return Plan{
		SocialSecurity: &ss,
		Annuities:      annuities,
		Housing:        &housing,
		CurrentHome:    &home,
	}
}

// SaveRequest converts a save body into a partial domain save.
// An "annuities" key that is present but empty yields an empty, non-nil collection.
func (p Plan) SaveRequest() domain.SaveRequest {
	var req domain.SaveRequest
	if p.SocialSecurity != nil {
		ss := p.SocialSecurity.ToDomain()
		req.SocialSecurity = &ss
	}
	if p.Annuities != nil {
		req.Annuities = make([]domain.Annuity, len(p.Annuities))
		for i, a := range p.Annuities {
			req.Annuities[i] = a.ToDomain()
		}
	}
	if p.Housing != nil {
		housing := p.Housing.ToDomain()
		req.Housing = &housing
	}
	if p.CurrentHome != nil {
		home := p.CurrentHome.ToDomain()
		req.CurrentHome = &home
	}
	return req
}

// Snapshot converts the plan into a full snapshot, filling absent slots with defaults.
// It is used for stateless calculations over a plan that is not stored.
func (p Plan) Snapshot() domain.PlanSnapshot {
	snapshot := domain.DefaultSnapshot()
	req := p.SaveRequest()
	if req.SocialSecurity != nil {
		snapshot.SocialSecurity = *req.SocialSecurity
	}
	if req.HasAnnuities() {
		snapshot.Annuities = req.Annuities
	}
	if req.Housing != nil {
		snapshot.Housing = *req.Housing
	}
	if req.CurrentHome != nil {
		snapshot.CurrentHome = *req.CurrentHome
	}
	return snapshot
}

// FromSocialSecurity converts the domain profile
func FromSocialSecurity(p domain.SocialSecurityProfile) SocialSecurity {
	return SocialSecurity{
		CurrentMonthlyBenefit:        Number(domain.Float(p.CurrentMonthlyBenefit)),
		ExpectedRetirementAge:        Number(p.ExpectedRetirementAge),
		ExpectedMonthlyBenefit:       Number(domain.Float(p.ExpectedMonthlyBenefit)),
		SpouseCurrentMonthlyBenefit:  Number(domain.Float(p.SpouseCurrentMonthlyBenefit)),
		SpouseExpectedMonthlyBenefit: Number(domain.Float(p.SpouseExpectedMonthlyBenefit)),
		UpdatedAt:                    timePtr(p.UpdatedAt),
	}
}

// ToDomain converts user input, rounding currency to cents
func (s SocialSecurity) ToDomain() domain.SocialSecurityProfile {
	return domain.SocialSecurityProfile{
		CurrentMonthlyBenefit:        domain.CurrencyFromFloat(s.CurrentMonthlyBenefit.Float()),
		ExpectedRetirementAge:        s.ExpectedRetirementAge.Int(),
		ExpectedMonthlyBenefit:       domain.CurrencyFromFloat(s.ExpectedMonthlyBenefit.Float()),
		SpouseCurrentMonthlyBenefit:  domain.CurrencyFromFloat(s.SpouseCurrentMonthlyBenefit.Float()),
		SpouseExpectedMonthlyBenefit: domain.CurrencyFromFloat(s.SpouseExpectedMonthlyBenefit.Float()),
	}
}

// FromAnnuity converts the domain annuity
func FromAnnuity(a domain.Annuity) Annuity {
	out := Annuity{
		Name:              a.Name,
		Type:              string(a.Type),
		MonthlyPayment:    Number(domain.Float(a.MonthlyPayment)),
		InitialInvestment: Number(domain.Float(a.InitialInvestment)),
		CreatedAt:         timePtr(a.CreatedAt),
		UpdatedAt:         timePtr(a.UpdatedAt),
	}
	if a.ID != uuid.Nil {
		out.ID = a.ID.String()
	}
	return out
}

// ToDomain converts user input. Unknown types become fixed and malformed IDs are dropped.
func (a Annuity) ToDomain() domain.Annuity {
	out := domain.Annuity{
		Name:              a.Name,
		Type:              domain.ParseAnnuityType(a.Type),
		MonthlyPayment:    domain.CurrencyFromFloat(a.MonthlyPayment.Float()),
		InitialInvestment: domain.CurrencyFromFloat(a.InitialInvestment.Float()),
	}
	if id, err := uuid.Parse(a.ID); err == nil {
		out.ID = id
	}
	if a.CreatedAt != nil {
		out.CreatedAt = *a.CreatedAt
	}
	return out
}

// FromHousing converts the domain housing plan
func FromHousing(p domain.HousingPlan) Housing {
	return Housing{
		PreferredLocation: p.PreferredLocation,
		MaxMonthlyPayment: Number(domain.Float(p.MaxMonthlyPayment)),
		DownPayment:       Number(domain.Float(p.DownPayment)),
		InterestRate:      Number(domain.Float(p.InterestRate)),
		LoanTerm:          Number(p.LoanTerm),
		PropertyTaxRate:   Number(domain.Float(p.PropertyTaxRate)),
		InsuranceRate:     Number(domain.Float(p.InsuranceRate)),
		UpdatedAt:         timePtr(p.UpdatedAt),
	}
}

// ToDomain converts user input. Rates keep their precision, currency is rounded to cents.
func (h Housing) ToDomain() domain.HousingPlan {
	return domain.HousingPlan{
		PreferredLocation: h.PreferredLocation,
		MaxMonthlyPayment: domain.CurrencyFromFloat(h.MaxMonthlyPayment.Float()),
		DownPayment:       domain.CurrencyFromFloat(h.DownPayment.Float()),
		InterestRate:      domain.RateFromFloat(h.InterestRate.Float()),
		LoanTerm:          h.LoanTerm.Int(),
		PropertyTaxRate:   domain.RateFromFloat(h.PropertyTaxRate.Float()),
		InsuranceRate:     domain.RateFromFloat(h.InsuranceRate.Float()),
	}
}

// FromCurrentHome converts the domain current home
func FromCurrentHome(h domain.CurrentHome) CurrentHome {
	return CurrentHome{
		CurrentValue:    Number(domain.Float(h.CurrentValue)),
		MortgageBalance: Number(domain.Float(h.MortgageBalance)),
		MonthlyPayment:  Number(domain.Float(h.MonthlyPayment)),
		InterestRate:    Number(domain.Float(h.InterestRate)),
		Location:        h.Location,
		YearsRemaining:  Number(h.YearsRemaining),
		PropertyTaxRate: Number(domain.Float(h.PropertyTaxRate)),
		InsuranceRate:   Number(domain.Float(h.InsuranceRate)),
		UpdatedAt:       timePtr(h.UpdatedAt),
	}
}

// ToDomain converts user input
func (h CurrentHome) ToDomain() domain.CurrentHome {
	return domain.CurrentHome{
		CurrentValue:    domain.CurrencyFromFloat(h.CurrentValue.Float()),
		MortgageBalance: domain.CurrencyFromFloat(h.MortgageBalance.Float()),
		MonthlyPayment:  domain.CurrencyFromFloat(h.MonthlyPayment.Float()),
		InterestRate:    domain.RateFromFloat(h.InterestRate.Float()),
		Location:        h.Location,
		YearsRemaining:  h.YearsRemaining.Int(),
		PropertyTaxRate: domain.RateFromFloat(h.PropertyTaxRate.Float()),
		InsuranceRate:   domain.RateFromFloat(h.InsuranceRate.Float()),
	}
}

func timePtr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
