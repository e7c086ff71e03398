package redis

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/simaogato/retireplan-backend/internal/domain"
)

// Stored documents. Decimals marshal as JSON strings and keep full precision.

type socialSecurityRecord struct {
	CurrentMonthlyBenefit        decimal.Decimal `json:"currentMonthlyBenefit"`
	ExpectedRetirementAge        int             `json:"expectedRetirementAge"`
	ExpectedMonthlyBenefit       decimal.Decimal `json:"expectedMonthlyBenefit"`
	SpouseCurrentMonthlyBenefit  decimal.Decimal `json:"spouseCurrentMonthlyBenefit"`
	SpouseExpectedMonthlyBenefit decimal.Decimal `json:"spouseExpectedMonthlyBenefit"`
	UpdatedAt                    time.Time       `json:"updatedAt"`
}

func toSocialSecurityRecord(p domain.SocialSecurityProfile) socialSecurityRecord {
	return socialSecurityRecord(p)
}

func (r socialSecurityRecord) toDomain() domain.SocialSecurityProfile {
	return domain.SocialSecurityProfile(r)
}

type annuityRecord struct {
	ID                uuid.UUID       `json:"id"`
	Name              string          `json:"name"`
	Type              string          `json:"type"`
	MonthlyPayment    decimal.Decimal `json:"monthlyPayment"`
	InitialInvestment decimal.Decimal `json:"initialInvestment"`
	CreatedAt         time.Time       `json:"createdAt"`
	UpdatedAt         time.Time       `json:"updatedAt"`
}

func toAnnuityRecord(a domain.Annuity) annuityRecord {
	return annuityRecord{
		ID:                a.ID,
		Name:              a.Name,
		Type:              string(a.Type),
		MonthlyPayment:    a.MonthlyPayment,
		InitialInvestment: a.InitialInvestment,
		CreatedAt:         a.CreatedAt,
		UpdatedAt:         a.UpdatedAt,
	}
}

func (r annuityRecord) toDomain() domain.Annuity {
	return domain.Annuity{
		ID:                r.ID,
		Name:              r.Name,
		Type:              domain.AnnuityType(r.Type),
		MonthlyPayment:    r.MonthlyPayment,
		InitialInvestment: r.InitialInvestment,
		CreatedAt:         r.CreatedAt,
		UpdatedAt:         r.UpdatedAt,
	}
}

type housingPlanRecord struct {
	PreferredLocation string          `json:"preferredLocation"`
	MaxMonthlyPayment decimal.Decimal `json:"maxMonthlyPayment"`
	DownPayment       decimal.Decimal `json:"downPayment"`
	InterestRate      decimal.Decimal `json:"interestRate"`
	LoanTerm          int             `json:"loanTerm"`
	PropertyTaxRate   decimal.Decimal `json:"propertyTaxRate"`
	InsuranceRate     decimal.Decimal `json:"insuranceRate"`
	UpdatedAt         time.Time       `json:"updatedAt"`
}

func toHousingPlanRecord(p domain.HousingPlan) housingPlanRecord {
	return housingPlanRecord(p)
}

func (r housingPlanRecord) toDomain() domain.HousingPlan {
	return domain.HousingPlan(r)
}

type currentHomeRecord struct {
	CurrentValue    decimal.Decimal `json:"currentValue"`
	MortgageBalance decimal.Decimal `json:"mortgageBalance"`
	MonthlyPayment  decimal.Decimal `json:"monthlyPayment"`
	InterestRate    decimal.Decimal `json:"interestRate"`
	Location        string          `json:"location"`
	YearsRemaining  int             `json:"yearsRemaining"`
	PropertyTaxRate decimal.Decimal `json:"propertyTaxRate"`
	InsuranceRate   decimal.Decimal `json:"insuranceRate"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

func toCurrentHomeRecord(h domain.CurrentHome) currentHomeRecord {
	return currentHomeRecord(h)
}

func (r currentHomeRecord) toDomain() domain.CurrentHome {
	return domain.CurrentHome(r)
}
