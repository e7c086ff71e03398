// Package repotest holds the behaviour every slot store must share.
// Store packages run RepositorySuite from their own tests.
package repotest

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/simaogato/retireplan-backend/internal/domain"
)

// RepositorySuite exercises the four slot repositories of a store.
// Open must return repositories over an empty store; it is called before every test.
type RepositorySuite struct {
	suite.Suite
	Open func() domain.Repositories

	repos domain.Repositories
	ctx   context.Context
}

func (s *RepositorySuite) SetupTest() {
	s.Require().NotNil(s.Open, "RepositorySuite.Open must be set")
	s.repos = s.Open()
	s.ctx = context.Background()
}

func dec(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

// TestEmptySlots verifies that a fresh store reports every slot as empty.
func (s *RepositorySuite) TestEmptySlots() {
	key := domain.DefaultPlanKey

	_, err := s.repos.SocialSecurity.Get(s.ctx, key)
	s.ErrorIs(err, domain.ErrNotFound)

	_, err = s.repos.Housing.Get(s.ctx, key)
	s.ErrorIs(err, domain.ErrNotFound)

	_, err = s.repos.CurrentHome.Get(s.ctx, key)
	s.ErrorIs(err, domain.ErrNotFound)

	annuities, err := s.repos.Annuities.List(s.ctx, key)
	s.Require().NoError(err)
	s.Empty(annuities)
}

// TestSocialSecurityReplace verifies whole-record replacement of the profile.
func (s *RepositorySuite) TestSocialSecurityReplace() {
	key := domain.DefaultPlanKey

	s.Run("stores and returns the profile", func() {
		profile := domain.SocialSecurityProfile{
			CurrentMonthlyBenefit:        dec("1800.25"),
			ExpectedRetirementAge:        66,
			ExpectedMonthlyBenefit:       dec("2500"),
			SpouseCurrentMonthlyBenefit:  dec("900"),
			SpouseExpectedMonthlyBenefit: dec("1200.50"),
		}
		s.Require().NoError(s.repos.SocialSecurity.Replace(s.ctx, key, &profile))
		s.False(profile.UpdatedAt.IsZero(), "store stamps UpdatedAt")

		found, err := s.repos.SocialSecurity.Get(s.ctx, key)
		s.Require().NoError(err)
		s.True(found.CurrentMonthlyBenefit.Equal(dec("1800.25")))
		s.Equal(66, found.ExpectedRetirementAge)
		s.True(found.ExpectedMonthlyBenefit.Equal(dec("2500")))
		s.True(found.SpouseCurrentMonthlyBenefit.Equal(dec("900")))
		s.True(found.SpouseExpectedMonthlyBenefit.Equal(dec("1200.50")))
		s.False(found.UpdatedAt.IsZero())
	})

	s.Run("second replace overwrites every field", func() {
		profile := domain.DefaultSocialSecurity()
		profile.ExpectedMonthlyBenefit = dec("3100")
		s.Require().NoError(s.repos.SocialSecurity.Replace(s.ctx, key, &profile))

		found, err := s.repos.SocialSecurity.Get(s.ctx, key)
		s.Require().NoError(err)
		s.True(found.ExpectedMonthlyBenefit.Equal(dec("3100")))
		s.True(found.CurrentMonthlyBenefit.IsZero())
		s.Equal(domain.DefaultRetirementAge, found.ExpectedRetirementAge)
	})
}

// TestHousingReplace verifies whole-record replacement of the housing plan.
func (s *RepositorySuite) TestHousingReplace() {
	key := domain.DefaultPlanKey

	plan := domain.HousingPlan{
		PreferredLocation: "Tucson, AZ",
		MaxMonthlyPayment: dec("2100"),
		DownPayment:       dec("50000"),
		InterestRate:      dec("6.875"),
		LoanTerm:          15,
		PropertyTaxRate:   dec("1.05"),
		InsuranceRate:     dec("0.45"),
	}
	s.Require().NoError(s.repos.Housing.Replace(s.ctx, key, &plan))

	found, err := s.repos.Housing.Get(s.ctx, key)
	s.Require().NoError(err)
	s.Equal("Tucson, AZ", found.PreferredLocation)
	s.True(found.MaxMonthlyPayment.Equal(dec("2100")))
	s.True(found.DownPayment.Equal(dec("50000")))
	s.True(found.InterestRate.Equal(dec("6.875")))
	s.Equal(15, found.LoanTerm)
	s.True(found.PropertyTaxRate.Equal(dec("1.05")))
	s.True(found.InsuranceRate.Equal(dec("0.45")))
	s.False(found.UpdatedAt.IsZero())
}

// TestCurrentHomeReplace verifies whole-record replacement of the current home.
func (s *RepositorySuite) TestCurrentHomeReplace() {
	key := domain.DefaultPlanKey

	home := domain.CurrentHome{
		CurrentValue:    dec("300000"),
		MortgageBalance: dec("350000"),
		MonthlyPayment:  dec("1850.40"),
		InterestRate:    dec("3.25"),
		Location:        "Columbus, OH",
		YearsRemaining:  22,
		PropertyTaxRate: dec("1.6"),
		InsuranceRate:   dec("0.35"),
	}
	s.Require().NoError(s.repos.CurrentHome.Replace(s.ctx, key, &home))

	found, err := s.repos.CurrentHome.Get(s.ctx, key)
	s.Require().NoError(err)
	s.True(found.CurrentValue.Equal(dec("300000")))
	s.True(found.MortgageBalance.Equal(dec("350000")))
	s.True(found.MonthlyPayment.Equal(dec("1850.40")))
	s.True(found.InterestRate.Equal(dec("3.25")))
	s.Equal("Columbus, OH", found.Location)
	s.Equal(22, found.YearsRemaining)
	s.True(found.PropertyTaxRate.Equal(dec("1.6")))
	s.True(found.InsuranceRate.Equal(dec("0.35")))
}

// TestAnnuityReplace verifies whole-collection replacement of annuities.
func (s *RepositorySuite) TestAnnuityReplace() {
	key := domain.DefaultPlanKey

	s.Run("assigns identity and keeps order", func() {
		annuities := []domain.Annuity{
			{Name: "Pension", Type: domain.AnnuityTypeImmediate, MonthlyPayment: dec("800"), InitialInvestment: dec("0")},
			{Name: "Pension", Type: domain.AnnuityTypeDeferred, MonthlyPayment: dec("250.75"), InitialInvestment: dec("40000")},
			{Name: "Index", Type: domain.AnnuityTypeVariable, MonthlyPayment: dec("125"), InitialInvestment: dec("15000")},
		}
		s.Require().NoError(s.repos.Annuities.Replace(s.ctx, key, annuities))

		found, err := s.repos.Annuities.List(s.ctx, key)
		s.Require().NoError(err)
		s.Require().Len(found, 3)

		s.Equal(domain.AnnuityTypeImmediate, found[0].Type)
		s.Equal(domain.AnnuityTypeDeferred, found[1].Type)
		s.Equal("Index", found[2].Name)
		s.True(found[1].MonthlyPayment.Equal(dec("250.75")))
		s.True(found[1].InitialInvestment.Equal(dec("40000")))
		s.NotEqual(found[0].ID, found[1].ID, "duplicate names keep distinct identities")
		for _, a := range found {
			s.NotEqual(uuid.Nil, a.ID)
			s.False(a.CreatedAt.IsZero())
			s.False(a.UpdatedAt.IsZero())
		}
	})

	s.Run("keeps supplied IDs", func() {
		id := uuid.New()
		s.Require().NoError(s.repos.Annuities.Replace(s.ctx, key, []domain.Annuity{
			{ID: id, Name: "Kept", Type: domain.AnnuityTypeFixed, MonthlyPayment: dec("10")},
		}))

		found, err := s.repos.Annuities.List(s.ctx, key)
		s.Require().NoError(err)
		s.Require().Len(found, 1)
		s.Equal(id, found[0].ID)
	})

	s.Run("empty collection removes every annuity", func() {
		s.Require().NoError(s.repos.Annuities.Replace(s.ctx, key, []domain.Annuity{}))

		found, err := s.repos.Annuities.List(s.ctx, key)
		s.Require().NoError(err)
		s.Empty(found)
	})
}

// TestAnnuitySharedIDs verifies that annuity IDs are not unique across a
// collection or across plan keys, so a loaded plan can be saved again or copied.
func (s *RepositorySuite) TestAnnuitySharedIDs() {
	alice := domain.PlanKey("alice")
	bob := domain.PlanKey("bob")
	id := uuid.New()
	created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	annuity := domain.Annuity{ID: id, Name: "Pension", Type: domain.AnnuityTypeFixed, MonthlyPayment: dec("500"), CreatedAt: created}

	s.Run("same annuity twice in one collection", func() {
		s.Require().NoError(s.repos.Annuities.Replace(s.ctx, alice, []domain.Annuity{annuity, annuity}))

		found, err := s.repos.Annuities.List(s.ctx, alice)
		s.Require().NoError(err)
		s.Require().Len(found, 2)
		s.Equal(id, found[0].ID)
		s.Equal(id, found[1].ID)
	})

	s.Run("loaded collection copied to another key", func() {
		loaded, err := s.repos.Annuities.List(s.ctx, alice)
		s.Require().NoError(err)
		s.Require().NoError(s.repos.Annuities.Replace(s.ctx, bob, loaded))

		found, err := s.repos.Annuities.List(s.ctx, bob)
		s.Require().NoError(err)
		s.Require().Len(found, 2)
		s.Equal(id, found[0].ID)
		s.True(found[0].CreatedAt.Equal(created), "supplied creation time is kept")

		still, err := s.repos.Annuities.List(s.ctx, alice)
		s.Require().NoError(err)
		s.Len(still, 2)
	})

	s.Run("same key saved again", func() {
		loaded, err := s.repos.Annuities.List(s.ctx, bob)
		s.Require().NoError(err)
		s.Require().NoError(s.repos.Annuities.Replace(s.ctx, bob, loaded[:1]))

		found, err := s.repos.Annuities.List(s.ctx, bob)
		s.Require().NoError(err)
		s.Len(found, 1)
	})
}

// TestRatePrecision verifies that rates come back exactly as saved.
func (s *RepositorySuite) TestRatePrecision() {
	key := domain.DefaultPlanKey

	plan := domain.DefaultHousingPlan()
	plan.InterestRate = dec("6.12345")
	plan.PropertyTaxRate = dec("1.234567")
	plan.InsuranceRate = dec("0.000125")
	s.Require().NoError(s.repos.Housing.Replace(s.ctx, key, &plan))

	foundPlan, err := s.repos.Housing.Get(s.ctx, key)
	s.Require().NoError(err)
	s.True(foundPlan.InterestRate.Equal(dec("6.12345")), foundPlan.InterestRate.String())
	s.True(foundPlan.PropertyTaxRate.Equal(dec("1.234567")), foundPlan.PropertyTaxRate.String())
	s.True(foundPlan.InsuranceRate.Equal(dec("0.000125")), foundPlan.InsuranceRate.String())

	home := domain.DefaultCurrentHome()
	home.InterestRate = dec("3.87654")
	home.PropertyTaxRate = dec("0.98765")
	home.InsuranceRate = dec("0.43219")
	s.Require().NoError(s.repos.CurrentHome.Replace(s.ctx, key, &home))

	foundHome, err := s.repos.CurrentHome.Get(s.ctx, key)
	s.Require().NoError(err)
	s.True(foundHome.InterestRate.Equal(dec("3.87654")), foundHome.InterestRate.String())
	s.True(foundHome.PropertyTaxRate.Equal(dec("0.98765")), foundHome.PropertyTaxRate.String())
	s.True(foundHome.InsuranceRate.Equal(dec("0.43219")), foundHome.InsuranceRate.String())
}

// TestPlanKeyIsolation verifies that slots of different keys never mix.
func (s *RepositorySuite) TestPlanKeyIsolation() {
	alice := domain.PlanKey("alice")
	bob := domain.PlanKey("bob")

	plan := domain.DefaultHousingPlan()
	plan.PreferredLocation = "Boise, ID"
	s.Require().NoError(s.repos.Housing.Replace(s.ctx, alice, &plan))
	s.Require().NoError(s.repos.Annuities.Replace(s.ctx, alice, []domain.Annuity{
		{Name: "Alice", Type: domain.AnnuityTypeFixed, MonthlyPayment: dec("100")},
	}))

	_, err := s.repos.Housing.Get(s.ctx, bob)
	s.ErrorIs(err, domain.ErrNotFound)

	found, err := s.repos.Annuities.List(s.ctx, bob)
	s.Require().NoError(err)
	s.Empty(found)

	s.Require().NoError(s.repos.Annuities.Replace(s.ctx, bob, []domain.Annuity{}))
	found, err = s.repos.Annuities.List(s.ctx, alice)
	s.Require().NoError(err)
	s.Len(found, 1, "replacing one key's collection leaves the other alone")
}

// TestUpdatedAtAdvances verifies that every replace restamps the record.
func (s *RepositorySuite) TestUpdatedAtAdvances() {
	key := domain.DefaultPlanKey

	home := domain.DefaultCurrentHome()
	s.Require().NoError(s.repos.CurrentHome.Replace(s.ctx, key, &home))
	first, err := s.repos.CurrentHome.Get(s.ctx, key)
	s.Require().NoError(err)

	time.Sleep(5 * time.Millisecond)

	s.Require().NoError(s.repos.CurrentHome.Replace(s.ctx, key, &home))
	second, err := s.repos.CurrentHome.Get(s.ctx, key)
	s.Require().NoError(err)

	s.False(second.UpdatedAt.Before(first.UpdatedAt))
}
