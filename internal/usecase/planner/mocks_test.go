package planner

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/simaogato/retireplan-backend/internal/domain"
)

// MockSocialSecurityRepository is a mock implementation of SocialSecurityRepository for testing
type MockSocialSecurityRepository struct {
	mock.Mock
}

func (m *MockSocialSecurityRepository) Get(ctx context.Context, key domain.PlanKey) (*domain.SocialSecurityProfile, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SocialSecurityProfile), args.Error(1)
}

func (m *MockSocialSecurityRepository) Replace(ctx context.Context, key domain.PlanKey, profile *domain.SocialSecurityProfile) error {
	args := m.Called(ctx, key, profile)
	return args.Error(0)
}

// MockAnnuityRepository is a mock implementation of AnnuityRepository for testing
type MockAnnuityRepository struct {
	mock.Mock
}

func (m *MockAnnuityRepository) List(ctx context.Context, key domain.PlanKey) ([]domain.Annuity, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Annuity), args.Error(1)
}

func (m *MockAnnuityRepository) Replace(ctx context.Context, key domain.PlanKey, annuities []domain.Annuity) error {
	args := m.Called(ctx, key, annuities)
	return args.Error(0)
}

// MockHousingPlanRepository is a mock implementation of HousingPlanRepository for testing
type MockHousingPlanRepository struct {
	mock.Mock
}

func (m *MockHousingPlanRepository) Get(ctx context.Context, key domain.PlanKey) (*domain.HousingPlan, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.HousingPlan), args.Error(1)
}

func (m *MockHousingPlanRepository) Replace(ctx context.Context, key domain.PlanKey, plan *domain.HousingPlan) error {
	args := m.Called(ctx, key, plan)
	return args.Error(0)
}

// MockCurrentHomeRepository is a mock implementation of CurrentHomeRepository for testing
type MockCurrentHomeRepository struct {
	mock.Mock
}

func (m *MockCurrentHomeRepository) Get(ctx context.Context, key domain.PlanKey) (*domain.CurrentHome, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CurrentHome), args.Error(1)
}

func (m *MockCurrentHomeRepository) Replace(ctx context.Context, key domain.PlanKey, home *domain.CurrentHome) error {
	args := m.Called(ctx, key, home)
	return args.Error(0)
}

type mockRepos struct {
	ss      *MockSocialSecurityRepository
	annuity *MockAnnuityRepository
	housing *MockHousingPlanRepository
	home    *MockCurrentHomeRepository
}

func newMockRepos() *mockRepos {
	return &mockRepos{
		ss:      new(MockSocialSecurityRepository),
		annuity: new(MockAnnuityRepository),
		housing: new(MockHousingPlanRepository),
		home:    new(MockCurrentHomeRepository),
	}
}

func (r *mockRepos) repositories() domain.Repositories {
	return domain.Repositories{
		SocialSecurity: r.ss,
		Annuities:      r.annuity,
		Housing:        r.housing,
		CurrentHome:    r.home,
	}
}

func (r *mockRepos) assertExpectations(t mock.TestingT) {
	r.ss.AssertExpectations(t)
	r.annuity.AssertExpectations(t)
	r.housing.AssertExpectations(t)
	r.home.AssertExpectations(t)
}
