package seeder

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/simaogato/retireplan-backend/internal/adapter/repository/memory"
	"github.com/simaogato/retireplan-backend/internal/domain"
)

// MockHousingPlanRepository is a mock implementation of HousingPlanRepository
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

func template() domain.PlanSnapshot {
	t := domain.DefaultSnapshot()
	t.SocialSecurity.ExpectedMonthlyBenefit = decimal.NewFromInt(2500)
	t.Annuities = []domain.Annuity{{Name: "Pension", Type: domain.AnnuityTypeFixed, MonthlyPayment: decimal.NewFromInt(800)}}
	t.Housing.PreferredLocation = "Asheville, NC"
	return t
}

func TestPlanSeeder_Seed_SlotsMissing(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	seeder := NewPlanSeeder(store.Repositories())

	seeded, err := seeder.Seed(ctx, "demo", template())

	require.NoError(t, err)
	assert.Equal(t, []domain.Slot{domain.SlotSocialSecurity, domain.SlotAnnuities, domain.SlotHousing, domain.SlotCurrentHome}, seeded)

	housing, err := store.Repositories().Housing.Get(ctx, "demo")
	require.NoError(t, err)
	assert.Equal(t, "Asheville, NC", housing.PreferredLocation)

	annuities, err := store.Repositories().Annuities.List(ctx, "demo")
	require.NoError(t, err)
	require.Len(t, annuities, 1)
	assert.Equal(t, "Pension", annuities[0].Name)
}

func TestPlanSeeder_Seed_SlotsExist(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	repos := store.Repositories()

	existing := domain.DefaultHousingPlan()
	existing.PreferredLocation = "Portland, ME"
	require.NoError(t, repos.Housing.Replace(ctx, "demo", &existing))
	require.NoError(t, repos.Annuities.Replace(ctx, "demo", []domain.Annuity{{Name: "Kept", Type: domain.AnnuityTypeVariable}}))

	seeded, err := NewPlanSeeder(repos).Seed(ctx, "demo", template())

	require.NoError(t, err)
	assert.Equal(t, []domain.Slot{domain.SlotSocialSecurity, domain.SlotCurrentHome}, seeded)

	housing, err := repos.Housing.Get(ctx, "demo")
	require.NoError(t, err)
	assert.Equal(t, "Portland, ME", housing.PreferredLocation, "existing slots are never overwritten")

	annuities, err := repos.Annuities.List(ctx, "demo")
	require.NoError(t, err)
	require.Len(t, annuities, 1)
	assert.Equal(t, "Kept", annuities[0].Name)

	again, err := NewPlanSeeder(repos).Seed(ctx, "demo", template())
	require.NoError(t, err)
	assert.Empty(t, again)
}

func TestPlanSeeder_Seed_CheckFails(t *testing.T) {
	ctx := context.Background()
	mockHousing := new(MockHousingPlanRepository)
	repos := memory.New().Repositories()
	repos.Housing = mockHousing

	mockHousing.On("Get", ctx, domain.PlanKey("demo")).Return(nil, errors.New("connection refused"))

	seeded, err := NewPlanSeeder(repos).Seed(ctx, "demo", template())

	assert.ErrorContains(t, err, "failed to check housing plan")
	assert.Equal(t, []domain.Slot{domain.SlotSocialSecurity, domain.SlotAnnuities}, seeded)
	mockHousing.AssertExpectations(t)
	mockHousing.AssertNotCalled(t, "Replace", mock.Anything, mock.Anything, mock.Anything)
}

func TestPlanSeeder_Seed_InvalidKey(t *testing.T) {
	_, err := NewPlanSeeder(memory.New().Repositories()).Seed(context.Background(), "", template())
	assert.ErrorIs(t, err, domain.ErrInvalidPlanKey)
}
