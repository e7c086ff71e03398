package redis

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simaogato/retireplan-backend/internal/domain"
)

func TestSlotKey(t *testing.T) {
	assert.Equal(t, "retireplan:default:annuities", slotKey(domain.DefaultPlanKey, domain.SlotAnnuities))
	assert.Equal(t, "retireplan:alice:current_home", slotKey("alice", domain.SlotCurrentHome))
}

func TestHousingPlanRecord_KeepsDecimalPrecision(t *testing.T) {
	plan := domain.DefaultHousingPlan()
	plan.DownPayment = decimal.RequireFromString("123456.78")
	plan.InterestRate = decimal.RequireFromString("6.875")

	raw, err := json.Marshal(toHousingPlanRecord(plan))
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"downPayment":"123456.78"`)

	var rec housingPlanRecord
	require.NoError(t, json.Unmarshal(raw, &rec))
	decoded := rec.toDomain()
	assert.True(t, decoded.DownPayment.Equal(plan.DownPayment))
	assert.True(t, decoded.InterestRate.Equal(plan.InterestRate))
	assert.Equal(t, plan.LoanTerm, decoded.LoanTerm)
}

func TestAnnuityRecord_PreservesIdentityAndType(t *testing.T) {
	created := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	a := domain.Annuity{
		ID:             uuid.New(),
		Name:           "Pension",
		Type:           domain.AnnuityTypeDeferred,
		MonthlyPayment: decimal.NewFromInt(300),
		CreatedAt:      created,
	}

	decoded := toAnnuityRecord(a).toDomain()

	assert.Equal(t, a.ID, decoded.ID)
	assert.Equal(t, domain.AnnuityTypeDeferred, decoded.Type)
	assert.Equal(t, created, decoded.CreatedAt)
}
