package rest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simaogato/retireplan-backend/internal/adapter/repository/memory"
	"github.com/simaogato/retireplan-backend/internal/domain"
	"github.com/simaogato/retireplan-backend/internal/platform/metrics"
	"github.com/simaogato/retireplan-backend/internal/usecase/planner"
)

type failingStore struct{}

func (failingStore) Load(context.Context, domain.PlanKey) (domain.PlanSnapshot, error) {
	return domain.DefaultSnapshot(), errors.New("connection refused")
}

func (failingStore) Save(context.Context, domain.PlanKey, domain.SaveRequest) error {
	return errors.New("connection refused")
}

func newTestRouter(t *testing.T, token string) (http.Handler, *memory.Store) {
	t.Helper()
	store := memory.New()
	reg := prometheus.NewRegistry()
	service := planner.NewPlanService(store.Repositories(), nil, metrics.New(reg))
	return NewRouter(Config{Plans: service, APIToken: token, Gatherer: reg}), store
}

func do(t *testing.T, h http.Handler, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestLoad_EmptyStoreReturnsDefaults(t *testing.T) {
	router, _ := newTestRouter(t, "")

	rec := do(t, router, http.MethodGet, "/api/retirement-data", "", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	ss := body["socialSecurity"].(map[string]any)
	assert.Equal(t, 67.0, ss["expectedRetirementAge"])

	annuities := body["annuities"].([]any)
	require.Len(t, annuities, 1)
	assert.Equal(t, "fixed", annuities[0].(map[string]any)["type"])

	housing := body["housing"].(map[string]any)
	assert.Equal(t, 7.5, housing["interestRate"])
	assert.Equal(t, 30.0, housing["loanTerm"])
}

func TestSaveThenLoad_PartialSave(t *testing.T) {
	router, _ := newTestRouter(t, "")

	rec := do(t, router, http.MethodPost, "/api/retirement-data",
		`{"housing":{"preferredLocation":"Asheville, NC","downPayment":"60,000","interestRate":6.5,"loanTerm":30,"propertyTaxRate":1,"insuranceRate":0.4}}`, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true}`, rec.Body.String())

	rec = do(t, router, http.MethodGet, "/api/retirement-data", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		SocialSecurity map[string]any `json:"socialSecurity"`
		Housing        map[string]any `json:"housing"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Asheville, NC", body.Housing["preferredLocation"])
	assert.Equal(t, 60000.0, body.Housing["downPayment"])
	assert.NotEmpty(t, body.Housing["updatedAt"])
	assert.Equal(t, 67.0, body.SocialSecurity["expectedRetirementAge"], "unsaved slots keep their defaults")
}

func TestSave_EmptyAnnuitiesWipesCollection(t *testing.T) {
	router, store := newTestRouter(t, "")
	ctx := context.Background()

	rec := do(t, router, http.MethodPost, "/api/retirement-data",
		`{"annuities":[{"name":"A","type":"fixed","monthlyPayment":100},{"name":"B","type":"variable","monthlyPayment":"200"}]}`, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	stored, err := store.Repositories().Annuities.List(ctx, domain.DefaultPlanKey)
	require.NoError(t, err)
	require.Len(t, stored, 2)
	assert.True(t, stored[1].MonthlyPayment.Equal(decimal.NewFromInt(200)))

	rec = do(t, router, http.MethodPost, "/api/retirement-data", `{"annuities":[]}`, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	stored, err = store.Repositories().Annuities.List(ctx, domain.DefaultPlanKey)
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestSave_MalformedBody(t *testing.T) {
	router, _ := newTestRouter(t, "")

	rec := do(t, router, http.MethodPost, "/api/retirement-data", `{"housing":`, nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"invalid request body"}`, rec.Body.String())
}

func TestStorageFailure(t *testing.T) {
	router := NewRouter(Config{Plans: failingStore{}, Gatherer: prometheus.NewRegistry()})

	rec := do(t, router, http.MethodGet, "/api/retirement-data", "", nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"Failed to fetch data"}`, rec.Body.String())

	rec = do(t, router, http.MethodPost, "/api/retirement-data", `{"housing":{}}`, nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"Failed to save data"}`, rec.Body.String())
}

func TestPlanKeyHeader(t *testing.T) {
	router, store := newTestRouter(t, "")

	rec := do(t, router, http.MethodPost, "/api/retirement-data",
		`{"currentHome":{"currentValue":400000,"mortgageBalance":150000,"monthlyPayment":1800}}`,
		map[string]string{PlanKeyHeader: "household-7"})
	require.Equal(t, http.StatusOK, rec.Code)

	_, err := store.Repositories().CurrentHome.Get(context.Background(), "household-7")
	require.NoError(t, err)
	_, err = store.Repositories().CurrentHome.Get(context.Background(), domain.DefaultPlanKey)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	rec = do(t, router, http.MethodGet, "/api/retirement-data", "", map[string]string{PlanKeyHeader: "bad key!"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCalculate_Stateless(t *testing.T) {
	router, store := newTestRouter(t, "")

	rec := do(t, router, http.MethodPost, "/api/calculations", `{
		"socialSecurity": {"expectedMonthlyBenefit": 2500, "spouseExpectedMonthlyBenefit": 1200},
		"annuities": [{"name": "Pension", "type": "fixed", "monthlyPayment": 800}],
		"housing": {"downPayment": 50000, "interestRate": 7.5, "loanTerm": 30, "propertyTaxRate": 1.2, "insuranceRate": 0.5},
		"currentHome": {"currentValue": 300000, "mortgageBalance": 350000, "monthlyPayment": 2000}
	}`, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Calculations map[string]float64 `json:"calculations"`
		Scenarios    map[string]any     `json:"scenarios"`
		Breakdown    map[string]float64 `json:"breakdown"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	assert.Equal(t, 4500.0, body.Calculations["totalMonthlyIncome"])
	assert.Equal(t, 213455.78, body.Calculations["affordableHousePrice"])
	assert.Equal(t, -50000.0, body.Calculations["currentHomeEquity"])
	assert.Equal(t, 2000.0, body.Calculations["currentHomePayment"])
	assert.Equal(t, 1260.0, body.Breakdown["principalAndInterest"])
	assert.Contains(t, body.Scenarios, "conservative")

	_, err := store.Repositories().Housing.Get(context.Background(), domain.DefaultPlanKey)
	assert.ErrorIs(t, err, domain.ErrNotFound, "calculations never write")
}

func TestPlan_IncludesCalculations(t *testing.T) {
	router, _ := newTestRouter(t, "")

	rec := do(t, router, http.MethodPost, "/api/retirement-data",
		`{"socialSecurity":{"expectedMonthlyBenefit":3000,"expectedRetirementAge":67}}`, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, router, http.MethodGet, "/api/plan", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		SocialSecurity map[string]any     `json:"socialSecurity"`
		Calculations   map[string]float64 `json:"calculations"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 3000.0, body.SocialSecurity["expectedMonthlyBenefit"])
	assert.Equal(t, 3000.0, body.Calculations["totalMonthlyIncome"])
}

func TestAPIToken(t *testing.T) {
	router, _ := newTestRouter(t, "secret")

	rec := do(t, router, http.MethodGet, "/api/retirement-data", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(t, router, http.MethodGet, "/api/retirement-data", "", map[string]string{"Authorization": "Bearer wrong"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(t, router, http.MethodGet, "/api/retirement-data", "", map[string]string{"Authorization": "Bearer secret"})
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, router, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code, "health is not behind the token")
}

func TestHealthz(t *testing.T) {
	router := NewRouter(Config{
		Plans:    failingStore{},
		Gatherer: prometheus.NewRegistry(),
		Health:   func(context.Context) error { return errors.New("down") },
	})

	rec := do(t, router, http.MethodGet, "/healthz", "", nil)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	router, _ := newTestRouter(t, "")

	do(t, router, http.MethodGet, "/api/retirement-data", "", nil)
	rec := do(t, router, http.MethodGet, "/metrics", "", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "retireplan_plan_loads_total")
}

func TestCORSPreflight(t *testing.T) {
	router := NewRouter(Config{
		Plans:          failingStore{},
		Gatherer:       prometheus.NewRegistry(),
		AllowedOrigins: []string{"http://localhost:3000"},
	})

	rec := do(t, router, http.MethodOptions, "/api/retirement-data", "", map[string]string{"Origin": "http://localhost:3000"})

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
}
