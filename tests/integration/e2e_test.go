//go:build integration

package integration

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"

	grpcadapter "github.com/simaogato/retireplan-backend/internal/adapter/grpc"
	"github.com/simaogato/retireplan-backend/internal/adapter/repository/postgres"
	"github.com/simaogato/retireplan-backend/internal/adapter/wire"
	"github.com/simaogato/retireplan-backend/internal/domain"
)

var (
	db         *postgres.DB
	grpcClient *grpcadapter.Client
	grpcConn   *grpc.ClientConn
)

// TestMain sets up the test environment against a running server and its database
func TestMain(m *testing.M) {
	ctx := context.Background()

	// 1. Connect to Database
	var err error
	db, err = postgres.NewDB(ctx, getDBConnectionString())
	if err != nil {
		panic(fmt.Sprintf("Failed to connect to database: %v", err))
	}
	if err := db.Migrate(ctx); err != nil {
		panic(fmt.Sprintf("Failed to apply schema: %v", err))
	}

	// 2. Connect to gRPC Server
	grpcConn, err = grpc.NewClient(getGRPCAddress(), grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		panic(fmt.Sprintf("Failed to connect to gRPC server: %v", err))
	}

	grpcClient = grpcadapter.NewClient(grpcConn, getAPIToken())

	code := m.Run()

	grpcConn.Close()
	db.Close()
	os.Exit(code)
}

// freshKey returns a plan key no other test run has used
func freshKey(t *testing.T) domain.PlanKey {
	t.Helper()
	return domain.PlanKey("e2e-" + uuid.NewString()[:8])
}

// getDBConnectionString returns the database connection string from environment or defaults
func getDBConnectionString() string {
	if connStr := os.Getenv("DB_CONN_STR"); connStr != "" {
		return connStr
	}

	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		envOr("DB_HOST", "localhost"),
		envOr("DB_PORT", "5432"),
		envOr("DB_USER", "postgres"),
		envOr("DB_PASSWORD", "postgres"),
		envOr("DB_NAME", "retireplan"),
	)
}

// getGRPCAddress returns the gRPC server address from environment or defaults
func getGRPCAddress() string {
	return envOr("GRPC_ADDRESS", "localhost:8080")
}

func getAPIToken() string {
	return envOr("API_TOKEN", "dev-token")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// TestEndToEndFlow tests the complete flow: defaults -> partial saves -> reload -> wipe
func TestEndToEndFlow(t *testing.T) {
	ctx := context.Background()
	key := freshKey(t)

	// Step A: a new plan key loads the defaults and nothing is stored
	plan, err := grpcClient.Load(ctx, key)
	require.NoError(t, err, "LoadPlan should succeed for an empty plan")
	require.Len(t, plan.Annuities, 1, "empty annuities load as one placeholder")
	assert.Equal(t, 67, plan.SocialSecurity.ExpectedRetirementAge.Int())

	var count int
	err = db.QueryRowContext(ctx, `SELECT COUNT(*) FROM annuities WHERE plan_key = $1`, key.String()).Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 0, count, "the placeholder is never persisted by a load")

	// Step B: save Social Security and annuities only
	err = grpcClient.Save(ctx, key, wire.Plan{
		SocialSecurity: &wire.SocialSecurity{ExpectedRetirementAge: 67, ExpectedMonthlyBenefit: 2500, SpouseExpectedMonthlyBenefit: 1200},
		Annuities: []wire.Annuity{
			{Name: "Pension", Type: "fixed", MonthlyPayment: 800, InitialInvestment: 100000},
			{Name: "Bridge", Type: "deferred", MonthlyPayment: 250},
		},
	})
	require.NoError(t, err, "SavePlan should succeed")

	// Step C: verify rows landed in Postgres in order
	rows, err := db.QueryContext(ctx, `SELECT name, monthly_payment FROM annuities WHERE plan_key = $1 ORDER BY position`, key.String())
	require.NoError(t, err)
	var names []string
	for rows.Next() {
		var name, payment string
		require.NoError(t, rows.Scan(&name, &payment))
		names = append(names, name)
	}
	require.NoError(t, rows.Err())
	rows.Close()
	assert.Equal(t, []string{"Pension", "Bridge"}, names)

	var housingRows int
	err = db.QueryRowContext(ctx, `SELECT COUNT(*) FROM housing_plans WHERE plan_key = $1`, key.String()).Scan(&housingRows)
	require.NoError(t, err)
	assert.Equal(t, 0, housingRows, "unsupplied slots are not written")

	// Step D: reload, with the stored values and storage-assigned IDs
	plan, err = grpcClient.Load(ctx, key)
	require.NoError(t, err)
	require.Len(t, plan.Annuities, 2)
	assert.NotEmpty(t, plan.Annuities[0].ID)
	assert.Equal(t, 2500.0, plan.SocialSecurity.ExpectedMonthlyBenefit.Float())
	assert.Equal(t, 7.5, plan.Housing.InterestRate.Float(), "housing still defaults")

	// Step E: evaluate the reloaded plan
	analysis, err := grpcClient.Calculate(ctx, plan)
	require.NoError(t, err)
	assert.Equal(t, 4750.0, analysis.Calculations.TotalMonthlyIncome.Float())

	// Step F: an empty annuity list wipes the collection
	require.NoError(t, grpcClient.Save(ctx, key, wire.Plan{Annuities: []wire.Annuity{}}))
	err = db.QueryRowContext(ctx, `SELECT COUNT(*) FROM annuities WHERE plan_key = $1`, key.String()).Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestUnauthenticated(t *testing.T) {
	client := grpcadapter.NewClient(grpcConn, "wrong-token")

	_, err := client.Load(context.Background(), domain.DefaultPlanKey)
	require.Error(t, err)
	assert.Equal(t, codes.Unauthenticated, status.Code(err))
}
