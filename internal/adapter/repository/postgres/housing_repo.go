package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/simaogato/retireplan-backend/internal/domain"
)

// housingPlanRepository implements domain.HousingPlanRepository
type housingPlanRepository struct {
	db *DB
}

// NewHousingPlanRepository creates a new housing plan repository
func NewHousingPlanRepository(db *DB) domain.HousingPlanRepository {
	return &housingPlanRepository{db: db}
}

// Get retrieves the housing plan stored for the plan key
func (r *housingPlanRepository) Get(ctx context.Context, key domain.PlanKey) (*domain.HousingPlan, error) {
	query := `
		SELECT preferred_location, max_monthly_payment, down_payment, interest_rate,
		       loan_term, property_tax_rate, insurance_rate, updated_at
		FROM housing_plans
		WHERE plan_key = $1
	`

	var plan domain.HousingPlan
	maxPayment := numericColumn{name: "max_monthly_payment", dst: &plan.MaxMonthlyPayment}
	downPayment := numericColumn{name: "down_payment", dst: &plan.DownPayment}
	interestRate := numericColumn{name: "interest_rate", dst: &plan.InterestRate}
	taxRate := numericColumn{name: "property_tax_rate", dst: &plan.PropertyTaxRate}
	insuranceRate := numericColumn{name: "insurance_rate", dst: &plan.InsuranceRate}

	err := r.db.QueryRowContext(ctx, query, key.String()).Scan(
		&plan.PreferredLocation,
		&maxPayment.raw,
		&downPayment.raw,
		&interestRate.raw,
		&plan.LoanTerm,
		&taxRate.raw,
		&insuranceRate.raw,
		&plan.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get housing plan: %w", err)
	}

	if err := parseNumeric(&maxPayment, &downPayment, &interestRate, &taxRate, &insuranceRate); err != nil {
		return nil, err
	}

	return &plan, nil
}

// Replace upserts the whole housing plan
func (r *housingPlanRepository) Replace(ctx context.Context, key domain.PlanKey, plan *domain.HousingPlan) error {
	query := `
		INSERT INTO housing_plans (
			plan_key, preferred_location, max_monthly_payment, down_payment, interest_rate,
			loan_term, property_tax_rate, insurance_rate, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
		ON CONFLICT (plan_key) DO UPDATE SET
			preferred_location = EXCLUDED.preferred_location,
			max_monthly_payment = EXCLUDED.max_monthly_payment,
			down_payment = EXCLUDED.down_payment,
			interest_rate = EXCLUDED.interest_rate,
			loan_term = EXCLUDED.loan_term,
			property_tax_rate = EXCLUDED.property_tax_rate,
			insurance_rate = EXCLUDED.insurance_rate,
			updated_at = EXCLUDED.updated_at
		RETURNING updated_at
	`

	err := r.db.QueryRowContext(ctx, query,
		key.String(),
		plan.PreferredLocation,
		plan.MaxMonthlyPayment.String(),
		plan.DownPayment.String(),
		plan.InterestRate.String(),
		plan.LoanTerm,
		plan.PropertyTaxRate.String(),
		plan.InsuranceRate.String(),
	).Scan(&plan.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to replace housing plan: %w", err)
	}

	return nil
}
