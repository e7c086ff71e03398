package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/simaogato/retireplan-backend/internal/domain"
)

// currentHomeRepository implements domain.CurrentHomeRepository
type currentHomeRepository struct {
	db *DB
}

// NewCurrentHomeRepository creates a new current home repository
func NewCurrentHomeRepository(db *DB) domain.CurrentHomeRepository {
	return &currentHomeRepository{db: db}
}

// Get retrieves the current home stored for the plan key
func (r *currentHomeRepository) Get(ctx context.Context, key domain.PlanKey) (*domain.CurrentHome, error) {
	query := `
		SELECT current_value, mortgage_balance, monthly_payment, interest_rate, location,
		       years_remaining, property_tax_rate, insurance_rate, updated_at
		FROM current_homes
		WHERE plan_key = $1
	`

	var home domain.CurrentHome
	value := numericColumn{name: "current_value", dst: &home.CurrentValue}
	balance := numericColumn{name: "mortgage_balance", dst: &home.MortgageBalance}
	payment := numericColumn{name: "monthly_payment", dst: &home.MonthlyPayment}
	interestRate := numericColumn{name: "interest_rate", dst: &home.InterestRate}
	taxRate := numericColumn{name: "property_tax_rate", dst: &home.PropertyTaxRate}
	insuranceRate := numericColumn{name: "insurance_rate", dst: &home.InsuranceRate}

	err := r.db.QueryRowContext(ctx, query, key.String()).Scan(
		&value.raw,
		&balance.raw,
		&payment.raw,
		&interestRate.raw,
		&home.Location,
		&home.YearsRemaining,
		&taxRate.raw,
		&insuranceRate.raw,
		&home.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get current home: %w", err)
	}

	if err := parseNumeric(&value, &balance, &payment, &interestRate, &taxRate, &insuranceRate); err != nil {
		return nil, err
	}

	return &home, nil
}

// Replace upserts the whole current home record
func (r *currentHomeRepository) Replace(ctx context.Context, key domain.PlanKey, home *domain.CurrentHome) error {
	query := `
		INSERT INTO current_homes (
			plan_key, current_value, mortgage_balance, monthly_payment, interest_rate,
			location, years_remaining, property_tax_rate, insurance_rate, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW())
		ON CONFLICT (plan_key) DO UPDATE SET
			current_value = EXCLUDED.current_value,
			mortgage_balance = EXCLUDED.mortgage_balance,
			monthly_payment = EXCLUDED.monthly_payment,
			interest_rate = EXCLUDED.interest_rate,
			location = EXCLUDED.location,
			years_remaining = EXCLUDED.years_remaining,
			property_tax_rate = EXCLUDED.property_tax_rate,
			insurance_rate = EXCLUDED.insurance_rate,
			updated_at = EXCLUDED.updated_at
		RETURNING updated_at
	`

	err := r.db.QueryRowContext(ctx, query,
		key.String(),
		home.CurrentValue.String(),
		home.MortgageBalance.String(),
		home.MonthlyPayment.String(),
		home.InterestRate.String(),
		home.Location,
		home.YearsRemaining,
		home.PropertyTaxRate.String(),
		home.InsuranceRate.String(),
	).Scan(&home.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to replace current home: %w", err)
	}

	return nil
}
