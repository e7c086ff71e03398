package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/simaogato/retireplan-backend/internal/domain"
)

// socialSecurityRepository implements domain.SocialSecurityRepository
type socialSecurityRepository struct {
	db *DB
}

// NewSocialSecurityRepository creates a new social security repository
func NewSocialSecurityRepository(db *DB) domain.SocialSecurityRepository {
	return &socialSecurityRepository{db: db}
}

// Get retrieves the profile stored for the plan key
func (r *socialSecurityRepository) Get(ctx context.Context, key domain.PlanKey) (*domain.SocialSecurityProfile, error) {
	query := `
		SELECT current_monthly_benefit, expected_retirement_age, expected_monthly_benefit,
		       spouse_current_monthly_benefit, spouse_expected_monthly_benefit, updated_at
		FROM social_security
		WHERE plan_key = $1
	`

	var profile domain.SocialSecurityProfile
	current := numericColumn{name: "current_monthly_benefit", dst: &profile.CurrentMonthlyBenefit}
	expected := numericColumn{name: "expected_monthly_benefit", dst: &profile.ExpectedMonthlyBenefit}
	spouseCurrent := numericColumn{name: "spouse_current_monthly_benefit", dst: &profile.SpouseCurrentMonthlyBenefit}
	spouseExpected := numericColumn{name: "spouse_expected_monthly_benefit", dst: &profile.SpouseExpectedMonthlyBenefit}

	err := r.db.QueryRowContext(ctx, query, key.String()).Scan(
		&current.raw,
		&profile.ExpectedRetirementAge,
		&expected.raw,
		&spouseCurrent.raw,
		&spouseExpected.raw,
		&profile.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get social security profile: %w", err)
	}

	if err := parseNumeric(&current, &expected, &spouseCurrent, &spouseExpected); err != nil {
		return nil, err
	}

	return &profile, nil
}

// Replace upserts the whole profile
func (r *socialSecurityRepository) Replace(ctx context.Context, key domain.PlanKey, profile *domain.SocialSecurityProfile) error {
	query := `
		INSERT INTO social_security (
			plan_key, current_monthly_benefit, expected_retirement_age, expected_monthly_benefit,
			spouse_current_monthly_benefit, spouse_expected_monthly_benefit, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		ON CONFLICT (plan_key) DO UPDATE SET
			current_monthly_benefit = EXCLUDED.current_monthly_benefit,
			expected_retirement_age = EXCLUDED.expected_retirement_age,
			expected_monthly_benefit = EXCLUDED.expected_monthly_benefit,
			spouse_current_monthly_benefit = EXCLUDED.spouse_current_monthly_benefit,
			spouse_expected_monthly_benefit = EXCLUDED.spouse_expected_monthly_benefit,
			updated_at = EXCLUDED.updated_at
		RETURNING updated_at
	`

	err := r.db.QueryRowContext(ctx, query,
		key.String(),
		profile.CurrentMonthlyBenefit.String(),
		profile.ExpectedRetirementAge,
		profile.ExpectedMonthlyBenefit.String(),
		profile.SpouseCurrentMonthlyBenefit.String(),
		profile.SpouseExpectedMonthlyBenefit.String(),
	).Scan(&profile.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to replace social security profile: %w", err)
	}

	return nil
}
