// Package sqlite provides a single-file SQLite store for plan slots.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/simaogato/retireplan-backend/internal/domain"

	_ "modernc.org/sqlite" // register sqlite driver
)

// Store is a SQLite-backed slot store.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens or creates the database at the given path.
// The special path ":memory:" opens a private in-memory database.
func Open(dbPath string) (*Store, error) {
	dsn := ":memory:"
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0o750); err != nil {
			return nil, fmt.Errorf("creating database dir: %w", err)
		}
		dsn = dbPath + "?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=busy_timeout(5000)"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	// One connection keeps ":memory:" databases shared and serialises writers
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Store{db: db, now: time.Now}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Health pings the database.
func (s *Store) Health(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Repositories exposes the store through the four slot interfaces.
func (s *Store) Repositories() domain.Repositories {
	return domain.Repositories{
		SocialSecurity: &socialSecurityRepository{s},
		Annuities:      &annuityRepository{s},
		Housing:        &housingPlanRepository{s},
		CurrentHome:    &currentHomeRepository{s},
	}
}

func (s *Store) timestamp() (time.Time, string) {
	now := s.now().UTC()
	return now, now.Format(time.RFC3339Nano)
}

func parseTime(column, raw string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing %s: %w", column, err)
	}
	return t, nil
}

func parseDecimal(column, raw string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parsing %s: %w", column, err)
	}
	return d, nil
}

// decimalField pairs a text column with its destination
type decimalField struct {
	column string
	raw    string
	dst    *decimal.Decimal
}

// decimals parses the fields in order, stopping at the first error
func decimals(fields ...decimalField) error {
	for _, f := range fields {
		d, err := parseDecimal(f.column, f.raw)
		if err != nil {
			return err
		}
		*f.dst = d
	}
	return nil
}

type socialSecurityRepository struct{ s *Store }

func (r *socialSecurityRepository) Get(ctx context.Context, key domain.PlanKey) (*domain.SocialSecurityProfile, error) {
	var (
		p                                                domain.SocialSecurityProfile
		current, expected, spouseCurrent, spouseExpected string
		updatedAt                                        string
	)
	err := r.s.db.QueryRowContext(ctx, `SELECT current_monthly_benefit, expected_retirement_age,
		expected_monthly_benefit, spouse_current_monthly_benefit, spouse_expected_monthly_benefit, updated_at
		FROM social_security WHERE plan_key = ?`, key.String(),
	).Scan(&current, &p.ExpectedRetirementAge, &expected, &spouseCurrent, &spouseExpected, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying social security: %w", err)
	}

	if err := decimals(
		decimalField{"current_monthly_benefit", current, &p.CurrentMonthlyBenefit},
		decimalField{"expected_monthly_benefit", expected, &p.ExpectedMonthlyBenefit},
		decimalField{"spouse_current_monthly_benefit", spouseCurrent, &p.SpouseCurrentMonthlyBenefit},
		decimalField{"spouse_expected_monthly_benefit", spouseExpected, &p.SpouseExpectedMonthlyBenefit},
	); err != nil {
		return nil, err
	}
	if p.UpdatedAt, err = parseTime("updated_at", updatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *socialSecurityRepository) Replace(ctx context.Context, key domain.PlanKey, p *domain.SocialSecurityProfile) error {
	now, stamp := r.s.timestamp()
	_, err := r.s.db.ExecContext(ctx, `INSERT OR REPLACE INTO social_security
		(plan_key, current_monthly_benefit, expected_retirement_age, expected_monthly_benefit,
		 spouse_current_monthly_benefit, spouse_expected_monthly_benefit, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		key.String(), p.CurrentMonthlyBenefit.String(), p.ExpectedRetirementAge, p.ExpectedMonthlyBenefit.String(),
		p.SpouseCurrentMonthlyBenefit.String(), p.SpouseExpectedMonthlyBenefit.String(), stamp,
	)
	if err != nil {
		return fmt.Errorf("replacing social security: %w", err)
	}
	p.UpdatedAt = now
	return nil
}

type annuityRepository struct{ s *Store }

func (r *annuityRepository) List(ctx context.Context, key domain.PlanKey) ([]domain.Annuity, error) {
	rows, err := r.s.db.QueryContext(ctx, `SELECT id, name, annuity_type, monthly_payment,
		initial_investment, created_at, updated_at
		FROM annuities WHERE plan_key = ? ORDER BY position`, key.String())
	if err != nil {
		return nil, fmt.Errorf("querying annuities: %w", err)
	}
	defer func() { _ = rows.Close() }()

	result := []domain.Annuity{}
	for rows.Next() {
		var (
			a                                    domain.Annuity
			id, annuityType, payment, investment string
			createdAt, updatedAt                 string
		)
		if err := rows.Scan(&id, &a.Name, &annuityType, &payment, &investment, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("scanning annuity: %w", err)
		}
		if a.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("parsing annuity id: %w", err)
		}
		a.Type = domain.AnnuityType(annuityType)
		if err := decimals(
			decimalField{"monthly_payment", payment, &a.MonthlyPayment},
			decimalField{"initial_investment", investment, &a.InitialInvestment},
		); err != nil {
			return nil, err
		}
		if a.CreatedAt, err = parseTime("created_at", createdAt); err != nil {
			return nil, err
		}
		if a.UpdatedAt, err = parseTime("updated_at", updatedAt); err != nil {
			return nil, err
		}
		result = append(result, a)
	}
	return result, rows.Err()
}

func (r *annuityRepository) Replace(ctx context.Context, key domain.PlanKey, annuities []domain.Annuity) error {
	tx, err := r.s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM annuities WHERE plan_key = ?", key.String()); err != nil {
		return fmt.Errorf("deleting annuities: %w", err)
	}

	now, stamp := r.s.timestamp()
	for i, a := range annuities {
		if a.ID == uuid.Nil {
			a.ID = uuid.New()
		}
		created := a.CreatedAt
		if created.IsZero() {
			created = now
		}

		_, err = tx.ExecContext(ctx, `INSERT INTO annuities
			(id, plan_key, position, name, annuity_type, monthly_payment, initial_investment, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			a.ID.String(), key.String(), i, a.Name, string(a.Type),
			a.MonthlyPayment.String(), a.InitialInvestment.String(),
			created.UTC().Format(time.RFC3339Nano), stamp,
		)
		if err != nil {
			return fmt.Errorf("inserting annuity: %w", err)
		}
	}

	return tx.Commit()
}

type housingPlanRepository struct{ s *Store }

func (r *housingPlanRepository) Get(ctx context.Context, key domain.PlanKey) (*domain.HousingPlan, error) {
	var (
		p                                                 domain.HousingPlan
		maxPayment, downPayment, rate, taxRate, insurance string
		updatedAt                                         string
	)
	err := r.s.db.QueryRowContext(ctx, `SELECT preferred_location, max_monthly_payment, down_payment,
		interest_rate, loan_term, property_tax_rate, insurance_rate, updated_at
		FROM housing_plans WHERE plan_key = ?`, key.String(),
	).Scan(&p.PreferredLocation, &maxPayment, &downPayment, &rate, &p.LoanTerm, &taxRate, &insurance, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying housing plan: %w", err)
	}

	if err := decimals(
		decimalField{"max_monthly_payment", maxPayment, &p.MaxMonthlyPayment},
		decimalField{"down_payment", downPayment, &p.DownPayment},
		decimalField{"interest_rate", rate, &p.InterestRate},
		decimalField{"property_tax_rate", taxRate, &p.PropertyTaxRate},
		decimalField{"insurance_rate", insurance, &p.InsuranceRate},
	); err != nil {
		return nil, err
	}
	if p.UpdatedAt, err = parseTime("updated_at", updatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *housingPlanRepository) Replace(ctx context.Context, key domain.PlanKey, p *domain.HousingPlan) error {
	now, stamp := r.s.timestamp()
	_, err := r.s.db.ExecContext(ctx, `INSERT OR REPLACE INTO housing_plans
		(plan_key, preferred_location, max_monthly_payment, down_payment, interest_rate,
		 loan_term, property_tax_rate, insurance_rate, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		key.String(), p.PreferredLocation, p.MaxMonthlyPayment.String(), p.DownPayment.String(),
		p.InterestRate.String(), p.LoanTerm, p.PropertyTaxRate.String(), p.InsuranceRate.String(), stamp,
	)
	if err != nil {
		return fmt.Errorf("replacing housing plan: %w", err)
	}
	p.UpdatedAt = now
	return nil
}

type currentHomeRepository struct{ s *Store }

func (r *currentHomeRepository) Get(ctx context.Context, key domain.PlanKey) (*domain.CurrentHome, error) {
	var (
		h                                                 domain.CurrentHome
		value, balance, payment, rate, taxRate, insurance string
		updatedAt                                         string
	)
	err := r.s.db.QueryRowContext(ctx, `SELECT current_value, mortgage_balance, monthly_payment,
		interest_rate, location, years_remaining, property_tax_rate, insurance_rate, updated_at
		FROM current_homes WHERE plan_key = ?`, key.String(),
	).Scan(&value, &balance, &payment, &rate, &h.Location, &h.YearsRemaining, &taxRate, &insurance, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying current home: %w", err)
	}

	if err := decimals(
		decimalField{"current_value", value, &h.CurrentValue},
		decimalField{"mortgage_balance", balance, &h.MortgageBalance},
		decimalField{"monthly_payment", payment, &h.MonthlyPayment},
		decimalField{"interest_rate", rate, &h.InterestRate},
		decimalField{"property_tax_rate", taxRate, &h.PropertyTaxRate},
		decimalField{"insurance_rate", insurance, &h.InsuranceRate},
	); err != nil {
		return nil, err
	}
	if h.UpdatedAt, err = parseTime("updated_at", updatedAt); err != nil {
		return nil, err
	}
	return &h, nil
}

func (r *currentHomeRepository) Replace(ctx context.Context, key domain.PlanKey, h *domain.CurrentHome) error {
	now, stamp := r.s.timestamp()
	_, err := r.s.db.ExecContext(ctx, `INSERT OR REPLACE INTO current_homes
		(plan_key, current_value, mortgage_balance, monthly_payment, interest_rate,
		 location, years_remaining, property_tax_rate, insurance_rate, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		key.String(), h.CurrentValue.String(), h.MortgageBalance.String(), h.MonthlyPayment.String(),
		h.InterestRate.String(), h.Location, h.YearsRemaining, h.PropertyTaxRate.String(),
		h.InsuranceRate.String(), stamp,
	)
	if err != nil {
		return fmt.Errorf("replacing current home: %w", err)
	}
	h.UpdatedAt = now
	return nil
}
