package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/simaogato/retireplan-backend/internal/domain"
)

// annuityRepository implements domain.AnnuityRepository
type annuityRepository struct {
	db *DB
}

// NewAnnuityRepository creates a new annuity repository
func NewAnnuityRepository(db *DB) domain.AnnuityRepository {
	return &annuityRepository{db: db}
}

// List retrieves the annuities of the plan key in insertion order
func (r *annuityRepository) List(ctx context.Context, key domain.PlanKey) ([]domain.Annuity, error) {
	query := `
		SELECT id, name, annuity_type, monthly_payment, initial_investment, created_at, updated_at
		FROM annuities
		WHERE plan_key = $1
		ORDER BY position
	`

	rows, err := r.db.QueryContext(ctx, query, key.String())
	if err != nil {
		return nil, fmt.Errorf("failed to query annuities: %w", err)
	}
	defer rows.Close()

	annuities := []domain.Annuity{}
	for rows.Next() {
		var a domain.Annuity
		var annuityType string
		payment := numericColumn{name: "monthly_payment", dst: &a.MonthlyPayment}
		investment := numericColumn{name: "initial_investment", dst: &a.InitialInvestment}

		if err := rows.Scan(
			&a.ID,
			&a.Name,
			&annuityType,
			&payment.raw,
			&investment.raw,
			&a.CreatedAt,
			&a.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan annuity: %w", err)
		}

		if err := parseNumeric(&payment, &investment); err != nil {
			return nil, err
		}
		a.Type = domain.AnnuityType(annuityType)

		annuities = append(annuities, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating annuities: %w", err)
	}

	return annuities, nil
}

// Replace deletes the stored collection and inserts the new one in a single database transaction
func (r *annuityRepository) Replace(ctx context.Context, key domain.PlanKey, annuities []domain.Annuity) error {
	dbTx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer dbTx.Rollback()

	// Remove the previous collection
	if _, err := dbTx.ExecContext(ctx, `DELETE FROM annuities WHERE plan_key = $1`, key.String()); err != nil {
		return fmt.Errorf("failed to delete annuities: %w", err)
	}

	// Insert the new collection, keeping its order
	insertQuery := `
		INSERT INTO annuities (
			id, plan_key, position, name, annuity_type, monthly_payment, initial_investment, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, COALESCE($8::timestamptz, NOW()), NOW())
	`

	for i, a := range annuities {
		if a.ID == uuid.Nil {
			a.ID = uuid.New()
		}

		var createdAt *time.Time
		if !a.CreatedAt.IsZero() {
			createdAt = &a.CreatedAt
		}

		_, err = dbTx.ExecContext(ctx, insertQuery,
			a.ID,
			key.String(),
			i,
			a.Name,
			string(a.Type),
			a.MonthlyPayment.String(),
			a.InitialInvestment.String(),
			createdAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert annuity: %w", err)
		}
	}

	// Commit the transaction
	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
