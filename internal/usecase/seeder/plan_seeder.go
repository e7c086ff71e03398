package seeder

import (
	"context"
	"errors"
	"fmt"

	"github.com/simaogato/retireplan-backend/internal/domain"
)

// PlanSeeder fills the empty slots of a plan from a template.
// Slots that already hold data are never overwritten, so seeding is idempotent.
type PlanSeeder struct {
	repos domain.Repositories
}

// NewPlanSeeder creates a new PlanSeeder instance
func NewPlanSeeder(repos domain.Repositories) *PlanSeeder {
	return &PlanSeeder{repos: repos}
}

// Seed writes each template slot whose stored counterpart is empty and
// returns the slots it wrote.
func (s *PlanSeeder) Seed(ctx context.Context, key domain.PlanKey, template domain.PlanSnapshot) ([]domain.Slot, error) {
	if err := key.Validate(); err != nil {
		return nil, err
	}

	var seeded []domain.Slot

	// Try to get each slot; create it only when the store reports it empty
	if _, err := s.repos.SocialSecurity.Get(ctx, key); errors.Is(err, domain.ErrNotFound) {
		profile := template.SocialSecurity
		if err := s.repos.SocialSecurity.Replace(ctx, key, &profile); err != nil {
			return seeded, fmt.Errorf("failed to seed social security: %w", err)
		}
		seeded = append(seeded, domain.SlotSocialSecurity)
	} else if err != nil {
		return seeded, fmt.Errorf("failed to check social security: %w", err)
	}

	annuities, err := s.repos.Annuities.List(ctx, key)
	if err != nil {
		return seeded, fmt.Errorf("failed to check annuities: %w", err)
	}
	if len(annuities) == 0 && len(template.Annuities) > 0 {
		for i := range template.Annuities {
			if err := template.Annuities[i].Validate(); err != nil {
				return seeded, fmt.Errorf("%w: annuity %d: %v", domain.ErrInvalidInput, i, err)
			}
		}
		if err := s.repos.Annuities.Replace(ctx, key, cloneAnnuities(template.Annuities)); err != nil {
			return seeded, fmt.Errorf("failed to seed annuities: %w", err)
		}
		seeded = append(seeded, domain.SlotAnnuities)
	}

	if _, err := s.repos.Housing.Get(ctx, key); errors.Is(err, domain.ErrNotFound) {
		plan := template.Housing
		if err := s.repos.Housing.Replace(ctx, key, &plan); err != nil {
			return seeded, fmt.Errorf("failed to seed housing plan: %w", err)
		}
		seeded = append(seeded, domain.SlotHousing)
	} else if err != nil {
		return seeded, fmt.Errorf("failed to check housing plan: %w", err)
	}

	if _, err := s.repos.CurrentHome.Get(ctx, key); errors.Is(err, domain.ErrNotFound) {
		home := template.CurrentHome
		if err := s.repos.CurrentHome.Replace(ctx, key, &home); err != nil {
			return seeded, fmt.Errorf("failed to seed current home: %w", err)
		}
		seeded = append(seeded, domain.SlotCurrentHome)
	} else if err != nil {
		return seeded, fmt.Errorf("failed to check current home: %w", err)
	}

	return seeded, nil
}

// cloneAnnuities copies the template so stores that assign IDs do not touch it
func cloneAnnuities(in []domain.Annuity) []domain.Annuity {
	out := make([]domain.Annuity, len(in))
	copy(out, in)
	return out
}
