package planner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/simaogato/retireplan-backend/internal/domain"
	"github.com/simaogato/retireplan-backend/internal/platform/metrics"
	"github.com/simaogato/retireplan-backend/internal/usecase/affordability"
)

// PlanService reads and writes the four retirement slots of a plan key.
// It is the only component that talks to the repositories.
type PlanService struct {
	SocialSecurityRepo domain.SocialSecurityRepository
	AnnuityRepo        domain.AnnuityRepository
	HousingRepo        domain.HousingPlanRepository
	CurrentHomeRepo    domain.CurrentHomeRepository

	logger  *slog.Logger
	metrics *metrics.Metrics
}

// NewPlanService creates a new PlanService instance.
// A nil logger discards output; nil metrics are not recorded.
func NewPlanService(repos domain.Repositories, logger *slog.Logger, m *metrics.Metrics) *PlanService {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &PlanService{
		SocialSecurityRepo: repos.SocialSecurity,
		AnnuityRepo:        repos.Annuities,
		HousingRepo:        repos.Housing,
		CurrentHomeRepo:    repos.CurrentHome,
		logger:             logger,
		metrics:            m,
	}
}

// Load reads every slot of the plan and substitutes defaults for empty ones.
// Logic:
//   - A missing record is normal (first run) and yields the slot default
//   - Zero stored annuities yield the single placeholder annuity
//   - Any other storage error returns the full default snapshot together with the error,
//     so callers always have a usable state
func (s *PlanService) Load(ctx context.Context, key domain.PlanKey) (domain.PlanSnapshot, error) {
	snapshot, err := s.load(ctx, key)
	s.metrics.ObserveLoad(err)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to load plan, falling back to defaults",
			"plan_key", key.String(),
			"error", err,
		)
		return domain.DefaultSnapshot(), err
	}
	return snapshot, nil
}

// LoadWithCalculations loads the plan and runs the affordability engine over it
func (s *PlanService) LoadWithCalculations(ctx context.Context, key domain.PlanKey) (domain.PlanSnapshot, domain.Calculations, error) {
	snapshot, err := s.Load(ctx, key)
	return snapshot, affordability.FullPlanFor(snapshot), err
}

func (s *PlanService) load(ctx context.Context, key domain.PlanKey) (domain.PlanSnapshot, error) {
	if err := key.Validate(); err != nil {
		return domain.PlanSnapshot{}, err
	}

	var snapshot domain.PlanSnapshot

	// 1. Social Security
	ss, err := s.SocialSecurityRepo.Get(ctx, key)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		snapshot.SocialSecurity = domain.DefaultSocialSecurity()
		s.metrics.ObserveDefault(string(domain.SlotSocialSecurity))
	case err != nil:
		return domain.PlanSnapshot{}, fmt.Errorf("failed to load social security: %w", err)
	default:
		snapshot.SocialSecurity = *ss
	}

	// 2. Annuities
	annuities, err := s.AnnuityRepo.List(ctx, key)
	if err != nil {
		return domain.PlanSnapshot{}, fmt.Errorf("failed to load annuities: %w", err)
	}
	if len(annuities) == 0 {
		annuities = []domain.Annuity{domain.DefaultAnnuity()}
		s.metrics.ObserveDefault(string(domain.SlotAnnuities))
	}
	snapshot.Annuities = annuities

	// 3. Housing plan
	housing, err := s.HousingRepo.Get(ctx, key)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		snapshot.Housing = domain.DefaultHousingPlan()
		s.metrics.ObserveDefault(string(domain.SlotHousing))
	case err != nil:
		return domain.PlanSnapshot{}, fmt.Errorf("failed to load housing plan: %w", err)
	default:
		snapshot.Housing = *housing
	}

	// 4. Current home
	home, err := s.CurrentHomeRepo.Get(ctx, key)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		snapshot.CurrentHome = domain.DefaultCurrentHome()
		s.metrics.ObserveDefault(string(domain.SlotCurrentHome))
	case err != nil:
		return domain.PlanSnapshot{}, fmt.Errorf("failed to load current home: %w", err)
	default:
		snapshot.CurrentHome = *home
	}

	return snapshot, nil
}

// Save writes the supplied slots and leaves the others untouched.
// Singletons are replaced as whole records; the annuity collection is replaced as a whole,
// so an empty non-nil collection removes every stored annuity.
// Slots are written in a fixed order and the first failure stops the save.
func (s *PlanService) Save(ctx context.Context, key domain.PlanKey, req domain.SaveRequest) error {
	if err := key.Validate(); err != nil {
		return err
	}
	if err := validateAnnuities(req.Annuities); err != nil {
		return err
	}

	// Copies keep store-assigned timestamps off the caller's values
	if req.SocialSecurity != nil {
		profile := *req.SocialSecurity
		if err := s.write(ctx, key, domain.SlotSocialSecurity, func() error {
			return s.SocialSecurityRepo.Replace(ctx, key, &profile)
		}); err != nil {
			return err
		}
	}

	if req.HasAnnuities() {
		annuities := slices.Clone(req.Annuities)
		if err := s.write(ctx, key, domain.SlotAnnuities, func() error {
			return s.AnnuityRepo.Replace(ctx, key, annuities)
		}); err != nil {
			return err
		}
	}

	if req.Housing != nil {
		plan := *req.Housing
		if err := s.write(ctx, key, domain.SlotHousing, func() error {
			return s.HousingRepo.Replace(ctx, key, &plan)
		}); err != nil {
			return err
		}
	}

	if req.CurrentHome != nil {
		home := *req.CurrentHome
		if err := s.write(ctx, key, domain.SlotCurrentHome, func() error {
			return s.CurrentHomeRepo.Replace(ctx, key, &home)
		}); err != nil {
			return err
		}
	}

	return nil
}

func (s *PlanService) write(ctx context.Context, key domain.PlanKey, slot domain.Slot, fn func() error) error {
	err := fn()
	s.metrics.ObserveSave(string(slot), err)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to save slot",
			"plan_key", key.String(),
			"slot", string(slot),
			"error", err,
		)
		return fmt.Errorf("failed to save %s: %w", slot, err)
	}
	return nil
}

func validateAnnuities(annuities []domain.Annuity) error {
	for i := range annuities {
		if err := annuities[i].Validate(); err != nil {
			return fmt.Errorf("%w: annuity %d: %v", domain.ErrInvalidInput, i, err)
		}
	}
	return nil
}
