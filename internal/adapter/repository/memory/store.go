// Package memory keeps plan slots in process memory.
// It backs tests and single-process deployments that do not need durability.
package memory

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/simaogato/retireplan-backend/internal/domain"
)

// Store holds every slot of every plan key behind one lock
type Store struct {
	mu  sync.RWMutex
	now func() time.Time

	socialSecurity map[domain.PlanKey]domain.SocialSecurityProfile
	annuities      map[domain.PlanKey][]domain.Annuity
	housing        map[domain.PlanKey]domain.HousingPlan
	currentHomes   map[domain.PlanKey]domain.CurrentHome
}

// New creates an empty in-memory store
func New() *Store {
	return &Store{
		now:            time.Now,
		socialSecurity: make(map[domain.PlanKey]domain.SocialSecurityProfile),
		annuities:      make(map[domain.PlanKey][]domain.Annuity),
		housing:        make(map[domain.PlanKey]domain.HousingPlan),
		currentHomes:   make(map[domain.PlanKey]domain.CurrentHome),
	}
}

// WithClock replaces the clock used for timestamps
func (s *Store) WithClock(now func() time.Time) *Store {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
	return s
}

// Repositories exposes the store through the four slot interfaces
func (s *Store) Repositories() domain.Repositories {
	return domain.Repositories{
		SocialSecurity: &SocialSecurityRepository{store: s},
		Annuities:      &AnnuityRepository{store: s},
		Housing:        &HousingPlanRepository{store: s},
		CurrentHome:    &CurrentHomeRepository{store: s},
	}
}

// SocialSecurityRepository implements domain.SocialSecurityRepository
type SocialSecurityRepository struct {
	store *Store
}

// Get returns the stored profile
func (r *SocialSecurityRepository) Get(_ context.Context, key domain.PlanKey) (*domain.SocialSecurityProfile, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	profile, ok := r.store.socialSecurity[key]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &profile, nil
}

// Replace stores the whole profile
func (r *SocialSecurityRepository) Replace(_ context.Context, key domain.PlanKey, profile *domain.SocialSecurityProfile) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	profile.UpdatedAt = r.store.now()
	r.store.socialSecurity[key] = *profile
	return nil
}

// AnnuityRepository implements domain.AnnuityRepository
type AnnuityRepository struct {
	store *Store
}

// List returns the stored annuities in insertion order
func (r *AnnuityRepository) List(_ context.Context, key domain.PlanKey) ([]domain.Annuity, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	stored := r.store.annuities[key]
	if stored == nil {
		return []domain.Annuity{}, nil
	}
	return slices.Clone(stored), nil
}

// Replace swaps the collection under the write lock
func (r *AnnuityRepository) Replace(_ context.Context, key domain.PlanKey, annuities []domain.Annuity) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	now := r.store.now()
	stored := make([]domain.Annuity, len(annuities))
	for i, a := range annuities {
		if a.ID == uuid.Nil {
			a.ID = uuid.New()
		}
		if a.CreatedAt.IsZero() {
			a.CreatedAt = now
		}
		a.UpdatedAt = now
		stored[i] = a
	}
	r.store.annuities[key] = stored
	return nil
}

// HousingPlanRepository implements domain.HousingPlanRepository
type HousingPlanRepository struct {
	store *Store
}

// Get returns the stored housing plan
func (r *HousingPlanRepository) Get(_ context.Context, key domain.PlanKey) (*domain.HousingPlan, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	plan, ok := r.store.housing[key]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &plan, nil
}

// Replace stores the whole plan
func (r *HousingPlanRepository) Replace(_ context.Context, key domain.PlanKey, plan *domain.HousingPlan) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	plan.UpdatedAt = r.store.now()
	r.store.housing[key] = *plan
	return nil
}

// CurrentHomeRepository implements domain.CurrentHomeRepository
type CurrentHomeRepository struct {
	store *Store
}

// Get returns the stored current home
func (r *CurrentHomeRepository) Get(_ context.Context, key domain.PlanKey) (*domain.CurrentHome, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	home, ok := r.store.currentHomes[key]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &home, nil
}

// Replace stores the whole record
func (r *CurrentHomeRepository) Replace(_ context.Context, key domain.PlanKey, home *domain.CurrentHome) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	home.UpdatedAt = r.store.now()
	r.store.currentHomes[key] = *home
	return nil
}
