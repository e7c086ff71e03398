package autosave

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/simaogato/retireplan-backend/internal/domain"
	"github.com/simaogato/retireplan-backend/internal/platform/metrics"
	"github.com/simaogato/retireplan-backend/internal/usecase/affordability"
)

var (
	// ErrNotLoaded is returned for edits made before the initial load finished
	ErrNotLoaded = errors.New("autosave: session not loaded")

	// ErrLastAnnuity is returned when removing the only remaining annuity
	ErrLastAnnuity = errors.New("autosave: at least one annuity is required")

	// ErrAnnuityIndex is returned for an annuity index outside the collection
	ErrAnnuityIndex = errors.New("autosave: annuity index out of range")
)

// Store is the persistence gateway a session loads from and saves to
type Store interface {
	Saver
	Load(ctx context.Context, key domain.PlanKey) (domain.PlanSnapshot, error)
}

// SessionOptions configures a Session
type SessionOptions struct {
	Delay   time.Duration
	Logger  *slog.Logger
	Metrics *metrics.Metrics

	// Manual disables the quiet-period timer. Edits are then saved only by Flush or Close.
	Manual bool
}

// Session holds one client's working copy of a plan.
// It loads once, recomputes the calculations after every edit and
// hands each edit to a Debouncer. Edits are refused until Start has run,
// so stored data is never overwritten by defaults.
type Session struct {
	store     Store
	key       domain.PlanKey
	debouncer *Debouncer
	logger    *slog.Logger
	now       func() time.Time

	mu       sync.RWMutex
	loaded   bool
	snapshot domain.PlanSnapshot
	calc     domain.Calculations
}

// NewSession creates a session for key. Call Start before editing.
func NewSession(store Store, key domain.PlanKey, opts SessionOptions) *Session {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	debouncer := NewDebouncer(store, key, opts.Delay, logger, opts.Metrics)
	if opts.Manual {
		debouncer.delay = 0
	}
	return &Session{
		store:     store,
		key:       key,
		debouncer: debouncer,
		logger:    logger,
		now:       time.Now,
		snapshot:  domain.DefaultSnapshot(),
	}
}

// Start performs the initial load. When the load fails the session continues
// with the defaults the store returned and the error is reported to the caller.
// Either way the session is marked loaded and accepts edits afterwards.
func (s *Session) Start(ctx context.Context) error {
	snapshot, err := s.store.Load(ctx, s.key)
	if err != nil {
		s.logger.WarnContext(ctx, "initial load failed, editing defaults",
			"plan_key", s.key.String(),
			"error", err,
		)
		snapshot = domain.DefaultSnapshot()
	}
	if len(snapshot.Annuities) == 0 {
		snapshot.Annuities = []domain.Annuity{domain.DefaultAnnuity()}
	}

	s.mu.Lock()
	s.snapshot = snapshot
	s.calc = affordability.FullPlanFor(snapshot)
	s.loaded = true
	s.mu.Unlock()

	if err != nil {
		return fmt.Errorf("failed to load plan: %w", err)
	}
	return nil
}

// Loaded reports whether Start has completed
func (s *Session) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// Snapshot returns a copy of the working plan
func (s *Session) Snapshot() domain.PlanSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot.Clone()
}

// Calculations returns the metrics for the current working plan
func (s *Session) Calculations() domain.Calculations {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.calc
}

// UpdateSocialSecurity edits the Social Security profile
func (s *Session) UpdateSocialSecurity(fn func(*domain.SocialSecurityProfile)) error {
	return s.edit(func(snapshot *domain.PlanSnapshot) (domain.SaveRequest, error) {
		fn(&snapshot.SocialSecurity)
		profile := snapshot.SocialSecurity
		return domain.SaveRequest{SocialSecurity: &profile}, nil
	})
}

// UpdateHousing edits the housing plan
func (s *Session) UpdateHousing(fn func(*domain.HousingPlan)) error {
	return s.edit(func(snapshot *domain.PlanSnapshot) (domain.SaveRequest, error) {
		fn(&snapshot.Housing)
		plan := snapshot.Housing
		return domain.SaveRequest{Housing: &plan}, nil
	})
}

// UpdateCurrentHome edits the current home
func (s *Session) UpdateCurrentHome(fn func(*domain.CurrentHome)) error {
	return s.edit(func(snapshot *domain.PlanSnapshot) (domain.SaveRequest, error) {
		fn(&snapshot.CurrentHome)
		home := snapshot.CurrentHome
		return domain.SaveRequest{CurrentHome: &home}, nil
	})
}

// AddAnnuity appends a blank annuity
func (s *Session) AddAnnuity() error {
	return s.edit(func(snapshot *domain.PlanSnapshot) (domain.SaveRequest, error) {
		snapshot.Annuities = append(snapshot.Annuities, domain.DefaultAnnuity())
		return s.annuityRequest(snapshot), nil
	})
}

// RemoveAnnuity deletes the annuity at index i. The last annuity cannot be removed.
func (s *Session) RemoveAnnuity(i int) error {
	return s.edit(func(snapshot *domain.PlanSnapshot) (domain.SaveRequest, error) {
		if i < 0 || i >= len(snapshot.Annuities) {
			return domain.SaveRequest{}, ErrAnnuityIndex
		}
		if len(snapshot.Annuities) <= 1 {
			return domain.SaveRequest{}, ErrLastAnnuity
		}
		snapshot.Annuities = slices.Delete(snapshot.Annuities, i, i+1)
		return s.annuityRequest(snapshot), nil
	})
}

// UpdateAnnuity edits the annuity at index i
func (s *Session) UpdateAnnuity(i int, fn func(*domain.Annuity)) error {
	return s.edit(func(snapshot *domain.PlanSnapshot) (domain.SaveRequest, error) {
		if i < 0 || i >= len(snapshot.Annuities) {
			return domain.SaveRequest{}, ErrAnnuityIndex
		}
		fn(&snapshot.Annuities[i])
		if !snapshot.Annuities[i].Type.Valid() {
			snapshot.Annuities[i].Type = domain.AnnuityTypeFixed
		}
		return s.annuityRequest(snapshot), nil
	})
}

// Flush saves pending edits now
func (s *Session) Flush(ctx context.Context) error {
	return s.debouncer.Flush(ctx)
}

// Close flushes pending edits and refuses further ones
func (s *Session) Close(ctx context.Context) error {
	return s.debouncer.Close(ctx)
}

// Discard drops pending edits without saving them and refuses further ones.
// The working copy keeps the dropped edits.
func (s *Session) Discard() {
	if s.debouncer.Discard() {
		s.logger.Info("discarded unsaved edits", "plan_key", s.key.String())
	}
}

// edit applies fn to a private copy of the snapshot and commits it only when fn succeeds
func (s *Session) edit(fn func(*domain.PlanSnapshot) (domain.SaveRequest, error)) error {
	s.mu.Lock()
	if !s.loaded {
		s.mu.Unlock()
		return ErrNotLoaded
	}

	working := s.snapshot.Clone()
	req, err := fn(&working)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	s.snapshot = working
	s.calc = affordability.FullPlanFor(working)
	s.mu.Unlock()

	return s.debouncer.Submit(req)
}

// annuityRequest gives every annuity in the working copy its identity before
// it is saved, so rewrites of the collection keep IDs and creation times stable.
func (s *Session) annuityRequest(snapshot *domain.PlanSnapshot) domain.SaveRequest {
	now := s.now().UTC()
	for i := range snapshot.Annuities {
		a := &snapshot.Annuities[i]
		if a.ID == uuid.Nil {
			a.ID = uuid.New()
		}
		if a.CreatedAt.IsZero() {
			a.CreatedAt = now
		}
	}
	return domain.SaveRequest{Annuities: slices.Clone(snapshot.Annuities)}
}
