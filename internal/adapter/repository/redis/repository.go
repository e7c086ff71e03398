package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/simaogato/retireplan-backend/internal/domain"
)

// getJSON loads and decodes one slot document
func (s *Store) getJSON(ctx context.Context, key string, dst any) error {
	raw, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("redis get %s: %w", key, err)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}
	return nil
}

// setJSON encodes and stores one slot document with a single SET
func (s *Store) setJSON(ctx context.Context, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := s.client.Set(ctx, key, raw, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

type socialSecurityRepository struct{ s *Store }

func (r *socialSecurityRepository) Get(ctx context.Context, key domain.PlanKey) (*domain.SocialSecurityProfile, error) {
	var rec socialSecurityRecord
	if err := r.s.getJSON(ctx, slotKey(key, domain.SlotSocialSecurity), &rec); err != nil {
		return nil, err
	}
	profile := rec.toDomain()
	return &profile, nil
}

func (r *socialSecurityRepository) Replace(ctx context.Context, key domain.PlanKey, profile *domain.SocialSecurityProfile) error {
	stored := *profile
	stored.UpdatedAt = r.s.now().UTC()
	if err := r.s.setJSON(ctx, slotKey(key, domain.SlotSocialSecurity), toSocialSecurityRecord(stored)); err != nil {
		return err
	}
	profile.UpdatedAt = stored.UpdatedAt
	return nil
}

type annuityRepository struct{ s *Store }

func (r *annuityRepository) List(ctx context.Context, key domain.PlanKey) ([]domain.Annuity, error) {
	var recs []annuityRecord
	err := r.s.getJSON(ctx, slotKey(key, domain.SlotAnnuities), &recs)
	if errors.Is(err, domain.ErrNotFound) {
		return []domain.Annuity{}, nil
	}
	if err != nil {
		return nil, err
	}

	annuities := make([]domain.Annuity, len(recs))
	for i, rec := range recs {
		annuities[i] = rec.toDomain()
	}
	return annuities, nil
}

func (r *annuityRepository) Replace(ctx context.Context, key domain.PlanKey, annuities []domain.Annuity) error {
	now := r.s.now().UTC()
	recs := make([]annuityRecord, len(annuities))
	for i, a := range annuities {
		if a.ID == uuid.Nil {
			a.ID = uuid.New()
		}
		if a.CreatedAt.IsZero() {
			a.CreatedAt = now
		}
		a.UpdatedAt = now
		recs[i] = toAnnuityRecord(a)
	}
	return r.s.setJSON(ctx, slotKey(key, domain.SlotAnnuities), recs)
}

type housingPlanRepository struct{ s *Store }

func (r *housingPlanRepository) Get(ctx context.Context, key domain.PlanKey) (*domain.HousingPlan, error) {
	var rec housingPlanRecord
	if err := r.s.getJSON(ctx, slotKey(key, domain.SlotHousing), &rec); err != nil {
		return nil, err
	}
	plan := rec.toDomain()
	return &plan, nil
}

func (r *housingPlanRepository) Replace(ctx context.Context, key domain.PlanKey, plan *domain.HousingPlan) error {
	stored := *plan
	stored.UpdatedAt = r.s.now().UTC()
	if err := r.s.setJSON(ctx, slotKey(key, domain.SlotHousing), toHousingPlanRecord(stored)); err != nil {
		return err
	}
	plan.UpdatedAt = stored.UpdatedAt
	return nil
}

type currentHomeRepository struct{ s *Store }

func (r *currentHomeRepository) Get(ctx context.Context, key domain.PlanKey) (*domain.CurrentHome, error) {
	var rec currentHomeRecord
	if err := r.s.getJSON(ctx, slotKey(key, domain.SlotCurrentHome), &rec); err != nil {
		return nil, err
	}
	home := rec.toDomain()
	return &home, nil
}

func (r *currentHomeRepository) Replace(ctx context.Context, key domain.PlanKey, home *domain.CurrentHome) error {
	stored := *home
	stored.UpdatedAt = r.s.now().UTC()
	if err := r.s.setJSON(ctx, slotKey(key, domain.SlotCurrentHome), toCurrentHomeRecord(stored)); err != nil {
		return err
	}
	home.UpdatedAt = stored.UpdatedAt
	return nil
}
