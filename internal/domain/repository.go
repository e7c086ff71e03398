package domain

import "context"

// Slot names the four independent persistence locations of a plan
type Slot string

const (
	SlotSocialSecurity Slot = "social_security"
	SlotAnnuities      Slot = "annuities"
	SlotHousing        Slot = "housing"
	SlotCurrentHome    Slot = "current_home"
)

// SocialSecurityRepository defines persistence for the social security slot
type SocialSecurityRepository interface {
	// Get returns the stored profile or ErrNotFound when the slot is empty
	Get(ctx context.Context, key PlanKey) (*SocialSecurityProfile, error)

	// Replace upserts the whole profile and stamps UpdatedAt
	Replace(ctx context.Context, key PlanKey, profile *SocialSecurityProfile) error
}

// AnnuityRepository defines persistence for the annuity collection
type AnnuityRepository interface {
	// List returns the stored annuities in insertion order (empty when none are stored)
	List(ctx context.Context, key PlanKey) ([]Annuity, error)

	// Replace swaps the whole collection for the given one.
	// Implementations assign IDs and timestamps and apply the swap atomically where the store allows it.
	Replace(ctx context.Context, key PlanKey, annuities []Annuity) error
}

// HousingPlanRepository defines persistence for the housing plan slot
type HousingPlanRepository interface {
	// Get returns the stored plan or ErrNotFound when the slot is empty
	Get(ctx context.Context, key PlanKey) (*HousingPlan, error)

	// Replace upserts the whole plan and stamps UpdatedAt
	Replace(ctx context.Context, key PlanKey, plan *HousingPlan) error
}

// CurrentHomeRepository defines persistence for the current home slot
type CurrentHomeRepository interface {
	// Get returns the stored home or ErrNotFound when the slot is empty
	Get(ctx context.Context, key PlanKey) (*CurrentHome, error)

	// Replace upserts the whole record and stamps UpdatedAt
	Replace(ctx context.Context, key PlanKey, home *CurrentHome) error
}

// Repositories groups the four slot repositories of one store
type Repositories struct {
	SocialSecurity SocialSecurityRepository
	Annuities      AnnuityRepository
	Housing        HousingPlanRepository
	CurrentHome    CurrentHomeRepository
}
