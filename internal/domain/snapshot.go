package domain

import "slices"

// PlanSnapshot is the full set of user inputs for one plan key
type PlanSnapshot struct {
	SocialSecurity SocialSecurityProfile
	Annuities      []Annuity
	Housing        HousingPlan
	CurrentHome    CurrentHome
}

// DefaultSnapshot returns the snapshot presented on first run or when storage is unavailable.
// It always carries one placeholder annuity.
func DefaultSnapshot() PlanSnapshot {
	return PlanSnapshot{
		SocialSecurity: DefaultSocialSecurity(),
		Annuities:      []Annuity{DefaultAnnuity()},
		Housing:        DefaultHousingPlan(),
		CurrentHome:    DefaultCurrentHome(),
	}
}

// Clone returns a copy whose annuity slice does not alias the original
func (s PlanSnapshot) Clone() PlanSnapshot {
	s.Annuities = slices.Clone(s.Annuities)
	return s
}

// SaveRequest carries a partial save. Nil fields are left untouched in storage.
// Annuities distinguishes "not supplied" (nil) from "replace with nothing" (empty, non-nil).
type SaveRequest struct {
	SocialSecurity *SocialSecurityProfile
	Annuities      []Annuity
	Housing        *HousingPlan
	CurrentHome    *CurrentHome
}

// HasAnnuities reports whether the annuity collection was supplied
func (r SaveRequest) HasAnnuities() bool {
	return r.Annuities != nil
}

// IsEmpty reports whether the request would write nothing
func (r SaveRequest) IsEmpty() bool {
	return r.SocialSecurity == nil && !r.HasAnnuities() && r.Housing == nil && r.CurrentHome == nil
}

// Merge overlays the supplied fields of next onto r, slot by slot
func (r SaveRequest) Merge(next SaveRequest) SaveRequest {
	if next.SocialSecurity != nil {
		r.SocialSecurity = next.SocialSecurity
	}
	if next.HasAnnuities() {
		r.Annuities = next.Annuities
	}
	if next.Housing != nil {
		r.Housing = next.Housing
	}
	if next.CurrentHome != nil {
		r.CurrentHome = next.CurrentHome
	}
	return r
}

// FullSaveRequest builds a request that writes every slot of the snapshot
func FullSaveRequest(s PlanSnapshot) SaveRequest {
	ss := s.SocialSecurity
	housing := s.Housing
	home := s.CurrentHome
	annuities := slices.Clone(s.Annuities)
	if annuities == nil {
		annuities = []Annuity{}
	}
	return SaveRequest{
		SocialSecurity: &ss,
		Annuities:      annuities,
		Housing:        &housing,
		CurrentHome:    &home,
	}
}
