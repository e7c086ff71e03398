package domain

import (
	"fmt"
	"regexp"
	"strings"
)

// DefaultPlanKey is the slot owner used when a caller does not name one.
// A single-tenant deployment only ever uses this key.
const DefaultPlanKey PlanKey = "default"

const maxPlanKeyLength = 64

var planKeyPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// PlanKey identifies the owner of the four retirement slots
// (social security, annuities, housing, current home)
type PlanKey string

// ParsePlanKey trims the raw value and falls back to DefaultPlanKey when empty
func ParsePlanKey(raw string) (PlanKey, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return DefaultPlanKey, nil
	}

	key := PlanKey(raw)
	if err := key.Validate(); err != nil {
		return "", err
	}
	return key, nil
}

// Validate ensures the key is usable as a storage partition
func (k PlanKey) Validate() error {
	if k == "" {
		return fmt.Errorf("%w: empty", ErrInvalidPlanKey)
	}
	if len(k) > maxPlanKeyLength {
		return fmt.Errorf("%w: longer than %d characters", ErrInvalidPlanKey, maxPlanKeyLength)
	}
	if !planKeyPattern.MatchString(string(k)) {
		return fmt.Errorf("%w: only letters, digits, '-' and '_' are allowed", ErrInvalidPlanKey)
	}
	return nil
}

func (k PlanKey) String() string {
	return string(k)
}
