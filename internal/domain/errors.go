package domain

import "errors"

var (
	// ErrNotFound is returned by repositories when a slot holds no record
	ErrNotFound = errors.New("record not found")

	// ErrInvalidPlanKey is returned when a plan key fails validation
	ErrInvalidPlanKey = errors.New("invalid plan key")

	// ErrInvalidInput is returned when a record cannot be persisted as given
	ErrInvalidInput = errors.New("invalid input")
)
