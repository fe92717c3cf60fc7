// Package faults holds the sentinel errors shared across the storage and
// HTTP layers. Accessors wrap these with context; handlers map them to
// status codes with errors.Is.
package faults

import "errors"

var (
	// ErrValidation marks malformed or missing caller input.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound covers both a missing record and an owner mismatch, so
	// lookups never leak whether another owner's record exists.
	ErrNotFound = errors.New("not found")

	// ErrConflict marks a mutation blocked by a dependent record.
	ErrConflict = errors.New("conflict")

	// ErrSlotUnavailable is the outcome for a booking attempt on a slot
	// that is already booked, including losing a concurrent attempt.
	ErrSlotUnavailable = errors.New("slot no longer available")
)
