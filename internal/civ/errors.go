package civ

import "errors"

// Command errors are recoverable rejections: the command is refused, state is
// unchanged, and play continues. Callers branch with errors.Is.
var (
	// ErrPrerequisiteNotMet rejects a command whose progression, feature, or
	// ordering gate is not satisfied.
	ErrPrerequisiteNotMet = errors.New("prerequisite not met")

	// ErrInsufficientResource rejects a spend that the current stockpiles
	// cannot cover.
	ErrInsufficientResource = errors.New("insufficient resource")

	// ErrCapacityExceeded rejects growth past a derived capacity.
	ErrCapacityExceeded = errors.New("capacity exceeded")

	// ErrInvalidTarget rejects a command naming an unknown definition or an
	// entity this civilization does not own.
	ErrInvalidTarget = errors.New("invalid target")

	// ErrInvalidAmount rejects a non-positive count.
	ErrInvalidAmount = errors.New("invalid amount")
)
