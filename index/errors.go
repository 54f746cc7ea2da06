package index

import "errors"

var (
	// ErrCapacityExceeded is returned by insert when every slot up to the
	// configured maximum is occupied (tombstones included). The insert is
	// abandoned with no partial mutation; freeing capacity, by pruning or
	// external eviction, is the caller's problem.
	ErrCapacityExceeded = errors.New("index: live entry capacity exceeded")

	// ErrInvariantViolation indicates an internal post-condition failed.
	// It is a bug, not a runtime condition, and should never be observed.
	ErrInvariantViolation = errors.New("index: internal invariant violated")
)
