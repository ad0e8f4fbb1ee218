package twin

import "errors"

// Error taxonomy for hierarchy and state operations. Cross-tenant access is
// deliberately reported as ErrNotFound so existence never leaks across
// tenants.
var (
	ErrNotFound               = errors.New("asset not found")
	ErrParentNotFound         = errors.New("parent asset not found")
	ErrCycleDetected          = errors.New("move would create a cycle")
	ErrSubtreeTooLarge        = errors.New("subtree exceeds configured ceiling")
	ErrHasChildren            = errors.New("asset has children")
	ErrConcurrentModification = errors.New("concurrent state modification")
	ErrValidation             = errors.New("validation failed")
)
