package chain

import "errors"

var (
	// ErrNotFound is returned when a block or transaction lookup is out of
	// range. Callers report it and carry on; it is never fatal.
	ErrNotFound = errors.New("not found")

	// ErrBrokenLink is returned by VerifyLinkage when a block's recorded
	// predecessor hash does not match the prior block's actual hash.
	ErrBrokenLink = errors.New("broken chain linkage")
)
