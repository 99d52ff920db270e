package flowshop

import "errors"

var (
	ErrInvalidInstance      = errors.New("invalid instance")
	ErrMalformedPermutation = errors.New("malformed permutation")
	// no duration for a declared (stage, job, machine)
	ErrIncompleteInstance = errors.New("incomplete instance")
	ErrUnknownObjective   = errors.New("unknown objective")
)
