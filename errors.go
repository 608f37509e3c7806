package rocketry

import "errors"

var (
	// ErrInvalidArgument signals a non-positive mass, radius or distance passed
	// to a formula. It indicates a construction or configuration bug, not a
	// transient condition.
	ErrInvalidArgument = errors.New("non-positive mass, radius or distance")
	// ErrMismatchedParent signals two bodies which do not orbit the same parent.
	ErrMismatchedParent = errors.New("bodies do not share the same parent")
	// ErrUndefinedSOI signals a sphere of influence request on a root body.
	ErrUndefinedSOI = errors.New("sphere of influence undefined for a root body")
	// ErrDegenerateOrbit signals a parabolic, hyperbolic or zero-energy state
	// from which no closed orbit can be reconstructed.
	ErrDegenerateOrbit = errors.New("state does not describe a closed orbit")
	// ErrCorruptHierarchy signals a cycle in the body hierarchy.
	ErrCorruptHierarchy = errors.New("body hierarchy contains a cycle")
)
