package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for simulation construction.
var (
	// ErrInvalidMass indicates a particle with zero, negative or non-finite mass.
	ErrInvalidMass = errors.New("dynamo: particle mass must be positive")

	// ErrInvalidArena indicates non-positive arena dimensions.
	ErrInvalidArena = errors.New("dynamo: arena width and height must be positive")

	// ErrNoParticles indicates an empty population.
	ErrNoParticles = errors.New("dynamo: simulation needs at least one particle")

	// ErrUnknownResolver indicates a collision strategy name that is not registered.
	ErrUnknownResolver = errors.New("dynamo: unknown collision resolver")

	// ErrUnknownSeparation indicates a separation rounding policy that is not registered.
	ErrUnknownSeparation = errors.New("dynamo: unknown separation policy")

	// ErrInvalidSteps indicates a run length that is not positive.
	ErrInvalidSteps = errors.New("dynamo: step count must be positive")
)

// ParticleError wraps a validation error with the offending particle index.
type ParticleError struct {
	Index   int
	Wrapped error
}

func (e *ParticleError) Error() string {
	return fmt.Sprintf("particle %d: %v", e.Index, e.Wrapped)
}

func (e *ParticleError) Unwrap() error {
	return e.Wrapped
}
