package engine

import "errors"

var (
	// ErrOutOfBounds is returned when a coordinate lies outside the grid.
	ErrOutOfBounds = errors.New("engine: position out of bounds")
	// ErrEngineLocked is returned for input received while resolving or after
	// the session ended. The engine state is unchanged.
	ErrEngineLocked = errors.New("engine: input locked")
	// ErrInvalidConfig wraps every configuration validation failure.
	ErrInvalidConfig = errors.New("engine: invalid config")
)
