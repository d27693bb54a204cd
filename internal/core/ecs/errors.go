package ecs

import (
	"errors"
	"fmt"
)

// Contract violations. The registry panics with an error wrapping one of these;
// they indicate a caller bug and are not meant to be recovered in normal flow.
var (
	// ErrInvalidEntity is raised by Emplace, Get and Remove on a stale or unknown handle.
	ErrInvalidEntity = errors.New("ecs: invalid entity")
	// ErrMissingComponent is raised by Get when the entity does not own the component.
	ErrMissingComponent = errors.New("ecs: entity does not have the requested component")
	// ErrStorageMismatch signals a storage registered under the wrong type id.
	ErrStorageMismatch = errors.New("ecs: storage type mismatch")
	// ErrEntitiesExhausted is raised by Create once the 48-bit id space is spent.
	ErrEntitiesExhausted = errors.New("ecs: entity ids exhausted")
)

func fatal(err error, format string, args ...any) {
	panic(fmt.Errorf("%w: "+format, append([]any{err}, args...)...))
}
