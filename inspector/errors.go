package inspector

import "errors"

var (
	// ErrDuplicateRegistration is returned when a component type is registered twice.
	ErrDuplicateRegistration = errors.New("inspector: component type already registered")
	// ErrRegistrySealed is returned when registering after the first inspection pass.
	ErrRegistrySealed = errors.New("inspector: registry is sealed")
	// ErrUnknownCommitMode is returned by ParseRotationCommit.
	ErrUnknownCommitMode = errors.New("inspector: unknown rotation commit mode")
	// ErrRenderPanic wraps a panic recovered while rendering one entity.
	ErrRenderPanic = errors.New("inspector: render panicked")
)
