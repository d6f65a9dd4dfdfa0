package watch

import "github.com/watchkit/watch/internal"

// These re-export the engine's sentinel error types so callers can
// errors.As against them without importing the internal package (which
// they can't; it isn't importable outside this module).
type (
	ReadDuringDirtyDispatchError = internal.ReadDuringDirtyDispatchError
	MutationAlreadyConsumedError = internal.MutationAlreadyConsumedError
	ComputationFailure           = internal.ComputationFailure
	ListenerFailure              = internal.ListenerFailure
	ConcurrentMutationError      = internal.ConcurrentMutationError
)
