package usecase

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors for the chat turn. Together with
// types.ErrStoreUnavailable they form the whole failure taxonomy of a
// turn; everything is mapped to a user-safe message at the controller
// boundary and never leaks internal detail to the caller.
var (
	// ErrInvalidInput is an empty or whitespace-only question. Raised
	// before any persistence or completion call.
	ErrInvalidInput = goerr.New("invalid input")

	// ErrCompletionFailure folds every completion-side failure
	// (timeout, upstream error, rate limiting) into one kind. No
	// record is written for the turn when this is raised.
	ErrCompletionFailure = goerr.New("completion failed")

	// ErrPartialPersistence means the user record persisted but the
	// assistant record did not. The dangling user record remains in
	// the store; this inconsistency window is accepted, not healed.
	ErrPartialPersistence = goerr.New("partial persistence failure")
)
