package actions

import "errors"

// Error variables for actions.
var (
	// ErrCancelled is returned when the user dismissed a prompt. Nothing
	// was changed; callers report it as a notice, not a failure.
	ErrCancelled = errors.New("cancelled")

	ErrUnknownSection = errors.New("no such section")
	ErrUnknownAction  = errors.New("unknown task action")
)
