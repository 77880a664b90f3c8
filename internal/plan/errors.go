package plan

import "errors"

// Precondition failures of structural edits. None of them leave a partial
// change behind: operations check everything before building edits.
var (
	ErrNotTaskLine    = errors.New("not a valid task line")
	ErrNoTaskBlock    = errors.New("could not identify task block")
	ErrNoSections     = errors.New("no sections found in document")
	ErrNotSectionLine = errors.New("not a section line")
	ErrLineOutOfRange = errors.New("line out of range")
	ErrNotMDPlan      = errors.New("not an MDPlan document (missing <!-- mdplan --> marker)")
	ErrEmptyTaskText  = errors.New("task text cannot be empty")
	ErrInvalidEdit    = errors.New("invalid edit")
	ErrUnknownDetail  = errors.New("unknown detail type")
	ErrInvalidStatus  = errors.New("invalid status")
)
