package plan

import (
	"fmt"
	"strings"
)

// Status is the state of a task, derived from its bracket text.
type Status int

// Task statuses. StatusInvalid covers any bracket text outside the valid
// set; the offending text stays on [Line.StatusRaw].
const (
	StatusInvalid Status = iota
	StatusPlanned
	StatusInProgress
	StatusDone
	StatusBlocked
)

// ValidStatuses lists the valid statuses in the order they are offered.
var ValidStatuses = []Status{StatusPlanned, StatusInProgress, StatusDone, StatusBlocked}

// ParseStatus maps bracket text (without brackets) to a status. Matching is
// exact and case-sensitive.
func ParseStatus(raw string) Status {
	switch raw {
	case " ":
		return StatusPlanned
	case "wip":
		return StatusInProgress
	case "x":
		return StatusDone
	case "blocked":
		return StatusBlocked
	default:
		return StatusInvalid
	}
}

// Literal returns the bracketed form, e.g. "[wip]". Invalid returns "".
func (s Status) Literal() string {
	switch s {
	case StatusPlanned:
		return "[ ]"
	case StatusInProgress:
		return "[wip]"
	case StatusDone:
		return "[x]"
	case StatusBlocked:
		return "[blocked]"
	default:
		return ""
	}
}

func (s Status) String() string {
	switch s {
	case StatusPlanned:
		return "planned"
	case StatusInProgress:
		return "wip"
	case StatusDone:
		return "done"
	case StatusBlocked:
		return "blocked"
	default:
		return "invalid"
	}
}

// Description is the human label shown when picking a status.
func (s Status) Description() string {
	switch s {
	case StatusPlanned:
		return "Task not started"
	case StatusInProgress:
		return "Task is being worked on"
	case StatusDone:
		return "Task completed"
	case StatusBlocked:
		return "Task is blocked"
	default:
		return "Unknown status"
	}
}

// Label is the pick-list label, e.g. "[wip] In Progress".
func (s Status) Label() string {
	switch s {
	case StatusPlanned:
		return "[ ] Planned"
	case StatusInProgress:
		return "[wip] In Progress"
	case StatusDone:
		return "[x] Done"
	case StatusBlocked:
		return "[blocked] Blocked"
	default:
		return "invalid"
	}
}

// StatusFromName parses a user-facing status name such as "wip", "done" or
// a bracket literal such as "[x]".
func StatusFromName(name string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "planned", "todo", "[ ]":
		return StatusPlanned, nil
	case "wip", "in-progress", "progress", "[wip]":
		return StatusInProgress, nil
	case "done", "x", "[x]":
		return StatusDone, nil
	case "blocked", "[blocked]":
		return StatusBlocked, nil
	}

	return StatusInvalid, fmt.Errorf("%w: %q (want planned, wip, done or blocked)", ErrInvalidStatus, name)
}

// GuessStatus suggests a valid status for invalid bracket text. The text is
// lower-cased and trimmed, then matched exactly against known words;
// anything unrecognized falls back to planned.
func GuessStatus(raw string) Status {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "done", "complete", "completed":
		return StatusDone
	case "progress", "in progress", "doing", "wip":
		return StatusInProgress
	case "blocked", "block", "waiting":
		return StatusBlocked
	default:
		// "todo", "planned" and "" land here too.
		return StatusPlanned
	}
}
