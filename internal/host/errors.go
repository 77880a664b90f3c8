package host

import "errors"

// Error variables for host operations.
var (
	ErrNotFile      = errors.New("not a regular file")
	ErrStale        = errors.New("file changed since it was read")
	ErrNotBlank     = errors.New("file is not blank")
	ErrNoChoices    = errors.New("nothing to choose from")
	errLockTimeout  = errors.New("lock timeout")
	errLockFileOpen = errors.New("failed to open lock file")
)
