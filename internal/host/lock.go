package host

import (
	"errors"
	"fmt"
	"os"
	"time"

	"golang.org/x/sys/unix"
)

// LockTimeout is the timeout for acquiring a file lock.
const LockTimeout = 2 * time.Second

const lockFilePerms = 0o600

// lockPollInterval is the pause between non-blocking lock attempts.
const lockPollInterval = 5 * time.Millisecond

// lockPath returns the advisory lock file guarding path.
func lockPath(path string) string {
	return path + ".lock"
}

// withLock executes handler while holding an exclusive lock on path.
// The lock is released when handler returns.
func withLock(path string, timeout time.Duration, handler func() error) error {
	lock, lockErr := acquireLock(lockPath(path), timeout)
	if lockErr != nil {
		return fmt.Errorf("acquiring lock: %w", lockErr)
	}

	defer lock.release()

	return handler()
}

// fileLock is a held flock on a lock file.
type fileLock struct {
	path string
	file *os.File
}

// release removes the lock file while still holding the lock, then unlocks
// and closes it.
func (l *fileLock) release() {
	if l.file != nil {
		_ = os.Remove(l.path)
		_ = unix.Flock(int(l.file.Fd()), unix.LOCK_UN)
		_ = l.file.Close()
		l.file = nil
	}
}

// acquireLock takes an exclusive flock on lockFile, creating it if needed.
// The lock is polled with LOCK_NB until timeout, so no descriptor is closed
// while a flock call still uses it. A lock file removed and recreated by
// another holder while we waited is detected by comparing inodes, and the
// acquire is retried.
func acquireLock(lockFile string, timeout time.Duration) (*fileLock, error) {
	deadline := time.Now().Add(timeout)

	for {
		file, openErr := os.OpenFile(lockFile, os.O_CREATE|os.O_RDWR, lockFilePerms)
		if openErr != nil {
			return nil, fmt.Errorf("%w: %w", errLockFileOpen, openErr)
		}

		fd := int(file.Fd())

		var openStat unix.Stat_t

		err := unix.Fstat(fd, &openStat)
		if err != nil {
			_ = file.Close()

			return nil, fmt.Errorf("fstat lock file: %w", err)
		}

		err = flockUntil(fd, deadline)
		if err != nil {
			_ = file.Close()

			if errors.Is(err, errLockTimeout) {
				return nil, fmt.Errorf("%w: %s", errLockTimeout, lockFile)
			}

			return nil, fmt.Errorf("flock: %w", err)
		}

		var pathStat unix.Stat_t

		statErr := unix.Stat(lockFile, &pathStat)
		if statErr != nil || pathStat.Ino != openStat.Ino {
			_ = unix.Flock(fd, unix.LOCK_UN)
			_ = file.Close()

			continue
		}

		return &fileLock{path: lockFile, file: file}, nil
	}
}

// flockUntil retries a non-blocking exclusive flock on fd until it succeeds
// or deadline passes.
func flockUntil(fd int, deadline time.Time) error {
	for {
		err := unix.Flock(fd, unix.LOCK_EX|unix.LOCK_NB)
		if err == nil {
			return nil
		}

		if !errors.Is(err, unix.EWOULDBLOCK) && !errors.Is(err, unix.EINTR) {
			return err
		}

		if !time.Now().Before(deadline) {
			return errLockTimeout
		}

		time.Sleep(min(lockPollInterval, time.Until(deadline)))
	}
}
