package host

import (
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

func Test_WithLock_Times_Out_When_Lock_Held_Elsewhere(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "plan.md")

	holder, err := os.OpenFile(lockPath(path), os.O_CREATE|os.O_RDWR, lockFilePerms)
	require.NoError(t, err)

	require.NoError(t, unix.Flock(int(holder.Fd()), unix.LOCK_EX))

	called := false
	start := time.Now()

	err = withLock(path, 50*time.Millisecond, func() error {
		called = true

		return nil
	})
	if !errors.Is(err, errLockTimeout) {
		t.Fatalf("err=%v, want=%v", err, errLockTimeout)
	}

	if called {
		t.Error("handler ran without the lock")
	}

	if elapsed := time.Since(start); elapsed < 50*time.Millisecond {
		t.Errorf("gave up after %v, want at least 50ms", elapsed)
	}

	// The holder's descriptor is untouched by the timed out attempt.
	require.NoError(t, unix.Flock(int(holder.Fd()), unix.LOCK_UN))
	require.NoError(t, holder.Close())

	err = withLock(path, time.Second, func() error {
		called = true

		return nil
	})
	require.NoError(t, err)

	if !called {
		t.Error("handler did not run after the lock was released")
	}

	if _, statErr := os.Stat(lockPath(path)); !os.IsNotExist(statErr) {
		t.Errorf("lock file left behind: %v", statErr)
	}
}

func Test_WithLock_Serializes_Handlers_When_Called_Concurrently(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "plan.md")

	const workers = 8

	var (
		inside  atomic.Int32
		overlap atomic.Bool
	)

	errs := make(chan error, workers)

	for range workers {
		go func() {
			errs <- withLock(path, 5*time.Second, func() error {
				if inside.Add(1) > 1 {
					overlap.Store(true)
				}

				time.Sleep(time.Millisecond)

				inside.Add(-1)

				return nil
			})
		}()
	}

	for range workers {
		require.NoError(t, <-errs)
	}

	if overlap.Load() {
		t.Error("two handlers held the lock at once")
	}
}
