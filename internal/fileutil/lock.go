package fileutil

import (
	"errors"
	"fmt"
	"os"

	"github.com/gofrs/flock"
)

// ErrLocked reports that another writer holds the destination lock.
var ErrLocked = errors.New("destination is locked by another writer")

// Lock is an exclusive advisory lock on a destination path.
type Lock struct {
	path  string
	flock *flock.Flock
}

// LockPath returns the lock file guarding path.
func LockPath(path string) string {
	return path + ".lock"
}

// AcquireLock takes the lock for path without blocking. A held lock yields
// an error wrapping ErrLocked.
func AcquireLock(path string) (*Lock, error) {
	lockPath := LockPath(path)
	fl := flock.New(lockPath)
	ok, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock %s: %w", lockPath, err)
	}
	if !ok {
		return nil, fmt.Errorf("%s: %w", lockPath, ErrLocked)
	}
	return &Lock{path: lockPath, flock: fl}, nil
}

// Release unlocks and removes the lock file.
func (l *Lock) Release() error {
	if l == nil || l.flock == nil {
		return nil
	}
	err := l.flock.Unlock()
	if rmErr := os.Remove(l.path); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) && err == nil {
		err = rmErr
	}
	return err
}
