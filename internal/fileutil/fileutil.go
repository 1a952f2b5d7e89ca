package fileutil

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// LockPath returns the sidecar lock file used to serialize writers of path.
func LockPath(path string) string {
	return path + ".lock"
}

// WithLock runs fn while holding an exclusive advisory lock on path's sidecar
// lock file. The call blocks until the lock is free.
func WithLock(path string, fn func() error) error {
	lock := flock.New(LockPath(path))
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("acquire lock %s: %w", lock.Path(), err)
	}
	// The lock file is left in place; removing it would let a waiter and a
	// newcomer lock different inodes.
	defer func() { _ = lock.Unlock() }()
	return fn()
}

// WriteAtomic writes dst through a temporary sibling file that is renamed into
// place once write returns successfully. Concurrent writers of the same dst
// are serialized with WithLock. On failure the temporary file is removed and
// dst is left untouched.
func WriteAtomic(dst string, mode os.FileMode, write func(*os.File) error) error {
	return WithLock(dst, func() error {
		tmp, err := os.CreateTemp(filepath.Dir(dst), "."+filepath.Base(dst)+".*.tmp")
		if err != nil {
			return err
		}
		tmpPath := tmp.Name()
		committed := false
		defer func() {
			if !committed {
				_ = tmp.Close()
				_ = os.Remove(tmpPath)
			}
		}()

		if err := write(tmp); err != nil {
			return err
		}
		if err := tmp.Sync(); err != nil {
			return err
		}
		if err := tmp.Close(); err != nil {
			return err
		}
		if err := os.Chmod(tmpPath, mode); err != nil {
			return err
		}
		if err := os.Rename(tmpPath, dst); err != nil {
			return err
		}
		committed = true
		return nil
	})
}
