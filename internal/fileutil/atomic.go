package fileutil

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

const defaultMode os.FileMode = 0o644

// WriteOptions controls a single atomic commit.
type WriteOptions struct {
	// Lock holds LockPath(path) for the duration of the commit.
	Lock bool
	// BackupPath, when set, receives a verified copy of the existing
	// destination before it is replaced.
	BackupPath string
}

// WriteAtomic replaces path with data.
func WriteAtomic(path string, data []byte, opts WriteOptions) error {
	return WriteAtomicFunc(path, opts, func(w io.Writer) error {
		_, err := w.Write(data)
		return err
	})
}

// WriteAtomicFunc replaces path with whatever fill writes. If fill returns
// an error the destination is left untouched.
func WriteAtomicFunc(path string, opts WriteOptions, fill func(io.Writer) error) error {
	// A symlinked destination is written through to its target.
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		path = resolved
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("resolve destination: %w", err)
	}

	if opts.Lock {
		lock, err := AcquireLock(path)
		if err != nil {
			return err
		}
		defer lock.Release()
	}

	mode := defaultMode
	info, err := os.Stat(path)
	switch {
	case err == nil:
		if info.IsDir() {
			return fmt.Errorf("%s is a directory", path)
		}
		mode = info.Mode().Perm()
	case !errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("stat destination: %w", err)
	}

	if opts.BackupPath != "" && err == nil {
		if err := Backup(path, opts.BackupPath); err != nil {
			return fmt.Errorf("backup %s: %w", path, err)
		}
	}

	tmpPath := TempPath(path)
	tmp, err := os.OpenFile(tmpPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, mode)
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tmp.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	if err := fill(tmp); err != nil {
		return err
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Chmod(mode); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		committed = true
		return fmt.Errorf("rename into place: %w", err)
	}
	committed = true
	return nil
}

// TempPath returns a fresh hidden sibling of path: ".<name>.<uuid>.tmp".
func TempPath(path string) string {
	dir, name := filepath.Split(path)
	return filepath.Join(dir, "."+name+"."+uuid.NewString()+".tmp")
}
