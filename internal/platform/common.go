package platform

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// ErrLocked means another run already holds the output directory.
var ErrLocked = errors.New("output directory is locked by another run")

// FileLock is an exclusive advisory lock held for the lifetime of a batch run.
type FileLock struct {
	path string
	file *os.File
}

// Lock creates path if needed and takes an exclusive, non-blocking lock on it.
// The lock file stays on disk; only the lock itself is released by Unlock.
func Lock(path string) (*FileLock, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, errors.Wrap(err, "create lock directory")
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return nil, errors.Wrap(err, "open lock file")
	}

	if err := lockFile(f); err != nil {
		f.Close()
		return nil, err
	}
	return &FileLock{path: path, file: f}, nil
}

func (l *FileLock) Path() string {
	return l.path
}

func (l *FileLock) Unlock() error {
	if l == nil || l.file == nil {
		return nil
	}
	err := unlockFile(l.file)
	if cerr := l.file.Close(); err == nil {
		err = cerr
	}
	l.file = nil
	return err
}

// IsTerminal reports whether f is attached to a console.
func IsTerminal(f *os.File) bool {
	return isTerminal(f.Fd())
}
