package pid

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	"codeberg.org/mutker/cpuleds/internal/errors"
)

const (
	pidFile = "cpuleds.pid"
)

// File guards against a second instance driving the same strip.
type File struct {
	Path string
}

// New returns the PID file in dir, or in the temp directory when dir is empty.
func New(dir string) *File {
	if dir == "" {
		dir = os.TempDir()
	}

	return &File{Path: filepath.Join(dir, pidFile)}
}

// Write writes the current process ID to the PID file. A stale file left by
// a process that is no longer running is overwritten.
func (f *File) Write() error {
	errFactory := errors.New()

	if _, err := os.Stat(f.Path); err == nil {
		// PID file exists, check if the process is running
		bytes, err := os.ReadFile(f.Path)
		if err != nil {
			return errFactory.Wrap(errors.ErrInternal, err)
		}

		pid, err := strconv.Atoi(strings.TrimSpace(string(bytes)))
		if err == nil && pid != os.Getpid() && running(pid) {
			return errFactory.WithData(errors.ErrAlreadyRunning, pid)
		}
	}

	err := os.WriteFile(f.Path, []byte(strconv.Itoa(os.Getpid())), 0o600)
	if err != nil {
		return errFactory.Wrap(errors.ErrInternal, err)
	}

	return nil
}

// Remove removes the PID file.
func (f *File) Remove() error {
	if err := os.Remove(f.Path); err != nil && !os.IsNotExist(err) {
		return errors.New().Wrap(errors.ErrInternal, err)
	}

	return nil
}

func running(pid int) bool {
	if pid <= 0 {
		return false
	}

	process, err := os.FindProcess(pid)
	if err != nil {
		return false
	}

	return process.Signal(syscall.Signal(0)) == nil
}
