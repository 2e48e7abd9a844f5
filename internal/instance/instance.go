// Package instance keeps a second interactive session off the same store.
package instance

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mitchellh/go-ps"

	"github.com/julianstephens/lunchwheel/internal/constants"
	"github.com/julianstephens/lunchwheel/internal/logger"
)

var (
	findProcessFunc = ps.FindProcess
	getpidFunc      = os.Getpid
	executableFunc  = func() string { return filepath.Base(os.Args[0]) }
)

// ErrAlreadyRunning is returned when a live process holds the lock
var ErrAlreadyRunning = errors.New("another lunchwheel session is using this store")

// Lock is a held lockfile
type Lock struct {
	path string
	pid  int
}

// LockPath is where the lockfile for a store lives
func LockPath(storePath string) string {
	return storePath + constants.LockfileSuffix
}

// Acquire takes the lock for storePath. A lockfile left behind by a process
// that no longer runs is reclaimed.
func Acquire(storePath string) (*Lock, error) {
	path := LockPath(storePath)
	pid := getpidFunc()
	content := fmt.Sprintf("%d|%s", pid, executableFunc())

	for attempt := 0; attempt < 2; attempt++ {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0600)
		if err == nil {
			_, werr := f.WriteString(content)
			cerr := f.Close()
			if werr != nil || cerr != nil {
				_ = os.Remove(path)
				return nil, fmt.Errorf("failed to write lockfile: %w", errors.Join(werr, cerr))
			}
			logger.Debug("Acquired instance lock", "path", path, "pid", pid)
			return &Lock{path: path, pid: pid}, nil
		}
		if !errors.Is(err, os.ErrExist) {
			return nil, fmt.Errorf("failed to create lockfile: %w", err)
		}

		owner, live := holder(path)
		if live {
			return nil, fmt.Errorf("%w (pid %d)", ErrAlreadyRunning, owner)
		}
		logger.Warn("Reclaiming stale lockfile", "path", path, "pid", owner)
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to remove stale lockfile: %w", err)
		}
	}
	return nil, fmt.Errorf("failed to acquire lockfile %s", path)
}

// holder reads the lockfile and reports whether its process is still alive
// and is the same program that wrote it.
func holder(path string) (int, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, false
	}
	pidStr, exe, ok := strings.Cut(strings.TrimSpace(string(data)), "|")
	if !ok {
		return 0, false
	}
	pid, err := strconv.Atoi(pidStr)
	if err != nil || pid <= 0 {
		return 0, false
	}

	proc, err := findProcessFunc(pid)
	if err != nil || proc == nil {
		return pid, false
	}
	return pid, exe == "" || proc.Executable() == exe
}

// Release removes the lockfile if this process still owns it
func (l *Lock) Release() error {
	if l == nil {
		return nil
	}
	data, err := os.ReadFile(l.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	pidStr, _, _ := strings.Cut(string(data), "|")
	if pidStr != strconv.Itoa(l.pid) {
		return nil
	}
	return os.Remove(l.path)
}

// Path returns the lockfile location
func (l *Lock) Path() string {
	return l.path
}
