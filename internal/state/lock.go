package state

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"strings"
	"syscall"
	"time"

	"gopkg.in/yaml.v3"
)

// StaleLockAge bounds how long a submission lock is honoured.
const StaleLockAge = 15 * time.Minute

var ErrLocked = errors.New("another resumekit process is submitting a profile")

type Lock struct {
	path string
	file *os.File
}

type lockMeta struct {
	PID       int       `yaml:"pid"`
	Hostname  string    `yaml:"hostname"`
	CreatedAt time.Time `yaml:"created_at"`
}

// AcquireLock takes the per-user submission lock, recovering it when the holder is
// gone or the lock has outlived StaleLockAge.
func AcquireLock(paths Paths) (*Lock, error) {
	return acquireLock(paths, time.Now().UTC())
}

func acquireLock(paths Paths, now time.Time) (*Lock, error) {
	if err := EnsureDir(paths.LocalStateRoot()); err != nil {
		return nil, err
	}
	path := paths.LockPath()
	lock, err := createLock(path, now)
	if !errors.Is(err, os.ErrExist) {
		return lock, err
	}

	stale, err := lockIsStale(path, now)
	if err != nil {
		return nil, err
	}
	if !stale {
		return nil, ErrLocked
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}
	lock, err = createLock(path, now)
	if errors.Is(err, os.ErrExist) {
		return nil, ErrLocked
	}
	return lock, err
}

func createLock(path string, now time.Time) (*Lock, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, err
	}
	hostname, err := os.Hostname()
	if err == nil {
		var b []byte
		b, err = yaml.Marshal(lockMeta{PID: os.Getpid(), Hostname: hostname, CreatedAt: now})
		if err == nil {
			_, err = f.Write(b)
		}
	}
	if err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return nil, fmt.Errorf("write lock %s: %w", path, err)
	}
	return &Lock{path: path, file: f}, nil
}

func (l *Lock) Release() error {
	if l == nil {
		return nil
	}
	if l.file != nil {
		_ = l.file.Close()
	}
	if err := os.Remove(l.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

func lockIsStale(path string, now time.Time) (bool, error) {
	info, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	if now.Sub(info.ModTime()) >= StaleLockAge {
		return true, nil
	}

	var meta lockMeta
	if err := LoadYAML(path, &meta); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return true, nil
		}
		// Unreadable payload: only age can free it.
		return false, nil
	}
	if meta.PID <= 0 || meta.Hostname == "" {
		return false, nil
	}
	if now.Sub(meta.CreatedAt) >= StaleLockAge {
		return true, nil
	}
	hostname, err := os.Hostname()
	if err != nil {
		return false, err
	}
	return strings.EqualFold(hostname, meta.Hostname) && !processAlive(meta.PID), nil
}

func processAlive(pid int) bool {
	if runtime.GOOS == "windows" {
		// Windows has no signal 0, so age is the only staleness check there.
		return true
	}
	proc, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	err = proc.Signal(syscall.Signal(0))
	return err == nil || os.IsPermission(err)
}
