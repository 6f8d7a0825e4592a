package state

import (
	"os"
	"path/filepath"
)

const (
	ConfigDirName   = ".config/resumekit"
	LocalStateDir   = ".local/state/resumekit"
	ConfigFileName  = "config.yaml"
	SessionFileName = "session.yaml"
	LockFileName    = "submit.lock"
)

type Paths struct {
	Home string
}

func NewPaths(home string) Paths {
	return Paths{Home: home}
}

func (p Paths) ConfigRoot() string {
	return filepath.Join(p.Home, ConfigDirName)
}

func (p Paths) LocalStateRoot() string {
	return filepath.Join(p.Home, LocalStateDir)
}

func (p Paths) ConfigPath() string {
	return filepath.Join(p.ConfigRoot(), ConfigFileName)
}

// SessionPath lives under local state: the token belongs to this machine only.
func (p Paths) SessionPath() string {
	return filepath.Join(p.LocalStateRoot(), SessionFileName)
}

func (p Paths) LockPath() string {
	return filepath.Join(p.LocalStateRoot(), LockFileName)
}

func EnsureDir(path string) error {
	return os.MkdirAll(path, 0o755)
}
