package state

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
)

const (
	// TokenEnv overrides the stored session token.
	TokenEnv        = EnvPrefix + "TOKEN"
	sessionTokenKey = "token"
)

type Session struct {
	Token   string    `yaml:"token"`
	SavedAt time.Time `yaml:"saved_at"`
	// FromEnv is set when the token came from TokenEnv rather than the session file.
	FromEnv bool `yaml:"-"`
}

func (s Session) SignedIn() bool {
	return strings.TrimSpace(s.Token) != ""
}

// LoadSession returns the zero Session when nobody is signed in.
func LoadSession(paths Paths) (Session, error) {
	if token := strings.TrimSpace(os.Getenv(TokenEnv)); token != "" {
		return Session{Token: token, FromEnv: true}, nil
	}
	var s Session
	path := paths.SessionPath()
	if err := LoadYAML(path, &s); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Session{}, nil
		}
		return Session{}, fmt.Errorf("parse %s: %w", path, err)
	}
	s.Token = strings.TrimSpace(s.Token)
	return s, nil
}

func SaveSession(paths Paths, token string, now time.Time) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return errors.New("token is empty")
	}
	return saveYAML(paths.SessionPath(), Session{Token: token, SavedAt: now.UTC()}, 0o600)
}

// ClearSession removes the stored token. It is a no-op when none is stored.
func ClearSession(paths Paths) error {
	if err := os.Remove(paths.SessionPath()); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
